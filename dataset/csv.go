// Package dataset loads benchmark and user-provided time series into tables:
// the M4 competition dataset (downloaded once and cached locally) and
// arbitrary CSV files with a date column and a value column fetched over
// HTTP or read from disk.
package dataset

import (
	"context"
	"encoding/csv"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Naren8520/mlforecast/forecast"
	"github.com/Naren8520/mlforecast/pkg/errors"
	"github.com/Naren8520/mlforecast/pkg/log"
)

// CSVOptions controls how a long-format CSV is mapped onto a Table.
type CSVOptions struct {
	IDColumn    string // Column with the series id (optional; DefaultID is used when empty)
	DateColumn  string // Column with the timestamp (default: "ds")
	ValueColumn string // Column with the observed value (default: "y")
	DateFormat  string // Go reference layout (default: "2006-01-02")
	DefaultID   string // Series id assigned when IDColumn is empty (default: "series_0")
}

// DefaultCSVOptions returns the conventional (unique_id, ds, y) mapping.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		DateColumn:  "ds",
		ValueColumn: "y",
		DateFormat:  "2006-01-02",
		DefaultID:   "series_0",
	}
}

func (o *CSVOptions) fill() {
	if o.DateColumn == "" {
		o.DateColumn = "ds"
	}
	if o.ValueColumn == "" {
		o.ValueColumn = "y"
	}
	if o.DateFormat == "" {
		o.DateFormat = "2006-01-02"
	}
	if o.DefaultID == "" {
		o.DefaultID = "series_0"
	}
}

// ParseCSV reads a long-format CSV with a header row into a Table.
func ParseCSV(r io.Reader, opts *CSVOptions) (*forecast.Table, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}
	opts.fill()

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(err, "reading CSV header")
	}

	idIdx, dateIdx, valueIdx := -1, -1, -1
	for i, name := range header {
		switch name {
		case opts.IDColumn:
			if opts.IDColumn != "" {
				idIdx = i
			}
		case opts.DateColumn:
			dateIdx = i
		case opts.ValueColumn:
			valueIdx = i
		}
	}
	if dateIdx == -1 {
		return nil, errors.NewValueError("ParseCSV", "date column not found: "+opts.DateColumn)
	}
	if valueIdx == -1 {
		return nil, errors.NewValueError("ParseCSV", "value column not found: "+opts.ValueColumn)
	}

	tbl := &forecast.Table{}
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "reading CSV line %d", line)
		}
		line++

		ts, err := time.Parse(opts.DateFormat, record[dateIdx])
		if err != nil {
			return nil, errors.Wrapf(err, "parsing date on line %d", line)
		}
		y, err := strconv.ParseFloat(record[valueIdx], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing value on line %d", line)
		}

		id := opts.DefaultID
		if idIdx >= 0 {
			id = record[idIdx]
		}
		tbl.Append(id, ts, y)
	}

	if tbl.Len() == 0 {
		return nil, errors.NewModelError("ParseCSV", "no data rows", errors.ErrEmptyData)
	}
	return tbl, nil
}

// LoadCSV reads a long-format CSV file from disk.
func LoadCSV(path string, opts *CSVOptions) (*forecast.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()
	return ParseCSV(f, opts)
}

// FetchCSV downloads a long-format CSV over HTTP and parses it.
func FetchCSV(ctx context.Context, url string, opts *CSVOptions) (*forecast.Table, error) {
	logger := log.GetLoggerWithName("dataset")
	logger.Info("Fetching CSV", log.OperationKey, "load", "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "building request")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "fetching %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf("mlforecast: fetching %s: unexpected status %s", url, resp.Status)
	}
	return ParseCSV(resp.Body, opts)
}

// downloadFile fetches url into path, writing through a temporary file so an
// interrupted download never leaves a truncated cache entry behind.
func downloadFile(ctx context.Context, url, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "creating cache directory")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(err, "building request")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "downloading %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Newf("mlforecast: downloading %s: unexpected status %s", url, resp.Status)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.Wrap(err, "creating temporary file")
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "writing %s", tmp.Name())
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temporary file")
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrapf(err, "moving download into place")
	}
	return nil
}
