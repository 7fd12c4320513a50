package dataset

import (
	"context"
	"encoding/csv"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Naren8520/mlforecast/forecast"
	"github.com/Naren8520/mlforecast/pkg/errors"
	"github.com/Naren8520/mlforecast/pkg/log"
)

// M4Group identifies one of the M4 competition frequency groups.
type M4Group string

const (
	M4Yearly    M4Group = "Yearly"
	M4Quarterly M4Group = "Quarterly"
	M4Monthly   M4Group = "Monthly"
	M4Weekly    M4Group = "Weekly"
	M4Daily     M4Group = "Daily"
	M4Hourly    M4Group = "Hourly"
)

// m4BaseURL hosts the official M4 competition training files.
const m4BaseURL = "https://raw.githubusercontent.com/Mcompetitions/M4-methods/master/Dataset/Train"

// Frequency returns the calendar frequency of the group. Quarterly data is
// stepped as three months.
func (g M4Group) Frequency() (forecast.Frequency, int, error) {
	switch g {
	case M4Yearly:
		return forecast.Yearly, 1, nil
	case M4Quarterly:
		return forecast.Monthly, 3, nil
	case M4Monthly:
		return forecast.Monthly, 1, nil
	case M4Weekly:
		return forecast.Weekly, 1, nil
	case M4Daily:
		return forecast.Daily, 1, nil
	case M4Hourly:
		return forecast.Hourly, 1, nil
	default:
		return 0, 0, errors.NewValidationError("group", "unknown M4 group", string(g))
	}
}

// M4Options controls the loader.
type M4Options struct {
	// MaxSeries keeps only the first n series of the file. Zero keeps all.
	MaxSeries int

	// Origin anchors the synthetic timestamps. M4 publishes observation
	// indices rather than dates, so each series is laid out from Origin at
	// the group frequency. Zero value means 1970-01-01.
	Origin time.Time
}

// LoadM4 returns the training values of an M4 group as a Table. The group
// file is downloaded once and cached under dir; later calls read the cache.
func LoadM4(ctx context.Context, dir string, group M4Group, opts *M4Options) (*forecast.Table, error) {
	if opts == nil {
		opts = &M4Options{}
	}
	freq, step, err := group.Frequency()
	if err != nil {
		return nil, err
	}
	origin := opts.Origin
	if origin.IsZero() {
		origin = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	}

	path := filepath.Join(dir, string(group)+"-train.csv")
	logger := log.GetLoggerWithName("dataset.m4")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		url := m4BaseURL + "/" + string(group) + "-train.csv"
		logger.Info("Downloading M4 group",
			log.OperationKey, "load",
			"group", string(group),
			"url", url)
		if err := downloadFile(ctx, url, path); err != nil {
			return nil, err
		}
	} else {
		logger.Info("Using cached M4 group",
			log.OperationKey, "load",
			"group", string(group),
			"path", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	tbl, err := parseM4(f, freq, step, origin, opts.MaxSeries)
	if err != nil {
		return nil, err
	}

	logger.Info("M4 group loaded",
		"group", string(group),
		log.SamplesKey, tbl.Len())
	return tbl, nil
}

// parseM4 reads the wide M4 training format: one row per series, the series
// id in the first column followed by its observations, rows padded with
// empty fields to the longest series.
func parseM4(r io.Reader, freq forecast.Frequency, step int, origin time.Time, maxSeries int) (*forecast.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // rows have varying lengths

	// Header row: V1, V2, ...
	if _, err := reader.Read(); err != nil {
		return nil, errors.Wrap(err, "reading M4 header")
	}

	tbl := &forecast.Table{}
	nSeries := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "reading M4 row")
		}
		if maxSeries > 0 && nSeries >= maxSeries {
			break
		}

		id := record[0]
		ts := origin
		for _, field := range record[1:] {
			if field == "" {
				break
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "parsing value for series %s", id)
			}
			if math.IsNaN(v) {
				break
			}
			tbl.Append(id, ts, v)
			ts = freq.Next(ts, step)
		}
		nSeries++
	}

	if tbl.Len() == 0 {
		return nil, errors.NewModelError("parseM4", "no series parsed", errors.ErrEmptyData)
	}
	return tbl, nil
}
