// Package ingest parses the external demand and temperature inputs into
// typed records. Malformed rows are dropped and counted, never coerced.
package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/jgoulah/loadshape/pkg/log"
	"github.com/jgoulah/loadshape/pkg/models"
)

// DefaultDemandColumn is the demand column name used when the config does
// not name one.
const DefaultDemandColumn = "demand_mw"

// timestampLayouts are tried in order when parsing the timestamp column.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"1/2/2006 15:04",
}

// DemandCSV reads a demand series from CSV. The first row is a header; the
// timestamp column is the one named "timestamp" (or the first column if
// none is), and the demand column is matched by name. Rows with an
// unparseable timestamp or demand value are dropped; the dropped count is
// returned and logged.
func DemandCSV(ctx context.Context, r io.Reader, demandColumn string) ([]models.Reading, int, error) {
	if demandColumn == "" {
		demandColumn = DefaultDemandColumn
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("reading header: %w", err)
	}

	tsCol := 0
	demandCol := -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "timestamp":
			tsCol = i
		case strings.ToLower(demandColumn):
			demandCol = i
		}
	}
	if demandCol < 0 {
		return nil, 0, fmt.Errorf("demand column %q not found in header", demandColumn)
	}

	var readings []models.Reading
	dropped := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A structurally broken row counts as malformed, same as an
			// unparseable value.
			dropped++
			continue
		}
		if len(row) <= tsCol || len(row) <= demandCol {
			dropped++
			continue
		}

		ts, ok := parseTimestamp(row[tsCol])
		if !ok {
			dropped++
			continue
		}
		demand, err := strconv.ParseFloat(strings.TrimSpace(row[demandCol]), 64)
		if err != nil || demand < 0 {
			dropped++
			continue
		}

		readings = append(readings, models.Reading{Timestamp: ts, DemandMW: demand})
	}

	if dropped > 0 {
		log.Ctx(ctx).WarnContext(ctx, "dropped malformed demand rows",
			slog.Int("dropped", dropped), slog.Int("kept", len(readings)))
	}
	return readings, dropped, nil
}

func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
