package ingest

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/jgoulah/loadshape/pkg/log"
	"github.com/jgoulah/loadshape/pkg/models"
)

// TemperatureFile reads the daily temperature series: one record per line,
// whitespace- or comma-delimited fields (month day year tempF). Blank lines
// and lines starting with # are skipped; malformed lines are dropped and
// counted.
func TemperatureFile(ctx context.Context, r io.Reader) ([]models.TemperatureRecord, int, error) {
	var records []models.TemperatureRecord
	dropped := 0

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(strings.ReplaceAll(line, ",", " "))
		if len(fields) < 4 {
			dropped++
			continue
		}

		month, err1 := strconv.Atoi(fields[0])
		day, err2 := strconv.Atoi(fields[1])
		year, err3 := strconv.Atoi(fields[2])
		temp, err4 := strconv.ParseFloat(fields[3], 64)
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			dropped++
			continue
		}
		if month < 1 || month > 12 || day < 1 || day > 31 {
			dropped++
			continue
		}

		records = append(records, models.TemperatureRecord{
			Date:  time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC),
			TempF: temp,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, dropped, fmt.Errorf("reading temperature file: %w", err)
	}

	if dropped > 0 {
		log.Ctx(ctx).WarnContext(ctx, "dropped malformed temperature rows",
			slog.Int("dropped", dropped), slog.Int("kept", len(records)))
	}
	return records, dropped, nil
}
