package formats

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vovakirdan/tui-rhythm/internal/games/rhythm/core"
)

// csvFields is the column order of a chart row:
// user_played,instrument_name,velocity,pitch,start,end
const csvFields = 6

// ParseCSV parses the delimited chart format. The first line is a header and
// is skipped. Malformed rows are skipped and counted in Chart.Skipped.
func ParseCSV(data []byte) (Chart, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var chart Chart
	header := true
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			chart.Skipped++
			continue
		}
		if err != nil {
			return Chart{}, fmt.Errorf("csv read: %w", err)
		}
		if header {
			header = false
			continue
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}

		n, err := parseCSVRecord(rec)
		if err != nil {
			chart.Skipped++
			continue
		}
		chart.Notes = append(chart.Notes, n)
	}

	if chart.Notes == nil && chart.Skipped > 0 {
		return Chart{}, fmt.Errorf("csv: no valid rows (%d skipped)", chart.Skipped)
	}
	sortNotes(chart.Notes)
	return chart, nil
}

func parseCSVRecord(rec []string) (core.Note, error) {
	if len(rec) < csvFields {
		return core.Note{}, fmt.Errorf("want %d fields, got %d", csvFields, len(rec))
	}
	for i := range rec {
		rec[i] = strings.TrimSpace(rec[i])
	}

	played, err := strconv.ParseBool(rec[0])
	if err != nil {
		return core.Note{}, fmt.Errorf("user_played: %w", err)
	}
	if rec[1] == "" {
		return core.Note{}, errors.New("instrument_name is empty")
	}
	velocity, err := strconv.ParseFloat(rec[2], 64)
	if err != nil {
		return core.Note{}, fmt.Errorf("velocity: %w", err)
	}
	pitch, err := strconv.Atoi(rec[3])
	if err != nil {
		return core.Note{}, fmt.Errorf("pitch: %w", err)
	}
	start, err := strconv.ParseFloat(rec[4], 64)
	if err != nil {
		return core.Note{}, fmt.Errorf("start: %w", err)
	}
	end, err := strconv.ParseFloat(rec[5], 64)
	if err != nil {
		return core.Note{}, fmt.Errorf("end: %w", err)
	}

	return core.NewNote(played, rec[1], normalizeVelocity(velocity), pitch, start, end), nil
}
