// Package formats provides pluggable chart file parsers.
package formats

import (
	"fmt"
	"sort"

	"github.com/vovakirdan/tui-rhythm/internal/games/rhythm/core"
)

// Chart is a parsed chart ready for the loader.
type Chart struct {
	ID       string
	Name     string
	Artist   string
	Notes    []core.Note
	Metadata map[string]string
	Skipped  int // Rows or events that could not be turned into notes
}

// Parse routes data to the parser registered for ext.
func Parse(data []byte, ext string) (Chart, error) {
	switch ext {
	case ".csv":
		return ParseCSV(data)
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".mid", ".midi":
		return ParseMIDI(data)
	default:
		return Chart{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".csv", ".yaml", ".yml", ".mid", ".midi"}
}

// normalizeVelocity accepts both [0, 1] and MIDI-style [0, 127] velocities.
func normalizeVelocity(v float64) float64 {
	if v > 1 {
		v /= 127
	}
	return min(max(v, 0), 1)
}

func sortNotes(notes []core.Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].Start < notes[j].Start
	})
}
