package formats

import (
	"fmt"

	"github.com/vovakirdan/tui-rhythm/internal/games/rhythm/core"
	"gopkg.in/yaml.v3"
)

// YAMLChart represents the YAML structure for a chart file.
type YAMLChart struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Artist   string            `yaml:"artist,omitempty"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
	Notes    []YAMLNote        `yaml:"notes"`
}

// YAMLNote represents a single note in YAML format.
type YAMLNote struct {
	Played     bool    `yaml:"played"`
	Instrument string  `yaml:"instrument"`
	Velocity   float64 `yaml:"velocity"`
	Pitch      int     `yaml:"pitch"`
	Start      float64 `yaml:"start"`
	End        float64 `yaml:"end"`
}

// ParseYAML parses a YAML chart file.
func ParseYAML(data []byte) (Chart, error) {
	var yc YAMLChart
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return Chart{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	chart := Chart{
		ID:       yc.ID,
		Name:     yc.Name,
		Artist:   yc.Artist,
		Metadata: yc.Metadata,
	}
	for _, n := range yc.Notes {
		if n.Instrument == "" || n.Start < 0 {
			chart.Skipped++
			continue
		}
		chart.Notes = append(chart.Notes, core.NewNote(n.Played, n.Instrument, normalizeVelocity(n.Velocity), n.Pitch, n.Start, n.End))
	}
	sortNotes(chart.Notes)
	return chart, nil
}

// MarshalYAML renders a chart in the YAML format, used by `charts convert`.
func MarshalYAML(c Chart) ([]byte, error) {
	yc := YAMLChart{
		ID:       c.ID,
		Name:     c.Name,
		Artist:   c.Artist,
		Metadata: c.Metadata,
	}
	for _, n := range c.Notes {
		yc.Notes = append(yc.Notes, YAMLNote{
			Played:     n.UserPlayed,
			Instrument: n.Instrument,
			Velocity:   n.Velocity,
			Pitch:      n.Pitch,
			Start:      n.Start,
			End:        n.End,
		})
	}
	return yaml.Marshal(yc)
}
