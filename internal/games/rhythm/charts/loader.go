// Package charts loads rhythm charts from disk.
// This package depends on core but core does not depend on charts.
package charts

import (
	"crypto/sha256"
	"embed"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/tui-rhythm/internal/games/rhythm/charts/formats"
	"github.com/vovakirdan/tui-rhythm/internal/games/rhythm/core"
)

// Chart is a complete song chart.
type Chart struct {
	ID       string
	Name     string
	Artist   string
	Notes    []core.Note
	Metadata map[string]string
	Skipped  int
	FilePath string
}

// Duration returns the end of the latest note in seconds.
func (c *Chart) Duration() float64 {
	end := 0.0
	for _, n := range c.Notes {
		end = max(end, n.End)
	}
	return end
}

// PlayerNotes counts the notes the player has to hit.
func (c *Chart) PlayerNotes() int {
	count := 0
	for _, n := range c.Notes {
		if n.UserPlayed {
			count++
		}
	}
	return count
}

// Hash identifies the note content of the chart, independent of file name
// and format. Replays are keyed by it.
func (c *Chart) Hash() string {
	h := sha256.New()
	for _, n := range c.Notes {
		fmt.Fprintf(h, "%t|%s|%.4f|%d|%.4f|%.4f\n", n.UserPlayed, n.Instrument, n.Velocity, n.Pitch, n.Start, n.End)
	}
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

//go:embed builtin
var builtinFS embed.FS

// Loader handles loading charts from a directory. Charts bundled with the
// binary are always available; a directory chart with the same id wins.
type Loader struct {
	Root   string
	Logger *log.Logger // Optional; receives warnings about skipped files
}

// NewLoader creates a new chart loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all chart files.
// Returns charts sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Chart, error) {
	builtin, err := l.loadFS(builtinFS, "builtin")
	if err != nil {
		return nil, err
	}

	byID := make(map[string]Chart, len(builtin))
	for _, c := range builtin {
		byID[c.ID] = c
	}

	if l.Root != "" {
		if _, err := os.Stat(l.Root); err == nil {
			local, err := l.loadFS(os.DirFS(l.Root), ".")
			if err != nil {
				return nil, err
			}
			for _, c := range local {
				c.FilePath = filepath.Join(l.Root, c.FilePath)
				byID[c.ID] = c
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("charts: %w", err)
		}
	}

	charts := make([]Chart, 0, len(byID))
	for _, c := range byID {
		charts = append(charts, c)
	}
	sort.Slice(charts, func(i, j int) bool {
		return charts[i].ID < charts[j].ID
	})
	return charts, nil
}

func (l *Loader) loadFS(fsys fs.FS, root string) ([]Chart, error) {
	var charts []Chart

	err := fs.WalkDir(fsys, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !isSupportedExtension(ext) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("reading file %s: %w", path, err)
		}
		chart, err := l.parse(data, path)
		if err != nil {
			// Skip invalid files
			if l.Logger != nil {
				l.Logger.Warn("skipping chart", "path", path, "err", err)
			}
			return nil
		}
		charts = append(charts, chart)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("charts: walking directory %s: %w", l.Root, err)
	}
	return charts, nil
}

// LoadFile loads a single chart file. Charts without an explicit id are
// named after their file.
func (l *Loader) LoadFile(path string) (Chart, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Chart{}, fmt.Errorf("charts: reading file %s: %w", path, err)
	}
	return l.parse(data, path)
}

func (l *Loader) parse(data []byte, path string) (Chart, error) {
	ext := strings.ToLower(filepath.Ext(path))
	parsed, err := formats.Parse(data, ext)
	if err != nil {
		return Chart{}, fmt.Errorf("charts: parsing file %s: %w", path, err)
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	id := parsed.ID
	if id == "" {
		id = base
	}
	name := parsed.Name
	if name == "" {
		name = base
	}

	if parsed.Skipped > 0 && l.Logger != nil {
		l.Logger.Warn("skipped malformed notes", "chart", id, "count", parsed.Skipped)
	}

	return Chart{
		ID:       id,
		Name:     name,
		Artist:   parsed.Artist,
		Notes:    parsed.Notes,
		Metadata: parsed.Metadata,
		Skipped:  parsed.Skipped,
		FilePath: path,
	}, nil
}

// LoadByID loads a specific chart by ID.
func (l *Loader) LoadByID(id string) (Chart, error) {
	charts, err := l.LoadAll()
	if err != nil {
		return Chart{}, err
	}
	for _, c := range charts {
		if c.ID == id {
			return c, nil
		}
	}
	return Chart{}, fmt.Errorf("charts: chart not found: %s", id)
}

// ListIDs returns all chart IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	charts, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(charts))
	for i, c := range charts {
		ids[i] = c.ID
	}
	return ids, nil
}

func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
