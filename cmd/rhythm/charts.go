package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-rhythm/internal/games/rhythm/charts/formats"
)

var flagConvertOut string

var chartsCmd = &cobra.Command{
	Use:   "charts",
	Short: "Inspect and convert chart files",
	Long: `Chart files are read from --charts. Supported formats are CSV
(user_played,instrument_name,velocity,pitch,start,end), YAML and MIDI.

Examples:
  rhythm charts show etude
  rhythm charts convert ./song.mid --out ~/.rhythm/charts/song.yaml`,
}

var chartsShowCmd = &cobra.Command{
	Use:   "show <chart>",
	Short: "Show a chart's notes and metadata",
	Args:  cobra.ExactArgs(1),
	Run:   runChartsShow,
}

var chartsConvertCmd = &cobra.Command{
	Use:   "convert <file>",
	Short: "Convert a CSV or MIDI chart to YAML",
	Long: `Parses a chart file and writes it as YAML. Without --out the
result is printed to stdout.`,
	Args: cobra.ExactArgs(1),
	Run:  runChartsConvert,
}

func init() {
	chartsConvertCmd.Flags().StringVar(&flagConvertOut, "out", "", "Output file (default: stdout)")

	chartsCmd.AddCommand(chartsShowCmd)
	chartsCmd.AddCommand(chartsConvertCmd)
}

func runChartsShow(_ *cobra.Command, args []string) {
	chart := loadChart(args[0])

	fmt.Printf("%s (%s)\n", chart.Name, chart.ID)
	if chart.Artist != "" {
		fmt.Printf("Artist:   %s\n", chart.Artist)
	}
	if chart.FilePath != "" {
		fmt.Printf("File:     %s\n", chart.FilePath)
	}
	fmt.Printf("Length:   %s\n", clock(chart.Duration()))
	fmt.Printf("Notes:    %d (%d to play)\n", len(chart.Notes), chart.PlayerNotes())
	if chart.Skipped > 0 {
		fmt.Printf("Skipped:  %d malformed\n", chart.Skipped)
	}
	fmt.Printf("Hash:     %s\n", chart.Hash())

	keys := make([]string, 0, len(chart.Metadata))
	for k := range chart.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("%-9s %s\n", k+":", chart.Metadata[k])
	}

	// Instruments by note count
	byInstrument := make(map[string]int)
	for _, n := range chart.Notes {
		byInstrument[n.Instrument]++
	}
	names := make([]string, 0, len(byInstrument))
	for name := range byInstrument {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if byInstrument[names[i]] != byInstrument[names[j]] {
			return byInstrument[names[i]] > byInstrument[names[j]]
		}
		return names[i] < names[j]
	})
	fmt.Println()
	for _, name := range names {
		fmt.Printf("  %-12s  %d\n", name, byInstrument[name])
	}
}

func runChartsConvert(_ *cobra.Command, args []string) {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ext := strings.ToLower(filepath.Ext(path))
	chart, err := formats.Parse(data, ext)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", path, err)
		os.Exit(1)
	}
	if chart.ID == "" {
		chart.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if chart.Name == "" {
		chart.Name = chart.ID
	}
	if chart.Skipped > 0 {
		logger.Warn("skipped malformed notes", "file", path, "count", chart.Skipped)
	}

	out, err := formats.MarshalYAML(chart)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flagConvertOut == "" {
		os.Stdout.Write(out)
		return
	}
	if err := os.MkdirAll(filepath.Dir(expandHome(flagConvertOut)), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(expandHome(flagConvertOut), out, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d notes to %s\n", len(chart.Notes), flagConvertOut)
}
