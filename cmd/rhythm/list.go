package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-rhythm/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List charts and game modes",
	Long:  `Shows the game modes registered in the binary and every chart found in --charts.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	fmt.Println("Game modes:")
	fmt.Println()
	for _, g := range registry.List() {
		fmt.Printf("  %-16s  %s\n", g.ID, g.Title)
	}
	fmt.Println()

	list := loadCharts()
	if len(list) == 0 {
		fmt.Println("No charts available.")
		return
	}

	fmt.Println("Available charts:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, c := range list {
		maxIDLen = max(maxIDLen, len(c.ID))
	}

	// Print header
	fmt.Printf("  %-*s  %-5s  %-5s  %s\n", maxIDLen, "ID", "Notes", "Time", "Title")
	fmt.Printf("  %-*s  %-5s  %-5s  %s\n", maxIDLen, "--", "-----", "----", "-----")

	for i := range list {
		c := &list[i]
		title := c.Name
		if c.Artist != "" {
			title += " - " + c.Artist
		}
		fmt.Printf("  %-*s  %-5d  %-5s  %s\n", maxIDLen, c.ID, c.PlayerNotes(), clock(c.Duration()), title)
	}

	fmt.Println()
	fmt.Println("Run 'rhythm play <id>' to play a chart.")
}

// clock prints seconds as m:ss.
func clock(seconds float64) string {
	s := int(seconds + 0.5)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}
