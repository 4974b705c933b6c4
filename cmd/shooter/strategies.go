package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gh-space-shooter/internal/strategy"
)

var strategiesCmd = &cobra.Command{
	Use:   "strategies",
	Short: "List targeting strategies",
	Run:   runStrategies,
}

func runStrategies(_ *cobra.Command, _ []string) {
	fmt.Println("Strategies:")
	fmt.Println()
	for _, s := range strategy.List() {
		marker := " "
		if s.ID == strategy.Default {
			marker = "*"
		}
		fmt.Printf(" %s %-8s %-14s %s\n", marker, s.ID, s.Title, s.Description)
	}
	fmt.Println()
	fmt.Println("* default. Use with: shooter render --strategy <name>")
}
