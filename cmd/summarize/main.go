package main

import (
	"fmt"
	"os"
	"time"

	"bithumb-ai-trader/internal/summary"
)

// Generates the daily trade summary CSV for a given date (default: today,
// KST). Useful for regenerating a summary outside the bot's own rollover.
func main() {
	day := time.Now()
	if len(os.Args) > 1 {
		parsed, err := time.Parse("2006-01-02", os.Args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid date %q, expected YYYY-MM-DD: %v\n", os.Args[1], err)
			os.Exit(1)
		}
		day = parsed
	}

	path, err := summary.SummarizeDay(day)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Summary failed: %v\n", err)
		os.Exit(1)
	}
	if path == "" {
		fmt.Println("No orders logged for", day.Format("2006-01-02"))
		return
	}
	fmt.Println("Summary written:", path)
}
