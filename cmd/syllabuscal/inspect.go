package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"syllabuscal/internal/calendar"
	"syllabuscal/internal/ics"
)

func newInspectCmd(_ *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <calendar.ics>",
		Short: "Summarize the events of an iCalendar file",
		Long: `Print the date and summary of every event in an iCalendar file,
followed by the calendar's date range. Useful to check an exported file
before importing it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read file %s: %w", args[0], err)
			}

			entries, err := ics.Parse(body)
			if err != nil {
				return err
			}
			cal := calendar.Assemble(entries)

			w := cmd.OutOrStdout()
			for _, e := range cal.Events {
				fmt.Fprintf(w, "%s  %s\n", e.Date, e.Title)
			}
			if cal.StartDate == nil {
				fmt.Fprintln(w, "range: (none)")
				return nil
			}
			fmt.Fprintf(w, "range: %s .. %s (%d events)\n", *cal.StartDate, *cal.EndDate, len(cal.Events))
			return nil
		},
	}
}
