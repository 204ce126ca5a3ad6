package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"syllabuscal/internal/calendar"
	"syllabuscal/internal/extract"
	"syllabuscal/internal/ics"
	"syllabuscal/internal/model"
)

type extractOptions struct {
	format    string
	title     string
	reference string
	out       string
}

// extractResult mirrors the upload response of the syllabus service.
type extractResult struct {
	Events   []model.ExtractedEvent `json:"events"`
	Calendar model.Calendar         `json:"calendar"`
}

func newExtractCmd(root *rootOptions) *cobra.Command {
	opts := &extractOptions{}

	cmd := &cobra.Command{
		Use:   "extract <syllabus.pdf>",
		Short: "Extract dated events from a syllabus PDF",
		Long: `Extract dated events from a syllabus PDF.

Examples:
  # JSON events and calendar bounds
  syllabuscal extract syllabus.pdf

  # iCalendar file for import into a calendar app
  syllabuscal extract --format ics --title "CS 101" --out cs101.ics syllabus.pdf

  # Resolve dates without a year relative to a fixed day
  syllabuscal extract --reference 2024-01-08 syllabus.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, root, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "json", "Output format: json or ics")
	cmd.Flags().StringVar(&opts.title, "title", "", "Calendar name for ics output (default from config)")
	cmd.Flags().StringVar(&opts.reference, "reference", "", "Reference date YYYY-MM-DD for year-less dates (default today, UTC)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Write output to file instead of stdout")
	return cmd
}

func runExtract(cmd *cobra.Command, root *rootOptions, opts *extractOptions, path string) error {
	format := strings.ToLower(opts.format)
	if format != "json" && format != "ics" {
		return fmt.Errorf("unsupported format %q (want json or ics)", opts.format)
	}
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return fmt.Errorf("%s: input must be a PDF file", path)
	}

	now := time.Now().UTC()
	ref := now
	if opts.reference != "" {
		t, err := time.Parse(time.DateOnly, opts.reference)
		if err != nil {
			return fmt.Errorf("invalid --reference %q: %w", opts.reference, err)
		}
		ref = t
	}

	cfg, err := loadConfig(root)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", path, err)
	}

	events := extract.New(*cfg).Extract(cmd.Context(), data, ref)
	cal := calendar.FromEvents(events)

	title := opts.title
	if title == "" {
		title = cfg.Calendar.Title
	}
	write := func(w io.Writer) error {
		if format == "ics" {
			_, err := io.WriteString(w, ics.Render(cal, title, now))
			return err
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(extractResult{Events: events, Calendar: cal})
	}

	if opts.out == "" {
		return write(cmd.OutOrStdout())
	}
	return writeFile(opts.out, write)
}

// writeFile creates path and hands it to write. A failed Close is reported
// when the write itself succeeded.
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()
	return write(f)
}
