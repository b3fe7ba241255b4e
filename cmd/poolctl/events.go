package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/joshuapare/poolkit/pool/telemetry"
)

func init() {
	rootCmd.AddCommand(newEventsCmd())
}

func newEventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events <log>",
		Short: "Decode and print a telemetry event log",
		Long: `The events command decodes a telemetry log written by a poolkit arena
and prints every lifecycle event in order.

Example:
  poolctl events pool.events
  poolctl events pool.events --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvents(args[0])
		},
	}
	return cmd
}

// eventDoc is the JSON projection of a telemetry event.
type eventDoc struct {
	Kind         string `json:"kind"`
	Time         string `json:"time"`
	ArenaSerial  uint32 `json:"arena"`
	FormatSerial uint32 `json:"format,omitempty"`
	Alignment    uint32 `json:"alignment,omitempty"`
	Variety      uint8  `json:"variety,omitempty"`
}

func runEvents(path string) error {
	slog.Debug("opening telemetry log", "path", path)

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}
	defer f.Close()

	events, err := telemetry.ReadAll(f)
	if err != nil {
		return fmt.Errorf("failed to decode log: %w", err)
	}
	slog.Debug("decoded telemetry log", "events", len(events))

	if jsonOut {
		docs := make([]eventDoc, 0, len(events))
		for _, ev := range events {
			docs = append(docs, eventDoc{
				Kind:         ev.Kind.String(),
				Time:         time.Unix(0, ev.Time).UTC().Format(time.RFC3339Nano),
				ArenaSerial:  ev.ArenaSerial,
				FormatSerial: ev.FormatSerial,
				Alignment:    ev.Alignment,
				Variety:      ev.Variety,
			})
		}
		return printJSON(docs)
	}

	for _, ev := range events {
		ts := time.Unix(0, ev.Time).UTC().Format(time.RFC3339Nano)
		switch ev.Kind {
		case telemetry.KindFormatCreate:
			fmt.Printf("%s %-13s arena=%d format=%d alignment=%d variety=%d\n",
				ts, ev.Kind, ev.ArenaSerial, ev.FormatSerial, ev.Alignment, ev.Variety)
		case telemetry.KindFormatDestroy:
			fmt.Printf("%s %-13s arena=%d format=%d\n",
				ts, ev.Kind, ev.ArenaSerial, ev.FormatSerial)
		default:
			fmt.Printf("%s %-13s arena=%d\n", ts, ev.Kind, ev.ArenaSerial)
		}
	}
	fmt.Printf("%d event(s)\n", len(events))
	return nil
}
