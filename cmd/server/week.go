package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"pacemaker/config"
	"pacemaker/pkg/week"
)

func weekCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "week [YYYY-MM-DD]",
		Short: "Print the week key, start date and label for a date (default today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _ := config.Load()
			loc := cfg.Location()
			d := time.Now().In(loc)
			if len(args) == 1 {
				var err error
				if d, err = week.ParseDateKey(args[0], loc); err != nil {
					return fmt.Errorf("parse date %q: %w", args[0], err)
				}
			}
			start := week.DateKey(week.WeekStart(d))
			key := week.Key(d)
			label, err := week.Label(start, key)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "key:   %s\n", key)
			fmt.Fprintf(out, "start: %s\n", start)
			fmt.Fprintf(out, "label: %s\n", label)
			return nil
		},
	}
}
