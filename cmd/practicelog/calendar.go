package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"practicelog/internal/calendar"
	"practicelog/internal/config"
)

func newCalendarCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var username string
	var year int

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Print a year of practice activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, svc, _, err := openUserJournal(cmd.Context(), cfg, username)
			if err != nil {
				return err
			}
			defer st.Close()

			if year == 0 {
				year = time.Now().In(svc.Location()).Year()
			}
			hm, err := svc.YearActivity(cmd.Context(), year)
			if err != nil {
				return err
			}
			if *jsonOutput {
				return writeJSON(hm)
			}
			return renderHeatmap(os.Stdout, hm)
		},
	}

	cmd.Flags().StringVar(&username, "user", "", "account to read")
	cmd.Flags().IntVar(&year, "year", 0, "calendar year (default current year)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func todayIn(loc *time.Location) string {
	return calendar.Today(loc, time.Now())
}
