package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"practicelog/internal/api"
	"practicelog/internal/config"
)

func newLogCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Record and list practice logs",
	}
	cmd.AddCommand(
		newLogAddCmd(cfg, jsonOutput),
		newLogListCmd(cfg, jsonOutput),
		newLogTodayCmd(cfg, jsonOutput),
	)
	return cmd
}

func newLogAddCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var date string
	var repertoireIDs []string
	var contentIDs []string

	cmd := &cobra.Command{
		Use:   "add <goal-id> <entry>",
		Short: "Record a practice log against a goal",
		Args:  withJournalID(atLeast(2, "goal id and entry are required"), 0, "goal id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := api.LogCreateRequest{
				Entry:         strings.Join(args[1:], " "),
				Date:          date,
				ContentIDs:    contentIDs,
				RepertoireIDs: repertoireIDs,
			}
			return withClient(cfg, func(ctx context.Context, client *api.Client) error {
				resp, err := client.CreateLog(ctx, args[0], req)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(resp)
				}
				if err := writePlain("logged %s on %s (%s)\n", resp.Log.GoalID, resp.Log.Date, resp.Log.ID); err != nil {
					return err
				}
				for _, failure := range resp.Result.Failures {
					fmt.Fprintf(os.Stderr, "warning: %s %s: %s\n", failure.Step, failure.ID, failure.Error)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "log date (YYYY-MM-DD, default today)")
	cmd.Flags().StringSliceVar(&repertoireIDs, "repertoire", nil, "repertoire ids practiced")
	cmd.Flags().StringSliceVar(&contentIDs, "content", nil, "content ids used")
	return cmd
}

func newLogListCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "list <goal-id>",
		Short: "List a goal's logs, newest first",
		Args:  withJournalID(exactly(1, "goal id is required"), 0, "goal id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(ctx context.Context, client *api.Client) error {
				logs, err := client.ListLogs(ctx, args[0])
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(logs)
				}
				for _, entry := range logs {
					if err := writePlain("%s  %s\n", entry.Date, entry.Entry); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

func newLogTodayCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "session",
		Short: "Show the session plan and logs for a day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			day := strings.TrimSpace(date)
			if day == "" {
				loc, err := cfg.Location()
				if err != nil {
					return err
				}
				day = todayIn(loc)
			}
			return withClient(cfg, func(ctx context.Context, client *api.Client) error {
				resp, err := client.GetSession(ctx, day)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(resp)
				}
				if err := writePlain("%s: %d planned goals, %d logs\n", resp.Date, len(resp.Session.GoalIDs), len(resp.Logs)); err != nil {
					return err
				}
				for _, goalID := range resp.Session.GoalIDs {
					if err := writePlain("  goal %s\n", goalID); err != nil {
						return err
					}
				}
				for _, entry := range resp.Logs {
					if err := writePlain("  log  %s\n", entry.Entry); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "session date (YYYY-MM-DD, default today)")
	return cmd
}
