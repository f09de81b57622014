package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"practicelog/internal/api"
	"practicelog/internal/config"
)

func newLoginCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var passwordStdin bool

	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Exchange credentials for an API token",
		Args:  exactly(1, "username is required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !passwordStdin {
				return fmt.Errorf("--password-stdin is required")
			}
			password, err := readPassword(cmd.InOrStdin())
			if err != nil {
				return err
			}

			return withClient(cfg, func(ctx context.Context, client *api.Client) error {
				resp, err := client.Login(ctx, args[0], password)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(resp)
				}
				return writePlain("export PRACTICELOG_API_TOKEN=%s\n", resp.Token)
			})
		},
	}

	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read password from stdin")
	return cmd
}
