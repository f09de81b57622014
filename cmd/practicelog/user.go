package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"practicelog/internal/auth"
	"practicelog/internal/config"
	"practicelog/internal/journal"
	"practicelog/internal/models"
	"practicelog/internal/store"
)

func newUserCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage local journal accounts",
	}
	cmd.AddCommand(newUserAddCmd(cfg, jsonOutput))
	return cmd
}

func newUserAddCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var passwordStdin bool

	cmd := &cobra.Command{
		Use:   "add <username>",
		Short: "Create one local account",
		Args:  exactly(1, "username is required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !passwordStdin {
				return fmt.Errorf("--password-stdin is required")
			}

			username, err := auth.NormalizeUsername(args[0])
			if err != nil {
				return err
			}
			password, err := readPassword(cmd.InOrStdin())
			if err != nil {
				return err
			}
			hash, err := auth.HashPassword(password)
			if err != nil {
				return err
			}

			st, err := store.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer st.Close()

			created, err := st.CreateUser(cmd.Context(), username, hash, time.Now().UTC())
			if errors.Is(err, store.ErrConflict) {
				return fmt.Errorf("user %s already exists", username)
			}
			if err != nil {
				return err
			}

			if *jsonOutput {
				return writeJSON(created)
			}
			return writePlain("created user %s (%s)\n", created.Username, created.ID)
		},
	}

	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read password from stdin")
	return cmd
}

func readPassword(r io.Reader) (string, error) {
	if r == nil {
		r = os.Stdin
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

// openUserJournal opens the local store and scopes a journal service to one account.
func openUserJournal(ctx context.Context, cfg *config.Config, username string) (*store.Store, *journal.Service, *models.User, error) {
	name, err := auth.NormalizeUsername(username)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("--user: %w", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, nil, err
	}
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, nil, err
	}
	user, err := st.GetUserByUsername(ctx, name)
	if err != nil {
		st.Close()
		return nil, nil, nil, err
	}
	if user == nil {
		st.Close()
		return nil, nil, nil, fmt.Errorf("unknown user %s (create it with: practicelog user add %s --password-stdin)", name, name)
	}
	svc := journal.New(st, journal.StaticIdentity(user.ID), journal.WithLocation(loc))
	return st, svc, user, nil
}
