package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"practicelog/internal/auth"
	"practicelog/internal/config"
	"practicelog/internal/journal"
	"practicelog/internal/server"
	"practicelog/internal/store"
)

func newSrvCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "srv",
		Short: "Run the practicelog API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg == nil {
				return fmt.Errorf("config not initialized")
			}
			if cfg.DBPath == "" {
				return fmt.Errorf("db path is required")
			}
			if strings.TrimSpace(cfg.Auth.TokenSecret) == "" {
				return fmt.Errorf("auth.token_secret is required (set PRACTICELOG_TOKEN_SECRET or run: practicelog config set auth.token_secret <value>)")
			}

			logger := slog.Default().With("component", "server")

			addr, err := server.ListenAddr(cfg.APIURL)
			if err != nil {
				return err
			}
			loc, err := cfg.Location()
			if err != nil {
				return err
			}
			tokens, err := auth.NewTokenIssuer(cfg.Auth.TokenSecret, cfg.TokenTTL())
			if err != nil {
				return err
			}

			logger.Info("opening database", "path", cfg.DBPath, "timezone", loc.String())
			st, err := store.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer st.Close()

			svc := journal.New(st, journal.ContextIdentity{},
				journal.WithLogger(slog.Default().With("component", "journal")),
				journal.WithLocation(loc),
				journal.WithSessionCache(journal.NewSessionCache()),
			)
			return server.New(addr, svc, st, tokens, logger).ListenAndServe()
		},
	}
}
