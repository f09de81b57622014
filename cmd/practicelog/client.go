package main

import (
	"context"
	"fmt"
	"time"

	"practicelog/internal/api"
	"practicelog/internal/config"
)

const pingTimeout = 500 * time.Millisecond

// withClient runs fn against the configured API server once it answers a health check.
func withClient(cfg *config.Config, fn func(context.Context, *api.Client) error) error {
	client := api.NewClient(cfg.APIURL)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	err := client.Ping(ctx)
	cancel()
	if err != nil {
		return fmt.Errorf("reach %s: %w", cfg.APIURL, err)
	}

	return fn(context.Background(), client)
}
