package main

import (
	"context"
	"errors"
	"net"

	"practicelog/internal/api"
)

func formatCLIError(err error) []string {
	if err == nil {
		return nil
	}

	lines := []string{err.Error()}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		switch {
		case errors.Is(apiErr, api.ErrUnauthorized):
			lines = append(lines, "hint: run `practicelog login <username> --password-stdin` and export PRACTICELOG_API_TOKEN.")
		case errors.Is(apiErr, api.ErrRateLimited):
			lines = append(lines, "hint: too many failed logins; wait a few minutes before retrying.")
		case errors.Is(apiErr, api.ErrNotFound):
			lines = append(lines, "hint: ids are printed by `practicelog topic list` and `practicelog topic goals <topic-id>`.")
		}
		if apiErr.Code == "" {
			lines = append(lines, "hint: verify PRACTICELOG_API_URL points to a practicelog server.")
		}
		if apiErr.ServerFault() {
			lines = append(lines, "hint: server returned an internal error; check server logs for details.")
		}
		return uniqueLines(lines)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		lines = append(lines, "hint: request timed out; check server health or increase PRACTICELOG_HTTP_TIMEOUT.")
		return uniqueLines(lines)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		lines = append(lines,
			"hint: ensure a practicelog server is running at PRACTICELOG_API_URL.",
			"hint: start a local server with: practicelog srv",
		)
		return uniqueLines(lines)
	}

	return uniqueLines(lines)
}

func uniqueLines(lines []string) []string {
	seen := make(map[string]struct{}, len(lines))
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line == "" {
			continue
		}
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		out = append(out, line)
	}
	return out
}
