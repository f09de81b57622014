package main

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// atLeast rejects fewer than min positional args with message.
func atLeast(min int, message string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) < min {
			return errors.New(message)
		}
		return nil
	}
}

// exactly rejects any count other than n with message.
func exactly(n int, message string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != n {
			return errors.New(message)
		}
		return nil
	}
}

// withJournalID runs count, then requires args[pos] to be a row id rather than a
// display number such as "1.2".
func withJournalID(count cobra.PositionalArgs, pos int, name string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := count(cmd, args); err != nil {
			return err
		}
		if _, err := uuid.Parse(args[pos]); err != nil {
			return fmt.Errorf("invalid %s %q: expected an id such as those printed by list commands", name, args[pos])
		}
		return nil
	}
}
