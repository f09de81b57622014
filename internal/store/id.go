package store

import (
	"fmt"

	"github.com/google/uuid"
)

// newID returns a time-ordered UUID v7 string for a new row.
func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return id.String(), nil
}

// assignID fills *id when it is empty and leaves caller-provided ids alone.
func assignID(id *string) error {
	if *id != "" {
		return nil
	}
	generated, err := newID()
	if err != nil {
		return err
	}
	*id = generated
	return nil
}
