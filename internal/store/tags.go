package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"practicelog/internal/models"
)

// GetTagByName returns the owner's tag with an already-normalized name, or nil.
func (s *Store) GetTagByName(ctx context.Context, ownerID, name string) (*models.Tag, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, owner_id, name FROM tags WHERE owner_id = ? AND name = ?`, ownerID, name)
	return scanTag(row)
}

// InsertTag inserts a tag. An existing (owner, name) pair returns ErrConflict.
func (s *Store) InsertTag(ctx context.Context, tag *models.Tag) error {
	if tag == nil {
		return fmt.Errorf("tag is required")
	}
	if tag.Name == "" {
		return fmt.Errorf("tag name is required")
	}
	if err := assignID(&tag.ID); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO tags (id, owner_id, name) VALUES (?, ?, ?)`, tag.ID, tag.OwnerID, tag.Name)
	return classifyWriteError(err)
}

// ListTags returns all of the owner's tags by name.
func (s *Store) ListTags(ctx context.Context, ownerID string) ([]models.Tag, error) {
	return s.queryTags(ctx, `SELECT id, owner_id, name FROM tags WHERE owner_id = ? ORDER BY name`, ownerID)
}

// ListEntityTags returns the tags linked to one entity.
func (s *Store) ListEntityTags(ctx context.Context, ownerID string, kind models.EntityKind, entityID string) ([]models.Tag, error) {
	return s.queryTags(ctx, `
		SELECT t.id, t.owner_id, t.name
		FROM entity_tags et JOIN tags t ON t.id = et.tag_id
		WHERE t.owner_id = ? AND et.entity_type = ? AND et.entity_id = ?
		ORDER BY t.name
	`, ownerID, string(kind), entityID)
}

// LinkTag links one of the owner's tags to an entity. An existing link returns
// ErrConflict; a tag the owner does not have returns ErrNotFound.
func (s *Store) LinkTag(ctx context.Context, ownerID string, kind models.EntityKind, entityID, tagID string) error {
	if !models.IsValidEntityKind(kind) {
		return fmt.Errorf("invalid entity kind: %s", kind)
	}
	return s.execAffecting(ctx, `
		INSERT INTO entity_tags (entity_type, entity_id, tag_id)
		SELECT ?, ?, t.id FROM tags t
		WHERE t.owner_id = ? AND t.id = ?
	`, string(kind), entityID, ownerID, tagID)
}

// UnlinkTag removes a link to one of the owner's tags. A missing link is not an error.
func (s *Store) UnlinkTag(ctx context.Context, ownerID string, kind models.EntityKind, entityID, tagID string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM entity_tags
		WHERE entity_type = ? AND entity_id = ?
		  AND tag_id IN (SELECT id FROM tags WHERE owner_id = ? AND id = ?)
	`, string(kind), entityID, ownerID, tagID)
	return err
}

func (s *Store) queryTags(ctx context.Context, query string, args ...any) ([]models.Tag, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []models.Tag{}
	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		if tag != nil {
			tags = append(tags, *tag)
		}
	}
	return tags, rows.Err()
}

func scanTag(scanner rowScanner) (*models.Tag, error) {
	var tag models.Tag
	if err := scanner.Scan(&tag.ID, &tag.OwnerID, &tag.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &tag, nil
}
