package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"practicelog/internal/models"
)

const (
	contentColumns    = `id, owner_id, title, url, type, tempo, created_at`
	repertoireColumns = `id, owner_id, title, composer, key, progress, practice_count, last_practiced, created_at`
)

// InsertContent inserts a content item.
func (s *Store) InsertContent(ctx context.Context, content *models.Content) error {
	if content == nil {
		return fmt.Errorf("content is required")
	}
	if !models.IsValidContentType(content.Type) {
		return fmt.Errorf("invalid content type: %s", content.Type)
	}
	if err := assignID(&content.ID); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO content (id, owner_id, title, url, type, tempo, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, content.ID, content.OwnerID, content.Title, content.URL, string(content.Type), nullIfEmpty(content.Tempo), formatTime(content.CreatedAt))
	return classifyWriteError(err)
}

// GetContent returns one content item with its tag names, or nil.
func (s *Store) GetContent(ctx context.Context, ownerID, id string) (*models.Content, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+contentColumns+` FROM content WHERE owner_id = ? AND id = ?`, ownerID, id)
	content, err := scanContent(row)
	if err != nil || content == nil {
		return content, err
	}
	if content.Tags, err = s.entityTagNames(ctx, ownerID, models.EntityContent, content.ID); err != nil {
		return nil, err
	}
	return content, nil
}

// ListContent returns the owner's content ordered by title.
func (s *Store) ListContent(ctx context.Context, ownerID string) ([]models.Content, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+contentColumns+` FROM content
		WHERE owner_id = ?
		ORDER BY title COLLATE NOCASE ASC, id ASC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.Content{}
	for rows.Next() {
		content, err := scanContent(rows)
		if err != nil {
			return nil, err
		}
		if content != nil {
			items = append(items, *content)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	tags, err := s.tagNamesFor(ctx, ownerID, models.EntityContent)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].Tags = tags[items[i].ID]
	}
	return items, nil
}

// UpdateContent applies the non-nil fields of update.
func (s *Store) UpdateContent(ctx context.Context, ownerID, id string, update ContentUpdate) error {
	set := []string{}
	args := []any{}

	if update.Title != nil {
		if strings.TrimSpace(*update.Title) == "" {
			return fmt.Errorf("title is required")
		}
		set = append(set, "title = ?")
		args = append(args, *update.Title)
	}
	if update.URL != nil {
		set = append(set, "url = ?")
		args = append(args, *update.URL)
	}
	if update.Type != nil {
		if !models.IsValidContentType(*update.Type) {
			return fmt.Errorf("invalid content type: %s", *update.Type)
		}
		set = append(set, "type = ?")
		args = append(args, string(*update.Type))
	}
	if update.Tempo != nil {
		set = append(set, "tempo = ?")
		args = append(args, nullIfEmpty(*update.Tempo))
	}
	if len(set) == 0 {
		return s.requireExists(ctx, "content", ownerID, id)
	}

	args = append(args, ownerID, id)
	query := fmt.Sprintf("UPDATE content SET %s WHERE owner_id = ? AND id = ?", strings.Join(set, ", "))
	return s.execAffecting(ctx, query, args...)
}

// DeleteContent removes a content item, its goal/log links and its tag links.
func (s *Store) DeleteContent(ctx context.Context, ownerID, id string) error {
	return s.deleteTaggedEntity(ctx, "content", models.EntityContent, ownerID, id)
}

// InsertRepertoire inserts a repertoire item with zeroed stats.
func (s *Store) InsertRepertoire(ctx context.Context, item *models.Repertoire) error {
	if item == nil {
		return fmt.Errorf("repertoire is required")
	}
	if !models.IsValidProgress(item.Progress) {
		return fmt.Errorf("invalid progress: %d", item.Progress)
	}
	if err := assignID(&item.ID); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO repertoire (id, owner_id, title, composer, key, progress, practice_count, last_practiced, created_at)
		VALUES (?, ?, ?, ?, ?, ?, 0, NULL, ?)
	`, item.ID, item.OwnerID, item.Title, item.Composer, nullIfEmpty(item.Key), item.Progress, formatTime(item.CreatedAt))
	if err != nil {
		return classifyWriteError(err)
	}
	item.PracticeCount = 0
	item.LastPracticed = ""
	return nil
}

// GetRepertoire returns one repertoire item with its tag names, or nil.
func (s *Store) GetRepertoire(ctx context.Context, ownerID, id string) (*models.Repertoire, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+repertoireColumns+` FROM repertoire WHERE owner_id = ? AND id = ?`, ownerID, id)
	item, err := scanRepertoire(row)
	if err != nil || item == nil {
		return item, err
	}
	if item.Tags, err = s.entityTagNames(ctx, ownerID, models.EntityRepertoire, item.ID); err != nil {
		return nil, err
	}
	return item, nil
}

// ListRepertoire returns the owner's repertoire ordered by title.
func (s *Store) ListRepertoire(ctx context.Context, ownerID string) ([]models.Repertoire, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+repertoireColumns+` FROM repertoire
		WHERE owner_id = ?
		ORDER BY title COLLATE NOCASE ASC, id ASC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.Repertoire{}
	for rows.Next() {
		item, err := scanRepertoire(rows)
		if err != nil {
			return nil, err
		}
		if item != nil {
			items = append(items, *item)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	tags, err := s.tagNamesFor(ctx, ownerID, models.EntityRepertoire)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].Tags = tags[items[i].ID]
	}
	return items, nil
}

// UpdateRepertoire applies the non-nil fields of update.
func (s *Store) UpdateRepertoire(ctx context.Context, ownerID, id string, update RepertoireUpdate) error {
	set := []string{}
	args := []any{}

	if update.Title != nil {
		if strings.TrimSpace(*update.Title) == "" {
			return fmt.Errorf("title is required")
		}
		set = append(set, "title = ?")
		args = append(args, *update.Title)
	}
	if update.Composer != nil {
		set = append(set, "composer = ?")
		args = append(args, *update.Composer)
	}
	if update.Key != nil {
		set = append(set, "key = ?")
		args = append(args, nullIfEmpty(*update.Key))
	}
	if update.Progress != nil {
		if !models.IsValidProgress(*update.Progress) {
			return fmt.Errorf("invalid progress: %d", *update.Progress)
		}
		set = append(set, "progress = ?")
		args = append(args, *update.Progress)
	}
	if len(set) == 0 {
		return s.requireExists(ctx, "repertoire", ownerID, id)
	}

	args = append(args, ownerID, id)
	query := fmt.Sprintf("UPDATE repertoire SET %s WHERE owner_id = ? AND id = ?", strings.Join(set, ", "))
	return s.execAffecting(ctx, query, args...)
}

// DeleteRepertoire removes a repertoire item and its tag links. Goals that
// referenced it directly keep existing with the link cleared.
func (s *Store) DeleteRepertoire(ctx context.Context, ownerID, id string) error {
	return s.deleteTaggedEntity(ctx, "repertoire", models.EntityRepertoire, ownerID, id)
}

// deleteTaggedEntity deletes a row and its polymorphic tag links in one transaction.
// table is always a package constant.
func (s *Store) deleteTaggedEntity(ctx context.Context, table string, kind models.EntityKind, ownerID, id string) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE owner_id = ? AND id = ?", ownerID, id)
	if err != nil {
		return err
	}
	if err = requireAffected(res); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM entity_tags WHERE entity_type = ? AND entity_id = ?`, string(kind), id); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) entityTagNames(ctx context.Context, ownerID string, kind models.EntityKind, id string) ([]string, error) {
	tags, err := s.ListEntityTags(ctx, ownerID, kind, id)
	if err != nil || len(tags) == 0 {
		return nil, err
	}
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	return names, nil
}

func (s *Store) requireExists(ctx context.Context, table, ownerID, id string) error {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table+" WHERE owner_id = ? AND id = ?", ownerID, id).Scan(&count)
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}

// tagNamesFor maps entity id to sorted tag names for every tagged entity of one kind.
func (s *Store) tagNamesFor(ctx context.Context, ownerID string, kind models.EntityKind) (map[string][]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT et.entity_id, t.name
		FROM entity_tags et JOIN tags t ON t.id = et.tag_id
		WHERE t.owner_id = ? AND et.entity_type = ?
		ORDER BY et.entity_id, t.name
	`, ownerID, string(kind))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string][]string{}
	for rows.Next() {
		var entityID, name string
		if err := rows.Scan(&entityID, &name); err != nil {
			return nil, err
		}
		out[entityID] = append(out[entityID], name)
	}
	return out, rows.Err()
}

func scanContent(scanner rowScanner) (*models.Content, error) {
	var (
		content   models.Content
		kind      string
		tempo     sql.NullString
		createdAt string
	)
	err := scanner.Scan(&content.ID, &content.OwnerID, &content.Title, &content.URL, &kind, &tempo, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	content.Type = models.ContentType(kind)
	content.Tempo = tempo.String
	if content.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &content, nil
}

func scanRepertoire(scanner rowScanner) (*models.Repertoire, error) {
	var (
		item          models.Repertoire
		key           sql.NullString
		lastPracticed sql.NullString
		createdAt     string
	)
	err := scanner.Scan(
		&item.ID,
		&item.OwnerID,
		&item.Title,
		&item.Composer,
		&key,
		&item.Progress,
		&item.PracticeCount,
		&lastPracticed,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	item.Key = key.String
	item.LastPracticed = lastPracticed.String
	if item.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &item, nil
}
