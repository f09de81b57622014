package journal

import (
	"context"
	"strings"

	"practicelog/internal/models"
	"practicelog/internal/store"
)

// ContentInput describes a content item to create.
type ContentInput struct {
	Title string
	URL   string
	Type  string
	Tempo string
	Tags  []string
}

// ContentPatch holds optional content changes. A non-nil Tags replaces the tag set.
type ContentPatch struct {
	Title *string
	URL   *string
	Type  *string
	Tempo *string
	Tags  *[]string
}

// RepertoireInput describes a repertoire item to create. Zero Progress means the default.
type RepertoireInput struct {
	Title    string
	Composer string
	Key      string
	Progress int
	Tags     []string
}

// RepertoirePatch holds optional repertoire changes. A non-nil Tags replaces the tag set.
type RepertoirePatch struct {
	Title    *string
	Composer *string
	Key      *string
	Progress *int
	Tags     *[]string
}

// CreateContent creates a content item and links its tags.
func (s *Service) CreateContent(ctx context.Context, in ContentInput) (*models.Content, error) {
	ownerID, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, invalidf("title is required")
	}
	kind, err := models.ParseContentType(in.Type)
	if err != nil {
		return nil, invalidf("%v", err)
	}

	item := &models.Content{
		OwnerID:   ownerID,
		Title:     title,
		URL:       strings.TrimSpace(in.URL),
		Type:      kind,
		Tempo:     strings.TrimSpace(in.Tempo),
		CreatedAt: s.now().UTC(),
	}
	if err := s.gw.InsertContent(ctx, item); err != nil {
		return nil, err
	}
	if err := s.syncTags(ctx, ownerID, models.EntityContent, item.ID, in.Tags); err != nil {
		s.log().Warn("sync content tags failed", "content_id", item.ID, "error", err)
		return nil, err
	}
	return s.gw.GetContent(ctx, ownerID, item.ID)
}

// GetContent returns one content item with tags.
func (s *Service) GetContent(ctx context.Context, id string) (*models.Content, error) {
	ownerID, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}
	item, err := s.gw.GetContent(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, notFoundf("content %s", id)
	}
	return item, nil
}

// ListContent returns the caller's content library.
func (s *Service) ListContent(ctx context.Context) ([]models.Content, error) {
	ownerID, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}
	return s.gw.ListContent(ctx, ownerID)
}

// UpdateContent applies a patch and, when Tags is set, syncs the tag set.
func (s *Service) UpdateContent(ctx context.Context, id string, patch ContentPatch) (*models.Content, error) {
	ownerID, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}

	update := store.ContentUpdate{URL: trimmed(patch.URL), Tempo: trimmed(patch.Tempo)}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, invalidf("title is required")
		}
		update.Title = &title
	}
	if patch.Type != nil {
		kind, err := models.ParseContentType(*patch.Type)
		if err != nil {
			return nil, invalidf("%v", err)
		}
		update.Type = &kind
	}

	if err := s.gw.UpdateContent(ctx, ownerID, id, update); err != nil {
		return nil, err
	}
	if patch.Tags != nil {
		if err := s.syncTags(ctx, ownerID, models.EntityContent, id, *patch.Tags); err != nil {
			return nil, err
		}
	}
	return s.GetContent(ctx, id)
}

// DeleteContent removes a content item and its links.
func (s *Service) DeleteContent(ctx context.Context, id string) error {
	ownerID, err := s.owner(ctx)
	if err != nil {
		return err
	}
	return s.gw.DeleteContent(ctx, ownerID, id)
}

// CreateRepertoire creates a repertoire item and links its tags.
func (s *Service) CreateRepertoire(ctx context.Context, in RepertoireInput) (*models.Repertoire, error) {
	ownerID, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, invalidf("title is required")
	}
	progress := in.Progress
	if progress == 0 {
		progress = models.DefaultProgress
	}
	if !models.IsValidProgress(progress) {
		return nil, invalidf("progress must be between %d and %d", models.ProgressMin, models.ProgressMax)
	}

	item := &models.Repertoire{
		OwnerID:   ownerID,
		Title:     title,
		Composer:  strings.TrimSpace(in.Composer),
		Key:       strings.TrimSpace(in.Key),
		Progress:  progress,
		CreatedAt: s.now().UTC(),
	}
	if err := s.gw.InsertRepertoire(ctx, item); err != nil {
		return nil, err
	}
	if err := s.syncTags(ctx, ownerID, models.EntityRepertoire, item.ID, in.Tags); err != nil {
		s.log().Warn("sync repertoire tags failed", "repertoire_id", item.ID, "error", err)
		return nil, err
	}
	return s.gw.GetRepertoire(ctx, ownerID, item.ID)
}

// GetRepertoire returns one repertoire item with tags and derived stats.
func (s *Service) GetRepertoire(ctx context.Context, id string) (*models.Repertoire, error) {
	ownerID, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}
	item, err := s.gw.GetRepertoire(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, notFoundf("repertoire %s", id)
	}
	return item, nil
}

// ListRepertoire returns the caller's repertoire.
func (s *Service) ListRepertoire(ctx context.Context) ([]models.Repertoire, error) {
	ownerID, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}
	return s.gw.ListRepertoire(ctx, ownerID)
}

// UpdateRepertoire applies a patch and, when Tags is set, syncs the tag set.
func (s *Service) UpdateRepertoire(ctx context.Context, id string, patch RepertoirePatch) (*models.Repertoire, error) {
	ownerID, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}

	update := store.RepertoireUpdate{Composer: trimmed(patch.Composer), Key: trimmed(patch.Key)}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, invalidf("title is required")
		}
		update.Title = &title
	}
	if patch.Progress != nil {
		if !models.IsValidProgress(*patch.Progress) {
			return nil, invalidf("progress must be between %d and %d", models.ProgressMin, models.ProgressMax)
		}
		update.Progress = patch.Progress
	}

	if err := s.gw.UpdateRepertoire(ctx, ownerID, id, update); err != nil {
		return nil, err
	}
	if patch.Tags != nil {
		if err := s.syncTags(ctx, ownerID, models.EntityRepertoire, id, *patch.Tags); err != nil {
			return nil, err
		}
	}
	return s.GetRepertoire(ctx, id)
}

// DeleteRepertoire removes a repertoire item. Goals linking it keep existing unlinked.
func (s *Service) DeleteRepertoire(ctx context.Context, id string) error {
	ownerID, err := s.owner(ctx)
	if err != nil {
		return err
	}
	return s.gw.DeleteRepertoire(ctx, ownerID, id)
}

func trimmed(value *string) *string {
	if value == nil {
		return nil
	}
	v := strings.TrimSpace(*value)
	return &v
}
