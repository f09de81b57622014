package journal

import (
	"context"
	"errors"
	"fmt"

	"practicelog/internal/models"
	"practicelog/internal/store"
)

// FindOrCreateTag returns the owner's tag for name, creating it if needed. A lost
// creation race resolves to the row the other caller inserted.
func (s *Service) FindOrCreateTag(ctx context.Context, name string) (*models.Tag, error) {
	ownerID, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}
	return s.findOrCreateTag(ctx, ownerID, name)
}

func (s *Service) findOrCreateTag(ctx context.Context, ownerID, name string) (*models.Tag, error) {
	normalized := models.NormalizeTagName(name)
	if normalized == "" {
		return nil, invalidf("tag name is required")
	}

	existing, err := s.gw.GetTagByName(ctx, ownerID, normalized)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	tag := &models.Tag{OwnerID: ownerID, Name: normalized}
	err = s.gw.InsertTag(ctx, tag)
	if err == nil {
		return tag, nil
	}
	if !errors.Is(err, store.ErrConflict) {
		return nil, err
	}

	existing, err = s.gw.GetTagByName(ctx, ownerID, normalized)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("tag %q conflicted but could not be re-read", normalized)
	}
	return existing, nil
}

// LinkTag links a tag to an entity owned by the caller. Linking twice is not an error.
func (s *Service) LinkTag(ctx context.Context, kind models.EntityKind, entityID, tagID string) error {
	ownerID, err := s.owner(ctx)
	if err != nil {
		return err
	}
	if err := s.requireEntity(ctx, ownerID, kind, entityID); err != nil {
		return err
	}
	return s.linkTag(ctx, ownerID, kind, entityID, tagID)
}

func (s *Service) linkTag(ctx context.Context, ownerID string, kind models.EntityKind, entityID, tagID string) error {
	err := s.gw.LinkTag(ctx, ownerID, kind, entityID, tagID)
	switch {
	case errors.Is(err, store.ErrConflict):
		return nil
	case errors.Is(err, store.ErrNotFound):
		return notFoundf("tag %s", tagID)
	}
	return err
}

// UnlinkTag removes a tag link. Absence is not an error.
func (s *Service) UnlinkTag(ctx context.Context, kind models.EntityKind, entityID, tagID string) error {
	ownerID, err := s.owner(ctx)
	if err != nil {
		return err
	}
	if err := s.requireEntity(ctx, ownerID, kind, entityID); err != nil {
		return err
	}
	return s.gw.UnlinkTag(ctx, ownerID, kind, entityID, tagID)
}

// SyncTags makes the entity's tag set equal to the normalized desired names.
// It is convergent: a second call with the same names links and unlinks nothing.
func (s *Service) SyncTags(ctx context.Context, kind models.EntityKind, entityID string, names []string) error {
	ownerID, err := s.owner(ctx)
	if err != nil {
		return err
	}
	if err := s.requireEntity(ctx, ownerID, kind, entityID); err != nil {
		return err
	}
	return s.syncTags(ctx, ownerID, kind, entityID, names)
}

func (s *Service) syncTags(ctx context.Context, ownerID string, kind models.EntityKind, entityID string, names []string) error {
	current, err := s.gw.ListEntityTags(ctx, ownerID, kind, entityID)
	if err != nil {
		return err
	}
	currentIDs := make(map[string]struct{}, len(current))
	for _, tag := range current {
		currentIDs[tag.ID] = struct{}{}
	}

	desiredIDs := map[string]struct{}{}
	var toLink []string
	for _, name := range names {
		if models.NormalizeTagName(name) == "" {
			continue
		}
		tag, err := s.findOrCreateTag(ctx, ownerID, name)
		if err != nil {
			return err
		}
		if _, dup := desiredIDs[tag.ID]; dup {
			continue
		}
		desiredIDs[tag.ID] = struct{}{}
		if _, linked := currentIDs[tag.ID]; !linked {
			toLink = append(toLink, tag.ID)
		}
	}

	for _, tag := range current {
		if _, keep := desiredIDs[tag.ID]; keep {
			continue
		}
		if err := s.gw.UnlinkTag(ctx, ownerID, kind, entityID, tag.ID); err != nil {
			return err
		}
	}
	for _, tagID := range toLink {
		if err := s.linkTag(ctx, ownerID, kind, entityID, tagID); err != nil {
			return err
		}
	}
	return nil
}

// ListTags returns every tag the caller owns.
func (s *Service) ListTags(ctx context.Context) ([]models.Tag, error) {
	ownerID, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}
	return s.gw.ListTags(ctx, ownerID)
}

func (s *Service) requireEntity(ctx context.Context, ownerID string, kind models.EntityKind, entityID string) error {
	switch kind {
	case models.EntityContent:
		item, err := s.gw.GetContent(ctx, ownerID, entityID)
		if err != nil {
			return err
		}
		if item == nil {
			return notFoundf("content %s", entityID)
		}
	case models.EntityRepertoire:
		item, err := s.gw.GetRepertoire(ctx, ownerID, entityID)
		if err != nil {
			return err
		}
		if item == nil {
			return notFoundf("repertoire %s", entityID)
		}
	default:
		return invalidf("unknown entity kind %q", kind)
	}
	return nil
}
