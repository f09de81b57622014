package models

import (
	"fmt"
	"strings"
	"time"
)

// ContentType defines allowed kinds of reusable content.
type ContentType string

const (
	ContentYouTube ContentType = "youtube"
	ContentArticle ContentType = "article"
	ContentVideo   ContentType = "video"
	ContentPDF     ContentType = "pdf"
	ContentImage   ContentType = "image"
	ContentOther   ContentType = "other"
)

// EntityKind names the item kinds that can carry tags.
type EntityKind string

const (
	EntityContent    EntityKind = "content"
	EntityRepertoire EntityKind = "repertoire"
)

const (
	ProgressMin = 1
	ProgressMax = 6

	DefaultProgress = ProgressMin

	// DateLayout is the calendar-date format used for log and session dates.
	DateLayout = "2006-01-02"
)

var validContentTypes = map[ContentType]struct{}{
	ContentYouTube: {},
	ContentArticle: {},
	ContentVideo:   {},
	ContentPDF:     {},
	ContentImage:   {},
	ContentOther:   {},
}

var validEntityKinds = map[EntityKind]struct{}{
	EntityContent:    {},
	EntityRepertoire: {},
}

func IsValidContentType(value ContentType) bool {
	_, ok := validContentTypes[value]
	return ok
}

func IsValidEntityKind(kind EntityKind) bool {
	_, ok := validEntityKinds[kind]
	return ok
}

func ParseContentType(raw string) (ContentType, error) {
	value := ContentType(strings.ToLower(strings.TrimSpace(raw)))
	if value == "" {
		return ContentOther, nil
	}
	if !IsValidContentType(value) {
		return "", fmt.Errorf("invalid content type: %s", value)
	}
	return value, nil
}

func IsValidProgress(value int) bool {
	return value >= ProgressMin && value <= ProgressMax
}

// ParseDate validates a YYYY-MM-DD calendar date and returns it in canonical form.
func ParseDate(raw string) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", fmt.Errorf("date is required")
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: expected YYYY-MM-DD", raw)
	}
	return t.Format(DateLayout), nil
}

// NormalizeTagName trims and lower-cases a free-text tag.
func NormalizeTagName(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
