package domain

import (
	"math/rand/v2"
	"slices"
	"strings"
)

// Stage is a named, ordered bucket of the sales pipeline.
type Stage struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Order int    `json:"order"`
	Color string `json:"color"`
}

// StagePatch carries the user-editable stage fields. Order is deliberately
// absent: it only changes through reordering.
type StagePatch struct {
	Title *string `json:"title,omitempty"`
	Color *string `json:"color,omitempty"`
}

// Direction of an adjacent stage swap in the visual sequence.
type Direction string

const (
	TowardStart Direction = "toward-start"
	TowardEnd   Direction = "toward-end"
)

// Valid reports whether d is a known direction.
func (d Direction) Valid() bool {
	return d == TowardStart || d == TowardEnd
}

// Offset returns the index delta of a swap in direction d.
func (d Direction) Offset() int {
	switch d {
	case TowardStart:
		return -1
	case TowardEnd:
		return 1
	default:
		return 0
	}
}

// Palette is the fixed set of cosmetic stage color tags.
var Palette = []string{
	"blue", "yellow", "purple", "green", "red",
	"pink", "indigo", "orange", "teal", "cyan",
}

// RandomColor picks a palette tag.
func RandomColor() string {
	return Palette[rand.IntN(len(Palette))]
}

// IsPaletteColor reports whether color belongs to Palette.
func IsPaletteColor(color string) bool {
	return slices.Contains(Palette, color)
}

// NormalizeStageTitle trims title and rejects empty results.
func NormalizeStageTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", FieldError("title", "is required")
	}
	return trimmed, nil
}

// Apply merges the patch into s after validating it. s is left untouched on error.
func (p StagePatch) Apply(s *Stage) error {
	if s == nil {
		return ErrInvalidPayload
	}
	next := *s
	if p.Title != nil {
		title, err := NormalizeStageTitle(*p.Title)
		if err != nil {
			return err
		}
		next.Title = title
	}
	if p.Color != nil {
		if !IsPaletteColor(*p.Color) {
			return FieldError("color", "is not a palette color")
		}
		next.Color = *p.Color
	}
	*s = next
	return nil
}
