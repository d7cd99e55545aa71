package models

import (
	"errors"
	"slices"
	"strings"
	"time"
)

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}

	if p.Date.IsZero() {
		return errors.New("date cannot be zero")
	}

	return nil
}

// BeforeCreate normalises fields derived from the source file.
func (p *Post) BeforeCreate() {
	p.Title = strings.TrimSpace(p.Title)
	p.Description = strings.TrimSpace(p.Description)
	if !p.Date.IsZero() {
		p.Date = DateOnly(p.Date)
	}
}

// SortByDateDesc sorts posts newest first. Posts sharing a date keep their
// relative order.
func SortByDateDesc(posts []*Post) {
	slices.SortStableFunc(posts, func(a, b *Post) int {
		return b.Date.Compare(a.Date)
	})
}

// DateOnly truncates t to midnight UTC of its calendar date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
