package models

import (
	"html/template"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

var slugPattern = regexp.MustCompile(`^/[a-z0-9][a-z0-9/_-]*$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
	return v
}

// Post represents a blog post loaded from the content directory.
type Post struct {
	ID          string        `json:"id" validate:"required,startswith=/"`
	Title       string        `json:"title" validate:"required,max=200"`
	Date        time.Time     `json:"date" validate:"required"`
	Slug        string        `json:"slug" validate:"required,slug"`
	Description string        `json:"description,omitempty" validate:"max=500"`
	Body        string        `json:"body,omitempty" validate:"-"`
	HTML        template.HTML `json:"html,omitempty" validate:"-"`
}

// Project represents a showcase entry on the home page.
type Project struct {
	Name        string `json:"name" mapstructure:"name" validate:"required"`
	Description string `json:"description" mapstructure:"description" validate:"required"`
	Link        string `json:"link" mapstructure:"link" validate:"required,url"`
}

// SiteConfig holds the read-only identity of the site.
type SiteConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Description string `mapstructure:"description"`
	URL         string `mapstructure:"url" validate:"required,url,endsnotwith=/"`
	Author      string `mapstructure:"author"`
	Email       string `mapstructure:"email" validate:"omitempty,email"`
	GitHub      string `mapstructure:"github" validate:"omitempty,url"`
	Language    string `mapstructure:"language"`
}
