// Package content turns the markdown files under the content directory into
// posts.
package content

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"time"

	"portfolio/app/models"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// dateFormats are tried in order when reading the frontmatter date.
var dateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

type frontMatter struct {
	Title       string `yaml:"title"`
	Date        string `yaml:"date"`
	Description string `yaml:"description"`
	Slug        string `yaml:"slug"`
}

// Loader reads posts from a directory tree.
type Loader struct {
	fsys   fs.FS
	md     goldmark.Markdown
	logger *zap.Logger
}

// NewLoader creates a Loader reading from fsys.
func NewLoader(fsys fs.FS, logger *zap.Logger) *Loader {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Footnote),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithUnsafe(),
		),
	)
	return &Loader{fsys: fsys, md: md, logger: logger}
}

// Load walks the tree and returns every post, in walk order.
func (l *Loader) Load(ctx context.Context) ([]*models.Post, error) {
	var posts []*models.Post
	seen := make(map[string]string)

	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("error accessing path %q: %w", p, err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !isContentFile(p) {
			return nil
		}

		post, err := l.loadFile(p)
		if err != nil {
			return err
		}
		if prev, ok := seen[post.Slug]; ok {
			return fmt.Errorf("duplicate slug %q in %s and %s", post.Slug, prev, p)
		}
		seen[post.Slug] = p
		posts = append(posts, post)
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.logger.Debug("loaded posts", zap.Int("count", len(posts)))
	return posts, nil
}

func (l *Loader) loadFile(p string) (*models.Post, error) {
	raw, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", p, err)
	}

	var fm frontMatter
	body, err := frontmatter.Parse(bytes.NewReader(raw), &fm)
	if err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter in %s: %w", p, err)
	}

	var buf bytes.Buffer
	if err := l.md.Convert(body, &buf); err != nil {
		return nil, fmt.Errorf("failed to convert markdown in %s: %w", p, err)
	}

	date, err := parseDate(fm.Date)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}

	post := &models.Post{
		ID:          "/" + p,
		Title:       fm.Title,
		Date:        date,
		Slug:        fm.Slug,
		Description: fm.Description,
		Body:        string(body),
		HTML:        template.HTML(buf.String()),
	}
	if post.Title == "" {
		post.Title = titleFromPath(p)
	}
	if post.Slug == "" {
		post.Slug = slugFromPath(p)
	}
	post.BeforeCreate()

	if err := post.Validate(); err != nil {
		return nil, fmt.Errorf("invalid post %s: %w", p, err)
	}
	return post, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("missing date")
	}
	for _, format := range dateFormats {
		if t, err := time.Parse(format, s); err == nil {
			return models.DateOnly(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("could not parse date %q, use YYYY-MM-DD or RFC3339", s)
}

func isContentFile(p string) bool {
	ext := strings.ToLower(path.Ext(p))
	return ext == ".md" || ext == ".mdx"
}

// slugFromPath derives "/2024/my-post" from "2024/My Post.md". Characters a
// slug cannot hold become "-".
func slugFromPath(p string) string {
	segments := strings.Split(strings.TrimSuffix(p, path.Ext(p)), "/")
	for i, seg := range segments {
		seg = strings.Map(func(r rune) rune {
			switch {
			case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
				return r
			default:
				return '-'
			}
		}, strings.ToLower(seg))
		segments[i] = strings.TrimLeft(seg, "-_")
	}
	return "/" + strings.Join(segments, "/")
}

// titleFromPath derives "Hello World" from "posts/hello-world.md".
func titleFromPath(p string) string {
	base := strings.TrimSuffix(path.Base(p), path.Ext(p))
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	return cases.Title(language.English).String(base)
}
