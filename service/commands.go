package service

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"portfolio/app/content"
	"portfolio/app/models"
	"portfolio/app/repositories"
	"portfolio/app/services"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ErrCancelled is returned when the user declines a destructive prompt.
var ErrCancelled = errors.New("operation cancelled")

// Backup writes a timestamped backup of the database under dataDir into
// backupDir and returns the file path.
func Backup(dataDir, backupDir string, logger *zap.Logger) (string, error) {
	if _, err := os.Stat(dataDir); os.IsNotExist(err) {
		return "", fmt.Errorf("no database exists to backup at %s", dataDir)
	}
	if err := os.MkdirAll(backupDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	db, err := openDB(dataDir, logger)
	if err != nil {
		return "", err
	}
	defer db.Close()

	backupFile := filepath.Join(backupDir, fmt.Sprintf("backup_%d.db", time.Now().Unix()))
	f, err := os.Create(backupFile)
	if err != nil {
		return "", fmt.Errorf("failed to create backup file: %w", err)
	}
	defer f.Close()

	if err := repositories.Backup(db, f); err != nil {
		return "", err
	}
	return backupFile, nil
}

// Restore replaces the database under dataDir with backupFile. When a
// database already exists and force is false, the user is asked on in/out.
func Restore(dataDir, backupFile string, force bool, in io.Reader, out io.Writer, logger *zap.Logger) error {
	if _, err := os.Stat(backupFile); os.IsNotExist(err) {
		return fmt.Errorf("backup file does not exist: %s", backupFile)
	}

	if _, err := os.Stat(dataDir); err == nil {
		if !force && !confirm(in, out, "Existing database found. Do you want to replace it?") {
			return ErrCancelled
		}
		if err := os.RemoveAll(dataDir); err != nil {
			return fmt.Errorf("failed to remove existing database: %w", err)
		}
	}

	db, err := openDB(dataDir, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	return repositories.Restore(db, backupFile)
}

// Status opens the database under dataDir and reports the stored post set.
func Status(dataDir string, logger *zap.Logger) (services.IndexStatus, error) {
	if _, err := os.Stat(dataDir); os.IsNotExist(err) {
		return services.IndexStatus{}, fmt.Errorf("no database exists at %s", dataDir)
	}
	db, err := openDB(dataDir, logger)
	if err != nil {
		return services.IndexStatus{}, err
	}
	defer db.Close()

	return services.NewPostService(repositories.NewBadgerPostRepository(db), logger).Status()
}

func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)
	answer, _ := bufio.NewReader(in).ReadString('\n')
	answer = strings.TrimSpace(answer)
	return answer == "y" || answer == "Y"
}

// SummaryEntry describes one post in a content summary.
type SummaryEntry struct {
	Slug  string `yaml:"slug"`
	Title string `yaml:"title"`
	Date  string `yaml:"date"`
}

// ContentSummary is the result of checking a content directory.
type ContentSummary struct {
	Dir   string         `yaml:"dir"`
	Posts int            `yaml:"posts"`
	Items []SummaryEntry `yaml:"items"`
}

// BuildCheck loads and validates every post under contentDir without
// touching the database.
func BuildCheck(ctx context.Context, contentDir string, logger *zap.Logger) (*ContentSummary, error) {
	posts, err := content.NewLoader(os.DirFS(contentDir), logger).Load(ctx)
	if err != nil {
		return nil, err
	}
	models.SortByDateDesc(posts)

	summary := &ContentSummary{Dir: contentDir, Posts: len(posts)}
	for _, p := range posts {
		summary.Items = append(summary.Items, SummaryEntry{
			Slug:  p.Slug,
			Title: p.Title,
			Date:  services.ISODate(p.Date),
		})
	}
	return summary, nil
}

// WriteSummary prints s to out as a table, or as YAML when format is "yaml".
func WriteSummary(out io.Writer, s *ContentSummary, format string) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("failed to encode summary: %w", err)
		}
		return enc.Close()
	case "", "text":
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintf(tw, "DATE\tSLUG\tTITLE\n")
		for _, e := range s.Items {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Date, e.Slug, e.Title)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		_, err := fmt.Fprintf(out, "%d posts OK in %s\n", s.Posts, s.Dir)
		return err
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
