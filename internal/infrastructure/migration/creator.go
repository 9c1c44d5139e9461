package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"
	"unicode"
)

var fileTemplate = template.Must(template.New("migration").Parse(`-- Migration: {{.Name}}{{if .Down}} (Rollback){{end}}
-- Dialect: {{.Dialect}}
-- Created: {{.Created}}

`))

// File is a generated up/down pair for one dialect
type File struct {
	Dialect  string
	Version  string
	Name     string
	UpPath   string
	DownPath string
}

// Create writes an empty up/down pair for every dialect under root. All
// pairs share a timestamp version so the dialects stay in step.
func Create(root, name string, now time.Time) ([]File, error) {
	slug := slugify(name)
	if slug == "" {
		return nil, fmt.Errorf("migration name %q has no usable characters", name)
	}
	version := now.UTC().Format("20060102150405")

	files := make([]File, 0, len(Dialects))
	for _, dialect := range Dialects {
		dir := SourceDir(root, dialect)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", dir, err)
		}

		base := filepath.Join(dir, version+"_"+slug)
		f := File{
			Dialect:  dialect,
			Version:  version,
			Name:     slug,
			UpPath:   base + ".up.sql",
			DownPath: base + ".down.sql",
		}
		for path, down := range map[string]bool{f.UpPath: false, f.DownPath: true} {
			if err := writeTemplate(path, f, down, now); err != nil {
				return nil, err
			}
		}
		files = append(files, f)
	}
	return files, nil
}

func writeTemplate(path string, f File, down bool, now time.Time) error {
	out, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer out.Close()

	return fileTemplate.Execute(out, map[string]any{
		"Name":    f.Name,
		"Dialect": f.Dialect,
		"Down":    down,
		"Created": now.UTC().Format(time.RFC3339),
	})
}

// slugify lower-cases name and joins its alphanumeric runs with underscores
func slugify(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == ' ' || r == '-' || r == '_'
	})
	parts := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.Map(func(r rune) rune {
			if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
				return unicode.ToLower(r)
			}
			return -1
		}, w)
		if w != "" {
			parts = append(parts, w)
		}
	}
	return strings.Join(parts, "_")
}

// List returns the migration base names of a dialect in version order
func List(root, dialect string) ([]string, error) {
	entries, err := os.ReadDir(SourceDir(root, dialect))
	if os.IsNotExist(err) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if base, ok := strings.CutSuffix(entry.Name(), ".up.sql"); ok && !entry.IsDir() {
			names = append(names, base)
		}
	}
	sort.Strings(names)
	return names, nil
}
