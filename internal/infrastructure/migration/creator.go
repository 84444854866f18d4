package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"
	"time"
)

const upTemplate = `-- Migration: {{.Name}}
-- Created: {{.Timestamp}}

`

const downTemplate = `-- Migration: {{.Name}} (rollback)
-- Created: {{.Timestamp}}

`

// File describes a created migration pair
type File struct {
	Version   int
	Name      string
	Timestamp string
	UpPath    string
	DownPath  string
}

// Create writes an empty up/down pair numbered after the highest existing version
func Create(dir, name string) (*File, error) {
	name = sanitizeName(name)
	if name == "" {
		return nil, fmt.Errorf("migration name is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create migrations directory: %w", err)
	}
	last, err := LatestVersion(dir)
	if err != nil {
		return nil, err
	}

	base := fmt.Sprintf("%06d_%s", last+1, name)
	f := &File{
		Version:   last + 1,
		Name:      name,
		Timestamp: time.Now().Format(time.RFC3339),
		UpPath:    filepath.Join(dir, base+".up.sql"),
		DownPath:  filepath.Join(dir, base+".down.sql"),
	}
	if err := writeTemplate(f.UpPath, upTemplate, f); err != nil {
		return nil, err
	}
	if err := writeTemplate(f.DownPath, downTemplate, f); err != nil {
		_ = os.Remove(f.UpPath)
		return nil, err
	}
	return f, nil
}

// LatestVersion returns the highest version found in dir, 0 when there is none
func LatestVersion(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read migrations directory: %w", err)
	}
	latest := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".up.sql") {
			continue
		}
		prefix, _, ok := strings.Cut(e.Name(), "_")
		if !ok {
			continue
		}
		if v, err := strconv.Atoi(prefix); err == nil && v > latest {
			latest = v
		}
	}
	return latest, nil
}

func writeTemplate(path, content string, data *File) error {
	tmpl, err := template.New("migration").Parse(content)
	if err != nil {
		return err
	}
	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer out.Close()
	return tmpl.Execute(out, data)
}

// sanitizeName lowercases the name and joins words with single underscores
func sanitizeName(name string) string {
	var b strings.Builder
	for _, c := range strings.ToLower(name) {
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			b.WriteRune(c)
		case c == ' ' || c == '-' || c == '_':
			if b.Len() > 0 && !strings.HasSuffix(b.String(), "_") {
				b.WriteByte('_')
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}
