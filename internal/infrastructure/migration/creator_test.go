package migration

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/restopos/backend/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add tips column", "add_tips_column"},
		{"Add-Tips-Column", "add_tips_column"},
		{"add__tips", "add_tips"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"_leading", "leading"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreate_NumbersAfterLatest(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "000002_sales.up.sql"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "000002_sales.down.sql"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), nil, 0o644))

	f, err := Create(dir, "Add tips")
	require.NoError(t, err)
	assert.Equal(t, 3, f.Version)
	assert.Equal(t, filepath.Join(dir, "000003_add_tips.up.sql"), f.UpPath)

	content, err := os.ReadFile(f.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "add_tips (rollback)")
}

func TestCreate_RejectsEmptyName(t *testing.T) {
	_, err := Create(t.TempDir(), "!!!")
	assert.Error(t, err)
}

func TestLatestVersion_MissingDir(t *testing.T) {
	v, err := LatestVersion(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Equal(t, 0, v)
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	ups, err := fs.Glob(migrations.FS, "*.up.sql")
	require.NoError(t, err)
	downs, err := fs.Glob(migrations.FS, "*.down.sql")
	require.NoError(t, err)
	require.NotEmpty(t, ups)
	assert.Len(t, downs, len(ups))

	schema, err := fs.ReadFile(migrations.FS, "000002_sales_flow.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(schema), "idx_sales_periods_single_open")
}

func TestAvailable(t *testing.T) {
	names, err := Available(migrations.FS)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(names), 3)
	assert.Equal(t, "000001_init_schema", names[0])
}
