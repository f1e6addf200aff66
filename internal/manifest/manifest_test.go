package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFile creates a file (and its parent directories) under root with
// placeholder content. Manifest matching only looks at names and paths,
// never content.
func writeFile(t *testing.T, root, rel string) {
	t.Helper()

	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("x\n"), 0644))
}

// TestMatchesFilename_Dotfiles verifies the dotfile suffix matching:
// case-insensitive and anchored to the whole remainder of the name.
func TestMatchesFilename_Dotfiles(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name    string
		matches bool
	}{
		{".env", true},
		{".ENV", true}, // case insensitive
		{".envrc", true},
		{".env.local", true},
		{".tool-versions", true},
		{".mise.toml", true},
		{".environment", false}, // suffix must be the whole remainder
		{".env.production", false},
		{"env", false}, // leading dot required
		{".gitignore", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.matches, cfg.MatchesFilename(tt.name))
		})
	}
}

// TestMatchesFilename_ExactFiles verifies exact filename matching for
// the non-dotfile patterns.
func TestMatchesFilename_ExactFiles(t *testing.T) {
	cfg := DefaultConfig()

	assert.True(t, cfg.MatchesFilename("application-local.yml"))
	assert.False(t, cfg.MatchesFilename("application-other.yml"))
	assert.False(t, cfg.MatchesFilename("application-local.yaml"))
}

// TestExcluded verifies that path-fragment exclusion applies to any
// path containing an excluded fragment.
func TestExcluded(t *testing.T) {
	cfg := DefaultConfig()

	assert.True(t, cfg.Excluded("node_modules/pkg/.env"))
	assert.True(t, cfg.Excluded("packages/app/dist/.env"))
	assert.True(t, cfg.Excluded("build/config/.envrc"))
	assert.False(t, cfg.Excluded("config/.env"))
	assert.False(t, cfg.Excluded(".envrc"))
}

// TestEnumerate walks a realistic tree and checks the resulting
// manifest: root dotfiles and nested exact matches in, excluded
// subtrees and non-matching names out.
func TestEnumerate(t *testing.T) {
	root := t.TempDir()

	writeFile(t, root, ".env")
	writeFile(t, root, ".envrc")
	writeFile(t, root, ".tool-versions")
	writeFile(t, root, "config/application-local.yml")
	writeFile(t, root, "config/application-other.yml")
	writeFile(t, root, "services/api/.env.local")
	writeFile(t, root, "node_modules/pkg/.env")
	writeFile(t, root, "packages/web/dist/.envrc")
	writeFile(t, root, "README.md")

	matches, err := Enumerate(root, DefaultConfig())
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		".env",
		".envrc",
		".tool-versions",
		"config/application-local.yml",
		"services/api/.env.local",
	}, matches)
}

// TestEnumerate_EmptyTree verifies that a tree with nothing to copy
// yields an empty manifest without error.
func TestEnumerate_EmptyTree(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/main.go")

	matches, err := Enumerate(root, DefaultConfig())
	require.NoError(t, err)
	assert.Empty(t, matches)
}

// TestEnumerate_CustomExcludes verifies that config-supplied exclude
// fragments replace the defaults.
func TestEnumerate_CustomExcludes(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "vendor/.env")
	writeFile(t, root, "node_modules/.env")

	cfg := DefaultConfig()
	cfg.Copy.Exclude = []string{"vendor"}

	matches, err := Enumerate(root, cfg)
	require.NoError(t, err)

	// Only vendor/ is excluded now; node_modules/ is walked again.
	assert.ElementsMatch(t, []string{"node_modules/.env"}, matches)
}
