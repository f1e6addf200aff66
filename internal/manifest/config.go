package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/mmr-tortoise/graft/internal/model"
)

// configNames are the project config file names probed in the copy
// source root, in lookup order. The first one found wins.
var configNames = []string{"graft.yml", "graft.yaml", "graft.jsonc", "graft.json"}

// Config holds the copy-manifest pattern set.
//
// Dotfiles entries are suffixes without the leading dot: a filename
// matches when it is "." followed (case-insensitively) by one of these,
// so "envrc" matches ".envrc" and ".ENVRC" but not ".envrc.bak".
// Files entries are exact filenames matched at any directory depth.
// Exclude entries are path fragments; a relative path containing any of
// them is never matched, which is how a valid filename like ".env"
// inside node_modules/ stays out of the manifest.
type Config struct {
	Copy CopyConfig `yaml:"copy" json:"copy"`
}

// CopyConfig is the "copy" section of the config file.
type CopyConfig struct {
	// Dotfiles are dotfile suffixes (without the leading dot).
	Dotfiles []string `yaml:"dotfiles" json:"dotfiles"`

	// Files are exact filenames matched at any depth.
	Files []string `yaml:"files" json:"files"`

	// Exclude are path fragments that disqualify a path entirely.
	Exclude []string `yaml:"exclude" json:"exclude"`

	// NodeModules toggles copying the top-level node_modules directory.
	// A pointer distinguishes "absent" (keep the default, true) from an
	// explicit false in the config file.
	NodeModules *bool `yaml:"nodeModules" json:"nodeModules"`
}

// DefaultConfig returns the built-in pattern set: the env/tool-version
// dotfiles, Spring-style local YAML overrides, and the usual
// generated-artifact directories excluded.
func DefaultConfig() Config {
	return Config{
		Copy: CopyConfig{
			Dotfiles: []string{"envrc", "env", "env.local", "tool-versions", "mise.toml"},
			Files:    []string{"application-local.yml"},
			Exclude:  []string{"node_modules", "dist", "build"},
		},
	}
}

// LoadConfig looks for a project config file in dir and returns the
// effective pattern set. A missing file yields the defaults. A file that
// exists but cannot be parsed is a fatal error — silently falling back
// to defaults would hide typos in the user's config.
//
// Each list in the file, when non-empty, replaces the corresponding
// default list wholesale; omitted lists keep their defaults.
func LoadConfig(dir string) (Config, error) {
	for _, name := range configNames {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return Config{}, model.WrapCLIError(model.ExitGeneralError,
				fmt.Sprintf("failed to read config file %s", path), err)
		}
		return parseConfig(name, data)
	}
	return DefaultConfig(), nil
}

// parseConfig decodes a config file by extension and merges it over the
// defaults. YAML files go through gopkg.in/yaml.v3; JSON files have
// JSONC comments and trailing commas stripped first, so users can keep
// annotated configs the same way devcontainer.json allows.
func parseConfig(name string, data []byte) (Config, error) {
	var loaded Config
	var err error

	switch strings.ToLower(filepath.Ext(name)) {
	case ".yml", ".yaml":
		err = yaml.Unmarshal(data, &loaded)
	case ".jsonc", ".json":
		err = json.Unmarshal(jsonc.ToJSON(data), &loaded)
	default:
		err = fmt.Errorf("unsupported config extension: %s", name)
	}
	if err != nil {
		return Config{}, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to parse config file %s", name), err)
	}

	cfg := DefaultConfig()
	if len(loaded.Copy.Dotfiles) > 0 {
		cfg.Copy.Dotfiles = loaded.Copy.Dotfiles
	}
	if len(loaded.Copy.Files) > 0 {
		cfg.Copy.Files = loaded.Copy.Files
	}
	if len(loaded.Copy.Exclude) > 0 {
		cfg.Copy.Exclude = loaded.Copy.Exclude
	}
	cfg.Copy.NodeModules = loaded.Copy.NodeModules
	return cfg, nil
}

// CopyNodeModules reports whether the top-level node_modules directory
// should be carried over. Defaults to true when the config is silent.
func (c Config) CopyNodeModules() bool {
	if c.Copy.NodeModules == nil {
		return true
	}
	return *c.Copy.NodeModules
}

// MatchesFilename reports whether a bare filename (no directory part)
// belongs in the copy manifest.
//
// Dotfile suffixes match case-insensitively and must consume the entire
// remainder of the name after the leading dot, so ".env" matches but
// ".environment" does not. Exact filenames match as-is.
func (c Config) MatchesFilename(name string) bool {
	if strings.HasPrefix(name, ".") {
		rest := strings.ToLower(name[1:])
		for _, suffix := range c.Copy.Dotfiles {
			if rest == strings.ToLower(suffix) {
				return true
			}
		}
		// A dotfile can still match an exact filename entry below
		// (e.g. a configured ".npmrc").
	}
	for _, exact := range c.Copy.Files {
		if name == exact {
			return true
		}
	}
	return false
}

// Excluded reports whether a slash-separated relative path contains any
// excluded fragment. Exclusion wins over filename matches: a matching
// filename under an excluded directory never enters the manifest.
func (c Config) Excluded(relPath string) bool {
	for _, fragment := range c.Copy.Exclude {
		if strings.Contains(relPath, fragment) {
			return true
		}
	}
	return false
}
