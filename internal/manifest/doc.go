// Package manifest computes the list of untracked configuration files to
// carry over into a freshly created worktree.
//
// The copy manifest is derived by recursively walking the copy source
// root with filepath.WalkDir and matching filenames against a configured
// pattern set: dotfile suffixes (".env", ".envrc", ".tool-versions", ...)
// matched case-insensitively, plus exact filenames such as
// "application-local.yml". Paths containing excluded fragments
// (node_modules, dist, build) are never matched, regardless of filename.
//
// The pattern set has built-in defaults and can be overridden per project
// by a graft.yml / graft.yaml file (parsed with gopkg.in/yaml.v3) or a
// graft.jsonc / graft.json file (comments stripped with
// github.com/tidwall/jsonc before parsing).
package manifest
