// Package copier implements best-effort copy-on-write file and tree
// copies.
//
// Each copy tries, in order: a native clone (clonefile on darwin,
// FICLONE reflink on linux), then a plain byte copy. Clones share
// storage blocks with the source until either side is modified, which
// makes duplicating a multi-gigabyte node_modules tree nearly free on
// APFS/btrfs/XFS. Filesystem support cannot be introspected reliably in
// advance, so the fallback is driven purely by the clone attempt
// failing.
//
// The package never modifies the source and never retries; callers
// decide whether a copy failure is fatal (for graft it never is).
package copier

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// CopyFile copies a single regular file from src to dst, clone first,
// byte copy as fallback. The destination's parent directory must exist.
// File permissions are preserved on the fallback path; clones carry
// their metadata natively.
func CopyFile(src, dst string) error {
	if err := clone(src, dst); err == nil {
		return nil
	}
	return copyFileContents(src, dst)
}

// CopyTree copies src (a file or a directory tree) to dst.
//
// For directories, a whole-tree clone is attempted first (clonefile
// clones directories recursively on darwin); if that is not available
// the tree is walked and each entry cloned or byte-copied individually.
// Symlinks are recreated, not followed — node_modules/.bin is full of
// them and following them would duplicate their targets.
func CopyTree(src, dst string) error {
	info, err := os.Lstat(src)
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}

	if !info.IsDir() {
		if info.Mode()&fs.ModeSymlink != 0 {
			return copySymlink(src, dst)
		}
		return CopyFile(src, dst)
	}

	if err := clone(src, dst); err == nil {
		return nil
	}
	return copyDir(src, dst, info.Mode().Perm())
}

// copyDir walks the source tree and reproduces it entry by entry.
func copyDir(src, dst string, perm fs.FileMode) error {
	if err := os.MkdirAll(dst, perm); err != nil {
		return err
	}

	return filepath.WalkDir(src, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if path == src {
			return nil
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		switch {
		case d.IsDir():
			info, err := d.Info()
			if err != nil {
				return err
			}
			return os.MkdirAll(target, info.Mode().Perm())
		case d.Type()&fs.ModeSymlink != 0:
			return copySymlink(path, target)
		default:
			return CopyFile(path, target)
		}
	})
}

// copySymlink recreates a symlink at dst pointing at src's target.
func copySymlink(src, dst string) error {
	target, err := os.Readlink(src)
	if err != nil {
		return err
	}
	return os.Symlink(target, dst)
}

// copyFileContents is the universal fallback: open, create, io.Copy.
// The destination is truncated if it already exists (a failed clone
// attempt may have left an empty file behind).
func copyFileContents(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("copy %s to %s: %w", src, dst, err)
	}
	return out.Close()
}
