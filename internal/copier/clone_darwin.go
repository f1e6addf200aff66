//go:build darwin

package copier

import "golang.org/x/sys/unix"

// clone duplicates src at dst with the clonefile(2) syscall. On APFS
// this is a metadata-only copy-on-write operation and works for both
// regular files and entire directory trees (cloned recursively).
// Fails with ENOTSUP on filesystems without clone support and with
// EEXIST when dst already exists; callers fall back to a byte copy.
func clone(src, dst string) error {
	return unix.Clonefile(src, dst, 0)
}
