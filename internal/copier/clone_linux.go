//go:build linux

package copier

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// clone duplicates a regular file at dst with the FICLONE ioctl, the
// reflink primitive on btrfs and XFS. Unlike darwin's clonefile it only
// operates on open file descriptors, so directories report
// errors.ErrUnsupported and are walked entry by entry instead. Fails
// with EOPNOTSUPP/EXDEV on filesystems without reflink support; callers
// fall back to a byte copy.
func clone(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return errors.ErrUnsupported
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

	if err := unix.IoctlFileClone(int(out.Fd()), int(in.Fd())); err != nil {
		_ = out.Close()
		// A failed ioctl leaves an empty destination behind; remove it
		// so the fallback byte copy starts clean.
		_ = os.Remove(dst)
		return err
	}
	return out.Close()
}
