//go:build !darwin && !linux

package copier

import "errors"

// clone is unavailable on platforms without clonefile or FICLONE;
// every copy goes through the byte-copy fallback.
func clone(src, dst string) error {
	return errors.ErrUnsupported
}
