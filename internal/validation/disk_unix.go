//go:build unix

package validation

import (
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// FreeGB returns the free space in GB of the filesystem holding path.
//
// Missing directories are resolved to their nearest existing parent.
func FreeGB(path string) (float64, error) {
	p := path
	for {
		if _, err := os.Stat(p); err == nil {
			break
		}
		parent := filepath.Dir(p)
		if parent == p {
			break
		}
		p = parent
	}

	var st unix.Statfs_t
	if err := unix.Statfs(p, &st); err != nil {
		return 0, err
	}
	return float64(st.Bavail) * float64(st.Bsize) / (1 << 30), nil
}
