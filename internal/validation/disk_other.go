//go:build !unix

package validation

import "errors"

// FreeGB is not available on this platform.
func FreeGB(string) (float64, error) {
	return 0, errors.New("free space check not supported")
}
