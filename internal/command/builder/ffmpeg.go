package builder

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

var commonFFmpegPaths = []string{
	"/usr/bin/ffmpeg",
	"/usr/local/bin/ffmpeg",
	"/snap/bin/ffmpeg",
}

// LocateFFmpeg returns the transcoder path, checking a bundled copy, PATH, then common locations.
//
// An empty result lets the engine search its own defaults.
func LocateFFmpeg() string {
	bundled := ""
	if exe, err := os.Executable(); err == nil {
		name := "ffmpeg"
		if runtime.GOOS == "windows" {
			name = "ffmpeg.exe"
		}
		bundled = filepath.Join(filepath.Dir(exe), "bin", name)
	}
	return findFFmpeg(bundled, exec.LookPath, commonFFmpegPaths)
}

func findFFmpeg(bundled string, lookPath func(string) (string, error), common []string) string {
	if bundled != "" && fileExists(bundled) {
		return bundled
	}
	if p, err := lookPath("ffmpeg"); err == nil {
		return p
	}
	for _, p := range common {
		if fileExists(p) {
			return p
		}
	}
	return ""
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}
