// Package paths initializes vidgrab's program directories and file paths.
package paths

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"vidgrab/internal/domain/consts"
)

const (
	vDir         = ".vidgrab"
	dbFile       = "vidgrab.db"
	logFile      = "vidgrab.log"
	settingsFile = "settings.json"
	queueFile    = "queue.json"
	historyFile  = "history.json"
	cookieFile   = "cookies.txt"
	thumbDir     = "thumbs"
)

// File and directory path strings.
var (
	HomeDir        string
	DBFilePath     string
	LogFilePath    string
	SettingsPath   string
	QueuePath      string
	HistoryPath    string
	CookieFilePath string
	ThumbCacheDir  string
)

// InitProgFilesDirs initializes program directories and filepaths.
//
// An empty override places everything under ~/.vidgrab.
func InitProgFilesDirs(override string) error {
	dir := override
	if dir == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return errors.New("failed to get home directory")
		}
		dir = filepath.Join(userHome, vDir)
	}
	HomeDir = dir

	if err := os.MkdirAll(HomeDir, consts.PermsHomeProgDir); err != nil {
		return fmt.Errorf("failed to make directories: %w", err)
	}

	DBFilePath = filepath.Join(HomeDir, dbFile)
	LogFilePath = filepath.Join(HomeDir, logFile)
	SettingsPath = filepath.Join(HomeDir, settingsFile)
	QueuePath = filepath.Join(HomeDir, queueFile)
	HistoryPath = filepath.Join(HomeDir, historyFile)
	CookieFilePath = filepath.Join(HomeDir, cookieFile)

	ThumbCacheDir = filepath.Join(HomeDir, thumbDir)
	if err := os.MkdirAll(ThumbCacheDir, consts.PermsGenericDir); err != nil {
		return fmt.Errorf("failed to make thumbnail directory: %w", err)
	}
	return nil
}
