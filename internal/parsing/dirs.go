// Package parsing cleans user and remote strings for filesystem use.
package parsing

import (
	"regexp"
	"strconv"
	"strings"

	"vidgrab/internal/domain/consts"
)

const maxDirNameRunes = 100

var unsafeDirChars = regexp.MustCompile(`[<>:"/\\|?*]`)

var reservedNames = func() map[string]bool {
	m := map[string]bool{"CON": true, "PRN": true, "AUX": true, "NUL": true}
	for i := 1; i <= 9; i++ {
		m["COM"+strconv.Itoa(i)] = true
		m["LPT"+strconv.Itoa(i)] = true
	}
	return m
}()

// SafeDirName turns a playlist title into a folder name valid on every platform.
func SafeDirName(title string) string {
	name := unsafeDirChars.ReplaceAllString(title, "_")
	if r := []rune(name); len(r) > maxDirNameRunes {
		name = string(r[:maxDirNameRunes])
	}
	name = strings.TrimSpace(name)
	if strings.Trim(name, ".") == "" || reservedNames[strings.ToUpper(name)] {
		return consts.DefaultPlaylistDir
	}
	return name
}
