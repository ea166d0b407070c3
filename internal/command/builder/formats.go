package builder

import (
	"fmt"
	"strconv"
	"strings"

	"vidgrab/internal/logging"
)

// Format keys understood by the builder.
const (
	KeyMP3   = "mp3"
	KeyWAV   = "wav"
	KeyM4A   = "m4a"
	KeyGIF   = "gif"
	Key4K    = "4k"
	Key1440p = "1440p"
	Key1080p = "1080p"
	Key720p  = "720p"
	Key480p  = "480p"
)

const defaultMP3Quality = "192"

// Heights maps resolution keys to their target height.
var Heights = map[string]int{
	Key4K:    2160,
	Key1440p: 1440,
	Key1080p: 1080,
	Key720p:  720,
	Key480p:  480,
}

const fallbackFormat = "bestvideo[vcodec^=avc1]+bestaudio[acodec^=mp4a]/" +
	"bestvideo[height<=1080][vcodec^=avc1]+bestaudio/" +
	"bestvideo+bestaudio/best"

// KnownKey reports whether key selects an entry of the format table.
func KnownKey(key string) bool {
	kind, _, _ := strings.Cut(key, "_")
	switch kind {
	case KeyMP3, KeyWAV, KeyM4A, KeyGIF:
		return true
	}
	_, ok := Heights[key]
	return ok
}

// selectFormat returns the format expression and post-processing for a format key.
func selectFormat(key string) (string, []Postprocessor) {
	kind, quality, _ := strings.Cut(key, "_")

	switch kind {
	case KeyMP3:
		if n, err := strconv.Atoi(quality); err != nil || n <= 0 {
			quality = defaultMP3Quality
		}
		return "bestaudio/best", []Postprocessor{{
			Key:              PPExtractAudio,
			PreferredCodec:   KeyMP3,
			PreferredQuality: quality,
		}}

	case KeyWAV:
		return "bestaudio/best", []Postprocessor{{
			Key:            PPExtractAudio,
			PreferredCodec: KeyWAV,
		}}

	case KeyM4A:
		return "bestaudio[ext=m4a]/best", []Postprocessor{{
			Key:            PPExtractAudio,
			PreferredCodec: KeyM4A,
		}}

	case KeyGIF:
		return "bestvideo[height<=720]/bestvideo", []Postprocessor{{
			Key:             PPVideoConvertor,
			PreferredFormat: KeyGIF,
		}}
	}

	if h, ok := Heights[key]; ok {
		return resolutionFormat(h), nil
	}

	logging.W("Unrecognized format key %q, using best compatible selection", key)
	return fallbackFormat, nil
}

// resolutionFormat returns the layered selection for a target height.
//
// Order: exact height in avc1+mp4a, exact height in any codec, at most the height in avc1, then best.
func resolutionFormat(h int) string {
	third := fmt.Sprintf("bestvideo[height<=%d][vcodec^=avc1]+bestaudio", h)
	if h == Heights[Key4K] {
		third = "bestvideo[vcodec^=avc1]+bestaudio"
	}
	return fmt.Sprintf("bestvideo[height=%d][vcodec^=avc1]+bestaudio[acodec^=mp4a]/", h) +
		fmt.Sprintf("bestvideo[height=%d]+bestaudio/", h) +
		third + "/best"
}
