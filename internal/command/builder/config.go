// Package builder turns a format choice and user settings into an engine configuration.
package builder

import (
	"slices"

	"vidgrab/internal/models"
)

// PostprocessorKey names a post-processing step run by the engine.
type PostprocessorKey string

const (
	PPExtractAudio   PostprocessorKey = "FFmpegExtractAudio"
	PPVideoConvertor PostprocessorKey = "FFmpegVideoConvertor"
)

// Postprocessor is one post-processing step.
type Postprocessor struct {
	Key              PostprocessorKey
	PreferredCodec   string
	PreferredQuality string
	PreferredFormat  string
}

// NetworkPolicy is the engine's retry and transfer policy.
type NetworkPolicy struct {
	Retries          int
	FragmentRetries  int
	SocketTimeoutSec int
	HTTPChunkSize    int64
}

// OptionKey names an optional setting-driven engine option.
type OptionKey string

const (
	OptEmbedThumbnail OptionKey = "embed_thumbnail"
	OptEmbedMetadata  OptionKey = "embed_metadata"
	OptWriteSubtitles OptionKey = "write_subtitles"
	OptProxy          OptionKey = "proxy"
	OptRateLimit      OptionKey = "rate_limit"
	OptCookieFile     OptionKey = "cookie_file"
)

// optionOrder fixes the order options are rendered in.
var optionOrder = []OptionKey{
	OptEmbedThumbnail,
	OptEmbedMetadata,
	OptWriteSubtitles,
	OptProxy,
	OptRateLimit,
	OptCookieFile,
}

// EngineConfig is the immutable request bundle for one engine download.
//
// Values are built fresh by BuildConfig; accessors return copies.
type EngineConfig struct {
	outputTemplate    string
	format            string
	postprocessors    []Postprocessor
	network           NetworkPolicy
	mergeOutputFormat string
	restrictFilenames bool
	ffmpegLocation    string
	jsRuntimes        string
	remoteComponents  string
	trim              *models.TrimRange
	options           map[OptionKey]string
}

// OutputTemplate returns the output path template.
func (c EngineConfig) OutputTemplate() string { return c.outputTemplate }

// Format returns the stream selection expression.
func (c EngineConfig) Format() string { return c.format }

// Postprocessors returns a copy of the post-processing pipeline.
func (c EngineConfig) Postprocessors() []Postprocessor { return slices.Clone(c.postprocessors) }

// Network returns the network policy.
func (c EngineConfig) Network() NetworkPolicy { return c.network }

// MergeOutputFormat returns the container used when merging streams.
func (c EngineConfig) MergeOutputFormat() string { return c.mergeOutputFormat }

// RestrictFilenames reports whether output names are limited to a safe character set.
func (c EngineConfig) RestrictFilenames() bool { return c.restrictFilenames }

// FFmpegLocation returns the transcoder path, or "" to let the engine search.
func (c EngineConfig) FFmpegLocation() string { return c.ffmpegLocation }

// Trim returns the range restriction, if any.
func (c EngineConfig) Trim() (models.TrimRange, bool) {
	if c.trim == nil {
		return models.TrimRange{}, false
	}
	return *c.trim, true
}

// ForceKeyframesAtCuts reports whether cut points are re-encoded.
func (c EngineConfig) ForceKeyframesAtCuts() bool { return c.trim != nil }

// Option returns a setting-driven option. ok is false when the option is not set at all.
func (c EngineConfig) Option(key OptionKey) (value string, ok bool) {
	value, ok = c.options[key]
	return value, ok
}
