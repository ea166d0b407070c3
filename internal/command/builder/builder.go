package builder

import (
	"os"
	"path/filepath"

	"vidgrab/internal/domain/consts"
	"vidgrab/internal/models"
)

// Engine extras enabled for every download.
const (
	jsRuntime       = "node"
	remoteComponent = "ejs:github"
)

// Build builds the engine configuration for a request.
func Build(req models.DownloadRequest) EngineConfig {
	return BuildConfig(req.DestinationDir, req.FormatKey, req.Trim, req.Settings)
}

// BuildConfig maps a destination, format key, optional trim range and settings to an EngineConfig.
//
// It never fails. Unknown format keys select a compatible best-quality fallback.
func BuildConfig(destDir, formatKey string, trim *models.TrimRange, settings models.Settings) EngineConfig {
	format, pps := selectFormat(formatKey)

	cfg := EngineConfig{
		outputTemplate: filepath.Join(destDir, "%(title)s.%(ext)s"),
		format:         format,
		postprocessors: pps,
		network: NetworkPolicy{
			Retries:          consts.EngineRetries,
			FragmentRetries:  consts.EngineFragmentRetries,
			SocketTimeoutSec: consts.EngineSocketTimeout,
			HTTPChunkSize:    consts.EngineHTTPChunkSize,
		},
		mergeOutputFormat: consts.MergeOutputFormat,
		restrictFilenames: true,
		ffmpegLocation:    LocateFFmpeg(),
		jsRuntimes:        jsRuntime,
		remoteComponents:  remoteComponent,
		options:           settingOptions(settings),
	}

	if trim != nil {
		t := *trim
		cfg.trim = &t
	}
	return cfg
}

// settingOptions returns only the options whose settings are set.
func settingOptions(s models.Settings) map[OptionKey]string {
	opts := make(map[OptionKey]string)
	if s.EmbedThumbnail {
		opts[OptEmbedThumbnail] = "true"
	}
	if s.EmbedMetadata {
		opts[OptEmbedMetadata] = "true"
	}
	if s.DownloadSubtitles {
		opts[OptWriteSubtitles] = "true"
	}
	if s.ProxyURL != "" {
		opts[OptProxy] = s.ProxyURL
	}
	if s.SpeedLimit != "" {
		opts[OptRateLimit] = s.SpeedLimit
	}
	if s.CookiesPath != "" {
		if _, err := os.Stat(s.CookiesPath); err == nil {
			opts[OptCookieFile] = s.CookiesPath
		}
	}
	return opts
}
