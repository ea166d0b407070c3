// Package command holds yt-dlp command line flags.
package command

// Output and selection.
const (
	Output            = "-o"
	Format            = "-f"
	NoPlaylist        = "--no-playlist"
	RestrictFilenames = "--restrict-filenames"
	MergeOutputFormat = "--merge-output-format"
	DownloadSections  = "--download-sections"
	ForceKeyframes    = "--force-keyframes-at-cuts"
	FFmpegLocation    = "--ffmpeg-location"
	JSRuntimes        = "--js-runtimes"
	RemoteComponents  = "--remote-components"
	DumpSingleJSON    = "-J"
	FlatPlaylist      = "--flat-playlist"
	NoWarnings        = "--no-warnings"
)

// Post-processing.
const (
	ExtractAudio   = "-x"
	AudioFormat    = "--audio-format"
	AudioQuality   = "--audio-quality"
	RecodeVideo    = "--recode-video"
	EmbedThumbnail = "--embed-thumbnail"
	EmbedMetadata  = "--embed-metadata"
	WriteSubs      = "--write-subs"
)

// Network.
const (
	Retries         = "--retries"
	FragmentRetries = "--fragment-retries"
	SocketTimeout   = "--socket-timeout"
	HTTPChunkSize   = "--http-chunk-size"
	LimitRate       = "--limit-rate"
	Proxy           = "--proxy"
	Cookies         = "--cookies"
)

// Progress output.
const (
	Newline          = "--newline"
	Progress         = "--progress"
	ProgressTemplate = "--progress-template"
)

// Progress line tags emitted through the progress templates.
const (
	DownloadTag    = "[vgrab:dl] "
	PostprocessTag = "[vgrab:pp] "
)

// Progress templates. Fields are pipe separated; yt-dlp prints NA for missing values.
const (
	DownloadTemplate = "download:" + DownloadTag +
		"%(progress.status)s|%(progress.downloaded_bytes)s|%(progress.total_bytes)s|" +
		"%(progress.total_bytes_estimate)s|%(progress.speed)s|%(progress.eta)s|" +
		"%(info.vcodec)s|%(info.acodec)s"

	PostprocessTemplate = "postprocess:" + PostprocessTag +
		"%(progress.status)s|%(progress.postprocessor)s"
)
