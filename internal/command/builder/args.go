package builder

import (
	"strconv"

	"vidgrab/internal/domain/command"
)

// Args renders the configuration as yt-dlp command line arguments.
func (c EngineConfig) Args() []string {
	args := make([]string, 0, 48)

	args = append(args,
		command.Output, c.outputTemplate,
		command.NoPlaylist,
		command.Format, c.format,
	)
	if c.restrictFilenames {
		args = append(args, command.RestrictFilenames)
	}
	if c.mergeOutputFormat != "" {
		args = append(args, command.MergeOutputFormat, c.mergeOutputFormat)
	}

	args = append(args,
		command.Retries, strconv.Itoa(c.network.Retries),
		command.FragmentRetries, strconv.Itoa(c.network.FragmentRetries),
		command.SocketTimeout, strconv.Itoa(c.network.SocketTimeoutSec),
		command.HTTPChunkSize, strconv.FormatInt(c.network.HTTPChunkSize, 10),
	)

	if c.ffmpegLocation != "" {
		args = append(args, command.FFmpegLocation, c.ffmpegLocation)
	}
	if c.jsRuntimes != "" {
		args = append(args, command.JSRuntimes, c.jsRuntimes)
	}
	if c.remoteComponents != "" {
		args = append(args, command.RemoteComponents, c.remoteComponents)
	}

	for _, pp := range c.postprocessors {
		switch pp.Key {
		case PPExtractAudio:
			args = append(args, command.ExtractAudio, command.AudioFormat, pp.PreferredCodec)
			if pp.PreferredQuality != "" {
				args = append(args, command.AudioQuality, pp.PreferredQuality+"K")
			}
		case PPVideoConvertor:
			args = append(args, command.RecodeVideo, pp.PreferredFormat)
		}
	}

	if c.trim != nil {
		args = append(args,
			command.DownloadSections, "*"+strconv.Itoa(c.trim.StartSec)+"-"+strconv.Itoa(c.trim.EndSec),
			command.ForceKeyframes,
		)
	}

	for _, key := range optionOrder {
		v, ok := c.options[key]
		if !ok {
			continue
		}
		switch key {
		case OptEmbedThumbnail:
			args = append(args, command.EmbedThumbnail)
		case OptEmbedMetadata:
			args = append(args, command.EmbedMetadata)
		case OptWriteSubtitles:
			args = append(args, command.WriteSubs)
		case OptProxy:
			args = append(args, command.Proxy, v)
		case OptRateLimit:
			args = append(args, command.LimitRate, v)
		case OptCookieFile:
			args = append(args, command.Cookies, v)
		}
	}
	return args
}
