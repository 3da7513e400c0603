package media

import (
	"path"
	"strings"
)

// Kind is the rendering category of a media file.
type Kind int

const (
	Image Kind = iota
	Video
	Audio
)

func (k Kind) String() string {
	switch k {
	case Video:
		return "video"
	case Audio:
		return "audio"
	default:
		return "image"
	}
}

// VideoTypes maps the recognised video extensions to their MIME types.
var VideoTypes = map[string]string{
	".mp4":  "video/mp4",
	".webm": "video/webm",
	".ogg":  "video/ogg",
	".mov":  "video/quicktime",
}

// AudioTypes maps the recognised audio extensions to their MIME types.
var AudioTypes = map[string]string{
	".mp3":  "audio/mpeg",
	".m4a":  "audio/mp4",
	".aac":  "audio/aac",
	".wav":  "audio/wav",
	".flac": "audio/flac",
	".oga":  "audio/ogg",
	".opus": "audio/opus",
	".weba": "audio/webm",
}

// ImageExtensions lists the extensions probed when looking for a still image
// next to a video, in probe order.
var ImageExtensions = []string{".jpg", ".jpeg", ".png", ".webp", ".gif"}

const (
	defaultVideoType = "video/mp4"
	defaultAudioType = "audio/mpeg"
)

func ext(filename string) string {
	return strings.ToLower(path.Ext(filename))
}

// Classify decides how a file is rendered from its extension alone.
// Video wins over audio for extensions both could claim (.ogg).
func Classify(filename string) Kind {
	e := ext(filename)
	if _, ok := VideoTypes[e]; ok {
		return Video
	}
	if _, ok := AudioTypes[e]; ok {
		return Audio
	}
	return Image
}

// IsVideo reports whether filename has a video extension.
func IsVideo(filename string) bool {
	return Classify(filename) == Video
}

// VideoType returns the MIME type for a video file, defaulting to video/mp4.
func VideoType(filename string) string {
	if t, ok := VideoTypes[ext(filename)]; ok {
		return t
	}
	return defaultVideoType
}

// AudioType returns the MIME type for an audio file, defaulting to audio/mpeg.
func AudioType(filename string) string {
	if t, ok := AudioTypes[ext(filename)]; ok {
		return t
	}
	return defaultAudioType
}

// Alt derives alt text from a filename: directory and extension are dropped
// and underscores become spaces.
func Alt(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	base = strings.TrimSuffix(base, path.Ext(base))
	return strings.ReplaceAll(base, "_", " ")
}

// StripExt returns filename without its extension, keeping any directory.
func StripExt(filename string) string {
	return strings.TrimSuffix(filename, path.Ext(filename))
}
