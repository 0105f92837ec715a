package handlers

import "strings"

// audioExtensions maps upload content types to the file extension used for
// the staged object key. The extension later drives media-format inference.
var audioExtensions = map[string]string{
	"audio/wav":   "wav",
	"audio/wave":  "wav",
	"audio/x-wav": "wav",
	"audio/mpeg":  "mp3",
	"audio/mp3":   "mp3",
	"audio/mp4":   "mp4",
	"audio/flac":  "flac",
	"audio/ogg":   "ogg",
	"audio/webm":  "webm",
}

func extensionForContentType(contentType string) string {
	// Strip any parameters, e.g. "audio/wav; charset=binary".
	base, _, _ := strings.Cut(contentType, ";")
	if ext, ok := audioExtensions[strings.TrimSpace(base)]; ok {
		return ext
	}
	return "wav"
}
