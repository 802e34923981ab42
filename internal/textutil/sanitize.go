package textutil

import "strings"

// segmentReplacer replaces filesystem-unsafe characters with safe alternatives.
var segmentReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
	"\x00", "",
)

// SanitizePathSegment turns name into a single directory or file name.
// Separators and other unsafe characters are replaced, surrounding whitespace
// is trimmed and leading dots are dropped so the result is never hidden from a
// directory listing that skips dot entries. An empty result becomes fallback.
func SanitizePathSegment(name, fallback string) string {
	cleaned := strings.TrimSpace(segmentReplacer.Replace(strings.TrimSpace(name)))
	cleaned = strings.TrimLeft(cleaned, ".")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return fallback
	}
	return cleaned
}

// Stem returns a file name without its final extension. Names whose only dot
// is the leading one are returned unchanged.
func Stem(name string) string {
	idx := strings.LastIndexByte(name, '.')
	if idx <= 0 {
		return name
	}
	return name[:idx]
}
