package constants

import "strings"

// FileTypes holds the allowed source document formats.
var FileTypes = []string{"PDF"}

// AllowedExtensions holds the file extensions accepted for upload.
// Only text-layer PDFs are supported; scanned images need an OCR front-end
// that this service does not provide.
var AllowedExtensions = map[string]struct{}{
	"pdf": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsAllowedExt reports whether the extension is accepted for upload.
func IsAllowedExt(ext string) bool {
	_, ok := AllowedExtensions[NormalizeExt(ext)]
	return ok
}
