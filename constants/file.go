package constants

import (
	"path/filepath"
	"strings"
)

// AllowedExtensions holds the file extensions accepted for extraction.
var AllowedExtensions = map[string]struct{}{
	"pdf":  {},
	"jpg":  {},
	"jpeg": {},
	"png":  {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsAllowedExt reports whether the file name carries an extension we
// extract from.
func IsAllowedExt(name string) bool {
	_, ok := AllowedExtensions[NormalizeExt(filepath.Ext(name))]
	return ok
}

// IsPDF reports whether the declared file name selects the PDF code path.
// Only the extension is consulted; no content sniffing.
func IsPDF(name string) bool {
	return NormalizeExt(filepath.Ext(name)) == "pdf"
}
