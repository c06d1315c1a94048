package constants

import "strings"

// Source formats understood by the text extractor.
const (
	PDF  = "PDF"
	DOCX = "DOCX"
)

// FileTypes holds the document formats a resume can arrive in.
var FileTypes = []string{PDF, DOCX}

// AllowedExtensions holds the file extensions picked up from a resume folder.
var AllowedExtensions = map[string]struct{}{
	"pdf":  {},
	"docx": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}

// MapExtToFormat returns PDF or DOCX for a known extension, "" otherwise.
func MapExtToFormat(ext string) string {
	switch NormalizeExt(ext) {
	case "pdf":
		return PDF
	case "docx":
		return DOCX
	default:
		return ""
	}
}

// IsAllowedExt reports whether ext (with or without the dot) is a resume format.
func IsAllowedExt(ext string) bool {
	_, ok := AllowedExtensions[NormalizeExt(ext)]
	return ok
}
