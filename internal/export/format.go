package export

import (
	"fmt"
	"strings"
)

// Format is an output sink.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var allFormats = []Format{FormatCSV, FormatXLSX, FormatJSON, FormatYAML}

// ParseFormats validates and de-duplicates format names ("yml" is accepted for yaml).
func ParseFormats(names []string) ([]Format, error) {
	var out []Format
	seen := map[Format]bool{}
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" {
			continue
		}
		if n == "yml" {
			n = string(FormatYAML)
		}
		f := Format(n)
		if !f.valid() {
			return nil, fmt.Errorf("unknown output format %q", n)
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out, nil
}

func (f Format) valid() bool {
	for _, a := range allFormats {
		if a == f {
			return true
		}
	}
	return false
}

// Ext is the file extension including the dot.
func (f Format) Ext() string { return "." + string(f) }

// ContentType is the MIME type served for downloads.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatJSON:
		return "application/json"
	case FormatYAML:
		return "application/yaml"
	}
	return "application/octet-stream"
}
