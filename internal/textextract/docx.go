package textextract

import (
	"archive/zip"
	"fmt"
	"html"
	"io"
	"regexp"

	"github.com/nguyenthenguyen/docx"
)

var (
	reParaEnd = regexp.MustCompile(`</w:p>|<w:br\s*/>|<w:cr\s*/>`)
	reTab     = regexp.MustCompile(`<w:tab\s*/>`)
	reXMLTag  = regexp.MustCompile(`<[^>]+>`)
)

// readDOCX returns the body text of a .docx. The docx library is tried first;
// if it rejects the package (it insists on a rels part) we read word/document.xml directly.
func readDOCX(path string) (string, []string, error) {
	var warns []string
	xml, err := docxContent(path)
	if err != nil {
		warns = append(warns, "docx reader: "+err.Error())
		xml, err = documentXML(path)
		if err != nil {
			return "", warns, err
		}
	}
	return xmlToText(xml), warns, nil
}

func docxContent(path string) (string, error) {
	r, err := docx.ReadDocxFile(path)
	if err != nil {
		return "", err
	}
	defer r.Close()
	return r.Editable().GetContent(), nil
}

func documentXML(path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("open document.xml: %w", err)
		}
		defer rc.Close()
		b, err := io.ReadAll(rc)
		if err != nil {
			return "", fmt.Errorf("read document.xml: %w", err)
		}
		return string(b), nil
	}
	return "", fmt.Errorf("no word/document.xml in docx")
}

// xmlToText maps paragraph, break and tab markup to whitespace and drops the rest.
func xmlToText(xml string) string {
	xml = reParaEnd.ReplaceAllString(xml, "\n")
	xml = reTab.ReplaceAllString(xml, "\t")
	xml = reXMLTag.ReplaceAllString(xml, "")
	return html.UnescapeString(xml)
}
