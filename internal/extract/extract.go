// Package extract turns uploaded resume files into plain text.
package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeText = "text/plain"
)

var (
	// ErrUnsupportedFile is returned for anything other than PDF, DOCX or TXT.
	ErrUnsupportedFile = errors.New("unsupported file type")
	// ErrNoText is returned when a supported file yields no text.
	ErrNoText = errors.New("no text could be extracted")
)

// DetectType resolves the effective MIME type from the declared type, the
// file extension and the payload itself.
func DetectType(mimeType, fileName string, data []byte) (string, error) {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	ext := strings.ToLower(filepath.Ext(fileName))

	switch clean {
	case MimePDF, MimeDOCX, MimeText:
		return clean, nil
	case "application/zip", "application/x-zip-compressed":
		if isDOCX(data) {
			return MimeDOCX, nil
		}
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFile, clean)
	}

	switch ext {
	case ".pdf":
		return MimePDF, nil
	case ".docx":
		return MimeDOCX, nil
	case ".txt":
		return MimeText, nil
	}

	if clean == "" || clean == "application/octet-stream" {
		sniffed := strings.Split(http.DetectContentType(data), ";")[0]
		switch {
		case sniffed == MimePDF:
			return MimePDF, nil
		case sniffed == "application/zip" && isDOCX(data):
			return MimeDOCX, nil
		case sniffed == MimeText:
			return MimeText, nil
		}
	}
	if clean == "" {
		clean = "unknown"
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFile, clean)
}

// Text extracts plain text from an in-memory upload.
func Text(ctx context.Context, data []byte, mimeType, fileName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	kind, err := DetectType(mimeType, fileName, data)
	if err != nil {
		return "", err
	}

	var text string
	switch kind {
	case MimePDF:
		text, err = extractPDF(data)
	case MimeDOCX:
		text, err = extractDOCX(data)
	default:
		text = extractTXT(data)
	}
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", kind, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrNoText
	}
	return text, nil
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty docx data")
	}
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	defer doc.Close()
	return stripDocxXML(doc.Editable().GetContent())
}

func extractTXT(data []byte) string {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if utf8.Valid(data) {
		return string(data)
	}
	return strings.ToValidUTF8(string(data), "")
}

// stripDocxXML keeps character data and turns paragraph and break ends into
// newlines. Malformed document XML is an error, never returned as text.
func stripDocxXML(raw string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("document xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.WriteString(string(t))
		case xml.EndElement:
			switch t.Name.Local {
			case "p", "br":
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
			case "tab":
				buf.WriteString("\t")
			}
		}
	}
	return strings.TrimSpace(buf.String()), nil
}

func isDOCX(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return false
	}
	for _, f := range zr.File {
		if strings.ReplaceAll(f.Name, "\\", "/") == "word/document.xml" {
			return true
		}
	}
	return false
}
