// Package document extracts speakable text from uploaded files.
package document

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// SupportedExtensions lists the accepted file extensions.
var SupportedExtensions = []string{".txt", ".md", ".doc", ".docx", ".pdf"}

// Supported reports whether ext (with its dot, any case) can be extracted.
func Supported(ext string) bool {
	return slices.Contains(SupportedExtensions, strings.ToLower(ext))
}

// Extract returns the text of a document. Word documents must be in the
// Office Open XML format whatever their extension.
func Extract(r io.ReaderAt, size int64, ext string) (string, error) {
	var (
		text string
		err  error
	)

	switch strings.ToLower(ext) {
	case ".txt", ".md":
		text, err = extractText(r, size)
	case ".pdf":
		text, err = extractPDF(r, size)
	case ".doc", ".docx":
		text, err = extractDOCX(r, size)
	default:
		return "", fmt.Errorf("%w: file type %s not supported. Use: %s",
			ErrUnsupportedType, ext, strings.Join(SupportedExtensions, ", "))
	}
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(text) == "" {
		return "", ErrEmpty
	}

	return text, nil
}

func extractText(r io.ReaderAt, size int64) (string, error) {
	data, err := io.ReadAll(io.NewSectionReader(r, 0, size))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnreadable, err)
	}

	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if !utf8.Valid(data) {
		return "", ErrInvalidEncoding
	}

	return string(data), nil
}

func extractPDF(r io.ReaderAt, size int64) (text string, err error) {
	// The PDF parser panics on some malformed files.
	defer func() {
		if p := recover(); p != nil {
			text, err = "", fmt.Errorf("%w: PDF reading error: %v", ErrUnreadable, p)
		}
	}()

	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("%w: PDF reading error: %w", ErrUnreadable, err)
	}

	var buf strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("%w: PDF page %d: %w", ErrUnreadable, i, err)
		}
		buf.WriteString(pageText)
		buf.WriteString("\n")
	}

	return buf.String(), nil
}

func extractDOCX(r io.ReaderAt, size int64) (string, error) {
	reader, err := zip.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("%w: Word document reading error: %w", ErrUnreadable, err)
	}

	for _, f := range reader.File {
		if path.Clean(f.Name) != "word/document.xml" {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("%w: open document.xml: %w", ErrUnreadable, err)
		}
		defer rc.Close()

		return paragraphs(rc)
	}

	return "", fmt.Errorf("%w: word/document.xml missing", ErrUnreadable)
}

// paragraphs returns the text of every w:p element, one paragraph per line.
func paragraphs(r io.Reader) (string, error) {
	var (
		buf    strings.Builder
		inText bool
	)

	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("%w: document.xml: %w", ErrUnreadable, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				buf.WriteByte('\t')
			case "br", "cr":
				buf.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				buf.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				buf.Write(t)
			}
		}
	}

	return buf.String(), nil
}
