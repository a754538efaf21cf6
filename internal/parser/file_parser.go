package parser

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/fumiama/go-docx"
	"github.com/ledongthuc/pdf"
)

// WarningPrefix marks an extraction failure. Parse never returns an error;
// callers detect failure by checking for this prefix.
const WarningPrefix = "⚠️"

// IsWarning reports whether an extraction result is a failure message.
func IsWarning(text string) bool {
	return strings.HasPrefix(text, WarningPrefix)
}

// Parse extracts plain text from a TXT, PDF or DOCX file on disk. Failures
// come back as warning strings so the orchestrator decides how to surface them.
func Parse(path, extension string) string {
	switch strings.ToLower(extension) {
	case "txt":
		return parseTxt(path)
	case "pdf":
		return parsePDF(path)
	case "docx", "doc":
		return parseDocx(path)
	default:
		return fmt.Sprintf("%s Format file .%s belum didukung.", WarningPrefix, extension)
	}
}

func parseTxt(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Sprintf("%s Gagal membaca file: %v", WarningPrefix, err)
	}

	if utf8.Valid(data) {
		return string(data)
	}

	// Latin-1 fallback: every byte maps 1:1 to the same code point.
	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes)
}

func parsePDF(path string) string {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return fmt.Sprintf("%s Gagal membaca PDF: %v", WarningPrefix, err)
	}
	defer f.Close()

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if pageText != "" {
			sb.WriteString(pageText)
			sb.WriteString("\n")
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return WarningPrefix + " File PDF ini tidak mengandung teks yang bisa dibaca (mungkin gambar scan)."
	}
	return text
}

func parseDocx(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Sprintf("%s Gagal membaca DOCX: %v", WarningPrefix, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Sprintf("%s Gagal membaca DOCX: %v", WarningPrefix, err)
	}

	doc, err := docx.Parse(f, info.Size())
	if err != nil {
		return fmt.Sprintf("%s Gagal membaca DOCX: %v", WarningPrefix, err)
	}

	var sb strings.Builder
	for _, item := range doc.Document.Body.Items {
		switch block := item.(type) {
		case *docx.Paragraph:
			if text := strings.TrimSpace(block.String()); text != "" {
				sb.WriteString(text)
				sb.WriteString("\n")
			}
		case *docx.Table:
			for _, row := range block.TableRows {
				for _, cell := range row.TableCells {
					for _, paragraph := range cell.Paragraphs {
						if text := strings.TrimSpace(paragraph.String()); text != "" {
							sb.WriteString(text)
							sb.WriteString(" ")
						}
					}
				}
				sb.WriteString("\n")
			}
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return WarningPrefix + " File DOCX ini kosong atau tidak mengandung teks."
	}
	return text
}
