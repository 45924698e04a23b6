package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"finsight-rag/internal/models"
)

// ImportFile reads book documents from a file. Summary formats
// (markdown, text, PDF, DOCX) yield one document; catalog spreadsheets
// (XLSX, ODS) yield one document per row.
func ImportFile(filePath string) ([]models.Document, error) {
	ext := strings.ToLower(filepath.Ext(filePath))
	switch ext {
	case ".md":
		return importMarkdown(filePath)
	case ".txt":
		return importText(filePath)
	case ".pdf":
		return importPDF(filePath)
	case ".docx":
		return importDOCX(filePath)
	case ".xlsx":
		return importXLSX(filePath)
	case ".ods":
		return importODS(filePath)
	default:
		return nil, fmt.Errorf("unsupported file format: %s", ext)
	}
}

func importText(filePath string) ([]models.Document, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	doc := summaryDocument(titleFromPath(filePath), string(data))
	if doc == nil {
		return nil, nil
	}
	return []models.Document{*doc}, nil
}

func importPDF(filePath string) ([]models.Document, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}
	reader, err := pdf.NewReader(f, stat.Size())
	if err != nil {
		return nil, err
	}

	var text strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		pageText, err := reader.Page(i).GetPlainText(nil)
		if err != nil {
			return nil, err
		}
		text.WriteString(pageText)
		text.WriteString("\n")
	}

	doc := summaryDocument(titleFromPath(filePath), text.String())
	if doc == nil {
		return nil, nil
	}
	return []models.Document{*doc}, nil
}

func importDOCX(filePath string) ([]models.Document, error) {
	r, err := docx.ReadDocxFile(filePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	content := r.Editable().GetContent()
	doc := summaryDocument(titleFromPath(filePath), stripXMLTags(content))
	if doc == nil {
		return nil, nil
	}
	return []models.Document{*doc}, nil
}

var (
	bulletRe = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)])\s+(.+)$`)
	xmlTagRe = regexp.MustCompile(`<[^>]+>`)
)

// summaryDocument builds one Document from free-form summary text.
// Bullet and numbered lines become insights; the remainder is the
// summary body.
func summaryDocument(title, raw string) *models.Document {
	var bodyLines []string
	var insights []string
	for _, line := range strings.Split(raw, "\n") {
		if m := bulletRe.FindStringSubmatch(line); m != nil {
			insights = append(insights, strings.TrimSpace(m[1]))
			continue
		}
		bodyLines = append(bodyLines, line)
	}

	body := strings.TrimSpace(strings.Join(bodyLines, "\n"))
	if body == "" && len(insights) == 0 {
		return nil
	}
	return &models.Document{
		Title:    title,
		Author:   "Unknown",
		FullText: body,
		Insights: insights,
	}
}

func titleFromPath(filePath string) string {
	base := filepath.Base(filePath)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return strings.ReplaceAll(name, "_", " ")
}

func stripXMLTags(s string) string {
	return xmlTagRe.ReplaceAllString(s, " ")
}
