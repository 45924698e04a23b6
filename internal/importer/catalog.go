package importer

import (
	"strings"

	"github.com/tealeg/xlsx"
	"github.com/xuri/excelize/v2"

	"finsight-rag/internal/models"
)

// Catalog sheets carry one book per row:
// title | author | topics (;-separated) | insights (;-separated) | summary
// The first row is a header and is skipped.

func importXLSX(filePath string) ([]models.Document, error) {
	f, err := xlsx.OpenFile(filePath)
	if err != nil {
		return nil, err
	}

	var docs []models.Document
	for _, sheet := range f.Sheets {
		for i, row := range sheet.Rows {
			if i == 0 {
				continue
			}
			cells := make([]string, 0, len(row.Cells))
			for _, cell := range row.Cells {
				cells = append(cells, cell.String())
			}
			if doc := catalogDocument(cells); doc != nil {
				docs = append(docs, *doc)
			}
		}
	}
	return docs, nil
}

func importODS(filePath string) ([]models.Document, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var docs []models.Document
	for _, sheetName := range f.GetSheetList() {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			continue
		}
		for i, row := range rows {
			if i == 0 {
				continue
			}
			if doc := catalogDocument(row); doc != nil {
				docs = append(docs, *doc)
			}
		}
	}
	return docs, nil
}

func catalogDocument(cells []string) *models.Document {
	if len(cells) == 0 || strings.TrimSpace(cells[0]) == "" {
		return nil
	}
	doc := models.Document{
		Title:  strings.TrimSpace(cells[0]),
		Author: "Unknown",
	}
	if len(cells) > 1 && strings.TrimSpace(cells[1]) != "" {
		doc.Author = strings.TrimSpace(cells[1])
	}
	if len(cells) > 2 {
		doc.Topics = splitList(cells[2])
	}
	if len(cells) > 3 {
		doc.Insights = splitList(cells[3])
	}
	if len(cells) > 4 {
		doc.FullText = strings.TrimSpace(cells[4])
	}
	return &doc
}

func splitList(cell string) []string {
	var out []string
	for _, part := range strings.Split(cell, ";") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
