package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestImportFile_UnsupportedFormat(t *testing.T) {
	_, err := ImportFile("book.exe")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file format")
}

func TestImportText(t *testing.T) {
	path := writeFile(t, "coffee_can_investing.txt", `A guide to low-churn equity investing for Indian savers.

- Buy quality stocks and hold for a decade
- Past returns do not guarantee future performance
`)

	docs, err := ImportFile(path)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	doc := docs[0]
	assert.Equal(t, "coffee can investing", doc.Title)
	assert.Contains(t, doc.FullText, "low-churn equity investing")
	require.Len(t, doc.Insights, 2)
	assert.Equal(t, "Buy quality stocks and hold for a decade", doc.Insights[0])
}

func TestImportText_Empty(t *testing.T) {
	path := writeFile(t, "empty.txt", "   \n  \n")
	docs, err := ImportFile(path)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestImportMarkdown(t *testing.T) {
	path := writeFile(t, "zero_to_one.md", `# Zero to One

Notes on startups and building the future, read through an investor's lens.

Key insights:

- Competition destroys profits
- Monopoly businesses compound value

More commentary follows here.
`)

	docs, err := ImportFile(path)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	doc := docs[0]
	assert.Equal(t, "Zero to One", doc.Title)
	assert.Contains(t, doc.FullText, "Notes on startups")
	assert.Contains(t, doc.FullText, "More commentary follows here.")
	assert.Equal(t, []string{"Competition destroys profits", "Monopoly businesses compound value"}, doc.Insights)
}

func TestImportMarkdown_NoHeadingFallsBackToFilename(t *testing.T) {
	path := writeFile(t, "psychology_of_money.md", "Wealth is what you don't see.\n")
	docs, err := ImportFile(path)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "psychology of money", docs[0].Title)
}

func TestImportXLSX_Catalog(t *testing.T) {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Books")
	require.NoError(t, err)

	header := sheet.AddRow()
	for _, col := range []string{"title", "author", "topics", "insights", "summary"} {
		header.AddCell().Value = col
	}
	row := sheet.AddRow()
	for _, val := range []string{
		"Let's Talk Money",
		"Monika Halan",
		"Personal Finance; Insurance",
		"Buy term insurance; Keep an emergency fund",
		"A personal finance guide for Indians.",
	} {
		row.AddCell().Value = val
	}
	blank := sheet.AddRow()
	blank.AddCell().Value = ""

	path := filepath.Join(t.TempDir(), "catalog.xlsx")
	require.NoError(t, f.Save(path))

	docs, err := ImportFile(path)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	doc := docs[0]
	assert.Equal(t, "Let's Talk Money", doc.Title)
	assert.Equal(t, "Monika Halan", doc.Author)
	assert.Equal(t, []string{"Personal Finance", "Insurance"}, doc.Topics)
	assert.Equal(t, []string{"Buy term insurance", "Keep an emergency fund"}, doc.Insights)
	assert.Equal(t, "A personal finance guide for Indians.", doc.FullText)
}

func TestCatalogDocument_Partial(t *testing.T) {
	doc := catalogDocument([]string{"Only a Title"})
	require.NotNil(t, doc)
	assert.Equal(t, "Only a Title", doc.Title)
	assert.Equal(t, "Unknown", doc.Author)
	assert.Empty(t, doc.Topics)

	assert.Nil(t, catalogDocument(nil))
	assert.Nil(t, catalogDocument([]string{"  "}))
}
