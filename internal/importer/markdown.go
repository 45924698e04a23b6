package importer

import (
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"finsight-rag/internal/models"
)

// importMarkdown walks the goldmark AST: the first heading becomes the
// title, list items become insights, everything else joins the summary.
func importMarkdown(filePath string) ([]models.Document, error) {
	source, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	root := md.Parser().Parse(text.NewReader(source))

	title := ""
	var insights []string
	var body strings.Builder

	err = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			if title == "" {
				title = nodeText(node, source)
				return ast.WalkSkipChildren, nil
			}
		case *ast.ListItem:
			if item := nodeText(node, source); item != "" {
				insights = append(insights, item)
			}
			return ast.WalkSkipChildren, nil
		case *ast.Paragraph:
			if para := nodeText(node, source); para != "" {
				body.WriteString(para)
				body.WriteString("\n")
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}

	if title == "" {
		title = titleFromPath(filePath)
	}
	summary := strings.TrimSpace(body.String())
	if summary == "" && len(insights) == 0 {
		return nil, nil
	}
	return []models.Document{{
		Title:    title,
		Author:   "Unknown",
		FullText: summary,
		Insights: insights,
	}}, nil
}

func nodeText(n ast.Node, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if textNode, ok := child.(*ast.Text); ok {
			sb.Write(textNode.Segment.Value(source))
			if textNode.SoftLineBreak() || textNode.HardLineBreak() {
				sb.WriteString(" ")
			}
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(sb.String())
}
