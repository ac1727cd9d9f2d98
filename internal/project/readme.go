package project

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// maxDescriptionLen bounds the description copied into project.yaml
const maxDescriptionLen = 280

var markdown = goldmark.New()

// ExtractDescription returns the first prose paragraph of a Markdown
// document as plain text. Headings, lists, quotes and code are skipped.
func ExtractDescription(source []byte) string {
	doc := markdown.Parser().Parse(text.NewReader(source))

	var desc string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n.Kind() {
		case ast.KindDocument:
			return ast.WalkContinue, nil
		case ast.KindParagraph:
			if s := strings.TrimSpace(paragraphText(n, source)); s != "" {
				desc = s
				return ast.WalkStop, nil
			}
		}
		// only top-level paragraphs count
		return ast.WalkSkipChildren, nil
	})

	if len(desc) > maxDescriptionLen {
		cut := strings.LastIndex(desc[:maxDescriptionLen], " ")
		if cut <= 0 {
			cut = maxDescriptionLen
		}
		desc = strings.TrimRight(desc[:cut], " ,.;:") + "..."
	}
	return desc
}

// ReadDescription extracts the description of the README.md in dir, if any
func ReadDescription(dir string) string {
	for _, name := range []string{"README.md", "readme.md", "Readme.md"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err == nil {
			return ExtractDescription(data)
		}
	}
	return ""
}

// paragraphText flattens inline content, turning line breaks into spaces
func paragraphText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := c.(type) {
		case *ast.Text:
			buf.Write(node.Segment.Value(source))
			if node.SoftLineBreak() || node.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(node.Value)
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}
