package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

var (
	lessonParser     goldmark.Markdown
	lessonParserOnce sync.Once
)

func getLessonParser() goldmark.Markdown {
	lessonParserOnce.Do(func() {
		lessonParser = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		)
	})
	return lessonParser
}

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	codeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("179"))
)

// renderLessonMarkdown renders lesson content for the terminal. Lesson
// bodies are teacher-authored markdown; headings, lists, and code
// spans are styled and everything else flows as wrapped prose. Soft
// line breaks inside paragraphs become spaces so hard-wrapped source
// reflows at the current width.
func renderLessonMarkdown(input string, width int) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}
	if width < 20 {
		width = 20
	}

	source := []byte(input)
	doc := getLessonParser().Parser().Parse(text.NewReader(source))

	var out strings.Builder
	wrap := lipgloss.NewStyle().Width(width)

	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		switch n := node.(type) {
		case *ast.Heading:
			out.WriteString(headingStyle.Render(inlineText(n, source)))
			out.WriteString("\n\n")
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			out.WriteString(codeStyle.Render(blockLines(node, source)))
			out.WriteString("\n")
		case *ast.List:
			for item := n.FirstChild(); item != nil; item = item.NextSibling() {
				out.WriteString("  • ")
				out.WriteString(wrap.Render(inlineText(item, source)))
				out.WriteString("\n")
			}
			out.WriteString("\n")
		default:
			out.WriteString(wrap.Render(inlineText(node, source)))
			out.WriteString("\n\n")
		}
	}
	return strings.TrimRight(out.String(), "\n") + "\n"
}

// inlineText flattens a node's inline content to plain text, turning
// soft breaks into spaces.
func inlineText(node ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := n.(*ast.Text); ok {
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() {
				b.WriteByte(' ')
			}
			if t.HardLineBreak() {
				b.WriteByte('\n')
			}
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

// blockLines reassembles a code block's raw lines.
func blockLines(node ast.Node, source []byte) string {
	var b strings.Builder
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(source))
	}
	return b.String()
}
