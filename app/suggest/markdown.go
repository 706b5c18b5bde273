package suggest

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

var columnsContextKey = parser.NewContextKey()

// MarkdownRenderer converts insight and explanation Markdown to HTML. Code
// spans naming a dataset column are rendered with class "column".
type MarkdownRenderer struct {
	goldmark goldmark.Markdown
}

func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{
		goldmark: goldmark.New(
			goldmark.WithExtensions(extension.Table, &columnExtension{}),
		),
	}
}

// ToHTML renders src. columns are the names of the dataset's columns.
func (mr *MarkdownRenderer) ToHTML(src string, columns []string) (string, error) {
	known := make(map[string]bool, len(columns))
	for _, c := range columns {
		known[c] = true
	}

	var buf bytes.Buffer
	ctx := parser.NewContext()
	ctx.Set(columnsContextKey, known)
	if err := mr.goldmark.Convert([]byte(src), &buf, parser.WithContext(ctx)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

type columnExtension struct{}

func (e *columnExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithASTTransformers(
			util.Prioritized(&columnTransformer{}, 100),
		),
	)
}

type columnTransformer struct{}

func (t *columnTransformer) Transform(node *ast.Document, reader text.Reader, pc parser.Context) {
	known, _ := pc.Get(columnsContextKey).(map[string]bool)
	if len(known) == 0 {
		return
	}
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || n.Kind() != ast.KindCodeSpan {
			return ast.WalkContinue, nil
		}
		var name bytes.Buffer
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if txt, ok := c.(*ast.Text); ok {
				name.Write(txt.Segment.Value(reader.Source()))
			}
		}
		if known[name.String()] {
			n.SetAttributeString("class", []byte("column"))
		}
		return ast.WalkSkipChildren, nil
	})
}
