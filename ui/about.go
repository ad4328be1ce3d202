package ui

import (
	"html/template"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// renderAbout converts the embedded about page from markdown to HTML
func renderAbout() (template.HTML, error) {
	src, err := embeddedFiles.ReadFile("content/about.md")
	if err != nil {
		return "", err
	}
	return template.HTML(markdownToHTML(src)), nil
}

func markdownToHTML(src []byte) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	r := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags | mdhtml.HrefTargetBlank})
	return markdown.ToHTML(src, p, r)
}
