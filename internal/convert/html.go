package convert

import (
	"fmt"
	"io"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
)

// noiseSelectors are removed before conversion.
var noiseSelectors = strings.Join([]string{
	"script", "style", "noscript", "iframe", "svg", "template", "head",
}, ", ")

// HTMLConverter converts HTML documents to Markdown. The <title> element
// becomes the level 1 heading when the body does not start with one.
type HTMLConverter struct {
	// Domain resolves relative links, e.g. "https://example.com".
	Domain string
}

func (c *HTMLConverter) Convert(r io.Reader, filename string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = baseTitle(filename)
	}

	md, err := HTMLToMarkdown(doc, c.Domain)
	if err != nil {
		return "", err
	}
	return WithTitle(title, md), nil
}

// HTMLToMarkdown strips non-content elements from doc and renders the rest
// as CommonMark with GFM tables. The returned text has no surrounding
// whitespace.
func HTMLToMarkdown(doc *goquery.Document, domain string) (string, error) {
	doc.Find(noiseSelectors).Remove()
	if len(doc.Nodes) == 0 {
		return "", nil
	}

	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(
				commonmark.WithHeadingStyle(commonmark.HeadingStyleATX),
			),
			table.NewTablePlugin(),
		),
	)
	var opts []converter.ConvertOptionFunc
	if domain != "" {
		opts = append(opts, converter.WithDomain(domain))
	}
	out, err := conv.ConvertNode(doc.Nodes[0], opts...)
	if err != nil {
		return "", fmt.Errorf("html to markdown: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// WithTitle prepends "# title" to md unless md already has a heading.
// The result ends with exactly one newline.
func WithTitle(title, md string) string {
	md = strings.TrimSpace(md)
	if title == "" || MarkdownTitle([]byte(md)) != "" {
		if md == "" {
			return ""
		}
		return md + "\n"
	}
	if md == "" {
		return "# " + title + "\n"
	}
	return "# " + title + "\n\n" + md + "\n"
}
