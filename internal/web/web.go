// Package web fetches articles and turns them into Markdown.
package web

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"time"

	readability "codeberg.org/readeck/go-readability/v2"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"

	"github.com/dgallion1/mdsumm/internal/convert"
	"github.com/dgallion1/mdsumm/internal/httputil"
	"github.com/dgallion1/mdsumm/internal/mdfile"
)

var (
	ErrInvalidURL = errors.New("invalid article URL")
	ErrNoContent  = errors.New("no article content found")
)

const acceptHTML = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"

// Article is an extracted web page.
type Article struct {
	URL       string
	Title     string
	Byline    string
	SiteName  string
	Excerpt   string
	Published string
	Body      string // Markdown, without a title heading.
	Fetched   time.Time
}

// Fetcher downloads pages and extracts their main content.
type Fetcher struct {
	http *httputil.Client
	log  *slog.Logger
	now  func() time.Time
}

func NewFetcher(c *httputil.Client, log *slog.Logger) *Fetcher {
	return &Fetcher{http: c, log: log, now: time.Now}
}

// Fetch downloads rawURL and extracts its article.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Article, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}

	body, header, err := f.http.Get(ctx, rawURL, acceptHTML)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}

	r, err := charset.NewReader(bytes.NewReader(body), header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", rawURL, err)
	}
	page, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", rawURL, err)
	}

	art, err := f.Parse(page, u)
	if err != nil {
		return nil, err
	}
	art.Fetched = f.now().UTC()
	return art, nil
}

// Parse extracts an article from UTF-8 HTML. Readability is tried first;
// when it fails or finds nothing, the first article-like element (or the
// body) is converted instead.
func (f *Fetcher) Parse(page []byte, u *url.URL) (*Article, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	art := &Article{URL: u.String()}
	readMeta(doc, art)

	domain := u.Scheme + "://" + u.Host
	md, title, err := readable(page, u, domain)
	if err != nil || md == "" {
		f.log.Debug("readability found nothing, using page fallback", "url", art.URL, "error", err)
		md, err = fallback(doc, domain)
		if err != nil {
			return nil, err
		}
	}
	if md == "" {
		return nil, fmt.Errorf("%s: %w", art.URL, ErrNoContent)
	}
	if title != "" {
		art.Title = title
	}
	if art.Title == "" {
		art.Title = u.Host
	}
	art.Body = md
	return art, nil
}

func readable(page []byte, u *url.URL, domain string) (md, title string, err error) {
	article, err := readability.FromReader(bytes.NewReader(page), u)
	if err != nil {
		return "", "", err
	}
	var buf strings.Builder
	if err := article.RenderHTML(&buf); err != nil {
		return "", "", err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(buf.String()))
	if err != nil {
		return "", "", err
	}
	md, err = convert.HTMLToMarkdown(doc, domain)
	return md, strings.TrimSpace(article.Title()), err
}

var boilerplate = strings.Join([]string{
	"header", "footer", "nav", "aside", "form",
	".advertisement", ".ad", ".sidebar", ".comments",
	"[role=navigation]", "[role=banner]", "[role=contentinfo]",
}, ", ")

func fallback(doc *goquery.Document, domain string) (string, error) {
	doc.Find(boilerplate).Remove()
	sel := doc.Find("article, main, .content, .post-content, .article-content, #content").First()
	if sel.Length() == 0 {
		sel = doc.Find("body")
	}
	if sel.Length() == 0 {
		return "", nil
	}
	return convert.HTMLToMarkdown(goquery.NewDocumentFromNode(sel.Nodes[0]), domain)
}

func readMeta(doc *goquery.Document, art *Article) {
	meta := func(selectors ...string) string {
		for _, sel := range selectors {
			if v, ok := doc.Find(sel).First().Attr("content"); ok && strings.TrimSpace(v) != "" {
				return strings.TrimSpace(v)
			}
		}
		return ""
	}
	art.Title = meta(`meta[property="og:title"]`)
	if art.Title == "" {
		art.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	art.Byline = meta(`meta[name="author"]`, `meta[property="article:author"]`)
	art.SiteName = meta(`meta[property="og:site_name"]`)
	art.Excerpt = meta(`meta[name="description"]`, `meta[property="og:description"]`)
	art.Published = meta(`meta[property="article:published_time"]`)
}

// Markdown renders the article. News mode adds author and date lines and
// splits the page into Summary and Article sections.
func (a *Article) Markdown(news bool) string {
	var sb strings.Builder
	sb.WriteString("# " + a.Title + "\n\n")
	if news {
		if a.Byline != "" {
			sb.WriteString("Author: " + a.Byline + "  \n")
		}
		if a.Published != "" {
			sb.WriteString("Publish Date: " + a.Published + "  \n")
		}
	}
	sb.WriteString("[Original](" + a.URL + ")\n\n")
	if news {
		if a.Excerpt != "" {
			sb.WriteString("## Summary\n\n" + a.Excerpt + "\n\n")
		}
		sb.WriteString("## Article\n\n")
	}
	sb.WriteString(strings.TrimSpace(a.Body))
	sb.WriteString("\n")
	return sb.String()
}

// Meta returns the frontmatter for the article.
func (a *Article) Meta() mdfile.Meta {
	return mdfile.Meta{
		Title:   a.Title,
		Source:  a.URL,
		Author:  a.Byline,
		Site:    a.SiteName,
		Fetched: a.Fetched,
	}
}
