// Package capture clips web pages into note drafts: fetch a URL, extract
// the readable article, and compress it into a markdown body that fits
// the note character budget.
package capture

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	readability "github.com/go-shiori/go-readability"

	"github.com/vidyasagar/kasten/internal/note"
)

// Article holds the readable content extracted from a fetched page.
type Article struct {
	Title       string
	Byline      string
	SiteName    string
	Excerpt     string
	Content     string // cleaned HTML
	TextContent string // plain text
	SourceURL   string // final URL after redirects
}

// Draft is a pre-filled create-form payload built from a clipped page.
type Draft struct {
	SuggestedID string
	Title       string
	Body        string // markdown, ending in a bracketed source line
	SourceURL   string
}

// Extract pulls the readable article out of a fetch result. Non-HTML
// responses degrade to a plain-text article.
func Extract(result *FetchResult) (*Article, error) {
	if !IsHTML(result.ContentType) {
		return &Article{
			Title:       result.FinalURL,
			TextContent: string(result.Body),
			SourceURL:   result.FinalURL,
		}, nil
	}

	parsedURL, err := url.Parse(result.FinalURL)
	if err != nil {
		return nil, fmt.Errorf("parsing URL: %w", err)
	}

	article, err := readability.FromReader(bytes.NewReader(result.Body), parsedURL)
	if err != nil {
		return nil, fmt.Errorf("extracting article: %w", err)
	}

	return &Article{
		Title:       article.Title,
		Byline:      article.Byline,
		SiteName:    article.SiteName,
		Excerpt:     article.Excerpt,
		Content:     article.Content,
		TextContent: article.TextContent,
		SourceURL:   result.FinalURL,
	}, nil
}

// Clip turns a fetch result into a note draft.
func Clip(result *FetchResult) (*Draft, error) {
	article, err := Extract(result)
	if err != nil {
		return nil, err
	}
	return BuildDraft(article), nil
}

// BuildDraft converts an extracted article into a draft: HTML becomes
// compact markdown, cut at a paragraph boundary to fit the character
// budget, with a bracketed source line appended. The source line is
// bracketed text and so does not count against the budget.
func BuildDraft(article *Article) *Draft {
	body := strings.TrimSpace(article.TextContent)
	if article.Content != "" {
		if md, err := htmlToMarkdown(article.Content); err == nil && md != "" {
			body = md
		}
	}
	body = truncateAtParagraph(body, note.MaxEffectiveChars)

	if article.SourceURL != "" {
		if body != "" {
			body += "\n\n"
		}
		body += "[source: " + article.SourceURL + "]"
	}

	return &Draft{
		SuggestedID: note.Slugify(article.Title),
		Title:       article.Title,
		Body:        body,
		SourceURL:   article.SourceURL,
	}
}

// truncateAtParagraph keeps whole paragraphs while they fit the budget.
// A first paragraph that alone overflows is cut mid-text.
func truncateAtParagraph(text string, budget int) string {
	if note.EffectiveChars(text) <= budget {
		return text
	}

	var kept string
	for _, para := range strings.Split(text, "\n\n") {
		candidate := kept
		if candidate != "" {
			candidate += "\n\n"
		}
		candidate += para
		if note.EffectiveChars(candidate) > budget {
			break
		}
		kept = candidate
	}

	if kept == "" {
		runes := []rune(strings.TrimSpace(text))
		if len(runes) > budget {
			runes = runes[:budget]
		}
		kept = strings.TrimSpace(string(runes))
	}
	return kept
}
