package capture

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// htmlToMarkdown converts readable HTML into the compact markdown subset
// kept in notes: headings, paragraphs, lists, blockquotes, code. Links
// flatten to their text; images, figures, and embeds are dropped.
func htmlToMarkdown(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	var md strings.Builder
	doc.Find("body").Children().Each(func(i int, s *goquery.Selection) {
		md.WriteString(convertNode(s, 0))
	})
	return strings.TrimSpace(md.String()), nil
}

func convertNode(s *goquery.Selection, depth int) string {
	var sb strings.Builder

	switch tag := goquery.NodeName(s); tag {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		sb.WriteString(convertHeading(s, int(tag[1]-'0')))
	case "p":
		sb.WriteString(convertParagraph(s))
	case "ul":
		sb.WriteString(convertList(s, false, depth))
	case "ol":
		sb.WriteString(convertList(s, true, depth))
	case "blockquote":
		sb.WriteString(convertBlockquote(s))
	case "pre":
		sb.WriteString(convertCodeBlock(s))
	case "code":
		sb.WriteString("`" + s.Text() + "`")
	case "hr":
		sb.WriteString("---\n\n")
	case "br":
		sb.WriteString("  \n")
	case "strong", "b":
		sb.WriteString("**")
		convertInlineChildren(s, &sb)
		sb.WriteString("**")
	case "em", "i":
		sb.WriteString("*")
		convertInlineChildren(s, &sb)
		sb.WriteString("*")
	case "img", "figure", "picture", "video", "iframe", "script", "style":
		// dropped from drafts
	case "div", "article", "section", "main", "header", "footer", "span":
		s.Children().Each(func(i int, child *goquery.Selection) {
			sb.WriteString(convertNode(child, depth))
		})
	default:
		text := strings.TrimSpace(s.Text())
		if text != "" {
			sb.WriteString(text)
			sb.WriteString("\n\n")
		}
	}

	return sb.String()
}

func convertHeading(s *goquery.Selection, level int) string {
	text := strings.TrimSpace(s.Text())
	if text == "" {
		return ""
	}
	return strings.Repeat("#", level) + " " + text + "\n\n"
}

func convertParagraph(s *goquery.Selection) string {
	var sb strings.Builder
	convertInlineChildren(s, &sb)
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return ""
	}
	return text + "\n\n"
}

func convertInlineChildren(s *goquery.Selection, sb *strings.Builder) {
	s.Contents().Each(func(i int, child *goquery.Selection) {
		switch goquery.NodeName(child) {
		case "#text":
			sb.WriteString(child.Text())
		case "a":
			// Link text only; a clipped note keeps its one source URL.
			convertInlineChildren(child, sb)
		case "strong", "b":
			sb.WriteString("**")
			convertInlineChildren(child, sb)
			sb.WriteString("**")
		case "em", "i":
			sb.WriteString("*")
			convertInlineChildren(child, sb)
			sb.WriteString("*")
		case "code":
			sb.WriteString("`" + child.Text() + "`")
		case "br":
			sb.WriteString("  \n")
		case "img":
			// dropped
		default:
			convertInlineChildren(child, sb)
		}
	})
}

func convertList(s *goquery.Selection, ordered bool, depth int) string {
	var sb strings.Builder
	itemNum := 0
	indent := strings.Repeat("  ", depth)

	s.Find("> li").Each(func(i int, li *goquery.Selection) {
		itemNum++
		var prefix string
		if ordered {
			prefix = fmt.Sprintf("%s%d. ", indent, itemNum)
		} else {
			prefix = indent + "- "
		}

		var itemSb strings.Builder
		convertInlineChildren(li, &itemSb)
		sb.WriteString(prefix + strings.TrimSpace(itemSb.String()) + "\n")

		li.Children().Each(func(j int, child *goquery.Selection) {
			switch goquery.NodeName(child) {
			case "ul":
				sb.WriteString(convertList(child, false, depth+1))
			case "ol":
				sb.WriteString(convertList(child, true, depth+1))
			}
		})
	})

	return sb.String() + "\n"
}

func convertBlockquote(s *goquery.Selection) string {
	var sb strings.Builder
	s.Children().Each(func(i int, child *goquery.Selection) {
		content := convertNode(child, 0)
		for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
			sb.WriteString("> " + line + "\n")
		}
	})
	if sb.Len() == 0 {
		if text := strings.TrimSpace(s.Text()); text != "" {
			sb.WriteString("> " + text + "\n")
		}
	}
	sb.WriteString("\n")
	return sb.String()
}

func convertCodeBlock(s *goquery.Selection) string {
	code := s.Find("code")

	lang := ""
	if code.Length() > 0 {
		class, _ := code.Attr("class")
		if _, after, found := strings.Cut(class, "language-"); found {
			if fields := strings.Fields(after); len(fields) > 0 {
				lang = fields[0]
			}
		}
	}

	text := s.Text()
	if code.Length() > 0 {
		text = code.Text()
	}

	return "```" + lang + "\n" + text + "\n```\n\n"
}
