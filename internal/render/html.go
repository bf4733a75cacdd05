// Package render turns comment markup and timestamps into terminal text.
package render

import (
	"strings"

	xhtml "golang.org/x/net/html"
)

// ToText converts the limited HTML found in HN comments to plain text wrapped
// at width. Supported: <p>, <br>, <a>, <i>/<em>, <b>/<strong>, <code>, <pre>.
// Unknown tags are dropped and their text kept.
func ToText(raw string, width int) string {
	if raw == "" {
		return ""
	}

	z := xhtml.NewTokenizer(strings.NewReader(raw))
	var sb strings.Builder
	var inPre bool
	var href string

	for {
		switch z.Next() {
		case xhtml.ErrorToken:
			return wrapText(strings.TrimSpace(sb.String()), width)

		case xhtml.StartTagToken, xhtml.SelfClosingTagToken:
			t := z.Token()
			switch t.Data {
			case "p":
				if sb.Len() > 0 {
					sb.WriteString("\n\n")
				}
			case "br":
				sb.WriteString("\n")
			case "i", "em":
				sb.WriteString("_")
			case "b", "strong":
				sb.WriteString("*")
			case "code":
				if !inPre {
					sb.WriteString("`")
				}
			case "pre":
				inPre = true
				sb.WriteString("\n")
			case "a":
				href = ""
				for _, attr := range t.Attr {
					if attr.Key == "href" {
						href = attr.Val
					}
				}
			}

		case xhtml.EndTagToken:
			t := z.Token()
			switch t.Data {
			case "i", "em":
				sb.WriteString("_")
			case "b", "strong":
				sb.WriteString("*")
			case "code":
				if !inPre {
					sb.WriteString("`")
				}
			case "pre":
				inPre = false
				sb.WriteString("\n")
			case "a":
				// HN shortens long link texts; show the target unless it is
				// already the visible text.
				if href != "" && !strings.HasSuffix(strings.TrimSpace(sb.String()), href) {
					sb.WriteString(" [" + href + "]")
				}
				href = ""
			}

		case xhtml.TextToken:
			text := string(z.Text())
			if !inPre {
				sb.WriteString(text)
				continue
			}
			for i, line := range strings.Split(text, "\n") {
				if i > 0 {
					sb.WriteString("\n")
				}
				if line != "" {
					sb.WriteString("    " + line)
				}
			}
		}
	}
}

// wrapText performs word wrapping to width. Indented code lines are left as is.
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	var out strings.Builder
	for _, paragraph := range strings.Split(text, "\n") {
		if strings.HasPrefix(paragraph, "    ") {
			out.WriteString(paragraph + "\n")
			continue
		}
		lineLen := 0
		for i, word := range strings.Fields(paragraph) {
			switch {
			case i == 0:
			case lineLen+1+len(word) > width:
				out.WriteString("\n")
				lineLen = 0
			default:
				out.WriteString(" ")
				lineLen++
			}
			out.WriteString(word)
			lineLen += len(word)
		}
		out.WriteString("\n")
	}
	return strings.TrimRight(out.String(), "\n")
}
