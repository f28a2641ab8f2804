package extract

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// MinCandidateChars is the threshold below which an extracted container is
// treated as noise rather than recipe content.
const MinCandidateChars = 500

// maxRawContainers bounds the last-resort raw markup fallback.
const maxRawContainers = 3

// chromeSelector matches elements that never carry recipe content.
const chromeSelector = "script, style, nav, footer, header, aside"

// candidateSelector matches containers whose class names suggest recipe
// relevance.
const candidateSelector = `[class*="recipe"], [class*="ingredient"]`

// structuredDataLabel separates harvested structured data from the visible
// page text in the combined candidate document.
const structuredDataLabel = "Structured data:"

// CandidateText reduces a fetched HTML page to the plain-text candidate
// document handed to the model. It strips page chrome, prefers containers
// whose class names look recipe-related, harvests embedded JSON-LD recipe
// metadata verbatim, and degrades through readability extraction, full body
// text, and finally the raw markup of the candidate containers. It never
// fails: a page with no discernible recipe still yields some text, possibly
// empty, and the downstream stages cope with sparse input.
func CandidateText(page []byte, sourceURL string) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return ""
	}

	// Harvest before chrome removal; the metadata lives in script tags.
	structured := structuredRecipeData(doc)
	doc.Find(chromeSelector).Remove()

	candidates := doc.Find(candidateSelector)
	var parts []string
	candidates.Each(func(_ int, s *goquery.Selection) {
		text := collapseLines(s.Text())
		if len(text) >= MinCandidateChars {
			parts = append(parts, text)
		}
	})

	text := strings.Join(parts, "\n")
	if text == "" {
		text = readableText(page, sourceURL)
	}
	if text == "" {
		text = collapseLines(doc.Find("body").Text())
	}
	if structured != "" {
		text = strings.TrimSpace(text + "\n\n" + structuredDataLabel + "\n" + structured)
	}
	if len(text) < MinCandidateChars {
		text = appendRawCandidates(text, candidates)
	}
	return text
}

// structuredRecipeData returns the verbatim text of ld+json blocks that
// describe a recipe. Blocks that do not parse as JSON are dropped.
func structuredRecipeData(doc *goquery.Document) string {
	var blocks []string
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		raw := strings.TrimSpace(s.Text())
		if raw == "" || !json.Valid([]byte(raw)) {
			return
		}
		if !strings.Contains(raw, `"Recipe"`) {
			return
		}
		blocks = append(blocks, raw)
	})
	return strings.Join(blocks, "\n")
}

// readableText runs the readability algorithm over the whole page. Failures
// degrade to an empty string; the caller has cheaper fallbacks.
func readableText(page []byte, sourceURL string) string {
	parsed, err := url.Parse(sourceURL)
	if err != nil {
		return ""
	}
	article, err := readability.FromReader(bytes.NewReader(page), parsed)
	if err != nil {
		return ""
	}
	return collapseLines(article.TextContent)
}

// appendRawCandidates serializes the first few candidate containers back to
// HTML. When even the full-text fallbacks stay under the threshold, raw
// markup still gives the model ingredient lists to work from.
func appendRawCandidates(text string, candidates *goquery.Selection) string {
	var b strings.Builder
	b.WriteString(text)
	candidates.EachWithBreak(func(i int, s *goquery.Selection) bool {
		if i >= maxRawContainers {
			return false
		}
		if h, err := goquery.OuterHtml(s); err == nil {
			b.WriteString("\n")
			b.WriteString(strings.TrimSpace(h))
		}
		return true
	})
	return strings.TrimSpace(b.String())
}

// collapseLines trims every line, collapses internal whitespace runs, and
// drops blank lines, yielding the newline-joined form the prompt embeds.
func collapseLines(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		collapsed := strings.Join(strings.Fields(line), " ")
		if collapsed == "" {
			continue
		}
		out = append(out, collapsed)
	}
	return strings.Join(out, "\n")
}
