package scraper

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// ErrLinkNotFound indicates the disclosure page carried no matching
// workbook link. The caller falls back to manual-download guidance.
var ErrLinkNotFound = errors.New("portfolio workbook link not found")

// excelExtensions are the link targets the locator considers.
var excelExtensions = []string{".xlsx", ".xls"}

// LocateDownloadURL searches the disclosure page's anchors for the monthly
// consolidated portfolio workbook. An anchor matches when its target has an
// Excel extension and its link text or URL matches one of the month/year
// keyword patterns. Returns the first match in document order, resolved to
// an absolute URL, and whether one was found.
func LocateDownloadURL(htmlText, baseURL, month, year string) (string, bool) {
	doc, err := html.Parse(strings.NewReader(htmlText))
	if err != nil {
		return "", false
	}

	patterns := searchPatterns(month, year)

	var found string
	var walk func(n *html.Node) bool
	walk = func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == "a" {
			href := attrValue(n, "href")
			if href != "" && hasExcelExtension(href) {
				combined := strings.ToLower(anchorText(n) + " " + href)
				for _, pattern := range patterns {
					if pattern.MatchString(combined) {
						found = href
						return true
					}
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if walk(child) {
				return true
			}
		}
		return false
	}
	if !walk(doc) {
		return "", false
	}

	return resolveURL(baseURL, found), true
}

// searchPatterns builds the keyword patterns a portfolio link may match,
// combining the target month and year with the filer's naming conventions.
func searchPatterns(month, year string) []*regexp.Regexp {
	m := regexp.QuoteMeta(strings.ToLower(month))
	y := regexp.QuoteMeta(year)
	exprs := []string{
		fmt.Sprintf(`%s.*%s.*consolidated`, m, y),
		fmt.Sprintf(`consolidated.*%s.*%s`, m, y),
		fmt.Sprintf(`monthly.*portfolio.*%s.*%s`, m, y),
		fmt.Sprintf(`%s.*%s.*portfolio`, m, y),
	}
	patterns := make([]*regexp.Regexp, len(exprs))
	for i, expr := range exprs {
		patterns[i] = regexp.MustCompile(expr)
	}
	return patterns
}

func hasExcelExtension(href string) bool {
	target := strings.ToLower(href)
	if u, err := url.Parse(href); err == nil && u.Path != "" {
		target = strings.ToLower(u.Path)
	}
	for _, ext := range excelExtensions {
		if strings.HasSuffix(target, ext) {
			return true
		}
	}
	return false
}

// anchorText collects the visible text inside an anchor element.
func anchorText(n *html.Node) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}

func attrValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return strings.TrimSpace(attr.Val)
		}
	}
	return ""
}

// resolveURL resolves href against the AMC base URL.
func resolveURL(baseURL, href string) string {
	base, err := url.Parse(baseURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
