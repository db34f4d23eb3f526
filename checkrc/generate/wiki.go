package generate

import (
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/wowtools/checkrc/checkrc"
)

const apiLinkPrefix = "/wiki/API_"

// ParseAPIIndex extracts API function names from the community wiki's API
// index page: the text of every link pointing at an API_* article.
func ParseAPIIndex(r io.Reader) (checkrc.Globals, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	globals := checkrc.Globals{}
	var visit func(n *html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" && hasAPILink(n) {
			name := strings.TrimSpace(nodeText(n))
			if name != "" {
				globals.Add(name)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(doc)

	return globals, nil
}

func hasAPILink(n *html.Node) bool {
	for _, attr := range n.Attr {
		if attr.Key == "href" && strings.HasPrefix(attr.Val, apiLinkPrefix) {
			return true
		}
	}
	return false
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(nodeText(c))
	}
	return sb.String()
}
