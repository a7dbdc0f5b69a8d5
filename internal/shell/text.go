package shell

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Page is the readable form of an HTML fragment.
type Page struct {
	Text   []string
	Links  []string
	Inputs []string
}

// ParsePage extracts text lines, link targets and input ids.
func ParsePage(r io.Reader) (*Page, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	p := &Page{}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.ElementNode:
			switch n.Data {
			case "script", "style":
				return
			case "a":
				if href := getAttr(n, "href"); href != "" {
					p.Links = append(p.Links, href)
				}
			case "input", "select", "textarea":
				if id := getAttr(n, "id"); id != "" {
					p.Inputs = append(p.Inputs, id)
				}
			}
		case html.TextNode:
			if text := strings.Join(strings.Fields(n.Data), " "); text != "" {
				p.Text = append(p.Text, text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return p, nil
}

func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
