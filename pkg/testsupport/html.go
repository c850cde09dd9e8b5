package testsupport

import (
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// NormalizeHTML parses a markup fragment and renders it in a canonical form:
// attributes sorted by name, class tokens sorted, whitespace-only text nodes
// dropped and remaining text collapsed. Two fragments that a browser would
// treat as the same DOM normalize to the same string.
func NormalizeHTML(fragment string) (string, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), context)
	if err != nil {
		return "", fmt.Errorf("testsupport: parse html: %w", err)
	}

	var b strings.Builder
	for _, node := range nodes {
		writeNode(&b, node)
	}
	return b.String(), nil
}

// AssertSameHTML fails the test when want and got do not describe the same
// markup once normalized.
func AssertSameHTML(t *testing.T, want, got string) {
	t.Helper()

	normalizedWant, err := NormalizeHTML(want)
	if err != nil {
		t.Fatalf("normalize expected html: %v", err)
	}
	normalizedGot, err := NormalizeHTML(got)
	if err != nil {
		t.Fatalf("normalize rendered html: %v", err)
	}
	if diff := cmp.Diff(normalizedWant, normalizedGot); diff != "" {
		t.Fatalf("html mismatch (-want +got):\n%s\nrendered:\n%s", diff, got)
	}
}

// ExtractClasses returns the class tokens of the first element in fragment.
func ExtractClasses(fragment string) []string {
	return ExtractAttributes(fragment)["class"]
}

// ExtractAttributes returns the attributes of the first element in fragment,
// splitting class into tokens.
func ExtractAttributes(fragment string) map[string][]string {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), context)
	if err != nil {
		return nil
	}
	for _, node := range nodes {
		if node.Type != html.ElementNode {
			continue
		}
		out := make(map[string][]string, len(node.Attr))
		for _, attr := range node.Attr {
			if attr.Key == "class" {
				out[attr.Key] = strings.Fields(attr.Val)
				continue
			}
			out[attr.Key] = []string{attr.Val}
		}
		return out
	}
	return nil
}

func writeNode(b *strings.Builder, node *html.Node) {
	switch node.Type {
	case html.TextNode:
		text := strings.Join(strings.Fields(node.Data), " ")
		if text == "" {
			return
		}
		b.WriteString(html.EscapeString(text))
	case html.ElementNode:
		b.WriteString("<")
		b.WriteString(node.Data)
		attrs := make([]html.Attribute, len(node.Attr))
		copy(attrs, node.Attr)
		sort.Slice(attrs, func(i, j int) bool { return attrs[i].Key < attrs[j].Key })
		for _, attr := range attrs {
			value := attr.Val
			if attr.Key == "class" {
				tokens := strings.Fields(value)
				sort.Strings(tokens)
				value = strings.Join(tokens, " ")
			}
			fmt.Fprintf(b, " %s=%q", attr.Key, value)
		}
		b.WriteString(">")
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			writeNode(b, child)
		}
		b.WriteString("</")
		b.WriteString(node.Data)
		b.WriteString(">")
	case html.CommentNode:
	default:
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			writeNode(b, child)
		}
	}
}
