package reviews

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Class names of the review page markup.
const (
	classCard  = "review-card"
	classMeta  = "review-meta"
	classScore = "score-value"
)

// ParseCards reads an HTML page and returns one Review per .review-card
// element, in document order. Semester and instructor come from the first
// and last span of the card's .review-meta block, scores from every
// .score-value element. The first heading becomes Title and the first
// paragraph Body. All parsed reviews start visible.
func ParseCards(r io.Reader) ([]Review, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse review page: %w", err)
	}

	var out []Review
	var walkErr error
	walk(doc, func(n *html.Node) bool {
		if walkErr != nil {
			return false
		}
		if !hasClass(n, classCard) {
			return true
		}
		rev, err := parseCard(n)
		if err != nil {
			walkErr = fmt.Errorf("review card %d: %w", len(out)+1, err)
			return false
		}
		out = append(out, rev)
		// Cards are not nested.
		return false
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return out, nil
}

func parseCard(card *html.Node) (Review, error) {
	rev := Review{Visible: true, Scores: []float64{}}

	if meta := find(card, func(n *html.Node) bool { return hasClass(n, classMeta) }); meta != nil {
		if first := firstElementChild(meta); first != nil && first.DataAtom == atom.Span {
			rev.Semester = text(first)
		}
		if last := lastElementChild(meta); last != nil && last.DataAtom == atom.Span {
			rev.Instructor = text(last)
		}
	}

	var scoreErr error
	walk(card, func(n *html.Node) bool {
		if scoreErr != nil {
			return false
		}
		if hasClass(n, classScore) {
			v, err := parseScore(text(n))
			if err != nil {
				scoreErr = err
				return false
			}
			rev.Scores = append(rev.Scores, v)
		}
		return true
	})
	if scoreErr != nil {
		return Review{}, scoreErr
	}

	if h := find(card, isHeading); h != nil {
		rev.Title = text(h)
	}
	if p := find(card, func(n *html.Node) bool { return n.Type == html.ElementNode && n.DataAtom == atom.P }); p != nil {
		rev.Body = text(p)
	}
	return rev, nil
}

// parseScore reads the longest leading decimal number of the text, exponent
// included, and ignores the rest: "8" and "8/10" both read as 8, "1e1" as 10,
// "8.5.3" as 8.5.
func parseScore(s string) (float64, error) {
	s = strings.TrimSpace(s)
	n := floatPrefix(s)
	if n == 0 {
		return 0, fmt.Errorf("invalid score %q", s)
	}
	v, err := strconv.ParseFloat(s[:n], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid score %q: %w", s, err)
	}
	return v, nil
}

// floatPrefix returns the length of the longest prefix of s of the form
// [+-]digits[.digits][(e|E)[+-]digits], or 0 when s has no such prefix.
func floatPrefix(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for ; i < len(s) && isDigit(s[i]); i++ {
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for ; i < len(s) && isDigit(s[i]); i++ {
			digits++
		}
	}
	if digits == 0 {
		return 0
	}

	end := i
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		if i < len(s) && isDigit(s[i]) {
			for i < len(s) && isDigit(s[i]) {
				i++
			}
			end = i
		}
	}
	return end
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// walk visits n and its descendants depth first. fn returning false skips
// the node's children.
func walk(n *html.Node, fn func(*html.Node) bool) {
	if !fn(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func find(root *html.Node, pred func(*html.Node) bool) *html.Node {
	var found *html.Node
	walk(root, func(n *html.Node) bool {
		if found != nil {
			return false
		}
		if n != root && pred(n) {
			found = n
			return false
		}
		return true
	})
	return found
}

func hasClass(n *html.Node, class string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, a := range n.Attr {
		if a.Key == "class" && a.Namespace == "" {
			for _, c := range strings.Fields(a.Val) {
				if c == class {
					return true
				}
			}
		}
	}
	return false
}

func isHeading(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return true
	}
	return false
}

func firstElementChild(n *html.Node) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return c
		}
	}
	return nil
}

func lastElementChild(n *html.Node) *html.Node {
	for c := n.LastChild; c != nil; c = c.PrevSibling {
		if c.Type == html.ElementNode {
			return c
		}
	}
	return nil
}

// text is the trimmed textContent of n.
func text(n *html.Node) string {
	var b strings.Builder
	walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		return true
	})
	return strings.TrimSpace(b.String())
}
