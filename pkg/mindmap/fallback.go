package mindmap

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	fallbackMaxPages    = 4
	fallbackSnippetRune = 120
)

var (
	pageMarkerRe    = regexp.MustCompile(`\[Page\s+(\d+)\]\n`)
	firstSentenceRe = regexp.MustCompile(`^[^。.!?\n]+[。.!?]?`)
)

// Fallback builds a pseudo-outline straight from the page markers when the
// model path failed. One child per page, capped at the first few pages, each
// quoting the page's opening sentence so highlighting still lands somewhere
// real.
func Fallback(pageMarkedText string) *Tree {
	pages := splitPages(pageMarkedText)

	tree := &Tree{Root: "Document Overview"}
	if len(pages) == 0 {
		tree.Children = []*Node{{
			Label: "No extractable text",
			Page:  1,
		}}
		return tree
	}

	if len(pages) > fallbackMaxPages {
		pages = pages[:fallbackMaxPages]
	}
	for _, p := range pages {
		tree.Children = append(tree.Children, &Node{
			Label: fmt.Sprintf("Page %d", p.number),
			Quote: firstSnippet(p.text),
			Page:  p.number,
		})
	}
	return tree
}

type pageChunk struct {
	number int
	text   string
}

// splitPages slices the text at each page marker. Go's regexp has no
// lookahead, so the end of a page is found from the start index of the next
// marker instead.
func splitPages(text string) []pageChunk {
	matches := pageMarkerRe.FindAllStringSubmatchIndex(text, -1)
	chunks := make([]pageChunk, 0, len(matches))
	for i, m := range matches {
		number, err := strconv.Atoi(text[m[2]:m[3]])
		if err != nil {
			continue
		}
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		body := strings.TrimSpace(text[m[1]:end])
		if body == "" {
			continue
		}
		chunks = append(chunks, pageChunk{number: number, text: body})
	}
	return chunks
}

// firstSnippet extracts the opening sentence, or the first 120 runes when the
// text never reaches a sentence terminator.
func firstSnippet(text string) string {
	text = strings.TrimSpace(text)
	if s := firstSentenceRe.FindString(text); s != "" {
		return strings.TrimSpace(s)
	}
	runes := []rune(text)
	if len(runes) > fallbackSnippetRune {
		runes = runes[:fallbackSnippetRune]
	}
	return string(runes)
}
