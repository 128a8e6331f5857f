// Package mindmap turns a page-marked document text into a quote-grounded
// outline tree and materializes that tree into canvas nodes and edges.
package mindmap

// Node is one outline entry. Quote is verbatim source text in the document's
// original language; translating it would break highlight matching against
// the rendered PDF. Page is 1-based, 0 means "not stated".
type Node struct {
	Label    string  `json:"label"`
	Quote    string  `json:"quote,omitempty"`
	Page     int     `json:"page,omitempty"`
	Children []*Node `json:"children,omitempty"`
}

// Tree is the model's response shape: a root title plus top-level concepts.
// The root itself carries no quote or page.
type Tree struct {
	Root     string  `json:"root"`
	Children []*Node `json:"children"`
}
