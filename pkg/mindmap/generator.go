package mindmap

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/FishWY/lunwen-workspace/pkg/llm"
)

const promptTemplate = `You are a structural analyst. Analyze the following text and generate a hierarchical Mind Map with SOURCE GROUNDING.

**CRITICAL LANGUAGE RULES:**
1. **"root" and "label" fields**: MUST be in **%s**. Translate the concepts/titles into that language.
2. **"quote" field**: MUST be **EXACTLY** verbatim from the source text. **ABSOLUTELY NO TRANSLATION**.
   - If the source text is English, the "quote" MUST be English.
   - If the source text is Chinese, the "quote" MUST be Chinese.
   - The frontend highlights this text by matching it against the PDF. If you translate it, highlighting will FAIL.

**Structure:**
{
  "root": "Main Concept Title",
  "children": [
    {
      "label": "Sub-concept A",
      "quote": "Exact verbatim sentence from the source text (Original Language)",
      "page": 1,
      "children": [...]
    }
  ]
}

**Requirements:**
1. "quote" MUST be a verbatim string (exact text) from the source.
2. "page" should be the best estimate of the location, taken from the [Page X] marker preceding the quote.
3. Keep quotes concise but meaningful (1-2 sentences).
4. Include 3-4 levels of hierarchy to ensure depth.
5. Generate 5-8 main concepts to cover the document broadly.
6. Each main concept MUST have at least 3-4 sub-concepts.
7. Ensure comprehensive coverage of the document's key arguments and evidence.
8. "quote" MUST be a full sentence or short paragraph (20-50 words) to provide context.
9. "page" is MANDATORY. If not explicitly marked, infer it from the logical flow.

Text to analyze:
%s
`

// Generator produces outline trees from document text via an injected LLM
// provider. Construct one per configuration; it holds no mutable state.
type Generator struct {
	provider        llm.LLMProvider
	displayLanguage string
}

func NewGenerator(provider llm.LLMProvider, displayLanguage string) *Generator {
	return &Generator{
		provider:        provider,
		displayLanguage: displayLanguage,
	}
}

// Generate asks the model for an outline of documentText. The caller is
// expected to cap documentText beforehand (pdf.LimitTextSize) and to run
// Fallback when an error comes back.
func (g *Generator) Generate(ctx context.Context, documentText string) (*Tree, error) {
	prompt := fmt.Sprintf(promptTemplate, g.displayLanguage, documentText)

	raw, err := g.provider.Generate(ctx, prompt, llm.WithJSONResponse())
	if err != nil {
		return nil, fmt.Errorf("mind map generation: %w", err)
	}

	tree, err := ParseTree(raw)
	if err != nil {
		return nil, fmt.Errorf("mind map parse: %w", err)
	}
	return tree, nil
}

// SanitizeResponse strips Markdown fences and any commentary the model put
// before or after the JSON object.
func SanitizeResponse(raw string) string {
	clean := strings.ReplaceAll(raw, "```json", "")
	clean = strings.ReplaceAll(clean, "```", "")
	clean = strings.TrimSpace(clean)

	firstBrace := strings.Index(clean, "{")
	lastBrace := strings.LastIndex(clean, "}")
	if firstBrace != -1 && lastBrace != -1 && firstBrace < lastBrace {
		clean = clean[firstBrace : lastBrace+1]
	}
	return clean
}

// ParseTree parses a raw model response into a validated Tree. The shape is
// enforced only by prompt instruction upstream, so violations are corrected
// here: nodes without a label are dropped, non-positive pages become absent.
// An empty or unparseable response is an error (the fallback path takes over).
func ParseTree(raw string) (*Tree, error) {
	clean := SanitizeResponse(raw)

	var tree Tree
	if err := json.Unmarshal([]byte(clean), &tree); err != nil {
		return nil, err
	}

	tree.Root = strings.TrimSpace(tree.Root)
	if tree.Root == "" {
		return nil, fmt.Errorf("response has no root title")
	}

	tree.Children = normalizeNodes(tree.Children)
	if len(tree.Children) == 0 {
		return nil, fmt.Errorf("response has no outline children")
	}
	return &tree, nil
}

func normalizeNodes(nodes []*Node) []*Node {
	kept := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		if n == nil {
			continue
		}
		n.Label = strings.TrimSpace(n.Label)
		if n.Label == "" {
			// A node without a label cannot be rendered; its subtree goes
			// with it rather than reattaching orphans to the grandparent.
			continue
		}
		if n.Page < 0 {
			n.Page = 0
		}
		n.Children = normalizeNodes(n.Children)
		kept = append(kept, n)
	}
	return kept
}
