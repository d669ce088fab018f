package analyzers

import (
	"fmt"
	"regexp"
	"strings"
)

// TextAnalyzer is the fallback for unrecognized extensions: line/word
// statistics, structured-content hints, and markdown features when the file
// looks like markdown.
type TextAnalyzer struct{}

var mdLinkRe = regexp.MustCompile(`\[[^\]]*\]\([^)]*\)`)

func (TextAnalyzer) Analyze(content, path string) Report {
	lines := strings.Split(content, "\n")
	words := strings.Fields(content)

	totalLen := 0
	listItems := 0
	headers := 0
	for _, line := range lines {
		totalLen += len(line)
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "*") ||
			strings.HasPrefix(trimmed, "1.") || strings.HasPrefix(trimmed, "•") {
			listItems++
		}
		if strings.HasPrefix(trimmed, "#") {
			headers++
		}
	}

	avgLineLength := 0.0
	if len(lines) > 0 {
		avgLineLength = float64(totalLen) / float64(len(lines))
	}
	codeBlocks := strings.Count(content, "```") / 2

	complexity := complexityScore(content)
	docScore := clampScore((listItems + headers + codeBlocks) / 2)

	var b strings.Builder
	fmt.Fprintf(&b, "Text File Analysis for %s:\n", path)
	fmt.Fprintf(&b, "Total Lines: %d\n", len(lines))
	fmt.Fprintf(&b, "Total Words: %d\n", len(words))
	fmt.Fprintf(&b, "Average Line Length: %.2f characters\n", avgLineLength)
	fmt.Fprintf(&b, "List Items Found: %d\n", listItems)
	fmt.Fprintf(&b, "Code Blocks Found: %d\n", codeBlocks)

	isMarkdown := strings.HasSuffix(strings.ToLower(path), ".md") ||
		strings.HasSuffix(strings.ToLower(path), ".markdown")
	if isMarkdown {
		fmt.Fprintf(&b, "\nMarkdown Features:\n")
		fmt.Fprintf(&b, "Headers: %d\n", headers)
		fmt.Fprintf(&b, "Links: %d\n", len(mdLinkRe.FindAllString(content, -1)))
	}

	fmt.Fprintf(&b, "\nComplexity Score: %d/10\n", complexity)
	fmt.Fprintf(&b, "Documentation Score: %d/10", docScore)

	return Report{
		Path: path,
		Facts: Facts{
			ComplexityScore:    complexity,
			DocumentationScore: docScore,
		},
		Text: b.String(),
	}
}
