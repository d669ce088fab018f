// Package analyzers extracts language-aware structural facts from source
// files without executing them. Each analyzer is a lightweight regex/line
// scanner; the output is a normalized Report whose text form is stable
// across invocations so it can feed an LLM prompt deterministically.
package analyzers

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Facts is the normalized, analyzer-independent slice of a report.
type Facts struct {
	Imports   []string
	Types     []string
	Functions []string

	// Scores are always clamped to [0,10].
	ComplexityScore    int
	DocumentationScore int
}

// Report is the immutable result of analyzing one file.
type Report struct {
	Path  string
	Facts Facts
	Text  string
}

// Analyzer turns file content into a structural report. Implementations must
// never panic or let a parse failure escape; malformed input yields a
// degraded report instead.
type Analyzer interface {
	Analyze(content, path string) Report
}

// ForPath selects the analyzer for a file by its normalized extension. Files
// with an unrecognized extension fall back to the plain-text analyzer.
func ForPath(path string) Analyzer {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".py":
		return PythonAnalyzer{}
	case ".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs":
		return JavaScriptAnalyzer{}
	case ".ipynb":
		return NotebookAnalyzer{}
	case ".rs":
		return RustAnalyzer{}
	case ".go":
		return GoAnalyzer{}
	case ".cpp", ".cc", ".cxx", ".hpp", ".hh", ".c", ".h":
		return CppAnalyzer{}
	default:
		return TextAnalyzer{}
	}
}

// complexityScore is the shared heuristic: file length plus branching
// construct count, capped at 10. It is intentionally crude but reproducible.
func complexityScore(content string) int {
	lines := strings.Count(content, "\n") + 1
	score := lines / 10
	score += strings.Count(content, "if ")
	score += strings.Count(content, "for ")
	score += strings.Count(content, "while ")
	return clampScore(score)
}

// ratioScore scales markers-per-item onto [0,10].
func ratioScore(markers, items int) int {
	if items < 1 {
		items = 1
	}
	return clampScore(markers * 10 / items)
}

func clampScore(n int) int {
	if n < 0 {
		return 0
	}
	if n > 10 {
		return 10
	}
	return n
}

// section renders "Header (n):" followed by one "- item" line per entry,
// used by the analyzers for uniform list sections.
func section(b *strings.Builder, header string, items []string) {
	fmt.Fprintf(b, "%s (%d):\n", header, len(items))
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
}
