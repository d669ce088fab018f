package analyzers

import (
	"fmt"
	"regexp"
	"strings"
)

// JavaScriptAnalyzer covers the JS family (plain JS, JSX, TypeScript) with
// targeted regexes for imports, classes, function flavors and exports.
type JavaScriptAnalyzer struct{}

var (
	jsES6ImportRe     = regexp.MustCompile(`import\s+(?:{[^}]+}|\*\s+as\s+\w+|\w+)\s+from\s+['"]([^'"]+)['"]`)
	jsRequireRe       = regexp.MustCompile(`(?:const|let|var)\s+(?:{[^}]+}|\w+)\s*=\s*require\(['"]([^'"]+)['"]\)`)
	jsDynamicImportRe = regexp.MustCompile(`import\(['"]([^'"]+)['"]\)`)
	jsClassRe         = regexp.MustCompile(`class\s+(\w+)(?:\s+extends\s+([\w.]+))?`)
	jsNamedFuncRe     = regexp.MustCompile(`function\s+(\w+)\s*\([^)]*\)`)
	jsArrowFuncRe     = regexp.MustCompile(`(?:const|let|var)\s+(\w+)\s*=\s*(?:async\s*)?(?:\([^)]*\)|\w+)\s*=>`)
	jsMethodFuncRe    = regexp.MustCompile(`(\w+)\s*:\s*function\s*\([^)]*\)`)
	jsAsyncFuncRe     = regexp.MustCompile(`async\s+function\s+(\w+)\s*\([^)]*\)`)
	jsExportRe        = regexp.MustCompile(`export\s+(?:default\s+)?(?:class|function|const|let|var)\s+(\w+)`)
	jsLineCommentRe   = regexp.MustCompile(`(?m)^\s*//`)
	jsBlockCommentRe  = regexp.MustCompile(`/\*\*?`)
)

func (JavaScriptAnalyzer) Analyze(content, path string) Report {
	imports := uniqueMatches(content, jsES6ImportRe, jsRequireRe, jsDynamicImportRe)
	exports := uniqueMatches(content, jsExportRe)

	var classes []string
	for _, m := range jsClassRe.FindAllStringSubmatch(content, -1) {
		entry := m[1]
		if m[2] != "" {
			entry += " extends " + m[2]
		}
		classes = append(classes, entry)
	}

	// Stable category order keeps the report byte-identical per input.
	categories := []struct {
		label string
		re    *regexp.Regexp
	}{
		{"Named Functions", jsNamedFuncRe},
		{"Arrow Functions", jsArrowFuncRe},
		{"Methods", jsMethodFuncRe},
		{"Async Functions", jsAsyncFuncRe},
	}

	var allFuncs []string
	funcsByCategory := make([][]string, len(categories))
	for i, cat := range categories {
		for _, m := range cat.re.FindAllStringSubmatch(content, -1) {
			funcsByCategory[i] = append(funcsByCategory[i], m[1])
			allFuncs = append(allFuncs, m[1])
		}
	}

	complexity := complexityScore(content)
	docMarkers := len(jsLineCommentRe.FindAllString(content, -1)) +
		len(jsBlockCommentRe.FindAllString(content, -1))
	docScore := ratioScore(docMarkers, len(allFuncs)+len(classes))

	var typeNames []string
	for _, m := range jsClassRe.FindAllStringSubmatch(content, -1) {
		typeNames = append(typeNames, m[1])
	}

	var b strings.Builder
	fmt.Fprintf(&b, "JavaScript File Analysis for %s:\n\n", path)
	section(&b, "Imports", imports)
	b.WriteString("\n")
	section(&b, "Classes", classes)

	fmt.Fprintf(&b, "\nFunctions (%d):\n", len(allFuncs))
	for i, cat := range categories {
		if len(funcsByCategory[i]) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n%s:\n", cat.label)
		for _, name := range funcsByCategory[i] {
			fmt.Fprintf(&b, "- %s\n", name)
		}
	}

	b.WriteString("\n")
	section(&b, "Exports", exports)
	fmt.Fprintf(&b, "\nComplexity Score: %d/10\n", complexity)
	fmt.Fprintf(&b, "Documentation Score: %d/10", docScore)

	return Report{
		Path: path,
		Facts: Facts{
			Imports:            imports,
			Types:              typeNames,
			Functions:          allFuncs,
			ComplexityScore:    complexity,
			DocumentationScore: docScore,
		},
		Text: b.String(),
	}
}

// uniqueMatches collects the first capture group of every regex match,
// de-duplicated in first-seen order.
func uniqueMatches(content string, res ...*regexp.Regexp) []string {
	var out []string
	seen := make(map[string]bool)
	for _, re := range res {
		for _, m := range re.FindAllStringSubmatch(content, -1) {
			if !seen[m[1]] {
				seen[m[1]] = true
				out = append(out, m[1])
			}
		}
	}
	return out
}
