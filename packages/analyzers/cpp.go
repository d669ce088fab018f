package analyzers

import (
	"fmt"
	"regexp"
	"strings"
)

// CppAnalyzer covers the C family (.c/.h and C++ variants): includes,
// classes with inheritance, functions, memory-management idioms, modern
// C++ features, STL usage and exception handling.
type CppAnalyzer struct{}

var (
	cppSystemIncludeRe = regexp.MustCompile(`#include\s*<([^>]+)>`)
	cppLocalIncludeRe  = regexp.MustCompile(`#include\s*"([^"]+)"`)
	cppClassRe         = regexp.MustCompile(`(class|struct)\s+(\w+)(?:\s*:\s*(?:public|private|protected)\s+(\w+))?`)
	cppTemplateRe      = regexp.MustCompile(`template\s*<([^>]+)>\s*(?:class|struct)\s+(\w+)`)
	cppFunctionRe      = regexp.MustCompile(`(?m)^[\w:<>*&\s]+?\b(\w+)\s*\(([^)]*)\)\s*(?:const)?\s*{`)
	cppNamespaceRe     = regexp.MustCompile(`namespace\s+(\w+)`)
	cppDocCommentRe    = regexp.MustCompile(`//[!/]<?|/\*\*`)
	cppLambdaRe        = regexp.MustCompile(`\[\s*=?&?\s*\]`)
	cppRangeForRe      = regexp.MustCompile(`for\s*\(\s*(?:const\s+)?[\w:&<>]+\s+\w+\s*:\s*`)
	cppDestructorRe    = regexp.MustCompile(`~(\w+)\s*\(`)
)

var cppStlHeaders = map[string]struct{}{
	"vector": {}, "map": {}, "set": {}, "string": {}, "iostream": {},
	"memory": {}, "algorithm": {}, "queue": {}, "stack": {}, "list": {}, "deque": {},
}

func (CppAnalyzer) Analyze(content, path string) Report {
	var includes, importPaths []string
	for _, m := range cppSystemIncludeRe.FindAllStringSubmatch(content, -1) {
		kind := "system"
		if _, ok := cppStlHeaders[m[1]]; ok {
			kind = "STL"
		}
		includes = append(includes, fmt.Sprintf("%s [%s]", m[1], kind))
		importPaths = append(importPaths, m[1])
	}
	for _, m := range cppLocalIncludeRe.FindAllStringSubmatch(content, -1) {
		includes = append(includes, fmt.Sprintf("%s [local]", m[1]))
		importPaths = append(importPaths, m[1])
	}

	var classLines, typeNames []string
	for _, m := range cppClassRe.FindAllStringSubmatch(content, -1) {
		entry := m[2]
		if m[3] != "" {
			entry += " : " + m[3]
		}
		if m[1] == "struct" {
			entry += " (struct)"
		}
		classLines = append(classLines, entry)
		typeNames = append(typeNames, m[2])
	}

	var templates []string
	for _, m := range cppTemplateRe.FindAllStringSubmatch(content, -1) {
		templates = append(templates, fmt.Sprintf("%s<%s>", m[2], strings.TrimSpace(m[1])))
	}

	var namespaces []string
	for _, m := range cppNamespaceRe.FindAllStringSubmatch(content, -1) {
		namespaces = append(namespaces, m[1])
	}

	var fnNames []string
	for _, m := range cppFunctionRe.FindAllStringSubmatch(content, -1) {
		// Control keywords also match the loose signature pattern.
		switch m[1] {
		case "if", "for", "while", "switch", "catch", "return":
			continue
		}
		fnNames = append(fnNames, m[1])
	}

	smartPtrs := strings.Count(content, "unique_ptr") +
		strings.Count(content, "shared_ptr") +
		strings.Count(content, "weak_ptr")

	complexity := complexityScore(content)
	docScore := ratioScore(
		len(cppDocCommentRe.FindAllString(content, -1)),
		len(classLines)+len(fnNames),
	)

	var b strings.Builder
	fmt.Fprintf(&b, "C++ File Analysis for %s:\n\n", path)
	section(&b, "Includes", includes)
	b.WriteString("\n")
	section(&b, "Namespaces", namespaces)
	b.WriteString("\n")
	section(&b, "Classes/Structs", classLines)
	b.WriteString("\n")
	section(&b, "Templates", templates)
	b.WriteString("\n")
	section(&b, "Functions", fnNames)

	fmt.Fprintf(&b, "\nMemory Management:\n")
	fmt.Fprintf(&b, "- Raw: %d new, %d delete\n", countWord(content, "new"), countWord(content, "delete"))
	fmt.Fprintf(&b, "- Smart Pointers: %d\n", smartPtrs)
	fmt.Fprintf(&b, "- Destructors: %d\n", len(cppDestructorRe.FindAllString(content, -1)))

	fmt.Fprintf(&b, "\nModern C++ Features:\n")
	fmt.Fprintf(&b, "- Auto: %d\n", countWord(content, "auto"))
	fmt.Fprintf(&b, "- Lambdas: %d\n", len(cppLambdaRe.FindAllString(content, -1)))
	fmt.Fprintf(&b, "- Range For: %d\n", len(cppRangeForRe.FindAllString(content, -1)))
	fmt.Fprintf(&b, "- Nullptr: %d\n", countWord(content, "nullptr"))
	fmt.Fprintf(&b, "- Constexpr: %d\n", countWord(content, "constexpr"))
	fmt.Fprintf(&b, "- Move Semantics: %d\n", strings.Count(content, "std::move"))

	fmt.Fprintf(&b, "\nException Handling:\n")
	fmt.Fprintf(&b, "- Try Blocks: %d\n", countWord(content, "try"))
	fmt.Fprintf(&b, "- Catch Blocks: %d\n", countWord(content, "catch"))
	fmt.Fprintf(&b, "- Throw Statements: %d\n", countWord(content, "throw"))
	fmt.Fprintf(&b, "- Noexcept: %d\n", countWord(content, "noexcept"))

	fmt.Fprintf(&b, "\nComplexity Score: %d/10\n", complexity)
	fmt.Fprintf(&b, "Documentation Score: %d/10", docScore)

	return Report{
		Path: path,
		Facts: Facts{
			Imports:            importPaths,
			Types:              typeNames,
			Functions:          fnNames,
			ComplexityScore:    complexity,
			DocumentationScore: docScore,
		},
		Text: b.String(),
	}
}

var wordRes = map[string]*regexp.Regexp{}

func init() {
	for _, w := range []string{"new", "delete", "auto", "nullptr", "constexpr", "try", "catch", "throw", "noexcept"} {
		wordRes[w] = regexp.MustCompile(`\b` + w + `\b`)
	}
}

func countWord(content, word string) int {
	re, ok := wordRes[word]
	if !ok {
		return strings.Count(content, word)
	}
	return len(re.FindAllString(content, -1))
}
