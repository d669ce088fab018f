package analyzers

import (
	"fmt"
	"regexp"
	"strings"
)

// RustAnalyzer extracts use statements, structs with derives, impls, traits,
// functions and macros, together with unsafe usage and smart-pointer counts.
type RustAnalyzer struct{}

var (
	rustUseRe    = regexp.MustCompile(`use\s+([^;]+);`)
	rustStructRe = regexp.MustCompile(`(?:#\[derive\(([^)]+)\)\]\s*)?(?:pub\s+)?struct\s+(\w+)`)
	rustImplRe   = regexp.MustCompile(`impl(?:<[^>]+>)?\s+(?:([\w:<>]+)\s+for\s+)?(\w+)`)
	rustFnRe     = regexp.MustCompile(`(?:pub\s+)?fn\s+(\w+)(?:<[^>]+>)?\s*\(([^)]*)\)(?:\s*->\s*([^{;]+))?`)
	rustTraitRe  = regexp.MustCompile(`trait\s+(\w+)(?:<[^>]+>)?(?:\s*:\s*([^{]+))?`)
	rustMacroRe  = regexp.MustCompile(`macro_rules!\s+(\w+)`)
	rustDocRe    = regexp.MustCompile(`///|//!`)

	rustUnsafeBlockRe = regexp.MustCompile(`unsafe\s*{`)
	rustUnsafeFnRe    = regexp.MustCompile(`unsafe\s+fn`)
	rustUnsafeTraitRe = regexp.MustCompile(`unsafe\s+trait`)
	rustRawPtrRe      = regexp.MustCompile(`\*(?:const|mut)`)
)

func (RustAnalyzer) Analyze(content, path string) Report {
	var uses []string
	for _, m := range rustUseRe.FindAllStringSubmatch(content, -1) {
		p := strings.TrimSpace(m[1])
		origin := "external"
		if strings.HasPrefix(p, "crate::") || strings.HasPrefix(p, "self::") || strings.HasPrefix(p, "super::") {
			origin = "internal"
		}
		uses = append(uses, fmt.Sprintf("[%s] %s", origin, p))
	}

	var structLines, typeNames []string
	for _, m := range rustStructRe.FindAllStringSubmatch(content, -1) {
		entry := m[2]
		if m[1] != "" {
			entry += fmt.Sprintf(" #[derive(%s)]", strings.TrimSpace(m[1]))
		}
		structLines = append(structLines, entry)
		typeNames = append(typeNames, m[2])
	}

	var implLines []string
	for _, m := range rustImplRe.FindAllStringSubmatch(content, -1) {
		if m[1] != "" {
			implLines = append(implLines, fmt.Sprintf("impl %s for %s", m[1], m[2]))
		} else {
			implLines = append(implLines, "impl "+m[2])
		}
	}

	var traitLines []string
	for _, m := range rustTraitRe.FindAllStringSubmatch(content, -1) {
		entry := m[1]
		if m[2] != "" {
			supers := strings.Split(m[2], "+")
			for i := range supers {
				supers[i] = strings.TrimSpace(supers[i])
			}
			entry += ": " + strings.Join(supers, " + ")
		}
		traitLines = append(traitLines, entry)
		typeNames = append(typeNames, m[1])
	}

	var fnNames, fnLines []string
	for _, m := range rustFnRe.FindAllStringSubmatch(content, -1) {
		fnNames = append(fnNames, m[1])
		line := m[1]
		if ret := strings.TrimSpace(m[3]); ret != "" {
			line += " -> " + ret
		}
		fnLines = append(fnLines, line)
	}

	var macros []string
	for _, m := range rustMacroRe.FindAllStringSubmatch(content, -1) {
		macros = append(macros, m[1])
	}

	complexity := complexityScore(content)
	items := len(structLines) + len(fnLines) + len(traitLines)
	docScore := ratioScore(len(rustDocRe.FindAllString(content, -1)), items)

	importPaths := make([]string, 0, len(uses))
	for _, m := range rustUseRe.FindAllStringSubmatch(content, -1) {
		importPaths = append(importPaths, strings.TrimSpace(m[1]))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Rust File Analysis for %s:\n\n", path)
	section(&b, "Use Statements", uses)
	b.WriteString("\n")
	section(&b, "Structs", structLines)
	b.WriteString("\n")
	section(&b, "Implementations", implLines)
	b.WriteString("\n")
	section(&b, "Traits", traitLines)
	b.WriteString("\n")
	section(&b, "Functions", fnLines)
	b.WriteString("\n")
	section(&b, "Macros", macros)

	fmt.Fprintf(&b, "\nSafety Analysis:\n")
	fmt.Fprintf(&b, "- Unsafe Blocks: %d\n", len(rustUnsafeBlockRe.FindAllString(content, -1)))
	fmt.Fprintf(&b, "- Unsafe Functions: %d\n", len(rustUnsafeFnRe.FindAllString(content, -1)))
	fmt.Fprintf(&b, "- Unsafe Traits: %d\n", len(rustUnsafeTraitRe.FindAllString(content, -1)))

	fmt.Fprintf(&b, "\nMemory Management:\n")
	fmt.Fprintf(&b, "- Rc Usage: %d\n", strings.Count(content, "Rc<"))
	fmt.Fprintf(&b, "- Arc Usage: %d\n", strings.Count(content, "Arc<"))
	fmt.Fprintf(&b, "- Box Usage: %d\n", strings.Count(content, "Box<"))
	fmt.Fprintf(&b, "- Raw Pointers: %d\n", len(rustRawPtrRe.FindAllString(content, -1)))

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
