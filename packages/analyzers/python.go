package analyzers

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// PythonAnalyzer performs a lightweight structural scan of Python source:
// imports, class definitions with docstrings and methods, function
// signatures with return annotations, and type-hint coverage. It is not a
// real parser; a bracket-balance check stands in for syntax validation and
// turns obviously broken files into a degraded report.
type PythonAnalyzer struct{}

var (
	pyImportRe     = regexp.MustCompile(`^\s*import\s+([\w.]+)`)
	pyFromImportRe = regexp.MustCompile(`^\s*from\s+([\w.]+)\s+import\s+([\w*]+)`)
	pyClassRe      = regexp.MustCompile(`^(\s*)class\s+(\w+)\s*(?:\(([^)]*)\))?\s*:`)
	pyDefRe        = regexp.MustCompile(`^(\s*)def\s+(\w+)\s*\(([^)]*)\)\s*(?:->\s*([^:]+))?:`)
)

type pyFunction struct {
	name      string
	args      []string
	returns   string
	docstring string
	typedArgs int
	indent    int
}

type pyClass struct {
	name      string
	bases     string
	docstring string
	methods   []pyFunction
	indent    int
}

func (PythonAnalyzer) Analyze(content, path string) Report {
	if !bracketsBalanced(content) {
		text := fmt.Sprintf("Error: Invalid Python syntax in %s", path)
		return Report{Path: path, Text: text}
	}

	lines := strings.Split(content, "\n")

	imports := extractPyImports(lines)
	classes, functions := extractPyDefinitions(lines)

	complexity := complexityScore(content)
	docScore := pythonDocScore(content)

	facts := Facts{
		Imports:            imports,
		ComplexityScore:    complexity,
		DocumentationScore: docScore,
	}
	for _, cls := range classes {
		facts.Types = append(facts.Types, cls.name)
	}
	for _, fn := range functions {
		facts.Functions = append(facts.Functions, fn.name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Python File Analysis for %s:\n\n", path)
	section(&b, "Imports", imports)

	fmt.Fprintf(&b, "\nClasses (%d):\n", len(classes))
	for _, cls := range classes {
		doc := cls.docstring
		if doc == "" {
			doc = "No docstring"
		}
		fmt.Fprintf(&b, "- %s: %s\n", cls.name, doc)
		for _, m := range cls.methods {
			fmt.Fprintf(&b, "  - %s(%s)\n", m.name, strings.Join(m.args, ", "))
		}
	}

	fmt.Fprintf(&b, "\nFunctions (%d):\n", len(functions))
	for _, fn := range functions {
		ret := fn.returns
		if ret == "" {
			ret = "None"
		}
		fmt.Fprintf(&b, "- %s(%s) -> %s\n", fn.name, strings.Join(fn.args, ", "), ret)
	}

	fmt.Fprintf(&b, "\nType Hints Coverage:\n")
	for _, fn := range functions {
		fmt.Fprintf(&b, "- %s: %d args typed\n", fn.name, fn.typedArgs)
	}

	fmt.Fprintf(&b, "\nComplexity Score: %d/10\n", complexity)
	fmt.Fprintf(&b, "Documentation Score: %d/10", docScore)

	return Report{Path: path, Facts: facts, Text: b.String()}
}

func extractPyImports(lines []string) []string {
	var imports []string
	for _, line := range lines {
		if m := pyImportRe.FindStringSubmatch(line); m != nil {
			imports = append(imports, m[1])
		} else if m := pyFromImportRe.FindStringSubmatch(line); m != nil {
			imports = append(imports, m[1]+"."+m[2])
		}
	}
	sort.Strings(imports)
	return imports
}

// extractPyDefinitions walks the file line by line, attributing defs to the
// most recent class when they are indented beneath it.
func extractPyDefinitions(lines []string) ([]pyClass, []pyFunction) {
	var classes []pyClass
	var functions []pyFunction

	for i, line := range lines {
		if m := pyClassRe.FindStringSubmatch(line); m != nil {
			classes = append(classes, pyClass{
				name:      m[2],
				bases:     strings.TrimSpace(m[3]),
				docstring: findDocstring(lines, i+1),
				indent:    len(m[1]),
			})
			continue
		}

		m := pyDefRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		fn := pyFunction{
			name:      m[2],
			returns:   strings.TrimSpace(m[4]),
			docstring: findDocstring(lines, i+1),
			indent:    len(m[1]),
		}
		for _, arg := range strings.Split(m[3], ",") {
			arg = strings.TrimSpace(arg)
			if arg == "" || arg == "self" || arg == "cls" {
				continue
			}
			if strings.Contains(arg, ":") {
				fn.typedArgs++
			}
			fn.args = append(fn.args, strings.SplitN(arg, ":", 2)[0])
		}

		if n := len(classes); n > 0 && fn.indent > classes[n-1].indent {
			classes[n-1].methods = append(classes[n-1].methods, fn)
		} else {
			functions = append(functions, fn)
		}
	}
	return classes, functions
}

// findDocstring returns the first line of a docstring opening immediately
// after a def/class header, or "".
func findDocstring(lines []string, start int) string {
	for i := start; i < len(lines) && i < start+2; i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" {
			continue
		}
		for _, quote := range []string{`"""`, "'''"} {
			if strings.HasPrefix(trimmed, quote) {
				doc := strings.TrimPrefix(trimmed, quote)
				doc = strings.TrimSuffix(doc, quote)
				return strings.TrimSpace(doc)
			}
		}
		return ""
	}
	return ""
}

func pythonDocScore(content string) int {
	commentLines := 0
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			commentLines++
		}
	}
	docstrings := strings.Count(content, `"""`) + strings.Count(content, "'''")
	return clampScore((commentLines + docstrings) / 2)
}

// bracketsBalanced is a cheap stand-in for syntax validation: unbalanced
// brackets outside of obvious string lines mark the file invalid.
func bracketsBalanced(content string) bool {
	round, square, curly := 0, 0, 0
	for _, r := range content {
		switch r {
		case '(':
			round++
		case ')':
			round--
		case '[':
			square++
		case ']':
			square--
		case '{':
			curly++
		case '}':
			curly--
		}
	}
	return round == 0 && square == 0 && curly == 0
}
