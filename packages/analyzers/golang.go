package analyzers

import (
	"fmt"
	"regexp"
	"strings"
)

// GoAnalyzer extracts Go structure: package, imports, structs, interfaces,
// functions and methods, plus counts of the concurrency, error-handling and
// testing idioms that characterize a Go file.
type GoAnalyzer struct{}

var (
	goPackageRe      = regexp.MustCompile(`package\s+(\w+)`)
	goSingleImportRe = regexp.MustCompile(`import\s+"([^"]+)"`)
	goMultiImportRe  = regexp.MustCompile(`(?s)import\s+\((.*?)\)`)
	goStructRe       = regexp.MustCompile(`(?s)type\s+(\w+)\s+struct\s*{([^}]*)}`)
	goInterfaceRe    = regexp.MustCompile(`(?s)type\s+(\w+)\s+interface\s*{([^}]*)}`)
	goFuncRe         = regexp.MustCompile(`func\s+(\w+)\s*\(([^)]*)\)\s*(?:\(([^)]*)\)|(\S[^{]*?))?\s*{`)
	goMethodRe       = regexp.MustCompile(`func\s+\((\w+)\s+\*?(\w+)\)\s+(\w+)\s*\(([^)]*)\)\s*(?:\(([^)]*)\)|(\S[^{]*?))?\s*{`)
	goIfaceMethodRe  = regexp.MustCompile(`(\w+)\([^)]*\)`)
	goDocCommentRe   = regexp.MustCompile(`//\s*\w+|/\*\s*\w+`)
	goExportedRe     = regexp.MustCompile(`func\s+[A-Z]|\btype\s+[A-Z]`)
	goGoroutineRe    = regexp.MustCompile(`go\s+\w+`)
	goTestFuncRe     = regexp.MustCompile(`func\s+Test\w+\s*\(`)
	goBenchFuncRe    = regexp.MustCompile(`func\s+Benchmark\w+\s*\(`)
)

type goImport struct {
	path   string
	alias  string
	stdlib bool
}

func (GoAnalyzer) Analyze(content, path string) Report {
	pkg := "unknown"
	if m := goPackageRe.FindStringSubmatch(content); m != nil {
		pkg = m[1]
	}

	imports := extractGoImports(content)

	var structLines, typeNames []string
	for _, m := range goStructRe.FindAllStringSubmatch(content, -1) {
		entry := m[1]
		if strings.Contains(m[2], "`json:\"") {
			entry += " (with JSON tags)"
		}
		structLines = append(structLines, entry)
		typeNames = append(typeNames, m[1])
	}

	var ifaceLines []string
	for _, m := range goInterfaceRe.FindAllStringSubmatch(content, -1) {
		methods := goIfaceMethodRe.FindAllStringSubmatch(m[2], -1)
		names := make([]string, 0, len(methods))
		for _, im := range methods {
			names = append(names, im[1])
		}
		ifaceLines = append(ifaceLines, fmt.Sprintf("%s [%s]", m[1], strings.Join(names, ", ")))
		typeNames = append(typeNames, m[1])
	}

	var funcNames, funcLines []string
	for _, m := range goFuncRe.FindAllStringSubmatch(content, -1) {
		funcNames = append(funcNames, m[1])
		funcLines = append(funcLines, fmt.Sprintf("%s(%s)", m[1], strings.TrimSpace(m[2])))
	}
	for _, m := range goMethodRe.FindAllStringSubmatch(content, -1) {
		name := fmt.Sprintf("(%s) %s", m[2], m[3])
		funcNames = append(funcNames, m[3])
		funcLines = append(funcLines, fmt.Sprintf("%s(%s)", name, strings.TrimSpace(m[4])))
	}

	complexity := complexityScore(content)
	docScore := ratioScore(
		len(goDocCommentRe.FindAllString(content, -1)),
		len(goExportedRe.FindAllString(content, -1)),
	)

	importPaths := make([]string, 0, len(imports))
	var importLines []string
	for _, imp := range imports {
		importPaths = append(importPaths, imp.path)
		line := imp.path
		if imp.alias != "" {
			line += " as " + imp.alias
		}
		if imp.stdlib {
			line += " (stdlib)"
		}
		importLines = append(importLines, line)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Go File Analysis for %s:\n\n", path)
	fmt.Fprintf(&b, "Package: %s\n\n", pkg)
	section(&b, "Imports", importLines)
	b.WriteString("\n")
	section(&b, "Structs", structLines)
	b.WriteString("\n")
	section(&b, "Interfaces", ifaceLines)
	b.WriteString("\n")
	section(&b, "Functions", funcLines)

	fmt.Fprintf(&b, "\nConcurrency Patterns:\n")
	fmt.Fprintf(&b, "- Goroutines: %d\n", len(goGoroutineRe.FindAllString(content, -1)))
	fmt.Fprintf(&b, "- Channels: %d\n", strings.Count(content, "chan "))
	fmt.Fprintf(&b, "- Select Blocks: %d\n", strings.Count(content, "select {"))
	fmt.Fprintf(&b, "- Mutex Usage: %d\n", strings.Count(content, "sync.Mutex")+strings.Count(content, "sync.RWMutex"))

	fmt.Fprintf(&b, "\nError Handling:\n")
	fmt.Fprintf(&b, "- Error Checks: %d\n", strings.Count(content, "if err != nil"))
	fmt.Fprintf(&b, "- Custom Errors: %d\n", strings.Count(content, "errors.New")+strings.Count(content, "fmt.Errorf"))

	fmt.Fprintf(&b, "\nTesting:\n")
	fmt.Fprintf(&b, "- Test Functions: %d\n", len(goTestFuncRe.FindAllString(content, -1)))
	fmt.Fprintf(&b, "- Benchmark Functions: %d\n", len(goBenchFuncRe.FindAllString(content, -1)))

	fmt.Fprintf(&b, "\nComplexity Score: %d/10\n", complexity)
	fmt.Fprintf(&b, "Documentation Score: %d/10", docScore)

	return Report{
		Path: path,
		Facts: Facts{
			Imports:            importPaths,
			Types:              typeNames,
			Functions:          funcNames,
			ComplexityScore:    complexity,
			DocumentationScore: docScore,
		},
		Text: b.String(),
	}
}

func extractGoImports(content string) []goImport {
	var imports []goImport

	for _, m := range goSingleImportRe.FindAllStringSubmatch(content, -1) {
		imports = append(imports, goImport{path: m[1], stdlib: !strings.Contains(m[1], ".")})
	}

	for _, block := range goMultiImportRe.FindAllStringSubmatch(content, -1) {
		for _, line := range strings.Split(block[1], "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "//") {
				continue
			}
			parts := strings.Fields(line)
			imp := goImport{}
			if len(parts) > 1 {
				imp.alias = parts[0]
				imp.path = strings.Trim(parts[1], `"`)
			} else {
				imp.path = strings.Trim(parts[0], `"`)
			}
			if imp.path == "" {
				continue
			}
			imp.stdlib = !strings.Contains(imp.path, ".")
			imports = append(imports, imp)
		}
	}
	return imports
}
