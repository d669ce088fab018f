package analyzers

import (
	"encoding/json"
	"fmt"
	"strings"
)

// NotebookAnalyzer parses Jupyter notebooks as JSON, separating code from
// narrative cells and aggregating code lines and imports across code cells.
type NotebookAnalyzer struct{}

type notebookCell struct {
	CellType string          `json:"cell_type"`
	Source   json.RawMessage `json:"source"`
}

type notebookDoc struct {
	Cells []notebookCell `json:"cells"`
}

func (NotebookAnalyzer) Analyze(content, path string) Report {
	var nb notebookDoc
	if err := json.Unmarshal([]byte(content), &nb); err != nil {
		text := fmt.Sprintf("Error: Invalid notebook format in %s", path)
		return Report{Path: path, Text: text}
	}

	codeCells, markdownCells := 0, 0
	totalCodeLines := 0
	var imports []string

	for _, cell := range nb.Cells {
		source := cellSource(cell.Source)
		switch cell.CellType {
		case "code":
			codeCells++
			cellLines := strings.Split(source, "\n")
			totalCodeLines += len(cellLines)
			for _, line := range cellLines {
				trimmed := strings.TrimSpace(line)
				if strings.HasPrefix(trimmed, "import ") || strings.HasPrefix(trimmed, "from ") {
					imports = append(imports, trimmed)
				}
			}
		case "markdown":
			markdownCells++
		}
	}

	complexity := clampScore(totalCodeLines / 10)
	docScore := ratioScore(markdownCells, codeCells)

	var b strings.Builder
	fmt.Fprintf(&b, "Jupyter Notebook Analysis for %s:\n", path)
	fmt.Fprintf(&b, "Total Cells: %d\n", len(nb.Cells))
	fmt.Fprintf(&b, "Code Cells: %d\n", codeCells)
	fmt.Fprintf(&b, "Markdown Cells: %d\n", markdownCells)
	fmt.Fprintf(&b, "Total Code Lines: %d\n\n", totalCodeLines)
	section(&b, "Imports Found", imports)
	fmt.Fprintf(&b, "\nComplexity Score: %d/10\n", complexity)
	fmt.Fprintf(&b, "Documentation Score: %d/10", docScore)

	return Report{
		Path: path,
		Facts: Facts{
			Imports:            imports,
			ComplexityScore:    complexity,
			DocumentationScore: docScore,
		},
		Text: b.String(),
	}
}

// cellSource handles the notebook format's two source encodings: a single
// string or a list of line strings.
func cellSource(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var lines []string
	if err := json.Unmarshal(raw, &lines); err == nil {
		return strings.Join(lines, "")
	}
	return ""
}
