package analyzers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const nbSample = `{
  "cells": [
    {"cell_type": "markdown", "source": ["# Experiment\n"]},
    {"cell_type": "code", "source": ["import numpy as np\n", "x = np.zeros(3)\n"]},
    {"cell_type": "code", "source": "from pathlib import Path\nprint(Path.cwd())"}
  ]
}`

func TestNotebookAnalyzerCountsCells(t *testing.T) {
	report := NotebookAnalyzer{}.Analyze(nbSample, "exp.ipynb")

	assert.Contains(t, report.Text, "Total Cells: 3")
	assert.Contains(t, report.Text, "Code Cells: 2")
	assert.Contains(t, report.Text, "Markdown Cells: 1")
	assert.Equal(t, []string{"import numpy as np", "from pathlib import Path"}, report.Facts.Imports)
}

func TestNotebookAnalyzerInvalidJSON(t *testing.T) {
	report := NotebookAnalyzer{}.Analyze("not json at all", "bad.ipynb")
	assert.Equal(t, "Error: Invalid notebook format in bad.ipynb", report.Text)
}

func TestNotebookAnalyzerEmptyNotebook(t *testing.T) {
	report := NotebookAnalyzer{}.Analyze(`{"cells": []}`, "empty.ipynb")
	assert.Contains(t, report.Text, "Total Cells: 0")
	assert.Equal(t, 0, report.Facts.ComplexityScore)
}

func TestCellSource(t *testing.T) {
	assert.Equal(t, "a\nb", cellSource([]byte(`"a\nb"`)))
	assert.Equal(t, "a\nb", cellSource([]byte(`["a\n", "b"]`)))
	assert.Equal(t, "", cellSource(nil))
	assert.Equal(t, "", cellSource([]byte(`42`)))
}
