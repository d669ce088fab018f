package analyzers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForPathSelectsByExtension(t *testing.T) {
	tests := []struct {
		path string
		want Analyzer
	}{
		{"src/main.py", PythonAnalyzer{}},
		{"app/index.js", JavaScriptAnalyzer{}},
		{"app/App.tsx", JavaScriptAnalyzer{}},
		{"nb/train.ipynb", NotebookAnalyzer{}},
		{"src/lib.rs", RustAnalyzer{}},
		{"cmd/main.go", GoAnalyzer{}},
		{"core/engine.cpp", CppAnalyzer{}},
		{"core/engine.h", CppAnalyzer{}},
		{"README.md", TextAnalyzer{}},
		{"Makefile", TextAnalyzer{}},
		{"weird.PY", PythonAnalyzer{}}, // extension match is case-insensitive
	}

	for _, tt := range tests {
		assert.IsType(t, tt.want, ForPath(tt.path), tt.path)
	}
}

func TestAnalyzersAreDeterministic(t *testing.T) {
	samples := map[string]string{
		"a.py":  "import os\nimport sys\n\ndef main():\n    pass\n",
		"a.go":  "package main\n\nimport \"fmt\"\n\nfunc main() { fmt.Println(1) }\n",
		"a.js":  "import x from 'y';\nfunction f() {}\n",
		"a.rs":  "use std::io;\nfn main() {}\n",
		"a.cpp": "#include <vector>\nint main() { return 0; }\n",
		"a.md":  "# Title\n\n- item\n",
	}

	for path, content := range samples {
		first := ForPath(path).Analyze(content, path)
		second := ForPath(path).Analyze(content, path)
		assert.Equal(t, first.Text, second.Text, path)
		assert.Equal(t, first.Facts, second.Facts, path)
	}
}

func TestScoresStayInRange(t *testing.T) {
	huge := strings.Repeat("if x:\n    pass\nfor y in z:\n    pass\n", 200)
	samples := map[string]string{
		"big.py":   huge,
		"empty.py": "",
		"big.md":   strings.Repeat("# h\n- a\n- b\n```\ncode\n```\n", 100),
		"empty.md": "",
	}

	for path, content := range samples {
		report := ForPath(path).Analyze(content, path)
		assert.GreaterOrEqual(t, report.Facts.ComplexityScore, 0, path)
		assert.LessOrEqual(t, report.Facts.ComplexityScore, 10, path)
		assert.GreaterOrEqual(t, report.Facts.DocumentationScore, 0, path)
		assert.LessOrEqual(t, report.Facts.DocumentationScore, 10, path)
	}
}

func TestClampScore(t *testing.T) {
	assert.Equal(t, 0, clampScore(-3))
	assert.Equal(t, 0, clampScore(0))
	assert.Equal(t, 7, clampScore(7))
	assert.Equal(t, 10, clampScore(10))
	assert.Equal(t, 10, clampScore(99))
}

func TestRatioScore(t *testing.T) {
	assert.Equal(t, 5, ratioScore(1, 2))
	assert.Equal(t, 10, ratioScore(3, 2))
	assert.Equal(t, 0, ratioScore(0, 5))
	assert.Equal(t, 10, ratioScore(1, 0)) // zero items treated as one
}
