package pipeline

// FileAnalysis pairs one selected file with its finished analysis text.
type FileAnalysis struct {
	Path     string `json:"path"`
	Analysis string `json:"analysis"`
}

// State carries the accumulated result of a repository analysis through the
// pipeline stages. Stages receive State by value and return a new one with
// only their own fields populated; earlier fields are never mutated.
type State struct {
	RepoURL        string         `json:"repo_url"`
	RepoTree       string         `json:"repo_tree"`
	ImportantFiles []string       `json:"important_files"`
	Analysis       []FileAnalysis `json:"analysis"`
}
