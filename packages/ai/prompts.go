package ai

// Prompt templates for the two pipeline collaborators. Wording stays stable:
// the selection prompt's output contract (plain JSON, no code fences) is load
// bearing for the response parser.

const chooseFilesPrompt = `You are a README documentation expert. Select only the essential files needed to create an effective README. Focus on:
1. Files that demonstrate the core purpose and functionality
2. Configuration files that show how to set up the project
3. Files containing API endpoints or main interfaces
4. Entry points that show how to run the project

From this repository structure, select only the files strictly necessary for creating an informative README:

%s

Be extremely selective - choose only what's essential, no more than %d files total, ordered by importance.

Respond in JSON format:
{
  "files": ["path/to/file1", "path/to/file2"]
}

Use the full paths shown in parentheses in the structure above.
Return ONLY JSON with no code blocks or backticks.`

const summarizeFilePrompt = `You are a technical documentation expert. Provide a concise and comprehensive analysis of the file. Your summary should be a few sentences that clearly state what the file mainly contains and highlight any critical details necessary for writing a README.md file.

Analyze this file:
Path: %s
Content:
%s`
