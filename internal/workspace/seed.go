package workspace

const seedAppContent = `import React from 'react';

function App() {
  return (
    <div className="App">
      <h1>Welcome to CodeCollab!</h1>
      <p>Start editing to see live updates.</p>
    </div>
  );
}

export default App;`

const seedCSSContent = `body {
  margin: 0;
  font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', 'Roboto', 'Oxygen',
    'Ubuntu', 'Cantarell', 'Fira Sans', 'Droid Sans', 'Helvetica Neue',
    sans-serif;
  -webkit-font-smoothing: antialiased;
  -moz-osx-font-smoothing: grayscale;
}

code {
  font-family: source-code-pro, Menlo, Monaco, Consolas, 'Courier New',
    monospace;
}`

const seedReadmeContent = `# CodeCollab

A collaborative code editor for the terminal.

## Features

- Tabbed editor with dirty tracking
- Dark and light themes
- Auto-save functionality
- Remote code execution for 12 languages
- Keyboard shortcuts

## Getting Started

1. Open any file from the explorer
2. Start editing
3. Changes auto-save every 3 seconds

Enjoy coding!`

// defaultForest builds the tree written on first run.
func defaultForest(newID func() string) []*FileNode {
	srcID := newID()
	return []*FileNode{
		{
			ID:         srcID,
			Name:       "src",
			Type:       TypeFolder,
			IsExpanded: ptr(true),
			Children: []*FileNode{
				{
					ID:       newID(),
					Name:     "App.tsx",
					Type:     TypeFile,
					ParentID: ptr(srcID),
					Language: ptr("typescript"),
					Content:  ptr(seedAppContent),
				},
				{
					ID:       newID(),
					Name:     "index.css",
					Type:     TypeFile,
					ParentID: ptr(srcID),
					Language: ptr("css"),
					Content:  ptr(seedCSSContent),
				},
			},
		},
		{
			ID:       newID(),
			Name:     "README.md",
			Type:     TypeFile,
			Language: ptr("markdown"),
			Content:  ptr(seedReadmeContent),
		},
	}
}
