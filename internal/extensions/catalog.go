package extensions

// Extension describes a marketplace entry.
type Extension struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	DisplayName string  `json:"displayName"`
	Publisher   string  `json:"publisher"`
	Description string  `json:"description"`
	Version     string  `json:"version"`
	Downloads   string  `json:"downloads"`
	Rating      float64 `json:"rating"`
	Verified    bool    `json:"verified"`
}

var catalog = []Extension{
	{
		ID:          "python",
		Name:        "python",
		DisplayName: "Python",
		Publisher:   "Microsoft",
		Description: "IntelliSense (Pylance), Linting, Debugging, Jupyter Notebooks, code formatting, refactoring",
		Version:     "2024.0.0",
		Downloads:   "92.3M",
		Rating:      4.5,
		Verified:    true,
	},
	{
		ID:          "prettier",
		Name:        "prettier-vscode",
		DisplayName: "Prettier - Code formatter",
		Publisher:   "Prettier",
		Description: "Code formatter using prettier",
		Version:     "10.1.0",
		Downloads:   "38.5M",
		Rating:      4.0,
		Verified:    true,
	},
	{
		ID:          "eslint",
		Name:        "eslint",
		DisplayName: "ESLint",
		Publisher:   "Microsoft",
		Description: "Integrates ESLint JavaScript into the editor",
		Version:     "2.4.2",
		Downloads:   "35.2M",
		Rating:      4.5,
		Verified:    true,
	},
	{
		ID:          "gitlens",
		Name:        "gitlens",
		DisplayName: "GitLens: Git supercharged",
		Publisher:   "GitKraken",
		Description: "Supercharge Git within the editor",
		Version:     "14.5.1",
		Downloads:   "26.8M",
		Rating:      4.8,
		Verified:    true,
	},
}

// defaultInstalled is the installed set of a fresh profile.
var defaultInstalled = []string{"python", "prettier"}

// Catalog returns a copy of every known extension.
func Catalog() []Extension {
	return append([]Extension(nil), catalog...)
}

func lookup(id string) (Extension, bool) {
	for _, e := range catalog {
		if e.ID == id {
			return e, true
		}
	}
	return Extension{}, false
}
