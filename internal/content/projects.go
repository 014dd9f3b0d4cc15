package content

// Projects is the portfolio project list, in display order.
var Projects = []Project{
	{
		Title:       "Brage",
		Description: "This site: a self-hosted Markdown blog and portfolio engine with full-text search and live reload.",
		Tags:        []string{"go", "sqlite", "markdown"},
		Links:       Links{Repo: "https://github.com/hdahl/brage"},
		Thumbnail:   "/assets/brage.png",
	},
	{
		Title:       "Runlog",
		Description: "Structured log viewer for long-running batch jobs. Tails JSON logs and folds repeated stack traces.",
		Tags:        []string{"go", "cli", "observability"},
		Links:       Links{Repo: "https://github.com/hdahl/runlog"},
		Thumbnail:   "/assets/runlog.png",
	},
	{
		Title:       "Skiff",
		Description: "Minimal deployment runner: renders compose files from a manifest and ships them over SSH.",
		Tags:        []string{"go", "deployment"},
		Links:       Links{Repo: "https://github.com/hdahl/skiff", External: "https://skiff.hdahl.dev"},
	},
}
