package content

// Tools is the smaller-utilities list, in display order.
var Tools = []Tool{
	{
		Title:       "mdlint",
		Description: "Opinionated front-matter linter for this site's content format.",
		Tags:        []string{"go", "markdown"},
		Links:       Links{Repo: "https://github.com/hdahl/mdlint"},
	},
	{
		Title:       "pngshave",
		Description: "Batch-optimises screenshots before they land in the assets directory.",
		Tags:        []string{"images"},
		Links:       Links{Repo: "https://github.com/hdahl/pngshave"},
	},
}
