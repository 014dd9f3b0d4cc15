package content

// Socials is the profile link list, in display order.
var Socials = []Social{
	{Label: "GitHub", Href: "https://github.com/hdahl", Icon: "github"},
	{Label: "Mastodon", Href: "https://hachyderm.io/@hdahl", Icon: "mastodon"},
	{Label: "RSS", Href: "/feed.xml", Icon: "rss"},
	{Label: "Email", Href: "mailto:post@hdahl.dev", Icon: "mail"},
}
