package mcpserver

// PostFormatContract describes the canonical Markdown document format
// that site posts must follow.
const PostFormatContract = `# Brage Post Format Contract

Every Markdown document published on the site MUST follow this structure.

## Structure

` + "```" + `markdown
---
title: Human-readable title        # REQUIRED – shown in listings and pages
summary: One-sentence teaser       # REQUIRED – shown in listings and the feed
type: blog                         # REQUIRED – "blog" or "note"
published_at: 2025-01-15           # REQUIRED – date or RFC 3339 datetime
tags:                              # OPTIONAL – YAML list; used for filtering
  - tag-one
draft: false                       # OPTIONAL – drafts are hidden from listings
thumbnail: /assets/cover.png       # OPTIONAL – image shown on the post page
---

Body text in standard Markdown (GFM tables and task lists work).
` + "```" + `

## Rules

1. **YAML front-matter is mandatory.** The ` + "```" + `---` + "```" + ` fences must be the first
   thing in the file (no leading blank lines). A document without valid
   front-matter is rejected at index time.
2. **The slug is the filename stem**, lowercased: ` + "`" + `Hello-World.md` + "`" + ` becomes
   ` + "`" + `hello-world` + "`" + `. Slugs must be unique across the whole content directory.
3. **Accepted date formats:** ` + "`" + `2006-01-02` + "`" + `, ` + "`" + `2006-01-02 15:04:05` + "`" + `, RFC 3339.
4. **Tags** are lowercase, kebab-case.
5. **Images** live in the shared ` + "`" + `assets/` + "`" + ` directory (flat, no sub-folders)
   and are referenced with absolute paths: ` + "`" + `![alt](/assets/filename.png)` + "`" + `.
6. **Encoding** is UTF-8 with a trailing newline.

## Example

` + "```" + `markdown
---
title: Shipping a Tiny Static Site Engine
summary: Notes from building a personal site with SQLite and Markdown.
type: blog
published_at: 2025-01-20
tags:
  - go
  - sqlite
---

# Shipping a Tiny Static Site Engine

Body goes here.

![Architecture sketch](/assets/arch.png)
` + "```" + `
`
