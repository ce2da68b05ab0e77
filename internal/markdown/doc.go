// Package markdown covers the post processing of exported documents: HTML
// previews through goldmark, YAML front matter headers, and loading a
// previously exported directory back into memory for reindexing.
package markdown
