package template

import (
	"embed"
	"io/fs"
)

//go:embed all:templates
var embedded embed.FS

// EmbeddedTemplates returns the built-in template trees rooted so that each
// top-level directory is one tree (for example "express" or "docker/node").
func EmbeddedTemplates() (fs.FS, error) {
	return fs.Sub(embedded, "templates")
}
