// Package template holds the embedded file trees static blueprints deploy,
// and the renderer and deployer that write them into a project.
package template

import "errors"

// Sentinel errors for template operations.
var (
	// ErrTemplateNotFound indicates the named template or tree does not exist.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrMissingTemplateKey indicates a template referenced a missing key.
	ErrMissingTemplateKey = errors.New("missing template key")

	// ErrPathTraversal indicates a template path escapes the destination.
	ErrPathTraversal = errors.New("path traversal detected")
)
