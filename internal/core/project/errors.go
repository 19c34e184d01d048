// Package project turns a structured project configuration into a directory
// tree. It picks the blueprints and the layout (frontend only, backend only,
// or full stack) and drives the composer for each part.
package project

import (
	"errors"

	"github.com/forge-scaffold/forge/internal/catalog"
)

// Sentinel errors for the project package.
var (
	// ErrUnsupported indicates a frontend or backend kind with no blueprint.
	ErrUnsupported = catalog.ErrUnsupported

	// ErrCreateFailed indicates a project creation step failed.
	ErrCreateFailed = errors.New("project creation failed")
)
