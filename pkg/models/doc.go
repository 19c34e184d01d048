// Package models provides the shared data model for forge.
//
// The central type is [ProjectConfig], the structured description of a
// project to scaffold. It is produced by the interactive wizard, by command
// line flags, or by the configuration interpreter, and consumed by the
// project orchestrator.
//
// # Technology choices
//
// Technology choices are closed sets expressed as typed string enums:
//   - [Frontend]: react, next, svelte, sveltekit, none
//   - [Backend]: fastapi, express, typescript-prisma, golang, rust, java, none
//   - [Database]: postgres, sqlite, none
//
// Each enum exposes IsValid and an All function listing its real (non-none)
// members:
//
//	for _, fe := range models.AllFrontends() {
//	    fmt.Println(fe, fe.Label())
//	}
//
// # Validation
//
// [ProjectConfig.Validate] reports every bad field at once through
// [ValidationErrors]. The result matches [ErrInvalidConfig] with errors.Is,
// and additionally [ErrNothingSelected] when neither a frontend nor a
// backend was chosen.
package models
