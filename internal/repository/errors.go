// Package repository implements the engine's storage capabilities on
// MySQL.  The repositories translate database rows into model structs and
// map sql.ErrNoRows onto engine.ErrNotFound so that handlers only ever
// branch on the engine's error taxonomy, regardless of which backend is
// plugged in behind the Store interface.
package repository

import "errors"

// ErrConflict is returned when an insert collides with an existing row,
// such as creating an innings number that already exists for the match.
// Handlers should translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")
