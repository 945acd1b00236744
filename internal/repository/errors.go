// Package repository reads the raffle catalog owned by the backend.  The
// sentinel errors below let handlers map lookups to status codes.
package repository

import "errors"

// ErrRaffleNotFound is returned when no raffle has the requested id.
// Handlers translate it into a 404.
var ErrRaffleNotFound = errors.New("raffle not found")
