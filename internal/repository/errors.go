// Package repository holds the GORM-backed persistence layer. Sentinel
// errors defined here let services distinguish failure modes without
// depending on driver details.
package repository

import "errors"

// ErrOverlap is returned when a booking insert loses the race for a slot:
// the database-level exclusion check found another non-cancelled booking for
// the same staff member with an overlapping interval. Callers map this to a
// "slot taken" response.
var ErrOverlap = errors.New("booking interval overlaps an existing booking")

// ErrNotFound is returned when the requested row does not exist.
var ErrNotFound = errors.New("record not found")
