// Package registry holds the stable, explicit interface/method/parameter
// catalogue chaosrpc dispatches against — an explicit value owned by (or
// shared into) an Endpoint, never a process-wide singleton, per spec.md
// §5/§9.
package registry

import "github.com/pkg/errors"

// ErrDuplicateOrdinal is raised at Register time when two interfaces
// claim the same 7-bit ordinal.
var ErrDuplicateOrdinal = errors.New("registry: duplicate interface ordinal")

// ErrInvalidOrdinal is raised when an ordinal falls outside 1..127.
var ErrInvalidOrdinal = errors.New("registry: ordinal must be in 1..127")

// ErrSchemaViolation mirrors wire.ErrSchemaViolation for registration-time
// detections (e.g. a field both nullable and self-tagging).
var ErrSchemaViolation = errors.New("registry: schema violation")
