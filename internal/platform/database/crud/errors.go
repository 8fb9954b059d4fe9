// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

package crud

import (
	"fmt"
	"strings"
)

// ValidationError reports field names that do not belong to the target
// table's column set. It is produced before any I/O happens and is a
// caller-input problem, so the engine never logs it as a server fault.
type ValidationError struct {
	Entity string
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("crud: unknown fields for %s: %s", e.Entity, strings.Join(e.Fields, ", "))
}

// PersistenceError reports a storage-engine rejection (constraint violation,
// connection failure mid-transaction). The engine always logs it with the
// operation name, the entity, and the cause, and always rolls the
// transaction back before returning it.
//
// A commit failure on delete surfaces as a PersistenceError, which keeps it
// distinguishable from the empty-result "nothing matched" case.
type PersistenceError struct {
	Op     string
	Entity string
	Err    error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("crud: %s %s: %v", e.Op, e.Entity, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
