// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

/*
Package schema is the table-descriptor registry for the Zarnitsa database.

Every stored table is described once, in its own file, by a struct whose
fields hold the physical column names. Storage code never spells a table or
column name inline; it always goes through a descriptor. This gives the
generic CRUD engine a single place to ask two questions about any entity:
"what is your primary key?" and "is this field name yours?".

Architecture:

  - Descriptor: the minimal contract a table definition must satisfy.
  - PrimaryKeyOf: resolves the single primary-key column (defensive).
  - InvalidFields: the validate-before-I/O check every write and filter
    path runs against untrusted field mappings.
*/
package schema

import (
	"fmt"
	"sort"
)

// Descriptor is the contract every table definition in this package satisfies.
//
// # Immutability
//
// Descriptors are package-level values built at init time; their field sets
// never change for the lifetime of the process.
type Descriptor interface {
	// TableName returns the schema-qualified physical table name.
	TableName() string

	// PrimaryKeys returns the primary-key column names. The data model
	// guarantees exactly one everywhere; the slice form exists so that a
	// misconfigured descriptor is detectable rather than silently wrong.
	PrimaryKeys() []string

	// Columns returns every selectable column, including the primary key
	// and the server-stamped timestamps.
	Columns() []string

	// Writable returns the client-settable subset of Columns: no primary
	// key, no created/updated timestamps.
	Writable() []string
}

// SchemaError reports a misconfigured table descriptor. It indicates a
// programming mistake in this package, never a runtime condition caused
// by caller input.
type SchemaError struct {
	Table  string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema: table %q: %s", e.Table, e.Reason)
}

// PrimaryKeyOf resolves the sole primary-key column of a descriptor.
//
// It returns a [*SchemaError] if the descriptor declares zero or multiple
// primary-key columns.
func PrimaryKeyOf(d Descriptor) (string, error) {
	keys := d.PrimaryKeys()
	if len(keys) != 1 {
		return "", &SchemaError{
			Table:  d.TableName(),
			Reason: fmt.Sprintf("expected exactly one primary key, got %d", len(keys)),
		}
	}
	return keys[0], nil
}

// InvalidFields returns the keys of body that are not in the allowed column
// set, sorted for deterministic error messages. An empty result means every
// key is valid.
//
// The check is pure: it performs no I/O and never mutates body.
func InvalidFields(allowed []string, body map[string]any) []string {
	if len(body) == 0 {
		return nil
	}

	set := make(map[string]struct{}, len(allowed))
	for _, column := range allowed {
		set[column] = struct{}{}
	}

	var invalid []string
	for key := range body {
		if _, ok := set[key]; !ok {
			invalid = append(invalid, key)
		}
	}

	sort.Strings(invalid)
	return invalid
}
