// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

package crud

import "time"

// # Row Accessors
//
// Domain packages keep closed struct types and convert from [Row] at the
// storage edge. These accessors absorb the value shapes pgx hands back
// (integer width differences, NULL as nil) so the conversions stay short.

// ID returns the integer value at key, or 0 when absent or null.
func ID(row Row, key string) int64 {
	id, _ := asInt64(row[key])
	return id
}

// String returns the string value at key, or "" when absent or null.
func String(row Row, key string) string {
	s, _ := row[key].(string)
	return s
}

// StringPtr returns the string value at key, or nil when absent or null.
func StringPtr(row Row, key string) *string {
	s, ok := row[key].(string)
	if !ok {
		return nil
	}
	return &s
}

// Int64Ptr returns the integer value at key, or nil when absent or null.
func Int64Ptr(row Row, key string) *int64 {
	n, ok := asInt64(row[key])
	if !ok {
		return nil
	}
	return &n
}

// Bool returns the boolean value at key, or false when absent or null.
func Bool(row Row, key string) bool {
	b, _ := row[key].(bool)
	return b
}

// Time returns the timestamp value at key, or the zero time when absent
// or null.
func Time(row Row, key string) time.Time {
	t, _ := row[key].(time.Time)
	return t
}
