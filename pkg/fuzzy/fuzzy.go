// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

// Package fuzzy scores approximate string matches for catalog search.
package fuzzy

import (
	"strings"

	"github.com/hbollon/go-edlib"
)

// Score rates how closely candidate resembles query on a 0..100 scale.
// The comparison is case-insensitive and ignores surrounding whitespace.
// Either side being empty scores zero.
func Score(query, candidate string) int {
	query = strings.ToLower(strings.TrimSpace(query))
	candidate = strings.ToLower(strings.TrimSpace(candidate))

	if query == "" || candidate == "" {
		return 0
	}

	return int(edlib.JaroWinklerSimilarity(query, candidate) * 100)
}

// Match reports whether candidate scores at or above threshold for query.
func Match(query, candidate string, threshold int) bool {
	return Score(query, candidate) >= threshold
}
