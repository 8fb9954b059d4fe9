// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

package fuzzy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/azhdanov/zarnitsa/pkg/fuzzy"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		candidate string
		want      int
	}{
		{name: "identical", query: "koster", candidate: "koster", want: 100},
		{name: "case insensitive", query: "KOSTER", candidate: "koster", want: 100},
		{name: "surrounding whitespace ignored", query: "  koster ", candidate: "koster", want: 100},
		{name: "empty query", query: "", candidate: "koster", want: 0},
		{name: "empty candidate", query: "koster", candidate: "", want: 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, fuzzy.Score(test.query, test.candidate))
		})
	}
}

func TestMatch(t *testing.T) {
	assert.True(t, fuzzy.Match("alye parusa", "Alye Parusa", 75))
	assert.True(t, fuzzy.Match("alye parus", "alye parusa", 75), "near miss clears a mid threshold")
	assert.False(t, fuzzy.Match("morskoy boy", "tikhaya noch", 60), "unrelated titles stay below threshold")
}
