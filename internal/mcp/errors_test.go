package mcp

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mdlayton/ghpmcp/internal/gh"
)

func TestKindLabel(t *testing.T) {
	tests := []struct {
		kind     gh.Kind
		expected string
	}{
		{gh.KindInvalidParams, "invalid params"},
		{gh.KindNotFound, "not found"},
		{gh.KindUpstream, "upstream failure"},
		{gh.KindInternal, "internal error"},
		{gh.Kind("unknown"), "internal error"},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.expected, kindLabel(tt.kind))
		})
	}
}

func TestErrorText(t *testing.T) {
	err := gh.NotFoundf("owner %q not found", "ghost")
	assert.Equal(t, `not found: owner "ghost" not found`, errorText(err))

	plain := errors.New("boom")
	assert.Equal(t, "internal error: boom", errorText(plain))
}
