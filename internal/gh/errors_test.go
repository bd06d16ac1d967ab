package gh

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Kind
	}{
		{"invalid params", InvalidParamsf("missing %q", "owner"), KindInvalidParams},
		{"not found", NotFoundf("owner %q not found", "ghost"), KindNotFound},
		{"upstream", Upstreamf(errors.New("graphql: boom"), "failed to create issue"), KindUpstream},
		{"internal", Internalf("unexpected"), KindInternal},
		{"foreign error", errors.New("plain"), KindInternal},
		{"wrapped", fmt.Errorf("context: %w", NotFoundf("gone")), KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, KindOf(tt.err))
		})
	}
}

func TestError_IncludesUpstreamText(t *testing.T) {
	err := Upstreamf(errors.New("graphql: The item is not a draft issue"), "failed to convert item %q", "PVTI_1")
	assert.Contains(t, err.Error(), "PVTI_1")
	assert.Contains(t, err.Error(), "not a draft issue")
}
