package mcp

import (
	"fmt"

	"github.com/mdlayton/ghpmcp/internal/gh"
)

// errorText renders an error for the tool result payload, prefixed with
// its taxonomy so the calling agent can distinguish caller mistakes from
// remote failures.
func errorText(err error) string {
	return fmt.Sprintf("%s: %s", kindLabel(gh.KindOf(err)), err.Error())
}

func kindLabel(kind gh.Kind) string {
	switch kind {
	case gh.KindInvalidParams:
		return "invalid params"
	case gh.KindNotFound:
		return "not found"
	case gh.KindUpstream:
		return "upstream failure"
	default:
		return "internal error"
	}
}
