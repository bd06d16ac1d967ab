package mcp

import (
	"github.com/mdlayton/ghpmcp/internal/domain"
	"github.com/mdlayton/ghpmcp/internal/gh"
)

// Argument extraction. All of these fail before any remote call is made,
// so a missing required parameter never costs a network round trip.

func requireString(args map[string]interface{}, key string) (string, error) {
	v, ok := args[key]
	if !ok {
		return "", gh.InvalidParamsf("missing required parameter %q", key)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", gh.InvalidParamsf("parameter %q must be a non-empty string", key)
	}
	return s, nil
}

func optionalString(args map[string]interface{}, key string) (string, bool, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return "", false, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", false, gh.InvalidParamsf("parameter %q must be a string", key)
	}
	return s, true, nil
}

func requireInt(args map[string]interface{}, key string) (int, error) {
	v, ok := args[key]
	if !ok {
		return 0, gh.InvalidParamsf("missing required parameter %q", key)
	}
	switch n := v.(type) {
	case float64:
		// JSON numbers decode as float64.
		return int(n), nil
	case int:
		return n, nil
	default:
		return 0, gh.InvalidParamsf("parameter %q must be a number", key)
	}
}

func optionalStringSlice(args map[string]interface{}, key string) ([]string, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return nil, nil
	}
	raw, ok := v.([]interface{})
	if !ok {
		return nil, gh.InvalidParamsf("parameter %q must be an array of strings", key)
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil, gh.InvalidParamsf("parameter %q must be an array of strings", key)
		}
		out = append(out, s)
	}
	return out, nil
}

// optionInputs parses an option array. Name, color, and description are
// all mandatory per option; omission is a caller error, never defaulted.
func optionInputs(args map[string]interface{}, key string) ([]domain.OptionInput, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return nil, nil
	}
	raw, ok := v.([]interface{})
	if !ok {
		return nil, gh.InvalidParamsf("parameter %q must be an array of option objects", key)
	}

	out := make([]domain.OptionInput, 0, len(raw))
	for i, item := range raw {
		obj, ok := item.(map[string]interface{})
		if !ok {
			return nil, gh.InvalidParamsf("parameter %q element %d must be an object", key, i)
		}
		var opt domain.OptionInput
		for _, member := range []struct {
			name string
			dst  *string
		}{
			{"name", &opt.Name},
			{"color", &opt.Color},
			{"description", &opt.Description},
		} {
			mv, ok := obj[member.name].(string)
			if !ok {
				return nil, gh.InvalidParamsf(
					"parameter %q element %d is missing required member %q", key, i, member.name)
			}
			*member.dst = mv
		}
		if opt.Name == "" {
			return nil, gh.InvalidParamsf("parameter %q element %d has an empty name", key, i)
		}
		out = append(out, opt)
	}
	return out, nil
}
