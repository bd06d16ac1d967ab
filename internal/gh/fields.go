package gh

import (
	"context"

	"github.com/machinebox/graphql"

	"github.com/mdlayton/ghpmcp/internal/domain"
)

// FieldSet is a name-indexed snapshot of one project's field schema.
// It is built fresh per operation that needs it, never cached across
// requests, so field and option IDs are never stale relative to
// concurrent remote edits.
type FieldSet struct {
	projectID string
	byName    map[string]domain.Field
}

// ResolveFields fetches the project's full field list once (id, name,
// data type, and single-select options) and indexes it by field name.
func (c *Client) ResolveFields(ctx context.Context, projectID string) (*FieldSet, error) {
	req := graphql.NewRequest(`
		query($projectId: ID!) {
			node(id: $projectId) {
				... on ProjectV2 {
					fields(first: 50) {
						nodes {` + fieldFragments + `}
					}
				}
			}
		}
	`)
	req.Var("projectId", projectID)

	var resp struct {
		Node *struct {
			Fields struct {
				Nodes []fieldNode `json:"nodes"`
			} `json:"fields"`
		} `json:"node"`
	}

	if err := c.run(ctx, req, &resp); err != nil {
		return nil, Upstreamf(err, "failed to resolve fields of project %q", projectID)
	}

	if resp.Node == nil {
		return nil, NotFoundf("project %q not found", projectID)
	}

	fs := &FieldSet{
		projectID: projectID,
		byName:    make(map[string]domain.Field, len(resp.Node.Fields.Nodes)),
	}
	for _, node := range resp.Node.Fields.Nodes {
		if f, ok := node.toField(); ok {
			fs.byName[f.FieldName()] = f
		}
	}

	return fs, nil
}

// Field returns the field with the given name, if present.
func (fs *FieldSet) Field(name string) (domain.Field, bool) {
	f, ok := fs.byName[name]
	return f, ok
}

// SingleSelectOption returns the named option of the named single-select
// field. A field of the wrong kind is a caller error, never a silent
// miss; a missing field or option reports ok=false.
func (fs *FieldSet) SingleSelectOption(fieldName, optionName string) (domain.Option, bool, error) {
	f, ok := fs.byName[fieldName]
	if !ok {
		return domain.Option{}, false, nil
	}

	switch f := f.(type) {
	case domain.SingleSelectField:
		for _, opt := range f.Options {
			if opt.Name == optionName {
				return opt, true, nil
			}
		}
		return domain.Option{}, false, nil
	case domain.TextField, domain.NumberField, domain.DateField, domain.IterationField:
		return domain.Option{}, false, InvalidParamsf(
			"field %q is a %s field, not a single-select field", fieldName, f.DataType())
	default:
		return domain.Option{}, false, Internalf("field %q has unknown kind", fieldName)
	}
}
