package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mdlayton/ghpmcp/internal/domain"
	"github.com/mdlayton/ghpmcp/internal/gh"
)

// Single-select fields configured by create_project_item.
const (
	readyFieldName = "Ready?"
	typeFieldName  = "Type"
)

func (s *Server) registerItemTools(m *server.MCPServer) {
	m.AddTool(mcp.NewTool("list_project_items",
		mcp.WithDescription("List the first 20 items of a project with their field values and content"),
		mcp.WithString("projectId", mcp.Required(), mcp.Description("Project node ID")),
	), s.handle("list_project_items", s.listProjectItems))

	m.AddTool(mcp.NewTool("create_project_item",
		mcp.WithDescription("Attach an existing issue to a project, or create a draft item, and optionally set its Ready?/Type/body fields"),
		mcp.WithString("projectId", mcp.Required(), mcp.Description("Project node ID")),
		mcp.WithString("contentId", mcp.Description("Node ID of an existing issue or PR to attach")),
		mcp.WithString("title", mcp.Description("Draft item title (required unless contentId is given)")),
		mcp.WithString("body", mcp.Description("Draft body; also written to the body field if one is configured")),
		mcp.WithString("bodyField", mcp.Description("Name of the text field receiving the body (default \"Description\")")),
		mcp.WithString("type", mcp.Description("Option name for the \"Type\" single-select field")),
		mcp.WithString("ready", mcp.Description("Option name for the \"Ready?\" single-select field")),
	), s.handle("create_project_item", s.createProjectItem))

	m.AddTool(mcp.NewTool("convert_project_item_to_issue",
		mcp.WithDescription("Convert a draft project item into a repository issue"),
		mcp.WithString("projectId", mcp.Required(), mcp.Description("Project node ID")),
		mcp.WithString("itemId", mcp.Required(), mcp.Description("Project item node ID (must be a draft)")),
		mcp.WithString("owner", mcp.Required(), mcp.Description("Target repository owner login")),
		mcp.WithString("repo", mcp.Required(), mcp.Description("Target repository name")),
	), s.handle("convert_project_item_to_issue", s.convertProjectItemToIssue))
}

func (s *Server) listProjectItems(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	projectID, err := requireString(args, "projectId")
	if err != nil {
		return nil, err
	}

	items, err := s.gh.ListItems(ctx, projectID)
	if err != nil {
		return nil, err
	}

	return struct {
		Items []domain.Item `json:"items"`
	}{items}, nil
}

// createProjectItem creates or attaches an item, then configures its
// fields fail-fast: the first unresolvable field or option aborts the
// remaining sets. The created item is never rolled back; the error names
// the item so the caller can follow up.
func (s *Server) createProjectItem(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	projectID, err := requireString(args, "projectId")
	if err != nil {
		return nil, err
	}
	contentID, hasContent, err := optionalString(args, "contentId")
	if err != nil {
		return nil, err
	}
	title, hasTitle, err := optionalString(args, "title")
	if err != nil {
		return nil, err
	}
	body, _, err := optionalString(args, "body")
	if err != nil {
		return nil, err
	}
	bodyField, hasBodyField, err := optionalString(args, "bodyField")
	if err != nil {
		return nil, err
	}
	if !hasBodyField {
		bodyField = s.bodyField
	}
	itemType, hasType, err := optionalString(args, "type")
	if err != nil {
		return nil, err
	}
	ready, hasReady, err := optionalString(args, "ready")
	if err != nil {
		return nil, err
	}

	if !hasContent && (!hasTitle || title == "") {
		return nil, gh.InvalidParamsf("either contentId or title must be provided")
	}

	var itemID string
	if hasContent {
		itemID, err = s.gh.AddItemToProject(ctx, projectID, contentID)
	} else {
		itemID, err = s.gh.AddDraftItem(ctx, projectID, title, body)
	}
	if err != nil {
		return nil, err
	}

	if hasReady || hasType || body != "" {
		// Snapshot the field schema once for all three sets.
		fields, err := s.gh.ResolveFields(ctx, projectID)
		if err != nil {
			return nil, fmt.Errorf("item %q was created but its fields were not configured: %w", itemID, err)
		}

		if hasReady {
			if err := s.setSingleSelect(ctx, fields, projectID, itemID, readyFieldName, ready); err != nil {
				return nil, fmt.Errorf("item %q was created: %w", itemID, err)
			}
		}
		if hasType {
			if err := s.setSingleSelect(ctx, fields, projectID, itemID, typeFieldName, itemType); err != nil {
				return nil, fmt.Errorf("item %q was created: %w", itemID, err)
			}
		}
		if body != "" {
			if err := s.setText(ctx, fields, projectID, itemID, bodyField, body); err != nil {
				return nil, fmt.Errorf("item %q was created: %w", itemID, err)
			}
		}
	}

	return struct {
		ItemID    string `json:"itemId"`
		ProjectID string `json:"projectId"`
	}{itemID, projectID}, nil
}

func (s *Server) setSingleSelect(ctx context.Context, fields *gh.FieldSet, projectID, itemID, fieldName, optionName string) error {
	field, ok := fields.Field(fieldName)
	if !ok {
		return gh.InvalidParamsf("field %q not found on project %q", fieldName, projectID)
	}

	option, ok, err := fields.SingleSelectOption(fieldName, optionName)
	if err != nil {
		return err
	}
	if !ok {
		return gh.InvalidParamsf("option %q not found on field %q", optionName, fieldName)
	}

	return s.gh.SetItemOption(ctx, projectID, itemID, field.FieldID(), option.ID)
}

func (s *Server) setText(ctx context.Context, fields *gh.FieldSet, projectID, itemID, fieldName, text string) error {
	field, ok := fields.Field(fieldName)
	if !ok {
		return gh.InvalidParamsf("field %q not found on project %q", fieldName, projectID)
	}

	tf, ok := field.(domain.TextField)
	if !ok {
		return gh.InvalidParamsf("field %q is a %s field, not a text field", fieldName, field.DataType())
	}

	return s.gh.SetItemText(ctx, projectID, itemID, tf.ID, text)
}

func (s *Server) convertProjectItemToIssue(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	projectID, err := requireString(args, "projectId")
	if err != nil {
		return nil, err
	}
	itemID, err := requireString(args, "itemId")
	if err != nil {
		return nil, err
	}
	owner, err := requireString(args, "owner")
	if err != nil {
		return nil, err
	}
	repo, err := requireString(args, "repo")
	if err != nil {
		return nil, err
	}

	repoID, err := s.gh.RepositoryID(ctx, owner, repo)
	if err != nil {
		return nil, err
	}

	s.log.Info("converting draft item", "project", projectID, "item", itemID, "repo", owner+"/"+repo)

	return s.gh.ConvertDraftToIssue(ctx, itemID, repoID)
}
