package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mdlayton/ghpmcp/internal/domain"
	"github.com/mdlayton/ghpmcp/internal/gh"
)

// optionSchema describes the {name,color,description} option objects
// accepted by the field tools. All three members are required.
var optionSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"name":        map[string]interface{}{"type": "string", "description": "Option name"},
		"color":       map[string]interface{}{"type": "string", "description": "Option color (e.g. GREEN, RED)"},
		"description": map[string]interface{}{"type": "string", "description": "Option description"},
	},
	"required": []string{"name", "color", "description"},
}

func (s *Server) registerProjectTools(m *server.MCPServer) {
	m.AddTool(mcp.NewTool("create_project",
		mcp.WithDescription("Create a GitHub Project v2 for a user or organization"),
		mcp.WithString("owner", mcp.Required(), mcp.Description("Owner login (user or organization)")),
		mcp.WithString("title", mcp.Required(), mcp.Description("Project title")),
	), s.handle("create_project", s.createProject))

	m.AddTool(mcp.NewTool("get_project",
		mcp.WithDescription("Get a project by owner and number, including its fields"),
		mcp.WithString("owner", mcp.Required(), mcp.Description("Owner login (user or organization)")),
		mcp.WithNumber("number", mcp.Required(), mcp.Description("Project number")),
	), s.handle("get_project", s.getProject))

	m.AddTool(mcp.NewTool("create_project_field",
		mcp.WithDescription("Create a field on a project"),
		mcp.WithString("projectId", mcp.Required(), mcp.Description("Project node ID")),
		mcp.WithString("name", mcp.Required(), mcp.Description("Field name")),
		mcp.WithString("dataType", mcp.Required(), mcp.Description("TEXT, NUMBER, DATE, or SINGLE_SELECT")),
		mcp.WithArray("options", mcp.Description("Options for SINGLE_SELECT fields"), mcp.Items(optionSchema)),
	), s.handle("create_project_field", s.createProjectField))

	m.AddTool(mcp.NewTool("update_project_v2_field",
		mcp.WithDescription("Rename a field and/or replace its full option set (replacement is destructive)"),
		mcp.WithString("fieldId", mcp.Required(), mcp.Description("Field node ID")),
		mcp.WithString("name", mcp.Description("New field name")),
		mcp.WithArray("singleSelectOptions", mcp.Description("Replacement option set"), mcp.Items(optionSchema)),
	), s.handle("update_project_v2_field", s.updateProjectField))
}

// fieldPayload is the JSON shape of a field in tool results. Building it
// through an exhaustive switch keeps the union's kind discrimination in
// one place.
type fieldPayload struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	DataType string          `json:"dataType"`
	Options  []domain.Option `json:"options,omitempty"`
}

func fieldToPayload(f domain.Field) fieldPayload {
	p := fieldPayload{
		ID:       f.FieldID(),
		Name:     f.FieldName(),
		DataType: f.DataType(),
	}
	if ss, ok := f.(domain.SingleSelectField); ok {
		p.Options = ss.Options
	}
	return p
}

func (s *Server) createProject(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	owner, err := requireString(args, "owner")
	if err != nil {
		return nil, err
	}
	title, err := requireString(args, "title")
	if err != nil {
		return nil, err
	}

	ownerID, err := s.gh.ResolveOwnerID(ctx, owner)
	if err != nil {
		return nil, err
	}

	project, err := s.gh.CreateProject(ctx, ownerID, title)
	if err != nil {
		return nil, err
	}
	project.Owner = owner

	return project, nil
}

func (s *Server) getProject(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	owner, err := requireString(args, "owner")
	if err != nil {
		return nil, err
	}
	number, err := requireInt(args, "number")
	if err != nil {
		return nil, err
	}

	project, err := s.gh.GetProject(ctx, owner, number)
	if err != nil {
		return nil, err
	}

	fields := make([]fieldPayload, 0, len(project.Fields))
	for _, f := range project.Fields {
		fields = append(fields, fieldToPayload(f))
	}

	return struct {
		ID     string         `json:"id"`
		Number int            `json:"number"`
		Title  string         `json:"title"`
		URL    string         `json:"url"`
		Owner  string         `json:"owner"`
		Fields []fieldPayload `json:"fields"`
	}{project.ID, project.Number, project.Title, project.URL, project.Owner, fields}, nil
}

func (s *Server) createProjectField(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	projectID, err := requireString(args, "projectId")
	if err != nil {
		return nil, err
	}
	name, err := requireString(args, "name")
	if err != nil {
		return nil, err
	}
	dataType, err := requireString(args, "dataType")
	if err != nil {
		return nil, err
	}

	switch dataType {
	case domain.FieldTypeText, domain.FieldTypeNumber, domain.FieldTypeDate, domain.FieldTypeSingleSelect:
	default:
		return nil, gh.InvalidParamsf(
			"dataType %q is not one of TEXT, NUMBER, DATE, SINGLE_SELECT", dataType)
	}

	options, err := optionInputs(args, "options")
	if err != nil {
		return nil, err
	}
	if dataType == domain.FieldTypeSingleSelect && len(options) == 0 {
		return nil, gh.InvalidParamsf("a SINGLE_SELECT field requires at least one option")
	}

	field, err := s.gh.CreateField(ctx, projectID, name, dataType, options)
	if err != nil {
		return nil, err
	}

	return fieldToPayload(field), nil
}

func (s *Server) updateProjectField(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	fieldID, err := requireString(args, "fieldId")
	if err != nil {
		return nil, err
	}

	name, hasName, err := optionalString(args, "name")
	if err != nil {
		return nil, err
	}
	options, err := optionInputs(args, "singleSelectOptions")
	if err != nil {
		return nil, err
	}

	if !hasName && options == nil {
		return nil, gh.InvalidParamsf("nothing to update: supply name and/or singleSelectOptions")
	}

	var namePtr *string
	if hasName {
		namePtr = &name
	}

	field, err := s.gh.UpdateField(ctx, fieldID, namePtr, options)
	if err != nil {
		return nil, err
	}

	return fieldToPayload(field), nil
}
