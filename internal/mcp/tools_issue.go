package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mdlayton/ghpmcp/internal/domain"
	"github.com/mdlayton/ghpmcp/internal/gh"
)

func (s *Server) registerIssueTools(m *server.MCPServer) {
	m.AddTool(mcp.NewTool("create_issue",
		mcp.WithDescription("Create a repository issue; missing labels are created on demand"),
		mcp.WithString("owner", mcp.Required(), mcp.Description("Repository owner login")),
		mcp.WithString("repo", mcp.Required(), mcp.Description("Repository name")),
		mcp.WithString("title", mcp.Required(), mcp.Description("Issue title")),
		mcp.WithString("body", mcp.Description("Issue body")),
		mcp.WithArray("labels", mcp.Description("Label names to attach"),
			mcp.Items(map[string]interface{}{"type": "string"})),
	), s.handle("create_issue", s.createIssue))

	m.AddTool(mcp.NewTool("update_issue",
		mcp.WithDescription("Update an issue's title, body, and/or state; omitted fields are untouched"),
		mcp.WithString("owner", mcp.Required(), mcp.Description("Repository owner login")),
		mcp.WithString("repo", mcp.Required(), mcp.Description("Repository name")),
		mcp.WithNumber("number", mcp.Required(), mcp.Description("Issue number")),
		mcp.WithString("title", mcp.Description("New title")),
		mcp.WithString("body", mcp.Description("New body")),
		mcp.WithString("state", mcp.Description("OPEN or CLOSED")),
	), s.handle("update_issue", s.updateIssue))

	m.AddTool(mcp.NewTool("get_issue",
		mcp.WithDescription("Get an issue's title, body, state, url, and labels"),
		mcp.WithString("owner", mcp.Required(), mcp.Description("Repository owner login")),
		mcp.WithString("repo", mcp.Required(), mcp.Description("Repository name")),
		mcp.WithNumber("number", mcp.Required(), mcp.Description("Issue number")),
	), s.handle("get_issue", s.getIssue))
}

func (s *Server) createIssue(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	owner, err := requireString(args, "owner")
	if err != nil {
		return nil, err
	}
	repo, err := requireString(args, "repo")
	if err != nil {
		return nil, err
	}
	title, err := requireString(args, "title")
	if err != nil {
		return nil, err
	}
	body, _, err := optionalString(args, "body")
	if err != nil {
		return nil, err
	}
	labels, err := optionalStringSlice(args, "labels")
	if err != nil {
		return nil, err
	}

	// A failed repository lookup aborts the whole operation with no
	// issue created.
	repoID, err := s.gh.RepositoryID(ctx, owner, repo)
	if err != nil {
		return nil, err
	}

	labelIDs, err := s.gh.EnsureLabels(ctx, owner, repo, repoID, labels)
	if err != nil {
		return nil, err
	}

	issue, err := s.gh.CreateIssue(ctx, repoID, title, body, labelIDs)
	if err != nil {
		return nil, err
	}
	issue.Labels = labels

	return issue, nil
}

func (s *Server) updateIssue(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	owner, err := requireString(args, "owner")
	if err != nil {
		return nil, err
	}
	repo, err := requireString(args, "repo")
	if err != nil {
		return nil, err
	}
	number, err := requireInt(args, "number")
	if err != nil {
		return nil, err
	}

	var title, body, state *string
	if v, ok, err := optionalString(args, "title"); err != nil {
		return nil, err
	} else if ok {
		title = &v
	}
	if v, ok, err := optionalString(args, "body"); err != nil {
		return nil, err
	} else if ok {
		body = &v
	}
	if v, ok, err := optionalString(args, "state"); err != nil {
		return nil, err
	} else if ok {
		if v != domain.IssueStateOpen && v != domain.IssueStateClosed {
			return nil, gh.InvalidParamsf("state %q is not one of OPEN, CLOSED", v)
		}
		state = &v
	}

	if title == nil && body == nil && state == nil {
		return nil, gh.InvalidParamsf("nothing to update: supply title, body, and/or state")
	}

	// Resolve the issue number to its node ID, then mutate by ID.
	issue, err := s.gh.GetIssue(ctx, owner, repo, number)
	if err != nil {
		return nil, err
	}

	return s.gh.UpdateIssue(ctx, issue.ID, title, body, state)
}

func (s *Server) getIssue(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	owner, err := requireString(args, "owner")
	if err != nil {
		return nil, err
	}
	repo, err := requireString(args, "repo")
	if err != nil {
		return nil, err
	}
	number, err := requireInt(args, "number")
	if err != nil {
		return nil, err
	}

	return s.gh.GetIssue(ctx, owner, repo, number)
}
