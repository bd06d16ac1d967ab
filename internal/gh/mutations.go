package gh

import (
	"context"

	"github.com/machinebox/graphql"
	"golang.org/x/sync/errgroup"

	"github.com/mdlayton/ghpmcp/internal/domain"
)

// CreateProject creates a project owned by the node ownerID.
func (c *Client) CreateProject(ctx context.Context, ownerID, title string) (*domain.Project, error) {
	req := graphql.NewRequest(`
		mutation($ownerId: ID!, $title: String!) {
			createProjectV2(input: {ownerId: $ownerId, title: $title}) {
				projectV2 {
					id
					number
					title
					url
				}
			}
		}
	`)
	req.Var("ownerId", ownerID)
	req.Var("title", title)

	var resp struct {
		CreateProjectV2 struct {
			ProjectV2 struct {
				ID     string `json:"id"`
				Number int    `json:"number"`
				Title  string `json:"title"`
				URL    string `json:"url"`
			} `json:"projectV2"`
		} `json:"createProjectV2"`
	}

	if err := c.run(ctx, req, &resp); err != nil {
		return nil, Upstreamf(err, "failed to create project %q", title)
	}

	p := resp.CreateProjectV2.ProjectV2
	return &domain.Project{ID: p.ID, Number: p.Number, Title: p.Title, URL: p.URL}, nil
}

// CreateField creates a field of the given data type on a project.
// options applies to SINGLE_SELECT fields only.
func (c *Client) CreateField(ctx context.Context, projectID, name, dataType string, options []domain.OptionInput) (domain.Field, error) {
	req := graphql.NewRequest(`
		mutation($projectId: ID!, $name: String!, $dataType: ProjectV2CustomFieldType!, $options: [ProjectV2SingleSelectFieldOptionInput!]) {
			createProjectV2Field(input: {
				projectId: $projectId
				name: $name
				dataType: $dataType
				singleSelectOptions: $options
			}) {
				projectV2Field {` + fieldFragments + `}
			}
		}
	`)
	req.Var("projectId", projectID)
	req.Var("name", name)
	req.Var("dataType", dataType)
	if len(options) > 0 {
		req.Var("options", options)
	} else {
		req.Var("options", nil)
	}

	var resp struct {
		CreateProjectV2Field struct {
			ProjectV2Field fieldNode `json:"projectV2Field"`
		} `json:"createProjectV2Field"`
	}

	if err := c.run(ctx, req, &resp); err != nil {
		return nil, Upstreamf(err, "failed to create field %q on project %q", name, projectID)
	}

	field, ok := resp.CreateProjectV2Field.ProjectV2Field.toField()
	if !ok {
		return nil, Internalf("field %q created with unexpected data type %q",
			name, resp.CreateProjectV2Field.ProjectV2Field.DataType)
	}

	return field, nil
}

// UpdateField renames a field and/or replaces its full option set.
// A non-nil options slice overwrites the existing options rather than
// merging; a nil name or options leaves that aspect untouched.
func (c *Client) UpdateField(ctx context.Context, fieldID string, name *string, options []domain.OptionInput) (domain.Field, error) {
	req := graphql.NewRequest(`
		mutation($fieldId: ID!, $name: String, $options: [ProjectV2SingleSelectFieldOptionInput!]) {
			updateProjectV2Field(input: {
				fieldId: $fieldId
				name: $name
				singleSelectOptions: $options
			}) {
				projectV2Field {` + fieldFragments + `}
			}
		}
	`)
	req.Var("fieldId", fieldID)
	req.Var("name", name)
	if options != nil {
		req.Var("options", options)
	} else {
		req.Var("options", nil)
	}

	var resp struct {
		UpdateProjectV2Field struct {
			ProjectV2Field fieldNode `json:"projectV2Field"`
		} `json:"updateProjectV2Field"`
	}

	if err := c.run(ctx, req, &resp); err != nil {
		return nil, Upstreamf(err, "failed to update field %q", fieldID)
	}

	field, ok := resp.UpdateProjectV2Field.ProjectV2Field.toField()
	if !ok {
		return nil, Internalf("field %q updated with unexpected data type %q",
			fieldID, resp.UpdateProjectV2Field.ProjectV2Field.DataType)
	}

	return field, nil
}

// CreateLabel creates a repository label with the given hex color.
func (c *Client) CreateLabel(ctx context.Context, repoID, name, color string) (string, error) {
	req := graphql.NewRequest(`
		mutation($repositoryId: ID!, $name: String!, $color: String!) {
			createLabel(input: {repositoryId: $repositoryId, name: $name, color: $color}) {
				label {
					id
				}
			}
		}
	`)
	req.Var("repositoryId", repoID)
	req.Var("name", name)
	req.Var("color", color)

	var resp struct {
		CreateLabel struct {
			Label struct {
				ID string `json:"id"`
			} `json:"label"`
		} `json:"createLabel"`
	}

	if err := c.run(ctx, req, &resp); err != nil {
		return "", Upstreamf(err, "failed to create label %q", name)
	}

	return resp.CreateLabel.Label.ID, nil
}

// EnsureLabels resolves each label name to its node ID, creating missing
// labels on demand with the client's default color. Lookups run
// concurrently; one hard failure fails the batch. Returned IDs keep the
// order of names.
func (c *Client) EnsureLabels(ctx context.Context, owner, repo, repoID string, names []string) ([]string, error) {
	ids := make([]string, len(names))

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			id, ok, err := c.LabelID(gctx, owner, repo, name)
			if err != nil {
				return err
			}
			if !ok {
				c.log.Info("creating missing label", "label", name, "repo", owner+"/"+repo)
				id, err = c.CreateLabel(gctx, repoID, name, c.labelColor)
				if err != nil {
					return err
				}
			}
			ids[i] = id
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return ids, nil
}

// CreateIssue creates an issue on the repository node repoID with the
// given resolved label IDs.
func (c *Client) CreateIssue(ctx context.Context, repoID, title, body string, labelIDs []string) (*domain.Issue, error) {
	req := graphql.NewRequest(`
		mutation($repositoryId: ID!, $title: String!, $body: String, $labelIds: [ID!]) {
			createIssue(input: {
				repositoryId: $repositoryId
				title: $title
				body: $body
				labelIds: $labelIds
			}) {
				issue {
					id
					number
					title
					url
				}
			}
		}
	`)
	req.Var("repositoryId", repoID)
	req.Var("title", title)
	if body != "" {
		req.Var("body", body)
	} else {
		req.Var("body", nil)
	}
	if len(labelIDs) > 0 {
		req.Var("labelIds", labelIDs)
	} else {
		req.Var("labelIds", nil)
	}

	var resp struct {
		CreateIssue struct {
			Issue struct {
				ID     string `json:"id"`
				Number int    `json:"number"`
				Title  string `json:"title"`
				URL    string `json:"url"`
			} `json:"issue"`
		} `json:"createIssue"`
	}

	if err := c.run(ctx, req, &resp); err != nil {
		return nil, Upstreamf(err, "failed to create issue %q", title)
	}

	n := resp.CreateIssue.Issue
	return &domain.Issue{ID: n.ID, Number: n.Number, Title: n.Title, URL: n.URL}, nil
}

// UpdateIssue updates title/body/state of the issue node issueID.
// Nil members are left untouched (partial update).
func (c *Client) UpdateIssue(ctx context.Context, issueID string, title, body, state *string) (*domain.Issue, error) {
	req := graphql.NewRequest(`
		mutation($id: ID!, $title: String, $body: String, $state: IssueState) {
			updateIssue(input: {id: $id, title: $title, body: $body, state: $state}) {
				issue {
					id
					number
					title
					body
					state
					url
				}
			}
		}
	`)
	req.Var("id", issueID)
	req.Var("title", title)
	req.Var("body", body)
	req.Var("state", state)

	var resp struct {
		UpdateIssue struct {
			Issue struct {
				ID     string `json:"id"`
				Number int    `json:"number"`
				Title  string `json:"title"`
				Body   string `json:"body"`
				State  string `json:"state"`
				URL    string `json:"url"`
			} `json:"issue"`
		} `json:"updateIssue"`
	}

	if err := c.run(ctx, req, &resp); err != nil {
		return nil, Upstreamf(err, "failed to update issue %q", issueID)
	}

	n := resp.UpdateIssue.Issue
	return &domain.Issue{ID: n.ID, Number: n.Number, Title: n.Title, Body: n.Body, State: n.State, URL: n.URL}, nil
}

// AddItemToProject attaches an existing issue or PR to a project and
// returns the new project item's ID.
func (c *Client) AddItemToProject(ctx context.Context, projectID, contentID string) (string, error) {
	req := graphql.NewRequest(`
		mutation($projectId: ID!, $contentId: ID!) {
			addProjectV2ItemById(input: {projectId: $projectId, contentId: $contentId}) {
				item {
					id
				}
			}
		}
	`)
	req.Var("projectId", projectID)
	req.Var("contentId", contentID)

	var resp struct {
		AddProjectV2ItemByID struct {
			Item struct {
				ID string `json:"id"`
			} `json:"item"`
		} `json:"addProjectV2ItemById"`
	}

	if err := c.run(ctx, req, &resp); err != nil {
		return "", Upstreamf(err, "failed to add content %q to project %q", contentID, projectID)
	}

	return resp.AddProjectV2ItemByID.Item.ID, nil
}

// AddDraftItem creates a draft item on a project from a title and
// optional body and returns its ID.
func (c *Client) AddDraftItem(ctx context.Context, projectID, title, body string) (string, error) {
	req := graphql.NewRequest(`
		mutation($projectId: ID!, $title: String!, $body: String) {
			addProjectV2DraftIssue(input: {projectId: $projectId, title: $title, body: $body}) {
				projectItem {
					id
				}
			}
		}
	`)
	req.Var("projectId", projectID)
	req.Var("title", title)
	if body != "" {
		req.Var("body", body)
	} else {
		req.Var("body", nil)
	}

	var resp struct {
		AddProjectV2DraftIssue struct {
			ProjectItem struct {
				ID string `json:"id"`
			} `json:"projectItem"`
		} `json:"addProjectV2DraftIssue"`
	}

	if err := c.run(ctx, req, &resp); err != nil {
		return "", Upstreamf(err, "failed to create draft item on project %q", projectID)
	}

	return resp.AddProjectV2DraftIssue.ProjectItem.ID, nil
}

// SetItemText sets a TEXT field value on a project item.
func (c *Client) SetItemText(ctx context.Context, projectID, itemID, fieldID, text string) error {
	return c.setItemValue(ctx, projectID, itemID, fieldID, map[string]interface{}{"text": text})
}

// SetItemOption sets a SINGLE_SELECT field value on a project item.
func (c *Client) SetItemOption(ctx context.Context, projectID, itemID, fieldID, optionID string) error {
	return c.setItemValue(ctx, projectID, itemID, fieldID, map[string]interface{}{"singleSelectOptionId": optionID})
}

func (c *Client) setItemValue(ctx context.Context, projectID, itemID, fieldID string, value map[string]interface{}) error {
	req := graphql.NewRequest(`
		mutation($projectId: ID!, $itemId: ID!, $fieldId: ID!, $value: ProjectV2FieldValue!) {
			updateProjectV2ItemFieldValue(
				input: {
					projectId: $projectId
					itemId: $itemId
					fieldId: $fieldId
					value: $value
				}
			) {
				projectV2Item {
					id
				}
			}
		}
	`)
	req.Var("projectId", projectID)
	req.Var("itemId", itemID)
	req.Var("fieldId", fieldID)
	req.Var("value", value)

	var resp struct {
		UpdateProjectV2ItemFieldValue struct {
			ProjectV2Item struct {
				ID string `json:"id"`
			} `json:"projectV2Item"`
		} `json:"updateProjectV2ItemFieldValue"`
	}

	if err := c.run(ctx, req, &resp); err != nil {
		return Upstreamf(err, "failed to update field %q on item %q", fieldID, itemID)
	}

	return nil
}

// ConvertDraftToIssue converts a draft project item into a repository
// issue. The remote API rejects the conversion for non-draft items; that
// rejection surfaces as an upstream error.
func (c *Client) ConvertDraftToIssue(ctx context.Context, itemID, repoID string) (*domain.Issue, error) {
	req := graphql.NewRequest(`
		mutation($itemId: ID!, $repositoryId: ID!) {
			convertProjectV2DraftIssueItemToIssue(input: {itemId: $itemId, repositoryId: $repositoryId}) {
				item {
					content {
						... on Issue {
							id
							number
							title
							url
						}
					}
				}
			}
		}
	`)
	req.Var("itemId", itemID)
	req.Var("repositoryId", repoID)

	var resp struct {
		ConvertProjectV2DraftIssueItemToIssue struct {
			Item struct {
				Content struct {
					ID     string `json:"id"`
					Number int    `json:"number"`
					Title  string `json:"title"`
					URL    string `json:"url"`
				} `json:"content"`
			} `json:"item"`
		} `json:"convertProjectV2DraftIssueItemToIssue"`
	}

	if err := c.run(ctx, req, &resp); err != nil {
		return nil, Upstreamf(err, "failed to convert item %q to an issue", itemID)
	}

	n := resp.ConvertProjectV2DraftIssueItemToIssue.Item.Content
	return &domain.Issue{ID: n.ID, Number: n.Number, Title: n.Title, URL: n.URL}, nil
}
