package gh

import (
	"context"

	"github.com/machinebox/graphql"

	"github.com/mdlayton/ghpmcp/internal/domain"
)

// fieldFragments selects project fields with type-discriminated
// fragments. ProjectV2Field covers text/number/date; single-select and
// iteration fields are separate GraphQL types.
const fieldFragments = `
	... on ProjectV2Field {
		id
		name
		dataType
	}
	... on ProjectV2SingleSelectField {
		id
		name
		dataType
		options {
			id
			name
			color
			description
		}
	}
	... on ProjectV2IterationField {
		id
		name
		dataType
	}
`

// fieldNode is the wire shape shared by all field fragments.
type fieldNode struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	DataType string `json:"dataType"`
	Options  []struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Color       string `json:"color"`
		Description string `json:"description"`
	} `json:"options"`
}

// toField converts a wire field node into the domain union. Unknown data
// types map to ok=false and are skipped by callers.
func (n fieldNode) toField() (domain.Field, bool) {
	switch n.DataType {
	case domain.FieldTypeText:
		return domain.TextField{ID: n.ID, Name: n.Name}, true
	case domain.FieldTypeNumber:
		return domain.NumberField{ID: n.ID, Name: n.Name}, true
	case domain.FieldTypeDate:
		return domain.DateField{ID: n.ID, Name: n.Name}, true
	case domain.FieldTypeIteration:
		return domain.IterationField{ID: n.ID, Name: n.Name}, true
	case domain.FieldTypeSingleSelect:
		f := domain.SingleSelectField{ID: n.ID, Name: n.Name}
		f.Options = make([]domain.Option, 0, len(n.Options))
		for _, opt := range n.Options {
			f.Options = append(f.Options, domain.Option{
				ID:          opt.ID,
				Name:        opt.Name,
				Color:       opt.Color,
				Description: opt.Description,
			})
		}
		return f, true
	default:
		return nil, false
	}
}

// ResolveOwnerID resolves a user or organization login to its node ID.
// repositoryOwner covers both, so a single lookup never produces a
// GraphQL NOT_FOUND error for the non-matching probe.
func (c *Client) ResolveOwnerID(ctx context.Context, login string) (string, error) {
	req := graphql.NewRequest(`
		query($login: String!) {
			repositoryOwner(login: $login) {
				id
			}
		}
	`)
	req.Var("login", login)

	var resp struct {
		RepositoryOwner *struct {
			ID string `json:"id"`
		} `json:"repositoryOwner"`
	}

	if err := c.run(ctx, req, &resp); err != nil {
		return "", Upstreamf(err, "failed to resolve owner %q", login)
	}

	if resp.RepositoryOwner == nil || resp.RepositoryOwner.ID == "" {
		return "", NotFoundf("owner %q not found (neither organization nor user)", login)
	}

	return resp.RepositoryOwner.ID, nil
}

// RepositoryID resolves owner/repo to the repository node ID.
func (c *Client) RepositoryID(ctx context.Context, owner, repo string) (string, error) {
	req := graphql.NewRequest(`
		query($owner: String!, $repo: String!) {
			repository(owner: $owner, name: $repo) {
				id
			}
		}
	`)
	req.Var("owner", owner)
	req.Var("repo", repo)

	var resp struct {
		Repository *struct {
			ID string `json:"id"`
		} `json:"repository"`
	}

	if err := c.run(ctx, req, &resp); err != nil {
		return "", Upstreamf(err, "failed to resolve repository %s/%s", owner, repo)
	}

	if resp.Repository == nil || resp.Repository.ID == "" {
		return "", NotFoundf("repository %s/%s not found", owner, repo)
	}

	return resp.Repository.ID, nil
}

// GetProject fetches a project by owner login and number, including up
// to its first 20 fields, in one round trip. The inline fragments on
// User and Organization cover both owner kinds.
func (c *Client) GetProject(ctx context.Context, owner string, number int) (*domain.Project, error) {
	req := graphql.NewRequest(`
		query($login: String!, $number: Int!) {
			repositoryOwner(login: $login) {
				... on User {
					projectV2(number: $number) {
						id
						number
						title
						url
						fields(first: 20) {
							nodes {` + fieldFragments + `}
						}
					}
				}
				... on Organization {
					projectV2(number: $number) {
						id
						number
						title
						url
						fields(first: 20) {
							nodes {` + fieldFragments + `}
						}
					}
				}
			}
		}
	`)
	req.Var("login", owner)
	req.Var("number", number)

	var resp struct {
		RepositoryOwner *struct {
			ProjectV2 *struct {
				ID     string `json:"id"`
				Number int    `json:"number"`
				Title  string `json:"title"`
				URL    string `json:"url"`
				Fields struct {
					Nodes []fieldNode `json:"nodes"`
				} `json:"fields"`
			} `json:"projectV2"`
		} `json:"repositoryOwner"`
	}

	if err := c.run(ctx, req, &resp); err != nil {
		return nil, Upstreamf(err, "failed to get project %d for %q", number, owner)
	}

	if resp.RepositoryOwner == nil {
		return nil, NotFoundf("owner %q not found (neither organization nor user)", owner)
	}
	if resp.RepositoryOwner.ProjectV2 == nil {
		return nil, NotFoundf("project %d not found for owner %q", number, owner)
	}

	p := resp.RepositoryOwner.ProjectV2
	project := &domain.Project{
		ID:     p.ID,
		Number: p.Number,
		Title:  p.Title,
		URL:    p.URL,
		Owner:  owner,
	}
	for _, node := range p.Fields.Nodes {
		if f, ok := node.toField(); ok {
			project.Fields = append(project.Fields, f)
		}
	}

	return project, nil
}

// GetIssue fetches an issue by owner/repo/number with up to 10 labels.
func (c *Client) GetIssue(ctx context.Context, owner, repo string, number int) (*domain.Issue, error) {
	req := graphql.NewRequest(`
		query($owner: String!, $repo: String!, $number: Int!) {
			repository(owner: $owner, name: $repo) {
				issue(number: $number) {
					id
					number
					title
					body
					state
					url
					labels(first: 10) {
						nodes {
							name
						}
					}
				}
			}
		}
	`)
	req.Var("owner", owner)
	req.Var("repo", repo)
	req.Var("number", number)

	var resp struct {
		Repository *struct {
			Issue *struct {
				ID     string `json:"id"`
				Number int    `json:"number"`
				Title  string `json:"title"`
				Body   string `json:"body"`
				State  string `json:"state"`
				URL    string `json:"url"`
				Labels struct {
					Nodes []struct {
						Name string `json:"name"`
					} `json:"nodes"`
				} `json:"labels"`
			} `json:"issue"`
		} `json:"repository"`
	}

	if err := c.run(ctx, req, &resp); err != nil {
		return nil, Upstreamf(err, "failed to get issue %s/%s#%d", owner, repo, number)
	}

	if resp.Repository == nil {
		return nil, NotFoundf("repository %s/%s not found", owner, repo)
	}
	if resp.Repository.Issue == nil {
		return nil, NotFoundf("issue %s/%s#%d not found", owner, repo, number)
	}

	n := resp.Repository.Issue
	issue := &domain.Issue{
		ID:     n.ID,
		Number: n.Number,
		Title:  n.Title,
		Body:   n.Body,
		State:  n.State,
		URL:    n.URL,
	}
	for _, l := range n.Labels.Nodes {
		issue.Labels = append(issue.Labels, l.Name)
	}

	return issue, nil
}

// LabelID looks up a repository label by name. A missing label is not an
// error; ok reports whether it exists.
func (c *Client) LabelID(ctx context.Context, owner, repo, name string) (string, bool, error) {
	req := graphql.NewRequest(`
		query($owner: String!, $repo: String!, $name: String!) {
			repository(owner: $owner, name: $repo) {
				label(name: $name) {
					id
				}
			}
		}
	`)
	req.Var("owner", owner)
	req.Var("repo", repo)
	req.Var("name", name)

	var resp struct {
		Repository *struct {
			Label *struct {
				ID string `json:"id"`
			} `json:"label"`
		} `json:"repository"`
	}

	if err := c.run(ctx, req, &resp); err != nil {
		return "", false, Upstreamf(err, "failed to look up label %q in %s/%s", name, owner, repo)
	}

	if resp.Repository == nil || resp.Repository.Label == nil {
		return "", false, nil
	}

	return resp.Repository.Label.ID, true, nil
}

// ListItems fetches the first 20 items of a project, each with up to 20
// field values and its underlying content (draft title/body, or issue/PR
// title plus up to 10 assignees).
func (c *Client) ListItems(ctx context.Context, projectID string) ([]domain.Item, error) {
	req := graphql.NewRequest(`
		query($projectId: ID!) {
			node(id: $projectId) {
				... on ProjectV2 {
					items(first: 20) {
						nodes {
							id
							fieldValues(first: 20) {
								nodes {
									... on ProjectV2ItemFieldTextValue {
										text
										field {
											... on ProjectV2FieldCommon {
												name
											}
										}
									}
									... on ProjectV2ItemFieldDateValue {
										date
										field {
											... on ProjectV2FieldCommon {
												name
											}
										}
									}
									... on ProjectV2ItemFieldSingleSelectValue {
										name
										field {
											... on ProjectV2FieldCommon {
												name
											}
										}
									}
								}
							}
							content {
								__typename
								... on DraftIssue {
									title
									body
								}
								... on Issue {
									title
									url
									number
									state
									assignees(first: 10) {
										nodes {
											login
										}
									}
								}
								... on PullRequest {
									title
									url
									number
									state
									assignees(first: 10) {
										nodes {
											login
										}
									}
								}
							}
						}
					}
				}
			}
		}
	`)
	req.Var("projectId", projectID)

	var resp struct {
		Node *struct {
			Items struct {
				Nodes []struct {
					ID          string `json:"id"`
					FieldValues struct {
						Nodes []struct {
							Text  *string `json:"text"`
							Date  *string `json:"date"`
							Name  *string `json:"name"`
							Field *struct {
								Name string `json:"name"`
							} `json:"field"`
						} `json:"nodes"`
					} `json:"fieldValues"`
					Content *struct {
						Typename  string `json:"__typename"`
						Title     string `json:"title"`
						Body      string `json:"body"`
						URL       string `json:"url"`
						Number    int    `json:"number"`
						State     string `json:"state"`
						Assignees *struct {
							Nodes []struct {
								Login string `json:"login"`
							} `json:"nodes"`
						} `json:"assignees"`
					} `json:"content"`
				} `json:"nodes"`
			} `json:"items"`
		} `json:"node"`
	}

	if err := c.run(ctx, req, &resp); err != nil {
		return nil, Upstreamf(err, "failed to list items of project %q", projectID)
	}

	if resp.Node == nil {
		return nil, NotFoundf("project %q not found", projectID)
	}

	items := make([]domain.Item, 0, len(resp.Node.Items.Nodes))
	for _, node := range resp.Node.Items.Nodes {
		item := domain.Item{ID: node.ID}

		for _, fv := range node.FieldValues.Nodes {
			if fv.Field == nil {
				continue
			}
			switch {
			case fv.Text != nil:
				item.FieldValues = append(item.FieldValues, domain.FieldValue{
					Field: fv.Field.Name, Kind: domain.FieldTypeText, Value: *fv.Text,
				})
			case fv.Date != nil:
				item.FieldValues = append(item.FieldValues, domain.FieldValue{
					Field: fv.Field.Name, Kind: domain.FieldTypeDate, Value: *fv.Date,
				})
			case fv.Name != nil:
				item.FieldValues = append(item.FieldValues, domain.FieldValue{
					Field: fv.Field.Name, Kind: domain.FieldTypeSingleSelect, Value: *fv.Name,
				})
			}
		}

		if node.Content == nil {
			// Private or deleted content.
			item.ContentType = domain.ContentTypePrivate
			item.Title = "(private item)"
			items = append(items, item)
			continue
		}

		switch node.Content.Typename {
		case "DraftIssue":
			item.ContentType = domain.ContentTypeDraftIssue
			item.Title = node.Content.Title
			item.Body = node.Content.Body
		case "Issue", "PullRequest":
			item.ContentType = node.Content.Typename
			item.Title = node.Content.Title
			item.URL = node.Content.URL
			item.Number = node.Content.Number
			item.State = node.Content.State
			if node.Content.Assignees != nil {
				for _, a := range node.Content.Assignees.Nodes {
					item.Assignees = append(item.Assignees, a.Login)
				}
			}
		default:
			item.ContentType = domain.ContentTypePrivate
			item.Title = "(unknown item type)"
		}

		items = append(items, item)
	}

	return items, nil
}
