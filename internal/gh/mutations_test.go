package gh

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdlayton/ghpmcp/internal/domain"
)

func TestCreateProject(t *testing.T) {
	fake := newFakeUpstream(t, func(call gqlCall) string {
		assert.Equal(t, "O_123", call.Variables["ownerId"])
		assert.Equal(t, "Roadmap", call.Variables["title"])
		return dataBody(t, map[string]interface{}{
			"createProjectV2": map[string]interface{}{
				"projectV2": map[string]interface{}{
					"id":     "PVT_1",
					"number": 3,
					"title":  "Roadmap",
					"url":    "https://github.com/orgs/my-org/projects/3",
				},
			},
		})
	})

	project, err := fake.client().CreateProject(context.Background(), "O_123", "Roadmap")
	require.NoError(t, err)
	assert.Equal(t, "PVT_1", project.ID)
	assert.Equal(t, 3, project.Number)
	assert.Equal(t, "https://github.com/orgs/my-org/projects/3", project.URL)
}

func TestCreateField_SingleSelect(t *testing.T) {
	fake := newFakeUpstream(t, func(call gqlCall) string {
		options, _ := call.Variables["options"].([]interface{})
		if assert.Len(t, options, 2) {
			first := options[0].(map[string]interface{})
			assert.Equal(t, "Yes", first["name"])
			assert.Equal(t, "GREEN", first["color"])
			assert.Equal(t, "Ready to pick up", first["description"])
		}

		return dataBody(t, map[string]interface{}{
			"createProjectV2Field": map[string]interface{}{
				"projectV2Field": map[string]interface{}{
					"id": "F_9", "name": "Ready?", "dataType": "SINGLE_SELECT",
					"options": []interface{}{
						map[string]interface{}{"id": "OPT_1", "name": "Yes"},
						map[string]interface{}{"id": "OPT_2", "name": "No"},
					},
				},
			},
		})
	})

	field, err := fake.client().CreateField(context.Background(), "PVT_1", "Ready?", "SINGLE_SELECT", []domain.OptionInput{
		{Name: "Yes", Color: "GREEN", Description: "Ready to pick up"},
		{Name: "No", Color: "RED", Description: "Not ready"},
	})
	require.NoError(t, err)

	ss, ok := field.(domain.SingleSelectField)
	require.True(t, ok)
	assert.Equal(t, "F_9", ss.ID)
	assert.Len(t, ss.Options, 2)
}

// Supplying singleSelectOptions replaces the prior option set wholesale:
// the mutation carries the complete new list, nothing merged.
func TestUpdateField_ReplacesOptionSet(t *testing.T) {
	fake := newFakeUpstream(t, func(call gqlCall) string {
		return dataBody(t, map[string]interface{}{
			"updateProjectV2Field": map[string]interface{}{
				"projectV2Field": map[string]interface{}{
					"id": "F_9", "name": "Ready?", "dataType": "SINGLE_SELECT",
					"options": []interface{}{
						map[string]interface{}{"id": "OPT_3", "name": "Blocked"},
					},
				},
			},
		})
	})

	field, err := fake.client().UpdateField(context.Background(), "F_9", nil, []domain.OptionInput{
		{Name: "Blocked", Color: "RED", Description: "Waiting on something"},
	})
	require.NoError(t, err)

	calls := fake.callsMatching("updateProjectV2Field")
	require.Len(t, calls, 1)
	options := calls[0].Variables["options"].([]interface{})
	require.Len(t, options, 1)
	assert.Equal(t, "Blocked", options[0].(map[string]interface{})["name"])
	assert.Nil(t, calls[0].Variables["name"])

	ss := field.(domain.SingleSelectField)
	require.Len(t, ss.Options, 1)
	assert.Equal(t, "Blocked", ss.Options[0].Name)
}

// One existing and one missing label: both resolve to IDs and exactly
// one createLabel mutation goes out, for the missing one.
func TestEnsureLabels_CreatesMissingOnDemand(t *testing.T) {
	fake := newFakeUpstream(t, func(call gqlCall) string {
		switch {
		case strings.Contains(call.Query, "createLabel"):
			assert.Equal(t, "new-label-x", call.Variables["name"])
			assert.Equal(t, DefaultLabelColor, call.Variables["color"])
			return dataBody(t, map[string]interface{}{
				"createLabel": map[string]interface{}{
					"label": map[string]string{"id": "L_new"},
				},
			})
		case call.Variables["name"] == "bug":
			return dataBody(t, map[string]interface{}{
				"repository": map[string]interface{}{
					"label": map[string]string{"id": "L_bug"},
				},
			})
		default:
			return dataBody(t, map[string]interface{}{
				"repository": map[string]interface{}{"label": nil},
			})
		}
	})

	ids, err := fake.client().EnsureLabels(context.Background(), "me", "repo", "R_1", []string{"bug", "new-label-x"})
	require.NoError(t, err)

	assert.Equal(t, []string{"L_bug", "L_new"}, ids)
	assert.Len(t, fake.callsMatching("createLabel"), 1)
	assert.Len(t, fake.callsMatching("label(name:"), 2)
}

func TestCreateIssue(t *testing.T) {
	fake := newFakeUpstream(t, func(call gqlCall) string {
		assert.Equal(t, "R_1", call.Variables["repositoryId"])
		assert.Equal(t, []interface{}{"L_bug"}, call.Variables["labelIds"])
		return dataBody(t, map[string]interface{}{
			"createIssue": map[string]interface{}{
				"issue": map[string]interface{}{
					"id": "I_1", "number": 5, "title": "New bug",
					"url": "https://github.com/me/repo/issues/5",
				},
			},
		})
	})

	issue, err := fake.client().CreateIssue(context.Background(), "R_1", "New bug", "details", []string{"L_bug"})
	require.NoError(t, err)
	assert.Equal(t, "I_1", issue.ID)
	assert.Equal(t, 5, issue.Number)
}

// Omitted members go out as nulls, which the remote API treats as
// "leave untouched".
func TestUpdateIssue_PartialUpdate(t *testing.T) {
	fake := newFakeUpstream(t, func(call gqlCall) string {
		assert.Equal(t, "I_1", call.Variables["id"])
		assert.Equal(t, "CLOSED", call.Variables["state"])
		assert.Nil(t, call.Variables["title"])
		assert.Nil(t, call.Variables["body"])
		return dataBody(t, map[string]interface{}{
			"updateIssue": map[string]interface{}{
				"issue": map[string]interface{}{
					"id": "I_1", "number": 5, "title": "New bug",
					"body": "details", "state": "CLOSED",
					"url": "https://github.com/me/repo/issues/5",
				},
			},
		})
	})

	state := "CLOSED"
	issue, err := fake.client().UpdateIssue(context.Background(), "I_1", nil, nil, &state)
	require.NoError(t, err)
	assert.Equal(t, "CLOSED", issue.State)
	assert.Equal(t, "New bug", issue.Title)
}

func TestAddDraftItem(t *testing.T) {
	fake := newFakeUpstream(t, func(call gqlCall) string {
		assert.Equal(t, "Sketch", call.Variables["title"])
		assert.Nil(t, call.Variables["body"])
		return dataBody(t, map[string]interface{}{
			"addProjectV2DraftIssue": map[string]interface{}{
				"projectItem": map[string]string{"id": "PVTI_1"},
			},
		})
	})

	id, err := fake.client().AddDraftItem(context.Background(), "PVT_1", "Sketch", "")
	require.NoError(t, err)
	assert.Equal(t, "PVTI_1", id)
}

func TestSetItemOption(t *testing.T) {
	fake := newFakeUpstream(t, func(call gqlCall) string {
		value := call.Variables["value"].(map[string]interface{})
		assert.Equal(t, "OPT_1", value["singleSelectOptionId"])
		return dataBody(t, map[string]interface{}{
			"updateProjectV2ItemFieldValue": map[string]interface{}{
				"projectV2Item": map[string]string{"id": "PVTI_1"},
			},
		})
	})

	err := fake.client().SetItemOption(context.Background(), "PVT_1", "PVTI_1", "F_9", "OPT_1")
	require.NoError(t, err)
}

// The remote API rejects converting a non-draft item; the rejection
// surfaces as an upstream error carrying the API's message.
func TestConvertDraftToIssue_NonDraftRejected(t *testing.T) {
	fake := newFakeUpstream(t, func(call gqlCall) string {
		return errorBody("The item is not a draft issue")
	})

	_, err := fake.client().ConvertDraftToIssue(context.Background(), "PVTI_1", "R_1")
	require.Error(t, err)
	assert.Equal(t, KindUpstream, KindOf(err))
	assert.Contains(t, err.Error(), "not a draft issue")
}

func TestConvertDraftToIssue(t *testing.T) {
	fake := newFakeUpstream(t, func(call gqlCall) string {
		assert.Equal(t, "PVTI_1", call.Variables["itemId"])
		assert.Equal(t, "R_1", call.Variables["repositoryId"])
		return dataBody(t, map[string]interface{}{
			"convertProjectV2DraftIssueItemToIssue": map[string]interface{}{
				"item": map[string]interface{}{
					"content": map[string]interface{}{
						"id": "I_7", "number": 7, "title": "Sketch",
						"url": "https://github.com/me/repo/issues/7",
					},
				},
			},
		})
	})

	issue, err := fake.client().ConvertDraftToIssue(context.Background(), "PVTI_1", "R_1")
	require.NoError(t, err)
	assert.Equal(t, "I_7", issue.ID)
	assert.Equal(t, 7, issue.Number)
}
