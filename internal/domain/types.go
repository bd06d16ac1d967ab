// Package domain defines the normalized domain types for GitHub Projects v2.
// These types represent the core concepts independent of the GitHub GraphQL API structure.
package domain

// Project represents a GitHub Project v2 instance.
type Project struct {
	ID     string  `json:"id"`     // GitHub Project node ID
	Number int     `json:"number"` // Project number within the owner's namespace
	Title  string  `json:"title"`  // Project title
	URL    string  `json:"url"`    // Project URL
	Owner  string  `json:"owner,omitempty"`
	Fields []Field `json:"fields,omitempty"`
}

// Field is the closed set of project field kinds. Each concrete type
// carries exactly the data its kind supports, so a single-select lookup
// against a text field is a type-switch branch rather than a runtime probe.
type Field interface {
	FieldID() string
	FieldName() string
	DataType() string
}

// TextField is a free-form text field.
type TextField struct {
	ID   string
	Name string
}

// NumberField is a numeric field.
type NumberField struct {
	ID   string
	Name string
}

// DateField is a date field.
type DateField struct {
	ID   string
	Name string
}

// IterationField is a sprint/iteration field. No tool writes iteration
// values; the type exists so schema fetches can represent them.
type IterationField struct {
	ID   string
	Name string
}

// SingleSelectField is a field whose value must be one of a fixed option set.
type SingleSelectField struct {
	ID      string
	Name    string
	Options []Option
}

func (f TextField) FieldID() string   { return f.ID }
func (f TextField) FieldName() string { return f.Name }
func (f TextField) DataType() string  { return FieldTypeText }

func (f NumberField) FieldID() string   { return f.ID }
func (f NumberField) FieldName() string { return f.Name }
func (f NumberField) DataType() string  { return FieldTypeNumber }

func (f DateField) FieldID() string   { return f.ID }
func (f DateField) FieldName() string { return f.Name }
func (f DateField) DataType() string  { return FieldTypeDate }

func (f IterationField) FieldID() string   { return f.ID }
func (f IterationField) FieldName() string { return f.Name }
func (f IterationField) DataType() string  { return FieldTypeIteration }

func (f SingleSelectField) FieldID() string   { return f.ID }
func (f SingleSelectField) FieldName() string { return f.Name }
func (f SingleSelectField) DataType() string  { return FieldTypeSingleSelect }

// Option represents a single option value for a SINGLE_SELECT field.
type Option struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Color       string `json:"color,omitempty"`
	Description string `json:"description,omitempty"`
}

// OptionInput is the caller-supplied shape for creating or replacing
// single-select options. All three members are mandatory on input.
type OptionInput struct {
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

// Item represents a project item (Issue, PR, or Draft) in a normalized format.
type Item struct {
	ID          string       `json:"id"`          // ProjectV2Item node ID
	ContentType string       `json:"contentType"` // Issue, PullRequest, DraftIssue, or Private
	Title       string       `json:"title"`
	Body        string       `json:"body,omitempty"`
	URL         string       `json:"url,omitempty"`
	Number      int          `json:"number,omitempty"`
	State       string       `json:"state,omitempty"`
	Assignees   []string     `json:"assignees,omitempty"`
	FieldValues []FieldValue `json:"fieldValues,omitempty"`
}

// FieldValue is one typed value held by an Item, discriminated by the
// owning field's data type.
type FieldValue struct {
	Field string `json:"field"` // field name
	Kind  string `json:"kind"`  // TEXT, DATE, or SINGLE_SELECT
	Value string `json:"value"` // text, ISO date, or selected option name
}

// Issue represents a repository issue.
type Issue struct {
	ID     string   `json:"id"` // Issue node ID
	Number int      `json:"number"`
	Title  string   `json:"title"`
	Body   string   `json:"body,omitempty"`
	State  string   `json:"state,omitempty"` // OPEN or CLOSED
	URL    string   `json:"url,omitempty"`
	Labels []string `json:"labels,omitempty"`
}

// FieldType constants matching the GraphQL ProjectV2CustomFieldType enum.
const (
	FieldTypeSingleSelect = "SINGLE_SELECT"
	FieldTypeText         = "TEXT"
	FieldTypeNumber       = "NUMBER"
	FieldTypeDate         = "DATE"
	FieldTypeIteration    = "ITERATION"
)

// ContentType constants for item content.
const (
	ContentTypeIssue       = "Issue"
	ContentTypePullRequest = "PullRequest"
	ContentTypeDraftIssue  = "DraftIssue"
	ContentTypePrivate     = "Private"
)

// IssueState constants matching the GraphQL IssueState enum.
const (
	IssueStateOpen   = "OPEN"
	IssueStateClosed = "CLOSED"
)
