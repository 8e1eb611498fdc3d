package github

import (
	"context"

	"github.com/onurkarakus/nexus"
)

// IssueActions is the issue-tracker capability of a GitHub provider.
// Obtain it from a connection with nexus.As[github.IssueActions](conn).
type IssueActions interface {
	// GetIssues lists issues in the given state. StateAll lists both.
	GetIssues(ctx context.Context, state IssueState) ([]Issue, error)

	// GetIssue returns a single issue by number.
	GetIssue(ctx context.Context, number int) (*Issue, error)

	// CreateIssue opens a new issue.
	CreateIssue(ctx context.Context, title, body string) (*Issue, error)

	// UpdateIssue changes the title, body and/or state of an issue.
	UpdateIssue(ctx context.Context, number int, update IssueUpdate) (*Issue, error)

	// CreateComment adds a comment to an issue.
	CreateComment(ctx context.Context, number int, body string) (*Comment, error)

	// GetLabels lists the labels defined in the repository.
	GetLabels(ctx context.Context) ([]Label, error)

	// AddLabels adds labels to an issue and returns all labels now on it.
	AddLabels(ctx context.Context, number int, names ...string) ([]Label, error)

	// RemoveLabel removes a label from an issue and returns the remaining labels.
	RemoveLabel(ctx context.Context, number int, name string) ([]Label, error)
}

var (
	_ nexus.Provider             = (*Provider)(nil)
	_ nexus.CapabilityAdvertiser = (*Provider)(nil)
	_ IssueActions               = (*Provider)(nil)
)
