package github

import (
	"context"
	"strconv"
	"strings"

	"github.com/onurkarakus/nexus"
)

// GetIssues lists issues in the given state. An empty state lists open issues.
func (p *Provider) GetIssues(ctx context.Context, state IssueState) ([]Issue, error) {
	if state == "" {
		state = StateOpen
	}
	if !state.Valid() {
		return nil, nexus.ValidationError(providerName, "unknown issue state %q", state)
	}

	var issues []Issue
	if err := p.client.Get(ctx, "issues?state="+string(state), &issues); err != nil {
		return nil, err
	}
	if issues == nil {
		issues = []Issue{}
	}
	return issues, nil
}

// GetIssue returns a single issue by number.
func (p *Provider) GetIssue(ctx context.Context, number int) (*Issue, error) {
	if err := checkNumber(number); err != nil {
		return nil, err
	}

	var issue Issue
	if err := p.client.Get(ctx, issuePath(number), &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

// CreateIssue opens a new issue with the given title and body.
func (p *Provider) CreateIssue(ctx context.Context, title, body string) (*Issue, error) {
	if strings.TrimSpace(title) == "" {
		return nil, nexus.ValidationError(providerName, "issue title is required")
	}

	var issue Issue
	if err := p.client.Post(ctx, "issues", createIssueRequest{Title: title, Body: body}, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

// UpdateIssue changes the fields set in update. At least one field must be
// set, and State may only be open or closed.
func (p *Provider) UpdateIssue(ctx context.Context, number int, update IssueUpdate) (*Issue, error) {
	if err := checkNumber(number); err != nil {
		return nil, err
	}
	if update.Title == nil && update.Body == nil && update.State == nil {
		return nil, nexus.ValidationError(providerName, "at least one field must be specified for an update")
	}
	if update.State != nil && *update.State != StateOpen && *update.State != StateClosed {
		return nil, nexus.ValidationError(providerName, "issue state must be open or closed, got %q", *update.State)
	}

	req := updateIssueRequest{
		Title: update.Title,
		Body:  update.Body,
		State: update.State,
	}

	var issue Issue
	if err := p.client.Patch(ctx, issuePath(number), req, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

// CreateComment adds a markdown comment to an issue.
func (p *Provider) CreateComment(ctx context.Context, number int, body string) (*Comment, error) {
	if err := checkNumber(number); err != nil {
		return nil, err
	}
	if strings.TrimSpace(body) == "" {
		return nil, nexus.ValidationError(providerName, "comment body is required")
	}

	var comment Comment
	if err := p.client.Post(ctx, issuePath(number)+"/comments", createCommentRequest{Body: body}, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func issuePath(number int) string {
	return "issues/" + strconv.Itoa(number)
}

func checkNumber(number int) error {
	if number <= 0 {
		return nexus.ValidationError(providerName, "issue number must be positive, got %d", number)
	}
	return nil
}
