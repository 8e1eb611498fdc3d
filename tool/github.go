package tool

import (
	"context"

	"github.com/onurkarakus/nexus"
	"github.com/onurkarakus/nexus/provider/github"
)

// ListIssuesArgs are the arguments of github_list_issues.
type ListIssuesArgs struct {
	State string `json:"state,omitempty" desc:"Issue state filter (default open)" enum:"open,closed,all"`
}

// IssueArgs identify a single issue.
type IssueArgs struct {
	Number int `json:"number" desc:"Issue number" required:"true" min:"1"`
}

// CreateIssueArgs are the arguments of github_create_issue.
type CreateIssueArgs struct {
	Title string `json:"title" desc:"Issue title" required:"true"`
	Body  string `json:"body,omitempty" desc:"Issue body in markdown"`
}

// UpdateIssueArgs are the arguments of github_update_issue. Omitted
// fields are left unchanged.
type UpdateIssueArgs struct {
	Number int     `json:"number" desc:"Issue number" required:"true" min:"1"`
	Title  *string `json:"title,omitempty" desc:"New title"`
	Body   *string `json:"body,omitempty" desc:"New body"`
	State  *string `json:"state,omitempty" desc:"New state" enum:"open,closed"`
}

// CommentArgs are the arguments of github_create_comment.
type CommentArgs struct {
	Number int    `json:"number" desc:"Issue number" required:"true" min:"1"`
	Body   string `json:"body" desc:"Comment body in markdown" required:"true"`
}

// AddLabelsArgs are the arguments of github_add_labels.
type AddLabelsArgs struct {
	Number int      `json:"number" desc:"Issue number" required:"true" min:"1"`
	Labels []string `json:"labels" desc:"Names of existing labels to add" required:"true"`
}

// RemoveLabelArgs are the arguments of github_remove_label.
type RemoveLabelArgs struct {
	Number int    `json:"number" desc:"Issue number" required:"true" min:"1"`
	Label  string `json:"label" desc:"Label name to remove" required:"true"`
}

// GitHubTools returns tools for the issue actions of the provider
// registered under github.ID. Each call runs its own fluent chain using
// the connector's default credential.
func GitHubTools(c *nexus.Connector) []Registration {
	issues := func() (github.IssueActions, error) {
		return capability[github.IssueActions](c, github.ID)
	}

	return []Registration{
		Func("github_list_issues", "List issues in the configured GitHub repository",
			func(ctx context.Context, args ListIssuesArgs) (string, error) {
				a, err := issues()
				if err != nil {
					return "", err
				}
				list, err := a.GetIssues(ctx, github.IssueState(args.State))
				if err != nil {
					return "", err
				}
				return jsonResult(list)
			}),
		Func("github_get_issue", "Get a single GitHub issue by number",
			func(ctx context.Context, args IssueArgs) (string, error) {
				a, err := issues()
				if err != nil {
					return "", err
				}
				issue, err := a.GetIssue(ctx, args.Number)
				if err != nil {
					return "", err
				}
				return jsonResult(issue)
			}),
		Func("github_create_issue", "Open a new GitHub issue",
			func(ctx context.Context, args CreateIssueArgs) (string, error) {
				a, err := issues()
				if err != nil {
					return "", err
				}
				issue, err := a.CreateIssue(ctx, args.Title, args.Body)
				if err != nil {
					return "", err
				}
				return jsonResult(issue)
			}),
		Func("github_update_issue", "Change the title, body or state of a GitHub issue",
			func(ctx context.Context, args UpdateIssueArgs) (string, error) {
				a, err := issues()
				if err != nil {
					return "", err
				}
				update := github.IssueUpdate{Title: args.Title, Body: args.Body}
				if args.State != nil {
					update.State = github.Ptr(github.IssueState(*args.State))
				}
				issue, err := a.UpdateIssue(ctx, args.Number, update)
				if err != nil {
					return "", err
				}
				return jsonResult(issue)
			}),
		Func("github_create_comment", "Comment on a GitHub issue",
			func(ctx context.Context, args CommentArgs) (string, error) {
				a, err := issues()
				if err != nil {
					return "", err
				}
				comment, err := a.CreateComment(ctx, args.Number, args.Body)
				if err != nil {
					return "", err
				}
				return jsonResult(comment)
			}),
		Func("github_list_labels", "List the labels defined in the GitHub repository",
			func(ctx context.Context, _ struct{}) (string, error) {
				a, err := issues()
				if err != nil {
					return "", err
				}
				labels, err := a.GetLabels(ctx)
				if err != nil {
					return "", err
				}
				return jsonResult(labels)
			}),
		Func("github_add_labels", "Add labels to a GitHub issue",
			func(ctx context.Context, args AddLabelsArgs) (string, error) {
				a, err := issues()
				if err != nil {
					return "", err
				}
				labels, err := a.AddLabels(ctx, args.Number, args.Labels...)
				if err != nil {
					return "", err
				}
				return jsonResult(labels)
			}),
		Func("github_remove_label", "Remove a label from a GitHub issue",
			func(ctx context.Context, args RemoveLabelArgs) (string, error) {
				a, err := issues()
				if err != nil {
					return "", err
				}
				labels, err := a.RemoveLabel(ctx, args.Number, args.Label)
				if err != nil {
					return "", err
				}
				return jsonResult(labels)
			}),
	}
}
