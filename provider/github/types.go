package github

// IssueState is the state of an issue, or a state filter when listing.
type IssueState string

const (
	StateOpen   IssueState = "open"
	StateClosed IssueState = "closed"
	// StateAll is only valid as a list filter.
	StateAll IssueState = "all"
)

// Valid reports whether s is one of the known states.
func (s IssueState) Valid() bool {
	switch s {
	case StateOpen, StateClosed, StateAll:
		return true
	}
	return false
}

// Issue is a GitHub issue.
type Issue struct {
	ID     int64  `json:"id"`
	Number int    `json:"number"`
	Title  string `json:"title"`
	State  string `json:"state"`
	URL    string `json:"html_url"`
}

// Comment is a comment on an issue.
type Comment struct {
	ID   int64  `json:"id"`
	Body string `json:"body"`
	URL  string `json:"html_url"`
}

// Label is a repository label. Color is hexadecimal without the leading #.
type Label struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Color       string  `json:"color"`
	Description *string `json:"description,omitempty"`
}

// IssueUpdate holds the fields to change on an issue. Nil fields are left
// untouched; at least one must be set.
type IssueUpdate struct {
	Title *string
	Body  *string
	State *IssueState
}

// Ptr returns a pointer to v. Convenient for building an [IssueUpdate].
func Ptr[T any](v T) *T {
	return &v
}

type createIssueRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type updateIssueRequest struct {
	Title *string     `json:"title,omitempty"`
	Body  *string     `json:"body,omitempty"`
	State *IssueState `json:"state,omitempty"`
}

type createCommentRequest struct {
	Body string `json:"body"`
}

type addLabelsRequest struct {
	Labels []string `json:"labels"`
}
