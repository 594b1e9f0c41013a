package service

// IssueSummary is the minimal issue projection used for parents and
// sub-issues.
type IssueSummary struct {
	ID         string `json:"id"`
	Identifier string `json:"identifier"`
	Title      string `json:"title"`
}

// RelationshipEntry is a typed edge from an issue to a related issue.
// Type is one of parent, sub, related, blocked, blocking, duplicate.
type RelationshipEntry struct {
	Type       string `json:"type"`
	IssueID    string `json:"issueId"`
	Identifier string `json:"identifier"`
	Title      string `json:"title"`
}

// CommentDTO is the flat comment shape. A comment whose author is no longer
// resolvable keeps an empty userId and omits userName.
type CommentDTO struct {
	ID        string `json:"id"`
	Body      string `json:"body"`
	UserID    string `json:"userId"`
	UserName  string `json:"userName,omitempty"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// IssueDTO is the fully materialized issue shape returned by get_issue and
// the create/update paths. SubIssues, MentionedIssues and MentionedUsers are
// always present, never null. Comments are populated only when extended
// relationship data was requested.
type IssueDTO struct {
	ID              string              `json:"id"`
	Identifier      string              `json:"identifier"`
	Title           string              `json:"title"`
	Description     *string             `json:"description"`
	Status          string              `json:"status,omitempty"`
	Assignee        string              `json:"assignee,omitempty"`
	Priority        int                 `json:"priority"`
	Estimate        *float64            `json:"estimate,omitempty"`
	DueDate         *string             `json:"dueDate,omitempty"`
	CreatedAt       string              `json:"createdAt"`
	UpdatedAt       string              `json:"updatedAt"`
	TeamName        string              `json:"teamName,omitempty"`
	CreatorName     string              `json:"creatorName,omitempty"`
	Labels          []string            `json:"labels"`
	Parent          *IssueSummary       `json:"parent,omitempty"`
	SubIssues       []IssueSummary      `json:"subIssues"`
	Relationships   []RelationshipEntry `json:"relationships"`
	Comments        []CommentDTO        `json:"comments,omitempty"`
	MentionedIssues []string            `json:"mentionedIssues"`
	MentionedUsers  []string            `json:"mentionedUsers"`
	URL             string              `json:"url,omitempty"`
}

// IssueSearchResult is the flat per-issue shape returned by search_issues.
// Search results carry no relationship or mention data.
type IssueSearchResult struct {
	ID          string   `json:"id"`
	Identifier  string   `json:"identifier"`
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	Status      string   `json:"status,omitempty"`
	Assignee    string   `json:"assignee,omitempty"`
	Priority    int      `json:"priority"`
	TeamName    string   `json:"teamName,omitempty"`
	Labels      []string `json:"labels"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
	URL         string   `json:"url,omitempty"`
}

// TeamDTO is the flat team shape returned by get_teams.
type TeamDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Key         string `json:"key"`
	Description string `json:"description,omitempty"`
}

// CycleDTO is the flat cycle shape. IsActive and IsCompleted are derived
// from the timestamps, never copied from upstream flags.
type CycleDTO struct {
	ID          string `json:"id"`
	Number      int    `json:"number"`
	Name        string `json:"name,omitempty"`
	StartsAt    string `json:"startsAt,omitempty"`
	EndsAt      string `json:"endsAt,omitempty"`
	IsActive    bool   `json:"isActive"`
	IsCompleted bool   `json:"isCompleted"`
	TeamID      string `json:"teamId,omitempty"`
}

// CycleFilter is the query-side cycle reference. Type is one of current,
// next, previous, specific; ID is meaningful only for specific and may be
// either a numeric cycle-number string or an opaque cycle id.
type CycleFilter struct {
	Type   string `json:"type"`
	TeamID string `json:"teamId,omitempty"`
	ID     string `json:"id,omitempty"`
}

// DocumentDTO is the flat document shape. Content carries the full body
// when requested; ContentPreview carries the cleaned 200-character preview
// otherwise.
type DocumentDTO struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Icon           *string `json:"icon,omitempty"`
	Color          *string `json:"color,omitempty"`
	Content        string  `json:"content,omitempty"`
	ContentPreview string  `json:"contentPreview,omitempty"`
	CreatorName    string  `json:"creatorName,omitempty"`
	ProjectName    string  `json:"projectName,omitempty"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
	URL            string  `json:"url,omitempty"`
}

// DocumentPageDTO is one page of document list results.
type DocumentPageDTO struct {
	Documents   []DocumentDTO `json:"documents"`
	HasNextPage bool          `json:"hasNextPage"`
	EndCursor   string        `json:"endCursor,omitempty"`
}

// ProjectDTO is the flat project shape.
type ProjectDTO struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Description    string  `json:"description,omitempty"`
	Content        string  `json:"content,omitempty"`
	ContentPreview string  `json:"contentPreview,omitempty"`
	State          string  `json:"state,omitempty"`
	Health         string  `json:"health,omitempty"`
	StartDate      *string `json:"startDate,omitempty"`
	TargetDate     *string `json:"targetDate,omitempty"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
	URL            string  `json:"url,omitempty"`
}

// ProjectPageDTO is one page of project list results.
type ProjectPageDTO struct {
	Projects    []ProjectDTO `json:"projects"`
	HasNextPage bool         `json:"hasNextPage"`
	EndCursor   string       `json:"endCursor,omitempty"`
}

// DeleteResultDTO reports the outcome of a delete operation.
type DeleteResultDTO struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// DependencyNode is one issue in a dependency graph.
type DependencyNode struct {
	ID         string `json:"id"`
	Identifier string `json:"identifier"`
	Title      string `json:"title"`
}

// DependencyEdge is a directed blocking edge: From blocks To.
type DependencyEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
	Type string `json:"type"`
}

// DependencyGraphDTO is the result of get_issue_dependencies: the blocking
// neighborhood of an issue up to the requested depth. Order lists the node
// ids in a valid work order when the graph is acyclic; it is omitted when a
// cycle exists.
type DependencyGraphDTO struct {
	Root  string           `json:"root"`
	Nodes []DependencyNode `json:"nodes"`
	Edges []DependencyEdge `json:"edges"`
	Order []string         `json:"order,omitempty"`
}
