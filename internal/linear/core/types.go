package core

// User represents a Linear user.
type User struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
	Email       string `json:"email,omitempty"`
}

// Team represents a Linear team.
type Team struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Key         string `json:"key"`
	Description string `json:"description,omitempty"`
}

// WorkflowState represents a workflow state in Linear.
type WorkflowState struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type,omitempty"` // backlog, unstarted, started, completed, canceled
}

// Label represents an issue label.
type Label struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// LabelConnection represents a paginated collection of labels.
type LabelConnection struct {
	Nodes []Label `json:"nodes"`
}

// StateRef is the minimal state projection embedded in issues.
type StateRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// IssueRef is the minimal issue projection used for parents, children and
// relation targets.
type IssueRef struct {
	ID         string `json:"id"`
	Identifier string `json:"identifier"`
	Title      string `json:"title"`
}

// IssueRefConnection represents a paginated collection of issue references.
type IssueRefConnection struct {
	Nodes []IssueRef `json:"nodes"`
}

// IssueRelation represents a typed relation edge between two issues. The
// related issue may be absent when the target has been deleted or is not
// accessible; callers must treat that as a soft condition.
type IssueRelation struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"` // related, blocks, blocked, duplicate
	RelatedIssue *IssueRef `json:"relatedIssue,omitempty"`
}

// IssueRelationConnection represents a paginated collection of relations.
type IssueRelationConnection struct {
	Nodes []IssueRelation `json:"nodes"`
}

// Comment represents a comment on an issue. User may be nil when the author
// is no longer resolvable.
type Comment struct {
	ID        string `json:"id"`
	Body      string `json:"body"`
	User      *User  `json:"user,omitempty"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// CommentConnection represents a paginated collection of comments.
type CommentConnection struct {
	Nodes []Comment `json:"nodes"`
}

// Issue represents a Linear issue with its nested single-valued relations.
// Children, relations and comments travel as connections and may be fetched
// separately from the scalar fields.
type Issue struct {
	ID          string              `json:"id"`
	Identifier  string              `json:"identifier"`
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	Priority    int                 `json:"priority"`
	Estimate    *float64            `json:"estimate,omitempty"`
	DueDate     *string             `json:"dueDate,omitempty"`
	State       *StateRef           `json:"state,omitempty"`
	Assignee    *User               `json:"assignee,omitempty"`
	Creator     *User               `json:"creator,omitempty"`
	Team        *Team               `json:"team,omitempty"`
	Labels      *LabelConnection    `json:"labels,omitempty"`
	Parent      *IssueRef           `json:"parent,omitempty"`
	Children    *IssueRefConnection `json:"children,omitempty"`
	CreatedAt   string              `json:"createdAt"`
	UpdatedAt   string              `json:"updatedAt"`
	URL         string              `json:"url,omitempty"`
}

// Cycle represents a Linear cycle (sprint/iteration) as returned upstream.
// Activity flags are derived downstream from the timestamps, never trusted
// from the API.
type Cycle struct {
	ID          string  `json:"id"`
	Number      int     `json:"number"`
	Name        string  `json:"name,omitempty"`
	StartsAt    string  `json:"startsAt,omitempty"`
	EndsAt      string  `json:"endsAt,omitempty"`
	CompletedAt *string `json:"completedAt,omitempty"`
	Team        *Team   `json:"team,omitempty"`
}

// Project represents a Linear project.
type Project struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Content     string  `json:"content,omitempty"`
	State       string  `json:"state,omitempty"`
	Health      string  `json:"health,omitempty"`
	StartDate   *string `json:"startDate,omitempty"`
	TargetDate  *string `json:"targetDate,omitempty"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
	URL         string  `json:"url,omitempty"`
}

// ProjectRef is the minimal project projection embedded in documents.
type ProjectRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Document represents a Linear document.
type Document struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	Icon      *string     `json:"icon,omitempty"`
	Color     *string     `json:"color,omitempty"`
	Content   string      `json:"content,omitempty"`
	Creator   *User       `json:"creator,omitempty"`
	Project   *ProjectRef `json:"project,omitempty"`
	CreatedAt string      `json:"createdAt"`
	UpdatedAt string      `json:"updatedAt"`
	URL       string      `json:"url,omitempty"`
}

// PageInfo carries cursor pagination state.
type PageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor"`
}

// IssueCreateInput is the input for issueCreate.
type IssueCreateInput struct {
	TeamID      string   `json:"teamId"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Priority    *int     `json:"priority,omitempty"`
	AssigneeID  string   `json:"assigneeId,omitempty"`
	ParentID    string   `json:"parentId,omitempty"`
	ProjectID   string   `json:"projectId,omitempty"`
	StateID     string   `json:"stateId,omitempty"`
	LabelIDs    []string `json:"labelIds,omitempty"`
}

// IssueUpdateInput is the sparse input for issueUpdate. Nil fields are not
// sent upstream.
type IssueUpdateInput struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Priority    *int     `json:"priority,omitempty"`
	StateID     *string  `json:"stateId,omitempty"`
	AssigneeID  *string  `json:"assigneeId,omitempty"`
	CycleID     *string  `json:"cycleId,omitempty"`
	LabelIDs    []string `json:"labelIds,omitempty"`
}

// SearchOpts carries pagination and ordering for issue search. A zero First
// means the default page size; OrderBy must be a PaginationOrderBy value
// (createdAt or updatedAt) when set.
type SearchOpts struct {
	First   int
	After   string
	OrderBy string
}

// IssueSearchPage is one page of issue search results.
type IssueSearchPage struct {
	Issues   []Issue  `json:"issues"`
	PageInfo PageInfo `json:"pageInfo"`
}

// DocumentFilter narrows document listing.
type DocumentFilter struct {
	Name            string
	TeamID          string
	ProjectID       string
	IncludeArchived *bool
	First           int
	After           string
}

// DocumentPage is one page of document list results.
type DocumentPage struct {
	Documents []Document `json:"documents"`
	PageInfo  PageInfo   `json:"pageInfo"`
}

// DocumentCreateInput is the input for documentCreate.
type DocumentCreateInput struct {
	Title     string  `json:"title"`
	Content   string  `json:"content,omitempty"`
	Icon      *string `json:"icon,omitempty"`
	Color     *string `json:"color,omitempty"`
	ProjectID string  `json:"projectId,omitempty"`
}

// DocumentUpdateInput is the sparse input for documentUpdate.
type DocumentUpdateInput struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
	Icon    *string `json:"icon,omitempty"`
	Color   *string `json:"color,omitempty"`
}

// ProjectFilter narrows project listing.
type ProjectFilter struct {
	Name            string
	TeamID          string
	IncludeArchived *bool
	First           int
	After           string
}

// ProjectPage is one page of project list results.
type ProjectPage struct {
	Projects []Project `json:"projects"`
	PageInfo PageInfo  `json:"pageInfo"`
}

// ProjectCreateInput is the input for projectCreate.
type ProjectCreateInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Content     string   `json:"content,omitempty"`
	TeamIDs     []string `json:"teamIds"`
	StartDate   *string  `json:"startDate,omitempty"`
	TargetDate  *string  `json:"targetDate,omitempty"`
}

// ProjectUpdateInput is the sparse input for projectUpdate.
type ProjectUpdateInput struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Content     *string `json:"content,omitempty"`
	Health      *string `json:"health,omitempty"`
	StartDate   *string `json:"startDate,omitempty"`
	TargetDate  *string `json:"targetDate,omitempty"`
}

// DeleteResult reports the outcome of a delete mutation. Success=false with
// a message is a clean unsuccessful response, not a transport failure.
type DeleteResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
