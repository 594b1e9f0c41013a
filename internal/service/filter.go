package service

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SearchFilter is the typed filter tree accepted by search_issues. Its json
// tags mirror Linear's IssueFilter input, so a resolved tree lowers to the
// wire shape by plain marshalling.
//
// AssignedTo, CreatedBy and Cycle are backward-compatible shortcuts. They
// may appear at any depth and are rewritten into canonical conditions by
// lowerShortcuts before the tree is lowered; none of them survives into the
// wire filter.
type SearchFilter struct {
	AssignedTo string    `json:"assignedTo,omitempty"`
	CreatedBy  string    `json:"createdBy,omitempty"`
	Cycle      *CycleRef `json:"cycle,omitempty"`

	And []SearchFilter `json:"and,omitempty"`
	Or  []SearchFilter `json:"or,omitempty"`

	Title       *StringComparator `json:"title,omitempty"`
	Description *StringComparator `json:"description,omitempty"`
	Priority    *NumberComparator `json:"priority,omitempty"`
	Estimate    *NumberComparator `json:"estimate,omitempty"`
	DueDate     *DateComparator   `json:"dueDate,omitempty"`
	CreatedAt   *DateComparator   `json:"createdAt,omitempty"`
	UpdatedAt   *DateComparator   `json:"updatedAt,omitempty"`
	CompletedAt *DateComparator   `json:"completedAt,omitempty"`

	Assignee *UserFilter     `json:"assignee,omitempty"`
	Creator  *UserFilter     `json:"creator,omitempty"`
	Team     *TeamFilter     `json:"team,omitempty"`
	State    *StateFilter    `json:"state,omitempty"`
	Labels   *LabelFilter    `json:"labels,omitempty"`
	Project  *RelationFilter `json:"project,omitempty"`
}

// StringComparator covers Linear's string comparison operators.
type StringComparator struct {
	Eq                 *string  `json:"eq,omitempty"`
	Neq                *string  `json:"neq,omitempty"`
	In                 []string `json:"in,omitempty"`
	Nin                []string `json:"nin,omitempty"`
	Contains           *string  `json:"contains,omitempty"`
	ContainsIgnoreCase *string  `json:"containsIgnoreCase,omitempty"`
	StartsWith         *string  `json:"startsWith,omitempty"`
	EndsWith           *string  `json:"endsWith,omitempty"`
	Null               *bool    `json:"null,omitempty"`
}

// NumberComparator covers Linear's numeric comparison operators.
type NumberComparator struct {
	Eq   *float64  `json:"eq,omitempty"`
	Neq  *float64  `json:"neq,omitempty"`
	In   []float64 `json:"in,omitempty"`
	Nin  []float64 `json:"nin,omitempty"`
	Gt   *float64  `json:"gt,omitempty"`
	Gte  *float64  `json:"gte,omitempty"`
	Lt   *float64  `json:"lt,omitempty"`
	Lte  *float64  `json:"lte,omitempty"`
	Null *bool     `json:"null,omitempty"`
}

// DateComparator covers Linear's date comparison operators. Values are
// ISO-8601 strings.
type DateComparator struct {
	Eq   *string `json:"eq,omitempty"`
	Neq  *string `json:"neq,omitempty"`
	Gt   *string `json:"gt,omitempty"`
	Gte  *string `json:"gte,omitempty"`
	Lt   *string `json:"lt,omitempty"`
	Lte  *string `json:"lte,omitempty"`
	Null *bool   `json:"null,omitempty"`
}

// IDComparator covers id equality and membership. The literal "me" may
// appear anywhere a user id is expected and is resolved before lowering.
type IDComparator struct {
	Eq  *string  `json:"eq,omitempty"`
	Neq *string  `json:"neq,omitempty"`
	In  []string `json:"in,omitempty"`
	Nin []string `json:"nin,omitempty"`
}

// UserFilter narrows by assignee or creator.
type UserFilter struct {
	ID          *IDComparator     `json:"id,omitempty"`
	Name        *StringComparator `json:"name,omitempty"`
	DisplayName *StringComparator `json:"displayName,omitempty"`
	Email       *StringComparator `json:"email,omitempty"`
}

// TeamFilter narrows by team.
type TeamFilter struct {
	ID   *IDComparator     `json:"id,omitempty"`
	Key  *StringComparator `json:"key,omitempty"`
	Name *StringComparator `json:"name,omitempty"`
}

// StateFilter narrows by workflow state.
type StateFilter struct {
	ID   *IDComparator     `json:"id,omitempty"`
	Name *StringComparator `json:"name,omitempty"`
	Type *StringComparator `json:"type,omitempty"`
}

// LabelCondition is the per-label condition inside a LabelFilter.
type LabelCondition struct {
	ID   *IDComparator     `json:"id,omitempty"`
	Name *StringComparator `json:"name,omitempty"`
}

// LabelFilter narrows by label membership.
type LabelFilter struct {
	Some  *LabelCondition `json:"some,omitempty"`
	Every *LabelCondition `json:"every,omitempty"`
}

// RelationFilter narrows by a related entity such as the project.
type RelationFilter struct {
	ID   *IDComparator     `json:"id,omitempty"`
	Name *StringComparator `json:"name,omitempty"`
}

// CycleRef is the cycle slot of a SearchFilter. It decodes from the shortcut
// object {type, teamId, id}; once resolved against a concrete cycle it
// encodes as the wire condition {"id": {"eq": <cycle id>}}.
type CycleRef struct {
	CycleFilter
	resolvedID string
}

func (c *CycleRef) UnmarshalJSON(data []byte) error {
	return strictUnmarshal(data, &c.CycleFilter)
}

func (c *CycleRef) MarshalJSON() ([]byte, error) {
	if c.resolvedID == "" {
		return nil, fmt.Errorf("cycle filter must be resolved before lowering")
	}
	return json.Marshal(map[string]interface{}{
		"id": map[string]interface{}{"eq": c.resolvedID},
	})
}

// ParseSearchFilter decodes the raw JSON filter argument into the typed
// tree. Unknown keys are rejected so malformed filters fail loudly instead
// of silently matching everything.
func ParseSearchFilter(raw map[string]interface{}) (*SearchFilter, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid filter: %w", err)
	}
	var filter SearchFilter
	if err := strictUnmarshal(data, &filter); err != nil {
		return nil, fmt.Errorf("invalid filter: %w", err)
	}
	return &filter, nil
}

func strictUnmarshal(data []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// lowerShortcuts rewrites the shortcut fields at every depth into their
// canonical conditions: assignedTo/createdBy become assignee/creator id
// equality (and-ed in when the canonical slot is already taken), and cycle
// references are resolved to a concrete cycle id. After this pass the tree
// lowers by plain marshalling.
func (f *SearchFilter) lowerShortcuts(resolveCycle func(CycleFilter) (string, error)) error {
	if f == nil {
		return nil
	}

	if f.AssignedTo != "" {
		v := f.AssignedTo
		f.AssignedTo = ""
		cond := &UserFilter{ID: &IDComparator{Eq: &v}}
		if f.Assignee == nil {
			f.Assignee = cond
		} else {
			f.And = append(f.And, SearchFilter{Assignee: cond})
		}
	}
	if f.CreatedBy != "" {
		v := f.CreatedBy
		f.CreatedBy = ""
		cond := &UserFilter{ID: &IDComparator{Eq: &v}}
		if f.Creator == nil {
			f.Creator = cond
		} else {
			f.And = append(f.And, SearchFilter{Creator: cond})
		}
	}
	if f.Cycle != nil && f.Cycle.resolvedID == "" {
		id, err := resolveCycle(f.Cycle.CycleFilter)
		if err != nil {
			return err
		}
		f.Cycle.resolvedID = id
	}

	for i := range f.And {
		if err := f.And[i].lowerShortcuts(resolveCycle); err != nil {
			return err
		}
	}
	for i := range f.Or {
		if err := f.Or[i].lowerShortcuts(resolveCycle); err != nil {
			return err
		}
	}
	return nil
}

// resolveMe walks the whole tree replacing every literal "me" user id with
// the resolved viewer id. The resolver is memoized by the caller so deep
// trees cost a single identity lookup.
func (f *SearchFilter) resolveMe(resolve func() (string, error)) error {
	if f == nil {
		return nil
	}
	for i := range f.And {
		if err := f.And[i].resolveMe(resolve); err != nil {
			return err
		}
	}
	for i := range f.Or {
		if err := f.Or[i].resolveMe(resolve); err != nil {
			return err
		}
	}
	if err := f.Assignee.resolveMe(resolve); err != nil {
		return err
	}
	return f.Creator.resolveMe(resolve)
}

func (u *UserFilter) resolveMe(resolve func() (string, error)) error {
	if u == nil || u.ID == nil {
		return nil
	}
	return u.ID.resolveMe(resolve)
}

func (c *IDComparator) resolveMe(resolve func() (string, error)) error {
	swap := func(v *string) error {
		if v == nil || *v != "me" {
			return nil
		}
		id, err := resolve()
		if err != nil {
			return err
		}
		*v = id
		return nil
	}
	if err := swap(c.Eq); err != nil {
		return err
	}
	if err := swap(c.Neq); err != nil {
		return err
	}
	for i := range c.In {
		if err := swap(&c.In[i]); err != nil {
			return err
		}
	}
	for i := range c.Nin {
		if err := swap(&c.Nin[i]); err != nil {
			return err
		}
	}
	return nil
}

// toMap lowers the filter to the wire shape. Shortcut fields must already
// be consumed; lowering with one still set is a programming error. Nested
// unresolved cycle refs fail inside Marshal via CycleRef.MarshalJSON.
func (f *SearchFilter) toMap() (map[string]interface{}, error) {
	if f.AssignedTo != "" || f.CreatedBy != "" || (f.Cycle != nil && f.Cycle.resolvedID == "") {
		return nil, fmt.Errorf("filter shortcuts must be consumed before lowering")
	}
	data, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}
