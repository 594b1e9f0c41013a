package service

import (
	"github.com/cosmix/linear-mcp/internal/linear/core"
	"github.com/cosmix/linear-mcp/internal/mcperr"
)

// validHealthValues are the accepted project health states, in the order
// they are listed in validation messages.
var validHealthValues = []string{"onTrack", "atRisk", "offTrack"}

// ProjectService implements the project CRUD surface.
type ProjectService struct {
	projects ProjectAPI
}

// NewProjectService creates a project service over the given client.
func NewProjectService(projects ProjectAPI) *ProjectService {
	return &ProjectService{projects: projects}
}

// ProjectListArgs are the arguments for ListProjects.
type ProjectListArgs struct {
	Name            string
	TeamID          string
	IncludeArchived *bool
	IncludeFull     bool
	First           int
	After           string
}

// ProjectCreateArgs are the arguments for CreateProject.
type ProjectCreateArgs struct {
	Name        string
	Description string
	Content     string
	TeamIDs     []string
	StartDate   *string
	TargetDate  *string
}

// ProjectUpdateArgs are the sparse arguments for UpdateProject.
type ProjectUpdateArgs struct {
	ProjectID   string
	Name        *string
	Description *string
	Content     *string
	Health      *string
	StartDate   *string
	TargetDate  *string
}

// ListProjects lists projects with cursor pagination, same defaults as the
// document listing.
func (s *ProjectService) ListProjects(args ProjectListArgs) (*ProjectPageDTO, error) {
	page, err := s.projects.ListProjects(&core.ProjectFilter{
		Name:            args.Name,
		TeamID:          args.TeamID,
		IncludeArchived: args.IncludeArchived,
		First:           clampPageSize(args.First),
		After:           args.After,
	})
	if err != nil {
		return nil, mcperr.Passthrough(err)
	}

	result := &ProjectPageDTO{
		Projects:    make([]ProjectDTO, 0, len(page.Projects)),
		HasNextPage: page.PageInfo.HasNextPage,
		EndCursor:   page.PageInfo.EndCursor,
	}
	for i := range page.Projects {
		result.Projects = append(result.Projects, mapProject(&page.Projects[i], args.IncludeFull))
	}
	return result, nil
}

// GetProject retrieves a single project.
func (s *ProjectService) GetProject(projectID string, includeFull bool) (*ProjectDTO, error) {
	project, err := s.projects.GetProject(projectID)
	if err != nil {
		if core.IsNotFoundError(err) {
			return nil, mcperr.InvalidRequestf("Project not found: %s", projectID)
		}
		return nil, mcperr.Passthrough(err)
	}
	dto := mapProject(project, includeFull)
	return &dto, nil
}

// CreateProject creates a project. At least one team id is required.
func (s *ProjectService) CreateProject(args ProjectCreateArgs) (*ProjectDTO, error) {
	if args.Name == "" {
		return nil, mcperr.InvalidParams("name is required")
	}
	if len(args.TeamIDs) == 0 {
		return nil, mcperr.InvalidParams("at least one teamId is required")
	}

	project, err := s.projects.CreateProject(core.ProjectCreateInput{
		Name:        args.Name,
		Description: args.Description,
		Content:     args.Content,
		TeamIDs:     args.TeamIDs,
		StartDate:   args.StartDate,
		TargetDate:  args.TargetDate,
	})
	if err != nil {
		return nil, mcperr.WrapInternal("Failed to create project", err)
	}

	dto := mapProject(project, true)
	return &dto, nil
}

// UpdateProject verifies the project exists, validates the health value
// when given, then applies a sparse patch.
func (s *ProjectService) UpdateProject(args ProjectUpdateArgs) (*ProjectDTO, error) {
	if args.Health != nil && !isValidHealth(*args.Health) {
		return nil, mcperr.InvalidParamsf("Invalid health value %q. Valid values are: onTrack, atRisk, offTrack", *args.Health)
	}

	if _, err := s.projects.GetProject(args.ProjectID); err != nil {
		if core.IsNotFoundError(err) {
			return nil, mcperr.InvalidRequestf("Project not found: %s", args.ProjectID)
		}
		return nil, mcperr.Passthrough(err)
	}

	project, err := s.projects.UpdateProject(args.ProjectID, core.ProjectUpdateInput{
		Name:        args.Name,
		Description: args.Description,
		Content:     args.Content,
		Health:      args.Health,
		StartDate:   args.StartDate,
		TargetDate:  args.TargetDate,
	})
	if err != nil {
		return nil, mcperr.WrapInternal("Failed to update project", err)
	}

	dto := mapProject(project, true)
	return &dto, nil
}

func isValidHealth(health string) bool {
	for _, v := range validHealthValues {
		if v == health {
			return true
		}
	}
	return false
}

func mapProject(project *core.Project, includeFull bool) ProjectDTO {
	dto := ProjectDTO{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		State:       project.State,
		Health:      project.Health,
		StartDate:   project.StartDate,
		TargetDate:  project.TargetDate,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
		URL:         project.URL,
	}
	if includeFull {
		dto.Content = project.Content
	} else {
		dto.ContentPreview = contentPreview(project.Content)
	}
	return dto
}
