package services

import (
	"context"

	"bizdash/internal/core"
	"bizdash/internal/events"
	"bizdash/internal/filter"
	"bizdash/internal/lifecycle"
	"bizdash/internal/log"
	"bizdash/internal/report"
	"bizdash/internal/store"
)

// TaskService manages projects and the tasks they own. Tasks live in their
// own store keyed by project id; a project is only ever read with its tasks
// attached.
type TaskService struct {
	base
	projects *store.Store[core.Project]
	tasks    *store.Store[core.Task]
}

func NewTaskService(projects *store.Store[core.Project], tasks *store.Store[core.Task], opts ...Option) *TaskService {
	return &TaskService{base: newBase(log.ComponentTask, opts), projects: projects, tasks: tasks}
}

func (s *TaskService) CreateProject(ctx context.Context, draft core.ProjectDraft) (core.Project, error) {
	draft = draft.Trim()
	if err := core.Validate(draft); err != nil {
		return core.Project{}, s.rejected(ctx, log.OpCreate, err)
	}
	p := s.projects.Create(func(id string) core.Project {
		return core.Project{ID: id, Name: draft.Name, Description: draft.Description}
	})
	s.changed(ctx, events.KindProject, events.ActionCreated, p.ID, p.Name)
	p.Tasks = []core.Task{}
	return p, nil
}

// DeleteProject removes the project together with every task it owns.
func (s *TaskService) DeleteProject(ctx context.Context, id string) {
	if !s.projects.Delete(id) {
		s.missing(ctx, log.OpDelete, id)
		return
	}
	n := s.tasks.DeleteWhere(func(t core.Task) bool { return t.Project == id })
	s.log.InfoContext(ctx, "Project tasks removed",
		log.FieldProject, id,
		log.FieldCount, n)
	s.changed(ctx, events.KindProject, events.ActionDeleted, id, "")
}

// Projects lists the projects with their tasks attached, in list order.
func (s *TaskService) Projects() []core.Project {
	tasks := s.tasks.List()
	projects := s.projects.List()
	for i := range projects {
		projects[i].Tasks = ownedBy(tasks, projects[i].ID)
	}
	return projects
}

func (s *TaskService) GetProject(id string) (core.Project, error) {
	p, ok := s.projects.Get(id)
	if !ok {
		return core.Project{}, notFound(events.KindProject, id)
	}
	p.Tasks = ownedBy(s.tasks.List(), id)
	return p, nil
}

// ProjectTasks returns the tasks of one project.
func (s *TaskService) ProjectTasks(projectID string) ([]core.Task, error) {
	p, err := s.GetProject(projectID)
	if err != nil {
		return nil, err
	}
	return p.Tasks, nil
}

// CreateTask adds a task to an existing project. Status defaults to todo and
// priority to medium.
func (s *TaskService) CreateTask(ctx context.Context, draft core.TaskDraft) (core.Task, error) {
	draft = draft.Trim()
	if err := core.Validate(draft); err != nil {
		return core.Task{}, s.rejected(ctx, log.OpCreate, err)
	}
	if _, ok := s.projects.Get(draft.Project); !ok {
		return core.Task{}, s.rejected(ctx, log.OpCreate, core.InvalidField("project"))
	}
	if draft.Status == "" {
		draft.Status = core.TaskTodo
	}
	if draft.Priority == "" {
		draft.Priority = core.PriorityMedium
	}

	t := s.tasks.Create(func(id string) core.Task {
		return core.Task{
			ID:          id,
			Title:       draft.Title,
			Description: draft.Description,
			Project:     draft.Project,
			Status:      draft.Status,
			Priority:    draft.Priority,
			DueDate:     draft.DueDate,
		}.SyncCompletion()
	})
	s.changed(ctx, events.KindTask, events.ActionCreated, t.ID, t.Title)
	return t, nil
}

func (s *TaskService) Update(ctx context.Context, id string, patch core.TaskPatch) (core.Task, bool, error) {
	if err := patch.Validate(); err != nil {
		return core.Task{}, false, s.rejected(ctx, log.OpUpdate, err)
	}
	t, ok := s.tasks.Update(id, patch.Apply)
	if !ok {
		s.missing(ctx, log.OpUpdate, id)
		return core.Task{}, false, nil
	}
	s.changed(ctx, events.KindTask, events.ActionUpdated, id, "")
	return t, true, nil
}

// Toggle flips a task between done and not done.
func (s *TaskService) Toggle(ctx context.Context, id string) (core.Task, error) {
	var toggleErr error
	t, ok := s.tasks.UpdateIf(id, func(t core.Task) (core.Task, bool) {
		next, err := lifecycle.ToggleTask(t.Status)
		if err != nil {
			toggleErr = err
			return t, false
		}
		t.Status = next
		return t.SyncCompletion(), true
	})
	if !ok {
		return core.Task{}, notFound(events.KindTask, id)
	}
	if toggleErr != nil {
		return core.Task{}, toggleErr
	}
	s.changed(ctx, events.KindTask, events.ActionToggled, id, string(t.Status))
	return t, nil
}

func (s *TaskService) Delete(ctx context.Context, id string) {
	if !s.tasks.Delete(id) {
		s.missing(ctx, log.OpDelete, id)
		return
	}
	s.changed(ctx, events.KindTask, events.ActionDeleted, id, "")
}

func (s *TaskService) List(c filter.TaskCriteria) []core.Task {
	return filter.Apply(s.tasks.List(), c.Match)
}

func (s *TaskService) Get(id string) (core.Task, error) {
	t, ok := s.tasks.Get(id)
	if !ok {
		return core.Task{}, notFound(events.KindTask, id)
	}
	return t, nil
}

// Board groups every task into its kanban column.
func (s *TaskService) Board() report.Board {
	return report.TaskBoard(s.tasks.List())
}

func (s *TaskService) All() []core.Task {
	return s.tasks.List()
}

func (s *TaskService) Revision() uint64 {
	return s.projects.Revision() + s.tasks.Revision()
}

func ownedBy(tasks []core.Task, projectID string) []core.Task {
	return filter.Apply(tasks, func(t core.Task) bool { return t.Project == projectID })
}
