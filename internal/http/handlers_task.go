package http

import (
	"net/http"

	"bizdash/internal/core"
	"bizdash/internal/filter"
)

func (s *Server) listProjects(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Tasks.Projects())
}

func (s *Server) createProject(w http.ResponseWriter, r *http.Request) {
	var draft core.ProjectDraft
	if !decode(w, r, &draft) {
		return
	}
	p, err := s.svc.Tasks.CreateProject(r.Context(), draft)
	created(w, r, p, err)
}

func (s *Server) deleteProject(w http.ResponseWriter, r *http.Request) {
	s.svc.Tasks.DeleteProject(r.Context(), idParam(r))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) projectTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.svc.Tasks.ProjectTasks(idParam(r))
	found(w, r, tasks, err)
}

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	c := filter.TaskCriteria{
		Query:    q.str("q"),
		Project:  q.str("project"),
		Status:   q.str("status"),
		Priority: q.str("priority"),
		Due:      q.dates(),
	}
	if err := q.err(); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.svc.Tasks.List(c))
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	var draft core.TaskDraft
	if !decode(w, r, &draft) {
		return
	}
	t, err := s.svc.Tasks.CreateTask(r.Context(), draft)
	created(w, r, t, err)
}

func (s *Server) taskBoard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Tasks.Board())
}

func (s *Server) getTask(w http.ResponseWriter, r *http.Request) {
	t, err := s.svc.Tasks.Get(idParam(r))
	found(w, r, t, err)
}

func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	var patch core.TaskPatch
	if !decode(w, r, &patch) {
		return
	}
	t, ok, err := s.svc.Tasks.Update(r.Context(), idParam(r), patch)
	updated(w, r, t, ok, err)
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	s.svc.Tasks.Delete(r.Context(), idParam(r))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) toggleTask(w http.ResponseWriter, r *http.Request) {
	t, err := s.svc.Tasks.Toggle(r.Context(), idParam(r))
	found(w, r, t, err)
}
