// Package fakeapi is an in-memory stand-in for the remote problem catalogue
// api, served over httptest for tests of the services, handlers, and CLI.
package fakeapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
)

type record = map[string]any

type failure struct {
	status  int
	message string
}

type Server struct {
	*httptest.Server

	mu         sync.Mutex
	problems   []record
	categories []string
	failures   map[string]failure
	calls      map[string]int
	headers    http.Header
}

// New starts a fake api seeded with problems (decoded from their JSON form)
// and categories.
func New(problems any, categories []string) *Server {
	s := &Server{
		categories: slices.Clone(categories),
		failures:   map[string]failure{},
		calls:      map[string]int{},
	}
	if problems != nil {
		data, err := json.Marshal(problems)
		if err != nil {
			panic(err)
		}
		if err := json.Unmarshal(data, &s.problems); err != nil {
			panic(err)
		}
	}
	if s.categories == nil {
		s.categories = []string{}
	}

	router := chi.NewRouter()
	router.Use(s.track)
	router.Get("/problems/", s.listProblems)
	router.Get("/problems/{slug}", s.getProblem)
	router.Post("/problems", s.createProblem)
	router.Put("/problems/{slug}", s.updateProblem)
	router.Delete("/problems/{slug}", s.deleteProblem)
	router.Post("/problems/{slug}/solutions", s.addSolution)
	router.Get("/categories", s.listCategories)
	router.Post("/categories", s.createCategory)
	router.Put("/categories/{name}", s.updateCategory)
	router.Delete("/categories/{name}", s.deleteCategory)

	s.Server = httptest.NewServer(router)
	return s
}

// Fail makes every request to route answer with status and a detail message
// until Recover is called. route is "METHOD pattern", e.g. "GET /problems/".
func (s *Server) Fail(route string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = failure{status: status, message: message}
}

func (s *Server) Recover(route string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, route)
}

// Calls returns how many requests reached route.
func (s *Server) Calls(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[route]
}

// LastHeaders returns the headers of the most recent request.
func (s *Server) LastHeaders() http.Header {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.headers.Clone()
}

// Categories returns the current category list.
func (s *Server) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.categories)
}

// Slugs returns the slugs of the stored problems in order.
func (s *Server) Slugs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	slugs := make([]string, 0, len(s.problems))
	for _, p := range s.problems {
		slugs = append(slugs, slugOf(p))
	}
	return slugs
}

func (s *Server) track(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// key on the pattern as registered, RoutePattern would turn
		// "/problems/" into "/problems"
		rctx := chi.NewRouteContext()
		pattern := r.URL.Path
		if router, ok := chi.RouteContext(r.Context()).Routes.(*chi.Mux); ok && router.Match(rctx, r.Method, r.URL.Path) {
			if registered := strings.Join(rctx.RoutePatterns, ""); registered != "" {
				pattern = registered
			}
		}
		route := r.Method + " " + pattern

		s.mu.Lock()
		s.calls[route]++
		s.headers = r.Header.Clone()
		f, failing := s.failures[route]
		s.mu.Unlock()

		if failing {
			writeJSON(w, f.status, record{"detail": record{"message": f.message}})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) listProblems(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.problems)
}

func (s *Server) getProblem(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(chi.URLParam(r, "slug"))
	if idx < 0 {
		writeJSON(w, http.StatusNotFound, record{"detail": record{"error": "problem not found"}})
		return
	}
	writeJSON(w, http.StatusOK, s.problems[idx])
}

func (s *Server) createProblem(w http.ResponseWriter, r *http.Request) {
	var rec record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, record{"detail": record{"error": err.Error()}})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(slugOf(rec)) >= 0 {
		writeJSON(w, http.StatusConflict, record{"detail": record{"error": "problem already exists"}})
		return
	}
	s.problems = append(s.problems, rec)
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) updateProblem(w http.ResponseWriter, r *http.Request) {
	var rec record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, record{"detail": record{"error": err.Error()}})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(chi.URLParam(r, "slug"))
	if idx < 0 {
		writeJSON(w, http.StatusNotFound, record{"detail": record{"error": "problem not found"}})
		return
	}
	s.problems[idx] = rec
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) deleteProblem(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(chi.URLParam(r, "slug"))
	if idx < 0 {
		writeJSON(w, http.StatusNotFound, record{"detail": record{"error": "problem not found"}})
		return
	}
	s.problems = slices.Delete(s.problems, idx, idx+1)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) addSolution(w http.ResponseWriter, r *http.Request) {
	var solution record
	if err := json.NewDecoder(r.Body).Decode(&solution); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, record{"detail": record{"error": err.Error()}})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(chi.URLParam(r, "slug"))
	if idx < 0 {
		writeJSON(w, http.StatusNotFound, record{"detail": record{"error": "problem not found"}})
		return
	}
	solutions, _ := s.problems[idx]["solutions"].([]any)
	s.problems[idx]["solutions"] = append(solutions, solution)
	writeJSON(w, http.StatusCreated, record{"status": "ok"})
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.categories)
}

func (s *Server) createCategory(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Name == "" {
		writeJSON(w, http.StatusUnprocessableEntity, record{"detail": record{"message": "name is required"}})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if slices.Contains(s.categories, body.Name) {
		writeJSON(w, http.StatusConflict, record{"detail": record{"message": "category already exists"}})
		return
	}
	s.categories = append(s.categories, body.Name)
	writeJSON(w, http.StatusCreated, record{"name": body.Name})
}

func (s *Server) updateCategory(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Name == "" {
		writeJSON(w, http.StatusUnprocessableEntity, record{"detail": record{"message": "name is required"}})
		return
	}
	old := chi.URLParam(r, "name")
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := slices.Index(s.categories, old)
	if idx < 0 {
		writeJSON(w, http.StatusNotFound, record{"detail": record{"message": "category not found"}})
		return
	}
	s.categories[idx] = body.Name
	for _, p := range s.problems {
		p["categories"] = renameLabel(p["categories"], old, body.Name)
	}
	writeJSON(w, http.StatusOK, record{"name": body.Name})
}

func (s *Server) deleteCategory(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := slices.Index(s.categories, name)
	if idx < 0 {
		writeJSON(w, http.StatusNotFound, record{"detail": record{"message": "category not found"}})
		return
	}
	s.categories = slices.Delete(s.categories, idx, idx+1)
	for _, p := range s.problems {
		p["categories"] = renameLabel(p["categories"], name, "")
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) indexOf(slug string) int {
	return slices.IndexFunc(s.problems, func(p record) bool {
		return slugOf(p) == slug
	})
}

func slugOf(p record) string {
	slug, _ := p["slug_id"].(string)
	return slug
}

// renameLabel replaces old with replacement in a decoded label list,
// dropping it when replacement is empty.
func renameLabel(labels any, old, replacement string) []any {
	list, _ := labels.([]any)
	out := make([]any, 0, len(list))
	for _, label := range list {
		if label == old {
			if replacement == "" {
				continue
			}
			label = replacement
		}
		out = append(out, label)
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
