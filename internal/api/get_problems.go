package api

import (
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/algodex/internal/service/problem_service"
)

type listProblemsResponse struct {
	Count     int                         `json:"count"`
	Problems  []problem_service.Problem   `json:"problems"`
	Filters   problem_service.FilterState `json:"filters"`
	FetchedAt *time.Time                  `json:"fetched_at"`
	// closest known category when the requested one does not exist
	Suggestion string `json:"category_suggestion,omitempty"`
}

func (a *Api) HandlerGetProblems(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	difficulty, err := problem_service.ParseDifficultySelector(query.Get("difficulty"))
	if err != nil {
		handlerError(err, w)
		return
	}

	state := problem_service.FilterState{
		Search:     query.Get("search"),
		Difficulty: difficulty,
		Category:   strings.TrimSpace(query.Get("category")),
	}
	if state.Category == "" {
		state.Category = problem_service.SelectorAll
	}

	problems := a.ProblemServiceConfig.ListProblems(state)
	response := listProblemsResponse{
		Count:    len(problems),
		Problems: problems,
		Filters:  state,
	}
	if snapshot := a.ProblemServiceConfig.Snapshot(); snapshot.Loaded() {
		response.FetchedAt = &snapshot.FetchedAt
	}

	if state.Category != problem_service.SelectorAll && len(problems) == 0 &&
		a.CategoryServiceConfig != nil && !a.CategoryServiceConfig.Known(state.Category) {
		response.Suggestion = a.CategoryServiceConfig.Suggest(state.Category)
	}

	log.WithFields(log.Fields{
		"search":     state.Search,
		"difficulty": state.Difficulty,
		"category":   state.Category,
		"count":      response.Count,
	}).Debug("listed problems")

	respondWithValue(w, http.StatusOK, response)
}

func (a *Api) HandlerGetProblemBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chiParam(r, "slug")

	problem, err := a.ProblemServiceConfig.GetProblemBySlug(r.Context(), slug)
	if err != nil {
		handlerError(err, w)
		return
	}

	respondWithValue(w, http.StatusOK, problem)
}
