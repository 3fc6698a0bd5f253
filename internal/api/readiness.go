package api

import (
	"net/http"
	"time"
)

func (a *Api) HandlerReadiness(w http.ResponseWriter, r *http.Request) {
	snapshot := a.ProblemServiceConfig.Snapshot()
	response := struct {
		Status    string     `json:"status"`
		Loaded    bool       `json:"loaded"`
		Problems  int        `json:"problems"`
		FetchedAt *time.Time `json:"fetched_at,omitempty"`
	}{
		Status:   "ok",
		Loaded:   snapshot.Loaded(),
		Problems: len(snapshot.Problems),
	}
	if snapshot.Loaded() {
		response.FetchedAt = &snapshot.FetchedAt
	}
	respondWithValue(w, http.StatusOK, response)
}
