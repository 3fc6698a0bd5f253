package api

import (
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/algodex/internal/service"
)

func (a *Api) HandlerRefresh(w http.ResponseWriter, r *http.Request) {
	snapshot, err := a.ProblemServiceConfig.Refresh(r.Context())
	if err != nil {
		handlerError(err, w)
		return
	}

	log.WithFields(log.Fields{
		"actor":    service.ActorFromContext(r.Context()),
		"problems": len(snapshot.Problems),
	}).Info("snapshot refreshed on request")

	respondWithValue(w, http.StatusOK, struct {
		Problems   int    `json:"problems"`
		Categories int    `json:"categories"`
		FetchedAt  string `json:"fetched_at"`
	}{
		Problems:   len(snapshot.Problems),
		Categories: len(snapshot.Categories),
		FetchedAt:  snapshot.FetchedAt.UTC().Format(time.RFC3339),
	})
}
