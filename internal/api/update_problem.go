package api

import (
	"fmt"
	"net/http"

	"github.com/tcp_snm/algodex/internal/service/problem_service"
)

func (a *Api) HandlerUpdateProblem(w http.ResponseWriter, r *http.Request) {
	slug := chiParam(r, "slug")

	var request problem_service.Problem
	err := decodeJsonBody(r.Body, &request)
	if err != nil {
		msg := fmt.Sprintf("invalid request payload, %s", err.Error())
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	problemResponse, err := a.ProblemServiceConfig.UpdateProblem(r.Context(), slug, request)
	if err != nil {
		handlerError(err, w)
		return
	}

	respondWithValue(w, http.StatusOK, problemResponse)
}

func (a *Api) HandlerDeleteProblem(w http.ResponseWriter, r *http.Request) {
	slug := chiParam(r, "slug")

	if err := a.ProblemServiceConfig.DeleteProblem(r.Context(), slug); err != nil {
		handlerError(err, w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
