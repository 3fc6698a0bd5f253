package api

import (
	"fmt"
	"net/http"

	"github.com/tcp_snm/algodex/internal/service/problem_service"
)

func (a *Api) HandlerAddProblem(w http.ResponseWriter, r *http.Request) {
	// decode from body
	var request problem_service.Problem
	err := decodeJsonBody(r.Body, &request)
	if err != nil {
		msg := fmt.Sprintf("invalid request payload, %s", err.Error())
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	// create the problem
	problemResponse, err := a.ProblemServiceConfig.CreateProblem(r.Context(), request)
	if err != nil {
		handlerError(err, w)
		return
	}

	respondWithValue(w, http.StatusCreated, problemResponse)
}

func (a *Api) HandlerAddSolution(w http.ResponseWriter, r *http.Request) {
	slug := chiParam(r, "slug")

	var request problem_service.Solution
	err := decodeJsonBody(r.Body, &request)
	if err != nil {
		msg := fmt.Sprintf("invalid request payload, %s", err.Error())
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	problem, err := a.ProblemServiceConfig.AddSolution(r.Context(), slug, request)
	if err != nil {
		handlerError(err, w)
		return
	}

	respondWithValue(w, http.StatusCreated, problem)
}
