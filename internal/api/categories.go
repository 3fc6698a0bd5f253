package api

import (
	"fmt"
	"net/http"

	"github.com/tcp_snm/algodex/internal/service/category_service"
)

func (a *Api) HandlerGetCategories(w http.ResponseWriter, r *http.Request) {
	// selector lists come from the snapshot, with All first
	if r.URL.Query().Get("selector") == "true" {
		respondWithValue(w, http.StatusOK, a.CategoryServiceConfig.SelectorOptions())
		return
	}

	categories, err := a.CategoryServiceConfig.ListCategories(r.Context())
	if err != nil {
		handlerError(err, w)
		return
	}

	respondWithValue(w, http.StatusOK, categories)
}

func (a *Api) HandlerCreateCategory(w http.ResponseWriter, r *http.Request) {
	var request category_service.CategoryRequest
	err := decodeJsonBody(r.Body, &request)
	if err != nil {
		msg := fmt.Sprintf("invalid request payload, %s", err.Error())
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	if err := a.CategoryServiceConfig.CreateCategory(r.Context(), request.Name); err != nil {
		handlerError(err, w)
		return
	}

	respondWithValue(w, http.StatusCreated, request)
}

func (a *Api) HandlerUpdateCategory(w http.ResponseWriter, r *http.Request) {
	var request category_service.UpdateCategoryRequest
	err := decodeJsonBody(r.Body, &request)
	if err != nil {
		msg := fmt.Sprintf("invalid request payload, %s", err.Error())
		http.Error(w, msg, http.StatusBadRequest)
		return
	}
	// the category being renamed comes from the path
	request.OldName = chiParam(r, "name")

	err = a.CategoryServiceConfig.UpdateCategory(r.Context(), request.OldName, request.NewName)
	if err != nil {
		handlerError(err, w)
		return
	}

	respondWithValue(w, http.StatusOK, category_service.CategoryRequest{Name: request.NewName})
}

func (a *Api) HandlerDeleteCategory(w http.ResponseWriter, r *http.Request) {
	name := chiParam(r, "name")

	if err := a.CategoryServiceConfig.DeleteCategory(r.Context(), name); err != nil {
		handlerError(err, w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
