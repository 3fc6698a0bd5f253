package category_service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"
	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/algodex/internal/algo_errors"
	"github.com/tcp_snm/algodex/internal/remote_api"
	"github.com/tcp_snm/algodex/internal/service"
	"github.com/tcp_snm/algodex/internal/service/problem_service"
)

type CategoryService struct {
	Remote               *remote_api.Client
	ProblemServiceConfig *problem_service.ProblemService
}

type CategoryRequest struct {
	Name string `json:"name" validate:"notblank,max=50"`
}

type UpdateCategoryRequest struct {
	OldName string `json:"old_name" validate:"notblank"`
	NewName string `json:"name" validate:"notblank,max=50"`
}

func (c *CategoryService) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.Remote.Get(ctx, "list categories", "/categories", &categories); err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []string{}
	}
	return categories, nil
}

// SelectorOptions lists the choices of a category selector, All first.
func (c *CategoryService) SelectorOptions() []string {
	return append([]string{problem_service.SelectorAll}, c.ProblemServiceConfig.Categories()...)
}

func (c *CategoryService) CreateCategory(ctx context.Context, name string) error {
	request := CategoryRequest{Name: strings.TrimSpace(name)}
	if err := service.ValidateInput(request); err != nil {
		return err
	}

	if err := c.Remote.Post(ctx, "create category", "/categories", request, nil); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"category": request.Name,
		"actor":    service.ActorFromContext(ctx),
	}).Info("created category")

	c.refreshAfterChange(ctx)
	return nil
}

func (c *CategoryService) UpdateCategory(ctx context.Context, oldName, newName string) error {
	request := UpdateCategoryRequest{
		OldName: strings.TrimSpace(oldName),
		NewName: strings.TrimSpace(newName),
	}
	if err := service.ValidateInput(request); err != nil {
		return err
	}
	if request.OldName == request.NewName {
		return fmt.Errorf("%w, new category name is the same as the old one", algo_errors.ErrInvalidInput)
	}

	err := c.Remote.Put(
		ctx,
		"update category",
		"/categories/"+remote_api.PathEscape(request.OldName),
		CategoryRequest{Name: request.NewName},
		nil,
	)
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"from":  request.OldName,
		"to":    request.NewName,
		"actor": service.ActorFromContext(ctx),
	}).Info("renamed category")

	c.refreshAfterChange(ctx)
	return nil
}

func (c *CategoryService) DeleteCategory(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if err := service.ValidateVar("name", name, "notblank"); err != nil {
		return err
	}

	err := c.Remote.Delete(ctx, "delete category", "/categories/"+remote_api.PathEscape(name))
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"category": name,
		"actor":    service.ActorFromContext(ctx),
	}).Info("deleted category")

	c.refreshAfterChange(ctx)
	return nil
}

// Known reports whether name is one of the snapshot categories.
func (c *CategoryService) Known(name string) bool {
	return slices.Contains(c.ProblemServiceConfig.Categories(), name)
}

// Suggest returns the closest known category to name, or "" if nothing is close.
func (c *CategoryService) Suggest(name string) string {
	return Suggest(name, c.ProblemServiceConfig.Categories())
}

func Suggest(name string, categories []string) string {
	name = strings.TrimSpace(name)
	if name == "" || len(categories) == 0 {
		return ""
	}
	for _, category := range categories {
		if strings.EqualFold(category, name) {
			return category
		}
	}
	matches := fuzzy.Find(strings.ToLower(name), lowered(categories))
	if len(matches) == 0 {
		return ""
	}
	return categories[matches[0].Index]
}

func lowered(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(v)
	}
	return out
}

// category changes rename or drop labels on problems, so the whole
// snapshot is fetched again. A failed refresh does not undo the change.
func (c *CategoryService) refreshAfterChange(ctx context.Context) {
	if c.ProblemServiceConfig == nil {
		return
	}
	if _, err := c.ProblemServiceConfig.Refresh(ctx); err != nil {
		log.WithError(err).Warn("category changed but problems could not be refreshed")
	}
}
