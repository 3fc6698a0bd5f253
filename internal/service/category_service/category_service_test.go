package category_service_test

import (
	"context"
	"net/http"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tcp_snm/algodex/internal/algo_errors"
	"github.com/tcp_snm/algodex/internal/remote_api"
	"github.com/tcp_snm/algodex/internal/remote_api/fakeapi"
	"github.com/tcp_snm/algodex/internal/service"
	"github.com/tcp_snm/algodex/internal/service/category_service"
	"github.com/tcp_snm/algodex/internal/service/problem_service"
)

func TestMain(m *testing.M) {
	logrus.SetLevel(logrus.WarnLevel)
	service.InitializeServices()
	os.Exit(m.Run())
}

func seedProblems() []map[string]any {
	return []map[string]any{
		{"slug_id": "two-sum", "title": "Two Sum", "difficulty": "Easy", "categories": []string{"Array", "Hash Table"}},
		{"slug_id": "valid-parentheses", "title": "Valid Parentheses", "difficulty": "Easy", "categories": []string{"Stack"}},
	}
}

func newCategoryService(t *testing.T) (*category_service.CategoryService, *problem_service.ProblemService, *fakeapi.Server) {
	t.Helper()
	api := fakeapi.New(seedProblems(), []string{"Array", "Hash Table", "Stack"})
	t.Cleanup(api.Close)

	remote, err := remote_api.New(remote_api.Options{BaseURL: api.URL})
	require.NoError(t, err)
	ps, err := problem_service.NewProblemService(remote, nil, 0)
	require.NoError(t, err)
	_, err = ps.Refresh(context.Background())
	require.NoError(t, err)

	return &category_service.CategoryService{
		Remote:               remote,
		ProblemServiceConfig: ps,
	}, ps, api
}

func TestListCategories(t *testing.T) {
	cs, _, _ := newCategoryService(t)
	categories, err := cs.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Array", "Hash Table", "Stack"}, categories)
}

func TestSelectorOptionsStartWithAll(t *testing.T) {
	cs, _, _ := newCategoryService(t)
	assert.Equal(t, []string{"All", "Array", "Hash Table", "Stack"}, cs.SelectorOptions())
}

func TestCreateCategoryRefreshesSnapshot(t *testing.T) {
	cs, ps, api := newCategoryService(t)

	require.NoError(t, cs.CreateCategory(context.Background(), "  Graph  "))
	assert.Contains(t, api.Categories(), "Graph")
	assert.Contains(t, ps.Categories(), "Graph")
	assert.True(t, cs.Known("Graph"))
}

func TestCreateCategoryValidation(t *testing.T) {
	cs, _, api := newCategoryService(t)

	err := cs.CreateCategory(context.Background(), "   ")
	require.ErrorIs(t, err, algo_errors.ErrInvalidInput)
	assert.Contains(t, err.Error(), "name is required")

	long := make([]byte, service.MaxCategoryLength+1)
	for i := range long {
		long[i] = 'a'
	}
	err = cs.CreateCategory(context.Background(), string(long))
	assert.ErrorIs(t, err, algo_errors.ErrInvalidInput)

	err = cs.CreateCategory(context.Background(), "Array")
	assert.ErrorIs(t, err, algo_errors.ErrEntityAlreadyExist)
	assert.Equal(t, 1, api.Calls("POST /categories"))
}

func TestUpdateCategoryRenamesProblemLabels(t *testing.T) {
	cs, ps, _ := newCategoryService(t)

	require.NoError(t, cs.UpdateCategory(context.Background(), "Hash Table", "Hash Map"))

	assert.Equal(t, []string{"Array", "Hash Map", "Stack"}, ps.Categories())
	got := ps.ListProblems(problem_service.FilterState{Category: "Hash Map"})
	require.Len(t, got, 1)
	assert.Equal(t, "two-sum", got[0].SlugID)
	assert.Empty(t, ps.ListProblems(problem_service.FilterState{Category: "Hash Table"}))
}

func TestUpdateCategoryErrors(t *testing.T) {
	cs, _, api := newCategoryService(t)

	err := cs.UpdateCategory(context.Background(), "Stack", " Stack ")
	assert.ErrorIs(t, err, algo_errors.ErrInvalidInput)

	err = cs.UpdateCategory(context.Background(), "", "Queue")
	assert.ErrorIs(t, err, algo_errors.ErrInvalidInput)

	err = cs.UpdateCategory(context.Background(), "Graph", "Graphs")
	assert.ErrorIs(t, err, algo_errors.ErrNotFound)
	assert.Equal(t, 1, api.Calls("PUT /categories/{name}"))
}

func TestDeleteCategoryDropsLabel(t *testing.T) {
	cs, ps, api := newCategoryService(t)

	require.NoError(t, cs.DeleteCategory(context.Background(), "Stack"))
	assert.NotContains(t, api.Categories(), "Stack")
	assert.NotContains(t, ps.Categories(), "Stack")
	assert.Empty(t, ps.ListProblems(problem_service.FilterState{Category: "Stack"}))

	err := cs.DeleteCategory(context.Background(), "Stack")
	assert.ErrorIs(t, err, algo_errors.ErrNotFound)

	err = cs.DeleteCategory(context.Background(), " ")
	assert.ErrorIs(t, err, algo_errors.ErrInvalidInput)
}

func TestChangeSucceedsWhenRefreshFails(t *testing.T) {
	cs, ps, api := newCategoryService(t)
	api.Fail("GET /problems/", http.StatusBadGateway, "upstream down")

	require.NoError(t, cs.CreateCategory(context.Background(), "Graph"))
	assert.Contains(t, api.Categories(), "Graph")
	// previous snapshot is kept
	assert.NotContains(t, ps.Categories(), "Graph")
}

func TestSuggest(t *testing.T) {
	categories := []string{"Array", "Hash Table", "Dynamic Programming", "Two Pointers"}

	assert.Equal(t, "Array", category_service.Suggest("array", categories))
	assert.Equal(t, "Dynamic Programming", category_service.Suggest("dynprog", categories))
	assert.Equal(t, "Two Pointers", category_service.Suggest("twoptr", categories))
	assert.Equal(t, "", category_service.Suggest("zzz", categories))
	assert.Equal(t, "", category_service.Suggest("", categories))
	assert.Equal(t, "", category_service.Suggest("array", nil))
}
