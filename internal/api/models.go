package api

import (
	"github.com/tcp_snm/algodex/internal/service/category_service"
	"github.com/tcp_snm/algodex/internal/service/problem_service"
)

type Api struct {
	ProblemServiceConfig  *problem_service.ProblemService
	CategoryServiceConfig *category_service.CategoryService
}
