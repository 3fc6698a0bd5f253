package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/algodex/internal/api"
	"github.com/tcp_snm/algodex/internal/config"
	"github.com/tcp_snm/algodex/internal/metrics"
	"github.com/tcp_snm/algodex/internal/remote_api"
	"github.com/tcp_snm/algodex/internal/service"
	"github.com/tcp_snm/algodex/internal/service/category_service"
	"github.com/tcp_snm/algodex/internal/service/problem_service"
)

// services is everything a command needs, built once per invocation.
type services struct {
	cfg        *config.Config
	remote     *remote_api.Client
	problems   *problem_service.ProblemService
	categories *category_service.CategoryService
}

func initRemote(cfg *config.Config, m *metrics.Metrics) (*remote_api.Client, error) {
	log.Info("initializing remote api client")
	opts := cfg.RemoteOptions()
	opts.Metrics = m
	return remote_api.New(opts)
}

func initProblemService(
	cfg *config.Config,
	remote *remote_api.Client,
	m *metrics.Metrics,
) (*problem_service.ProblemService, error) {
	log.Info("initializing problem service")
	return problem_service.NewProblemService(remote, m, cfg.DetailCacheSize)
}

func initCategoryService(
	remote *remote_api.Client,
	ps *problem_service.ProblemService,
) *category_service.CategoryService {
	log.Info("initializing category service")
	return &category_service.CategoryService{
		Remote:               remote,
		ProblemServiceConfig: ps,
	}
}

func initServices(cfg *config.Config, reg prometheus.Registerer) (*services, error) {
	var m *metrics.Metrics
	if reg != nil {
		m = metrics.New(reg)
	}

	remote, err := initRemote(cfg, m)
	if err != nil {
		return nil, err
	}
	log.Info("remote api client created")
	ps, err := initProblemService(cfg, remote, m)
	if err != nil {
		return nil, err
	}
	log.Info("problem service created")
	cs := initCategoryService(remote, ps)
	log.Info("category service created")

	return &services{
		cfg:        cfg,
		remote:     remote,
		problems:   ps,
		categories: cs,
	}, nil
}

func initApi(s *services) *api.Api {
	log.Info("initializing api config")
	return &api.Api{
		ProblemServiceConfig:  s.problems,
		CategoryServiceConfig: s.categories,
	}
}

// setup loads configuration and prepares the shared validator.
func setup(configFile string) (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	config.ConfigureLogging(cfg)
	service.InitializeServices()
	return cfg, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := Execute(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}
