package repositories

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	domainRepos "github.com/rios0rios0/jobreporter/internal/domain/repositories"
	"github.com/rios0rios0/jobreporter/internal/infrastructure/repositories/errorsink"
	"github.com/rios0rios0/jobreporter/internal/infrastructure/repositories/gitrepo"
	"github.com/rios0rios0/jobreporter/internal/infrastructure/repositories/messages"
	"github.com/rios0rios0/jobreporter/internal/infrastructure/repositories/metrics"
	"github.com/rios0rios0/jobreporter/internal/infrastructure/repositories/tracing"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Metrics live in a per-container registry so repeated containers never collide
	if err := container.Provide(prometheus.NewRegistry); err != nil {
		return err
	}
	if err := container.Provide(func(registry *prometheus.Registry) *metrics.PrometheusRecorderRepository {
		return metrics.NewPrometheusRecorderRepository(registry)
	}); err != nil {
		return err
	}

	// Register error recorder registry with all sinks
	if err := container.Provide(func(prom *metrics.PrometheusRecorderRepository) *ErrorRecorderRegistry {
		reg := NewErrorRecorderRegistry()
		reg.Register("log", errorsink.NewLogrusErrorRecorderRepository())
		reg.Register("prometheus", prom)
		return reg
	}); err != nil {
		return err
	}

	if err := container.Provide(NewAPIClientFactory); err != nil {
		return err
	}

	// Bind interfaces to implementations
	if err := container.Provide(func() domainRepos.TracerRepository {
		return tracing.NewLogrusTracerRepository()
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *metrics.PrometheusRecorderRepository) domainRepos.DispatchRecorderRepository {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *ErrorRecorderRegistry) domainRepos.ErrorRecorderRepository {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func() domainRepos.MessageBuilderRepository {
		return messages.NewDefaultMessageBuilderRepository()
	}); err != nil {
		return err
	}
	if err := container.Provide(func() domainRepos.BaseCommitRepository {
		return gitrepo.NewGitBaseCommitRepository()
	}); err != nil {
		return err
	}

	return nil
}
