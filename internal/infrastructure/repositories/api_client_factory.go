package repositories

import (
	"github.com/rios0rios0/jobreporter/internal/domain/entities"
	domainRepos "github.com/rios0rios0/jobreporter/internal/domain/repositories"
	"github.com/rios0rios0/jobreporter/internal/infrastructure/repositories/apiclient"
)

// APIClientFactory is a constructor function that creates an APIClientRepository for one job.
type APIClientFactory func(identity entities.JobIdentity) domainRepos.APIClientRepository

// NewAPIClientFactory binds the tracer and recorders shared by every client.
func NewAPIClientFactory(
	tracer domainRepos.TracerRepository,
	dispatchRecorder domainRepos.DispatchRecorderRepository,
	errorRecorder domainRepos.ErrorRecorderRepository,
) APIClientFactory {
	return func(identity entities.JobIdentity) domainRepos.APIClientRepository {
		return apiclient.NewHTTPAPIClientRepository(
			identity,
			apiclient.WithTracer(tracer),
			apiclient.WithDispatchRecorder(dispatchRecorder),
			apiclient.WithErrorRecorder(errorRecorder),
		)
	}
}
