//go:build unit

package commands_test

import (
	"github.com/rios0rios0/jobreporter/internal/domain/entities"
	"github.com/rios0rios0/jobreporter/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/jobreporter/internal/infrastructure/repositories"
	doubles "github.com/rios0rios0/jobreporter/test/infrastructure/repositorydoubles"
)

func newSettings() *entities.Settings {
	return &entities.Settings{
		API: entities.APISettings{BaseURL: "https://updates.example.com", JobID: "42", Token: "secret"},
		Job: entities.JobSettings{
			Source: entities.JobSource{Provider: "github", Repo: "acme/web", Directory: "/"},
		},
	}
}

// factoryFor returns a client factory handing out the spy and recording the identities asked for.
func factoryFor(spy *doubles.SpyAPIClientRepository, identities *[]entities.JobIdentity) infraRepos.APIClientFactory {
	return func(identity entities.JobIdentity) repositories.APIClientRepository {
		if identities != nil {
			*identities = append(*identities, identity)
		}
		return spy
	}
}
