package controllers

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rios0rios0/jobreporter/internal/domain/entities"
)

// changeDocument is the JSON file accepted by report-update.
type changeDocument struct {
	Dependencies []dependencyDocument      `json:"dependencies"`
	UpdatedFiles []entities.DependencyFile `json:"updated_dependency_files"`
	Group        *entities.DependencyGroup `json:"dependency_group"`
}

// dependencyListDocument is the JSON file accepted by update-dependency-list.
type dependencyListDocument struct {
	Dependencies    []dependencyDocument `json:"dependencies"`
	DependencyFiles []string             `json:"dependency_files"`
}

type dependencyDocument struct {
	Name                 string                 `json:"name"`
	Version              string                 `json:"version"`
	PreviousVersion      string                 `json:"previous_version"`
	Requirements         []entities.Requirement `json:"requirements"`
	PreviousRequirements []entities.Requirement `json:"previous_requirements"`
	Removed              bool                   `json:"removed"`
}

func (d dependencyDocument) toEntity() entities.Dependency {
	return entities.Dependency{
		Name:                 d.Name,
		Version:              d.Version,
		PreviousVersion:      d.PreviousVersion,
		Requirements:         d.Requirements,
		PreviousRequirements: d.PreviousRequirements,
		Removed:              d.Removed,
	}
}

func toEntities(docs []dependencyDocument) []entities.Dependency {
	deps := make([]entities.Dependency, 0, len(docs))
	for _, doc := range docs {
		deps = append(deps, doc.toEntity())
	}
	return deps
}

func readJSONFile(path string, target any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %q: %w", path, err)
	}
	if unmarshalErr := json.Unmarshal(data, target); unmarshalErr != nil {
		return fmt.Errorf("failed to parse %q: %w", path, unmarshalErr)
	}
	return nil
}
