package repositories

import "github.com/rios0rios0/jobreporter/internal/domain/entities"

// MessageBuilderRepository is an alias for the entities' MessageBuilder port.
// It produces commit messages and pull request text for a change.
type MessageBuilderRepository = entities.MessageBuilder
