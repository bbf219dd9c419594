package repositories

import (
	"context"
	"sort"

	"github.com/rios0rios0/jobreporter/internal/domain/entities"
	domainRepos "github.com/rios0rios0/jobreporter/internal/domain/repositories"
)

// ErrorRecorderRegistry fans job errors out to every registered recorder.
type ErrorRecorderRegistry struct {
	recorders map[string]domainRepos.ErrorRecorderRepository
}

var _ domainRepos.ErrorRecorderRepository = (*ErrorRecorderRegistry)(nil)

// NewErrorRecorderRegistry creates an empty error recorder registry.
func NewErrorRecorderRegistry() *ErrorRecorderRegistry {
	return &ErrorRecorderRegistry{
		recorders: make(map[string]domainRepos.ErrorRecorderRepository),
	}
}

// Register adds a recorder under the given name (e.g. "log").
func (r *ErrorRecorderRegistry) Register(name string, recorder domainRepos.ErrorRecorderRepository) {
	r.recorders[name] = recorder
}

// Get returns the recorder with the given name, or nil if not registered.
func (r *ErrorRecorderRegistry) Get(name string) domainRepos.ErrorRecorderRepository {
	return r.recorders[name]
}

// Names returns the registered recorder names in sorted order.
func (r *ErrorRecorderRegistry) Names() []string {
	names := make([]string, 0, len(r.recorders))
	for name := range r.recorders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RecordUpdateJobError forwards the event to every recorder, in name order.
func (r *ErrorRecorderRegistry) RecordUpdateJobError(ctx context.Context, event entities.ErrorEvent) {
	for _, name := range r.Names() {
		r.recorders[name].RecordUpdateJobError(ctx, event)
	}
}
