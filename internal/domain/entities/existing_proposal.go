package entities

import "strings"

// ExistingProposalState reflects the currently open pull request, if any, that a job may replace.
type ExistingProposalState struct {
	TrackedDependencyNames []string
	IsUpdateInProgress     bool
}

// ShouldReplace reports whether the change targets a different dependency set
// than the pull request being updated. Names are compared case-insensitively,
// ignoring order and duplicates.
func ShouldReplace(existing ExistingProposalState, change *ChangeDescriptor) bool {
	if !existing.IsUpdateInProgress {
		return false
	}

	var changed []string
	if change != nil {
		changed = change.UpdatedDependencyNames()
	}

	return !sameNameSet(nameSet(existing.TrackedDependencyNames), nameSet(changed))
}

func nameSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[strings.ToLower(name)] = struct{}{}
	}
	return set
}

func sameNameSet(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for name := range a {
		if _, ok := b[name]; !ok {
			return false
		}
	}
	return true
}
