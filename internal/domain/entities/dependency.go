package entities

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// ErrRemovedDependencyWithVersion is returned when a dependency flagged as removed still carries a version.
var ErrRemovedDependencyWithVersion = errors.New("removed dependency must not carry a version")

// Requirement is an opaque requirement record as produced by the dependency resolver.
// It is never interpreted here, only forwarded.
type Requirement struct {
	Requirement *string  `json:"requirement"`
	File        string   `json:"file"`
	Groups      []string `json:"groups"`
	Source      any      `json:"source"`
}

// Dependency represents a dependency touched by an update.
type Dependency struct {
	Name                 string
	Version              string // empty when the dependency was removed
	PreviousVersion      string
	Requirements         []Requirement
	PreviousRequirements []Requirement
	Removed              bool
}

// Validate checks that a removed dependency does not carry a version.
func (d Dependency) Validate() error {
	if d.Removed && d.Version != "" {
		return fmt.Errorf("%w: %q has version %q", ErrRemovedDependencyWithVersion, d.Name, d.Version)
	}
	return nil
}

// UpdateType classifies the version bump as "major", "minor" or "patch".
// It returns "removed" for removed dependencies and "unknown" when either
// side is not a valid semantic version.
func (d Dependency) UpdateType() string {
	if d.Removed {
		return "removed"
	}

	previous := normalizeVersion(d.PreviousVersion)
	current := normalizeVersion(d.Version)
	if !semver.IsValid(previous) || !semver.IsValid(current) {
		return "unknown"
	}

	switch {
	case semver.Major(previous) != semver.Major(current):
		return "major"
	case semver.MajorMinor(previous) != semver.MajorMinor(current):
		return "minor"
	default:
		return "patch"
	}
}

// DependencyFile is a manifest or lockfile produced by the update. It is passed through verbatim.
type DependencyFile struct {
	Name            string `json:"name"`
	Directory       string `json:"directory"`
	Content         string `json:"content"`
	Type            string `json:"type,omitempty"`
	SupportFile     bool   `json:"support_file,omitempty"`
	ContentEncoding string `json:"content_encoding,omitempty"`
	Deleted         bool   `json:"deleted,omitempty"`
	Operation       string `json:"operation,omitempty"`
	Mode            string `json:"mode,omitempty"`
}

// DependencyGroup is the named batch a grouped update belongs to.
type DependencyGroup struct {
	Name  string         `json:"name"`
	Rules map[string]any `json:"rules,omitempty"`
}

// normalizeVersion ensures version has 'v' prefix for semver compatibility
func normalizeVersion(version string) string {
	if version == "" || strings.HasPrefix(version, "v") {
		return version
	}
	return "v" + version
}
