package commands

import (
	"context"
	"fmt"
	"strconv"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/jobreporter/internal/domain/entities"
	"github.com/rios0rios0/jobreporter/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/jobreporter/internal/infrastructure/repositories"
)

// ProposalReportedMetric is incremented after every created or updated pull request.
const ProposalReportedMetric = "updater.proposal_reported"

// ReportUpdate is the interface for the report-update command.
type ReportUpdate interface {
	Execute(ctx context.Context, settings *entities.Settings, opts ReportUpdateOptions) (*ReportUpdateResult, error)
}

// ReportUpdateOptions holds the computed change and where it was computed from.
type ReportUpdateOptions struct {
	Dependencies  []entities.Dependency
	UpdatedFiles  []entities.DependencyFile
	Group         *entities.DependencyGroup
	BaseCommitSHA string // If empty, resolved from RepoDir
	RepoDir       string
	DryRun        bool
}

// ReportUpdateResult lists the operations that were (or would be, in dry-run mode) sent.
type ReportUpdateResult struct {
	Operations []string
}

// ReportUpdateCommand decides between creating, updating, replacing or closing
// the job's pull request and reports the decision to the orchestration service.
type ReportUpdateCommand struct {
	clientFactory  infraRepos.APIClientFactory
	messageBuilder repositories.MessageBuilderRepository
	baseCommit     repositories.BaseCommitRepository
}

// NewReportUpdateCommand creates a new ReportUpdateCommand.
func NewReportUpdateCommand(
	clientFactory infraRepos.APIClientFactory,
	messageBuilder repositories.MessageBuilderRepository,
	baseCommit repositories.BaseCommitRepository,
) *ReportUpdateCommand {
	return &ReportUpdateCommand{
		clientFactory:  clientFactory,
		messageBuilder: messageBuilder,
		baseCommit:     baseCommit,
	}
}

// Execute reports the change described by opts.
func (it *ReportUpdateCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts ReportUpdateOptions,
) (*ReportUpdateResult, error) {
	job := settings.NewJob()
	change := entities.NewChangeDescriptor(entities.ChangeInput{
		Job:                 job,
		UpdatedDependencies: opts.Dependencies,
		UpdatedFiles:        opts.UpdatedFiles,
		Group:               opts.Group,
		MessageOptions:      settings.MessageOptions(),
		MessageBuilder:      it.messageBuilder,
	})
	if err := change.Validate(); err != nil {
		return nil, fmt.Errorf("invalid change: %w", err)
	}

	sha, err := resolveBaseCommit(ctx, it.baseCommit, opts.BaseCommitSHA, opts.RepoDir)
	if err != nil {
		return nil, err
	}

	plan := planOperations(job.ExistingProposal(), change, sha)
	result := &ReportUpdateResult{}
	for _, op := range plan {
		result.Operations = append(result.Operations, op.Name())
	}

	if opts.DryRun {
		logger.Infof("[dry-run] Would send %v for %s", result.Operations, describe(change))
		return result, nil
	}
	if len(plan) == 0 {
		logger.Info("No dependency changes to report, nothing to do.")
		return result, nil
	}

	client := it.clientFactory(settings.Identity())
	for _, op := range plan {
		logger.Infof("Sending %s for %s", op.Name(), describe(change))
		if sendErr := client.Send(ctx, op); sendErr != nil {
			return result, fmt.Errorf("failed to send %s: %w", op.Name(), sendErr)
		}
	}

	last := plan[len(plan)-1].Name()
	if last == entities.OperationCreatePullRequest || last == entities.OperationUpdatePullRequest {
		client.IncrementMetric(ctx, ProposalReportedMetric, map[string]string{
			"operation":   last,
			"grouped":     strconv.FormatBool(change.GroupedUpdate()),
			"update_type": highestUpdateType(change.UpdatedDependencies()),
		})
	}

	return result, nil
}

// planOperations chooses the operations to send for the change.
func planOperations(
	existing entities.ExistingProposalState,
	change *entities.ChangeDescriptor,
	baseCommitSHA string,
) []entities.Operation {
	hasChanges := len(change.UpdatedDependencies()) > 0

	switch {
	case existing.IsUpdateInProgress && !hasChanges:
		return []entities.Operation{
			entities.ClosePullRequest{
				DependencyNames: entities.DependencyNameList(existing.TrackedDependencyNames...),
				Reason:          entities.CloseReasonUpdateNoLongerPossible,
			},
		}
	case entities.ShouldReplace(existing, change):
		return []entities.Operation{
			entities.ClosePullRequest{
				DependencyNames: entities.DependencyNameList(existing.TrackedDependencyNames...),
				Reason:          entities.CloseReasonDependenciesChanged,
			},
			entities.CreatePullRequest{Change: change, BaseCommitSHA: baseCommitSHA},
		}
	case existing.IsUpdateInProgress:
		return []entities.Operation{
			entities.UpdatePullRequest{Change: change, BaseCommitSHA: baseCommitSHA},
		}
	case !hasChanges:
		return nil
	default:
		return []entities.Operation{
			entities.CreatePullRequest{Change: change, BaseCommitSHA: baseCommitSHA},
		}
	}
}

func describe(change *entities.ChangeDescriptor) string {
	if change.GroupedUpdate() {
		return fmt.Sprintf("group %q (%s)", change.Group().Name, change.Humanized())
	}
	if humanized := change.Humanized(); humanized != "" {
		return humanized
	}
	return "no dependencies"
}

// updateTypeRank orders update types from least to most significant.
var updateTypeRank = map[string]int{ //nolint:gochecknoglobals // read-only lookup
	"unknown": 0,
	"removed": 1,
	"patch":   2,
	"minor":   3,
	"major":   4,
}

func highestUpdateType(deps []entities.Dependency) string {
	highest := "unknown"
	for _, dep := range deps {
		if updateType := dep.UpdateType(); updateTypeRank[updateType] > updateTypeRank[highest] {
			highest = updateType
		}
	}
	return highest
}
