package commands

// PlanOperations exports planOperations for testing.
var PlanOperations = planOperations //nolint:gochecknoglobals // test export

// HighestUpdateType exports highestUpdateType for testing.
var HighestUpdateType = highestUpdateType //nolint:gochecknoglobals // test export
