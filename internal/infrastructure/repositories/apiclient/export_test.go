package apiclient

// ResolveProxy exports resolveProxy for testing.
var ResolveProxy = resolveProxy //nolint:gochecknoglobals // test export

// IsTransient exports isTransient for testing.
var IsTransient = isTransient //nolint:gochecknoglobals // test export

// RandomBackoff exports randomBackoff for testing.
var RandomBackoff = randomBackoff //nolint:gochecknoglobals // test export
