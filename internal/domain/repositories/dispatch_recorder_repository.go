package repositories

// DispatchRecorderRepository records the outcome of every dispatch attempt.
type DispatchRecorderRepository interface {
	// ObserveAttempt records one attempt; outcome is "success", "api_error" or "transient_error".
	ObserveAttempt(operation, outcome string)
	// IncRetry records that an attempt is about to be retried.
	IncRetry(operation string)
}
