package tracing

// Span attribute keys.
const (
	AttributeJobID           = "update_job.id"
	AttributeBaseCommitSHA   = "update_job.base_commit_sha"
	AttributeDependencyNames = "update_job.dependency_names"
	AttributeCloseReason     = "update_job.close_reason"
	AttributeErrorType       = "update_job.error_type"
	AttributeMetric          = "update_job.metric"
	AttributeMetricTagPrefix = "update_job.metric.tag."
)
