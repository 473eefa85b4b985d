package constants

// Resource name suffixes used by the operator when creating per-selector resources.
const (
	SuffixConfigMap = "-cm"
)

// Controller names registered with the manager.
const (
	ControllerNameSparkCluster = "sparkcluster"
)
