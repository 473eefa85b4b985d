package constants

// Common Kubernetes label keys used by the operator.
const (
	LabelAppName      = "app.kubernetes.io/name"
	LabelAppInstance  = "app.kubernetes.io/instance"
	LabelAppManagedBy = "app.kubernetes.io/managed-by"
	LabelAppComponent = "app.kubernetes.io/component"
	LabelAppVersion   = "app.kubernetes.io/version"

	LabelSparkCluster      = "spark.stackable.tech/cluster"
	LabelSparkNodeType     = "spark.stackable.tech/node-type"
	LabelSparkSelectorHash = "spark.stackable.tech/selector-hash"
)

// Common label values used by the operator.
const (
	LabelValueAppNameSpark              = "spark"
	LabelValueAppManagedBySparkOperator = "spark-operator"
)

// Annotation keys used by the operator.
const (
	// AnnotationMasterURL carries the master connection string on worker ConfigMaps.
	AnnotationMasterURL = "spark.stackable.tech/master-url"
	// AnnotationStartCommand carries the role start script on every role ConfigMap.
	AnnotationStartCommand = "spark.stackable.tech/start-command"
	// AnnotationStartupEnv carries the container environment the role process
	// must be started with, one "NAME=value" line per variable.
	AnnotationStartupEnv = "spark.stackable.tech/startup-env"
)
