package constants

// spark-env.sh variables set by the operator.
const (
	EnvSparkMasterPort      = "SPARK_MASTER_PORT"
	EnvSparkMasterWebUIPort = "SPARK_MASTER_WEBUI_PORT"
	EnvSparkWorkerCores     = "SPARK_WORKER_CORES"
	EnvSparkWorkerMemory    = "SPARK_WORKER_MEMORY"
	EnvSparkWorkerPort      = "SPARK_WORKER_PORT"
	EnvSparkWorkerWebUIPort = "SPARK_WORKER_WEBUI_PORT"
)

// Container environment variables that must exist before Spark reads its own
// configuration. They are never part of spark-env.sh.
const (
	// EnvSparkNoDaemonize keeps start scripts in the foreground so the process
	// supervisor does not lose track of the role process.
	EnvSparkNoDaemonize = "SPARK_NO_DAEMONIZE"
	// EnvSparkConfDir points Spark at the rendered ConfigMap.
	EnvSparkConfDir = "SPARK_CONF_DIR"
)

// Operator process environment.
const (
	EnvWatchNamespace    = "WATCH_NAMESPACE"
	EnvProductConfigPath = "SPARK_OPERATOR_PRODUCT_CONFIG"
)
