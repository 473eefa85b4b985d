package constants

// Configuration files rendered into every role ConfigMap.
const (
	SparkDefaultsConf = "spark-defaults.conf"
	SparkEnvSh        = "spark-env.sh"
)

// spark-defaults.conf property keys set by the operator.
const (
	SparkEventLogEnabled       = "spark.eventLog.enabled"
	SparkEventLogDir           = "spark.eventLog.dir"
	SparkHistoryFSLogDirectory = "spark.history.fs.logDirectory"
	SparkAuthenticate          = "spark.authenticate"
	SparkAuthenticateSecret    = "spark.authenticate.secret" // #nosec G101 -- property name, not a credential
	SparkPortMaxRetries        = "spark.port.maxRetries"
	SparkHistoryStorePath      = "spark.history.store.path"
	SparkHistoryUIPort         = "spark.history.ui.port"
	SparkMasterPortConf        = "spark.master.port"
)

// Defaults applied when the cluster spec leaves a value unset.
const (
	SparkDefaultLogDir         = "/tmp"
	SparkDefaultMaxPortRetries = 0
	SparkDefaultMasterPort     = 7077
)

// Startup and discovery values.
const (
	SparkMasterURLScheme       = "spark://"
	SparkStartScriptTemplate   = "spark-%s-bin-hadoop2.7/sbin/start-%s.sh"
	SparkConfigRootPlaceholder = "{{configroot}}"
	SparkConfDirValue          = SparkConfigRootPlaceholder + "/conf"
	SparkNoDaemonizeValue      = "true"
)
