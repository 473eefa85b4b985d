package config

import (
	"strconv"

	sparkv1alpha1 "github.com/dc-tec/spark-operator/api/v1alpha1"
	"github.com/dc-tec/spark-operator/internal/constants"
)

// PropertiesCandidate assembles the spark-defaults.conf candidate for one
// selector. Later tiers override earlier ones: cluster-wide values, then values
// derived from the node type's typed options, then the selector's config list
// in order.
func PropertiesCandidate(spec *sparkv1alpha1.SparkClusterSpec, nodeType sparkv1alpha1.SparkNodeType, sel *sparkv1alpha1.SparkNodeSelector) map[string]string {
	out := make(map[string]string)

	logDir := constants.SparkDefaultLogDir
	if spec.LogDir != nil {
		logDir = *spec.LogDir
	}
	out[constants.SparkEventLogEnabled] = "true"
	out[constants.SparkEventLogDir] = logDir
	out[constants.SparkHistoryFSLogDirectory] = logDir

	if spec.Secret != nil {
		out[constants.SparkAuthenticate] = "true"
		out[constants.SparkAuthenticateSecret] = *spec.Secret
	}

	maxPortRetries := int32(constants.SparkDefaultMaxPortRetries)
	if spec.MaxPortRetries != nil {
		maxPortRetries = *spec.MaxPortRetries
	}
	out[constants.SparkPortMaxRetries] = strconv.FormatInt(int64(maxPortRetries), 10)

	if opts, ok := nodeType.Options(sel).(sparkv1alpha1.HistoryServerOptions); ok {
		setString(out, constants.SparkHistoryStorePath, opts.StorePath)
		setInt32(out, constants.SparkHistoryUIPort, opts.UIPort)
	}

	applyOverrides(out, sel.Config)
	return out
}

// EnvironmentCandidate assembles the spark-env.sh candidate for one selector:
// values derived from the node type's typed options, then the selector's env
// list in order.
func EnvironmentCandidate(nodeType sparkv1alpha1.SparkNodeType, sel *sparkv1alpha1.SparkNodeSelector) map[string]string {
	out := make(map[string]string)

	switch opts := nodeType.Options(sel).(type) {
	case sparkv1alpha1.MasterOptions:
		setInt32(out, constants.EnvSparkMasterPort, opts.Port)
		setInt32(out, constants.EnvSparkMasterWebUIPort, opts.WebUIPort)
	case sparkv1alpha1.WorkerOptions:
		setInt32(out, constants.EnvSparkWorkerCores, opts.Cores)
		setString(out, constants.EnvSparkWorkerMemory, opts.Memory)
		setInt32(out, constants.EnvSparkWorkerPort, opts.Port)
		setInt32(out, constants.EnvSparkWorkerWebUIPort, opts.WebUIPort)
	}

	applyOverrides(out, sel.Env)
	return out
}

func applyOverrides(out map[string]string, options []sparkv1alpha1.ConfigOption) {
	for _, opt := range options {
		out[opt.Name] = opt.Value
	}
}

func setString(out map[string]string, key string, value *string) {
	if value != nil {
		out[key] = *value
	}
}

func setInt32(out map[string]string, key string, value *int32) {
	if value != nil {
		out[key] = strconv.FormatInt(int64(*value), 10)
	}
}
