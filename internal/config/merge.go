// Package config derives the effective spark-defaults.conf and spark-env.sh
// contents of a replica group from the cluster spec and a product config
// validator.
package config

import (
	"github.com/go-logr/logr"
	corev1 "k8s.io/api/core/v1"

	sparkv1alpha1 "github.com/dc-tec/spark-operator/api/v1alpha1"
	"github.com/dc-tec/spark-operator/internal/constants"
	"github.com/dc-tec/spark-operator/internal/productconfig"
)

// Target selects which configuration system EffectiveConfig assembles.
type Target int

const (
	// TargetProperties is spark-defaults.conf.
	TargetProperties Target = iota
	// TargetEnvironment is spark-env.sh.
	TargetEnvironment
)

func (t Target) String() string {
	switch t {
	case TargetProperties:
		return constants.SparkDefaultsConf
	case TargetEnvironment:
		return constants.SparkEnvSh
	default:
		return "unknown"
	}
}

// OptionKind maps the target onto the validator's option kind.
func (t Target) OptionKind() productconfig.OptionKind {
	if t == TargetEnvironment {
		return productconfig.Environment()
	}
	return productconfig.Properties(constants.SparkDefaultsConf)
}

// Recorder observes every classification the validator returns.
type Recorder interface {
	ObserveClassification(target Target, nodeType sparkv1alpha1.SparkNodeType, classification productconfig.ClassificationType)
}

// Merger combines candidate configuration with validator verdicts.
// The zero value is not usable; Validator is required.
type Merger struct {
	Validator productconfig.Validator
	// Logger receives Warn and Error verdicts. Defaults to logr.Discard().
	Logger logr.Logger
	// Recorder is optional.
	Recorder Recorder
}

// NewMerger returns a Merger that logs to logger.
func NewMerger(validator productconfig.Validator, logger logr.Logger, recorder Recorder) *Merger {
	return &Merger{Validator: validator, Logger: logger, Recorder: recorder}
}

// EffectiveConfig returns the validated configuration of target for one
// selector. Only Valid and Recommended verdicts are kept, with the value the
// validator returned. Default verdicts are dropped silently; Warn and Error
// verdicts are logged and dropped. The environment target never carries the
// RequiredStartupEnv names. The result may therefore hold fewer or other keys
// than the candidate. It never fails.
func (m *Merger) EffectiveConfig(spec *sparkv1alpha1.SparkClusterSpec, nodeType sparkv1alpha1.SparkNodeType, sel *sparkv1alpha1.SparkNodeSelector, target Target) map[string]string {
	var candidate map[string]string
	switch target {
	case TargetEnvironment:
		candidate = EnvironmentCandidate(nodeType, sel)
	default:
		candidate = PropertiesCandidate(spec, nodeType, sel)
	}

	logger := m.logger().WithValues("nodeType", nodeType.String(), "target", target.String())
	version := spec.Version.OrDefault().String()

	verdicts := m.Validator.Validate(version, target.OptionKind(), nodeType.String(), candidate)

	effective := make(map[string]string, len(verdicts))
	for key, c := range verdicts {
		if m.Recorder != nil {
			m.Recorder.ObserveClassification(target, nodeType, c.Type)
		}
		switch c.Type {
		case productconfig.TypeValid, productconfig.TypeRecommended:
			effective[key] = c.Value
		case productconfig.TypeDefault:
			// Spark applies its own default.
		case productconfig.TypeWarn:
			logger.Info("product config warning, dropping value", "key", key, "reason", errString(c.Err))
		case productconfig.TypeError:
			logger.Error(c.Err, "product config error, dropping value", "key", key)
		default:
			logger.Error(nil, "unknown product config classification, dropping value", "key", key, "classification", string(c.Type))
		}
	}

	if target == TargetEnvironment {
		for _, e := range RequiredStartupEnv() {
			if _, ok := effective[e.Name]; ok {
				logger.Info("required startup variable cannot be overridden, dropping value", "key", e.Name)
				delete(effective, e.Name)
			}
		}
	}
	return effective
}

func (m *Merger) logger() logr.Logger {
	if m.Logger.GetSink() == nil {
		return logr.Discard()
	}
	return m.Logger
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// RequiredStartupEnv returns the container environment every Spark process is
// started with. It is set on the container, not in spark-env.sh, so
// selector overrides cannot remove or change it.
func RequiredStartupEnv() []corev1.EnvVar {
	return []corev1.EnvVar{
		{Name: constants.EnvSparkNoDaemonize, Value: constants.SparkNoDaemonizeValue},
		{Name: constants.EnvSparkConfDir, Value: constants.SparkConfDirValue},
	}
}
