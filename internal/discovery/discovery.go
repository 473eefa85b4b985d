// Package discovery derives how dependent roles find the Spark master.
package discovery

import (
	"fmt"
	"strconv"
	"strings"

	sparkv1alpha1 "github.com/dc-tec/spark-operator/api/v1alpha1"
	"github.com/dc-tec/spark-operator/internal/constants"
)

// MasterURLs returns one "<node_name>:<port>" address per master selector, in
// selector order. The port is taken from the first source that sets it: the
// selector's config list (spark.master.port), its env list
// (SPARK_MASTER_PORT), its typed master_port, and finally 7077.
func MasterURLs(master *sparkv1alpha1.SparkNode) []string {
	if master == nil {
		return nil
	}
	urls := make([]string, 0, len(master.Selectors))
	for i := range master.Selectors {
		sel := &master.Selectors[i]
		urls = append(urls, fmt.Sprintf("%s:%s", sel.NodeName, MasterPort(sel)))
	}
	return urls
}

// MasterPort resolves the port a master selector listens on.
func MasterPort(sel *sparkv1alpha1.SparkNodeSelector) string {
	if port, ok := lastOption(sel.Config, constants.SparkMasterPortConf); ok {
		return port
	}
	if port, ok := lastOption(sel.Env, constants.EnvSparkMasterPort); ok {
		return port
	}
	if sel.MasterPort != nil {
		return strconv.FormatInt(int64(*sel.MasterPort), 10)
	}
	return strconv.Itoa(constants.SparkDefaultMasterPort)
}

// lastOption returns the value of the last option named name, matching the
// last-writer-wins order of the merge engine.
func lastOption(options []sparkv1alpha1.ConfigOption, name string) (string, bool) {
	for i := len(options) - 1; i >= 0; i-- {
		if options[i].Name == name {
			return options[i].Value, true
		}
	}
	return "", false
}

// WorkerCommandFragment returns the master connection string a worker is
// started with, for example "spark://m1:7077,m2:7078". It reports false for
// every node type other than the worker. A master without selectors yields
// "spark://".
func WorkerCommandFragment(nodeType sparkv1alpha1.SparkNodeType, master *sparkv1alpha1.SparkNode) (string, bool) {
	if nodeType != sparkv1alpha1.NodeTypeWorker {
		return "", false
	}
	return constants.SparkMasterURLScheme + strings.Join(MasterURLs(master), ","), true
}

// StartCommand returns the start script of nodeType in the Spark distribution
// of version, for example "spark-3.0.1-bin-hadoop2.7/sbin/start-master.sh".
func StartCommand(nodeType sparkv1alpha1.SparkNodeType, version sparkv1alpha1.SparkVersion) string {
	return fmt.Sprintf(constants.SparkStartScriptTemplate, version.OrDefault(), nodeType)
}
