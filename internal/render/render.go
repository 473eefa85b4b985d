// Package render turns effective configuration into the ConfigMaps Spark
// processes read at startup.
package render

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"

	sparkv1alpha1 "github.com/dc-tec/spark-operator/api/v1alpha1"
	"github.com/dc-tec/spark-operator/internal/config"
	"github.com/dc-tec/spark-operator/internal/constants"
	"github.com/dc-tec/spark-operator/internal/discovery"
)

// ConfigMapName returns the name of the ConfigMap of one replica group:
// "<cluster>-<node-type>-<identity>-cm".
func ConfigMapName(clusterName string, nodeType sparkv1alpha1.SparkNodeType, identity string) string {
	return fmt.Sprintf("%s-%s-%s%s", clusterName, nodeType, identity, constants.SuffixConfigMap)
}

// PropertiesBody serialises props as spark-defaults.conf, one "key value" line
// per entry.
func PropertiesBody(props map[string]string) string {
	return body(props, " ")
}

// EnvBody serialises env as spark-env.sh, one "key=value" line per entry.
func EnvBody(env map[string]string) string {
	return body(env, "=")
}

// body emits lines sorted by key so that unchanged input renders byte-identical
// output. Readers must not depend on the order.
func body(values map[string]string, sep string) string {
	var b strings.Builder
	for _, key := range slices.Sorted(maps.Keys(values)) {
		b.WriteString(key)
		b.WriteString(sep)
		b.WriteString(values[key])
		b.WriteByte('\n')
	}
	return b.String()
}

// StartupEnv serialises config.RequiredStartupEnv as sorted "NAME=value"
// lines. Selector env overrides never reach it.
func StartupEnv() string {
	env := config.RequiredStartupEnv()
	values := make(map[string]string, len(env))
	for _, e := range env {
		values[e.Name] = e.Value
	}
	return EnvBody(values)
}

// ClusterLabels returns the labels shared by every ConfigMap of the cluster.
// They are the selector used to find stale ConfigMaps.
func ClusterLabels(clusterName string) map[string]string {
	return map[string]string{
		constants.LabelAppName:      constants.LabelValueAppNameSpark,
		constants.LabelAppInstance:  clusterName,
		constants.LabelAppManagedBy: constants.LabelValueAppManagedBySparkOperator,
		constants.LabelSparkCluster: clusterName,
	}
}

// Artifact is the rendered configuration of one replica group.
type Artifact struct {
	NodeType    sparkv1alpha1.SparkNodeType
	Identity    string
	Properties  map[string]string
	Environment map[string]string
	// MasterURL is the master connection string. Only set for workers.
	MasterURL string
}

// ConfigMap builds the ConfigMap of a, owned by cluster. The data holds
// exactly spark-defaults.conf and spark-env.sh.
func ConfigMap(cluster *sparkv1alpha1.SparkCluster, a Artifact, scheme *runtime.Scheme) (*corev1.ConfigMap, error) {
	version := cluster.Spec.Version.OrDefault()

	labels := ClusterLabels(cluster.Name)
	labels[constants.LabelAppComponent] = a.NodeType.String()
	labels[constants.LabelAppVersion] = version.String()
	labels[constants.LabelSparkNodeType] = a.NodeType.String()
	labels[constants.LabelSparkSelectorHash] = a.Identity

	annotations := map[string]string{
		constants.AnnotationStartCommand: discovery.StartCommand(a.NodeType, version),
		constants.AnnotationStartupEnv:   StartupEnv(),
	}
	if a.NodeType == sparkv1alpha1.NodeTypeWorker && a.MasterURL != "" {
		annotations[constants.AnnotationMasterURL] = a.MasterURL
	}

	cm := &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{
			Name:        ConfigMapName(cluster.Name, a.NodeType, a.Identity),
			Namespace:   cluster.Namespace,
			Labels:      labels,
			Annotations: annotations,
		},
		Data: map[string]string{
			constants.SparkDefaultsConf: PropertiesBody(a.Properties),
			constants.SparkEnvSh:        EnvBody(a.Environment),
		},
	}

	if err := controllerutil.SetControllerReference(cluster, cm, scheme); err != nil {
		return nil, fmt.Errorf("failed to set owner reference on ConfigMap %s/%s: %w", cm.Namespace, cm.Name, err)
	}
	return cm, nil
}
