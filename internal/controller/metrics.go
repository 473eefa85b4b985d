package controller

import (
	"github.com/prometheus/client_golang/prometheus"
	"sigs.k8s.io/controller-runtime/pkg/metrics"

	sparkv1alpha1 "github.com/dc-tec/spark-operator/api/v1alpha1"
	"github.com/dc-tec/spark-operator/internal/config"
	"github.com/dc-tec/spark-operator/internal/productconfig"
)

const metricsNamespace = "spark"

var (
	reconcileDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "reconcile_duration_seconds",
			Help:      "Duration of reconciliation loops in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"namespace", "name", "controller"},
	)

	reconcileErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "reconcile_errors_total",
			Help:      "Total number of reconciliation errors",
		},
		[]string{"namespace", "name", "controller", "reason"},
	)

	clusterSelectorsGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "cluster_selectors",
			Help:      "Number of distinct replica groups of a SparkCluster role",
		},
		[]string{"namespace", "name", "node_type"},
	)

	clusterInstancesGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "cluster_desired_instances",
			Help:      "Desired instance count of a SparkCluster role",
		},
		[]string{"namespace", "name", "node_type"},
	)

	configMapsWrittenTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "configmaps_written_total",
			Help:      "Total number of role ConfigMaps created or updated",
		},
		[]string{"namespace", "name"},
	)

	configMapsPrunedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "configmaps_pruned_total",
			Help:      "Total number of stale role ConfigMaps deleted",
		},
		[]string{"namespace", "name"},
	)

	productConfigClassificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "product_config_classifications_total",
			Help:      "Total number of product config verdicts by target, node type and classification",
		},
		[]string{"target", "node_type", "classification"},
	)
)

func init() {
	metrics.Registry.MustRegister(
		reconcileDurationHistogram,
		reconcileErrorsTotal,
		clusterSelectorsGauge,
		clusterInstancesGauge,
		configMapsWrittenTotal,
		configMapsPrunedTotal,
		productConfigClassificationsTotal,
	)
}

// ReconcileMetrics provides helpers to record reconcile-level metrics for a
// specific controller and SparkCluster.
type ReconcileMetrics struct {
	namespace  string
	name       string
	controller string
}

// NewReconcileMetrics creates a new ReconcileMetrics instance.
func NewReconcileMetrics(namespace, name, controller string) *ReconcileMetrics {
	return &ReconcileMetrics{
		namespace:  namespace,
		name:       name,
		controller: controller,
	}
}

// ObserveDuration records the duration of a reconcile loop in seconds.
func (m *ReconcileMetrics) ObserveDuration(durationSeconds float64) {
	reconcileDurationHistogram.
		WithLabelValues(m.namespace, m.name, m.controller).
		Observe(durationSeconds)
}

// IncrementError increments the reconcile error counter with the given reason.
// Reason values should be low-cardinality strings (for example, "KubernetesAPIError").
func (m *ReconcileMetrics) IncrementError(reason string) {
	reconcileErrorsTotal.
		WithLabelValues(m.namespace, m.name, m.controller, reason).
		Inc()
}

// ClusterMetrics provides helpers to record per-cluster state metrics.
type ClusterMetrics struct {
	namespace string
	name      string
}

// NewClusterMetrics creates a new ClusterMetrics instance.
func NewClusterMetrics(namespace, name string) *ClusterMetrics {
	return &ClusterMetrics{
		namespace: namespace,
		name:      name,
	}
}

// SetRole records the distinct replica groups and desired instances of a role.
func (m *ClusterMetrics) SetRole(nodeType sparkv1alpha1.SparkNodeType, selectors int, instances int32) {
	clusterSelectorsGauge.
		WithLabelValues(m.namespace, m.name, nodeType.String()).
		Set(float64(selectors))
	clusterInstancesGauge.
		WithLabelValues(m.namespace, m.name, nodeType.String()).
		Set(float64(instances))
}

// ClearRole removes the role series of a node type no longer present in the
// cluster.
func (m *ClusterMetrics) ClearRole(nodeType sparkv1alpha1.SparkNodeType) {
	clusterSelectorsGauge.DeleteLabelValues(m.namespace, m.name, nodeType.String())
	clusterInstancesGauge.DeleteLabelValues(m.namespace, m.name, nodeType.String())
}

// AddConfigMapsWritten counts created or updated ConfigMaps.
func (m *ClusterMetrics) AddConfigMapsWritten(n int) {
	configMapsWrittenTotal.
		WithLabelValues(m.namespace, m.name).
		Add(float64(n))
}

// AddConfigMapsPruned counts deleted stale ConfigMaps.
func (m *ClusterMetrics) AddConfigMapsPruned(n int) {
	configMapsPrunedTotal.
		WithLabelValues(m.namespace, m.name).
		Add(float64(n))
}

// Clear removes all per-cluster metrics for this cluster. This should be
// called once the cluster is gone to avoid leaving stale series.
func (m *ClusterMetrics) Clear() {
	for _, nodeType := range sparkv1alpha1.NodeTypes {
		m.ClearRole(nodeType)
	}
	configMapsWrittenTotal.DeleteLabelValues(m.namespace, m.name)
	configMapsPrunedTotal.DeleteLabelValues(m.namespace, m.name)
}

// ClassificationRecorder counts product config verdicts. It is safe for
// concurrent use.
type ClassificationRecorder struct{}

var _ config.Recorder = ClassificationRecorder{}

// ObserveClassification implements config.Recorder.
func (ClassificationRecorder) ObserveClassification(target config.Target, nodeType sparkv1alpha1.SparkNodeType, classification productconfig.ClassificationType) {
	productConfigClassificationsTotal.
		WithLabelValues(target.String(), nodeType.String(), string(classification)).
		Inc()
}
