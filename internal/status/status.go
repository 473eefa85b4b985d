// Package status maintains SparkCluster status conditions.
package status

import (
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	sparkv1alpha1 "github.com/dc-tec/spark-operator/api/v1alpha1"
)

// Set adds or updates a condition of the cluster. ObservedGeneration is taken
// from the cluster; LastTransitionTime only moves when the status flips.
func Set(cluster *sparkv1alpha1.SparkCluster, conditionType sparkv1alpha1.ConditionType, status metav1.ConditionStatus, reason sparkv1alpha1.ConditionReason, message string) bool {
	return meta.SetStatusCondition(&cluster.Status.Conditions, metav1.Condition{
		Type:               string(conditionType),
		Status:             status,
		Reason:             string(reason),
		Message:            message,
		ObservedGeneration: cluster.Generation,
		LastTransitionTime: metav1.Now(),
	})
}

// True sets a condition to True status.
func True(cluster *sparkv1alpha1.SparkCluster, conditionType sparkv1alpha1.ConditionType, reason sparkv1alpha1.ConditionReason, message string) bool {
	return Set(cluster, conditionType, metav1.ConditionTrue, reason, message)
}

// False sets a condition to False status.
func False(cluster *sparkv1alpha1.SparkCluster, conditionType sparkv1alpha1.ConditionType, reason sparkv1alpha1.ConditionReason, message string) bool {
	return Set(cluster, conditionType, metav1.ConditionFalse, reason, message)
}

// Get returns the condition with the given type, or nil if not found.
func Get(cluster *sparkv1alpha1.SparkCluster, conditionType sparkv1alpha1.ConditionType) *metav1.Condition {
	return meta.FindStatusCondition(cluster.Status.Conditions, string(conditionType))
}

// IsTrue returns true if the condition with the given type has Status=True.
func IsTrue(cluster *sparkv1alpha1.SparkCluster, conditionType sparkv1alpha1.ConditionType) bool {
	return meta.IsStatusConditionTrue(cluster.Status.Conditions, string(conditionType))
}
