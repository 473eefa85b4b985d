package sparkcluster

import (
	"time"

	"golang.org/x/time/rate"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/client-go/util/workqueue"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/builder"
	"sigs.k8s.io/controller-runtime/pkg/controller"

	sparkv1alpha1 "github.com/dc-tec/spark-operator/api/v1alpha1"
	"github.com/dc-tec/spark-operator/internal/constants"
	controllerutil "github.com/dc-tec/spark-operator/internal/controller"
)

// SetupWithManager registers the SparkCluster controller. It owns the
// rendered ConfigMaps so that edits or deletions by others are reverted.
func (r *SparkClusterReconciler) SetupWithManager(mgr ctrl.Manager) error {
	if r.Recorder == nil {
		r.Recorder = mgr.GetEventRecorderFor(constants.ControllerNameSparkCluster)
	}

	return ctrl.NewControllerManagedBy(mgr).
		For(&sparkv1alpha1.SparkCluster{}, builder.WithPredicates(controllerutil.SparkClusterPredicate())).
		Owns(&corev1.ConfigMap{}, builder.WithPredicates(controllerutil.OwnedConfigMapPredicate())).
		WithOptions(controller.Options{
			MaxConcurrentReconciles: 2,
			RateLimiter: workqueue.NewTypedMaxOfRateLimiter(
				workqueue.NewTypedItemExponentialFailureRateLimiter[ctrl.Request](1*time.Second, 60*time.Second),
				&workqueue.TypedBucketRateLimiter[ctrl.Request]{Limiter: rate.NewLimiter(rate.Limit(10), 100)},
			),
		}).
		Named(constants.ControllerNameSparkCluster).
		Complete(r)
}
