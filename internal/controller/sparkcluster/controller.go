/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package sparkcluster

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/go-logr/logr"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/tools/record"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/log"

	sparkv1alpha1 "github.com/dc-tec/spark-operator/api/v1alpha1"
	"github.com/dc-tec/spark-operator/internal/config"
	"github.com/dc-tec/spark-operator/internal/constants"
	controllermetrics "github.com/dc-tec/spark-operator/internal/controller"
	"github.com/dc-tec/spark-operator/internal/discovery"
	operrors "github.com/dc-tec/spark-operator/internal/errors"
	"github.com/dc-tec/spark-operator/internal/kube"
	"github.com/dc-tec/spark-operator/internal/productconfig"
	"github.com/dc-tec/spark-operator/internal/render"
	"github.com/dc-tec/spark-operator/internal/revision"
	"github.com/dc-tec/spark-operator/internal/status"
)

// Event reasons emitted on the SparkCluster.
const (
	EventReasonSpecInvalid       = "SpecInvalid"
	EventReasonConfigMapsFailed  = "ConfigMapsFailed"
	EventReasonConfigMapsUpdated = "ConfigMapsUpdated"
)

// SparkClusterReconciler reconciles a SparkCluster object into one ConfigMap
// per distinct replica group.
type SparkClusterReconciler struct {
	client.Client
	Scheme *runtime.Scheme
	// Validator checks every merged configuration map.
	Validator productconfig.Validator
	Recorder  record.EventRecorder
}

// +kubebuilder:rbac:groups=spark.stackable.tech,resources=sparkclusters,verbs=get;list;watch
// +kubebuilder:rbac:groups=spark.stackable.tech,resources=sparkclusters/status,verbs=get;update;patch
// +kubebuilder:rbac:groups="",resources=configmaps,verbs=get;list;watch;create;update;patch;delete
// +kubebuilder:rbac:groups="",resources=events,verbs=create;patch

// Reconcile renders the configuration of every role of the SparkCluster.
//
// A spec that fails validation is reported through the ConfigurationValid
// condition and not requeued; the next spec change triggers a new pass.
func (r *SparkClusterReconciler) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	reconcileMetrics := controllermetrics.NewReconcileMetrics(req.Namespace, req.Name, constants.ControllerNameSparkCluster)
	startTime := time.Now()
	var reconcileErr error
	defer func() {
		reconcileMetrics.ObserveDuration(time.Since(startTime).Seconds())
		if reconcileErr != nil {
			reconcileMetrics.IncrementError(errorReason(reconcileErr))
		}
	}()

	logger := log.FromContext(ctx).WithValues(
		"cluster_namespace", req.Namespace,
		"cluster_name", req.Name,
		"controller", constants.ControllerNameSparkCluster,
	)
	logger.Info("Reconciling SparkCluster")

	cluster := &sparkv1alpha1.SparkCluster{}
	if err := r.Get(ctx, req.NamespacedName, cluster); err != nil {
		if apierrors.IsNotFound(err) {
			logger.Info("SparkCluster resource not found; assuming it was deleted")
			controllermetrics.NewClusterMetrics(req.Namespace, req.Name).Clear()
			return ctrl.Result{}, nil
		}
		reconcileErr = operrors.ClassifyKubernetesAPI(fmt.Errorf("failed to get SparkCluster %s/%s: %w", req.Namespace, req.Name, err))
		return r.result(reconcileErr)
	}

	if !cluster.DeletionTimestamp.IsZero() {
		logger.Info("SparkCluster is marked for deletion; ConfigMaps are garbage collected through owner references")
		return ctrl.Result{}, nil
	}

	original := cluster.DeepCopy()
	version := cluster.Spec.Version.OrDefault()
	cluster.Status.TargetVersion = version

	if err := cluster.Validate(); err != nil {
		reconcileErr = operrors.WrapPermanentConfig(err)
		logger.Info("SparkCluster spec is invalid", "error", err.Error())
		status.False(cluster, sparkv1alpha1.ConditionConfigurationValid, sparkv1alpha1.ReasonSpecInvalid, err.Error())
		status.False(cluster, sparkv1alpha1.ConditionAvailable, sparkv1alpha1.ReasonSpecInvalid, "configuration was not rendered")
		r.event(cluster, corev1.EventTypeWarning, EventReasonSpecInvalid, err.Error())
		if patchErr := r.patchStatus(ctx, cluster, original); patchErr != nil {
			reconcileErr = patchErr
		}
		return r.result(reconcileErr)
	}
	status.True(cluster, sparkv1alpha1.ConditionConfigurationValid, sparkv1alpha1.ReasonSpecValid, "")

	written, err := r.reconcileConfigMaps(ctx, logger, cluster)
	if err != nil {
		reconcileErr = err
		logger.Error(err, "Failed to reconcile ConfigMaps")
		status.False(cluster, sparkv1alpha1.ConditionAvailable, sparkv1alpha1.ReasonConfigMapsFailed, err.Error())
		r.event(cluster, corev1.EventTypeWarning, EventReasonConfigMapsFailed, err.Error())
		if patchErr := r.patchStatus(ctx, cluster, original); patchErr != nil {
			logger.Error(patchErr, "Failed to update SparkCluster status")
		}
		return r.result(reconcileErr)
	}
	if written > 0 {
		r.event(cluster, corev1.EventTypeNormal, EventReasonConfigMapsUpdated, fmt.Sprintf("wrote %d ConfigMap(s)", written))
	}

	cluster.Status.CurrentVersion = version
	status.True(cluster, sparkv1alpha1.ConditionAvailable, sparkv1alpha1.ReasonConfigMapsRendered, "")
	if err := r.patchStatus(ctx, cluster, original); err != nil {
		reconcileErr = err
		return r.result(reconcileErr)
	}

	return ctrl.Result{}, nil
}

// reconcileConfigMaps ensures one ConfigMap per hashed selector of every
// present role and prunes the ones whose selector no longer exists. It
// returns the number of ConfigMaps created or updated.
func (r *SparkClusterReconciler) reconcileConfigMaps(ctx context.Context, logger logr.Logger, cluster *sparkv1alpha1.SparkCluster) (int, error) {
	clusterMetrics := controllermetrics.NewClusterMetrics(cluster.Namespace, cluster.Name)
	merger := config.NewMerger(r.Validator, logger, controllermetrics.ClassificationRecorder{})
	spec := &cluster.Spec
	nodes := spec.Nodes()
	hashed := revision.ClusterHashedSelectors(spec, cluster.Name)

	keep := make(map[string]struct{})
	written := 0
	for _, nodeType := range sparkv1alpha1.NodeTypes {
		selectors, ok := hashed[nodeType]
		if !ok {
			clusterMetrics.ClearRole(nodeType)
			continue
		}
		clusterMetrics.SetRole(nodeType, len(selectors), nodes[nodeType].Instances())

		masterURL, _ := discovery.WorkerCommandFragment(nodeType, &spec.Master)
		for _, identity := range slices.Sorted(maps.Keys(selectors)) {
			sel := selectors[identity]
			cm, err := render.ConfigMap(cluster, render.Artifact{
				NodeType:    nodeType,
				Identity:    identity,
				Properties:  merger.EffectiveConfig(spec, nodeType, &sel, config.TargetProperties),
				Environment: merger.EffectiveConfig(spec, nodeType, &sel, config.TargetEnvironment),
				MasterURL:   masterURL,
			}, r.Scheme)
			if err != nil {
				return written, err
			}

			changed, err := kube.EnsureConfigMap(ctx, r.Client, logger.WithValues("node_type", nodeType.String(), "selector", identity), cm)
			if err != nil {
				return written, err
			}
			if changed {
				written++
			}
			keep[cm.Name] = struct{}{}
		}
	}
	clusterMetrics.AddConfigMapsWritten(written)

	pruned, err := kube.PruneConfigMaps(ctx, r.Client, logger, cluster.Namespace, cluster.Name, keep)
	clusterMetrics.AddConfigMapsPruned(pruned)
	if err != nil {
		return written, err
	}
	return written, nil
}

func (r *SparkClusterReconciler) patchStatus(ctx context.Context, cluster, original *sparkv1alpha1.SparkCluster) error {
	if err := r.Status().Patch(ctx, cluster, client.MergeFrom(original)); err != nil {
		if apierrors.IsNotFound(err) {
			return nil
		}
		return operrors.ClassifyKubernetesAPI(fmt.Errorf("failed to update SparkCluster status %s/%s: %w", cluster.Namespace, cluster.Name, err))
	}
	return nil
}

func (r *SparkClusterReconciler) event(cluster *sparkv1alpha1.SparkCluster, eventType, reason, message string) {
	if r.Recorder == nil {
		return
	}
	r.Recorder.Event(cluster, eventType, reason, message)
}

// result maps err onto the controller-runtime result: permanent errors are
// swallowed, transient ones requeue after a short delay and anything else is
// returned for exponential backoff.
func (r *SparkClusterReconciler) result(err error) (ctrl.Result, error) {
	requeue, after := operrors.ShouldRequeue(err)
	switch {
	case !requeue:
		return ctrl.Result{}, nil
	case after > 0:
		return ctrl.Result{RequeueAfter: after}, nil
	default:
		return ctrl.Result{}, err
	}
}

func errorReason(err error) string {
	switch {
	case operrors.IsPermanentConfig(err):
		return "InvalidSpec"
	case operrors.IsTransientKubernetesAPI(err):
		return "TransientKubernetesAPIError"
	default:
		return "Error"
	}
}
