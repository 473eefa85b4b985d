// Package kube persists rendered ConfigMaps through the controller-runtime client.
package kube

import (
	"context"
	"fmt"
	"maps"

	"github.com/go-logr/logr"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"

	operrors "github.com/dc-tec/spark-operator/internal/errors"
	"github.com/dc-tec/spark-operator/internal/logging"
	"github.com/dc-tec/spark-operator/internal/render"
)

// EnsureConfigMap creates desired, or updates the live ConfigMap when its
// data, labels or annotations differ. Labels and annotations set by others
// are kept. It reports whether the API was written to.
func EnsureConfigMap(ctx context.Context, c client.Client, logger logr.Logger, desired *corev1.ConfigMap) (bool, error) {
	key := types.NamespacedName{Namespace: desired.Namespace, Name: desired.Name}

	live := &corev1.ConfigMap{}
	if err := c.Get(ctx, key, live); err != nil {
		if !apierrors.IsNotFound(err) {
			return false, operrors.ClassifyKubernetesAPI(fmt.Errorf("failed to get ConfigMap %s: %w", key, err))
		}

		logger.Info("ConfigMap not found; creating", "configmap", desired.Name)
		if err := c.Create(ctx, desired); err != nil {
			return false, operrors.ClassifyKubernetesAPI(fmt.Errorf("failed to create ConfigMap %s: %w", key, err))
		}
		audit(logger, logging.AuditConfigMapCreated, desired)
		return true, nil
	}

	changed := false
	if !maps.Equal(live.Data, desired.Data) {
		live.Data = desired.Data
		changed = true
	}
	if mergeInto(&live.Labels, desired.Labels) {
		changed = true
	}
	if mergeInto(&live.Annotations, desired.Annotations) {
		changed = true
	}
	if len(live.OwnerReferences) == 0 && len(desired.OwnerReferences) > 0 {
		live.OwnerReferences = desired.OwnerReferences
		changed = true
	}
	if !changed {
		return false, nil
	}

	logger.Info("Updating ConfigMap", "configmap", desired.Name)
	if err := c.Update(ctx, live); err != nil {
		return false, operrors.ClassifyKubernetesAPI(fmt.Errorf("failed to update ConfigMap %s: %w", key, err))
	}
	audit(logger, logging.AuditConfigMapUpdated, live)
	return true, nil
}

func audit(logger logr.Logger, eventType string, cm *corev1.ConfigMap) {
	logging.LogAuditEvent(logger, eventType, map[string]string{
		"namespace": cm.Namespace,
		"configmap": cm.Name,
	})
}

// mergeInto copies want into *have and reports whether anything changed.
func mergeInto(have *map[string]string, want map[string]string) bool {
	changed := false
	for k, v := range want {
		if cur, ok := (*have)[k]; ok && cur == v {
			continue
		}
		if *have == nil {
			*have = make(map[string]string, len(want))
		}
		(*have)[k] = v
		changed = true
	}
	return changed
}

// PruneConfigMaps deletes the ConfigMaps of the cluster whose names are not in
// keep, which happens when a selector changed or was removed. It returns the
// number of ConfigMaps deleted.
func PruneConfigMaps(ctx context.Context, c client.Client, logger logr.Logger, namespace, clusterName string, keep map[string]struct{}) (int, error) {
	list := &corev1.ConfigMapList{}
	if err := c.List(ctx, list,
		client.InNamespace(namespace),
		client.MatchingLabels(render.ClusterLabels(clusterName)),
	); err != nil {
		return 0, operrors.ClassifyKubernetesAPI(fmt.Errorf("failed to list ConfigMaps of %s/%s: %w", namespace, clusterName, err))
	}

	deleted := 0
	for i := range list.Items {
		cm := &list.Items[i]
		if _, ok := keep[cm.Name]; ok {
			continue
		}

		logger.Info("Deleting stale ConfigMap", "configmap", cm.Name)
		if err := c.Delete(ctx, cm); err != nil {
			if apierrors.IsNotFound(err) {
				continue
			}
			return deleted, operrors.ClassifyKubernetesAPI(fmt.Errorf("failed to delete ConfigMap %s/%s: %w", cm.Namespace, cm.Name, err))
		}
		audit(logger, logging.AuditConfigMapDeleted, cm)
		deleted++
	}
	return deleted, nil
}
