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

package controller

import (
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/equality"
	"sigs.k8s.io/controller-runtime/pkg/event"
	"sigs.k8s.io/controller-runtime/pkg/predicate"

	sparkv1alpha1 "github.com/dc-tec/spark-operator/api/v1alpha1"
)

// SparkClusterPredicate filters SparkCluster events to only reconcile on
// changes that can alter the rendered configuration.
//
// The predicate allows reconciliation when:
//   - The resource is created or deleted
//   - The Spec changes (detected via Generation change)
//   - DeletionTimestamp changes
//   - Metadata labels or annotations change
//
// Status-only updates are filtered out; the controller writes status itself.
func SparkClusterPredicate() predicate.Predicate {
	return predicate.Funcs{
		CreateFunc: func(e event.CreateEvent) bool {
			return true
		},
		DeleteFunc: func(e event.DeleteEvent) bool {
			return true
		},
		UpdateFunc: func(e event.UpdateEvent) bool {
			oldCluster, ok := e.ObjectOld.(*sparkv1alpha1.SparkCluster)
			if !ok {
				return true
			}
			newCluster, ok := e.ObjectNew.(*sparkv1alpha1.SparkCluster)
			if !ok {
				return true
			}

			if oldCluster.Generation != newCluster.Generation {
				return true
			}
			if !oldCluster.DeletionTimestamp.Equal(newCluster.DeletionTimestamp) {
				return true
			}
			if !equality.Semantic.DeepEqual(oldCluster.Labels, newCluster.Labels) {
				return true
			}
			return !equality.Semantic.DeepEqual(oldCluster.Annotations, newCluster.Annotations)
		},
		GenericFunc: func(e event.GenericEvent) bool {
			return true
		},
	}
}

// OwnedConfigMapPredicate reconciles the owner when one of its ConfigMaps is
// deleted or its data, labels or annotations are edited by someone else.
// Resync-only updates with an unchanged resourceVersion are ignored.
func OwnedConfigMapPredicate() predicate.Predicate {
	return predicate.Funcs{
		CreateFunc: func(e event.CreateEvent) bool {
			return false
		},
		DeleteFunc: func(e event.DeleteEvent) bool {
			return true
		},
		UpdateFunc: func(e event.UpdateEvent) bool {
			oldCM, ok := e.ObjectOld.(*corev1.ConfigMap)
			if !ok {
				return true
			}
			newCM, ok := e.ObjectNew.(*corev1.ConfigMap)
			if !ok {
				return true
			}
			if oldCM.ResourceVersion == newCM.ResourceVersion {
				return false
			}
			return !equality.Semantic.DeepEqual(oldCM.Data, newCM.Data) ||
				!equality.Semantic.DeepEqual(oldCM.Labels, newCM.Labels) ||
				!equality.Semantic.DeepEqual(oldCM.Annotations, newCM.Annotations)
		},
		GenericFunc: func(e event.GenericEvent) bool {
			return false
		},
	}
}
