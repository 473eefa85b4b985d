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

package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// SparkVersion is the Spark product version a cluster runs.
// +kubebuilder:validation:Enum="2.4.7";"3.0.1"
type SparkVersion string

const (
	SparkVersion247 SparkVersion = "2.4.7"
	SparkVersion301 SparkVersion = "3.0.1"

	// DefaultSparkVersion is used when the version is left empty.
	DefaultSparkVersion = SparkVersion301
)

// KnownSparkVersions lists the versions the operator can render configuration for.
var KnownSparkVersions = []SparkVersion{SparkVersion247, SparkVersion301}

// String returns the version as used in image names and product configuration.
func (v SparkVersion) String() string {
	return string(v)
}

// IsKnown reports whether v is one of KnownSparkVersions.
func (v SparkVersion) IsKnown() bool {
	for _, known := range KnownSparkVersions {
		if v == known {
			return true
		}
	}
	return false
}

// OrDefault returns v, or DefaultSparkVersion when v is empty.
func (v SparkVersion) OrDefault() SparkVersion {
	if v == "" {
		return DefaultSparkVersion
	}
	return v
}

// ConditionType identifies a specific aspect of SparkCluster state.
type ConditionType string

const (
	// ConditionConfigurationValid indicates whether the spec passed validation.
	ConditionConfigurationValid ConditionType = "ConfigurationValid"
	// ConditionAvailable indicates whether every role's ConfigMaps have been written.
	ConditionAvailable ConditionType = "Available"
)

// ConditionReason is a CamelCase reason attached to a condition transition.
type ConditionReason string

const (
	ReasonSpecValid          ConditionReason = "SpecValid"
	ReasonSpecInvalid        ConditionReason = "SpecInvalid"
	ReasonConfigMapsRendered ConditionReason = "ConfigMapsRendered"
	ReasonConfigMapsFailed   ConditionReason = "ConfigMapsFailed"
)

// ConfigOption is a free-form name/value pair handed to a Spark configuration system.
type ConfigOption struct {
	// Name is the key, for example "spark.authenticate" or "SPARK_WORKER_CORES".
	// +kubebuilder:validation:MinLength=1
	Name string `json:"name"`
	// Value is the literal value.
	Value string `json:"value"`
}

// SparkNodeSelector describes one homogeneous group of replicas sharing a node
// placement target and configuration overrides.
//
// Every field except Instances participates in the selector identity.
type SparkNodeSelector struct {
	// NodeName is the placement target of the group.
	// +kubebuilder:validation:MinLength=1
	NodeName string `json:"node_name"`
	// Instances is the desired number of replicas of this group.
	// +kubebuilder:validation:Minimum=0
	Instances int32 `json:"instances"`
	// Config contains spark-defaults.conf overrides applied in list order.
	// +optional
	Config []ConfigOption `json:"config,omitempty"`
	// Env contains spark-env.sh overrides applied in list order.
	// +optional
	Env []ConfigOption `json:"env,omitempty"`

	// MasterPort is the port the master listens on.
	// +optional
	MasterPort *int32 `json:"master_port,omitempty"`
	// MasterWebUIPort is the port of the master web UI.
	// +optional
	MasterWebUIPort *int32 `json:"master_web_ui_port,omitempty"`

	// Cores is the number of cores a worker offers to applications.
	// +optional
	Cores *int32 `json:"cores,omitempty"`
	// Memory is the amount of memory a worker offers, for example "2g".
	// +optional
	Memory *string `json:"memory,omitempty"`
	// WorkerPort is the port the worker listens on.
	// +optional
	WorkerPort *int32 `json:"worker_port,omitempty"`
	// WorkerWebUIPort is the port of the worker web UI.
	// +optional
	WorkerWebUIPort *int32 `json:"worker_web_ui_port,omitempty"`

	// StorePath is the local directory the history server caches application data in.
	// +optional
	StorePath *string `json:"store_path,omitempty"`
	// HistoryUIPort is the port of the history server web UI.
	// +optional
	HistoryUIPort *int32 `json:"history_ui_port,omitempty"`
}

// SparkNode is a role of the cluster: an ordered list of replica groups.
type SparkNode struct {
	// +optional
	Selectors []SparkNodeSelector `json:"selectors"`
}

// Instances returns the total desired instance count across all selectors.
func (n *SparkNode) Instances() int32 {
	var instances int32
	for i := range n.Selectors {
		instances += n.Selectors[i].Instances
	}
	return instances
}

// SparkClusterSpec defines the desired state of SparkCluster.
type SparkClusterSpec struct {
	// Master is the primary role; workers discover it.
	Master SparkNode `json:"master"`
	// Worker is the secondary role.
	Worker SparkNode `json:"worker"`
	// HistoryServer is the optional auxiliary role.
	// +optional
	HistoryServer *SparkNode `json:"history_server,omitempty"`
	// Version is the Spark version to run.
	// +kubebuilder:default="3.0.1"
	Version SparkVersion `json:"version"`
	// Secret enables spark.authenticate with the given shared secret.
	// +optional
	Secret *string `json:"secret,omitempty"`
	// LogDir is the event log directory shared by all roles.
	// +optional
	LogDir *string `json:"log_dir,omitempty"`
	// MaxPortRetries is the number of port bind retries; defaults to 0.
	// +optional
	// +kubebuilder:validation:Minimum=0
	MaxPortRetries *int32 `json:"max_port_retries,omitempty"`
}

// Nodes returns the roles present in the spec keyed by node type.
// Master and Worker are always present.
func (s *SparkClusterSpec) Nodes() map[SparkNodeType]*SparkNode {
	nodes := map[SparkNodeType]*SparkNode{
		NodeTypeMaster: &s.Master,
		NodeTypeWorker: &s.Worker,
	}
	if s.HistoryServer != nil {
		nodes[NodeTypeHistoryServer] = s.HistoryServer
	}
	return nodes
}

// SparkClusterStatus defines the observed state of SparkCluster.
type SparkClusterStatus struct {
	// CurrentVersion is the version whose configuration was last fully rendered.
	// +optional
	CurrentVersion SparkVersion `json:"current_version,omitempty"`
	// TargetVersion is the version the operator is working towards.
	// +optional
	TargetVersion SparkVersion `json:"target_version,omitempty"`
	// Conditions represent the current state of the SparkCluster resource.
	// +listType=map
	// +listMapKey=type
	// +optional
	Conditions []metav1.Condition `json:"conditions,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:resource:path=sparkclusters,scope=Namespaced,shortName=sc
// +kubebuilder:printcolumn:name="Version",type=string,JSONPath=`.spec.version`
// +kubebuilder:printcolumn:name="Current",type=string,JSONPath=`.status.current_version`

// SparkCluster is the Schema for the sparkclusters API.
type SparkCluster struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	// Spec defines the desired state of SparkCluster.
	Spec SparkClusterSpec `json:"spec"`

	// Status defines the observed state of SparkCluster.
	// +optional
	Status SparkClusterStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// SparkClusterList contains a list of SparkCluster.
type SparkClusterList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata"`
	Items           []SparkCluster `json:"items"`
}

func init() {
	SchemeBuilder.Register(&SparkCluster{}, &SparkClusterList{})
}
