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
	"errors"
	"fmt"
	"strings"

	"k8s.io/apimachinery/pkg/util/validation"
)

const maxPort = 65535

// Validate checks the cluster name and the spec. The name ends up in label
// values, so it is held to the label value rules (at most 63 characters).
func (c *SparkCluster) Validate() error {
	var errs []error
	if msgs := validation.IsValidLabelValue(c.Name); len(msgs) > 0 {
		errs = append(errs, fmt.Errorf("metadata.name: %s", strings.Join(msgs, "; ")))
	}
	if err := c.Spec.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Validate checks the invariants of the spec that the CRD schema cannot
// express. All problems are reported together.
func (s *SparkClusterSpec) Validate() error {
	var errs []error

	if !s.Version.OrDefault().IsKnown() {
		errs = append(errs, fmt.Errorf("spec.version: unsupported version %q", s.Version))
	}
	if s.MaxPortRetries != nil && *s.MaxPortRetries < 0 {
		errs = append(errs, fmt.Errorf("spec.max_port_retries: must not be negative, got %d", *s.MaxPortRetries))
	}

	for _, nodeType := range NodeTypes {
		node, ok := s.Nodes()[nodeType]
		if !ok {
			continue
		}
		for i := range node.Selectors {
			path := fmt.Sprintf("spec.%s.selectors[%d]", fieldName(nodeType), i)
			errs = append(errs, validateSelector(path, &node.Selectors[i])...)
		}
	}

	return errors.Join(errs...)
}

func validateSelector(path string, sel *SparkNodeSelector) []error {
	var errs []error
	if sel.NodeName == "" {
		errs = append(errs, fmt.Errorf("%s.node_name: must not be empty", path))
	}
	if sel.Instances < 0 {
		errs = append(errs, fmt.Errorf("%s.instances: must not be negative, got %d", path, sel.Instances))
	}

	ports := []struct {
		name  string
		value *int32
	}{
		{"master_port", sel.MasterPort},
		{"master_web_ui_port", sel.MasterWebUIPort},
		{"worker_port", sel.WorkerPort},
		{"worker_web_ui_port", sel.WorkerWebUIPort},
		{"history_ui_port", sel.HistoryUIPort},
	}
	for _, p := range ports {
		if p.value != nil && (*p.value < 1 || *p.value > maxPort) {
			errs = append(errs, fmt.Errorf("%s.%s: port %d out of range 1-%d", path, p.name, *p.value, maxPort))
		}
	}
	if sel.Cores != nil && *sel.Cores < 1 {
		errs = append(errs, fmt.Errorf("%s.cores: must be positive, got %d", path, *sel.Cores))
	}

	for j, opt := range sel.Config {
		if opt.Name == "" {
			errs = append(errs, fmt.Errorf("%s.config[%d].name: must not be empty", path, j))
		}
	}
	for j, opt := range sel.Env {
		if opt.Name == "" {
			errs = append(errs, fmt.Errorf("%s.env[%d].name: must not be empty", path, j))
		}
	}
	return errs
}

// fieldName maps a node type to its field name in the spec.
func fieldName(t SparkNodeType) string {
	switch t {
	case NodeTypeMaster:
		return "master"
	case NodeTypeWorker:
		return "worker"
	case NodeTypeHistoryServer:
		return "history_server"
	default:
		return string(t)
	}
}
