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
)

// SparkNodeType is the closed set of roles a SparkCluster consists of. The
// underlying string is the canonical name used by the Spark start scripts
// (sbin/start-<name>.sh), in ConfigMap names and in product configuration.
type SparkNodeType string

const (
	NodeTypeMaster        SparkNodeType = "master"
	NodeTypeWorker        SparkNodeType = "slave"
	NodeTypeHistoryServer SparkNodeType = "history-server"
)

// NodeTypes lists every node type in reconciliation order.
var NodeTypes = []SparkNodeType{NodeTypeMaster, NodeTypeWorker, NodeTypeHistoryServer}

// ErrInvalidNodeType matches any InvalidNodeTypeError via errors.Is.
var ErrInvalidNodeType = errors.New("invalid spark node type")

// InvalidNodeTypeError is returned when a string does not name a known node type.
type InvalidNodeTypeError struct {
	NodeType string
}

func (e *InvalidNodeTypeError) Error() string {
	return fmt.Sprintf("%s: %q (valid: %q, %q, %q)", ErrInvalidNodeType, e.NodeType,
		NodeTypeMaster, NodeTypeWorker, NodeTypeHistoryServer)
}

// Is lets errors.Is(err, ErrInvalidNodeType) succeed.
func (e *InvalidNodeTypeError) Is(target error) bool {
	return target == ErrInvalidNodeType
}

// ParseSparkNodeType parses a canonical node type name.
func ParseSparkNodeType(s string) (SparkNodeType, error) {
	switch t := SparkNodeType(s); t {
	case NodeTypeMaster, NodeTypeWorker, NodeTypeHistoryServer:
		return t, nil
	default:
		return "", &InvalidNodeTypeError{NodeType: s}
	}
}

// String returns the canonical name.
func (t SparkNodeType) String() string {
	return string(t)
}

// NodeOptions holds the typed fields of a selector that are relevant to one
// node type. Implementations are MasterOptions, WorkerOptions and
// HistoryServerOptions.
type NodeOptions interface {
	NodeType() SparkNodeType
}

// MasterOptions are the master-only selector fields.
type MasterOptions struct {
	Port      *int32
	WebUIPort *int32
}

// WorkerOptions are the worker-only selector fields.
type WorkerOptions struct {
	Cores     *int32
	Memory    *string
	Port      *int32
	WebUIPort *int32
}

// HistoryServerOptions are the history-server-only selector fields.
type HistoryServerOptions struct {
	StorePath *string
	UIPort    *int32
}

func (MasterOptions) NodeType() SparkNodeType        { return NodeTypeMaster }
func (WorkerOptions) NodeType() SparkNodeType        { return NodeTypeWorker }
func (HistoryServerOptions) NodeType() SparkNodeType { return NodeTypeHistoryServer }

// Options projects the selector onto the fields relevant to t. Fields that
// belong to other node types are ignored. It returns nil for an unknown t.
func (t SparkNodeType) Options(s *SparkNodeSelector) NodeOptions {
	switch t {
	case NodeTypeMaster:
		return MasterOptions{Port: s.MasterPort, WebUIPort: s.MasterWebUIPort}
	case NodeTypeWorker:
		return WorkerOptions{
			Cores:     s.Cores,
			Memory:    s.Memory,
			Port:      s.WorkerPort,
			WebUIPort: s.WorkerWebUIPort,
		}
	case NodeTypeHistoryServer:
		return HistoryServerOptions{StorePath: s.StorePath, UIPort: s.HistoryUIPort}
	default:
		return nil
	}
}
