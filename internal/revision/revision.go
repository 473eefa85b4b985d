// Package revision derives stable identities for SparkCluster replica groups.
package revision

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	sparkv1alpha1 "github.com/dc-tec/spark-operator/api/v1alpha1"
)

const revisionLength = 16

// SelectorIdentity returns a deterministic identity for a replica group.
//
// The identity covers every selector field except Instances, so scaling a
// group never changes it, together with the node type and cluster name so
// same-shaped selectors of different roles or clusters never share one.
func SelectorIdentity(nodeType sparkv1alpha1.SparkNodeType, clusterName string, sel *sparkv1alpha1.SparkNodeSelector) string {
	h := sha256.New()
	writeSelector(h, sel)
	fmt.Fprintf(h, "node_type=%q\n", nodeType.String())
	fmt.Fprintf(h, "cluster=%q\n", clusterName)
	return hex.EncodeToString(h.Sum(nil))[:revisionLength]
}

// HashedSelectors maps each selector of node to its identity. Selectors that
// only differ in Instances collapse to a single entry; the last one wins.
func HashedSelectors(node *sparkv1alpha1.SparkNode, nodeType sparkv1alpha1.SparkNodeType, clusterName string) map[string]sparkv1alpha1.SparkNodeSelector {
	hashed := make(map[string]sparkv1alpha1.SparkNodeSelector, len(node.Selectors))
	for i := range node.Selectors {
		sel := node.Selectors[i]
		hashed[SelectorIdentity(nodeType, clusterName, &sel)] = sel
	}
	return hashed
}

// ClusterHashedSelectors runs HashedSelectors for every role present in spec.
func ClusterHashedSelectors(spec *sparkv1alpha1.SparkClusterSpec, clusterName string) map[sparkv1alpha1.SparkNodeType]map[string]sparkv1alpha1.SparkNodeSelector {
	nodes := spec.Nodes()
	hashed := make(map[sparkv1alpha1.SparkNodeType]map[string]sparkv1alpha1.SparkNodeSelector, len(nodes))
	for nodeType, node := range nodes {
		hashed[nodeType] = HashedSelectors(node, nodeType, clusterName)
	}
	return hashed
}

// writeSelector is the identity serialization. Fields are listed explicitly and
// in a fixed order; Instances is deliberately absent. Adding a field here
// changes every identity and therefore recreates every replica group.
func writeSelector(w io.Writer, sel *sparkv1alpha1.SparkNodeSelector) {
	fmt.Fprintf(w, "node_name=%q\n", sel.NodeName)
	writeOptions(w, "config", sel.Config)
	writeOptions(w, "env", sel.Env)
	writeInt32(w, "master_port", sel.MasterPort)
	writeInt32(w, "master_web_ui_port", sel.MasterWebUIPort)
	writeInt32(w, "cores", sel.Cores)
	writeString(w, "memory", sel.Memory)
	writeInt32(w, "worker_port", sel.WorkerPort)
	writeInt32(w, "worker_web_ui_port", sel.WorkerWebUIPort)
	writeString(w, "store_path", sel.StorePath)
	writeInt32(w, "history_ui_port", sel.HistoryUIPort)
}

// writeOptions treats a nil and an empty list alike: both round-trip through
// the API server as an omitted field.
func writeOptions(w io.Writer, field string, opts []sparkv1alpha1.ConfigOption) {
	fmt.Fprintf(w, "%s.len=%d\n", field, len(opts))
	for i, opt := range opts {
		fmt.Fprintf(w, "%s[%d]=%q:%q\n", field, i, opt.Name, opt.Value)
	}
}

func writeInt32(w io.Writer, field string, v *int32) {
	if v == nil {
		fmt.Fprintf(w, "%s=<nil>\n", field)
		return
	}
	fmt.Fprintf(w, "%s=%d\n", field, *v)
}

func writeString(w io.Writer, field string, v *string) {
	if v == nil {
		fmt.Fprintf(w, "%s=<nil>\n", field)
		return
	}
	fmt.Fprintf(w, "%s=%q\n", field, *v)
}
