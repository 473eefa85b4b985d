// Package logging holds log helpers shared by the operator packages.
package logging

import (
	"maps"
	"slices"

	"github.com/go-logr/logr"
)

// Audit event types emitted for writes to operator owned objects.
const (
	AuditConfigMapCreated = "configmap_created"
	AuditConfigMapUpdated = "configmap_updated"
	AuditConfigMapDeleted = "configmap_deleted"
)

// LogAuditEvent logs a structured audit event for operator actions.
// Audit events are tagged with "audit=true" so they can be filtered apart
// from regular logs. Fields are emitted in key order.
func LogAuditEvent(logger logr.Logger, eventType string, fields map[string]string) {
	kv := make([]any, 0, 4+2*len(fields))
	kv = append(kv, "audit", "true", "event_type", eventType)
	for _, k := range slices.Sorted(maps.Keys(fields)) {
		kv = append(kv, k, fields[k])
	}
	logger.Info("Operator audit event", kv...)
}
