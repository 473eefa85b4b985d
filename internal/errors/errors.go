// Package errors classifies reconcile errors into transient failures that are
// retried and permanent ones that wait for the user to change the spec.
package errors

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	apierrors "k8s.io/apimachinery/pkg/api/errors"

	sparkv1alpha1 "github.com/dc-tec/spark-operator/api/v1alpha1"
	"github.com/dc-tec/spark-operator/internal/constants"
)

// ErrTransientKubernetesAPI indicates a Kubernetes API failure that is
// expected to clear up on its own: throttling, server timeouts, conflicts and
// connection problems.
var ErrTransientKubernetesAPI = errors.New("transient Kubernetes API error")

// ErrPermanentConfig indicates a SparkCluster spec or product config rule
// table that cannot be rendered. Reconciliation waits for the next change.
var ErrPermanentConfig = errors.New("permanent configuration error")

// TransientRequeueAfter is the delay before a transient failure is retried.
const TransientRequeueAfter = constants.RequeueShort

var transientPatterns = []string{
	"connection refused",
	"connection reset",
	"i/o timeout",
	"no such host",
	"context deadline exceeded",
	"too many requests",
	"rate limit",
	"service unavailable",
}

// IsTransientKubernetesAPI reports whether err is worth retrying.
func IsTransientKubernetesAPI(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTransientKubernetesAPI) {
		return true
	}

	switch {
	case apierrors.IsTooManyRequests(err),
		apierrors.IsServerTimeout(err),
		apierrors.IsTimeout(err),
		apierrors.IsServiceUnavailable(err),
		apierrors.IsInternalError(err),
		apierrors.IsConflict(err):
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, pattern := range transientPatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}

// IsPermanentConfig reports whether err is a configuration problem. An
// unknown node type is always one.
func IsPermanentConfig(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrPermanentConfig) || errors.Is(err, sparkv1alpha1.ErrInvalidNodeType)
}

// WrapTransientKubernetesAPI marks err as transient. Errors already marked are
// returned unchanged.
func WrapTransientKubernetesAPI(err error) error {
	if err == nil || errors.Is(err, ErrTransientKubernetesAPI) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrTransientKubernetesAPI, err)
}

// WrapPermanentConfig marks err as a permanent configuration error.
func WrapPermanentConfig(err error) error {
	if err == nil || errors.Is(err, ErrPermanentConfig) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrPermanentConfig, err)
}

// ClassifyKubernetesAPI wraps err as transient when the API failure is
// retryable and returns it unchanged otherwise.
func ClassifyKubernetesAPI(err error) error {
	if IsTransientKubernetesAPI(err) {
		return WrapTransientKubernetesAPI(err)
	}
	return err
}

// ShouldRequeue maps err to a retry decision. Permanent errors are not
// requeued, transient errors are retried after TransientRequeueAfter and any
// other error is returned to controller-runtime for exponential backoff.
func ShouldRequeue(err error) (bool, time.Duration) {
	switch {
	case err == nil:
		return false, 0
	case IsPermanentConfig(err):
		return false, 0
	case IsTransientKubernetesAPI(err):
		return true, TransientRequeueAfter
	default:
		return true, 0
	}
}
