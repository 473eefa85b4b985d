package constants

import "time"

// RequeueShort is the requeue interval after a transient API failure.
const RequeueShort = 5 * time.Second
