package service

import (
	"context"
	"time"
)

// gatewayContext detaches a gateway call from the caller's cancellation and bounds it by timeout.
// A client that disconnects mid-turn still gets its reply written to the transcript.
func gatewayContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), timeout)
}
