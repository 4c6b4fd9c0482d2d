package sync

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/spinsync/spinsync/internal/shared"
)

// errAdapterPanic marks a recovered adapter panic so it sanitizes like any
// other internal failure.
var errAdapterPanic = errors.New("adapter panicked")

// Sanitize converts a raw adapter or catalog error into the message stored
// and shown to users. The output never contains tokens, URLs, headers, or
// service-specific detail beyond an HTTP status code.
func Sanitize(err error) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, shared.ErrTimeout) {
		return "External API timeout"
	}

	var statusErr *shared.StatusError
	if errors.As(err, &statusErr) {
		return fmt.Sprintf("External API error: HTTP %d", statusErr.Code)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return "External API timeout"
		}
		return "External API connection failed"
	}
	if errors.Is(err, shared.ErrServiceUnavailable) || errors.Is(err, shared.ErrNotConnected) {
		return "External API connection failed"
	}

	return "Sync operation failed"
}
