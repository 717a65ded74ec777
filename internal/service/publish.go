package service

import (
	"context"
	"time"

	"github.com/Skotchmaster/beauty_portal/internal/events"
	"github.com/Skotchmaster/beauty_portal/internal/logging"
)

// publish sends a page-invalidation event. Failures are logged and never reach the caller.
func publish(ctx context.Context, p events.Publisher, ev events.Event) {
	if p == nil {
		return
	}
	ev.OccurredAt = time.Now().UTC()
	if err := p.Publish(ctx, ev); err != nil {
		logging.FromContext(ctx).Warn("publish_event_error", "type", ev.Type, "error", err)
	}
}
