package servers

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"event-planner/pkg/resources"
)

// Manage runs server in the background. Run failures are sent to errChan; the returned function stops it.
func Manage(ctx context.Context, name string, server Server, errChan chan<- error) resources.StopFn {
	go func() {
		err := server.Run(ctx)
		if err != nil {
			errChan <- err
		}
	}()

	return func(ctx context.Context, timeout time.Duration) {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
		defer cancel()

		err := server.Stop(ctx)
		if err != nil {
			log.Ctx(ctx).Error().Str("stage", "shut down").Str("component", name).Err(err).Msg("unable to stop")
		}
	}
}
