package servers

import (
	"context"
	"sync"

	"github.com/qmdx00/lifecycle"
	"github.com/rs/zerolog/log"
)

// baseServer keeps the process alive and runs its closers when stopped.
type baseServer struct {
	name         string
	closeChannel chan struct{}
	closeOnce    sync.Once
	closers      []func()
}

func NewBaseServer(name string, closers ...func()) lifecycle.Server {
	return &baseServer{
		name:         name,
		closeChannel: make(chan struct{}),
		closers:      closers,
	}
}

func (server *baseServer) Run(ctx context.Context) error {
	log.Ctx(ctx).Info().Str("stage", "startup").Str("component", server.name).Msg("starting up")

	select {
	case <-server.closeChannel:
	case <-ctx.Done():
	}

	return nil
}

func (server *baseServer) Stop(ctx context.Context) error {
	log.Ctx(ctx).Info().Str("stage", "shut down").Str("component", server.name).Msg("stopping")
	defer log.Ctx(ctx).Info().Str("stage", "shut down").Str("component", server.name).Msg("stopped")

	server.closeOnce.Do(func() {
		for _, closer := range server.closers {
			closer()
		}

		close(server.closeChannel)
	})

	return nil
}
