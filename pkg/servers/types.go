package servers

import (
	"time"

	"github.com/qmdx00/lifecycle"
)

const readHeaderTimeout = 10 * time.Second

var (
	_ Server = (*httpServer)(nil)
	_ Server = (*baseServer)(nil)
)

type Server interface {
	lifecycle.Server
}
