package health

import "sync/atomic"

type ServerState int32

const (
	ServerStateStarting ServerState = iota
	ServerStateReady
	ServerStateInGracePeriod
	ServerStateInCleanupPeriod
)

// Status is the lifecycle state of the running server, shared by the HTTP server and the health check.
type Status struct {
	state atomic.Int32
}

func NewStatus() *Status {
	return &Status{}
}

func (s *Status) Set(state ServerState) {
	s.state.Store(int32(state))
}

func (s *Status) Get() ServerState {
	return ServerState(s.state.Load())
}

func (s *Status) ShuttingDown() bool {
	state := s.Get()

	return state == ServerStateInGracePeriod || state == ServerStateInCleanupPeriod
}
