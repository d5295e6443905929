package test

import (
	"go.uber.org/fx"
)

// LifecycleRecorder collects hooks so tests can run OnStart/OnStop directly.
type LifecycleRecorder struct {
	Hooks []fx.Hook
}

// Append records the hook without scheduling it.
func (l *LifecycleRecorder) Append(h fx.Hook) {
	l.Hooks = append(l.Hooks, h)
}

// ShutdownerStub signals on Called when a graceful shutdown is requested.
type ShutdownerStub struct {
	Called chan struct{}
}

// Shutdown notifies the test without blocking on a full channel.
func (s *ShutdownerStub) Shutdown(...fx.ShutdownOption) error {
	if s.Called != nil {
		select {
		case s.Called <- struct{}{}:
		default:
		}
	}
	return nil
}
