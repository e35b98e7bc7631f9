package layer

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mateusmacedo/go-layers/pkg/application"
	zapAdapter "github.com/mateusmacedo/go-layers/pkg/infrastructure/zaplogger/adapter"
)

func newObservedLogger() (application.AppLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zapAdapter.NewZapAppLoggerFrom(zap.New(core)), logs
}

// call is a listener invocation captured by recordingListener.
type call struct {
	callback string
	args     []any
}

type recordingListener struct {
	calls  []call
	order  *[]string
	result any
	err    error
}

func (l *recordingListener) Receive(_ context.Context, callback string, args ...any) (any, error) {
	l.calls = append(l.calls, call{callback: callback, args: args})
	if l.order != nil {
		*l.order = append(*l.order, "listener:"+callback)
	}
	return l.result, l.err
}

func fixedID(id string) Option {
	return WithIDGenerator(func() string { return id })
}
