// Package sentry reports internal errors, such as failed lowerings, to Sentry. Every function is
// a no-op until New is called with a DSN.
package sentry

import (
	"context"
	"time"

	sentrygo "github.com/getsentry/sentry-go"
	"github.com/rotisserie/eris"
	"go.opentelemetry.io/otel/trace"
)

type Options struct {
	Dsn         string
	Environment string
	Tags        map[string]string // Set on every event
}

// New initializes the global Sentry client. An empty DSN leaves reporting disabled.
func New(opt Options) error {
	if opt.Dsn == "" {
		return nil
	}
	err := sentrygo.Init(sentrygo.ClientOptions{
		Dsn:         opt.Dsn,
		Environment: opt.Environment,
		Tags:        opt.Tags,
	})
	return eris.Wrap(err, "failed to initialize sentry")
}

// CaptureException reports err, tagged with the trace and span ids found in ctx.
func CaptureException(ctx context.Context, err error) {
	capture(ctx, err, nil)
}

// Reporter returns a hook reporting errors tagged with the component that produced them and with
// the trace and span ids of the context they are reported with. It fits archetype.WithReporter.
func Reporter(component string) func(context.Context, error) {
	tags := map[string]string{"component": component}
	return func(ctx context.Context, err error) {
		capture(ctx, err, tags)
	}
}

func capture(ctx context.Context, err error, tags map[string]string) {
	report(ctx, sentrygo.CurrentHub(), err, tags)
}

func report(ctx context.Context, parent *sentrygo.Hub, err error, tags map[string]string) {
	if err == nil || parent.Client() == nil {
		return
	}
	// A cloned hub keeps concurrent reports from sharing one scope.
	hub := parent.Clone()
	scope := hub.Scope()
	scope.SetTags(tags)
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		scope.SetTag("trace_id", sc.TraceID().String())
		scope.SetTag("span_id", sc.SpanID().String())
	}
	hub.CaptureException(err)
}

// Shutdown flushes buffered events, waiting at most timeout or until the ctx deadline, whichever
// is sooner.
func Shutdown(ctx context.Context, timeout time.Duration) {
	if !isInitialized() {
		return
	}
	if deadline, ok := ctx.Deadline(); ok {
		timeout = min(timeout, time.Until(deadline))
	}
	sentrygo.Flush(max(timeout, 0))
}

func isInitialized() bool {
	return sentrygo.CurrentHub().Client() != nil
}
