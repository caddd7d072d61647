// Package executor dispatches validated protocol Requests against a
// store.Store and formats the resulting protocol.Response. It is pure
// dispatch: it never touches a socket or a channel itself. The coordinator
// (internal/server) is the only caller, and it is the only code that ever
// hands the Store to more than one goroutine across time — never
// concurrently.
package executor

import (
	"strings"

	"github.com/lukluk/kiba/internal/protocol"
	"github.com/lukluk/kiba/internal/store"
)

// Observer receives dispatch notifications for metrics collection. It is
// pure observation: nothing it does can change a Response body. A nil
// Observer (the zero value of Executor) disables observation entirely.
type Observer interface {
	ObserveRequest(op string, isErr bool)
}

// Executor owns a Store and applies requests against it serially.
type Executor struct {
	store    *store.Store
	observer Observer
}

// New returns an Executor over a freshly created, empty Store.
func New() *Executor {
	return &Executor{store: store.New()}
}

// WithObserver attaches a metrics Observer and returns e for chaining.
func (e *Executor) WithObserver(o Observer) *Executor {
	e.observer = o
	return e
}

// Execute applies req to the store and returns the formatted response. The
// caller (the single coordinator goroutine that owns this Executor) must
// never call Execute concurrently from more than one goroutine.
func (e *Executor) Execute(req protocol.Request) protocol.Response {
	body := e.dispatch(req)
	if e.observer != nil {
		e.observer.ObserveRequest(opName(req.Kind), strings.HasPrefix(body, "(error)"))
	}
	return protocol.Response{Body: body}
}
