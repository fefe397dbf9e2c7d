package app

import (
	"fmt"
	"regexp"

	"github.com/remitwise/splitledger"
	"github.com/remitwise/splitledger/errors"
)

// isPath is the RegExp to ensure valid message paths
var isPath = regexp.MustCompile(`^[a-zA-Z0-9_\-/]+$`).MatchString

// Router allows us to register many handlers with different message paths
// and then direct each message to the proper handler.
//
// Minimal interface modeled after net/http.ServeMux
type Router struct {
	routes map[string]splitledger.Handler
}

var _ splitledger.Registry = (*Router)(nil)
var _ splitledger.Handler = (*Router)(nil)

// NewRouter returns a new empty router instance.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]splitledger.Handler),
	}
}

// Handle adds a new Handler for the path of the given message.
// Panics if another Handler was already registered or the path is invalid.
func (r *Router) Handle(msg splitledger.Msg, h splitledger.Handler) {
	path := msg.Path()
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path: %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %s", path))
	}
	r.routes[path] = h
}

// handler returns the registered Handler for this path.
// If no path is found, returns a notFound Handler
func (r *Router) handler(path string) splitledger.Handler {
	if h, ok := r.routes[path]; ok {
		return h
	}
	return notFoundHandler(path)
}

// Check dispatches to the proper handler based on path
func (r *Router) Check(ctx splitledger.Context, store splitledger.KVStore, tx splitledger.Tx) (*splitledger.CheckResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	return r.handler(msg.Path()).Check(ctx, store, tx)
}

// Deliver dispatches to the proper handler based on path
func (r *Router) Deliver(ctx splitledger.Context, store splitledger.KVStore, tx splitledger.Tx) (*splitledger.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	return r.handler(msg.Path()).Deliver(ctx, store, tx)
}

// notFoundHandler always returns ErrNotFound
type notFoundHandler string

func (path notFoundHandler) Check(splitledger.Context, splitledger.KVStore, splitledger.Tx) (*splitledger.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for path %q", string(path))
}

func (path notFoundHandler) Deliver(splitledger.Context, splitledger.KVStore, splitledger.Tx) (*splitledger.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for path %q", string(path))
}
