package splitledger

import (
	"fmt"
	"sort"
	"strings"

	"github.com/remitwise/splitledger/errors"
)

const (
	// KeyQueryMod means to query for exact match (key)
	KeyQueryMod = ""
	// PrefixQueryMod means to query for anything with this prefix
	PrefixQueryMod = "prefix"
)

// Model groups together key and value to return
type Model struct {
	Key   []byte
	Value []byte
}

// Pair constructs a model from a key-value pair
func Pair(key, value []byte) Model {
	return Model{
		Key:   key,
		Value: value,
	}
}

// QueryHandler is anything that can process ABCI queries
type QueryHandler interface {
	Query(db ReadOnlyKVStore, mod string, data []byte) ([]Model, error)
}

// QueryRegister is a function that adds some handlers
// to this router
type QueryRegister func(QueryRouter)

// QueryRouter directs each query to the handler registered for its path.
// Paths are absolute ("/split") and matched exactly, ignoring a trailing
// slash.
type QueryRouter struct {
	routes map[string]QueryHandler
}

// NewQueryRouter initializes a QueryRouter with no routes
func NewQueryRouter() QueryRouter {
	return QueryRouter{
		routes: make(map[string]QueryHandler, 4),
	}
}

// RegisterAll registers a number of QueryRegister at once
func (r QueryRouter) RegisterAll(qr ...QueryRegister) {
	for _, q := range qr {
		q(r)
	}
}

// Register adds a new Handler for the given path.
// Panics if the path is not absolute or is already taken.
func (r QueryRouter) Register(path string, h QueryHandler) {
	p := cleanQueryPath(path)
	if !strings.HasPrefix(p, "/") || p == "/" {
		panic(fmt.Sprintf("query path must be absolute: %q", path))
	}
	if _, ok := r.routes[p]; ok {
		panic(fmt.Sprintf("Re-registering route: %s", path))
	}
	r.routes[p] = h
}

// Handler returns the Handler registered for path. An unknown path gets a
// handler that fails every query with ErrNotFound.
func (r QueryRouter) Handler(path string) QueryHandler {
	if h, ok := r.routes[cleanQueryPath(path)]; ok {
		return h
	}
	return notFoundQuery{path: path, known: r.Paths()}
}

// Paths returns all registered paths in lexical order.
func (r QueryRouter) Paths() []string {
	paths := make([]string, 0, len(r.routes))
	for p := range r.routes {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func cleanQueryPath(path string) string {
	if len(path) > 1 {
		return strings.TrimSuffix(path, "/")
	}
	return path
}

type notFoundQuery struct {
	path  string
	known []string
}

var _ QueryHandler = notFoundQuery{}

func (q notFoundQuery) Query(ReadOnlyKVStore, string, []byte) ([]Model, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "unknown query path %q, have %s", q.path, strings.Join(q.known, ", "))
}
