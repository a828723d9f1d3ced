package app

import (
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"sort"

	"github.com/iov-one/rainbow"
	"github.com/iov-one/rainbow/errors"
)

// isPath is the format of a message path, <extension>/<operation>.
var isPath = regexp.MustCompile(`^[a-z0-9_]+/[a-z0-9_]+$`).MatchString

// Router dispatches messages to the handler registered for their path. It
// implements rainbow.Registry for the setup and rainbow.Handler for the
// dispatch.
type Router struct {
	routes map[string]route
}

type route struct {
	msg reflect.Type
	h   rainbow.Handler
}

var (
	_ rainbow.Registry = (*Router)(nil)
	_ rainbow.Handler  = (*Router)(nil)
)

// NewRouter returns a router without any route.
func NewRouter() *Router {
	return &Router{routes: make(map[string]route)}
}

// Handle registers h for the path of message m. The prototype must be a
// pointer to a struct. Panics on an invalid or already registered path.
func (r *Router) Handle(m rainbow.Msg, h rainbow.Handler) {
	path := m.Path()
	if !isPath(path) {
		panic(fmt.Sprintf("invalid message path %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering path %q", path))
	}
	t := reflect.TypeOf(m)
	if t.Kind() != reflect.Ptr || t.Elem().Kind() != reflect.Struct {
		panic(fmt.Sprintf("message %T must be a pointer to a struct", m))
	}
	r.routes[path] = route{msg: t.Elem(), h: h}
}

// Handler returns the handler registered for path.
func (r *Router) Handler(path string) (rainbow.Handler, error) {
	rt, ok := r.routes[path]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "no handler for path %q", path)
	}
	return rt.h, nil
}

// DecodeMsg builds the message registered for path from its JSON
// representation.
func (r *Router) DecodeMsg(path string, raw []byte) (rainbow.Msg, error) {
	rt, ok := r.routes[path]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "no message for path %q", path)
	}
	msg := reflect.New(rt.msg).Interface().(rainbow.Msg)
	if err := json.Unmarshal(raw, msg); err != nil {
		return nil, errors.Wrapf(errors.ErrMsg, "decode %s: %s", path, err)
	}
	return msg, nil
}

// Paths returns all registered paths in alphabetical order.
func (r *Router) Paths() []string {
	paths := make([]string, 0, len(r.routes))
	for p := range r.routes {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Check dispatches msg to its handler.
func (r *Router) Check(ctx rainbow.Context, store rainbow.KVStore, msg rainbow.Msg) (*rainbow.CheckResult, error) {
	h, err := r.Handler(msg.Path())
	if err != nil {
		return nil, err
	}
	return h.Check(ctx, store, msg)
}

// Deliver dispatches msg to its handler.
func (r *Router) Deliver(ctx rainbow.Context, store rainbow.KVStore, msg rainbow.Msg) (*rainbow.DeliverResult, error) {
	h, err := r.Handler(msg.Path())
	if err != nil {
		return nil, err
	}
	return h.Deliver(ctx, store, msg)
}
