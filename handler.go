package rainbow

import (
	"encoding/json"
)

// Msg is a single request processed by a Handler. The host routes a Msg
// to the handler registered under its Path.
type Msg interface {
	// Path returns a path that can be used to route the message.
	Path() string

	// Validate performs stateless checks of the message content.
	Validate() error
}

// Handler is a core engine that can process a few specific messages
// This could represent "propose a transfer", or "add a route"
type Handler interface {
	Checker
	Deliverer
}

// Checker is a subset of Handler to verify the validity of a message.
// Check must not have side effects that outlive the call, the host
// discards all writes made by it.
type Checker interface {
	Check(ctx Context, store KVStore, msg Msg) (*CheckResult, error)
}

// Deliverer is a subset of Handler to execute a message.
type Deliverer interface {
	Deliver(ctx Context, store KVStore, msg Msg) (*DeliverResult, error)
}

// CheckResult captures any non-error result of checking a message.
type CheckResult struct {
	// Log is human-readable info
	Log string
}

// DeliverResult captures any non-error result of executing a message.
type DeliverResult struct {
	// Data is a machine-parseable return value, like the id of a newly
	// proposed transaction or the address of a spawned instance.
	Data []byte
	// Log is human-readable info
	Log string
}

// Registry is an interface to register your handler,
// the setup side of a Router. The message is a prototype, its path is
// used for routing and its type for decoding requests.
type Registry interface {
	Handle(m Msg, h Handler)
}

// Options are the app options
// Each extension can look up it's key and parse the json as desired
type Options map[string]json.RawMessage

// ReadOptions reads the values stored under a given key,
// and parses the json into the given obj.
// Returns an error if it cannot parse.
// Noop and no error if key is missing
func (o Options) ReadOptions(key string, obj interface{}) error {
	msg := o[key]
	if len(msg) == 0 {
		return nil
	}
	return json.Unmarshal(msg, obj)
}

// Initializer implementations are used to initialize
// extensions from genesis file contents
type Initializer interface {
	FromGenesis(Options, KVStore) error
}

// ChainInitializers lets you initialize many extensions with one function
func ChainInitializers(inits ...Initializer) Initializer {
	return chainInitializer{inits}
}

type chainInitializer struct {
	inits []Initializer
}

func (c chainInitializer) FromGenesis(opts Options, kv KVStore) error {
	for _, i := range c.inits {
		if err := i.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}
