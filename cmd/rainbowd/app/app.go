/*
Package app links together all the various components
to construct the rainbowd application.
*/
package app

import (
	"path/filepath"
	"strings"

	"github.com/iov-one/rainbow"
	"github.com/iov-one/rainbow/app"
	"github.com/iov-one/rainbow/errors"
	"github.com/iov-one/rainbow/store/iavl"
	"github.com/iov-one/rainbow/x"
	"github.com/iov-one/rainbow/x/auth"
	"github.com/iov-one/rainbow/x/cash"
	"github.com/iov-one/rainbow/x/factory"
	"github.com/iov-one/rainbow/x/kernel"
	"github.com/iov-one/rainbow/x/multisig"
	"github.com/iov-one/rainbow/x/privileges"
	"github.com/iov-one/rainbow/x/roles"
	"github.com/iov-one/rainbow/x/routes"
	"github.com/iov-one/rainbow/x/spawn"
)

// Controllers groups the controllers of all components, wired to each
// other.
type Controllers struct {
	Cash       cash.Controller
	Spawn      spawn.Controller
	Multisig   multisig.Controller
	Factory    factory.Controller
	Roles      roles.Controller
	Privileges privileges.Controller
	Routes     routes.Controller
	Kernel     kernel.Controller
}

// NewControllers returns the default controllers.
func NewControllers() Controllers {
	c := Controllers{
		Cash:       cash.NewController(),
		Spawn:      spawn.NewController(),
		Roles:      roles.NewController(),
		Privileges: privileges.NewController(),
		Routes:     routes.NewController(),
	}
	c.Multisig = multisig.NewController(c.Cash)
	c.Factory = factory.NewController(c.Spawn, c.Multisig, c.Cash)
	c.Kernel = kernel.NewController(c.Spawn, c.Roles, c.Privileges, c.Routes)
	return c
}

// Authenticator returns the authentication used by all handlers, the
// caller resolved by the host.
func Authenticator() x.Authenticator {
	return auth.Authenticate{}
}

// Router returns a router with the messages of every component.
func Router(authFn x.Authenticator, c Controllers) *app.Router {
	r := app.NewRouter()
	cash.RegisterRoutes(r, authFn, c.Cash)
	multisig.RegisterRoutes(r, authFn, c.Multisig)
	factory.RegisterRoutes(r, authFn, c.Factory)
	kernel.RegisterRoutes(r, authFn, c.Kernel)
	return r
}

// Initializers returns the genesis initializers of every component.
func Initializers() rainbow.Initializer {
	return rainbow.ChainInitializers(
		cash.Initializer{},
		spawn.Initializer{},
		multisig.Initializer{},
	)
}

// Application constructs a host over the given store.
func Application(store rainbow.CommitKVStore, c Controllers) (*app.Host, error) {
	return app.NewHost(store, Router(Authenticator(), c), Initializers())
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path.
func CommitKVStore(dbPath string) (*iavl.CommitStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.NewMemCommitStore(), nil
	}

	// Expand the path fully
	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database name: %s", dbPath)
	}

	// Some external calls accidently add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	// Split the database name into it's components (dir, name)
	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name)
}

// Caller returns the condition of the user with given name. Users are not
// backed by keys, the command line trusts the given name.
func Caller(name string) rainbow.Condition {
	return rainbow.NewCondition("user", "name", []byte(name))
}
