package app

import (
	"sort"
	"strconv"

	"github.com/iov-one/rainbow"
	"github.com/iov-one/rainbow/errors"
	"github.com/iov-one/rainbow/x/kernel"
)

// queryFn reads a value from the state. The result must be JSON
// serializable.
type queryFn func(db rainbow.ReadOnlyKVStore, c Controllers, args []string) (interface{}, error)

type query struct {
	args int
	help string
	fn   queryFn
}

var queries = map[string]query{
	"balance": {1, "<address>", func(db rainbow.ReadOnlyKVStore, c Controllers, args []string) (interface{}, error) {
		addr, err := rainbow.ParseAddress(args[0])
		if err != nil {
			return nil, err
		}
		return c.Cash.Balance(db, addr)
	}},
	"multisig": {1, "<address>", func(db rainbow.ReadOnlyKVStore, c Controllers, args []string) (interface{}, error) {
		addr, err := rainbow.ParseAddress(args[0])
		if err != nil {
			return nil, err
		}
		return c.Multisig.Instance(db, addr)
	}},
	"managers": {1, "<multisig>", func(db rainbow.ReadOnlyKVStore, c Controllers, args []string) (interface{}, error) {
		addr, err := rainbow.ParseAddress(args[0])
		if err != nil {
			return nil, err
		}
		return c.Multisig.Managers(db, addr)
	}},
	"transactions": {1, "<multisig>", func(db rainbow.ReadOnlyKVStore, c Controllers, args []string) (interface{}, error) {
		addr, err := rainbow.ParseAddress(args[0])
		if err != nil {
			return nil, err
		}
		return c.Multisig.Transactions(db, addr)
	}},
	"transaction": {2, "<multisig> <id>", func(db rainbow.ReadOnlyKVStore, c Controllers, args []string) (interface{}, error) {
		addr, err := rainbow.ParseAddress(args[0])
		if err != nil {
			return nil, err
		}
		id, err := parseIndex(args[1])
		if err != nil {
			return nil, err
		}
		return c.Multisig.Transaction(db, addr, id)
	}},
	"instances": {0, "", func(db rainbow.ReadOnlyKVStore, c Controllers, args []string) (interface{}, error) {
		return c.Factory.Instances(db)
	}},
	"instance": {1, "<index>", func(db rainbow.ReadOnlyKVStore, c Controllers, args []string) (interface{}, error) {
		index, err := parseIndex(args[0])
		if err != nil {
			return nil, err
		}
		return c.Factory.InstanceAt(db, index)
	}},
	"user_instances": {1, "<address>", func(db rainbow.ReadOnlyKVStore, c Controllers, args []string) (interface{}, error) {
		addr, err := rainbow.ParseAddress(args[0])
		if err != nil {
			return nil, err
		}
		return c.Factory.UserInstances(db, addr)
	}},
	"kernel": {0, "", func(db rainbow.ReadOnlyKVStore, c Controllers, args []string) (interface{}, error) {
		return kernelState(db, c)
	}},
	"roles": {0, "", func(db rainbow.ReadOnlyKVStore, c Controllers, args []string) (interface{}, error) {
		st, err := kernelState(db, c)
		if err != nil {
			return nil, err
		}
		addr := st.Roles
		return c.Roles.Roles(db, addr)
	}},
	"role_privileges": {1, "<role>", func(db rainbow.ReadOnlyKVStore, c Controllers, args []string) (interface{}, error) {
		st, err := kernelState(db, c)
		if err != nil {
			return nil, err
		}
		addr := st.Roles
		return c.Roles.RolePrivileges(db, addr, args[0])
	}},
	"user_roles": {1, "<address>", func(db rainbow.ReadOnlyKVStore, c Controllers, args []string) (interface{}, error) {
		user, err := rainbow.ParseAddress(args[0])
		if err != nil {
			return nil, err
		}
		st, err := kernelState(db, c)
		if err != nil {
			return nil, err
		}
		addr := st.Roles
		return c.Roles.UserRoles(db, addr, user)
	}},
	"user_privileges": {1, "<address>", func(db rainbow.ReadOnlyKVStore, c Controllers, args []string) (interface{}, error) {
		user, err := rainbow.ParseAddress(args[0])
		if err != nil {
			return nil, err
		}
		st, err := kernelState(db, c)
		if err != nil {
			return nil, err
		}
		addr := st.Roles
		return c.Roles.UserPrivileges(db, addr, user)
	}},
	"privileges": {0, "", func(db rainbow.ReadOnlyKVStore, c Controllers, args []string) (interface{}, error) {
		st, err := kernelState(db, c)
		if err != nil {
			return nil, err
		}
		addr := st.Privileges
		return c.Privileges.Privileges(db, addr)
	}},
	"routes": {0, "", func(db rainbow.ReadOnlyKVStore, c Controllers, args []string) (interface{}, error) {
		st, err := kernelState(db, c)
		if err != nil {
			return nil, err
		}
		addr := st.Routes
		return c.Routes.Routes(db, addr)
	}},
	"route": {1, "<name>", func(db rainbow.ReadOnlyKVStore, c Controllers, args []string) (interface{}, error) {
		st, err := kernelState(db, c)
		if err != nil {
			return nil, err
		}
		addr := st.Routes
		return c.Routes.QueryRoute(db, addr, args[0])
	}},
}

func kernelState(db rainbow.ReadOnlyKVStore, c Controllers) (*kernel.State, error) {
	st, err := c.Kernel.State(db)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, errors.Wrap(errors.ErrState, "kernel not initialized")
	}
	return st, nil
}

func parseIndex(s string) (uint64, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrInput, "index %q", s)
	}
	return n, nil
}

// Query runs the named query with given arguments.
func Query(db rainbow.ReadOnlyKVStore, c Controllers, name string, args []string) (interface{}, error) {
	q, ok := queries[name]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "query %q", name)
	}
	if len(args) != q.args {
		return nil, errors.Wrapf(errors.ErrInput, "usage: %s %s", name, q.help)
	}
	return q.fn(db, c, args)
}

// QueryUsage returns a usage line for every query, sorted by name.
func QueryUsage() []string {
	lines := make([]string, 0, len(queries))
	for name, q := range queries {
		lines = append(lines, name+" "+q.help)
	}
	sort.Strings(lines)
	return lines
}
