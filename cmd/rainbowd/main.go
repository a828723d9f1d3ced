package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/iov-one/rainbow"
	"github.com/iov-one/rainbow/app"
	rainbowd "github.com/iov-one/rainbow/cmd/rainbowd/app"
	"github.com/iov-one/rainbow/errors"
	"github.com/tendermint/tendermint/libs/log"
)

var (
	flagHome  = "home"
	flagDebug = "debug"
	varHome   *string
	varDebug  *bool
)

func init() {
	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".rainbow")
	varHome = flag.String(flagHome, defaultHome, "directory to store files under")
	varDebug = flag.Bool(flagDebug, false, "expose internal error details")

	flag.CommandLine.Usage = helpMessage
}

func helpMessage() {
	fmt.Println("rainbowd")
	fmt.Println("          Multisig wallets and access registries")
	fmt.Println("")
	fmt.Println("help      Print this message")
	fmt.Println("init      Load the genesis file: init <genesis.json>")
	fmt.Println("deliver   Run a message: deliver <caller> <path> <json>")
	fmt.Println("query     Read the state: query <name> [args...]")
	fmt.Println("paths     List all message paths")
	fmt.Println("address   Print the address of a caller: address <name>")
	fmt.Println("version   Print the app version")
	fmt.Println("")
	fmt.Println("queries:")
	for _, q := range rainbowd.QueryUsage() {
		fmt.Println("  " + q)
	}
	fmt.Println(`
  -home string
        directory to store files under (default "$HOME/.rainbow")
  -debug
        expose internal error details`)
}

func main() {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).
		With("module", "rainbow")

	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Println("Missing command:")
		helpMessage()
		os.Exit(1)
	}

	cmd := flag.Arg(0)
	rest := flag.Args()[1:]

	var err error
	switch cmd {
	case "help":
		helpMessage()
	case "init":
		err = withHost(logger, func(h *app.Host, _ rainbowd.Controllers) error {
			return initCmd(h, rest)
		})
	case "deliver":
		err = withHost(logger, func(h *app.Host, _ rainbowd.Controllers) error {
			return deliverCmd(h, rest)
		})
	case "query":
		err = withHost(log.NewNopLogger(), func(h *app.Host, c rainbowd.Controllers) error {
			return queryCmd(h, c, rest)
		})
	case "paths":
		r := rainbowd.Router(rainbowd.Authenticator(), rainbowd.NewControllers())
		for _, p := range r.Paths() {
			fmt.Println(p)
		}
	case "address":
		if len(rest) != 1 {
			err = errors.Wrap(errors.ErrInput, "usage: address <name>")
			break
		}
		fmt.Println(rainbowd.Caller(rest[0]).Address())
	case "version":
		fmt.Println(rainbow.Version())
	default:
		err = fmt.Errorf("unknown command: %s", cmd)
	}

	if err != nil {
		fmt.Printf("Error: %+v\n\n", err)
		helpMessage()
		os.Exit(1)
	}
}

// withHost opens the store under the home directory and runs fn with a
// host over it.
func withHost(logger log.Logger, fn func(*app.Host, rainbowd.Controllers) error) error {
	if err := os.MkdirAll(*varHome, 0755); err != nil {
		return errors.Wrap(err, "home directory")
	}
	store, err := rainbowd.CommitKVStore(filepath.Join(*varHome, "rainbow.db"))
	if err != nil {
		return err
	}
	defer store.Close()

	ctrl := rainbowd.NewControllers()
	host, err := rainbowd.Application(store, ctrl)
	if err != nil {
		return err
	}
	host.WithLogger(logger).WithDebug(*varDebug)
	return fn(host, ctrl)
}

func initCmd(h *app.Host, args []string) error {
	if len(args) != 1 {
		return errors.Wrap(errors.ErrInput, "usage: init <genesis.json>")
	}
	gen, err := app.LoadGenesis(args[0])
	if err != nil {
		return err
	}
	if err := h.InitGenesis(*gen); err != nil {
		return err
	}
	_, err = h.Commit()
	return err
}

func deliverCmd(h *app.Host, args []string) error {
	if len(args) != 3 {
		return errors.Wrap(errors.ErrInput, "usage: deliver <caller> <path> <json>")
	}
	res := h.DeliverTx(context.Background(), rainbowd.Caller(args[0]), args[1], []byte(args[2]))
	if res.Code == 0 {
		if _, err := h.Commit(); err != nil {
			return err
		}
	}
	return printJSON(res)
}

func queryCmd(h *app.Host, c rainbowd.Controllers, args []string) error {
	if len(args) == 0 {
		return errors.Wrap(errors.ErrInput, "usage: query <name> [args...]")
	}
	return h.View(func(db rainbow.ReadOnlyKVStore) error {
		res, err := rainbowd.Query(db, c, args[0], args[1:])
		if err != nil {
			return err
		}
		return printJSON(res)
	})
}

func printJSON(v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "cannot encode")
	}
	fmt.Println(string(raw))
	return nil
}
