package app

import (
	"encoding/json"
	"io/ioutil"
	"regexp"

	"github.com/iov-one/rainbow"
	"github.com/iov-one/rainbow/errors"
)

// IsValidChainID is the RegExp to ensure valid chain IDs
var IsValidChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,20}$`).MatchString

// Genesis file format.
type Genesis struct {
	ChainID  string          `json:"chain_id"`
	AppState rainbow.Options `json:"app_state"`
}

// LoadGenesis tries to load a given file into a Genesis struct
func LoadGenesis(filePath string) (*Genesis, error) {
	raw, err := ioutil.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "loading genesis file: %s", err)
	}
	var gen Genesis
	if err := json.Unmarshal(raw, &gen); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "unmarshaling genesis file: %s", err)
	}
	return &gen, nil
}

// _rb: is a prefix for host internal data
const chainIDKey = "_rb:chainID"

// loadChainID returns the chain id stored if any
func loadChainID(kv rainbow.ReadOnlyKVStore) (string, error) {
	v, err := kv.Get([]byte(chainIDKey))
	if err != nil {
		return "", errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return string(v), nil
}

// saveChainID stores a chain id in the kv store.
// Returns error if already set, or invalid name
func saveChainID(kv rainbow.KVStore, chainID string) error {
	if !IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}
	k := []byte(chainIDKey)
	exists, err := kv.Has(k)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if exists {
		return errors.Wrap(errors.ErrAlreadyInitialized, "genesis already loaded")
	}
	if err := kv.Set(k, []byte(chainID)); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}
