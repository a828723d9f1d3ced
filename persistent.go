package rainbow

import (
	amino "github.com/tendermint/go-amino"
)

// Marshaller is anything that can be represented in binary
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent supports Marshal and Unmarshal
//
// This is separated from Marshal, as this almost always requires
// a pointer, and functions that only need to marshal bytes can
// use the Marshaller interface to access non-pointers.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// cdc encodes all persisted models. Models are plain structures, no
// interface registration is needed.
var cdc = amino.NewCodec()

// Encode serializes a model into its binary representation. Models use it
// to implement the Persistent interface.
func Encode(model interface{}) ([]byte, error) {
	return cdc.MarshalBinaryBare(model)
}

// Decode loads the binary representation into given model pointer.
func Decode(raw []byte, model interface{}) error {
	return cdc.UnmarshalBinaryBare(raw, model)
}
