package rainbow

import (
	"reflect"

	"github.com/iov-one/rainbow/errors"
)

// LoadMsg copies the message routed to a handler into destination, which
// must be a pointer to the concrete message type the handler expects.
// The message is validated before it is returned.
//
//   var msg ProposeMsg
//   if err := rainbow.LoadMsg(m, &msg); err != nil {
//           return nil, err
//   }
func LoadMsg(msg Msg, destination interface{}) error {
	if msg == nil {
		return errors.Wrap(errors.ErrMsg, "no message")
	}
	dest := reflect.ValueOf(destination)
	if dest.Kind() != reflect.Ptr || dest.IsNil() {
		return errors.Wrapf(errors.ErrType, "destination must be a pointer, got %T", destination)
	}
	src := reflect.ValueOf(msg)
	if src.Kind() == reflect.Ptr {
		if src.IsNil() {
			return errors.Wrap(errors.ErrMsg, "nil message")
		}
		src = src.Elem()
	}
	if src.Type() != dest.Elem().Type() {
		return errors.Wrapf(errors.ErrType, "want %s message, got %T", dest.Elem().Type(), msg)
	}
	dest.Elem().Set(src)

	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}
	return nil
}
