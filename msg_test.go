package rainbow_test

import (
	"testing"

	"github.com/iov-one/rainbow"
	"github.com/iov-one/rainbow/errors"
	"github.com/iov-one/rainbow/rainbowtest/assert"
)

type nameMsg struct {
	Name string
}

func (nameMsg) Path() string { return "test/name" }

func (m *nameMsg) Validate() error {
	if m.Name == "" {
		return errors.Wrap(errors.ErrEmpty, "name")
	}
	return nil
}

type otherMsg struct{}

func (otherMsg) Path() string      { return "test/other" }
func (*otherMsg) Validate() error { return nil }

func TestLoadMsg(t *testing.T) {
	var dest nameMsg
	assert.Nil(t, rainbow.LoadMsg(&nameMsg{Name: "alice"}, &dest))
	assert.Equal(t, "alice", dest.Name)

	cases := map[string]struct {
		msg     rainbow.Msg
		dest    interface{}
		wantErr *errors.Error
	}{
		"no message": {
			msg:     nil,
			dest:    &nameMsg{},
			wantErr: errors.ErrMsg,
		},
		"nil pointer message": {
			msg:     (*nameMsg)(nil),
			dest:    &nameMsg{},
			wantErr: errors.ErrMsg,
		},
		"destination not a pointer": {
			msg:     &nameMsg{Name: "a"},
			dest:    nameMsg{},
			wantErr: errors.ErrType,
		},
		"type mismatch": {
			msg:     &otherMsg{},
			dest:    &nameMsg{},
			wantErr: errors.ErrType,
		},
		"invalid message": {
			msg:     &nameMsg{},
			dest:    &nameMsg{},
			wantErr: errors.ErrEmpty,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := rainbow.LoadMsg(tc.msg, tc.dest)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}
