package cash

import (
	"context"
	"testing"

	"github.com/iov-one/rainbow"
	"github.com/iov-one/rainbow/errors"
	"github.com/iov-one/rainbow/rainbowtest"
	"github.com/iov-one/rainbow/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendHandler(t *testing.T) {
	alice := rainbowtest.NewCondition()
	bob := rainbowtest.NewCondition()

	cases := map[string]struct {
		caller       rainbow.Condition
		msg          rainbow.Msg
		wantCheckErr *errors.Error
		wantErr      *errors.Error
		wantAlice    uint64
		wantBob      uint64
	}{
		"send funds": {
			caller:    alice,
			msg:       &SendMsg{Destination: bob.Address(), Amount: 30},
			wantAlice: 70,
			wantBob:   30,
		},
		"no caller": {
			msg:          &SendMsg{Destination: bob.Address(), Amount: 30},
			wantErr:      errors.ErrUnauthorized,
			wantCheckErr: errors.ErrUnauthorized,
			wantAlice:    100,
		},
		"funds are taken from the caller": {
			caller:    bob,
			msg:       &SendMsg{Destination: alice.Address(), Amount: 30},
			wantErr:   errors.ErrInsufficientAmount,
			wantAlice: 100,
		},
		"invalid message": {
			caller:       alice,
			msg:          &SendMsg{Destination: bob.Address()},
			wantErr:      errors.ErrAmount,
			wantCheckErr: errors.ErrAmount,
			wantAlice:    100,
		},
		"memo too long": {
			caller:       alice,
			msg:          &SendMsg{Destination: bob.Address(), Amount: 1, Memo: string(make([]byte, 129))},
			wantErr:      errors.ErrInput,
			wantCheckErr: errors.ErrInput,
			wantAlice:    100,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			auth := &rainbowtest.CtxAuth{Key: "auth"}
			ctx := context.Background()
			if tc.caller != nil {
				ctx = auth.SetCaller(ctx, tc.caller)
			}
			ctrl := NewController()
			db := store.MemStore()
			require.NoError(t, ctrl.IssueCoins(db, alice.Address(), 100))

			h := NewSendHandler(auth, ctrl)
			_, err := h.Check(ctx, db, tc.msg)
			if tc.wantCheckErr != nil {
				require.True(t, tc.wantCheckErr.Is(err), "%+v", err)
			} else {
				require.NoError(t, err)
			}

			_, err = h.Deliver(ctx, db, tc.msg)
			if tc.wantErr != nil {
				require.True(t, tc.wantErr.Is(err), "%+v", err)
			} else {
				require.NoError(t, err)
			}

			got, err := ctrl.Balance(db, alice.Address())
			require.NoError(t, err)
			assert.Equal(t, tc.wantAlice, got)
			got, err = ctrl.Balance(db, bob.Address())
			require.NoError(t, err)
			assert.Equal(t, tc.wantBob, got)
		})
	}
}
