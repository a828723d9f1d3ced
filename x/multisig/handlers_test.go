package multisig

import (
	"context"
	"testing"

	"github.com/iov-one/rainbow"
	"github.com/iov-one/rainbow/errors"
	"github.com/iov-one/rainbow/gconf"
	"github.com/iov-one/rainbow/rainbowtest"
	"github.com/iov-one/rainbow/store"
	"github.com/iov-one/rainbow/x/cash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type route struct {
	msg rainbow.Msg
	h   rainbow.Handler
}

type registry map[string]route

func (r registry) Handle(m rainbow.Msg, h rainbow.Handler) {
	r[m.Path()] = route{msg: m, h: h}
}

func TestRegisterRoutes(t *testing.T) {
	r := make(registry)
	RegisterRoutes(r, &rainbowtest.CtxAuth{Key: "auth"}, NewController(cash.NewController()))

	for _, path := range []string{
		pathProposeMsg,
		pathSignMsg,
		pathAddManagerMsg,
		pathRemoveManagerMsg,
		pathUpdateConfigurationMsg,
	} {
		rt, ok := r[path]
		require.True(t, ok, path)
		assert.Equal(t, path, rt.msg.Path())
	}
}

func TestProposeAndSignHandlers(t *testing.T) {
	owner := rainbowtest.NewCondition()
	manager := rainbowtest.NewCondition()
	stranger := rainbowtest.NewCondition()
	instance := rainbowtest.NewAddress()
	dest := rainbowtest.NewAddress()

	auth := &rainbowtest.CtxAuth{Key: "auth"}
	cashCtrl := cash.NewController()
	ctrl := NewController(cashCtrl)
	db := store.MemStore()

	_, err := ctrl.Create(db, instance, owner.Address(), []rainbow.Address{manager.Address()}, 2)
	require.NoError(t, err)
	require.NoError(t, cashCtrl.IssueCoins(db, instance, 50))

	propose := ProposeHandler{auth: auth, ctrl: ctrl}
	sign := SignHandler{auth: auth, ctrl: ctrl}
	msg := &ProposeMsg{Multisig: instance, Destination: dest, Amount: 20}

	_, err = propose.Deliver(context.Background(), db, msg)
	require.True(t, errors.ErrUnauthorized.Is(err), "%+v", err)

	_, err = propose.Deliver(auth.SetCaller(context.Background(), stranger), db, msg)
	require.True(t, errors.ErrUnauthorized.Is(err), "%+v", err)

	// check must not leave anything behind when run on a cache
	cache := db.CacheWrap()
	_, err = propose.Check(auth.SetCaller(context.Background(), manager), cache, msg)
	require.NoError(t, err)
	cache.Discard()

	res, err := propose.Deliver(auth.SetCaller(context.Background(), manager), db, msg)
	require.NoError(t, err)
	id, err := DecodeID(res.Data)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), id)

	sres, err := sign.Deliver(auth.SetCaller(context.Background(), manager), db, &SignMsg{Multisig: instance, TransactionID: id})
	require.NoError(t, err)
	assert.Equal(t, "open", sres.Log)

	sres, err = sign.Deliver(auth.SetCaller(context.Background(), owner), db, &SignMsg{Multisig: instance, TransactionID: id})
	require.NoError(t, err)
	assert.Equal(t, "executed", sres.Log)

	balance, err := cashCtrl.Balance(db, dest)
	require.NoError(t, err)
	assert.Equal(t, uint64(20), balance)

	_, err = sign.Deliver(auth.SetCaller(context.Background(), manager), db, &SignMsg{Multisig: instance, TransactionID: id})
	require.True(t, errors.ErrAlreadyExecuted.Is(err), "%+v", err)

	_, err = sign.Deliver(auth.SetCaller(context.Background(), manager), db, &ProposeMsg{Multisig: instance, Destination: dest, Amount: 1})
	require.True(t, errors.ErrType.Is(err), "%+v", err)
}

func TestManagerHandler(t *testing.T) {
	owner := rainbowtest.NewCondition()
	manager := rainbowtest.NewCondition()
	instance := rainbowtest.NewAddress()

	cases := map[string]struct {
		caller  rainbow.Condition
		msg     rainbow.Msg
		wantErr *errors.Error
		want    []ManagerEntry
	}{
		"owner revokes a manager": {
			caller: owner,
			msg:    &RemoveManagerMsg{Multisig: instance, Manager: manager.Address()},
			want:   []ManagerEntry{{Address: manager.Address(), Status: Revoked}},
		},
		"owner adds itself": {
			caller: owner,
			msg:    &AddManagerMsg{Multisig: instance, Manager: owner.Address()},
			want: []ManagerEntry{
				{Address: manager.Address(), Status: Active},
				{Address: owner.Address(), Status: Active},
			},
		},
		"manager cannot change the registry": {
			caller:  manager,
			msg:     &RemoveManagerMsg{Multisig: instance, Manager: manager.Address()},
			wantErr: errors.ErrUnauthorized,
			want:    []ManagerEntry{{Address: manager.Address(), Status: Active}},
		},
		"invalid manager address": {
			caller:  owner,
			msg:     &AddManagerMsg{Multisig: instance, Manager: []byte("short")},
			wantErr: errors.ErrInput,
			want:    []ManagerEntry{{Address: manager.Address(), Status: Active}},
		},
		"unknown instance": {
			caller:  owner,
			msg:     &AddManagerMsg{Multisig: rainbowtest.NewAddress(), Manager: owner.Address()},
			wantErr: errors.ErrNotFound,
			want:    []ManagerEntry{{Address: manager.Address(), Status: Active}},
		},
		"unsupported message": {
			caller:  owner,
			msg:     &SignMsg{Multisig: instance},
			wantErr: errors.ErrType,
			want:    []ManagerEntry{{Address: manager.Address(), Status: Active}},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			auth := &rainbowtest.CtxAuth{Key: "auth"}
			ctrl := NewController(cash.NewController())
			db := store.MemStore()
			_, err := ctrl.Create(db, instance, owner.Address(), []rainbow.Address{manager.Address()}, 1)
			require.NoError(t, err)

			h := ManagerHandler{auth: auth, ctrl: ctrl}
			_, err = h.Deliver(auth.SetCaller(context.Background(), tc.caller), db, tc.msg)
			if tc.wantErr != nil {
				require.True(t, tc.wantErr.Is(err), "%+v", err)
			} else {
				require.NoError(t, err)
			}

			managers, err := ctrl.Managers(db, instance)
			require.NoError(t, err)
			assert.Equal(t, tc.want, managers)
		})
	}
}

func TestConfigHandler(t *testing.T) {
	owner := rainbowtest.NewCondition()
	other := rainbowtest.NewCondition()
	auth := &rainbowtest.CtxAuth{Key: "auth"}
	h := NewConfigHandler(auth)
	db := store.MemStore()

	patch := &UpdateConfigurationMsg{Patch: &Configuration{Owner: owner.Address(), MaxManagers: 3}}

	// not created in genesis, cannot be created later
	_, err := h.Deliver(auth.SetCaller(context.Background(), owner), db, patch)
	require.True(t, errors.ErrUnauthorized.Is(err), "%+v", err)

	require.NoError(t, gconf.Save(db, packageName, &Configuration{Owner: owner.Address()}))

	_, err = h.Deliver(auth.SetCaller(context.Background(), other), db, patch)
	require.True(t, errors.ErrUnauthorized.Is(err), "%+v", err)

	_, err = h.Deliver(auth.SetCaller(context.Background(), owner), db, patch)
	require.NoError(t, err)

	conf, err := loadConf(db)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), conf.MaxManagers)
}

func TestGenesisConfiguration(t *testing.T) {
	owner := rainbowtest.NewAddress()
	db := store.MemStore()

	require.NoError(t, Initializer{}.FromGenesis(rainbow.Options{}, db))
	conf, err := loadConf(db)
	require.NoError(t, err)
	assert.Equal(t, Configuration{}, conf)

	genesis := rainbow.Options{
		"conf": []byte(`{"multisig": {"owner": "` + owner.String() + `", "max_managers": 5}}`),
	}
	require.NoError(t, Initializer{}.FromGenesis(genesis, db))
	conf, err = loadConf(db)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), conf.MaxManagers)
	assert.Equal(t, owner, conf.Owner)
}
