package routes

import (
	"testing"

	"github.com/iov-one/rainbow"
	"github.com/iov-one/rainbow/errors"
	"github.com/iov-one/rainbow/rainbowtest"
	"github.com/iov-one/rainbow/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteRegistry(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()
	core := rainbowtest.NewAddress()
	instance := rainbowtest.NewAddress()
	require.NoError(t, ctrl.Create(db, instance, core))

	a := rainbowtest.NewAddress()
	b := rainbowtest.NewAddress()

	require.NoError(t, ctrl.AddRoute(db, instance, core, "treasury", a))
	got, err := ctrl.QueryRoute(db, instance, "treasury")
	require.NoError(t, err)
	assert.Equal(t, a, got)

	require.NoError(t, ctrl.ChangeRoute(db, instance, core, "treasury", b))
	got, err = ctrl.QueryRoute(db, instance, "treasury")
	require.NoError(t, err)
	assert.Equal(t, b, got)

	got, err = ctrl.QueryRoute(db, instance, "unknown")
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())

	// add overwrites as well
	require.NoError(t, ctrl.AddRoute(db, instance, core, "treasury", a))
	require.NoError(t, ctrl.AddRoute(db, instance, core, "fees", b))

	routes, err := ctrl.Routes(db, instance)
	require.NoError(t, err)
	assert.Equal(t, []Route{
		{Name: "fees", Address: b},
		{Name: "treasury", Address: a},
	}, routes)

	reg, err := ctrl.Registry(db, instance)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), reg.Count)
}

func TestRouteRegistryErrors(t *testing.T) {
	core := rainbowtest.NewAddress()
	instance := rainbowtest.NewAddress()
	valid := rainbowtest.NewAddress()

	cases := map[string]struct {
		run     func(Controller, rainbow.KVStore) error
		wantErr *errors.Error
	}{
		"change unknown route": {
			run: func(c Controller, db rainbow.KVStore) error {
				return c.ChangeRoute(db, instance, core, "missing", valid)
			},
			wantErr: errors.ErrNotFound,
		},
		"add by non core": {
			run: func(c Controller, db rainbow.KVStore) error {
				return c.AddRoute(db, instance, valid, "treasury", valid)
			},
			wantErr: errors.ErrUnauthorized,
		},
		"change by non core": {
			run: func(c Controller, db rainbow.KVStore) error {
				return c.ChangeRoute(db, instance, valid, "treasury", valid)
			},
			wantErr: errors.ErrUnauthorized,
		},
		"empty name": {
			run: func(c Controller, db rainbow.KVStore) error {
				return c.AddRoute(db, instance, core, "", valid)
			},
			wantErr: errors.ErrEmpty,
		},
		"invalid address": {
			run: func(c Controller, db rainbow.KVStore) error {
				return c.AddRoute(db, instance, core, "treasury", rainbow.Address("short"))
			},
			wantErr: errors.ErrInput,
		},
		"unknown registry": {
			run: func(c Controller, db rainbow.KVStore) error {
				return c.AddRoute(db, rainbowtest.NewAddress(), core, "treasury", valid)
			},
			wantErr: errors.ErrNotFound,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctrl := NewController()
			require.NoError(t, ctrl.Create(db, instance, core))

			err := tc.run(ctrl, db)
			require.True(t, tc.wantErr.Is(err), "%+v", err)

			routes, err := ctrl.Routes(db, instance)
			require.NoError(t, err)
			assert.Empty(t, routes)
		})
	}
}
