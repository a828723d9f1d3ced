package kernel

import (
	"context"
	"testing"

	"github.com/iov-one/rainbow"
	"github.com/iov-one/rainbow/errors"
	"github.com/iov-one/rainbow/orm"
	"github.com/iov-one/rainbow/rainbowtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitHandler(t *testing.T) {
	f := newFixture(t)
	auth := &rainbowtest.CtxAuth{Key: "auth"}
	h := InitHandler{auth: auth, ctrl: f.ctrl}
	admin := rainbowtest.NewCondition()
	msg := &InitMsg{RoleTemplate: "roles-v1", PrivilegeTemplate: "privileges-v1", RouteTemplate: "routes-v1"}

	_, err := h.Deliver(context.Background(), f.db, msg)
	require.True(t, errors.ErrUnauthorized.Is(err), "%+v", err)

	_, err = h.Deliver(auth.SetCaller(context.Background(), admin), f.db, &InitMsg{RoleTemplate: "roles-v1"})
	require.True(t, errors.ErrEmpty.Is(err), "%+v", err)

	res, err := h.Deliver(auth.SetCaller(context.Background(), admin), f.db, msg)
	require.NoError(t, err)
	var st State
	require.NoError(t, st.Unmarshal(res.Data))
	assert.Equal(t, admin.Address(), st.Admin)

	_, err = h.Check(auth.SetCaller(context.Background(), admin), f.db, msg)
	require.True(t, errors.ErrAlreadyInitialized.Is(err), "%+v", err)
}

func TestBrokerHandler(t *testing.T) {
	f := newFixture(t)
	f.init(t)
	h := BrokerHandler{ctrl: f.ctrl}
	ctx := context.Background()

	cases := []struct {
		msg      rainbow.Msg
		wantErr  *errors.Error
		wantData []byte
	}{
		{msg: &AddRoleMsg{Name: "admin"}, wantData: orm.EncodeSequence(0)},
		{msg: &AddRoleMsg{Name: "auditor"}, wantData: orm.EncodeSequence(1)},
		{msg: &AddRoleMsg{Name: "admin"}, wantErr: errors.ErrDuplicate},
		{msg: &AddRoleMsg{}, wantErr: errors.ErrEmpty},
		{msg: &AddPrivilegeMsg{Name: "mint"}, wantData: orm.EncodeSequence(0)},
		{msg: &AttachPrivilegeMsg{Role: "admin", Privilege: "mint"}},
		{msg: &AttachRoleMsg{User: rainbowtest.NewAddress(), Role: "admin"}},
		{msg: &AttachRoleMsg{Role: "admin"}, wantErr: errors.ErrInput},
		{msg: &ChangeRouteMsg{Name: "treasury", Address: rainbowtest.NewAddress()}, wantErr: errors.ErrNotFound},
		{msg: &AddRouteMsg{Name: "treasury", Address: rainbowtest.NewAddress()}},
		{msg: &ChangeRouteMsg{Name: "treasury", Address: rainbowtest.NewAddress()}},
		{msg: &InitMsg{RoleTemplate: "a", PrivilegeTemplate: "b", RouteTemplate: "c"}, wantErr: errors.ErrType},
	}

	for i, tc := range cases {
		res, err := h.Deliver(ctx, f.db, tc.msg)
		if tc.wantErr != nil {
			require.True(t, tc.wantErr.Is(err), "case %d: %+v", i, err)
			continue
		}
		require.NoError(t, err, "case %d", i)
		assert.Equal(t, tc.wantData, res.Data, "case %d", i)
	}
}
