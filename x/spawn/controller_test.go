package spawn

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/rainbow"
	"github.com/iov-one/rainbow/errors"
	"github.com/iov-one/rainbow/rainbowtest"
	"github.com/iov-one/rainbow/rainbowtest/assert"
	"github.com/iov-one/rainbow/store"
)

func TestChildAddressIsDeterministic(t *testing.T) {
	ref := TemplateRef("multisig")
	parent := rainbowtest.NewAddress()

	a := ChildAddress(ref, parent, 1)
	assert.Nil(t, a.Validate())
	assert.Equal(t, a, ChildAddress(ref, parent, 1))

	if a.Equals(ChildAddress(ref, parent, 2)) {
		t.Fatal("salt does not change the address")
	}
	if a.Equals(ChildAddress(ref, rainbowtest.NewAddress(), 1)) {
		t.Fatal("parent does not change the address")
	}
	if a.Equals(ChildAddress(TemplateRef("other"), parent, 1)) {
		t.Fatal("template does not change the address")
	}
}

func TestInstantiate(t *testing.T) {
	db := store.MemStore()
	c := NewController()
	parent := rainbowtest.NewAddress()

	ref, err := c.RegisterTemplate(db, "msig-v1", KindMultisig)
	assert.Nil(t, err)
	assert.Equal(t, TemplateRef("msig-v1"), ref)

	_, err = c.RegisterTemplate(db, "msig-v1", KindMultisig)
	assert.IsErr(t, errors.ErrDuplicate, err)
	_, err = c.RegisterTemplate(db, "bad", "unicorn")
	assert.IsErr(t, errors.ErrInput, err)

	addr, err := c.Instantiate(db, ref, KindMultisig, parent, 7)
	assert.Nil(t, err)
	assert.Equal(t, ChildAddress(ref, parent, 7), addr)

	inst, err := c.Lookup(db, addr)
	assert.Nil(t, err)
	assert.Equal(t, &Instance{Template: ref, Kind: KindMultisig, Parent: parent, Sequence: 7}, inst)

	cases := map[string]struct {
		ref  []byte
		kind string
		seq  uint64
	}{
		"unknown template":  {TemplateRef("nope"), KindMultisig, 8},
		"kind mismatch":     {ref, KindRoutes, 8},
		"address collision": {ref, KindMultisig, 7},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			_, err := c.Instantiate(db, tc.ref, tc.kind, parent, tc.seq)
			assert.IsErr(t, errors.ErrInstantiation, err)
		})
	}

	_, err = c.Lookup(db, rainbowtest.NewAddress())
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestGenesis(t *testing.T) {
	db := store.MemStore()
	gen := Genesis{Templates: []GenesisTemplate{
		{Name: "roles-v1", Kind: KindRoles},
		{Name: "routes-v1", Kind: KindRoutes},
	}}
	raw, err := json.Marshal(gen)
	assert.Nil(t, err)
	assert.Nil(t, Initializer{}.FromGenesis(rainbow.Options{optKey: raw}, db))

	tmpl, err := NewController().Template(db, TemplateRef("routes-v1"))
	assert.Nil(t, err)
	assert.Equal(t, &Template{Name: "routes-v1", Kind: KindRoutes}, tmpl)
}
