package multisig

import (
	"encoding/binary"

	"github.com/iov-one/rainbow"
	"github.com/iov-one/rainbow/errors"
	"github.com/iov-one/rainbow/orm"
)

// ManagerStatus is the membership marker of a manager.
type ManagerStatus int32

const (
	// Revoked managers can no longer propose or sign.
	Revoked ManagerStatus = iota
	// Active managers can propose and sign.
	Active
)

func (s ManagerStatus) String() string {
	switch s {
	case Active:
		return "active"
	case Revoked:
		return "revoked"
	}
	return "unknown"
}

// TxStatus is the state of a proposed transaction.
type TxStatus int32

const (
	// Open transactions collect signatures.
	Open TxStatus = iota
	// Executed transactions are frozen.
	Executed
)

func (s TxStatus) String() string {
	switch s {
	case Open:
		return "open"
	case Executed:
		return "executed"
	}
	return "unknown"
}

// ManagerEntry is a single registry record. Entries are never deleted.
type ManagerEntry struct {
	Address rainbow.Address `json:"address"`
	Status  ManagerStatus   `json:"status"`
}

// Multisig is the state of a single instance.
type Multisig struct {
	Address   rainbow.Address `json:"address"`
	Owner     rainbow.Address `json:"owner"`
	Threshold uint64          `json:"threshold"`
	// NextID is the id given to the next proposed transaction.
	NextID   uint64         `json:"next_id"`
	Managers []ManagerEntry `json:"managers"`
}

var _ orm.Model = (*Multisig)(nil)

func (m *Multisig) Marshal() ([]byte, error) {
	return rainbow.Encode(m)
}

func (m *Multisig) Unmarshal(raw []byte) error {
	return rainbow.Decode(raw, m)
}

// Validate checks the instance invariants.
func (m *Multisig) Validate() error {
	if err := m.Address.Validate(); err != nil {
		return errors.Wrap(err, "address")
	}
	if err := m.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if m.Threshold == 0 {
		return errors.Wrap(errors.ErrInput, "threshold must be positive")
	}
	seen := make(map[string]bool, len(m.Managers))
	for i, e := range m.Managers {
		if err := e.Address.Validate(); err != nil {
			return errors.Wrapf(err, "manager %d", i)
		}
		if e.Status != Active && e.Status != Revoked {
			return errors.Wrapf(errors.ErrInput, "manager %d status %d", i, e.Status)
		}
		if seen[string(e.Address)] {
			return errors.Wrapf(errors.ErrDuplicate, "manager %s", e.Address)
		}
		seen[string(e.Address)] = true
	}
	return nil
}

// IsActive returns true if addr is a manager with the Active marker.
func (m *Multisig) IsActive(addr rainbow.Address) bool {
	for _, e := range m.Managers {
		if e.Address.Equals(addr) {
			return e.Status == Active
		}
	}
	return false
}

// CanOperate returns true if addr may propose and sign.
func (m *Multisig) CanOperate(addr rainbow.Address) bool {
	return m.Owner.Equals(addr) || m.IsActive(addr)
}

// SetManager inserts addr with given status or updates its marker.
func (m *Multisig) SetManager(addr rainbow.Address, status ManagerStatus) {
	for i, e := range m.Managers {
		if e.Address.Equals(addr) {
			m.Managers[i].Status = status
			return
		}
	}
	m.Managers = append(m.Managers, ManagerEntry{Address: addr, Status: status})
}

// Transaction is a proposed transfer from the instance balance.
type Transaction struct {
	ID             uint64            `json:"id"`
	Status         TxStatus          `json:"status"`
	Destination    rainbow.Address   `json:"destination"`
	Amount         uint64            `json:"amount"`
	SignatureCount uint64            `json:"signature_count"`
	Signatures     []rainbow.Address `json:"signatures"`
}

var _ orm.Model = (*Transaction)(nil)

func (t *Transaction) Marshal() ([]byte, error) {
	return rainbow.Encode(t)
}

func (t *Transaction) Unmarshal(raw []byte) error {
	return rainbow.Decode(raw, t)
}

// Validate checks the transaction invariants.
func (t *Transaction) Validate() error {
	if err := t.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if t.Status != Open && t.Status != Executed {
		return errors.Wrapf(errors.ErrInput, "status %d", t.Status)
	}
	if t.SignatureCount != uint64(len(t.Signatures)) {
		return errors.Wrapf(errors.ErrState, "signature count %d, have %d signatures", t.SignatureCount, len(t.Signatures))
	}
	seen := make(map[string]bool, len(t.Signatures))
	for _, s := range t.Signatures {
		if seen[string(s)] {
			return errors.Wrapf(errors.ErrDuplicateSignature, "signer %s", s)
		}
		seen[string(s)] = true
	}
	return nil
}

// HasSigned returns true if addr signed this transaction.
func (t *Transaction) HasSigned(addr rainbow.Address) bool {
	for _, s := range t.Signatures {
		if s.Equals(addr) {
			return true
		}
	}
	return false
}

// Bucket stores multisig instances by address.
type Bucket struct {
	orm.Bucket
}

// NewBucket returns the bucket of multisig instances.
func NewBucket() Bucket {
	return Bucket{
		Bucket: orm.NewBucket("msig", orm.NewSimpleObj(nil, &Multisig{})),
	}
}

// TransactionBucket stores transactions keyed by instance address and id,
// so a prefix scan of an instance returns them in creation order.
type TransactionBucket struct {
	orm.Bucket
}

// NewTransactionBucket returns the bucket of transactions.
func NewTransactionBucket() TransactionBucket {
	return TransactionBucket{
		Bucket: orm.NewBucket("mstx", orm.NewSimpleObj(nil, &Transaction{})),
	}
}

// txKey returns the key of transaction id of the instance.
func txKey(instance rainbow.Address, id uint64) []byte {
	key := make([]byte, len(instance)+8)
	copy(key, instance)
	binary.BigEndian.PutUint64(key[len(instance):], id)
	return key
}
