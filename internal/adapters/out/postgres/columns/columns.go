// Package columns holds the column groups shared by several tables: the owner pair, actor
// snapshots and kilogram amounts.
package columns

import (
	"yard/internal/core/domain/model/actor"
	"yard/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Owner stores kernel.Owner as two nullable columns, exactly one of them set.
type Owner struct {
	UserID         *uuid.UUID `gorm:"type:uuid;column:owner_user_id"`
	OrganizationID *uuid.UUID `gorm:"type:uuid;column:owner_organization_id"`
}

func FromOwner(o kernel.Owner) Owner {
	return Owner{
		UserID:         UUIDPtr(o.UserID()),
		OrganizationID: UUIDPtr(o.OrganizationID()),
	}
}

func (c Owner) ToOwner() (kernel.Owner, error) {
	userID, err := KernelUUIDPtr(c.UserID)
	if err != nil {
		return kernel.Owner{}, err
	}
	orgID, err := KernelUUIDPtr(c.OrganizationID)
	if err != nil {
		return kernel.Owner{}, err
	}
	return kernel.RestoreOwner(userID, orgID)
}

// Snapshot stores an actor.Snapshot. The column prefix is set by the embedding field.
type Snapshot struct {
	ID       uuid.UUID `gorm:"type:uuid"`
	Name     string
	Identity string
	Role     string
}

func FromSnapshot(s actor.Snapshot) Snapshot {
	return Snapshot{
		ID:       s.ID.Bytes(),
		Name:     s.Name,
		Identity: s.IdentityNumber,
		Role:     s.Role.String(),
	}
}

func (c Snapshot) ToSnapshot() (actor.Snapshot, error) {
	id, err := kernel.UUIDFromBytes(c.ID[:])
	if err != nil {
		return actor.Snapshot{}, err
	}
	return actor.Snapshot{
		ID:             id,
		Name:           c.Name,
		IdentityNumber: c.Identity,
		Role:           actor.Role(c.Role),
	}, nil
}

// NullSnapshot is the optional variant used for canceled_by.
type NullSnapshot struct {
	ID       *uuid.UUID `gorm:"type:uuid"`
	Name     *string
	Identity *string
	Role     *string
}

func FromSnapshotPtr(s *actor.Snapshot) NullSnapshot {
	if s == nil {
		return NullSnapshot{}
	}
	c := FromSnapshot(*s)
	return NullSnapshot{ID: &c.ID, Name: &c.Name, Identity: &c.Identity, Role: &c.Role}
}

func (c NullSnapshot) ToSnapshotPtr() (*actor.Snapshot, error) {
	if c.ID == nil {
		return nil, nil
	}
	s, err := Snapshot{
		ID:       *c.ID,
		Name:     deref(c.Name),
		Identity: deref(c.Identity),
		Role:     deref(c.Role),
	}.ToSnapshot()
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func UUIDPtr(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func KernelUUIDPtr(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	k, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}
	return &k, nil
}

// Weight converts a stored kilogram amount.
func Weight(d decimal.Decimal) (kernel.Weight, error) {
	return kernel.NewWeight(d)
}

func NullWeight(w *kernel.Weight) decimal.NullDecimal {
	if w == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(w.Decimal())
}

func WeightPtr(d decimal.NullDecimal) (*kernel.Weight, error) {
	if !d.Valid {
		return nil, nil
	}
	w, err := kernel.NewWeight(d.Decimal)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
