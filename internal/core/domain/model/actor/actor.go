package actor

import (
	"context"
	"errors"
	"strings"

	"yard/internal/core/domain/model/kernel"
	"yard/internal/pkg/errs"
	"yard/internal/pkg/guard"
)

var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// Actor is the authenticated user acting on a request.
type Actor struct {
	id             kernel.UUID
	name           string
	identityNumber string
	role           Role
	userType       UserType
	organizations  []kernel.UUID
	guard          guard.ConstructorGuard
}

func NewActor(
	id kernel.UUID,
	name, identityNumber string,
	role Role,
	userType UserType,
	organizations []kernel.UUID,
) (Actor, error) {
	if err := errors.Join(
		id.Validate(),
		requireText("name", name),
		role.Validate(),
		userType.Validate(),
	); err != nil {
		return Actor{}, err
	}

	orgs := make([]kernel.UUID, len(organizations))
	copy(orgs, organizations)

	return Actor{
		id:             id,
		name:           strings.TrimSpace(name),
		identityNumber: strings.TrimSpace(identityNumber),
		role:           role,
		userType:       userType,
		organizations:  orgs,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

func (a Actor) ID() kernel.UUID {
	return a.id
}

func (a Actor) Name() string {
	return a.name
}

func (a Actor) IdentityNumber() string {
	return a.identityNumber
}

func (a Actor) Role() Role {
	return a.role
}

func (a Actor) UserType() UserType {
	return a.userType
}

func (a Actor) Organizations() []kernel.UUID {
	orgs := make([]kernel.UUID, len(a.organizations))
	copy(orgs, a.organizations)
	return orgs
}

// IsMemberOf reports whether the actor is linked to the organization.
func (a Actor) IsMemberOf(organizationID kernel.UUID) bool {
	for _, org := range a.organizations {
		if org.IsEqual(organizationID) {
			return true
		}
	}
	return false
}

// Owns reports whether owner is the actor directly or one of the actor's organizations.
func (a Actor) Owns(owner kernel.Owner) bool {
	if id := owner.UserID(); id != nil {
		return id.IsEqual(a.id)
	}
	if id := owner.OrganizationID(); id != nil {
		return a.IsMemberOf(*id)
	}
	return false
}

// Snapshot captures the audit identity stored on history rows and schedules.
func (a Actor) Snapshot() Snapshot {
	return Snapshot{
		ID:             a.id,
		Name:           a.name,
		IdentityNumber: a.identityNumber,
		Role:           a.role,
	}
}

// Snapshot is a copy of the actor's identity kept for audit durability.
type Snapshot struct {
	ID             kernel.UUID
	Name           string
	IdentityNumber string
	Role           Role
}

type contextKey struct{}

// WithActor returns a context carrying the actor.
func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, contextKey{}, a)
}

// FromContext returns the actor stored by WithActor.
func FromContext(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(contextKey{}).(Actor)
	return a, ok
}

func requireText(param, value string) error {
	if strings.TrimSpace(value) == "" {
		return errs.NewValueIsRequiredError(param)
	}
	return nil
}
