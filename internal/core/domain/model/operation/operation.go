package operation

import "yard/internal/core/domain/model/actor"

// Operation is one checkpoint kind. Values are immutable and come from the seed table.
type Operation struct {
	Code  Code
	Title string
	// Role is the only role allowed to take and decide this checkpoint.
	Role    actor.Role
	IsFirst bool
	IsLast  bool
	Prev    Code
	Next    Code
	// CanCancel allows a denial without a reload target to end the visit.
	CanCancel bool
	// IsWeighing checkpoints carry a measured weight when passed.
	IsWeighing bool
	// IsReload marks the branch nodes a final-weighing denial may route to.
	IsReload bool
	// RejectTo lists the reload nodes a denial may route to instead of cancelling.
	RejectTo []Code
}

func seed() []Operation {
	return []Operation{
		{
			Code: Entry, Title: "Entry checkpoint", Role: actor.RoleSecurity,
			IsFirst: true, Next: InitialWeighing, CanCancel: true,
		},
		{
			Code: InitialWeighing, Title: "Initial weighing (tare)", Role: actor.RoleWeigher,
			Prev: Entry, Next: LoadingEntry, CanCancel: true, IsWeighing: true,
		},
		{
			Code: LoadingEntry, Title: "Loading area entry", Role: actor.RoleLoader,
			Prev: InitialWeighing, Next: Loading, CanCancel: true,
		},
		{
			Code: Loading, Title: "Loading", Role: actor.RoleLoader,
			Prev: LoadingEntry, Next: FinalWeighing, CanCancel: true,
		},
		{
			Code: FinalWeighing, Title: "Final weighing (brutto)", Role: actor.RoleWeigher,
			Prev: Loading, Next: Exit, CanCancel: true, IsWeighing: true,
			RejectTo: []Code{Reloading, TareReweighing},
		},
		{
			Code: Exit, Title: "Exit checkpoint", Role: actor.RoleSecurity,
			IsLast: true, Prev: FinalWeighing, CanCancel: true,
		},
		{
			Code: Reloading, Title: "Reloading", Role: actor.RoleLoader,
			Prev: FinalWeighing, Next: FinalWeighing, CanCancel: true, IsReload: true,
		},
		{
			Code: TareReweighing, Title: "Tare re-weighing", Role: actor.RoleWeigher,
			Prev: FinalWeighing, Next: LoadingEntry, CanCancel: true, IsReload: true, IsWeighing: true,
		},
	}
}
