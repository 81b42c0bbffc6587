// Package actor models the authenticated person supplied by the auth collaborator:
// identity, role code, user type and organization memberships. The core trusts it as given.
package actor
