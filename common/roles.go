package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
)

// Names of the permission groups managed by the roles contract.
const (
	RoleAdmin    = "admin"
	RoleLab      = "lab"
	RoleVerifier = "verifier"
	RoleOracle   = "oracle"
	RoleSensor   = "sensor"
)

// ErrNotAuthorized appears when the caller is not a member of the permission
// group required by the method.
const ErrNotAuthorized = "not authorized"

// HasRole checks membership of identity in the given permission group with a
// read-only call to the roles contract.
func HasRole(rolesContract interop.Hash160, role string, identity interop.Hash160) bool {
	return contract.Call(rolesContract, "hasRole", contract.ReadOnly, role, identity).(bool)
}

// RequireRole panics with ErrNotAuthorized unless identity is a member of the
// given permission group.
func RequireRole(rolesContract interop.Hash160, role string, identity interop.Hash160) {
	if !HasRole(rolesContract, role, identity) {
		panic(ErrNotAuthorized + ": " + role + " role required")
	}
}
