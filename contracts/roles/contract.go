package roles

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/agritrace-dev/agritrace-contract/common"
)

const (
	roleKeyPrefix = 'r'
)

// ErrUnknownRole is thrown on an attempt to manage a permission group that is
// not part of the closed role set.
const ErrUnknownRole = "unknown role"

// ErrLastAdmin is thrown on an attempt to revoke the only remaining member of
// the admin group.
const ErrLastAdmin = "cannot revoke the last admin"

// nolint:deadcode,unused
func _deploy(data interface{}, isUpdate bool) {
	ctx := storage.GetContext()
	args := data.([]interface{})

	if isUpdate {
		version := args[len(args)-1].(int)
		common.CheckVersion(version)
		return
	}

	owner := args[0].(interop.Hash160)
	if len(owner) != interop.Hash160Len {
		panic("init: incorrect length of initial admin script hash")
	}

	storage.Put(ctx, roleKey(common.RoleAdmin, owner), []byte{1})

	runtime.Log("roles contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(script []byte, manifest []byte, data interface{}) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("roles contract updated")
}

// SetRole includes the identity into the given permission group (granted is
// true) or excludes it (granted is false). It can be invoked only by a member
// of the admin group and the call transaction must be signed by the caller.
//
// Granting an already held role or revoking an absent one succeeds without
// any storage change. Both outcomes produce a SetRole notification, so an
// observer always sees the resulting membership. The only rejected transition
// is revoking the last member of the admin group: the system must always
// retain an account able to grant roles.
func SetRole(caller interop.Hash160, role string, identity interop.Hash160, granted bool) {
	ctx := storage.GetContext()

	common.CheckWitness(caller)
	requireKnownRole(role)
	if len(identity) != interop.Hash160Len {
		panic(common.ErrInvalidInput + ": invalid identity")
	}
	if !isMember(ctx, common.RoleAdmin, caller) {
		panic(common.ErrNotAuthorized + ": admin role required")
	}

	key := roleKey(role, identity)
	if granted {
		storage.Put(ctx, key, []byte{1})
	} else {
		if role == common.RoleAdmin && isMember(ctx, common.RoleAdmin, identity) && memberCount(ctx, common.RoleAdmin) == 1 {
			panic(ErrLastAdmin)
		}
		storage.Delete(ctx, key)
	}

	runtime.Notify("SetRole", role, identity, caller, granted)
	runtime.Log("setRole: membership has been updated")
}

// HasRole returns true if the identity is a member of the given permission
// group.
func HasRole(role string, identity interop.Hash160) bool {
	ctx := storage.GetReadOnlyContext()
	return isMember(ctx, role, identity)
}

// List returns script hashes of all members of the given permission group.
func List(role string) []interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	requireKnownRole(role)

	result := []interop.Hash160{}

	it := storage.Find(ctx, rolePrefix(role), storage.KeysOnly|storage.RemovePrefix)
	for iterator.Next(it) {
		result = append(result, iterator.Value(it).([]byte))
	}

	return result
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func requireKnownRole(role string) {
	switch role {
	case common.RoleAdmin, common.RoleLab, common.RoleVerifier, common.RoleOracle, common.RoleSensor:
	default:
		panic(ErrUnknownRole + ": " + role)
	}
}

func rolePrefix(role string) []byte {
	return append([]byte{roleKeyPrefix}, []byte(role)...)
}

func roleKey(role string, identity interop.Hash160) []byte {
	return append(rolePrefix(role), identity...)
}

func isMember(ctx storage.Context, role string, identity interop.Hash160) bool {
	return storage.Get(ctx, roleKey(role, identity)) != nil
}

func memberCount(ctx storage.Context, role string) int {
	var n int

	it := storage.Find(ctx, rolePrefix(role), storage.KeysOnly)
	for iterator.Next(it) {
		n++
	}

	return n
}
