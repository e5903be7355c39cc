/*
Package roles contains implementation of the Roles contract for AgriTrace
systems.

Roles contract maintains the closed set of permission groups used by the
other AgriTrace contracts: admin, lab, verifier, oracle and sensor. Every
privileged operation of the suite starts with a membership check against this
contract. Memberships are mutated only by members of the admin group; the
admin group is seeded with a single account at deployment time and can never
be emptied.

# Contract notifications

SetRole notification. This notification is produced when an admin changes
membership of an identity in a permission group via SetRole method. It is
emitted even when the resulting membership equals the previous one.

	SetRole
	  - name: role
	    type: String
	  - name: identity
	    type: Hash160
	  - name: caller
	    type: Hash160
	  - name: granted
	    type: Boolean
*/
package roles

/*
Contract storage model.

# Summary
Key-value storage format:
 - 'r<role><identity>' -> 1
   membership of the 20-byte identity script hash in the named group

# Roles
Contract stores membership sets for the five permission groups. Presence of
the key is the membership marker; no other data is attached to a member.
*/
