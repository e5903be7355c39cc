/*
Package pricing contains implementation of the Pricing contract for AgriTrace
systems.

Pricing contract stores the mutable parameter set of the suggested price
derivation (base price, penalties, bonus divisor, region multiplier scale),
the grade classification thresholds and per-region multiplier overrides. It
also exposes the derivation itself as safe methods: ComputePrice and
ComputeGrade are pure functions of their arguments and the currently stored
parameters. The report contract snapshots their results at record creation
time, so later parameter changes never alter stored reports.

Parameters are mutated only by members of the admin group of the roles
contract whose script hash is fixed at deployment time.

# Contract notifications

RulesUpdated notification. This notification is produced when an admin
replaces the pricing parameter set via SetRules method.

	RulesUpdated
	  - name: basePrice
	    type: Integer
	  - name: caller
	    type: Hash160

ThresholdsUpdated notification. This notification is produced when an admin
replaces the grade thresholds via SetThresholds method.

	ThresholdsUpdated
	  - name: caller
	    type: Hash160

RegionMultiplierSet notification. This notification is produced when an admin
changes the multiplier override of a region via SetRegionMultiplier method.

	RegionMultiplierSet
	  - name: region
	    type: String
	  - name: multiplier
	    type: Integer
	  - name: caller
	    type: Hash160
*/
package pricing

/*
Contract storage model.

# Summary
Key-value storage format:
 - 'pricingRules' -> std.Serialize(Rules)
   current price derivation parameters
 - 'gradeThresholds' -> std.Serialize(Thresholds)
   current grade classification parameters
 - 'm<region>' -> int
   multiplier override of the region, absent when the region has none
 - 'rolesScriptHash' -> 20-byte script hash
   Roles contract reference

# Configuration
Contract stores exactly one current version of the parameters; no history is
kept. Consumers needing the values used for a historical record must read
them from that record, not from this contract.
*/
