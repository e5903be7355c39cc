/*
Package report contains implementation of the Report contract for AgriTrace
systems.

Report contract is the authorization-gated ledger of crop quality test
reports. Laboratories holding the lab role submit raw measurements of a
farmer's crop lot; the contract derives the suggested price and the quality
grade through the pricing contract, freezes the derived values into an
immutable report with a strictly increasing identifier and indexes the
report by the farmer's script hash. Reports are never edited or removed; the
only later change a report can receive is the dispute flag raised by a
verifier.

# Contract notifications

ReportRecorded notification. This notification is produced when a lab
records a new quality report via RecordReport method.

	ReportRecorded
	  - name: id
	    type: Integer
	  - name: farmer
	    type: Hash160
	  - name: lab
	    type: Hash160
	  - name: contentRef
	    type: ByteArray
	  - name: suggestedPrice
	    type: Integer
	  - name: moisture
	    type: Integer
	  - name: impurity
	    type: Integer
	  - name: grainSize
	    type: Integer
	  - name: grade
	    type: Integer

ReportDisputed notification. This notification is produced when a verifier
raises the dispute flag of a report via MarkDisputed method.

	ReportDisputed
	  - name: id
	    type: Integer
	  - name: caller
	    type: Hash160
*/
package report

/*
Contract storage model.

# Summary
Key-value storage format:
 - 'reportCounter' -> int
   last assigned report identifier
 - 'recordInProgress' -> 1
   re-entrancy marker held for the duration of RecordReport
 - 'x<id>' -> std.Serialize(TestReport)
   report by identifier (little-endian int bytes)
 - 'f<farmer>' -> std.Serialize([]int)
   identifiers of the farmer's reports in creation order
 - 'rolesScriptHash' -> 20-byte script hash
   Roles contract reference
 - 'pricingScriptHash' -> 20-byte script hash
   Pricing contract reference

# Identifiers
The counter starts at zero and the first report gets identifier 1. The
counter only moves forward and moves together with the record write in one
transaction, so identifiers are dense, strictly increasing and never reused
even across rejected submissions.

# Re-entrancy
RecordReport writes the 'recordInProgress' marker before any other mutation
and removes it on return. A nested invocation finds the marker and aborts.
An aborted transaction is rolled back by the chain as a whole, marker
included, so no explicit cleanup is needed on failure paths.
*/
