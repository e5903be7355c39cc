package report

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/convert"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/agritrace-dev/agritrace-contract/common"
	"github.com/agritrace-dev/agritrace-contract/contracts/pricing/grade"
	cst "github.com/agritrace-dev/agritrace-contract/contracts/report/reportconst"
)

type (
	// TestReport is a finalized quality assessment of one crop lot. All
	// fields except Disputed are frozen at creation time.
	TestReport struct {
		ID         int
		Farmer     interop.Hash160
		CropType   string
		Region     string
		ContentRef []byte
		Timestamp  int

		Moisture  int
		Impurity  int
		GrainSize int

		SuggestedPrice int
		Grade          grade.Type

		Lab      interop.Hash160
		Disputed bool
	}
)

const (
	counterKey         = "reportCounter"
	recordingKey       = "recordInProgress"
	rolesContractKey   = "rolesScriptHash"
	pricingContractKey = "pricingScriptHash"

	reportKeyPrefix = 'x'
	farmerKeyPrefix = 'f'
)

// nolint:deadcode,unused
func _deploy(data interface{}, isUpdate bool) {
	ctx := storage.GetContext()
	args := data.([]interface{})

	if isUpdate {
		version := args[len(args)-1].(int)
		common.CheckVersion(version)
		return
	}

	addrRoles := args[0].(interop.Hash160)
	addrPricing := args[1].(interop.Hash160)
	if len(addrRoles) != interop.Hash160Len || len(addrPricing) != interop.Hash160Len {
		panic("init: incorrect length of contract script hash")
	}

	storage.Put(ctx, rolesContractKey, addrRoles)
	storage.Put(ctx, pricingContractKey, addrPricing)
	storage.Put(ctx, counterKey, 0)

	runtime.Log("report contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(script []byte, manifest []byte, data interface{}) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("report contract updated")
}

// RecordReport stores a new quality report for the farmer's crop lot and
// returns its identifier. It can be invoked only by a member of the lab
// group and the call transaction must be signed by the caller.
//
// Identifiers start from 1 and strictly increase in creation order; an
// identifier is never reused, a rejected call leaves the counter untouched.
// The suggested price and the grade are derived from the measurements by the
// pricing contract with its parameters current at this very moment and are
// frozen into the report. ContentRef is an opaque reference to off-chain
// evidence (e.g. a lab certificate); the contract does not interpret it.
//
// The method must not be re-entered: a nested call observes the in-progress
// marker and is rejected with ReentryError before touching any state.
//
// On success, it produces ReportRecorded notification.
func RecordReport(caller interop.Hash160, farmer interop.Hash160, cropType, region string, contentRef []byte, moisture, impurity, grainSize int) int {
	ctx := storage.GetContext()

	if storage.Get(ctx, recordingKey) != nil {
		panic(cst.ReentryError)
	}
	storage.Put(ctx, recordingKey, []byte{1})

	common.CheckWitness(caller)
	addrRoles := storage.Get(ctx, rolesContractKey).(interop.Hash160)
	common.RequireRole(addrRoles, common.RoleLab, caller)

	if len(farmer) != interop.Hash160Len {
		panic(common.ErrInvalidInput + ": invalid farmer identity")
	}
	if moisture < 0 || moisture > cst.MaxMoisture {
		panic(common.ErrInvalidInput + ": moisture out of range")
	}
	if impurity < 0 || impurity > cst.MaxImpurity {
		panic(common.ErrInvalidInput + ": impurity out of range")
	}
	if grainSize < 0 || grainSize > cst.MaxGrainSize {
		panic(common.ErrInvalidInput + ": grain size out of range")
	}

	id := storage.Get(ctx, counterKey).(int) + 1
	storage.Put(ctx, counterKey, id)

	addrPricing := storage.Get(ctx, pricingContractKey).(interop.Hash160)
	price := contract.Call(addrPricing, "computePrice", contract.ReadOnly,
		moisture, impurity, grainSize, region).(int)
	grd := contract.Call(addrPricing, "computeGrade", contract.ReadOnly,
		moisture, impurity, grainSize).(grade.Type)

	rep := TestReport{
		ID:             id,
		Farmer:         farmer,
		CropType:       cropType,
		Region:         region,
		ContentRef:     contentRef,
		Timestamp:      runtime.GetTime(),
		Moisture:       moisture,
		Impurity:       impurity,
		GrainSize:      grainSize,
		SuggestedPrice: price,
		Grade:          grd,
		Lab:            caller,
	}

	common.SetSerialized(ctx, reportKey(id), rep)
	common.AppendID(ctx, farmerKey(farmer), id)

	storage.Delete(ctx, recordingKey)

	runtime.Notify("ReportRecorded", id, farmer, caller, contentRef, price,
		moisture, impurity, grainSize, grd)
	runtime.Log("recordReport: added new quality report")

	return id
}

// GetReport returns the report by its identifier. It panics with
// NotFoundError if the report was never recorded.
func GetReport(id int) TestReport {
	ctx := storage.GetReadOnlyContext()

	data := storage.Get(ctx, reportKey(id))
	if data == nil {
		panic(cst.NotFoundError)
	}

	return std.Deserialize(data.([]byte)).(TestReport)
}

// Exists returns true if a report with the given identifier was recorded.
func Exists(id int) bool {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, reportKey(id)) != nil
}

// ListByFarmer returns identifiers of all reports of the farmer in creation
// order.
func ListByFarmer(farmer interop.Hash160) []int {
	ctx := storage.GetReadOnlyContext()

	if len(farmer) != interop.Hash160Len {
		panic(common.ErrInvalidInput + ": invalid farmer identity")
	}

	return common.GetIDList(ctx, farmerKey(farmer))
}

// Reports returns an iterator over identifiers of all recorded reports.
// Every value is the little-endian byte representation of an identifier.
func Reports() iterator.Iterator {
	ctx := storage.GetReadOnlyContext()
	return storage.Find(ctx, []byte{reportKeyPrefix}, storage.KeysOnly|storage.RemovePrefix)
}

// Count returns the number of recorded reports, which equals the last
// assigned identifier.
func Count() int {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, counterKey).(int)
}

// MarkDisputed raises the dispute flag of the report. It can be invoked only
// by a member of the verifier group and the call transaction must be signed
// by the caller. The flag is the only mutable field of a recorded report;
// marking an already disputed report succeeds and notifies again.
//
// It produces ReportDisputed notification.
func MarkDisputed(caller interop.Hash160, id int) {
	ctx := storage.GetContext()

	common.CheckWitness(caller)
	addrRoles := storage.Get(ctx, rolesContractKey).(interop.Hash160)
	common.RequireRole(addrRoles, common.RoleVerifier, caller)

	data := storage.Get(ctx, reportKey(id))
	if data == nil {
		panic(cst.NotFoundError)
	}

	rep := std.Deserialize(data.([]byte)).(TestReport)
	rep.Disputed = true
	common.SetSerialized(ctx, reportKey(id), rep)

	runtime.Notify("ReportDisputed", id, caller)
	runtime.Log("markDisputed: report has been disputed")
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func reportKey(id int) []byte {
	return append([]byte{reportKeyPrefix}, convert.ToBytes(id)...)
}

func farmerKey(farmer interop.Hash160) []byte {
	return append([]byte{farmerKeyPrefix}, farmer...)
}
