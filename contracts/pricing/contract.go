package pricing

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/agritrace-dev/agritrace-contract/common"
	"github.com/agritrace-dev/agritrace-contract/contracts/pricing/grade"
)

type (
	// Rules is the parameter set of the suggested price derivation. All
	// values are non-negative integers; divisors and the region scale are
	// strictly positive.
	Rules struct {
		BasePrice         int
		MoisturePenalty   int
		MoistureThreshold int
		ImpurityPenalty   int
		ImpurityDivisor   int
		GrainBonusDivisor int
		RegionScale       int
	}

	// Thresholds is the grade classification parameter set. A-thresholds
	// are checked first, then B; grade C needs none.
	Thresholds struct {
		MaxMoistureA  int
		MaxImpurityA  int
		MinGrainSizeA int
		MaxMoistureB  int
		MaxImpurityB  int
		MinGrainSizeB int
	}
)

const (
	rulesKey         = "pricingRules"
	thresholdsKey    = "gradeThresholds"
	rolesContractKey = "rolesScriptHash"

	multiplierKeyPrefix = 'm'

	// grainSizePivot is the grain size above which the bonus accrues.
	grainSizePivot = 400

	defaultBasePrice         = 1000
	defaultMoisturePenalty   = 2
	defaultMoistureThreshold = 12
	defaultImpurityPenalty   = 1
	defaultImpurityDivisor   = 100
	defaultGrainBonusDivisor = 10
	defaultRegionScale       = 100

	defaultMaxMoistureA  = 12
	defaultMaxImpurityA  = 100
	defaultMinGrainSizeA = 400
	defaultMaxMoistureB  = 15
	defaultMaxImpurityB  = 500
	defaultMinGrainSizeB = 350
)

// ErrBadRules is thrown by the configuration setters on an out-of-range
// parameter value.
const ErrBadRules = "bad pricing configuration"

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
	if len(addrRoles) != interop.Hash160Len {
		panic("init: incorrect length of roles contract script hash")
	}

	storage.Put(ctx, rolesContractKey, addrRoles)

	common.SetSerialized(ctx, rulesKey, Rules{
		BasePrice:         defaultBasePrice,
		MoisturePenalty:   defaultMoisturePenalty,
		MoistureThreshold: defaultMoistureThreshold,
		ImpurityPenalty:   defaultImpurityPenalty,
		ImpurityDivisor:   defaultImpurityDivisor,
		GrainBonusDivisor: defaultGrainBonusDivisor,
		RegionScale:       defaultRegionScale,
	})
	common.SetSerialized(ctx, thresholdsKey, Thresholds{
		MaxMoistureA:  defaultMaxMoistureA,
		MaxImpurityA:  defaultMaxImpurityA,
		MinGrainSizeA: defaultMinGrainSizeA,
		MaxMoistureB:  defaultMaxMoistureB,
		MaxImpurityB:  defaultMaxImpurityB,
		MinGrainSizeB: defaultMinGrainSizeB,
	})

	runtime.Log("pricing contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(script []byte, manifest []byte, data interface{}) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("pricing contract updated")
}

// SetRules replaces the whole pricing parameter set. It can be invoked only
// by a member of the admin group. New rules take effect for all subsequent
// computations; prices frozen into already recorded reports are not
// re-derived.
func SetRules(caller interop.Hash160, rules Rules) {
	ctx := storage.GetContext()
	requireAdmin(ctx, caller)

	if rules.BasePrice < 0 || rules.MoisturePenalty < 0 || rules.MoistureThreshold < 0 ||
		rules.ImpurityPenalty < 0 {
		panic(ErrBadRules + ": negative parameter")
	}
	if rules.ImpurityDivisor <= 0 || rules.GrainBonusDivisor <= 0 || rules.RegionScale <= 0 {
		panic(ErrBadRules + ": divisor must be positive")
	}

	common.SetSerialized(ctx, rulesKey, rules)

	runtime.Notify("RulesUpdated", rules.BasePrice, caller)
	runtime.Log("setRules: pricing rules have been updated")
}

// GetRules returns the current pricing parameter set.
func GetRules() Rules {
	ctx := storage.GetReadOnlyContext()
	return getRules(ctx)
}

// SetThresholds replaces the grade classification parameter set. It can be
// invoked only by a member of the admin group.
//
// The contract does not require A-thresholds to be stricter than B ones;
// configuring them otherwise is an administrative oddity, not an error.
func SetThresholds(caller interop.Hash160, t Thresholds) {
	ctx := storage.GetContext()
	requireAdmin(ctx, caller)

	if t.MaxMoistureA < 0 || t.MaxImpurityA < 0 || t.MinGrainSizeA < 0 ||
		t.MaxMoistureB < 0 || t.MaxImpurityB < 0 || t.MinGrainSizeB < 0 {
		panic(ErrBadRules + ": negative threshold")
	}

	common.SetSerialized(ctx, thresholdsKey, t)

	runtime.Notify("ThresholdsUpdated", caller)
	runtime.Log("setThresholds: grade thresholds have been updated")
}

// GetThresholds returns the current grade classification parameter set.
func GetThresholds() Thresholds {
	ctx := storage.GetReadOnlyContext()
	return getThresholds(ctx)
}

// SetRegionMultiplier sets the price multiplier override of the region.
// It can be invoked only by a member of the admin group. Zero removes the
// override, leaving prices of the region unscaled.
func SetRegionMultiplier(caller interop.Hash160, region string, multiplier int) {
	ctx := storage.GetContext()
	requireAdmin(ctx, caller)

	if len(region) == 0 {
		panic(common.ErrInvalidInput + ": empty region")
	}
	if multiplier < 0 {
		panic(ErrBadRules + ": negative multiplier")
	}

	key := multiplierKey(region)
	if multiplier == 0 {
		storage.Delete(ctx, key)
	} else {
		storage.Put(ctx, key, multiplier)
	}

	runtime.Notify("RegionMultiplierSet", region, multiplier, caller)
	runtime.Log("setRegionMultiplier: region multiplier has been updated")
}

// RegionMultiplier returns the multiplier override of the region, zero if
// the region has none.
func RegionMultiplier(region string) int {
	ctx := storage.GetReadOnlyContext()
	return regionMultiplier(ctx, region)
}

// ComputePrice derives the suggested price from raw measurements using the
// current rules. The result is deterministic for a fixed rule set and never
// negative.
//
// The computation starts from the base price, subtracts the moisture penalty
// for every moisture point above the threshold, subtracts the impurity
// penalty per full impurity divisor, adds the grain size bonus for sizes
// above 400, clamps the total at zero and finally applies the region
// multiplier override, if any, scaled down by the region scale.
func ComputePrice(moisture, impurity, grainSize int, region string) int {
	ctx := storage.GetReadOnlyContext()
	r := getRules(ctx)

	price := r.BasePrice
	if moisture > r.MoistureThreshold {
		price -= (moisture - r.MoistureThreshold) * r.MoisturePenalty
	}
	if impurity > 0 {
		price -= impurity / r.ImpurityDivisor * r.ImpurityPenalty
	}
	if grainSize > grainSizePivot {
		price += (grainSize - grainSizePivot) / r.GrainBonusDivisor
	}
	if price < 0 {
		price = 0
	}

	multiplier := regionMultiplier(ctx, region)
	if multiplier != 0 {
		price = price * multiplier / r.RegionScale
	}

	return price
}

// ComputeGrade classifies raw measurements into a quality tier using the
// current thresholds. Thresholds are evaluated as a priority cascade: the
// A set first, then the B set, grade C otherwise. Upper bounds are
// inclusive, lower bounds are inclusive.
func ComputeGrade(moisture, impurity, grainSize int) grade.Type {
	ctx := storage.GetReadOnlyContext()
	t := getThresholds(ctx)

	if moisture <= t.MaxMoistureA && impurity <= t.MaxImpurityA && grainSize >= t.MinGrainSizeA {
		return grade.A
	}
	if moisture <= t.MaxMoistureB && impurity <= t.MaxImpurityB && grainSize >= t.MinGrainSizeB {
		return grade.B
	}

	return grade.C
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func requireAdmin(ctx storage.Context, caller interop.Hash160) {
	common.CheckWitness(caller)

	addrRoles := storage.Get(ctx, rolesContractKey).(interop.Hash160)
	common.RequireRole(addrRoles, common.RoleAdmin, caller)
}

func getRules(ctx storage.Context) Rules {
	data := storage.Get(ctx, rulesKey)
	return std.Deserialize(data.([]byte)).(Rules)
}

func getThresholds(ctx storage.Context) Thresholds {
	data := storage.Get(ctx, thresholdsKey)
	return std.Deserialize(data.([]byte)).(Thresholds)
}

func multiplierKey(region string) []byte {
	return append([]byte{multiplierKeyPrefix}, []byte(region)...)
}

func regionMultiplier(ctx storage.Context, region string) int {
	val := storage.Get(ctx, multiplierKey(region))
	if val == nil {
		return 0
	}

	return val.(int)
}
