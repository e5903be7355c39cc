package deploy

// PricingConfiguration represents the suggested price derivation parameters
// and grade classification thresholds stored in the Pricing contract.
type PricingConfiguration struct {
	BasePrice         int64
	MoisturePenalty   int64
	MoistureThreshold int64
	ImpurityPenalty   int64
	ImpurityDivisor   int64
	GrainBonusDivisor int64
	RegionScale       int64

	MaxMoistureA  int64
	MaxImpurityA  int64
	MinGrainSizeA int64
	MaxMoistureB  int64
	MaxImpurityB  int64
	MinGrainSizeB int64
}
