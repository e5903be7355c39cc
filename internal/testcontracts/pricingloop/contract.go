// Package pricingloop is a pricing contract stand-in that calls back into
// the contract invoking it. Deployed in place of the real pricing contract
// it turns every price computation into a nested recordReport attempt.
package pricingloop

import (
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
)

func ComputePrice(moisture, impurity, grainSize int, region string) int {
	caller := runtime.GetCallingScriptHash()
	contract.Call(caller, "recordReport", contract.ReadOnly,
		caller, caller, "", region, []byte{}, moisture, impurity, grainSize)
	return 0
}

func ComputeGrade(moisture, impurity, grainSize int) int {
	return 1
}
