package tests

import (
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/agritrace-dev/agritrace-contract/common"
	"github.com/agritrace-dev/agritrace-contract/contracts/pricing"
	"github.com/agritrace-dev/agritrace-contract/contracts/pricing/grade"
)

// The contract's built-in defaults, see the pricing contract.
var (
	defaultRules      = []interface{}{1000, 2, 12, 1, 100, 10, 100}
	defaultThresholds = []interface{}{12, 100, 400, 15, 500, 350}
)

func newPricingInvoker(t *testing.T) *neotest.ContractInvoker {
	e := newExecutor(t)
	addrRoles := deployRolesContract(t, e)
	return e.CommitteeInvoker(deployPricingContract(t, e, addrRoles))
}

func rulesItem(rules []interface{}) stackitem.Item {
	items := make([]stackitem.Item, len(rules))
	for i := range rules {
		items[i] = stackitem.Make(rules[i])
	}
	return stackitem.NewStruct(items)
}

func TestPricingDeployDefaults(t *testing.T) {
	c := newPricingInvoker(t)

	c.Invoke(t, rulesItem(defaultRules), "getRules")
	c.Invoke(t, rulesItem(defaultThresholds), "getThresholds")
	c.Invoke(t, 0, "regionMultiplier", "north")
}

func TestComputePrice(t *testing.T) {
	c := newPricingInvoker(t)

	// Nothing to penalize, nothing to reward.
	c.Invoke(t, 1000, "computePrice", 10, 0, 400, "north")

	// 1000 - 3*2 (moisture above threshold) - 2*1 (impurity) + 2 (grain
	// size bonus).
	c.Invoke(t, 994, "computePrice", 15, 250, 420, "north")

	// Penalties larger than the base clamp the price at zero.
	c.Invoke(t, 0, "computePrice", 255, 65535, 0, "north")
}

func TestComputePriceRegionMultiplier(t *testing.T) {
	c := newPricingInvoker(t)

	c.Invoke(t, stackitem.Null{}, "setRegionMultiplier", c.CommitteeHash, "south", 110)
	c.Invoke(t, 110, "regionMultiplier", "south")

	// floor(994 * 110 / 100).
	c.Invoke(t, 1093, "computePrice", 15, 250, 420, "south")

	// Other regions are not affected.
	c.Invoke(t, 994, "computePrice", 15, 250, 420, "north")

	// Zero removes the override.
	c.Invoke(t, stackitem.Null{}, "setRegionMultiplier", c.CommitteeHash, "south", 0)
	c.Invoke(t, 0, "regionMultiplier", "south")
	c.Invoke(t, 994, "computePrice", 15, 250, 420, "south")
}

func TestComputeGrade(t *testing.T) {
	c := newPricingInvoker(t)

	c.Invoke(t, int(grade.A), "computeGrade", 12, 100, 400)
	c.Invoke(t, int(grade.B), "computeGrade", 15, 250, 420)
	c.Invoke(t, int(grade.C), "computeGrade", 16, 600, 100)

	// A missed lower bound degrades A to B, upper bounds are inclusive.
	c.Invoke(t, int(grade.B), "computeGrade", 12, 100, 399)
	c.Invoke(t, int(grade.C), "computeGrade", 15, 501, 420)
}

func TestSetRules(t *testing.T) {
	c := newPricingInvoker(t)

	newRules := []interface{}{500, 2, 12, 1, 100, 10, 100}
	c.Invoke(t, stackitem.Null{}, "setRules", c.CommitteeHash, newRules)
	c.Invoke(t, rulesItem(newRules), "getRules")
	c.Invoke(t, 500, "computePrice", 10, 0, 400, "north")

	c.InvokeFail(t, pricing.ErrBadRules, "setRules", c.CommitteeHash,
		[]interface{}{-1, 2, 12, 1, 100, 10, 100})
	c.InvokeFail(t, pricing.ErrBadRules, "setRules", c.CommitteeHash,
		[]interface{}{500, 2, 12, 1, 0, 10, 100})
}

func TestSetThresholds(t *testing.T) {
	c := newPricingInvoker(t)

	// Raising the A moisture bound promotes the reference B sample.
	newThresholds := []interface{}{15, 500, 400, 15, 500, 350}
	c.Invoke(t, stackitem.Null{}, "setThresholds", c.CommitteeHash, newThresholds)
	c.Invoke(t, rulesItem(newThresholds), "getThresholds")
	c.Invoke(t, int(grade.A), "computeGrade", 15, 250, 420)

	c.InvokeFail(t, pricing.ErrBadRules, "setThresholds", c.CommitteeHash,
		[]interface{}{-1, 100, 400, 15, 500, 350})
}

func TestPricingAuthorization(t *testing.T) {
	c := newPricingInvoker(t)

	acc := c.NewAccount(t)
	accHash := acc.ScriptHash()
	cAcc := c.WithSigners(acc)

	cAcc.InvokeFail(t, common.ErrNotAuthorized, "setRules", accHash, defaultRules)
	cAcc.InvokeFail(t, common.ErrNotAuthorized, "setThresholds", accHash, defaultThresholds)
	cAcc.InvokeFail(t, common.ErrNotAuthorized, "setRegionMultiplier", accHash, "south", 110)
	cAcc.InvokeFail(t, common.ErrWitnessFailed, "setRules", c.CommitteeHash, defaultRules)

	c.Invoke(t, rulesItem(defaultRules), "getRules")
}
