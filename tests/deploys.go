package tests

import (
	"path"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

const (
	rolesPath   = "../contracts/roles"
	pricingPath = "../contracts/pricing"
	reportPath  = "../contracts/report"
	sensorPath  = "../contracts/sensor"
)

// deployRolesContract deploys the Roles contract with the committee as the
// initial admin.
func deployRolesContract(t *testing.T, e *neotest.Executor) util.Uint160 {
	c := neotest.CompileFile(t, e.CommitteeHash, rolesPath, path.Join(rolesPath, "config.yml"))
	e.DeployContract(t, c, []interface{}{e.CommitteeHash})
	return c.Hash
}

func deployPricingContract(t *testing.T, e *neotest.Executor, addrRoles util.Uint160) util.Uint160 {
	c := neotest.CompileFile(t, e.CommitteeHash, pricingPath, path.Join(pricingPath, "config.yml"))
	e.DeployContract(t, c, []interface{}{addrRoles})
	return c.Hash
}

func deployReportContract(t *testing.T, e *neotest.Executor, addrRoles, addrPricing util.Uint160) util.Uint160 {
	c := neotest.CompileFile(t, e.CommitteeHash, reportPath, path.Join(reportPath, "config.yml"))
	e.DeployContract(t, c, []interface{}{addrRoles, addrPricing})
	return c.Hash
}

func deploySensorContract(t *testing.T, e *neotest.Executor, addrRoles util.Uint160) util.Uint160 {
	c := neotest.CompileFile(t, e.CommitteeHash, sensorPath, path.Join(sensorPath, "config.yml"))
	e.DeployContract(t, c, []interface{}{addrRoles})
	return c.Hash
}

// grantRole adds the identity to the permission group on behalf of the
// committee admin.
func grantRole(t *testing.T, roles *neotest.ContractInvoker, role string, identity util.Uint160) {
	roles.Invoke(t, stackitem.Null{}, "setRole", roles.CommitteeHash, role, identity, true)
}
