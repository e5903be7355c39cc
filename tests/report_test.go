package tests

import (
	"math/big"
	"path"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/nspcc-dev/neo-go/pkg/core/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/agritrace-dev/agritrace-contract/common"
	"github.com/agritrace-dev/agritrace-contract/contracts/pricing/grade"
	"github.com/agritrace-dev/agritrace-contract/contracts/report/reportconst"
	"github.com/stretchr/testify/require"
)

type reportInvoker struct {
	report  *neotest.ContractInvoker
	roles   *neotest.ContractInvoker
	pricing *neotest.ContractInvoker
}

func newReportInvoker(t *testing.T) reportInvoker {
	e := newExecutor(t)
	addrRoles := deployRolesContract(t, e)
	addrPricing := deployPricingContract(t, e, addrRoles)
	addrReport := deployReportContract(t, e, addrRoles, addrPricing)
	return reportInvoker{
		report:  e.CommitteeInvoker(addrReport),
		roles:   e.CommitteeInvoker(addrRoles),
		pricing: e.CommitteeInvoker(addrPricing),
	}
}

// newLab creates an account holding the lab role.
func (c reportInvoker) newLab(t *testing.T) (*neotest.ContractInvoker, util.Uint160) {
	acc := c.report.NewAccount(t)
	grantRole(t, c.roles, common.RoleLab, acc.ScriptHash())
	return c.report.WithSigners(acc), acc.ScriptHash()
}

func dummyContentRef() []byte {
	return []byte(base58.Encode(randomBytes(32)))
}

func TestRecordReport(t *testing.T) {
	c := newReportInvoker(t)
	cLab, labHash := c.newLab(t)

	farmer := c.report.NewAccount(t).ScriptHash()
	ref := dummyContentRef()

	c.report.Invoke(t, 0, "count")
	c.report.Invoke(t, false, "exists", 1)

	h := cLab.Invoke(t, 1, "recordReport", labHash, farmer, "wheat", "north", ref, 15, 250, 420)
	aer := cLab.CheckHalt(t, h)
	require.Equal(t, 1, len(aer.Events))
	require.Equal(t, "ReportRecorded", aer.Events[0].Name)
	require.Equal(t, stackitem.NewArray([]stackitem.Item{
		stackitem.Make(1),
		stackitem.Make(farmer.BytesBE()),
		stackitem.Make(labHash.BytesBE()),
		stackitem.Make(ref),
		stackitem.Make(994),
		stackitem.Make(15),
		stackitem.Make(250),
		stackitem.Make(420),
		stackitem.Make(int(grade.B)),
	}), aer.Events[0].Item)

	c.report.Invoke(t, 1, "count")
	c.report.Invoke(t, true, "exists", 1)

	cLab.Invoke(t, 2, "recordReport", labHash, farmer, "rye", "north", dummyContentRef(), 10, 0, 400)
	c.report.Invoke(t, 2, "count")
}

func TestGetReport(t *testing.T) {
	c := newReportInvoker(t)
	cLab, labHash := c.newLab(t)

	farmer := c.report.NewAccount(t).ScriptHash()
	ref := dummyContentRef()

	cLab.Invoke(t, 1, "recordReport", labHash, farmer, "wheat", "south", ref, 15, 250, 420)

	s, err := c.report.TestInvoke(t, "getReport", 1)
	require.NoError(t, err)

	fields := s.Pop().Array()
	require.Equal(t, 13, len(fields))
	require.Equal(t, big.NewInt(1), fields[0].Value())
	requireBytesEqual(t, farmer.BytesBE(), fields[1])
	requireBytesEqual(t, []byte("wheat"), fields[2])
	requireBytesEqual(t, []byte("south"), fields[3])
	requireBytesEqual(t, ref, fields[4])

	ts, ok := fields[5].Value().(*big.Int)
	require.True(t, ok)
	require.Positive(t, ts.Int64())

	require.Equal(t, big.NewInt(15), fields[6].Value())
	require.Equal(t, big.NewInt(250), fields[7].Value())
	require.Equal(t, big.NewInt(420), fields[8].Value())
	require.Equal(t, big.NewInt(994), fields[9].Value())
	require.Equal(t, big.NewInt(int64(grade.B)), fields[10].Value())
	requireBytesEqual(t, labHash.BytesBE(), fields[11])

	disputed, err := fields[12].TryBool()
	require.NoError(t, err)
	require.False(t, disputed)

	c.report.InvokeFail(t, reportconst.NotFoundError, "getReport", 99)
}

func TestRecordReportAuthorization(t *testing.T) {
	c := newReportInvoker(t)

	acc := c.report.NewAccount(t)
	accHash := acc.ScriptHash()
	cAcc := c.report.WithSigners(acc)

	farmer := c.report.NewAccount(t).ScriptHash()

	// Signed, but no lab role.
	cAcc.InvokeFail(t, common.ErrNotAuthorized, "recordReport",
		accHash, farmer, "wheat", "north", dummyContentRef(), 15, 250, 420)

	// Lab caller without its signature.
	grantRole(t, c.roles, common.RoleLab, accHash)
	c.report.InvokeFail(t, common.ErrWitnessFailed, "recordReport",
		accHash, farmer, "wheat", "north", dummyContentRef(), 15, 250, 420)

	// Rejected attempts do not advance the identifier sequence.
	c.report.Invoke(t, 0, "count")
	cAcc.Invoke(t, 1, "recordReport", accHash, farmer, "wheat", "north", dummyContentRef(), 15, 250, 420)
}

func TestRecordReportValidation(t *testing.T) {
	c := newReportInvoker(t)
	cLab, labHash := c.newLab(t)

	farmer := c.report.NewAccount(t).ScriptHash()
	ref := dummyContentRef()

	cLab.InvokeFail(t, common.ErrInvalidInput, "recordReport",
		labHash, []byte{}, "wheat", "north", ref, 15, 250, 420)
	cLab.InvokeFail(t, common.ErrInvalidInput, "recordReport",
		labHash, farmer, "wheat", "north", ref, reportconst.MaxMoisture+1, 250, 420)
	cLab.InvokeFail(t, common.ErrInvalidInput, "recordReport",
		labHash, farmer, "wheat", "north", ref, 15, reportconst.MaxImpurity+1, 420)
	cLab.InvokeFail(t, common.ErrInvalidInput, "recordReport",
		labHash, farmer, "wheat", "north", ref, 15, 250, reportconst.MaxGrainSize+1)
	cLab.InvokeFail(t, common.ErrInvalidInput, "recordReport",
		labHash, farmer, "wheat", "north", ref, -1, 250, 420)

	c.report.Invoke(t, 0, "count")
}

func TestReportPriceFrozen(t *testing.T) {
	c := newReportInvoker(t)
	cLab, labHash := c.newLab(t)

	farmer := c.report.NewAccount(t).ScriptHash()

	cLab.Invoke(t, 1, "recordReport", labHash, farmer, "wheat", "north", dummyContentRef(), 15, 250, 420)

	c.pricing.Invoke(t, stackitem.Null{}, "setRules", c.pricing.CommitteeHash,
		[]interface{}{2000, 2, 12, 1, 100, 10, 100})

	// New rules apply to subsequent computations only.
	c.pricing.Invoke(t, 1994, "computePrice", 15, 250, 420, "north")

	s, err := c.report.TestInvoke(t, "getReport", 1)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(994), s.Pop().Array()[9].Value())

	cLab.Invoke(t, 2, "recordReport", labHash, farmer, "wheat", "north", dummyContentRef(), 15, 250, 420)
	s, err = c.report.TestInvoke(t, "getReport", 2)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(1994), s.Pop().Array()[9].Value())
}

func TestListByFarmer(t *testing.T) {
	c := newReportInvoker(t)
	cLab, labHash := c.newLab(t)

	farmer1 := c.report.NewAccount(t).ScriptHash()
	farmer2 := c.report.NewAccount(t).ScriptHash()

	c.report.Invoke(t, stackitem.NewArray([]stackitem.Item{}), "listByFarmer", farmer1)

	cLab.Invoke(t, 1, "recordReport", labHash, farmer1, "wheat", "north", dummyContentRef(), 15, 250, 420)
	cLab.Invoke(t, 2, "recordReport", labHash, farmer2, "rye", "north", dummyContentRef(), 10, 0, 400)
	cLab.Invoke(t, 3, "recordReport", labHash, farmer1, "wheat", "south", dummyContentRef(), 10, 0, 400)

	c.report.Invoke(t, stackitem.NewArray([]stackitem.Item{
		stackitem.Make(1),
		stackitem.Make(3),
	}), "listByFarmer", farmer1)
	c.report.Invoke(t, stackitem.NewArray([]stackitem.Item{
		stackitem.Make(2),
	}), "listByFarmer", farmer2)

	c.report.InvokeFail(t, common.ErrInvalidInput, "listByFarmer", []byte{1, 2})
}

func TestReportsIterator(t *testing.T) {
	c := newReportInvoker(t)
	cLab, labHash := c.newLab(t)

	farmer := c.report.NewAccount(t).ScriptHash()

	s, err := c.report.TestInvoke(t, "reports")
	require.NoError(t, err)
	iter, ok := s.Pop().Value().(*storage.Iterator)
	require.True(t, ok)
	require.Empty(t, iteratorToArray(iter))

	cLab.Invoke(t, 1, "recordReport", labHash, farmer, "wheat", "north", dummyContentRef(), 15, 250, 420)
	cLab.Invoke(t, 2, "recordReport", labHash, farmer, "rye", "north", dummyContentRef(), 10, 0, 400)

	s, err = c.report.TestInvoke(t, "reports")
	require.NoError(t, err)
	iter, ok = s.Pop().Value().(*storage.Iterator)
	require.True(t, ok)
	require.Equal(t, []stackitem.Item{
		stackitem.NewByteArray([]byte{1}),
		stackitem.NewByteArray([]byte{2}),
	}, iteratorToArray(iter))
}

func TestRecordReportReentry(t *testing.T) {
	e := newExecutor(t)
	addrRoles := deployRolesContract(t, e)

	// A pricing stand-in that calls recordReport back during the price
	// computation. The guard flag is already raised at that point, so the
	// nested call must be rejected and the whole transaction reverted.
	const loopPath = "../internal/testcontracts/pricingloop"
	ctrLoop := neotest.CompileFile(t, e.CommitteeHash, loopPath, path.Join(loopPath, "config.yml"))
	e.DeployContract(t, ctrLoop, nil)

	addrReport := deployReportContract(t, e, addrRoles, ctrLoop.Hash)

	c := e.CommitteeInvoker(addrReport)
	acc := c.NewAccount(t)
	accHash := acc.ScriptHash()
	grantRole(t, e.CommitteeInvoker(addrRoles), common.RoleLab, accHash)

	cAcc := c.WithSigners(acc)
	cAcc.InvokeFail(t, reportconst.ReentryError, "recordReport",
		accHash, accHash, "wheat", "north", dummyContentRef(), 15, 250, 420)

	c.Invoke(t, 0, "count")
	c.Invoke(t, false, "exists", 1)
}

func TestMarkDisputed(t *testing.T) {
	c := newReportInvoker(t)
	cLab, labHash := c.newLab(t)

	farmer := c.report.NewAccount(t).ScriptHash()
	cLab.Invoke(t, 1, "recordReport", labHash, farmer, "wheat", "north", dummyContentRef(), 15, 250, 420)

	verifier := c.report.NewAccount(t)
	verifierHash := verifier.ScriptHash()
	cVerifier := c.report.WithSigners(verifier)

	cVerifier.InvokeFail(t, common.ErrNotAuthorized, "markDisputed", verifierHash, 1)

	grantRole(t, c.roles, common.RoleVerifier, verifierHash)

	c.report.InvokeFail(t, common.ErrWitnessFailed, "markDisputed", verifierHash, 1)
	cVerifier.InvokeFail(t, reportconst.NotFoundError, "markDisputed", verifierHash, 99)

	h := cVerifier.Invoke(t, stackitem.Null{}, "markDisputed", verifierHash, 1)
	aer := cVerifier.CheckHalt(t, h)
	require.Equal(t, 1, len(aer.Events))
	require.Equal(t, "ReportDisputed", aer.Events[0].Name)
	require.Equal(t, stackitem.NewArray([]stackitem.Item{
		stackitem.Make(1),
		stackitem.Make(verifierHash.BytesBE()),
	}), aer.Events[0].Item)

	s, err := c.report.TestInvoke(t, "getReport", 1)
	require.NoError(t, err)
	disputed, err := s.Pop().Array()[12].TryBool()
	require.NoError(t, err)
	require.True(t, disputed)

	// Marking an already disputed report succeeds and notifies again.
	h = cVerifier.Invoke(t, stackitem.Null{}, "markDisputed", verifierHash, 1)
	aer = cVerifier.CheckHalt(t, h)
	require.Equal(t, 1, len(aer.Events))
	require.Equal(t, "ReportDisputed", aer.Events[0].Name)
}

func requireBytesEqual(t *testing.T, expected []byte, item stackitem.Item) {
	actual, err := item.TryBytes()
	require.NoError(t, err)
	require.Equal(t, expected, actual)
}
