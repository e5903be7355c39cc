// Package deploy provides a deployment routine for the AgriTrace contracts.
package deploy

import (
	"context"
	"fmt"
	"strings"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/management"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"go.uber.org/zap"
)

// Blockchain groups services provided by particular Neo blockchain network
// that are required for the AgriTrace contracts' deployment.
type Blockchain interface {
	// RPCActor groups functions needed to compose and send transactions to
	// the blockchain.
	actor.RPCActor

	// GetContractStateByHash returns network state of the smart contract by
	// its address. GetContractStateByHash returns error with 'Unknown
	// contract' substring if requested contract is missing.
	GetContractStateByHash(util.Uint160) (*state.Contract, error)
}

// CommonDeployPrm groups common deployment parameters of the smart contract.
type CommonDeployPrm struct {
	NEF      nef.File
	Manifest manifest.Manifest
}

// RolesContractPrm groups deployment parameters of the Roles contract.
type RolesContractPrm struct {
	Common CommonDeployPrm

	// Identity granted the admin role on initial deployment.
	InitialAdmin util.Uint160
}

// PricingContractPrm groups deployment parameters of the Pricing contract.
type PricingContractPrm struct {
	Common CommonDeployPrm

	// Optional pricing configuration pushed right after the deployment. If
	// unset, the contract starts with its built-in defaults. The local
	// account must hold the admin role for the push to succeed, i.e. be the
	// Roles contract's initial admin.
	Config *PricingConfiguration
}

// ReportContractPrm groups deployment parameters of the Report contract.
type ReportContractPrm struct {
	Common CommonDeployPrm
}

// SensorContractPrm groups deployment parameters of the Sensor contract.
type SensorContractPrm struct {
	Common CommonDeployPrm
}

// Prm groups all parameters of the AgriTrace contracts' deployment procedure.
type Prm struct {
	// Writes progress into the log.
	Logger *zap.Logger

	// Particular Neo blockchain instance hosting the contracts.
	Blockchain Blockchain

	// Local process account used for transaction signing (must be unlocked).
	LocalAccount *wallet.Account

	RolesContract   RolesContractPrm
	PricingContract PricingContractPrm
	ReportContract  ReportContractPrm
	SensorContract  SensorContractPrm
}

// Deploy puts the AgriTrace contract suite on the chain represented by given
// Prm.Blockchain and leaves it ready for operation.
//
// Contracts are deployed in strict order, ones dependent on others come
// after:
//  1. Roles (seeded with the initial admin)
//  2. Pricing (refers to Roles)
//  3. Report (refers to Roles and Pricing)
//  4. Sensor (refers to Roles)
//
// Deploy is idempotent: contracts already present on the chain are left
// untouched. Deployment progress is logged in detail.
func Deploy(ctx context.Context, prm Prm) error {
	localActor, err := actor.NewSimple(prm.Blockchain, prm.LocalAccount)
	if err != nil {
		return fmt.Errorf("init transaction sender from local account: %w", err)
	}

	mgmt := management.New(localActor)

	d := deployer{
		ctx:        ctx,
		logger:     prm.Logger,
		blockchain: prm.Blockchain,
		actor:      localActor,
		management: mgmt,
	}

	prm.Logger.Info("synchronizing Roles contract with the chain...")

	rolesAddress, err := d.syncContract(prm.RolesContract.Common, []any{prm.RolesContract.InitialAdmin})
	if err != nil {
		return fmt.Errorf("sync Roles contract with the chain: %w", err)
	}

	prm.Logger.Info("Roles contract successfully synchronized", zap.Stringer("address", rolesAddress))

	prm.Logger.Info("synchronizing Pricing contract with the chain...")

	pricingAddress, err := d.syncContract(prm.PricingContract.Common, []any{rolesAddress})
	if err != nil {
		return fmt.Errorf("sync Pricing contract with the chain: %w", err)
	}

	prm.Logger.Info("Pricing contract successfully synchronized", zap.Stringer("address", pricingAddress))

	if cfg := prm.PricingContract.Config; cfg != nil {
		prm.Logger.Info("pushing pricing configuration to the chain...")

		err = d.configurePricing(pricingAddress, *cfg)
		if err != nil {
			return fmt.Errorf("push pricing configuration: %w", err)
		}

		prm.Logger.Info("pricing configuration successfully pushed")
	}

	prm.Logger.Info("synchronizing Report contract with the chain...")

	reportAddress, err := d.syncContract(prm.ReportContract.Common, []any{rolesAddress, pricingAddress})
	if err != nil {
		return fmt.Errorf("sync Report contract with the chain: %w", err)
	}

	prm.Logger.Info("Report contract successfully synchronized", zap.Stringer("address", reportAddress))

	prm.Logger.Info("synchronizing Sensor contract with the chain...")

	sensorAddress, err := d.syncContract(prm.SensorContract.Common, []any{rolesAddress})
	if err != nil {
		return fmt.Errorf("sync Sensor contract with the chain: %w", err)
	}

	prm.Logger.Info("Sensor contract successfully synchronized", zap.Stringer("address", sensorAddress))

	return nil
}

type deployer struct {
	ctx        context.Context
	logger     *zap.Logger
	blockchain Blockchain
	actor      *actor.Actor
	management *management.Contract
}

// syncContract deploys the contract with the given deploy-time data unless it
// is already on the chain. The resulting address is a function of the sender
// account, so repeated runs resolve to the same contract.
func (d *deployer) syncContract(prm CommonDeployPrm, deployArgs []any) (util.Uint160, error) {
	if err := d.ctx.Err(); err != nil {
		return util.Uint160{}, err
	}

	onChainAddress := state.CreateContractHash(d.actor.Sender(), prm.NEF.Checksum, prm.Manifest.Name)

	stateOnChain, err := d.blockchain.GetContractStateByHash(onChainAddress)
	if err == nil {
		d.logger.Info("contract is already on the chain",
			zap.String("name", prm.Manifest.Name), zap.Stringer("address", onChainAddress))
		return stateOnChain.Hash, nil
	} else if !isErrContractNotFound(err) {
		return util.Uint160{}, fmt.Errorf("read on-chain state of the contract by address: %w", err)
	}

	d.logger.Info("contract is missing on the chain, deploying...",
		zap.String("name", prm.Manifest.Name), zap.Stringer("address", onChainAddress))

	txHash, vub, err := d.management.Deploy(&prm.NEF, &prm.Manifest, deployArgs)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("send transaction deploying the contract: %w", err)
	}

	res, err := d.actor.Wait(txHash, vub, nil)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("wait for deploy transaction to be accepted: %w", err)
	}

	if res.VMState != vmstate.Halt {
		return util.Uint160{}, fmt.Errorf("deploy transaction failed: %s", res.FaultException)
	}

	d.logger.Info("contract successfully deployed",
		zap.String("name", prm.Manifest.Name), zap.Stringer("address", onChainAddress))

	return onChainAddress, nil
}

func (d *deployer) configurePricing(pricingContract util.Uint160, cfg PricingConfiguration) error {
	caller := d.actor.Sender()

	txHash, vub, err := d.actor.SendCall(pricingContract, "setRules", caller, []any{
		cfg.BasePrice, cfg.MoisturePenalty, cfg.MoistureThreshold,
		cfg.ImpurityPenalty, cfg.ImpurityDivisor, cfg.GrainBonusDivisor, cfg.RegionScale,
	})
	if err != nil {
		return fmt.Errorf("send transaction setting pricing rules: %w", err)
	}

	res, err := d.actor.Wait(txHash, vub, nil)
	if err != nil {
		return fmt.Errorf("wait for pricing rules transaction to be accepted: %w", err)
	}
	if res.VMState != vmstate.Halt {
		return fmt.Errorf("pricing rules transaction failed: %s", res.FaultException)
	}

	txHash, vub, err = d.actor.SendCall(pricingContract, "setThresholds", caller, []any{
		cfg.MaxMoistureA, cfg.MaxImpurityA, cfg.MinGrainSizeA,
		cfg.MaxMoistureB, cfg.MaxImpurityB, cfg.MinGrainSizeB,
	})
	if err != nil {
		return fmt.Errorf("send transaction setting grade thresholds: %w", err)
	}

	res, err = d.actor.Wait(txHash, vub, nil)
	if err != nil {
		return fmt.Errorf("wait for grade thresholds transaction to be accepted: %w", err)
	}
	if res.VMState != vmstate.Halt {
		return fmt.Errorf("grade thresholds transaction failed: %s", res.FaultException)
	}

	return nil
}

func isErrContractNotFound(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Unknown contract")
}
