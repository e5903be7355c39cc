// Command agritrace-deploy puts the AgriTrace contract suite on a Neo chain.
//
// It expects compiled contract artifacts produced by the neo-go compiler:
// <name>.nef and <name>.manifest.json files for the roles, pricing, report
// and sensor contracts.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"go.uber.org/zap"

	"github.com/agritrace-dev/agritrace-contract/deploy"
)

func main() {
	neoRPCEndpoint := flag.String("rpc", "", "Network address of the Neo RPC server")
	walletPath := flag.String("wallet", "", "Path to the deployer wallet")
	walletPassword := flag.String("password", "", "Password of the deployer wallet account")
	contractsDir := flag.String("contracts", "build", "Directory with compiled contract artifacts")
	adminAddress := flag.String("admin", "", "Neo address of the initial admin (deployer account by default)")

	flag.Parse()

	switch {
	case *neoRPCEndpoint == "":
		log.Fatal("missing Neo RPC endpoint")
	case *walletPath == "":
		log.Fatal("missing deployer wallet")
	}

	err := run(*neoRPCEndpoint, *walletPath, *walletPassword, *contractsDir, *adminAddress)
	if err != nil {
		log.Fatal(err)
	}

	log.Println("AgriTrace contracts are successfully deployed")
}

func run(neoRPCEndpoint, walletPath, walletPassword, contractsDir, adminAddress string) error {
	ctx := context.Background()

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	w, err := wallet.NewWalletFromFile(walletPath)
	if err != nil {
		return fmt.Errorf("open deployer wallet: %w", err)
	}

	acc := w.Accounts[0]
	err = acc.Decrypt(walletPassword, w.Scrypt)
	if err != nil {
		return fmt.Errorf("unlock deployer account: %w", err)
	}

	admin := acc.Contract.ScriptHash()
	if adminAddress != "" {
		admin, err = address.StringToUint160(adminAddress)
		if err != nil {
			return fmt.Errorf("parse initial admin address: %w", err)
		}
	}

	c, err := rpcclient.New(ctx, neoRPCEndpoint, rpcclient.Options{})
	if err != nil {
		return fmt.Errorf("init Neo RPC client: %w", err)
	}

	defer c.Close()

	prm := deploy.Prm{
		Logger:       logger,
		Blockchain:   c,
		LocalAccount: acc,
	}

	prm.RolesContract.InitialAdmin = admin

	prm.RolesContract.Common, err = readContract(contractsDir, "roles")
	if err != nil {
		return fmt.Errorf("read Roles contract: %w", err)
	}
	prm.PricingContract.Common, err = readContract(contractsDir, "pricing")
	if err != nil {
		return fmt.Errorf("read Pricing contract: %w", err)
	}
	prm.ReportContract.Common, err = readContract(contractsDir, "report")
	if err != nil {
		return fmt.Errorf("read Report contract: %w", err)
	}
	prm.SensorContract.Common, err = readContract(contractsDir, "sensor")
	if err != nil {
		return fmt.Errorf("read Sensor contract: %w", err)
	}

	return deploy.Deploy(ctx, prm)
}

func readContract(dir, name string) (deploy.CommonDeployPrm, error) {
	var prm deploy.CommonDeployPrm

	rawNEF, err := os.ReadFile(filepath.Join(dir, name+".nef"))
	if err != nil {
		return prm, fmt.Errorf("read NEF file: %w", err)
	}

	prm.NEF, err = nef.FileFromBytes(rawNEF)
	if err != nil {
		return prm, fmt.Errorf("parse NEF file: %w", err)
	}

	rawManifest, err := os.ReadFile(filepath.Join(dir, name+".manifest.json"))
	if err != nil {
		return prm, fmt.Errorf("read manifest file: %w", err)
	}

	err = json.Unmarshal(rawManifest, &prm.Manifest)
	if err != nil {
		return prm, fmt.Errorf("parse manifest file: %w", err)
	}

	return prm, nil
}
