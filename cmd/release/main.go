// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"
	"time"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/ubeswap/release/api"
	"github.com/ubeswap/release/api/node"
	"github.com/ubeswap/release/chain"
	"github.com/ubeswap/release/genesis"
	"github.com/ubeswap/release/log"
	"github.com/ubeswap/release/logdb"
	"github.com/ubeswap/release/metrics"
	"github.com/ubeswap/release/packer"
	"github.com/ubeswap/release/runtime"
	"github.com/ubeswap/release/state"
)

var (
	version   string
	gitCommit string
	gitTag    string

	logger = log.WithContext("pkg", "main")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "release",
		Usage:     "Node of the Ubeswap token release engine",
		Copyright: "2025 The Ubeswap developers",
		Flags: []cli.Flag{
			configFlag,
			dataDirFlag,
			persistFlag,
			apiAddrFlag,
			apiCorsFlag,
			enableAPILogsFlag,
			apiLogsLimitFlag,
			skipLogsFlag,
			blockIntervalFlag,
			verbosityFlag,
			jsonLogsFlag,
			enableMetricsFlag,
			metricsAddrFlag,
		},
		Action: defaultAction,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Fatal:", err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	exitSignal := handleExitSignal()
	defer func() { logger.Info("exited") }()

	initLogger(ctx)

	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
		_, closeMetrics := startMetricsServer(ctx.String(metricsAddrFlag.Name))
		defer func() { logger.Info("stopping metrics server..."); closeMetrics() }()
	}

	gene, err := loadGenesis(ctx)
	if err != nil {
		return err
	}

	db, dataDir, err := openMainDB(ctx, gene)
	if err != nil {
		return err
	}
	defer func() { logger.Info("closing main database..."); db.Close() }()

	c, err := chain.New(db, gene.Block())
	if err != nil {
		return err
	}
	interval := ctx.Uint64(blockIntervalFlag.Name)
	if interval == 0 {
		return fmt.Errorf("%s must be positive", blockIntervalFlag.Name)
	}
	rt := runtime.New(state.New(db), c, interval)
	defer rt.Close()

	var logDB *logdb.LogDB
	if !ctx.Bool(skipLogsFlag.Name) {
		if logDB, err = openLogDB(ctx, dataDir); err != nil {
			return err
		}
		defer func() { logger.Info("closing log database..."); logDB.Close() }()

		// subscribe before genesis so the deployment events are indexed
		waitSync := logDB.Sync(exitSignal, rt)
		// closing the runtime ends the sync even when no exit signal arrived
		defer func() { rt.Close(); waitSync() }()
	}

	contracts, err := genesis.Build(rt, gene)
	if err != nil {
		return err
	}

	apiURL, closeAPI, err := startAPIServer(ctx.String(apiAddrFlag.Name), api.New(rt, contracts.Release, logDB, api.Options{
		AllowedOrigins:  ctx.String(apiCorsFlag.Name),
		EnableReqLogger: ctx.Bool(enableAPILogsFlag.Name),
		EnableMetrics:   ctx.Bool(enableMetricsFlag.Name),
		LogsLimit:       ctx.Uint64(apiLogsLimitFlag.Name),
		Node:            node.Info{ChainID: gene.ChainID, BlockInterval: interval},
	}))
	if err != nil {
		return err
	}
	defer func() { logger.Info("stopping API server..."); closeAPI() }()

	printStartupMessage(gene, contracts, rt.Pending(), dataDir, apiURL)

	packer.New(rt, time.Duration(interval)*time.Second).Run(exitSignal)
	return nil
}
