// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"
	"gopkg.in/yaml.v3"

	"github.com/ubeswap/release/co"
	"github.com/ubeswap/release/genesis"
	"github.com/ubeswap/release/log"
	"github.com/ubeswap/release/logdb"
	"github.com/ubeswap/release/lvldb"
	"github.com/ubeswap/release/metrics"
	"github.com/ubeswap/release/ube"
	"github.com/ubeswap/release/xenv"
)

func initLogger(ctx *cli.Context) {
	lvl := new(slog.LevelVar)
	lvl.Set(log.FromLegacyLevel(ctx.Int(verbosityFlag.Name)))

	var handler slog.Handler
	if ctx.Bool(jsonLogsFlag.Name) {
		handler = log.JSONHandlerWithLevel(os.Stdout, lvl)
	} else {
		useColor := (isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())) && os.Getenv("TERM") != "dumb"
		handler = log.NewTerminalHandlerWithLevel(os.Stdout, lvl, useColor)
	}
	log.SetDefault(log.NewLogger(handler))
}

// loadGenesis reads the genesis config file, or returns a development network
// launched now when none is given.
func loadGenesis(ctx *cli.Context) (*genesis.Config, error) {
	path := ctx.String(configFlag.Name)
	if path == "" {
		return genesis.NewDevnet(uint64(time.Now().Unix())), nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open genesis config")
	}
	defer file.Close()
	return decodeGenesis(file)
}

func decodeGenesis(r io.Reader) (*genesis.Config, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var gene genesis.Config
	if err := decoder.Decode(&gene); err != nil {
		return nil, errors.Wrap(err, "decode genesis config")
	}
	if gene.LaunchTime == 0 {
		gene.LaunchTime = gene.Release.Schedule.Start
	}
	if err := gene.Validate(); err != nil {
		return nil, err
	}
	return &gene, nil
}

func defaultDataDir() string {
	if home := homeDir(); home != "" {
		if runtime.GOOS == "darwin" {
			return filepath.Join(home, "Library", "Application Support", "ube-release")
		}
		return filepath.Join(home, ".ube-release")
	}
	return ""
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

func instanceDir(dataDir string, gene *genesis.Config) string {
	return filepath.Join(dataDir, fmt.Sprintf("instance-%d-%x", gene.ChainID, gene.ReleaseAddress().Bytes()[16:]))
}

// openMainDB opens the state database, in memory unless persist is set.
func openMainDB(ctx *cli.Context, gene *genesis.Config) (*lvldb.LevelDB, string, error) {
	if !ctx.Bool(persistFlag.Name) {
		db, err := lvldb.NewMem()
		if err != nil {
			return nil, "", errors.Wrap(err, "open main database")
		}
		return db, "Memory", nil
	}

	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		return nil, "", fmt.Errorf("unable to infer default data dir, use -%s to specify", dataDirFlag.Name)
	}
	dir := instanceDir(dataDir, gene)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, "", errors.Wrapf(err, "create data dir [%v]", dir)
	}
	db, err := lvldb.New(filepath.Join(dir, "main.db"), lvldb.Options{})
	if err != nil {
		return nil, "", errors.Wrapf(err, "open main database [%v]", dir)
	}
	return db, dir, nil
}

func openLogDB(ctx *cli.Context, dir string) (*logdb.LogDB, error) {
	if !ctx.Bool(persistFlag.Name) {
		db, err := logdb.NewMem()
		if err != nil {
			return nil, errors.Wrap(err, "open log database")
		}
		return db, nil
	}
	path := filepath.Join(dir, "logs.db")
	db, err := logdb.New(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open log database [%v]", path)
	}
	return db, nil
}

func startAPIServer(addr string, handler http.Handler) (string, func(), error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, errors.Wrapf(err, "listen API addr [%v]", addr)
	}
	srv := &http.Server{Handler: handler, ReadHeaderTimeout: time.Second, ReadTimeout: 5 * time.Second}
	var goes co.Goes
	goes.Go(func() {
		srv.Serve(listener)
	})
	return "http://" + listener.Addr().String() + "/", func() {
		srv.Close()
		goes.Wait()
	}, nil
}

func startMetricsServer(addr string) (string, func()) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: time.Second}

	var goes co.Goes
	goes.Go(func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "err", err)
		}
	})
	return "http://" + addr + "/metrics", func() {
		srv.Close()
		goes.Wait()
	}
}

func handleExitSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)

		sig := <-exitSignalCh
		logger.Info("exit signal received", "signal", sig)
		cancel()
	}()
	return ctx
}

func printStartupMessage(gene *genesis.Config, contracts *genesis.Genesis, pending xenv.BlockContext, dataDir, apiURL string) {
	s := gene.Release.Schedule
	fmt.Printf(`Starting %v
    Chain ID      [ %v ]
    Pending block [ #%v @%v ]
    Token         [ %v %v ]
    Release       [ %v %v ]
    Schedule      [ %v .. %v (cliff %v) ]
    Data dir      [ %v ]
    API portal    [ %v ]
`,
		"release "+fullVersion(),
		gene.ChainID,
		pending.Number, time.Unix(int64(pending.Time), 0),
		contracts.Token.Address(), contracts.Token.Metadata().Symbol,
		contracts.Release.Address(), contracts.Release.Metadata().Symbol,
		time.Unix(int64(s.Start), 0), time.Unix(int64(s.End), 0), time.Unix(int64(s.Cliff), 0),
		dataDir,
		apiURL)

	if gene.ChainID != genesis.DevChainID {
		return
	}
	fmt.Println("    Dev accounts")
	for _, a := range genesis.DevAccounts() {
		fmt.Printf("      %v %v\n", a.Address, ube.BytesToBytes32(crypto.FromECDSA(a.PrivateKey)))
	}
}
