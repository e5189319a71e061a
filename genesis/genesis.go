// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/ubeswap/release/builtin/release"
	"github.com/ubeswap/release/builtin/token"
	"github.com/ubeswap/release/log"
	"github.com/ubeswap/release/runtime"
	"github.com/ubeswap/release/ube"
	"github.com/ubeswap/release/xenv"
)

var logger = log.WithContext("pkg", "genesis")

// Config describes the contracts deployed at launch.
type Config struct {
	ChainID    uint64        `json:"chainId" yaml:"chainId"`
	LaunchTime uint64        `json:"launchTime" yaml:"launchTime"`
	Deployer   ube.Address   `json:"deployer" yaml:"deployer"`
	Token      TokenConfig   `json:"token" yaml:"token"`
	Release    ReleaseConfig `json:"release" yaml:"release"`
}

// TokenConfig describes the underlying token. The whole supply is minted to the deployer.
type TokenConfig struct {
	token.Metadata `yaml:",inline"`
	Supply         *Amount `json:"supply" yaml:"supply"`
}

// ReleaseConfig describes the release engine. TotalAmount moves from the deployer
// into its custody before the initial holders are allocated.
type ReleaseConfig struct {
	release.Metadata `yaml:",inline"`
	Owner            ube.Address      `json:"owner" yaml:"owner"`
	TotalAmount      *Amount          `json:"totalAmount" yaml:"totalAmount"`
	Schedule         release.Schedule `json:"schedule" yaml:"schedule"`
	Holders          []Holder         `json:"holders" yaml:"holders"`
}

type Holder struct {
	Address ube.Address `json:"address" yaml:"address"`
	Amount  *Amount     `json:"amount" yaml:"amount"`
}

// Validate checks c for errors that would fail the deployment.
func (c *Config) Validate() error {
	if c.Deployer.IsZero() {
		return errors.New("deployer must be set")
	}
	if c.Release.Owner.IsZero() {
		return errors.New("release owner must be set")
	}
	if c.Token.Supply == nil || c.Token.Supply.Int().Sign() <= 0 {
		return errors.New("token supply must be a positive integer")
	}
	total := c.Release.TotalAmount.Int()
	if total.Sign() < 0 {
		return errors.New("release total amount must not be negative")
	}
	if total.Cmp(c.Token.Supply.Int()) > 0 {
		return errors.New("release total amount exceeds token supply")
	}
	if err := c.Release.Schedule.Validate(); err != nil {
		return err
	}

	if len(c.Release.Holders) > ube.MaxAllocationBatch {
		return errors.Errorf("at most %d initial holders", ube.MaxAllocationBatch)
	}

	sum := new(big.Int)
	for _, h := range c.Release.Holders {
		if h.Address.IsZero() {
			return errors.New("holder address must be set")
		}
		if h.Amount == nil {
			return errors.Errorf("%v: amount must be set", h.Address)
		}
		if h.Amount.Int().Sign() < 0 {
			return errors.Errorf("%v: amount must not be negative", h.Address)
		}
		sum.Add(sum, h.Amount.Int())
	}
	if sum.Cmp(total) > 0 {
		return errors.New("initial holders exceed release total amount")
	}
	return nil
}

// Block returns the genesis block context.
func (c *Config) Block() xenv.BlockContext {
	return xenv.BlockContext{Number: 1, Time: c.LaunchTime}
}

// TokenAddress returns the address of the underlying token.
func (c *Config) TokenAddress() ube.Address {
	return ube.CreateContractAddress(c.Deployer, "token")
}

// ReleaseAddress returns the address of the release engine.
func (c *Config) ReleaseAddress() ube.Address {
	return ube.CreateContractAddress(c.Deployer, "release")
}

// Genesis holds the deployed contracts.
type Genesis struct {
	Token   *token.Token
	Release *release.Release
}

// Build binds the contracts of c to the state of rt, deploying them on the
// first run. A persisted deployment is reused as is.
func Build(rt *runtime.Runtime, c *Config) (*Genesis, error) {
	if err := c.Validate(); err != nil {
		return nil, errors.WithMessage(err, "genesis")
	}

	tok := token.New(c.TokenAddress(), rt.State(), c.Token.Metadata, c.ChainID)
	rel := release.New(c.ReleaseAddress(), rt.State(), tok, c.Release.Metadata, c.ChainID)
	g := &Genesis{Token: tok, Release: rel}

	_, err := rel.Schedule()
	switch {
	case err == nil:
		logger.Info("using persisted deployment", "token", tok.Address(), "release", rel.Address())
		return g, nil
	case !errors.Is(err, release.ErrNotDeployed):
		return nil, err
	}

	total := c.Release.TotalAmount.Int()
	holders := make([]release.Holder, 0, len(c.Release.Holders))
	for _, h := range c.Release.Holders {
		holders = append(holders, release.Holder{Address: h.Address, Amount: h.Amount.Int()})
	}
	// both contracts deploy in one call so a failed release leaves no minted token behind
	if _, err := rt.Exec("genesis", c.Deployer, tok.Address(), func(env *xenv.Environment) error {
		if err := tok.Mint(env, c.Deployer, c.Token.Supply.Int()); err != nil {
			return errors.WithMessage(err, "deploy token")
		}
		if err := tok.Transfer(env, rel.Address(), total); err != nil {
			return errors.WithMessage(err, "deploy token")
		}
		err := rel.Deploy(env.Call(rel.Address()), release.Params{
			Owner:       c.Release.Owner,
			TotalAmount: total,
			Schedule:    c.Release.Schedule,
			Holders:     holders,
		})
		return errors.WithMessage(err, "deploy release")
	}); err != nil {
		return nil, err
	}

	logger.Info("deployed genesis", "token", tok.Address(), "release", rel.Address(), "holders", len(holders))
	return g, nil
}
