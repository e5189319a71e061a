// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"

	"github.com/ubeswap/release/ube"
)

// Amount is a token amount in base units. In text it is a decimal or 0x hex
// integer, optionally with an "ether" suffix meaning whole tokens of 18 decimals,
// e.g. "1_000_000 ether".
type Amount big.Int

// ParseAmount parses s as described by Amount.
func ParseAmount(s string) (*big.Int, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "_", "")
	unit := big.NewInt(1)
	if trimmed, ok := strings.CutSuffix(s, "ether"); ok {
		s = strings.TrimSpace(trimmed)
		unit = ube.Ether(1)
	}
	v, ok := math.ParseBig256(s)
	if !ok || s == "" {
		return nil, errors.Errorf("invalid amount %q", s)
	}
	return v.Mul(v, unit), nil
}

func (a *Amount) UnmarshalText(text []byte) error {
	v, err := ParseAmount(string(text))
	if err != nil {
		return err
	}
	*a = Amount(*v)
	return nil
}

func (a *Amount) MarshalText() ([]byte, error) {
	return []byte(a.Int().String()), nil
}

// Int returns a copy of the amount, zero for nil.
func (a *Amount) Int() *big.Int {
	if a == nil {
		return new(big.Int)
	}
	return new(big.Int).Set((*big.Int)(a))
}
