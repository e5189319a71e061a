// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package votingpower

import (
	"crypto/ecdsa"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"

	"github.com/ubeswap/release/ube"
)

var (
	domainTypeHash     = ube.Keccak256([]byte("EIP712Domain(string name,uint256 chainId,address verifyingContract)"))
	delegationTypeHash = ube.Keccak256([]byte("Delegation(address delegatee,uint256 nonce,uint256 expiry)"))
)

func word(v *big.Int) []byte {
	return common.LeftPadBytes(v.Bytes(), 32)
}

func uintWord(v uint64) []byte {
	return word(new(big.Int).SetUint64(v))
}

func addressWord(addr ube.Address) []byte {
	return common.LeftPadBytes(addr[:], 32)
}

// DomainSeparator computes the typed-data domain of a ledger.
func DomainSeparator(name string, chainID uint64, verifyingContract ube.Address) ube.Bytes32 {
	return ube.Keccak256(
		domainTypeHash[:],
		ube.Keccak256([]byte(name)).Bytes(),
		uintWord(chainID),
		addressWord(verifyingContract),
	)
}

// DelegationDigest is the hash signed to authorize a delegation.
func DelegationDigest(domain ube.Bytes32, delegatee ube.Address, nonce, expiry uint64) ube.Bytes32 {
	structHash := ube.Keccak256(
		delegationTypeHash[:],
		addressWord(delegatee),
		uintWord(nonce),
		uintWord(expiry),
	)
	return ube.Keccak256([]byte("\x19\x01"), domain[:], structHash[:])
}

// SignDelegation signs a delegation with key. The signature is [R || S || V] with V in {27, 28}.
func SignDelegation(key *ecdsa.PrivateKey, domain ube.Bytes32, delegatee ube.Address, nonce, expiry uint64) ([]byte, error) {
	digest := DelegationDigest(domain, delegatee, nonce, expiry)
	sig, err := crypto.Sign(digest[:], key)
	if err != nil {
		return nil, err
	}
	sig[crypto.RecoveryIDOffset] += 27
	return sig, nil
}

// recoverSigner returns the address that produced sig over digest.
// V may be given either as {0, 1} or {27, 28}.
func recoverSigner(digest ube.Bytes32, sig []byte) (ube.Address, error) {
	if len(sig) != crypto.SignatureLength {
		return ube.Address{}, errors.Errorf("invalid signature length %d", len(sig))
	}
	normalized := make([]byte, crypto.SignatureLength)
	copy(normalized, sig)
	if v := normalized[crypto.RecoveryIDOffset]; v >= 27 {
		normalized[crypto.RecoveryIDOffset] = v - 27
	}
	if !crypto.ValidateSignatureValues(normalized[crypto.RecoveryIDOffset], new(big.Int).SetBytes(normalized[:32]), new(big.Int).SetBytes(normalized[32:64]), true) {
		return ube.Address{}, errors.New("invalid signature values")
	}
	pub, err := crypto.SigToPub(digest[:], normalized)
	if err != nil {
		return ube.Address{}, err
	}
	return ube.Address(crypto.PubkeyToAddress(*pub)), nil
}
