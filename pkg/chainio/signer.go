package chainio

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// Signer is the caller's account. Backend is the caller's own connection and may be nil,
// in which case transactions are sent through the SDK RPC.
type Signer interface {
	Address() common.Address
	SignTx(tx *ethtypes.Transaction, chainID *big.Int) (*ethtypes.Transaction, error)
	// SignMessage returns an EIP-191 personal-message signature r||s||v with v in {27, 28}
	SignMessage(msg []byte) ([]byte, error)
	Backend() Backend
}

// KeySigner signs locally with an ECDSA private key
type KeySigner struct {
	key     *ecdsa.PrivateKey
	address common.Address
	backend Backend
}

var _ Signer = (*KeySigner)(nil)

// NewKeySigner parses a hex private key, with or without the 0x prefix
func NewKeySigner(hexKey string, backend Backend) (*KeySigner, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(hexKey), "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return NewKeySignerFromKey(key, backend), nil
}

func NewKeySignerFromKey(key *ecdsa.PrivateKey, backend Backend) *KeySigner {
	return &KeySigner{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
		backend: backend,
	}
}

func (s *KeySigner) Address() common.Address { return s.address }
func (s *KeySigner) Backend() Backend        { return s.backend }

func (s *KeySigner) SignTx(tx *ethtypes.Transaction, chainID *big.Int) (*ethtypes.Transaction, error) {
	return ethtypes.SignTx(tx, ethtypes.LatestSignerForChainID(chainID), s.key)
}

func (s *KeySigner) SignMessage(msg []byte) ([]byte, error) {
	sig, err := crypto.Sign(accounts.TextHash(msg), s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign message: %w", err)
	}
	sig[crypto.RecoveryIDOffset] += 27
	return sig, nil
}

// transactOpts adapts signer to bind's signing callback
func transactOpts(signer Signer, chainID *big.Int) *bind.TransactOpts {
	from := signer.Address()
	return &bind.TransactOpts{
		From: from,
		Signer: func(addr common.Address, tx *ethtypes.Transaction) (*ethtypes.Transaction, error) {
			if addr != from {
				return nil, bind.ErrNotAuthorized
			}
			return signer.SignTx(tx, chainID)
		},
	}
}
