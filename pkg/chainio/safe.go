package chainio

import (
	"bytes"
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	pkgErrors "github.com/trigg3rX/triggerx-go-sdk/pkg/errors"
	"github.com/trigg3rX/triggerx-go-sdk/pkg/types"
)

// SafeTxTypeHash is the EIP-712 type hash of a Safe transaction
var SafeTxTypeHash = crypto.Keccak256Hash([]byte(
	"SafeTx(address to,uint256 value,bytes data,uint8 operation,uint256 safeTxGas,uint256 baseGas,uint256 gasPrice,address gasToken,address refundReceiver,uint256 _nonce)",
))

// Safe signature v offset marking an eth_sign signature
const ethSignVOffset = 4

var safeTxHashArgs = func() abi.Arguments {
	mk := func(t string) abi.Argument {
		typ, err := abi.NewType(t, "", nil)
		if err != nil {
			panic(err)
		}
		return abi.Argument{Type: typ}
	}
	return abi.Arguments{
		mk("bytes32"), mk("address"), mk("uint256"), mk("bytes32"), mk("uint8"),
		mk("uint256"), mk("uint256"), mk("uint256"), mk("address"), mk("address"), mk("uint256"),
	}
}()

// SafeHashMode picks where the Safe transaction digest is computed
type SafeHashMode int

const (
	// SafeHashLocal replicates EIP-712 from the Safe's domainSeparator
	SafeHashLocal SafeHashMode = iota
	// SafeHashOnChain asks the Safe's getTransactionHash view
	SafeHashOnChain
)

// SafeWallet configures a single-owner Safe for job execution
type SafeWallet struct {
	tx       *Transactor
	contract *Contract
	hashMode SafeHashMode
}

func NewSafeWallet(tx *Transactor, address common.Address, mode SafeHashMode) *SafeWallet {
	return &SafeWallet{tx: tx, contract: tx.Bind(address, SafeABI), hashMode: mode}
}

func (s *SafeWallet) Address() common.Address { return s.contract.Address }

func (s *SafeWallet) IsModuleEnabled(ctx context.Context, module common.Address) (bool, error) {
	out, err := s.contract.Call(ctx, "isModuleEnabled", module)
	if err != nil {
		return false, pkgErrors.NewContractError("failed to read module status", err)
	}
	enabled, ok := out[0].(bool)
	if !ok {
		return false, pkgErrors.NewContractError(fmt.Sprintf("unexpected isModuleEnabled result %T", out[0]), nil)
	}
	return enabled, nil
}

// EnsureSingleOwner requires threshold 1 with the signer as the first and only signing owner
func (s *SafeWallet) EnsureSingleOwner(ctx context.Context, signer common.Address) error {
	out, err := s.contract.Call(ctx, "getOwners")
	if err != nil {
		return pkgErrors.NewContractError("failed to read Safe owners", err)
	}
	owners, ok := out[0].([]common.Address)
	if !ok {
		return pkgErrors.NewContractError(fmt.Sprintf("unexpected getOwners result %T", out[0]), nil)
	}

	out, err = s.contract.Call(ctx, "getThreshold")
	if err != nil {
		return pkgErrors.NewContractError("failed to read Safe threshold", err)
	}
	threshold, ok := out[0].(*big.Int)
	if !ok {
		return pkgErrors.NewContractError(fmt.Sprintf("unexpected getThreshold result %T", out[0]), nil)
	}

	if threshold.Cmp(big.NewInt(1)) != 0 {
		return pkgErrors.NewContractError("Safe wallet must have threshold 1", nil).
			WithDetail("threshold", threshold.String())
	}
	isOwner := false
	for _, o := range owners {
		if strings.EqualFold(o.Hex(), signer.Hex()) {
			isOwner = true
			break
		}
	}
	if !isOwner {
		return pkgErrors.NewContractError("Signer is not an owner of the Safe wallet", nil)
	}
	if len(owners) != 1 {
		return pkgErrors.NewContractError("Signer must be the sole owner of the Safe wallet", nil).
			WithDetail("owners", len(owners))
	}
	return nil
}

// EnableModule enables module on the Safe through a self-call execTransaction signed by the owner.
// It is a no-op when the module is already enabled and verifies the result otherwise.
func (s *SafeWallet) EnableModule(ctx context.Context, module common.Address) error {
	enabled, err := s.IsModuleEnabled(ctx, module)
	if err != nil {
		return err
	}
	if enabled {
		s.tx.logger.Debug("Safe module already enabled", "safe", s.Address().Hex(), "module", module.Hex())
		return nil
	}

	out, err := s.contract.Call(ctx, "nonce")
	if err != nil {
		return pkgErrors.NewContractError("failed to read Safe nonce", err)
	}
	nonce, ok := out[0].(*big.Int)
	if !ok {
		return pkgErrors.NewContractError(fmt.Sprintf("unexpected nonce result %T", out[0]), nil)
	}

	data, err := SafeABI.Pack("enableModule", module)
	if err != nil {
		return pkgErrors.NewContractError("failed to encode enableModule", err)
	}
	safeTx := safeTxParams{to: s.Address(), value: big.NewInt(0), data: data, operation: types.OperationCall, nonce: nonce}

	digest, err := s.transactionHash(ctx, safeTx)
	if err != nil {
		return err
	}
	signature, err := s.sign(digest)
	if err != nil {
		return err
	}

	if _, err := s.tx.Send(ctx, s.contract, nil, "execTransaction",
		safeTx.to, safeTx.value, safeTx.data, uint8(safeTx.operation),
		big.NewInt(0), big.NewInt(0), big.NewInt(0),
		common.Address{}, common.Address{},
		signature,
	); err != nil {
		return err
	}

	enabled, err = s.IsModuleEnabled(ctx, module)
	if err != nil {
		return err
	}
	if !enabled {
		return pkgErrors.NewContractError("Module verification failed", nil).
			WithDetail("safeAddress", s.Address().Hex()).
			WithDetail("module", module.Hex())
	}
	s.tx.logger.Info("Safe module enabled", "safe", s.Address().Hex(), "module", module.Hex())
	return nil
}

type safeTxParams struct {
	to        common.Address
	value     *big.Int
	data      []byte
	operation types.Operation
	nonce     *big.Int
}

func (s *SafeWallet) transactionHash(ctx context.Context, p safeTxParams) (common.Hash, error) {
	if s.hashMode == SafeHashOnChain {
		out, err := s.contract.Call(ctx, "getTransactionHash",
			p.to, p.value, p.data, uint8(p.operation),
			big.NewInt(0), big.NewInt(0), big.NewInt(0),
			common.Address{}, common.Address{}, p.nonce,
		)
		if err != nil {
			return common.Hash{}, pkgErrors.NewContractError("failed to read Safe transaction hash", err)
		}
		h, ok := out[0].([32]byte)
		if !ok {
			return common.Hash{}, pkgErrors.NewContractError(fmt.Sprintf("unexpected getTransactionHash result %T", out[0]), nil)
		}
		return common.Hash(h), nil
	}

	out, err := s.contract.Call(ctx, "domainSeparator")
	if err != nil {
		return common.Hash{}, pkgErrors.NewContractError("failed to read Safe domain separator", err)
	}
	sep, ok := out[0].([32]byte)
	if !ok {
		return common.Hash{}, pkgErrors.NewContractError(fmt.Sprintf("unexpected domainSeparator result %T", out[0]), nil)
	}
	structHash, err := SafeTxHash(p.to, p.value, p.data, p.operation, p.nonce)
	if err != nil {
		return common.Hash{}, err
	}
	return SafeTxDigest(common.Hash(sep), structHash), nil
}

// sign personal-signs digest and marks the signature as eth_sign for the Safe
func (s *SafeWallet) sign(digest common.Hash) ([]byte, error) {
	sig, err := s.tx.signer.SignMessage(digest.Bytes())
	if err != nil {
		return nil, pkgErrors.NewContractError("failed to sign Safe transaction", err)
	}
	if len(sig) != crypto.SignatureLength {
		return nil, pkgErrors.NewContractError(fmt.Sprintf("unexpected signature length %d", len(sig)), nil)
	}
	return PackSafeSignature(sig), nil
}

// SafeTxHash is the EIP-712 struct hash of a Safe transaction with zero gas refund fields
func SafeTxHash(to common.Address, value *big.Int, data []byte, op types.Operation, nonce *big.Int) (common.Hash, error) {
	encoded, err := safeTxHashArgs.Pack(
		SafeTxTypeHash, to, value, crypto.Keccak256Hash(data), uint8(op),
		big.NewInt(0), big.NewInt(0), big.NewInt(0),
		common.Address{}, common.Address{}, nonce,
	)
	if err != nil {
		return common.Hash{}, pkgErrors.NewContractError("failed to encode Safe transaction", err)
	}
	return crypto.Keccak256Hash(encoded), nil
}

// SafeTxDigest is keccak256(0x19 0x01 domainSeparator safeTxHash)
func SafeTxDigest(domainSeparator, safeTxHash common.Hash) common.Hash {
	var buf bytes.Buffer
	buf.Write([]byte{0x19, 0x01})
	buf.Write(domainSeparator.Bytes())
	buf.Write(safeTxHash.Bytes())
	return crypto.Keccak256Hash(buf.Bytes())
}

// PackSafeSignature turns an r||s||v personal signature (v 27/28) into the Safe eth_sign form
func PackSafeSignature(sig []byte) []byte {
	out := make([]byte, crypto.SignatureLength)
	copy(out, sig)
	out[crypto.RecoveryIDOffset] += ethSignVOffset
	return out
}
