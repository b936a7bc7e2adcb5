package jobs

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"

	"github.com/trigg3rX/triggerx-go-sdk/pkg/chainio"
	pkgErrors "github.com/trigg3rX/triggerx-go-sdk/pkg/errors"
	"github.com/trigg3rX/triggerx-go-sdk/pkg/types"
)

// DeleteJob removes the job on chain, then marks it deleted in the API
func (s *Service) DeleteJob(ctx context.Context, signer chainio.Signer, jobID, chainID string) pkgErrors.Result[*types.TxResult] {
	res, err := s.deleteJob(ctx, signer, jobID, chainID)
	if err != nil {
		s.logger.Error("Job deletion failed", "job_id", jobID, "error", err)
		return pkgErrors.Fail[*types.TxResult](err, "Failed to delete job")
	}
	return pkgErrors.OK(res)
}

func (s *Service) deleteJob(ctx context.Context, signer chainio.Signer, jobID, chainID string) (*types.TxResult, error) {
	if err := s.requireAPIKey(); err != nil {
		return nil, err
	}
	c, err := s.signerChain(ctx, signer, chainID)
	if err != nil {
		return nil, err
	}
	if c.addresses.JobRegistry == "" {
		return nil, pkgErrors.NewConfigurationError(fmt.Sprintf("JobRegistry address not configured for chain ID: %s", c.id))
	}

	registry := chainio.NewJobRegistry(c.tx, common.HexToAddress(c.addresses.JobRegistry))
	receipt, err := registry.DeleteJob(ctx, jobID)
	if err != nil {
		return nil, pkgErrors.Classify(err, "Failed to delete job on chain")
	}
	if err := s.backend.DeleteJob(ctx, jobID, signer.Address().Hex()); err != nil {
		return nil, err
	}
	s.logger.Info("Job deleted", "job_id", jobID, "tx_hash", receipt.TxHash.Hex())
	return receiptResult(receipt), nil
}

// CreateSafeWallet deploys a Safe for the signer and enables the TriggerX module on it
func (s *Service) CreateSafeWallet(ctx context.Context, signer chainio.Signer, chainID string) pkgErrors.Result[*types.SafeWalletResult] {
	res, err := s.createSafeWallet(ctx, signer, chainID)
	if err != nil {
		s.logger.Error("Safe wallet creation failed", "error", err)
		return pkgErrors.Fail[*types.SafeWalletResult](err, "Failed to create Safe wallet")
	}
	return pkgErrors.OK(res)
}

func (s *Service) createSafeWallet(ctx context.Context, signer chainio.Signer, chainID string) (*types.SafeWalletResult, error) {
	c, err := s.signerChain(ctx, signer, chainID)
	if err != nil {
		return nil, err
	}
	factoryAddr, err := c.addresses.Require("safeFactory")
	if err != nil {
		return nil, err
	}
	module, err := c.addresses.Require("safeModule")
	if err != nil {
		return nil, err
	}

	factory := chainio.NewSafeFactory(c.tx, common.HexToAddress(factoryAddr))
	safeAddr, receipt, err := factory.CreateSafeWallet(ctx, signer.Address())
	if err != nil {
		return nil, pkgErrors.Classify(err, "Failed to create Safe wallet")
	}
	res := &types.SafeWalletResult{SafeAddress: safeAddr.Hex(), CreationTx: receipt.TxHash.Hex()}

	safe := chainio.NewSafeWallet(c.tx, safeAddr, s.safeHashMode)
	if err := safe.EnableModule(ctx, common.HexToAddress(module)); err != nil {
		return nil, pkgErrors.NewContractError("Failed to enable TriggerX module on Safe wallet", err).
			WithDetail("safeAddress", res.SafeAddress)
	}
	res.ModuleEnabled = true
	s.logger.Info("Safe wallet created", "safe_address", res.SafeAddress, "tx_hash", res.CreationTx)
	return res, nil
}

// CheckETHBalance reads the user's escrow. It needs no signer.
func (s *Service) CheckETHBalance(ctx context.Context, user common.Address, chainID string) pkgErrors.Result[*types.GasBalance] {
	res, err := s.checkETHBalance(ctx, user, chainID)
	if err != nil {
		return pkgErrors.Fail[*types.GasBalance](err, "Failed to check ETH balance")
	}
	return pkgErrors.OK(res)
}

func (s *Service) checkETHBalance(ctx context.Context, user common.Address, chainID string) (*types.GasBalance, error) {
	g, err := s.gasRegistry(ctx, nil, chainID)
	if err != nil {
		return nil, err
	}
	return g.Balances(ctx, user)
}

// DepositETH escrows amount wei for the signer
func (s *Service) DepositETH(ctx context.Context, signer chainio.Signer, amount *big.Int, chainID string) pkgErrors.Result[*types.TxResult] {
	return s.gasTx(ctx, signer, chainID, "Failed to deposit ETH", func(g *chainio.GasRegistry) (*ethtypes.Receipt, error) {
		return g.DepositETH(ctx, amount)
	})
}

// WithdrawETH returns amount wei of unspent escrow to the signer
func (s *Service) WithdrawETH(ctx context.Context, signer chainio.Signer, amount *big.Int, chainID string) pkgErrors.Result[*types.TxResult] {
	return s.gasTx(ctx, signer, chainID, "Failed to withdraw ETH", func(g *chainio.GasRegistry) (*ethtypes.Receipt, error) {
		return g.WithdrawETH(ctx, amount)
	})
}

// PurchaseTG is kept for older integrations and returns errors directly
func (s *Service) PurchaseTG(ctx context.Context, signer chainio.Signer, tg *big.Int, chainID string) (*types.TxResult, error) {
	g, err := s.gasRegistry(ctx, signer, chainID)
	if err != nil {
		return nil, err
	}
	receipt, err := g.PurchaseTG(ctx, tg)
	if err != nil {
		return nil, err
	}
	return receiptResult(receipt), nil
}

// ClaimETHForTG is kept for older integrations and returns errors directly
func (s *Service) ClaimETHForTG(ctx context.Context, signer chainio.Signer, amountTG, chainID string) (*types.TxResult, error) {
	g, err := s.gasRegistry(ctx, signer, chainID)
	if err != nil {
		return nil, err
	}
	receipt, err := g.ClaimETHForTG(ctx, amountTG)
	if err != nil {
		return nil, err
	}
	return receiptResult(receipt), nil
}

// CheckTGBalance is kept for older integrations and returns errors directly
func (s *Service) CheckTGBalance(ctx context.Context, user common.Address, chainID string) (*big.Int, error) {
	g, err := s.gasRegistry(ctx, nil, chainID)
	if err != nil {
		return nil, err
	}
	return g.TGBalance(ctx, user)
}

func (s *Service) gasTx(ctx context.Context, signer chainio.Signer, chainID, failMsg string, send func(*chainio.GasRegistry) (*ethtypes.Receipt, error)) pkgErrors.Result[*types.TxResult] {
	if err := requireSigner(signer); err != nil {
		return pkgErrors.Fail[*types.TxResult](err, failMsg)
	}
	g, err := s.gasRegistry(ctx, signer, chainID)
	if err != nil {
		return pkgErrors.Fail[*types.TxResult](err, failMsg)
	}
	receipt, err := send(g)
	if err != nil {
		s.logger.Error(failMsg, "error", err)
		return pkgErrors.Fail[*types.TxResult](err, failMsg)
	}
	return pkgErrors.OK(receiptResult(receipt))
}

// gasRegistry binds the chain's GasRegistry; signer may be nil for reads
func (s *Service) gasRegistry(ctx context.Context, signer chainio.Signer, chainID string) (*chainio.GasRegistry, error) {
	resolved, addrs, err := s.resolveChain(ctx, signer, chainID)
	if err != nil {
		return nil, err
	}
	addr, err := addrs.Require("gasRegistry")
	if err != nil {
		return nil, err
	}
	c, err := s.connect(ctx, signer, resolved, addrs)
	if err != nil {
		return nil, err
	}
	return chainio.NewGasRegistry(c.tx, common.HexToAddress(addr)), nil
}

func (s *Service) signerChain(ctx context.Context, signer chainio.Signer, chainID string) (*chainContext, error) {
	if err := requireSigner(signer); err != nil {
		return nil, err
	}
	resolved, addrs, err := s.resolveChain(ctx, signer, chainID)
	if err != nil {
		return nil, err
	}
	return s.connect(ctx, signer, resolved, addrs)
}

func receiptResult(r *ethtypes.Receipt) *types.TxResult {
	var block uint64
	if r.BlockNumber != nil {
		block = r.BlockNumber.Uint64()
	}
	return txResult(r.TxHash.Hex(), block, r.GasUsed)
}
