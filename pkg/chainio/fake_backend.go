package chainio

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
)

// ErrFakeRevert makes a FakeChain send handler mine the transaction with a failed status
var ErrFakeRevert = errors.New("execution reverted")

// CallFunc answers a view call with decoded arguments
type CallFunc func(args []interface{}) ([]interface{}, error)

// SendFunc executes a transaction and returns the logs it emits
type SendFunc func(from common.Address, value *big.Int, args []interface{}) ([]*ethtypes.Log, error)

type handlerKey struct {
	address  common.Address
	selector [4]byte
}

type callHandler struct {
	method abi.Method
	fn     CallFunc
}

type sendHandler struct {
	method abi.Method
	fn     SendFunc
}

// SentTx is a transaction accepted by a FakeChain
type SentTx struct {
	Tx     *ethtypes.Transaction
	From   common.Address
	Method string
}

// FakeChain is an in-memory contract host shared by one or more FakeBackend views.
type FakeChain struct {
	mu       sync.Mutex
	chainID  *big.Int
	calls    map[handlerKey]callHandler
	sends    map[handlerKey]sendHandler
	receipts map[common.Hash]*ethtypes.Receipt
	nonces   map[common.Address]uint64
	block    uint64

	Sent []SentTx
}

func NewFakeChain(chainID int64) *FakeChain {
	return &FakeChain{
		chainID:  big.NewInt(chainID),
		calls:    make(map[handlerKey]callHandler),
		sends:    make(map[handlerKey]sendHandler),
		receipts: make(map[common.Hash]*ethtypes.Receipt),
		nonces:   make(map[common.Address]uint64),
	}
}

// OnCall registers a view method handler
func (c *FakeChain) OnCall(address common.Address, contractABI abi.ABI, method string, fn CallFunc) {
	m, ok := contractABI.Methods[method]
	if !ok {
		panic(fmt.Sprintf("fake chain: unknown method %s", method))
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls[key(address, m)] = callHandler{method: m, fn: fn}
}

// OnSend registers a state-changing method handler
func (c *FakeChain) OnSend(address common.Address, contractABI abi.ABI, method string, fn SendFunc) {
	m, ok := contractABI.Methods[method]
	if !ok {
		panic(fmt.Sprintf("fake chain: unknown method %s", method))
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sends[key(address, m)] = sendHandler{method: m, fn: fn}
}

// SentMethods lists the method names of accepted transactions in order
func (c *FakeChain) SentMethods() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make([]string, 0, len(c.Sent))
	for _, s := range c.Sent {
		names = append(names, s.Method)
	}
	return names
}

func key(address common.Address, m abi.Method) handlerKey {
	var sel [4]byte
	copy(sel[:], m.ID)
	return handlerKey{address: address, selector: sel}
}

func selectorOf(data []byte) ([4]byte, error) {
	var sel [4]byte
	if len(data) < 4 {
		return sel, fmt.Errorf("calldata too short")
	}
	copy(sel[:], data[:4])
	return sel, nil
}

func (c *FakeChain) call(msg ethereum.CallMsg) ([]byte, error) {
	if msg.To == nil {
		return nil, fmt.Errorf("fake chain: call without target")
	}
	sel, err := selectorOf(msg.Data)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	h, ok := c.calls[handlerKey{address: *msg.To, selector: sel}]
	c.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("fake chain: no call handler for %x on %s", sel, msg.To.Hex())
	}
	args, err := h.method.Inputs.Unpack(msg.Data[4:])
	if err != nil {
		return nil, err
	}
	out, err := h.fn(args)
	if err != nil {
		return nil, err
	}
	return h.method.Outputs.Pack(out...)
}

func (c *FakeChain) send(tx *ethtypes.Transaction) error {
	from, err := ethtypes.Sender(ethtypes.LatestSignerForChainID(c.chainID), tx)
	if err != nil {
		return fmt.Errorf("fake chain: invalid signature: %w", err)
	}
	if tx.To() == nil {
		return fmt.Errorf("fake chain: contract creation not supported")
	}
	sel, err := selectorOf(tx.Data())
	if err != nil {
		return err
	}

	c.mu.Lock()
	h, ok := c.sends[handlerKey{address: *tx.To(), selector: sel}]
	c.mu.Unlock()
	if !ok {
		return fmt.Errorf("fake chain: no send handler for %x on %s", sel, tx.To().Hex())
	}
	args, err := h.method.Inputs.Unpack(tx.Data()[4:])
	if err != nil {
		return err
	}

	status := ethtypes.ReceiptStatusSuccessful
	logs, err := h.fn(from, tx.Value(), args)
	if errors.Is(err, ErrFakeRevert) {
		status, logs = ethtypes.ReceiptStatusFailed, nil
	} else if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.block++
	for i, l := range logs {
		l.TxHash = tx.Hash()
		l.BlockNumber = c.block
		l.Index = uint(i)
	}
	c.receipts[tx.Hash()] = &ethtypes.Receipt{
		Status:      status,
		TxHash:      tx.Hash(),
		GasUsed:     tx.Gas(),
		BlockNumber: new(big.Int).SetUint64(c.block),
		Logs:        logs,
	}
	c.nonces[from]++
	c.Sent = append(c.Sent, SentTx{Tx: tx, From: from, Method: h.method.Name})
	return nil
}

// NewBackend returns a new view onto c with its own failure knobs
func (c *FakeChain) NewBackend() *FakeBackend {
	return &FakeBackend{chain: c, EstimateGasValue: 21000}
}

// FakeBackend is one RPC connection to a FakeChain
type FakeBackend struct {
	chain *FakeChain

	EstimateGasValue uint64
	EstimateErr      error
	ReceiptErr       error
	ChainIDErr       error
	CallErr          error

	mu        sync.Mutex
	Estimates []ethereum.CallMsg
	Receipts  int
}

var _ Backend = (*FakeBackend)(nil)

func (b *FakeBackend) ChainID(ctx context.Context) (*big.Int, error) {
	if b.ChainIDErr != nil {
		return nil, b.ChainIDErr
	}
	return new(big.Int).Set(b.chain.chainID), nil
}

func (b *FakeBackend) CodeAt(ctx context.Context, contract common.Address, blockNumber *big.Int) ([]byte, error) {
	return []byte{0x1}, nil
}

func (b *FakeBackend) CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	if b.CallErr != nil {
		return nil, b.CallErr
	}
	return b.chain.call(call)
}

func (b *FakeBackend) HeaderByNumber(ctx context.Context, number *big.Int) (*ethtypes.Header, error) {
	b.chain.mu.Lock()
	defer b.chain.mu.Unlock()
	return &ethtypes.Header{Number: new(big.Int).SetUint64(b.chain.block)}, nil
}

func (b *FakeBackend) PendingCodeAt(ctx context.Context, account common.Address) ([]byte, error) {
	return []byte{0x1}, nil
}

func (b *FakeBackend) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	b.chain.mu.Lock()
	defer b.chain.mu.Unlock()
	return b.chain.nonces[account], nil
}

func (b *FakeBackend) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	return big.NewInt(1_000_000_000), nil
}

func (b *FakeBackend) SuggestGasTipCap(ctx context.Context) (*big.Int, error) {
	return big.NewInt(1_000_000_000), nil
}

func (b *FakeBackend) EstimateGas(ctx context.Context, call ethereum.CallMsg) (uint64, error) {
	b.mu.Lock()
	b.Estimates = append(b.Estimates, call)
	b.mu.Unlock()
	if b.EstimateErr != nil {
		return 0, b.EstimateErr
	}
	return b.EstimateGasValue, nil
}

func (b *FakeBackend) SendTransaction(ctx context.Context, tx *ethtypes.Transaction) error {
	return b.chain.send(tx)
}

func (b *FakeBackend) TransactionReceipt(ctx context.Context, txHash common.Hash) (*ethtypes.Receipt, error) {
	b.mu.Lock()
	b.Receipts++
	b.mu.Unlock()
	if b.ReceiptErr != nil {
		return nil, b.ReceiptErr
	}
	b.chain.mu.Lock()
	defer b.chain.mu.Unlock()
	r, ok := b.chain.receipts[txHash]
	if !ok {
		return nil, ethereum.NotFound
	}
	return r, nil
}

func (b *FakeBackend) FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]ethtypes.Log, error) {
	return nil, fmt.Errorf("fake backend: FilterLogs not supported")
}

func (b *FakeBackend) SubscribeFilterLogs(ctx context.Context, q ethereum.FilterQuery, ch chan<- ethtypes.Log) (ethereum.Subscription, error) {
	return nil, fmt.Errorf("fake backend: SubscribeFilterLogs not supported")
}

// EventLog builds the log event would emit from address; args follow the event's input order
func EventLog(address common.Address, event abi.Event, args ...interface{}) (*ethtypes.Log, error) {
	if len(args) != len(event.Inputs) {
		return nil, fmt.Errorf("event %s takes %d arguments, got %d", event.Name, len(event.Inputs), len(args))
	}
	topics := []common.Hash{event.ID}
	var data []interface{}
	for i, in := range event.Inputs {
		if !in.Indexed {
			data = append(data, args[i])
			continue
		}
		t, err := abi.MakeTopics([]interface{}{args[i]})
		if err != nil {
			return nil, err
		}
		topics = append(topics, t[0][0])
	}
	packed, err := event.Inputs.NonIndexed().Pack(data...)
	if err != nil {
		return nil, err
	}
	return &ethtypes.Log{Address: address, Topics: topics, Data: packed}, nil
}
