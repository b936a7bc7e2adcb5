package chainio

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const jobRegistryABI = `[
	{"type":"function","name":"createJob","stateMutability":"nonpayable","inputs":[{"name":"jobTitle","type":"string"},{"name":"jobType","type":"uint256"},{"name":"timeFrame","type":"uint256"},{"name":"targetContract","type":"address"},{"name":"encodedData","type":"bytes"}],"outputs":[{"name":"jobId","type":"uint256"}]},
	{"type":"function","name":"deleteJob","stateMutability":"nonpayable","inputs":[{"name":"jobId","type":"uint256"}],"outputs":[]},
	{"type":"event","name":"JobCreated","anonymous":false,"inputs":[{"name":"jobId","type":"uint256","indexed":true},{"name":"jobOwner","type":"address","indexed":true},{"name":"jobType","type":"uint256","indexed":false}]},
	{"type":"event","name":"JobDeleted","anonymous":false,"inputs":[{"name":"jobId","type":"uint256","indexed":true},{"name":"jobOwner","type":"address","indexed":true}]}
]`

const gasRegistryABI = `[
	{"type":"function","name":"depositETH","stateMutability":"payable","inputs":[{"name":"amount","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"withdrawETHBalance","stateMutability":"nonpayable","inputs":[{"name":"amount","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"purchaseTG","stateMutability":"payable","inputs":[{"name":"amount","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"claimETHForTG","stateMutability":"nonpayable","inputs":[{"name":"amount","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"getBalance","stateMutability":"view","inputs":[{"name":"user","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"balances","stateMutability":"view","inputs":[{"name":"","type":"address"}],"outputs":[{"name":"ethSpent","type":"uint256"},{"name":"TGbalance","type":"uint256"}]}
]`

const safeABI = `[
	{"type":"function","name":"isModuleEnabled","stateMutability":"view","inputs":[{"name":"module","type":"address"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"enableModule","stateMutability":"nonpayable","inputs":[{"name":"module","type":"address"}],"outputs":[]},
	{"type":"function","name":"domainSeparator","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"bytes32"}]},
	{"type":"function","name":"nonce","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"getOwners","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address[]"}]},
	{"type":"function","name":"getThreshold","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"getTransactionHash","stateMutability":"view","inputs":[{"name":"to","type":"address"},{"name":"value","type":"uint256"},{"name":"data","type":"bytes"},{"name":"operation","type":"uint8"},{"name":"safeTxGas","type":"uint256"},{"name":"baseGas","type":"uint256"},{"name":"gasPrice","type":"uint256"},{"name":"gasToken","type":"address"},{"name":"refundReceiver","type":"address"},{"name":"_nonce","type":"uint256"}],"outputs":[{"name":"","type":"bytes32"}]},
	{"type":"function","name":"execTransaction","stateMutability":"payable","inputs":[{"name":"to","type":"address"},{"name":"value","type":"uint256"},{"name":"data","type":"bytes"},{"name":"operation","type":"uint8"},{"name":"safeTxGas","type":"uint256"},{"name":"baseGas","type":"uint256"},{"name":"gasPrice","type":"uint256"},{"name":"gasToken","type":"address"},{"name":"refundReceiver","type":"address"},{"name":"signatures","type":"bytes"}],"outputs":[{"name":"success","type":"bool"}]}
]`

const safeFactoryABI = `[
	{"type":"function","name":"createSafeWallet","stateMutability":"nonpayable","inputs":[{"name":"user","type":"address"}],"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"latestSafeWallet","stateMutability":"view","inputs":[{"name":"user","type":"address"}],"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"getSafeWallets","stateMutability":"view","inputs":[{"name":"user","type":"address"}],"outputs":[{"name":"","type":"address[]"}]},
	{"type":"function","name":"predictSafeAddress","stateMutability":"view","inputs":[{"name":"user","type":"address"}],"outputs":[{"name":"","type":"address"}]},
	{"type":"event","name":"SafeWalletCreated","anonymous":false,"inputs":[{"name":"user","type":"address","indexed":true},{"name":"safeWallet","type":"address","indexed":true},{"name":"saltNonce","type":"uint256","indexed":false}]}
]`

// Parsed contract interfaces
var (
	JobRegistryABI = mustParseABI(jobRegistryABI)
	GasRegistryABI = mustParseABI(gasRegistryABI)
	SafeABI        = mustParseABI(safeABI)
	SafeFactoryABI = mustParseABI(safeFactoryABI)
)

func mustParseABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(err)
	}
	return parsed
}
