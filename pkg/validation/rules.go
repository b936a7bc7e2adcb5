package validation

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func IsEmpty(value string) bool {
	return strings.TrimSpace(value) == ""
}

func IsValidAddress(address string) bool {
	return common.IsHexAddress(strings.TrimSpace(address))
}

// IsValidURL accepts absolute URLs with a scheme, e.g. https:// or ipfs://
func IsValidURL(value string) bool {
	if IsEmpty(value) {
		return false
	}
	return validate.Var(value, "url") == nil
}

// IsValidWei accepts a non-negative base-10 integer
func IsValidWei(value string) bool {
	v, ok := new(big.Int).SetString(strings.TrimSpace(value), 10)
	return ok && v.Sign() >= 0
}

// IsValidHexData accepts 0x-prefixed, even-length hex; "0x" alone is empty calldata
func IsValidHexData(value string) bool {
	_, err := hexutil.Decode(value)
	return err == nil
}
