package types

import (
	"bytes"
	"fmt"
	"math/big"
	"strconv"
)

// WeiAmount decodes a wei value sent either as a JSON string or a JSON number.
// Fractional values are floored.
type WeiAmount struct {
	*big.Int
}

func (w *WeiAmount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		w.Int = nil
		return nil
	}
	s := string(data)
	if len(data) > 0 && data[0] == '"' {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return fmt.Errorf("invalid wei string %s: %w", s, err)
		}
		s = unquoted
	}
	v, err := parseWei(s)
	if err != nil {
		return err
	}
	w.Int = v
	return nil
}

func (w WeiAmount) MarshalJSON() ([]byte, error) {
	if w.Int == nil {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(w.Int.String())), nil
}

func parseWei(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		f, fok := new(big.Float).SetPrec(256).SetString(s)
		if !fok {
			return nil, fmt.Errorf("invalid wei amount %q", s)
		}
		v, _ = f.Int(nil)
	}
	if v.Sign() < 0 {
		return nil, fmt.Errorf("negative wei amount %q", s)
	}
	return v, nil
}

// FeeQuery are the /api/fees query parameters
type FeeQuery struct {
	IPFSURL               string
	TaskDefinitionID      int
	TargetChainID         string
	TargetContractAddress string
	TargetFunction        string
	ABI                   string
	Args                  string
}

type feeFields struct {
	CurrentTotalFee *WeiAmount `json:"current_total_fee"`
	TotalFee        *WeiAmount `json:"total_fee"`
}

// FeeResponse is the /api/fees body; the fee may sit at the top level or under data
type FeeResponse struct {
	feeFields
	Data *feeFields `json:"data,omitempty"`
}

// PerExecution returns current_total_fee, preferring the top-level value.
// Older backends send only total_fee, which is used instead.
func (r *FeeResponse) PerExecution() *big.Int {
	if r.CurrentTotalFee != nil && r.CurrentTotalFee.Int != nil {
		return r.CurrentTotalFee.Int
	}
	if r.Data != nil && r.Data.CurrentTotalFee != nil && r.Data.CurrentTotalFee.Int != nil {
		return r.Data.CurrentTotalFee.Int
	}
	return r.MaxTotal()
}

// MaxTotal returns total_fee when the backend sent one
func (r *FeeResponse) MaxTotal() *big.Int {
	if r.TotalFee != nil && r.TotalFee.Int != nil {
		return r.TotalFee.Int
	}
	if r.Data != nil && r.Data.TotalFee != nil && r.Data.TotalFee.Int != nil {
		return r.Data.TotalFee.Int
	}
	return nil
}
