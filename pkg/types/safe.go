package types

// Operation is the Safe call type of a sub-transaction
type Operation uint8

const (
	OperationCall         Operation = 0
	OperationDelegateCall Operation = 1
)

func (o Operation) Valid() bool {
	return o == OperationCall || o == OperationDelegateCall
}

// SafeTransaction is one action executed by the Safe on the job's behalf
type SafeTransaction struct {
	To        string    `json:"to" yaml:"to"`
	Value     string    `json:"value" yaml:"value"` // wei, decimal
	Data      string    `json:"data" yaml:"data"`   // 0x-prefixed hex, "0x" when empty
	Operation Operation `json:"operation" yaml:"operation"`
}
