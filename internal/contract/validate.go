package contract

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// ErrMissingMethod is returned when an ABI lacks a method the client calls.
var ErrMissingMethod = errors.New("ABI missing method")

// Methods the token client reads and writes. Optional methods are checked
// lazily when the corresponding operation runs.
var (
	ReadMethods  = []string{"name", "symbol", "decimals", "totalSupply", "balanceOf", "allowance"}
	WriteMethods = []string{"transfer", "approve"}

	OptionalReadMethods  = []string{"owner"}
	OptionalWriteMethods = []string{"transferFrom", "burn", "increaseAllowance", "decreaseAllowance"}
)

// IsReadMethod reports whether m is view or pure.
func IsReadMethod(m abi.Method) bool {
	return m.IsConstant()
}

// IsWriteMethod reports whether m modifies state.
func IsWriteMethod(m abi.Method) bool {
	return !m.IsConstant()
}

// Validate checks that every read method is present and constant, and every
// write method is present and state-changing.
func Validate(parsed abi.ABI, reads, writes []string) error {
	for _, name := range reads {
		m, ok := parsed.Methods[name]
		if !ok {
			return fmt.Errorf("%w: %s", ErrMissingMethod, name)
		}
		if !IsReadMethod(m) {
			return fmt.Errorf("method %q is not a read method (stateMutability: %s)", name, m.StateMutability)
		}
	}
	for _, name := range writes {
		m, ok := parsed.Methods[name]
		if !ok {
			return fmt.Errorf("%w: %s", ErrMissingMethod, name)
		}
		if !IsWriteMethod(m) {
			return fmt.Errorf("method %q is not a write method (stateMutability: %s)", name, m.StateMutability)
		}
	}
	return nil
}

// MethodSignatures lists the ABI's methods as "sig → 0xselector", sorted by name.
func MethodSignatures(parsed abi.ABI) [][2]string {
	names := make([]string, 0, len(parsed.Methods))
	for name := range parsed.Methods {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([][2]string, 0, len(names))
	for _, name := range names {
		m := parsed.Methods[name]
		out = append(out, [2]string{m.Sig, fmt.Sprintf("0x%x", m.ID)})
	}
	return out
}
