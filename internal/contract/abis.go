package contract

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// BuiltinKind describes a contract ABI embedded in the binary. New built-ins
// register themselves via init() in their own file: create
// internal/contract/<name>_abi.go and call RegisterBuiltin().
type BuiltinKind struct {
	ID          string // machine key, e.g. "trag", "erc20"
	Name        string // human label
	Description string // one-line summary shown in `abi list`
	Version     string // bump when the deployed contract changes
	JSON        string // raw ABI JSON array
}

// Parse decodes the builtin's JSON into a go-ethereum ABI.
func (b BuiltinKind) Parse() (abi.ABI, error) {
	parsed, err := abi.JSON(strings.NewReader(b.JSON))
	if err != nil {
		return abi.ABI{}, fmt.Errorf("parsing builtin ABI %q: %w", b.ID, err)
	}
	return parsed, nil
}

var builtinRegistry = map[string]BuiltinKind{}

// RegisterBuiltin adds a built-in ABI to the global registry.
// Call this from init() in the file that defines the ABI.
func RegisterBuiltin(b BuiltinKind) {
	builtinRegistry[b.ID] = b
}

// GetBuiltin returns a built-in by ID. ok is false if not found.
func GetBuiltin(id string) (BuiltinKind, bool) {
	b, ok := builtinRegistry[id]
	return b, ok
}

// BuiltinABI returns the parsed ABI for a built-in ID.
func BuiltinABI(id string) (abi.ABI, error) {
	b, ok := builtinRegistry[id]
	if !ok {
		return abi.ABI{}, fmt.Errorf("%w: builtin %q", ErrUnknownABI, id)
	}
	return b.Parse()
}

// AllBuiltins returns all registered built-ins sorted by ID.
func AllBuiltins() []BuiltinKind {
	out := make([]BuiltinKind, 0, len(builtinRegistry))
	for _, b := range builtinRegistry {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
