package contract

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// ErrUnknownABI is returned when an ABI cannot be found or has no usable entries.
var ErrUnknownABI = errors.New("unknown ABI")

// LoadFromArtifact loads an ABI from a local file that is either:
//   - a raw ABI JSON array: [{"type":"function",...}, ...]
//   - a Hardhat/Foundry artifact: {"abi":[...],"bytecode":"0x...",...}
//
// Both formats are detected automatically.
func LoadFromArtifact(path string) (abi.ABI, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return abi.ABI{}, fmt.Errorf("cannot read ABI file: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return abi.ABI{}, fmt.Errorf("%w: ABI file is empty: %s", ErrUnknownABI, path)
	}

	if data[0] == '{' {
		var artifact struct {
			ABI json.RawMessage `json:"abi"`
		}
		if err := json.Unmarshal(data, &artifact); err != nil {
			return abi.ABI{}, fmt.Errorf("invalid artifact JSON: %w", err)
		}
		artifact.ABI = bytes.TrimSpace(artifact.ABI)
		if len(artifact.ABI) < 2 || artifact.ABI[0] != '[' {
			return abi.ABI{}, fmt.Errorf("%w: file is a JSON object without an \"abi\" array: %s", ErrUnknownABI, path)
		}
		data = artifact.ABI
	}

	parsed, err := abi.JSON(bytes.NewReader(data))
	if err != nil {
		return abi.ABI{}, fmt.Errorf("invalid ABI JSON in %s: %w", path, err)
	}
	if len(parsed.Methods) == 0 && len(parsed.Events) == 0 {
		return abi.ABI{}, fmt.Errorf("%w: no functions or events found: %s", ErrUnknownABI, path)
	}
	return parsed, nil
}
