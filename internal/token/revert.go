package token

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
)

// rpcError wraps err for op, decoding revert data when the node sent some.
func (c *Client) rpcError(op string, err error) error {
	e := &RPCError{Op: op, Err: err}
	if data, ok := revertData(err); ok {
		e.Reason = c.decodeRevert(data)
	}
	return e
}

func revertData(err error) ([]byte, bool) {
	var de rpc.DataError
	if !errors.As(err, &de) {
		return nil, false
	}
	s, ok := de.ErrorData().(string)
	if !ok {
		return nil, false
	}
	data, derr := hexutil.Decode(s)
	if derr != nil || len(data) == 0 {
		return nil, false
	}
	return data, true
}

// decodeRevert names a revert payload: Error(string) and Panic(uint256)
// first, then the custom errors the ABI declares.
func (c *Client) decodeRevert(data []byte) string {
	if reason, err := abi.UnpackRevert(data); err == nil {
		return reason
	}
	if len(data) < 4 {
		return fmt.Sprintf("execution reverted: 0x%x", data)
	}
	for name, e := range c.abi.Errors {
		if !bytes.Equal(e.ID[:4], data[:4]) {
			continue
		}
		if len(e.Inputs) == 0 {
			return name
		}
		vals, err := e.Inputs.Unpack(data[4:])
		if err != nil {
			return name
		}
		parts := make([]string, len(vals))
		for i, v := range vals {
			parts[i] = fmt.Sprint(v)
		}
		return name + "(" + strings.Join(parts, ", ") + ")"
	}
	return fmt.Sprintf("unknown custom error 0x%x", data[:4])
}
