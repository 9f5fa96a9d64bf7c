package token

import (
	"errors"

	"github.com/Mohsinsiddi/tragcli/internal/units"
)

// Errors. Match with errors.Is; RPC failures are *RPCError and match with errors.As.
var (
	ErrInvalidAddress = errors.New("invalid address")
	ErrNoCredential   = errors.New("no signing credential: client is read-only")
	ErrInvalidAmount  = units.ErrInvalidAmount
	ErrReverted       = errors.New("transaction reverted")
)

// RPCError reports a failed network round trip, a malformed node response or
// a contract revert. Op is the contract method or RPC step that failed;
// Reason is the decoded revert reason when the node returned one.
type RPCError struct {
	Op     string
	Reason string
	Err    error
}

func (e *RPCError) Error() string {
	msg := "rpc " + e.Op
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *RPCError) Unwrap() error { return e.Err }
