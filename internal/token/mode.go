package token

import "github.com/Mohsinsiddi/tragcli/internal/wallet"

// Mode selects whether a client may sign. It is either ReadOnly or Signing.
type Mode interface {
	isMode()
}

// ReadOnly clients can only read; every write fails with ErrNoCredential.
type ReadOnly struct{}

// Signing clients sign writes with Signer.
type Signing struct {
	Signer *wallet.Signer
}

func (ReadOnly) isMode() {}
func (Signing) isMode()  {}

func signerOf(m Mode) *wallet.Signer {
	if s, ok := m.(Signing); ok {
		return s.Signer
	}
	return nil
}
