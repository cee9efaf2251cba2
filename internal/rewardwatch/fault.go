package rewardwatch

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"
)

// Kind classifies the failure that aborted a tick.
type Kind string

const (
	KindLedger  Kind = "ledger"
	KindDecode  Kind = "decode"
	KindStorage Kind = "storage"
	KindNotify  Kind = "notify"
	KindUnknown Kind = "unknown"
)

// Fault is an error tagged with the kind of dependency that failed and the
// operation that was running.
type Fault struct {
	Kind Kind
	Op   string
	Err  error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%s: %s: %v", f.Kind, f.Op, f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}

func ledgerErr(op string, err error) error {
	return &Fault{Kind: KindLedger, Op: op, Err: err}
}

func storageErr(op string, err error) error {
	return &Fault{Kind: KindStorage, Op: op, Err: err}
}

func notifyErr(op string, err error) error {
	return &Fault{Kind: KindNotify, Op: op, Err: err}
}

func decodeErr(l types.Log, err error) error {
	return &Fault{Kind: KindDecode, Op: fmt.Sprintf("decode log %s#%d", l.TxHash.TerminalString(), l.Index), Err: err}
}

// classify returns the Fault carried by err, wrapping unclassified errors as
// KindUnknown.
func classify(err error) *Fault {
	var f *Fault
	if errors.As(err, &f) {
		return f
	}
	return &Fault{Kind: KindUnknown, Op: "tick", Err: err}
}

// faultKey identifies a failure independently of its error text. Cause is a
// coarse class of the underlying error, so a timeout turning into an auth
// failure on the same operation counts as a new fault.
type faultKey struct {
	Kind  Kind
	Op    string
	Cause string
}

func (f *Fault) key() faultKey {
	return faultKey{Kind: f.Kind, Op: f.Op, Cause: causeClass(f.Err)}
}

func causeClass(err error) string {
	var (
		httpErr rpc.HTTPError
		rpcErr  rpc.Error
		netErr  net.Error
	)

	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.As(err, &netErr) && netErr.Timeout():
		return "timeout"
	case errors.As(err, &httpErr):
		return fmt.Sprintf("http %d", httpErr.StatusCode)
	case errors.As(err, &rpcErr):
		return fmt.Sprintf("rpc %d", rpcErr.ErrorCode())
	case errors.Is(err, ErrMalformedLog):
		return "malformed"
	case netErr != nil:
		return "network"
	default:
		return "other"
	}
}

// faultRelay remembers the last fault relayed to the operator so that the
// same failure repeating on every tick is reported once.
type faultRelay struct {
	last    faultKey
	relayed bool
}

// shouldRelay reports whether f differs from the previously relayed fault
// and records it if so.
func (r *faultRelay) shouldRelay(f *Fault) bool {
	k := f.key()
	if r.relayed && k == r.last {
		return false
	}
	r.last, r.relayed = k, true
	return true
}
