// Package ethereum implements the rewardwatch ledger on top of go-ethereum's
// RPC client. Every call goes through the configured retry policy and the
// HTTP transport is supplied by the caller.
package ethereum

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/gabapcia/orchwatch/internal/pkg/resilience/retry"
	"github.com/gabapcia/orchwatch/internal/rewardwatch"
	"github.com/gabapcia/orchwatch/internal/subscription"
)

// ErrUnexpectedOutput is returned when a contract call does not decode into
// the expected values.
var ErrUnexpectedOutput = errors.New("unexpected contract output")

// Backend is the part of ethclient.Client used by the ledger.
type Backend interface {
	BlockNumber(ctx context.Context) (uint64, error)
	FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]types.Log, error)
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

type client struct {
	backend   Backend
	retry     retry.Retry
	contracts rewardwatch.Contracts
}

var (
	_ rewardwatch.Ledger               = (*client)(nil)
	_ rewardwatch.HeightReader         = (*client)(nil)
	_ subscription.RegistrationChecker = (*client)(nil)
)

// Dial connects to the JSON-RPC endpoint at rpcURL using httpClient as the
// transport.
func Dial(ctx context.Context, rpcURL string, httpClient *http.Client, contracts rewardwatch.Contracts, r retry.Retry) (*client, error) {
	conn, err := rpc.DialOptions(ctx, rpcURL, rpc.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", rpcURL, err)
	}

	return NewClient(ethclient.NewClient(conn), contracts, r), nil
}

// NewClient wraps an already connected backend.
func NewClient(backend Backend, contracts rewardwatch.Contracts, r retry.Retry) *client {
	return &client{
		backend:   backend,
		retry:     r,
		contracts: contracts,
	}
}

// BlockNumber implements rewardwatch.HeightReader.
func (c *client) BlockNumber(ctx context.Context) (uint64, error) {
	return retry.Do(ctx, c.retry, func() (uint64, error) {
		return c.backend.BlockNumber(ctx)
	})
}

// FilterLogs implements rewardwatch.Ledger.
func (c *client) FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]types.Log, error) {
	return retry.Do(ctx, c.retry, func() ([]types.Log, error) {
		return c.backend.FilterLogs(ctx, q)
	})
}

// call packs method with args, executes it against contract at the latest
// block and returns the unpacked outputs.
func (c *client) call(ctx context.Context, contract common.Address, parsed abi.ABI, method string, args ...any) ([]any, error) {
	input, err := parsed.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}

	raw, err := retry.Do(ctx, c.retry, func() ([]byte, error) {
		return c.backend.CallContract(ctx, ethereum.CallMsg{To: &contract, Data: input}, nil)
	})
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}

	values, err := parsed.Unpack(method, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnexpectedOutput, method, err)
	}
	return values, nil
}

func output[T any](values []any, i int, method string) (T, error) {
	var zero T
	if len(values) <= i {
		return zero, fmt.Errorf("%w: %s returned %d values", ErrUnexpectedOutput, method, len(values))
	}

	v, ok := values[i].(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s output %d is %T", ErrUnexpectedOutput, method, i, values[i])
	}
	return v, nil
}

// uint64Output decodes a uint256 output that must fit in 64 bits.
func uint64Output(values []any, i int, method string) (uint64, error) {
	v, err := output[*big.Int](values, i, method)
	if err != nil {
		return 0, err
	}
	if !v.IsUint64() {
		return 0, fmt.Errorf("%w: %s output %d overflows uint64", ErrUnexpectedOutput, method, i)
	}
	return v.Uint64(), nil
}

// CurrentRound implements rewardwatch.Ledger.
func (c *client) CurrentRound(ctx context.Context) (uint64, error) {
	const method = "currentRound"

	values, err := c.call(ctx, c.contracts.RoundsManager, roundsManager, method)
	if err != nil {
		return 0, err
	}
	return uint64Output(values, 0, method)
}

// EarningsPoolForRound implements rewardwatch.Ledger.
func (c *client) EarningsPoolForRound(ctx context.Context, transcoder common.Address, round uint64) (rewardwatch.EarningsPool, error) {
	const method = "getTranscoderEarningsPoolForRound"

	values, err := c.call(ctx, c.contracts.BondingManager, bondingManager, method, transcoder, new(big.Int).SetUint64(round))
	if err != nil {
		return rewardwatch.EarningsPool{}, err
	}

	var pool rewardwatch.EarningsPool
	for i, dst := range []**big.Int{&pool.TotalStake, &pool.RewardCut, &pool.FeeShare} {
		if *dst, err = output[*big.Int](values, i, method); err != nil {
			return rewardwatch.EarningsPool{}, err
		}
	}
	return pool, nil
}

// TranscoderFeeShare implements rewardwatch.Ledger.
func (c *client) TranscoderFeeShare(ctx context.Context, transcoder common.Address) (*big.Int, error) {
	const method = "getTranscoder"

	values, err := c.call(ctx, c.contracts.BondingManager, bondingManager, method, transcoder)
	if err != nil {
		return nil, err
	}
	return output[*big.Int](values, 2, method)
}

// TranscoderTotalStake implements rewardwatch.Ledger.
func (c *client) TranscoderTotalStake(ctx context.Context, transcoder common.Address) (*big.Int, error) {
	const method = "transcoderTotalStake"

	values, err := c.call(ctx, c.contracts.BondingManager, bondingManager, method, transcoder)
	if err != nil {
		return nil, err
	}
	return output[*big.Int](values, 0, method)
}

// FirstTranscoderInPool implements rewardwatch.Ledger.
func (c *client) FirstTranscoderInPool(ctx context.Context) (common.Address, error) {
	const method = "getFirstTranscoderInPool"

	values, err := c.call(ctx, c.contracts.BondingManager, bondingManager, method)
	if err != nil {
		return common.Address{}, err
	}
	return output[common.Address](values, 0, method)
}

// NextTranscoderInPool implements rewardwatch.Ledger.
func (c *client) NextTranscoderInPool(ctx context.Context, transcoder common.Address) (common.Address, error) {
	const method = "getNextTranscoderInPool"

	values, err := c.call(ctx, c.contracts.BondingManager, bondingManager, method, transcoder)
	if err != nil {
		return common.Address{}, err
	}
	return output[common.Address](values, 0, method)
}

// TranscoderPoolSize implements rewardwatch.Ledger.
func (c *client) TranscoderPoolSize(ctx context.Context) (uint64, error) {
	const method = "getTranscoderPoolSize"

	values, err := c.call(ctx, c.contracts.BondingManager, bondingManager, method)
	if err != nil {
		return 0, err
	}
	return uint64Output(values, 0, method)
}

// IsRegisteredTranscoder implements subscription.RegistrationChecker.
func (c *client) IsRegisteredTranscoder(ctx context.Context, addr common.Address) (bool, error) {
	const method = "isRegisteredTranscoder"

	values, err := c.call(ctx, c.contracts.BondingManager, bondingManager, method, addr)
	if err != nil {
		return false, err
	}
	return output[bool](values, 0, method)
}
