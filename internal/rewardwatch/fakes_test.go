package rewardwatch

import (
	"context"
	"errors"
	"math/big"
	"slices"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

var testContracts = Contracts{
	BondingManager: common.HexToAddress("0x00000000000000000000000000000000000000b1"),
	RoundsManager:  common.HexToAddress("0x00000000000000000000000000000000000000a1"),
	TicketBroker:   common.HexToAddress("0x00000000000000000000000000000000000000c1"),
}

// fakeLedger is an in-memory Ledger. Logs are filtered the way a node would:
// by contract, first topic and inclusive block range.
type fakeLedger struct {
	mu sync.Mutex

	height    uint64
	round     uint64
	logs      []types.Log
	pools     map[common.Address]EarningsPool
	feeShares map[common.Address]*big.Int
	stakes    map[common.Address]*big.Int
	pool      []common.Address
	err       error
	filterErr error

	// poolSizeFailures is the number of TranscoderPoolSize calls left to fail.
	poolSizeFailures int

	queries    []ethereum.FilterQuery
	poolRounds []uint64
}

func newFakeLedger(height, round uint64) *fakeLedger {
	return &fakeLedger{
		height:    height,
		round:     round,
		pools:     make(map[common.Address]EarningsPool),
		feeShares: make(map[common.Address]*big.Int),
		stakes:    make(map[common.Address]*big.Int),
	}
}

func (f *fakeLedger) BlockNumber(context.Context) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.height, f.err
}

func (f *fakeLedger) FilterLogs(_ context.Context, q ethereum.FilterQuery) ([]types.Log, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	if f.filterErr != nil {
		return nil, f.filterErr
	}
	f.queries = append(f.queries, q)

	var out []types.Log
	for _, l := range f.logs {
		if !slices.Contains(q.Addresses, l.Address) || len(l.Topics) == 0 || l.Topics[0] != q.Topics[0][0] {
			continue
		}
		if l.BlockNumber < q.FromBlock.Uint64() || l.BlockNumber > q.ToBlock.Uint64() {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (f *fakeLedger) CurrentRound(context.Context) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.round, f.err
}

func (f *fakeLedger) EarningsPoolForRound(_ context.Context, transcoder common.Address, round uint64) (EarningsPool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.poolRounds = append(f.poolRounds, round)

	if p, ok := f.pools[transcoder]; ok {
		return p, f.err
	}
	return EarningsPool{TotalStake: new(big.Int), RewardCut: new(big.Int), FeeShare: new(big.Int)}, f.err
}

func (f *fakeLedger) TranscoderFeeShare(_ context.Context, transcoder common.Address) (*big.Int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return valueOrZero(f.feeShares[transcoder]), f.err
}

func (f *fakeLedger) TranscoderTotalStake(_ context.Context, transcoder common.Address) (*big.Int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return valueOrZero(f.stakes[transcoder]), f.err
}

func (f *fakeLedger) FirstTranscoderInPool(context.Context) (common.Address, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.pool) == 0 {
		return common.Address{}, f.err
	}
	return f.pool[0], f.err
}

func (f *fakeLedger) NextTranscoderInPool(_ context.Context, transcoder common.Address) (common.Address, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	i := slices.Index(f.pool, transcoder)
	if i < 0 || i+1 >= len(f.pool) {
		return common.Address{}, f.err
	}
	return f.pool[i+1], f.err
}

func (f *fakeLedger) TranscoderPoolSize(context.Context) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.poolSizeFailures > 0 {
		f.poolSizeFailures--
		return 0, errors.New("pool size unavailable")
	}
	return uint64(len(f.pool)), f.err
}

func (f *fakeLedger) addLogs(logs ...types.Log) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logs = append(f.logs, logs...)
}

func valueOrZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(v)
}

// memAccumulators is an in-memory AccumulatorStorage.
type memAccumulators struct {
	mu    sync.Mutex
	m     map[common.Address]Accumulator
	saves int
}

func newMemAccumulators() *memAccumulators {
	return &memAccumulators{m: make(map[common.Address]Accumulator)}
}

func (m *memAccumulators) LoadAccumulator(_ context.Context, orchestrator common.Address) (Accumulator, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneAccumulator(m.m[orchestrator]), nil
}

func (m *memAccumulators) SaveAccumulator(_ context.Context, orchestrator common.Address, acc Accumulator) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.m[orchestrator] = cloneAccumulator(acc)
	m.saves++
	return nil
}

func (m *memAccumulators) get(orchestrator common.Address) Accumulator {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneAccumulator(m.m[orchestrator])
}

func cloneAccumulator(a Accumulator) Accumulator {
	return Accumulator{
		Values: slices.Clone(a.Values),
		Shares: slices.Clone(a.Shares),
		Cursor: a.Cursor,
	}
}

func word(v *big.Int) []byte {
	return common.BigToHash(v).Bytes()
}

func addressTopic(addr common.Address) common.Hash {
	return common.BytesToHash(addr.Bytes())
}

func newRoundLog(block, round uint64) types.Log {
	return types.Log{
		Address:     testContracts.RoundsManager,
		Topics:      []common.Hash{newRoundTopic, common.BigToHash(new(big.Int).SetUint64(round))},
		BlockNumber: block,
	}
}

func rewardLog(block uint64, index uint, caller common.Address, amount *big.Int) types.Log {
	return types.Log{
		Address:     testContracts.BondingManager,
		Topics:      []common.Hash{rewardTopic, addressTopic(caller)},
		Data:        word(amount),
		BlockNumber: block,
		Index:       index,
		TxHash:      common.BigToHash(big.NewInt(int64(block))),
	}
}

func cutLog(block uint64, index uint, caller common.Address, rewardCut, feeShare *big.Int) types.Log {
	return types.Log{
		Address:     testContracts.BondingManager,
		Topics:      []common.Hash{transcoderUpdateTopic, addressTopic(caller)},
		Data:        append(word(rewardCut), word(feeShare)...),
		BlockNumber: block,
		Index:       index,
	}
}

func ticketLog(block uint64, index uint, sender, recipient common.Address, value *big.Int) types.Log {
	return types.Log{
		Address:     testContracts.TicketBroker,
		Topics:      []common.Hash{winningTicketRedeemedTopic, addressTopic(sender), addressTopic(recipient)},
		Data:        word(value),
		BlockNumber: block,
		Index:       index,
	}
}

// lpt and milliEth convert token amounts to wei.
func lpt(v int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(v), lptDecimals)
}

func milliEth(v int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(v), big.NewInt(1e15))
}
