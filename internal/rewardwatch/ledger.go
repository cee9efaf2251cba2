package rewardwatch

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Event topics watched on the source chain.
var (
	// NewRound(uint256 indexed round, bytes32 blockHash) on the RoundsManager.
	newRoundTopic = common.HexToHash("0x22f2fc17c5daf07db2379b3a03a8ef20a183f761097a58fce219c8a14619e786")

	// TranscoderUpdate(address indexed transcoder, uint256 rewardCut, uint256 feeShare) on the BondingManager.
	transcoderUpdateTopic = common.HexToHash("0x7346854431dbb3eb8e373c604abf89e90f4865b8447e1e2834d7b3e4677bf544")

	// Reward(address indexed transcoder, uint256 amount) on the BondingManager.
	rewardTopic = common.HexToHash("0x619caafabdd75649b302ba8419e48cccf64f37f1983ac4727cfb38b57703ffc9")

	// WinningTicketRedeemed(address indexed sender, address indexed recipient, uint256 faceValue, ...) on the TicketBroker.
	winningTicketRedeemedTopic = common.HexToHash("0x8b87351a208c06e3ceee59d80725fd77a23b4129e1b51ca231fc89b40712649c")
)

// ErrMalformedLog is returned when a log does not carry the topics or data
// its signature requires.
var ErrMalformedLog = errors.New("malformed log")

// HeightReader reports the latest block number of a chain.
type HeightReader interface {
	BlockNumber(ctx context.Context) (uint64, error)
}

// EarningsPool is the per-round snapshot the BondingManager keeps for an
// orchestrator. Cuts are expressed in parts per million of 100%.
type EarningsPool struct {
	TotalStake *big.Int
	RewardCut  *big.Int
	FeeShare   *big.Int
}

// Ledger is the read-only view of the source chain used by the scanners.
type Ledger interface {
	HeightReader

	// FilterLogs returns the logs matching q, ordered by block and index.
	FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]types.Log, error)

	// CurrentRound returns the round number the RoundsManager is in.
	CurrentRound(ctx context.Context) (uint64, error)

	// EarningsPoolForRound returns the earnings pool recorded for transcoder in round.
	EarningsPoolForRound(ctx context.Context, transcoder common.Address, round uint64) (EarningsPool, error)

	// TranscoderFeeShare returns the fee share currently configured by transcoder.
	TranscoderFeeShare(ctx context.Context, transcoder common.Address) (*big.Int, error)

	// TranscoderTotalStake returns the stake currently delegated to transcoder, in wei.
	TranscoderTotalStake(ctx context.Context, transcoder common.Address) (*big.Int, error)

	// FirstTranscoderInPool, NextTranscoderInPool and TranscoderPoolSize expose
	// the sorted linked list backing the active set.
	FirstTranscoderInPool(ctx context.Context) (common.Address, error)
	NextTranscoderInPool(ctx context.Context, transcoder common.Address) (common.Address, error)
	TranscoderPoolSize(ctx context.Context) (uint64, error)
}

// Contracts holds the addresses whose logs are filtered.
type Contracts struct {
	BondingManager common.Address
	RoundsManager  common.Address
	TicketBroker   common.Address
}

// filterLogs queries logs of a single topic emitted by contract in [from, to].
func (s *service) filterLogs(ctx context.Context, contract common.Address, topic common.Hash, from, to uint64) ([]types.Log, error) {
	logs, err := s.ledger.FilterLogs(ctx, ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(from),
		ToBlock:   new(big.Int).SetUint64(to),
		Addresses: []common.Address{contract},
		Topics:    [][]common.Hash{{topic}},
	})
	if err != nil {
		return nil, ledgerErr(fmt.Sprintf("filter logs %s", topic.TerminalString()), err)
	}

	return logs, nil
}

// topicAddress decodes the address stored in the indexed topic i.
func topicAddress(l types.Log, i int) (common.Address, error) {
	if len(l.Topics) <= i {
		return common.Address{}, decodeErr(l, fmt.Errorf("%w: missing topic %d", ErrMalformedLog, i))
	}

	return common.BytesToAddress(l.Topics[i].Bytes()), nil
}

// dataWord decodes the i-th 32-byte word of the log data as an unsigned integer.
func dataWord(l types.Log, i int) (*big.Int, error) {
	end := (i + 1) * common.HashLength
	if len(l.Data) < end {
		return nil, decodeErr(l, fmt.Errorf("%w: data has %d bytes, word %d needs %d", ErrMalformedLog, len(l.Data), i, end))
	}

	return new(big.Int).SetBytes(l.Data[end-common.HashLength : end]), nil
}
