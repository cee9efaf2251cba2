package ethereum

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// bondingManagerABI lists the BondingManager views read by the watcher.
const bondingManagerABI = `[
	{"type":"function","name":"getTranscoderEarningsPoolForRound","stateMutability":"view",
	 "inputs":[{"name":"_transcoder","type":"address"},{"name":"_round","type":"uint256"}],
	 "outputs":[{"name":"totalStake","type":"uint256"},{"name":"transcoderRewardCut","type":"uint256"},
	            {"name":"transcoderFeeShare","type":"uint256"},{"name":"cumulativeRewardFactor","type":"uint256"},
	            {"name":"cumulativeFeeFactor","type":"uint256"}]},
	{"type":"function","name":"getTranscoder","stateMutability":"view",
	 "inputs":[{"name":"_transcoder","type":"address"}],
	 "outputs":[{"name":"lastRewardRound","type":"uint256"},{"name":"rewardCut","type":"uint256"},
	            {"name":"feeShare","type":"uint256"},{"name":"lastActiveStakeUpdateRound","type":"uint256"},
	            {"name":"activationRound","type":"uint256"},{"name":"deactivationRound","type":"uint256"},
	            {"name":"activeCumulativeRewards","type":"uint256"},{"name":"cumulativeRewards","type":"uint256"},
	            {"name":"cumulativeFees","type":"uint256"},{"name":"lastFeeRound","type":"uint256"}]},
	{"type":"function","name":"transcoderTotalStake","stateMutability":"view",
	 "inputs":[{"name":"_transcoder","type":"address"}],
	 "outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"getFirstTranscoderInPool","stateMutability":"view",
	 "inputs":[],"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"getNextTranscoderInPool","stateMutability":"view",
	 "inputs":[{"name":"_transcoder","type":"address"}],"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"getTranscoderPoolSize","stateMutability":"view",
	 "inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"isRegisteredTranscoder","stateMutability":"view",
	 "inputs":[{"name":"_transcoder","type":"address"}],"outputs":[{"name":"","type":"bool"}]}
]`

// roundsManagerABI lists the RoundsManager views read by the watcher.
const roundsManagerABI = `[
	{"type":"function","name":"currentRound","stateMutability":"view",
	 "inputs":[],"outputs":[{"name":"","type":"uint256"}]}
]`

var (
	bondingManager = mustParseABI(bondingManagerABI)
	roundsManager  = mustParseABI(roundsManagerABI)
)

func mustParseABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(err)
	}
	return parsed
}
