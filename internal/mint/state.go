// Package mint turns on-chain presale state into the single call-to-action
// the mint page shows, and runs the actions behind it.
package mint

import "github.com/ethereum/go-ethereum/common"

// UIState is the derived state of the mint page.
type UIState int

const (
	Disconnected UIState = iota
	Loading
	OwnerCanStart
	PresaleNotStarted
	PresaleActiveMintable
	PublicMintable
)

func (s UIState) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Loading:
		return "loading"
	case OwnerCanStart:
		return "owner-can-start"
	case PresaleNotStarted:
		return "presale-not-started"
	case PresaleActiveMintable:
		return "presale-active"
	case PublicMintable:
		return "public-mint"
	default:
		return "unknown"
	}
}

// Snapshot is the last successfully read contract state.
type Snapshot struct {
	Owner          common.Address
	PresaleStarted bool
	PresaleEnd     int64 // unix seconds, zero until the presale starts
	TokenIDsMinted uint64
	MaxTokenIDs    uint64
}

// Flags are the inputs of the decision table.
type Flags struct {
	Connected      bool
	Loading        bool
	IsOwner        bool
	PresaleStarted bool
	PresaleEnded   bool
}

type rule struct {
	when  func(Flags) bool
	state UIState
}

// rules is evaluated top to bottom; the first match wins. The last two rows
// cover every remaining combination, so Derive is total.
var rules = []rule{
	{func(f Flags) bool { return !f.Connected }, Disconnected},
	{func(f Flags) bool { return f.Loading }, Loading},
	{func(f Flags) bool { return f.IsOwner && !f.PresaleStarted }, OwnerCanStart},
	{func(f Flags) bool { return !f.PresaleStarted }, PresaleNotStarted},
	{func(f Flags) bool { return !f.PresaleEnded }, PresaleActiveMintable},
	{func(Flags) bool { return true }, PublicMintable},
}

// Derive maps flags to the page state.
func Derive(f Flags) UIState {
	for _, r := range rules {
		if r.when(f) {
			return r.state
		}
	}
	return Disconnected
}
