// README: Dialogue state enumeration and its transition table.
package types

type DialogueState string

const (
	StateInitial       DialogueState = "initial"
	StateGatheringInfo DialogueState = "gathering_info"
	StateModifying     DialogueState = "modifying"
	StateConfirming    DialogueState = "confirming"
	StateCompleted     DialogueState = "completed"
)

// AllowedTransitions represents the dialogue flow as code. Reset to StateInitial is always allowed.
var AllowedTransitions = map[DialogueState][]DialogueState{
	StateInitial:       {StateGatheringInfo, StateModifying},
	StateGatheringInfo: {StateGatheringInfo, StateModifying, StateConfirming, StateCompleted},
	StateModifying:     {StateGatheringInfo, StateModifying, StateConfirming, StateCompleted},
	StateConfirming:    {StateGatheringInfo, StateModifying, StateConfirming, StateCompleted},
	StateCompleted:     {},
}

func CanTransition(from, to DialogueState) bool {
	if to == StateInitial {
		return true
	}
	for _, s := range AllowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Collecting reports whether the state interprets short replies as slot answers.
func (s DialogueState) Collecting() bool {
	return s == StateGatheringInfo || s == StateModifying
}
