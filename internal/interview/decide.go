package interview

// Action is the controller's verdict for one completed turn.
type Action int

const (
	ActionFollowUp Action = iota
	ActionAdvance
	ActionComplete
)

func (a Action) String() string {
	switch a {
	case ActionFollowUp:
		return "follow_up"
	case ActionAdvance:
		return "advance"
	case ActionComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Snapshot is the slice of session state the turn decision depends on.
type Snapshot struct {
	CurrentIsFollowUp bool
	FollowUpCount     int
	MainCount         int
	Target            int
}

// TurnInputs are the two independent probe signals for the current answer.
type TurnInputs struct {
	NeedsFollowUp       bool
	FollowUpRecommended bool
}

// Decide picks the next action. A follow-up needs at least one probe
// signal, a free probe slot on the current main question, and a current
// question that is not itself a follow-up; the is-follow-up guard holds
// even if the counter were reset wrongly. Completion requires both that no
// follow-up is owed and that enough main questions have been asked.
func Decide(s Snapshot, in TurnInputs) Action {
	shouldFollowUp := (in.NeedsFollowUp || in.FollowUpRecommended) &&
		s.FollowUpCount < 1 &&
		!s.CurrentIsFollowUp

	switch {
	case !shouldFollowUp && s.MainCount >= s.Target:
		return ActionComplete
	case shouldFollowUp:
		return ActionFollowUp
	default:
		return ActionAdvance
	}
}
