package domain

// ChallengeKind identifies one liveness action the user must perform.
type ChallengeKind string

const (
	ChallengeBlink         ChallengeKind = "blink"
	ChallengeTurnHeadLeft  ChallengeKind = "turn_head_left"
	ChallengeTurnHeadRight ChallengeKind = "turn_head_right"
	ChallengeNod           ChallengeKind = "nod"
	ChallengeSmile         ChallengeKind = "smile"
)

// Challenge pairs a kind with its threshold and the instruction shown to
// the user. The threshold unit depends on the kind: a probability for
// blink/smile, degrees for the head turns, degrees of roll deviation for
// the nod.
type Challenge struct {
	Kind        ChallengeKind `json:"kind"`
	Instruction string        `json:"instruction"`
	Threshold   float64       `json:"threshold"`
}

// DefaultChallenges returns the fixed challenge sequence. The ordering is
// configuration, never mutated at runtime; sessions walk it front to back.
func DefaultChallenges() []Challenge {
	return []Challenge{
		{Kind: ChallengeBlink, Instruction: "Blink both eyes", Threshold: 0.3},
		{Kind: ChallengeTurnHeadLeft, Instruction: "Turn your head to the left", Threshold: -15},
		{Kind: ChallengeTurnHeadRight, Instruction: "Turn your head to the right", Threshold: 15},
		{Kind: ChallengeNod, Instruction: "Nod your head", Threshold: 1.5},
		{Kind: ChallengeSmile, Instruction: "Smile", Threshold: 0.7},
	}
}
