package engine

import "fmt"

// Score is a search value from the perspective of the side to move at the node
// where it was computed.
type Score int32

const (
	// Win is the value of delivering checkmate at the root.
	Win Score = 100000
	// MateThreshold separates material scores from forced-mate scores. Anything
	// beyond it encodes the ply distance to mate as Win - |score|.
	MateThreshold Score = Win - 100
	// Infinity bounds the root window.
	Infinity Score = Win + 1
	DrawScore Score = 0
)

// IsMate reports whether s encodes a forced mate for either side.
func (s Score) IsMate() bool {
	return s > MateThreshold || s < -MateThreshold
}

// MateIn converts a mate score into full moves: positive when the side to move
// mates, negative when it gets mated, 0 for ordinary scores.
func (s Score) MateIn() int {
	switch {
	case s > MateThreshold:
		return int(Win-s+1) / 2
	case s < -MateThreshold:
		return -int(Win+s+1) / 2
	}
	return 0
}

// String renders the score the way protocol output expects it ("cp 35" or "mate 2").
func (s Score) String() string {
	if s.IsMate() {
		return fmt.Sprintf("mate %d", s.MateIn())
	}
	return fmt.Sprintf("cp %d", int32(s))
}

// matePlies is the distance to mate in plies, for either side.
func (s Score) matePlies() int {
	return int(Win - Max(s, -s))
}

// Absolute returns the score from the first player's point of view.
func (s Score) Absolute(mover Side) Score {
	if mover == Second {
		return -s
	}
	return s
}
