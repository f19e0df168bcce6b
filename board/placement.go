package board

import (
	"math/bits"
	"math/rand"
	"strings"

	"chess-search/engine"
)

// Piece kinds, indexing the second dimension of Placement.
const (
	Pawn = iota
	Knight
	Bishop
	Rook
	Queen
	King
	kinds
)

const (
	white = 0
	black = 1
)

// Placement is a backend-neutral snapshot of where the pieces stand:
// one bitboard per colour and kind, square 0 = a1, 63 = h8.
type Placement [2][kinds]uint64

// Placer is implemented by every board in this package. Evaluation and
// material rules only need this view of a position.
type Placer interface {
	Placement() Placement
	SideToMove() engine.Side
}

func (p *Placement) Count(color, kind int) int {
	return bits.OnesCount64(p[color][kind])
}

// Mirror swaps the colours and flips the board vertically.
func (p Placement) Mirror() Placement {
	var m Placement
	for c := 0; c < 2; c++ {
		for k := 0; k < kinds; k++ {
			m[1-c][k] = bits.ReverseBytes64(p[c][k])
		}
	}
	return m
}

// Zobrist-style keys for boards whose move generator does not hash for us.
var (
	pieceKeys  [2][kinds][64]uint64
	sideKey    uint64
	castleKeys [4]uint64 // K, Q, k, q
	epKeys     [8]uint64 // by file
)

func init() {
	r := rand.New(rand.NewSource(0x5eed))
	for c := 0; c < 2; c++ {
		for k := 0; k < kinds; k++ {
			for sq := 0; sq < 64; sq++ {
				pieceKeys[c][k][sq] = r.Uint64()
			}
		}
	}
	sideKey = r.Uint64()
	for i := range castleKeys {
		castleKeys[i] = r.Uint64()
	}
	for i := range epKeys {
		epKeys[i] = r.Uint64()
	}
}

// placementKey fingerprints a placement plus the side to move.
func placementKey(p *Placement, whiteToMove bool) uint64 {
	var key uint64
	for c := 0; c < 2; c++ {
		for k := 0; k < kinds; k++ {
			for bb := p[c][k]; bb != 0; bb &= bb - 1 {
				key ^= pieceKeys[c][k][bits.TrailingZeros64(bb)]
			}
		}
	}
	if !whiteToMove {
		key ^= sideKey
	}
	return key
}

// castlingKey hashes the FEN castling field ("KQkq", "-", ...).
func castlingKey(rights string) uint64 {
	var key uint64
	for i, c := range "KQkq" {
		if strings.ContainsRune(rights, c) {
			key ^= castleKeys[i]
		}
	}
	return key
}
