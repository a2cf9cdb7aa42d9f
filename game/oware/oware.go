// Package oware implements the abapa variant of the oware sowing game.
package oware

import (
	"fmt"
	"gametree/game"
	"strconv"
	"strings"
)

const (
	NumHouses     = 12
	HousesPerSide = NumHouses / 2
	InitialSeeds  = 4
	// A store holding more than half of the seeds decides the game.
	WinningStore = NumHouses * InitialSeeds / 2

	WinScore = 100
)

// Player identifies a side of the board. Player One owns houses 0-5, Player Two houses 6-11.
type Player uint8

const (
	One Player = iota
	Two
)

func (p Player) Opposite() Player {
	if p == One {
		return Two
	}
	return One
}

func (p Player) String() string {
	if p == One {
		return "1"
	}
	return "2"
}

func (p Player) owns(house int) bool {
	if p == One {
		return house < HousesPerSide
	}
	return house >= HousesPerSide
}

// Position is an oware state. Houses are numbered counter-clockwise from Player One's left.
type Position struct {
	houses [NumHouses]int
	stores [2]int
	turn   Player
}

// New returns the opening position with Player One to move.
func New() Position {
	var p Position
	for i := range p.houses {
		p.houses[i] = InitialSeeds
	}
	return p
}

func (p Position) Turn() Player {
	return p.turn
}

func (p Position) Houses() [NumHouses]int {
	return p.houses
}

func (p Position) Store(player Player) int {
	return p.stores[player]
}

// Play sows the seeds of house one by one into the following houses, skipping the emptied
// house itself, then captures backwards from the last house while it lies on the opponent's
// side and holds two or three seeds.
func (p Position) Play(house int) game.Position[int, Player] {
	if house < 0 || house >= NumHouses || !p.turn.owns(house) || p.houses[house] == 0 || p.IsWin() {
		panic(fmt.Sprintf("%v: house %d", game.ErrIllegalMove, house))
	}

	next := p
	seeds := next.houses[house]
	next.houses[house] = 0
	last := house
	for seeds > 0 {
		last = (last + 1) % NumHouses
		if last == house {
			continue
		}
		next.houses[last]++
		seeds--
	}

	for h := last; !p.turn.owns(h); h = (h + NumHouses - 1) % NumHouses {
		if n := next.houses[h]; n != 2 && n != 3 {
			break
		}
		next.stores[p.turn] += next.houses[h]
		next.houses[h] = 0
	}

	next.turn = p.turn.Opposite()
	return next
}

func (p Position) LegalMoves() []int {
	if p.stores[One] > WinningStore || p.stores[Two] > WinningStore {
		return nil
	}
	moves := make([]int, 0, HousesPerSide)
	start := 0
	if p.turn == Two {
		start = HousesPerSide
	}
	for h := start; h < start+HousesPerSide; h++ {
		if p.houses[h] > 0 {
			moves = append(moves, h)
		}
	}
	return moves
}

// IsWin reports whether the player who moved last has won: either store holds a majority of
// the seeds or the player to move has no seeds left to sow.
func (p Position) IsWin() bool {
	return len(p.LegalMoves()) == 0
}

// Evaluate scores a decided position ±WinScore and an undecided one by the difference between
// player's store and the opponent's.
func (p Position) Evaluate(player Player) float64 {
	if p.IsWin() {
		if p.turn == player {
			return -WinScore
		}
		return WinScore
	}
	return float64(p.stores[player] - p.stores[player.Opposite()])
}

// Encode returns the form read by Parse: the twelve house counts, the two stores and the player
// to move, separated by spaces.
func (p Position) Encode() string {
	fields := make([]string, 0, NumHouses+3)
	for _, n := range p.houses {
		fields = append(fields, strconv.Itoa(n))
	}
	fields = append(fields, strconv.Itoa(p.stores[One]), strconv.Itoa(p.stores[Two]), p.turn.String())
	return strings.Join(fields, " ")
}

func (p Position) String() string {
	h := p.houses
	return fmt.Sprintf("%2d | %2d %2d %2d %2d %2d %2d\n     %2d %2d %2d %2d %2d %2d | %2d",
		p.stores[Two], h[11], h[10], h[9], h[8], h[7], h[6],
		h[0], h[1], h[2], h[3], h[4], h[5], p.stores[One])
}

// Parse reads the form written by Encode.
func Parse(s string) (Position, error) {
	fields := strings.Fields(s)
	if len(fields) != NumHouses+3 {
		return Position{}, fmt.Errorf("%w: want %d fields, got %d", game.ErrParse, NumHouses+3, len(fields))
	}

	var p Position
	total := 0
	for i := 0; i < NumHouses+2; i++ {
		n, err := strconv.Atoi(fields[i])
		if err != nil || n < 0 {
			return Position{}, fmt.Errorf("%w: bad seed count %q", game.ErrParse, fields[i])
		}
		if i < NumHouses {
			p.houses[i] = n
		} else {
			p.stores[i-NumHouses] = n
		}
		total += n
	}
	if total != NumHouses*InitialSeeds {
		return Position{}, fmt.Errorf("%w: %d seeds on the board, want %d", game.ErrParse, total, NumHouses*InitialSeeds)
	}

	switch fields[NumHouses+2] {
	case "1":
		p.turn = One
	case "2":
		p.turn = Two
	default:
		return Position{}, fmt.Errorf("%w: unknown player %q", game.ErrParse, fields[NumHouses+2])
	}
	return p, nil
}

// ParseMove reads a house index typed by a human player.
func ParseMove(s string) (int, error) {
	house, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: house %q", game.ErrParse, s)
	}
	return house, nil
}
