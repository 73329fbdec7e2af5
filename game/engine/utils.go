package engine

import "strings"

// Mobility summarizes how much freedom a player has on a board
type Mobility struct {
	Player        Occupant `json:"player"`
	Pieces        int      `json:"pieces"`
	MovablePieces int      `json:"movable_pieces"`
	Destinations  int      `json:"destinations"`
	JumpMoves     int      `json:"jump_moves"`
	LongestChain  int      `json:"longest_chain"`
}

// AnalyzeMobility runs a reachability search for every piece of player
func AnalyzeMobility(board *Board, player Occupant) Mobility {
	m := Mobility{Player: player}
	for _, p := range board.Pieces(player) {
		m.Pieces++
		reach := FindReachable(board, p)
		if len(reach) == 0 {
			continue
		}
		m.MovablePieces++
		m.Destinations += len(reach)
		for _, j := range reach {
			if j > 0 {
				m.JumpMoves++
			}
		}
		if chain := reach.MaxJumps(); chain > m.LongestChain {
			m.LongestChain = chain
		}
	}
	return m
}

// RenderSelection draws the board with the selected piece as '*' and each
// destination as its jump count ('+' for ten or more)
func RenderSelection(board *Board, sel *Selection) string {
	if sel == nil {
		return board.String()
	}

	var sb strings.Builder
	for r := 0; r < board.Rows; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < board.Cols; c++ {
			p := Position{Row: r, Col: c}
			switch jumps, ok := sel.Reachable.Jumps(p); {
			case p == sel.Origin:
				sb.WriteByte('*')
			case ok && jumps < 10:
				sb.WriteByte(byte('0' + jumps))
			case ok:
				sb.WriteByte('+')
			default:
				sb.WriteByte(OccupantChar(board.at(p)))
			}
		}
	}
	return sb.String()
}
