package server

import (
	"fmt"

	"shogi3d/game"
)

// MoveDTO is the wire form of a move: board moves carry from/to, drop
// moves carry the dropped kind's short name and to.
type MoveDTO struct {
	From    *game.Coord `json:"from,omitempty"`
	To      game.Coord  `json:"to"`
	Promote bool        `json:"promote,omitempty"`
	Drop    string      `json:"drop,omitempty"`
}

func moveToDTO(m game.Move) MoveDTO {
	if m.IsDrop() {
		return MoveDTO{To: m.To, Drop: m.Drop.String()}
	}
	from := m.From
	return MoveDTO{From: &from, To: m.To, Promote: m.Promote}
}

func movesToDTO(ms []game.Move) []MoveDTO {
	out := make([]MoveDTO, len(ms))
	for i, m := range ms {
		out[i] = moveToDTO(m)
	}
	return out
}

func dtoToMove(dto MoveDTO) (game.Move, error) {
	if dto.Drop != "" {
		kind, ok := game.ParseKind(dto.Drop)
		if !ok {
			return game.Move{}, fmt.Errorf("unknown piece kind %q", dto.Drop)
		}
		return game.Move{To: dto.To, Drop: kind}, nil
	}
	if dto.From == nil {
		return game.Move{}, fmt.Errorf("board move needs a from coordinate")
	}
	return game.Move{From: *dto.From, To: dto.To, Promote: dto.Promote}, nil
}

// PieceDTO is one occupied square.
type PieceDTO struct {
	game.Coord
	Owner string `json:"owner"`
	Kind  string `json:"kind"`
}

// StateResponse is the full client-visible game state; every mutating
// endpoint returns it so clients never need a follow-up read.
type StateResponse struct {
	GameID     string                    `json:"game_id"`
	Pieces     []PieceDTO                `json:"pieces"`
	Hands      map[string]map[string]int `json:"hands"`
	ToMove     string                    `json:"to_move"`
	Status     string                    `json:"status"`
	Winner     string                    `json:"winner,omitempty"`
	MoveCount  int                       `json:"move_count"`
	LegalMoves []MoveDTO                 `json:"legal_moves"`
}

func stateResponse(id string, pos *game.Position) StateResponse {
	var pieces []PieceDTO
	for z := 0; z < game.Depth; z++ {
		for y := 0; y < game.Height; y++ {
			for x := 0; x < game.Width; x++ {
				c := game.Coord{X: x, Y: y, Z: z}
				pc := pos.PieceAt(c)
				if pc == 0 {
					continue
				}
				pieces = append(pieces, PieceDTO{
					Coord: c,
					Owner: pc.Owner().String(),
					Kind:  pc.Kind().String(),
				})
			}
		}
	}

	hands := make(map[string]map[string]int, 2)
	for _, owner := range []game.Player{game.Sente, game.Gote} {
		counts := make(map[string]int)
		for _, kind := range []game.Kind{game.Rook, game.Bishop, game.Gold, game.Silver, game.Knight, game.Lance, game.Pawn} {
			if n := pos.HandCount(owner, kind); n > 0 {
				counts[kind.String()] = n
			}
		}
		hands[owner.String()] = counts
	}

	resp := StateResponse{
		GameID:     id,
		Pieces:     pieces,
		Hands:      hands,
		ToMove:     pos.Turn.String(),
		Status:     pos.Status.String(),
		MoveCount:  pos.MoveCount(),
		LegalMoves: movesToDTO(pos.LegalMoves()),
	}
	if winner := pos.Winner(); winner != game.NoPlayer {
		resp.Winner = winner.String()
	}
	return resp
}

// StateRequest addresses an existing game.
type StateRequest struct {
	GameID string `json:"game_id"`
}

// MoveRequest plays one move in an existing game.
type MoveRequest struct {
	GameID string  `json:"game_id"`
	Move   MoveDTO `json:"move"`
}

// EngineMoveRequest asks the server's agent to move in an existing game.
type EngineMoveRequest struct {
	GameID        string `json:"game_id"`
	Simulations   int    `json:"simulations,omitempty"`
	MinDurationMs int64  `json:"min_duration_ms,omitempty"`
}

// EngineMoveResponse reports the agent's move, search statistics, and the
// resulting state.
type EngineMoveResponse struct {
	StateResponse
	EngineMove  MoveDTO `json:"engine_move"`
	Simulations int     `json:"simulations"`
	Aborted     int     `json:"aborted"`
	TimeMs      int64   `json:"time_ms"`
}
