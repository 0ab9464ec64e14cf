package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"shogi3d/engine"
	"shogi3d/evaluator"
	"shogi3d/game"
	"shogi3d/searcher"
)

// Server is a thin JSON shell over the session manager and the search
// engine. It holds no game logic of its own.
type Server struct {
	manager     *Manager
	evaluate    evaluator.Evaluator
	simulations int
	minDuration time.Duration
}

type ServerOption func(s *Server)

func WithEvaluator(eval evaluator.Evaluator) ServerOption {
	return func(s *Server) {
		if eval != nil {
			s.evaluate = eval
		}
	}
}

func WithSimulations(simulations int) ServerOption {
	return func(s *Server) {
		if simulations > 0 {
			s.simulations = simulations
		}
	}
}

// WithMinDuration sets the pacing floor for engine replies.
func WithMinDuration(d time.Duration) ServerOption {
	return func(s *Server) {
		if d >= 0 {
			s.minDuration = d
		}
	}
}

func NewServer(options ...ServerOption) *Server {
	s := &Server{ // Default values
		manager:     NewManager(),
		evaluate:    evaluator.NewMaterial(),
		simulations: searcher.DefaultSimulations,
		minDuration: 500 * time.Millisecond,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	switch r.URL.Path {
	case "/api/new_game":
		s.handleNewGame(w, r)
	case "/api/state":
		s.handleState(w, r)
	case "/api/legal":
		s.handleLegal(w, r)
	case "/api/move":
		s.handleMove(w, r)
	case "/api/engine_move":
		s.handleEngineMove(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	session := s.manager.NewGame()
	log.Info().Str("game", session.ID).Msg("new game")

	var resp StateResponse
	session.WithPosition(func(pos *game.Position) bool {
		resp = stateResponse(session.ID, pos)
		return false
	})
	writeJSON(w, resp)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	var req StateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	session, err := s.manager.Get(req.GameID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	var resp StateResponse
	session.WithPosition(func(pos *game.Position) bool {
		resp = stateResponse(session.ID, pos)
		return false
	})
	writeJSON(w, resp)
}

func (s *Server) handleLegal(w http.ResponseWriter, r *http.Request) {
	var req StateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	session, err := s.manager.Get(req.GameID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	var resp struct {
		GameID     string    `json:"game_id"`
		ToMove     string    `json:"to_move"`
		LegalMoves []MoveDTO `json:"legal_moves"`
	}
	session.WithPosition(func(pos *game.Position) bool {
		resp.GameID = session.ID
		resp.ToMove = pos.Turn.String()
		resp.LegalMoves = movesToDTO(pos.LegalMoves())
		return false
	})
	writeJSON(w, resp)
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	session, err := s.manager.Get(req.GameID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	move, err := dtoToMove(req.Move)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var resp StateResponse
	applied := false
	session.WithPosition(func(pos *game.Position) bool {
		applied = pos.MakeMove(move)
		resp = stateResponse(session.ID, pos)
		return applied
	})
	if !applied {
		http.Error(w, "illegal move", http.StatusBadRequest)
		return
	}
	writeJSON(w, resp)
}

func (s *Server) handleEngineMove(w http.ResponseWriter, r *http.Request) {
	var req EngineMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	session, err := s.manager.Get(req.GameID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	simulations := s.simulations
	if req.Simulations > 0 {
		simulations = req.Simulations
	}
	floor := s.minDuration
	if req.MinDurationMs > 0 {
		floor = time.Duration(req.MinDurationMs) * time.Millisecond
	}
	agent := engine.NewSearchAgent(searcher.NewMCTS(s.evaluate,
		searcher.WithSimulations(simulations), searcher.WithMetrics()))

	var resp EngineMoveResponse
	var searchErr error
	session.WithPosition(func(pos *game.Position) bool {
		result := <-engine.RequestMove(agent, pos, floor)
		if result.Err != nil {
			searchErr = result.Err
			return false
		}
		if !pos.MakeMove(result.Move) {
			panic("searched move failed to apply")
		}
		resp = EngineMoveResponse{
			StateResponse: stateResponse(session.ID, pos),
			EngineMove:    moveToDTO(result.Move),
			Simulations:   result.Metric.Simulations,
			Aborted:       result.Metric.Aborted,
			TimeMs:        result.Metric.Duration.Milliseconds(),
		}
		return true
	})
	if searchErr != nil {
		log.Warn().Err(searchErr).Str("game", session.ID).Msg("engine move failed")
		http.Error(w, searchErr.Error(), http.StatusConflict)
		return
	}
	writeJSON(w, resp)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("writing response failed")
	}
}
