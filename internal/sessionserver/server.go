package sessionserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/udisondev/monbattle/internal/config"
	"github.com/udisondev/monbattle/internal/model"
	"github.com/udisondev/monbattle/internal/session"
)

const maxRequestSize = 64 << 10

// PathFeed is the websocket endpoint streaming session events.
const PathFeed = "/api/battles/feed"

// Server exposes the battle session API over HTTP.
type Server struct {
	store   Store
	rewards config.Rewards
	feed    *Feed
	mux     *http.ServeMux
}

// New creates a server backed by store.
func New(store Store, rewards config.Rewards) *Server {
	s := &Server{
		store:   store,
		rewards: rewards,
		feed:    NewFeed(),
		mux:     http.NewServeMux(),
	}
	s.mux.HandleFunc("POST "+session.PathBegin, s.handleBegin)
	s.mux.HandleFunc("POST "+session.PathComplete, s.handleComplete)
	s.mux.Handle("GET "+PathFeed, s.feed)
	s.mux.HandleFunc("GET /api/battles/{id}", s.handleGet)
	return s
}

// Feed returns the live event feed.
func (s *Server) Feed() *Feed {
	return s.feed
}

// Close disconnects feed subscribers. http.Server.Shutdown does not close
// hijacked connections.
func (s *Server) Close() {
	s.feed.Close()
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleBegin(w http.ResponseWriter, r *http.Request) {
	var req session.BeginRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.OpponentID = strings.TrimSpace(req.OpponentID)
	req.CombatantID = strings.TrimSpace(req.CombatantID)
	if req.OpponentID == "" || req.CombatantID == "" {
		writeError(w, http.StatusBadRequest, "opponentId and combatantId are required")
		return
	}

	bs, err := s.store.Create(r.Context(), req.OpponentID, req.CombatantID)
	if err != nil {
		slog.Error("creating battle session", "opponent", req.OpponentID, "combatant", req.CombatantID, "error", err)
		writeError(w, http.StatusInternalServerError, "could not open battle session")
		return
	}

	slog.Info("battle session opened",
		"session", bs.ID,
		"opponent", bs.OpponentID,
		"combatant", bs.CombatantID)
	s.feed.Publish(Event{
		Type:        EventOpened,
		SessionID:   bs.ID,
		OpponentID:  bs.OpponentID,
		CombatantID: bs.CombatantID,
	})
	writeData(w, http.StatusOK, session.BeginResult{BattleSessionID: bs.ID})
}

func (s *Server) handleComplete(w http.ResponseWriter, r *http.Request) {
	var req session.CompleteRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.BattleSessionID == "" {
		writeError(w, http.StatusBadRequest, "battleSessionId is required")
		return
	}
	if req.DamageDealt < 0 || req.DamageTaken < 0 || req.FinalHP < 0 {
		writeError(w, http.StatusBadRequest, "damage and hp must not be negative")
		return
	}

	rw := DeriveRewards(s.rewards, req.Won, req.DamageDealt)
	result := model.BattleResult{
		Won:         req.Won,
		DamageDealt: req.DamageDealt,
		DamageTaken: req.DamageTaken,
		FinalHP:     req.FinalHP,
		Experience:  rw.Experience,
		Coins:       rw.Coins,
	}

	bs, err := s.store.Complete(r.Context(), req.BattleSessionID, result)
	switch {
	case errors.Is(err, model.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, model.ErrSessionClosed):
		// повторный отчёт не начисляет награду
		writeData(w, http.StatusOK, session.Outcome{Accepted: false})
		return
	case err != nil:
		slog.Error("completing battle session", "session", req.BattleSessionID, "error", err)
		writeError(w, http.StatusInternalServerError, "could not complete battle session")
		return
	}

	slog.Info("battle session completed",
		"session", req.BattleSessionID,
		"won", req.Won,
		"dealt", req.DamageDealt,
		"taken", req.DamageTaken,
		"exp", rw.Experience,
		"coins", rw.Coins)
	s.feed.Publish(Event{
		Type:        EventCompleted,
		SessionID:   bs.ID,
		OpponentID:  bs.OpponentID,
		CombatantID: bs.CombatantID,
		Won:         req.Won,
		Rewards:     &rw,
	})
	writeData(w, http.StatusOK, session.Outcome{Accepted: true, DerivedRewards: &rw})
}

// SessionView is the read model returned by GET /api/battles/{id}.
type SessionView struct {
	ID          string           `json:"id"`
	OpponentID  string           `json:"opponentId"`
	CombatantID string           `json:"combatantId"`
	Status      string           `json:"status"`
	Won         bool             `json:"won"`
	DamageDealt int              `json:"damageDealt"`
	DamageTaken int              `json:"damageTaken"`
	FinalHP     int              `json:"finalHp"`
	Rewards     *session.Rewards `json:"rewards,omitempty"`
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	bs, err := s.store.Get(r.Context(), r.PathValue("id"))
	if errors.Is(err, model.ErrSessionNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		slog.Error("loading battle session", "session", r.PathValue("id"), "error", err)
		writeError(w, http.StatusInternalServerError, "could not load battle session")
		return
	}

	view := SessionView{
		ID:          bs.ID,
		OpponentID:  bs.OpponentID,
		CombatantID: bs.CombatantID,
		Status:      string(bs.Status),
	}
	if bs.Status == model.SessionCompleted {
		view.Won = bs.Result.Won
		view.DamageDealt = bs.Result.DamageDealt
		view.DamageTaken = bs.Result.DamageTaken
		view.FinalHP = bs.Result.FinalHP
		view.Rewards = &session.Rewards{Experience: bs.Result.Experience, Coins: bs.Result.Coins}
	}
	writeData(w, http.StatusOK, view)
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestSize))
	if err := dec.Decode(v); err != nil {
		return errors.New("malformed request body")
	}
	return nil
}

func writeData[T any](w http.ResponseWriter, status int, data T) {
	writeJSON(w, status, session.Envelope[T]{Success: true, Data: &data})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, session.Envelope[struct{}]{Success: false, Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("writing response", "error", err)
	}
}
