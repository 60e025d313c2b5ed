package api

import (
	"encoding/json"
	"net/http"

	"github.com/arvindmenon/literature-be/internal/controller"
	"github.com/arvindmenon/literature-be/internal/game"
	"github.com/gorilla/mux"
)

// Handlers contains the REST API handlers. The game itself is played over the
// socket; these endpoints cover lobby probing and history reads.
type Handlers struct {
	ctrl *controller.Controller
	hub  *Hub
}

// NewHandlers creates a new instance of Handlers.
func NewHandlers(ctrl *controller.Controller, hub *Hub) *Handlers {
	return &Handlers{ctrl: ctrl, hub: hub}
}

// RegisterRoutes registers all API routes.
func (h *Handlers) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/game/{code}/spots", h.GetSpots).Methods("GET")
	r.HandleFunc("/api/game/{code}/state", h.GetGameState).Methods("GET")
	r.HandleFunc("/api/game/{code}/chat", h.GetChatHistory).Methods("GET")
	r.HandleFunc("/api/health", h.Health).Methods("GET")

	// WebSocket endpoint
	r.HandleFunc("/ws", h.hub.WebSocketHandler)
}

// response helper function to send JSON responses
func response(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// errorResponse maps an engine failure onto an HTTP status.
func errorResponse(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	if game.IsKind(err, game.KindNotFound) {
		status = http.StatusNotFound
	}
	response(w, status, map[string]string{
		"kind":  string(game.KindOf(err)),
		"error": err.Error(),
	})
}

// GetSpots returns seat occupancy for a game, used before joining.
func (h *Handlers) GetSpots(w http.ResponseWriter, r *http.Request) {
	g, err := h.ctrl.Game(mux.Vars(r)["code"])
	if err != nil {
		errorResponse(w, err)
		return
	}
	response(w, http.StatusOK, g.Spots())
}

// GetGameState returns the shared snapshot with the display-collapsed log.
// Hands are never part of this view.
func (h *Handlers) GetGameState(w http.ResponseWriter, r *http.Request) {
	g, err := h.ctrl.Game(mux.Vars(r)["code"])
	if err != nil {
		errorResponse(w, err)
		return
	}
	snapshot := g.Snapshot()
	snapshot.Logs = CollapseLogs(snapshot.Logs)
	response(w, http.StatusOK, snapshot)
}

// GetChatHistory returns the chat side-channel of a game.
func (h *Handlers) GetChatHistory(w http.ResponseWriter, r *http.Request) {
	result, err := h.ctrl.ChatHistory(mux.Vars(r)["code"])
	if err != nil {
		errorResponse(w, err)
		return
	}
	response(w, http.StatusOK, result)
}

// Health reports liveness.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	response(w, http.StatusOK, map[string]string{"status": "ok"})
}
