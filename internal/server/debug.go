package server

import (
	"encoding/json"
	"net/http"

	"github.com/scottfrye/dnd/internal/engine"
)

// DebugHandler предоставляет доступ к внутреннему состоянию симуляции.
// Эндпоинты read-only; каждый берет состояние через методы сервиса,
// которые сами ходят под замком.
type DebugHandler struct {
	Service *engine.GameService
}

func NewDebugHandler(s *engine.GameService) *DebugHandler {
	return &DebugHandler{Service: s}
}

// RegisterRoutes регистрирует debug-эндпоинты.
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/entities", h.handleDumpEntities)
	mux.HandleFunc("/debug/events", h.handlePendingEvents)
	mux.HandleFunc("/debug/time", h.handleTime)
}

// /debug/entities - полный дамп мира, включая скрытые свойства AI.
func (h *DebugHandler) handleDumpEntities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Service.Snapshot())
}

// /debug/events - несработавшие отложенные события.
func (h *DebugHandler) handlePendingEvents(w http.ResponseWriter, r *http.Request) {
	pending := h.Service.PendingEvents()
	if len(pending) == 0 {
		writeJSON(w, nil)
		return
	}
	writeJSON(w, pending)
}

// /debug/time - тик и игровые часы.
func (h *DebugHandler) handleTime(w http.ResponseWriter, r *http.Request) {
	type timeView struct {
		Tick  int                   `json:"tick"`
		Clock engine.TimeComponents `json:"clock"`
	}
	writeJSON(w, timeView{
		Tick:  h.Service.CurrentTick(),
		Clock: h.Service.ClockComponents(),
	})
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")

	// Пустой список - это [], а не null.
	if data == nil {
		w.Write([]byte("[]"))
		return
	}

	json.NewEncoder(w).Encode(data)
}
