package server

import (
	"encoding/json"
	"net/http"

	"drifter-server/internal/engine"
)

// DebugHandler предоставляет доступ к внутреннему состоянию симуляции.
// Чтение без синхронизации с игровым циклом: для отладки этого достаточно.
type DebugHandler struct {
	Service *engine.GameService
}

func NewDebugHandler(s *engine.GameService) *DebugHandler {
	return &DebugHandler{Service: s}
}

// RegisterRoutes регистрирует debug-эндпоинты.
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/npcs", h.handleDumpNPCs)
	mux.HandleFunc("/debug/alerts", h.handleDumpAlerts)
	mux.HandleFunc("/debug/combat", h.handleDumpCombat)
}

// /debug/npcs - дамп симуляционных записей NPC (позиции, маршруты)
func (h *DebugHandler) handleDumpNPCs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Service.Sim.NPCs())
}

// /debug/alerts - состояние тревоги каждого NPC
func (h *DebugHandler) handleDumpAlerts(w http.ResponseWriter, r *http.Request) {
	type AlertSummary struct {
		NPCID     string  `json:"npc_id"`
		State     string  `json:"state"`
		Level     float64 `json:"level"`
		Countdown float64 `json:"countdown"`
	}

	var summary []AlertSummary
	for _, npc := range h.Service.Sim.NPCs() {
		rec, ok := h.Service.Sim.Alerts().Record(npc.ID)
		if !ok {
			continue
		}
		summary = append(summary, AlertSummary{
			NPCID:     npc.ID,
			State:     rec.State.String(),
			Level:     rec.Level,
			Countdown: rec.Countdown,
		})
	}
	writeJSON(w, summary)
}

// /debug/combat - фаза, раунд и ростер активного боя
func (h *DebugHandler) handleDumpCombat(w http.ResponseWriter, r *http.Request) {
	combat := h.Service.Sim.Combat()

	type CombatSummary struct {
		Phase  string      `json:"phase"`
		Round  int         `json:"round"`
		Roster interface{} `json:"roster,omitempty"`
	}

	summary := CombatSummary{
		Phase: combat.Phase().String(),
		Round: combat.Round(),
	}
	if combat.Active() {
		summary.Roster = combat.Roster()
	}
	writeJSON(w, summary)
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")

	// Если data == nil (например, пустой список), возвращаем [], а не null
	if data == nil {
		w.Write([]byte("[]"))
		return
	}

	json.NewEncoder(w).Encode(data)
}
