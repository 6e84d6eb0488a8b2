package server

import (
	"encoding/json"
	"net/http"

	"github.com/sihoon-0077/lotto-pattern2242289/pkg/stats"
)

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"service": "lotto-resonance",
	})
}

// handleRoot handles the API readiness banner
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "Lotto Resonance API Ready",
	})
}

// suggestionResponse is one ranked candidate as served to clients.
type suggestionResponse struct {
	ID             string          `json:"id"`
	Numbers        []int           `json:"numbers"`
	ResonanceScore float64         `json:"resonance_score"`
	Details        map[string]bool `json:"details"`
}

// handleGenerate returns ranked candidate suggestions
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	candidates := s.service.Suggestions(s.suggestionCount)

	data := make([]suggestionResponse, 0, len(candidates))
	for _, c := range candidates {
		data = append(data, suggestionResponse{
			ID:             c.ID,
			Numbers:        c.Numbers,
			ResonanceScore: stats.Round1(c.Score),
			Details:        c.Details,
		})
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   data,
	})
}

// handleStats returns calibrated weights and history depth
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data": map[string]interface{}{
			"weights":       s.service.Weights(),
			"history_count": s.service.HistoryCount(),
		},
	})
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
