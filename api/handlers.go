package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	leaderboardservice "github.com/scorequest/scorequest-backend/app/modules/leaderboard/application"
)

// standingResponse is one standing row in the JSON API.
type standingResponse struct {
	UserID         string `json:"user_id"`
	TotalScore     int    `json:"total_score"`
	GamesCompleted int    `json:"games_completed"`
	Rank           int    `json:"rank"`
}

type leaderboardResponse struct {
	EventID   uuid.UUID          `json:"event_id"`
	Standings []standingResponse `json:"standings"`
}

func eventIDParam(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "eventID"))
}

// handleGetLeaderboard serves an event's standings as JSON, rank ascending.
// An event with no standings yields an empty list, not a 404.
func (s *Server) handleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	eventID, err := eventIDParam(r)
	if err != nil {
		http.Error(w, "Invalid event id", http.StatusBadRequest)
		return
	}

	entries, err := s.leaderboard.GetStandings(r.Context(), eventID)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to fetch leaderboard: %v", err), http.StatusInternalServerError)
		return
	}

	resp := leaderboardResponse{
		EventID:   eventID,
		Standings: make([]standingResponse, len(entries)),
	}
	for i, e := range entries {
		resp.Standings[i] = standingResponse{
			UserID:         e.UserID,
			TotalScore:     e.TotalScore,
			GamesCompleted: e.GamesCompleted,
			Rank:           e.Rank,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, fmt.Sprintf("Failed to encode response: %v", err), http.StatusInternalServerError)
		return
	}
}

// handleExportLeaderboard serves an event's standings as a workbook download.
func (s *Server) handleExportLeaderboard(w http.ResponseWriter, r *http.Request) {
	eventID, err := eventIDParam(r)
	if err != nil {
		http.Error(w, "Invalid event id", http.StatusBadRequest)
		return
	}

	data, err := s.leaderboard.ExportStandingsXLSX(r.Context(), eventID)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to export leaderboard: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "leaderboard-"+eventID.String()+".xlsx"))
	w.Write(data)
}

// handleLeaderboardChart serves an event's standings as a PNG bar chart.
func (s *Server) handleLeaderboardChart(w http.ResponseWriter, r *http.Request) {
	eventID, err := eventIDParam(r)
	if err != nil {
		http.Error(w, "Invalid event id", http.StatusBadRequest)
		return
	}

	data, err := s.leaderboard.RenderStandingsChart(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, leaderboardservice.ErrNoStandings) {
			http.Error(w, "No standings for event", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to render chart: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(data)
}
