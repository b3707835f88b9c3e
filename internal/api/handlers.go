package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/ricardolfonseca/cryptocurrency-market-dashboard/internal/market"
	"github.com/ricardolfonseca/cryptocurrency-market-dashboard/pkg/models"
)

// rateLimitMessage is shown whenever an upstream fetch exhausted its retries.
const rateLimitMessage = "CoinGecko API rate limit reached. Try again in a few minutes."

// MarketsResponse is the live table payload.
type MarketsResponse struct {
	Currency string              `json:"currency"`
	Coins    []models.Coin       `json:"coins"`
	Table    []market.DisplayRow `json:"table"`
}

// OHLCResponse is the historical candles payload.
type OHLCResponse struct {
	Coin     string               `json:"coin"`
	Currency string               `json:"currency"`
	Days     string               `json:"days"`
	Candles  []models.Candle      `json:"candles"`
	Summary  market.PeriodSummary `json:"summary"`
	Message  string               `json:"message,omitempty"`
}

// ChatRequest is a free-text question about the current market.
type ChatRequest struct {
	Question string `json:"question"`
	Currency string `json:"currency"`
}

// ChatResponse carries the model's answer.
type ChatResponse struct {
	Answer string `json:"answer"`
}

// handleHealth reports service liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"chat":      s.chat.Available(),
		"timestamp": time.Now().Unix(),
	})
}

// handleMarkets serves GET /api/v1/markets?currency=usd
func (s *Server) handleMarkets(w http.ResponseWriter, r *http.Request) {
	currency := queryCurrency(r)

	result := s.market.LiveMarket(r.Context(), currency)
	switch {
	case result.IsFailed():
		s.writeError(w, http.StatusServiceUnavailable, rateLimitMessage)
	case result.IsEmpty():
		s.writeJSON(w, http.StatusOK, MarketsResponse{Currency: currency, Coins: []models.Coin{}, Table: []market.DisplayRow{}})
	default:
		coins := result.Value()
		s.writeJSON(w, http.StatusOK, MarketsResponse{
			Currency: currency,
			Coins:    coins,
			Table:    market.Normalize(coins, currency),
		})
	}
}

// handleOHLC serves GET /api/v1/coins/{id}/ohlc?currency=usd&days=30
func (s *Server) handleOHLC(w http.ResponseWriter, r *http.Request) {
	coinID := mux.Vars(r)["id"]
	currency := queryCurrency(r)

	daysParam := r.URL.Query().Get("days")
	if daysParam == "" {
		daysParam = "30"
	}
	days, err := models.ParseDayRange(daysParam)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result := s.market.Candles(r.Context(), coinID, currency, days)
	switch {
	case result.IsFailed():
		s.writeError(w, http.StatusServiceUnavailable, rateLimitMessage)
	case result.IsEmpty():
		s.writeJSON(w, http.StatusOK, OHLCResponse{
			Coin:     coinID,
			Currency: currency,
			Days:     days.String(),
			Candles:  []models.Candle{},
			Message:  fmt.Sprintf("No historical data found for %s.", coinID),
		})
	default:
		candles := result.Value()
		s.writeJSON(w, http.StatusOK, OHLCResponse{
			Coin:     coinID,
			Currency: currency,
			Days:     days.String(),
			Candles:  candles,
			Summary:  market.Summarize(candles),
		})
	}
}

// handleDominance serves GET /api/v1/dominance
func (s *Server) handleDominance(w http.ResponseWriter, r *http.Request) {
	result := s.market.Dominance(r.Context())
	if result.IsFailed() {
		s.writeError(w, http.StatusServiceUnavailable, rateLimitMessage)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"dominance": result.Value()})
}

// handleChat serves POST /api/v1/chat
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Question == "" {
		s.writeError(w, http.StatusBadRequest, "question is required")
		return
	}
	if req.Currency == "" {
		req.Currency = "usd"
	}

	if !s.chat.Available() {
		s.writeError(w, http.StatusServiceUnavailable, "Chat is not configured")
		return
	}

	// The chatbot answers with whatever snapshot is available; a failed
	// fetch just means it gets no market context.
	var coins []models.Coin
	if live := s.market.LiveMarket(r.Context(), req.Currency); live.IsOK() {
		coins = live.Value()
	}

	answer, err := s.chat.Ask(r.Context(), req.Question, coins, req.Currency)
	if err != nil {
		s.logger.WithError(err).Error("Chat request failed")
		s.writeError(w, http.StatusBadGateway, "Chat service unavailable")
		return
	}

	s.writeJSON(w, http.StatusOK, ChatResponse{Answer: answer})
}

func queryCurrency(r *http.Request) string {
	if currency := r.URL.Query().Get("currency"); currency != "" {
		return currency
	}
	return "usd"
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.WithError(err).Error("Failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
