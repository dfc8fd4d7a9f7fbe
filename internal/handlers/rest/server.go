// Package rest exposes the party service over HTTP.
package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/KirkDiggler/partybac/internal/models"
	"github.com/KirkDiggler/partybac/internal/services/messaging"
	"github.com/KirkDiggler/partybac/internal/services/party"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// ErrNilPartyService is returned when the server is built without a party service
var ErrNilPartyService = errors.New("party service cannot be nil")

// Drink request types
const (
	DrinkTypeStandard = "standard"
	DrinkTypeCustom   = "custom"
	DrinkTypeScan     = "scan"
)

// Config holds configuration for the HTTP server
type Config struct {
	PartyService party.Service

	// Messaging adds a friendly message to error responses when set
	Messaging messaging.Service

	Logger *slog.Logger
}

// Server routes HTTP requests to the party service
type Server struct {
	party     party.Service
	messaging messaging.Service
	log       *slog.Logger
	mux       *chi.Mux
}

// New creates a server with all routes registered
func New(cfg *Config) (*Server, error) {
	if cfg == nil || cfg.PartyService == nil {
		return nil, ErrNilPartyService
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		party:     cfg.PartyService,
		messaging: cfg.Messaging,
		log:       logger,
		mux:       chi.NewRouter(),
	}
	s.routes()
	return s, nil
}

// Handler returns the root handler
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	r := s.mux
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Post("/participants", s.handleJoin)
		r.Get("/participants/{name}", s.handleGetParticipant)
		r.Delete("/participants/{name}", s.handleLeave)
		r.Get("/participants/{name}/bac", s.handleEstimateBAC)
		r.Post("/participants/{name}/drinks", s.handleAddDrink)
		r.Delete("/participants/{name}/drinks/{index}", s.handleRemoveDrink)

		r.Get("/leaderboard", s.handleLeaderboard)
		r.Get("/activity", s.handleActivity)
		r.Get("/products/{code}", s.handleLookupProduct)
		r.Get("/catalog", s.handleCatalog)

		r.Post("/reset", s.handleReset)
	})
}

type joinRequest struct {
	Name       string  `json:"name"`
	WeightKg   float64 `json:"weight_kg"`
	Gender     string  `json:"gender"`
	Status     string  `json:"status"`
	SocialLink string  `json:"social_link"`
}

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	var in joinRequest
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	out, err := s.party.Join(r.Context(), &party.JoinInput{
		Name:       in.Name,
		WeightKg:   in.WeightKg,
		Gender:     models.Gender(in.Gender),
		Status:     models.Status(in.Status),
		SocialLink: in.SocialLink,
	})
	if err != nil {
		s.writePartyError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"participant": out.Participant,
		"message":     out.Message,
	})
}

func (s *Server) handleGetParticipant(w http.ResponseWriter, r *http.Request) {
	name, ok := pathParam(w, r, "name")
	if !ok {
		return
	}
	at, err := parseAt(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	out, err := s.party.GetParticipant(r.Context(), &party.GetParticipantInput{Name: name, At: at})
	if err != nil {
		s.writePartyError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"participant": out.Participant,
		"bac":         out.BAC,
	})
}

func (s *Server) handleLeave(w http.ResponseWriter, r *http.Request) {
	name, ok := pathParam(w, r, "name")
	if !ok {
		return
	}
	out, err := s.party.Leave(r.Context(), &party.LeaveInput{Name: name})
	if err != nil {
		s.writePartyError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"participant": out.Participant})
}

func (s *Server) handleEstimateBAC(w http.ResponseWriter, r *http.Request) {
	name, ok := pathParam(w, r, "name")
	if !ok {
		return
	}
	at, err := parseAt(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	out, err := s.party.EstimateBAC(r.Context(), &party.EstimateBACInput{Name: name, At: at})
	if err != nil {
		s.writePartyError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"name": name,
		"bac":  out.BAC,
		"at":   out.At,
	})
}

type drinkRequest struct {
	Type string `json:"type"`

	// standard
	Key string `json:"key"`

	// custom and scan
	Category        string   `json:"category"`
	Subcategory     string   `json:"subcategory"`
	Name            string   `json:"name"`
	VolumeML        *float64 `json:"volume_ml"`
	AlcoholFraction *float64 `json:"alcohol_fraction"`

	// scan
	Code string `json:"code"`
}

func (s *Server) handleAddDrink(w http.ResponseWriter, r *http.Request) {
	name, ok := pathParam(w, r, "name")
	if !ok {
		return
	}
	var in drinkRequest
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	switch strings.ToLower(strings.TrimSpace(in.Type)) {
	case DrinkTypeStandard, "":
		out, err := s.party.AddDrink(r.Context(), &party.AddDrinkInput{
			Name:  name,
			Drink: models.StandardDrink{Key: models.CatalogKey(in.Key)},
		})
		if err != nil {
			s.writePartyError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, drinkResponse(out, nil))
	case DrinkTypeCustom:
		if in.VolumeML == nil || in.AlcoholFraction == nil {
			writeError(w, http.StatusBadRequest, "volume_ml and alcohol_fraction are required")
			return
		}
		out, err := s.party.AddDrink(r.Context(), &party.AddDrinkInput{
			Name: name,
			Drink: models.CustomDrink{
				Category:        in.Category,
				Subcategory:     in.Subcategory,
				Name:            in.Name,
				VolumeML:        *in.VolumeML,
				AlcoholFraction: *in.AlcoholFraction,
			},
		})
		if err != nil {
			s.writePartyError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, drinkResponse(out, nil))
	case DrinkTypeScan:
		out, err := s.party.AddScannedDrink(r.Context(), &party.AddScannedDrinkInput{
			Name:            name,
			Code:            in.Code,
			Category:        in.Category,
			Subcategory:     in.Subcategory,
			VolumeML:        in.VolumeML,
			AlcoholFraction: in.AlcoholFraction,
		})
		if err != nil {
			s.writePartyError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, drinkResponse(&out.AddDrinkOutput, out.Product))
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown drink type %q", in.Type))
	}
}

func drinkResponse(out *party.AddDrinkOutput, product *models.Product) map[string]any {
	resp := map[string]any{
		"drink":      out.Drink,
		"bac":        out.BAC,
		"milestones": out.Milestones,
		"title":      out.Title,
		"message":    out.Message,
	}
	if product != nil {
		resp["product"] = product
	}
	return resp
}

func (s *Server) handleRemoveDrink(w http.ResponseWriter, r *http.Request) {
	name, ok := pathParam(w, r, "name")
	if !ok {
		return
	}
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "index must be an integer")
		return
	}
	out, err := s.party.RemoveDrink(r.Context(), &party.RemoveDrinkInput{Name: name, Index: index})
	if err != nil {
		s.writePartyError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"removed": out.Removed,
		"bac":     out.BAC,
	})
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	at, err := parseAt(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	out, err := s.party.GetLeaderboard(r.Context(), &party.GetLeaderboardInput{At: at})
	if err != nil {
		s.writePartyError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out.Leaderboard)
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}
	out, err := s.party.GetActivityLog(r.Context(), &party.GetActivityLogInput{Limit: limit})
	if err != nil {
		s.writePartyError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": out.Entries})
}

func (s *Server) handleLookupProduct(w http.ResponseWriter, r *http.Request) {
	code, ok := pathParam(w, r, "code")
	if !ok {
		return
	}
	out, err := s.party.LookupProduct(r.Context(), &party.LookupProductInput{Code: code})
	if err != nil {
		s.writePartyError(w, r, err)
		return
	}
	if !out.Found {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	writeJSON(w, http.StatusOK, out.Product)
}

func (s *Server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	type item struct {
		Key             models.CatalogKey `json:"key"`
		Label           string            `json:"label"`
		VolumeML        float64           `json:"volume_ml"`
		AlcoholFraction float64           `json:"alcohol_fraction"`
	}
	items := make([]item, 0, len(models.Catalog))
	for _, key := range models.CatalogKeys() {
		entry := models.Catalog[key]
		items = append(items, item{
			Key:             key,
			Label:           entry.Label,
			VolumeML:        entry.VolumeML,
			AlcoholFraction: entry.AlcoholFraction,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"drinks": items})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	out, err := s.party.Reset(r.Context(), &party.ResetInput{Credential: in.Password})
	if err != nil {
		s.writePartyError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"removed_participants": out.RemovedParticipants,
		"removed_drinks":       out.RemovedDrinks,
	})
}

// StatusForKind maps an error kind to an HTTP status
func StatusForKind(kind party.ErrorKind) int {
	switch kind {
	case party.KindValidation:
		return http.StatusBadRequest
	case party.KindNotFound:
		return http.StatusNotFound
	case party.KindArithmeticPrecondition:
		return http.StatusUnprocessableEntity
	case party.KindUnauthorized:
		return http.StatusUnauthorized
	case party.KindExternalUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writePartyError(w http.ResponseWriter, r *http.Request, err error) {
	kind := party.KindOf(err)
	status := StatusForKind(kind)
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"kind", kind,
			"error", err)
	}

	body := map[string]any{
		"error": strings.TrimSpace(err.Error()),
		"kind":  kind,
	}
	if s.messaging != nil {
		if msg, msgErr := s.messaging.GetErrorMessage(r.Context(), &messaging.GetErrorMessageInput{
			ErrorKind: string(kind),
		}); msgErr == nil {
			body["message"] = msg.Message
		}
	}
	writeJSON(w, status, body)
}

// pathParam reads a route parameter. chi routes on the raw path when the
// request has one, so the value is unescaped in that case only.
func pathParam(w http.ResponseWriter, r *http.Request, key string) (string, bool) {
	value := chi.URLParam(r, key)
	var err error
	if r.URL.RawPath != "" {
		value, err = url.PathUnescape(value)
	}
	if err != nil || strings.TrimSpace(value) == "" {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid %s", key))
		return "", false
	}
	return value, true
}

// parseAt reads the optional "at" query parameter. Zero means now.
func parseAt(r *http.Request) (time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("at"))
	if raw == "" {
		return time.Time{}, nil
	}
	at, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("at must be RFC3339: %w", err)
	}
	return at, nil
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": strings.TrimSpace(message)})
}
