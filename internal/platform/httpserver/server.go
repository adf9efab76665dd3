package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	catalogservice "github.com/RadikAgl/events/contexts/event-management/catalog-service"
	catalogerrors "github.com/RadikAgl/events/contexts/event-management/catalog-service/domain/errors"
	cataloghttp "github.com/RadikAgl/events/contexts/event-management/catalog-service/transport/http"
	registrationservice "github.com/RadikAgl/events/contexts/event-management/registration-service"
	registrationerrors "github.com/RadikAgl/events/contexts/event-management/registration-service/domain/errors"
	registrationhttp "github.com/RadikAgl/events/contexts/event-management/registration-service/transport/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/RadikAgl/events/internal/platform/httpserver/docs"
)

type Server struct {
	mux          *http.ServeMux
	logger       *slog.Logger
	addr         string
	registration registrationservice.Module
	catalog      catalogservice.Module
}

func New(
	registration registrationservice.Module,
	catalog catalogservice.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:          http.NewServeMux(),
		logger:       logger,
		addr:         addr,
		registration: registration,
		catalog:      catalog,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	s.mux.Handle("/metrics", promhttp.Handler())

	s.mux.HandleFunc("GET /api/v1/events", s.handleListEvents)
	s.mux.HandleFunc("GET /api/v1/events/{event_id}", s.handleGetEvent)
	s.mux.HandleFunc("POST /api/v1/events/{event_id}/register", s.handleRegister)
	s.mux.HandleFunc("GET /api/v1/sync/results", s.handleListSyncResults)
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := cataloghttp.ListEventsRequest{
		Status:   query.Get("status"),
		Name:     query.Get("name"),
		DateFrom: query.Get("date_from"),
		DateTo:   query.Get("date_to"),
	}
	if limitRaw := query.Get("limit"); limitRaw != "" {
		limit, err := strconv.Atoi(limitRaw)
		if err != nil {
			writeCatalogError(w, http.StatusBadRequest, "invalid_limit", "limit must be an integer")
			return
		}
		req.Limit = limit
	}

	resp, err := s.catalog.Handler.ListEventsHandler(r.Context(), req)
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("event_id")
	resp, err := s.catalog.Handler.GetEventHandler(r.Context(), eventID)
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registrationhttp.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRegistrationError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	eventID := r.PathValue("event_id")
	resp, err := s.registration.Handler.RegisterHandler(r.Context(), eventID, req)
	if err != nil {
		writeRegistrationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListSyncResults(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if limitRaw := r.URL.Query().Get("limit"); limitRaw != "" {
		parsed, err := strconv.Atoi(limitRaw)
		if err != nil {
			writeCatalogError(w, http.StatusBadRequest, "invalid_limit", "limit must be an integer")
			return
		}
		limit = parsed
	}

	resp, err := s.catalog.Handler.ListSyncResultsHandler(r.Context(), limit)
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeRegistrationDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, registrationerrors.ErrEventNotFound):
		writeRegistrationError(w, http.StatusNotFound, "event_not_found", err.Error())
	case errors.Is(err, registrationerrors.ErrDuplicateRegistration):
		writeRegistrationError(w, http.StatusConflict, "duplicate_registration", err.Error())
	case errors.Is(err, registrationerrors.ErrRegistrationClosed):
		writeRegistrationError(w, http.StatusUnprocessableEntity, "registration_closed", err.Error())
	case errors.Is(err, registrationerrors.ErrInvalidRegistration):
		writeRegistrationError(w, http.StatusBadRequest, "invalid_registration", err.Error())
	default:
		writeRegistrationError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeCatalogDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalogerrors.ErrEventNotFound):
		writeCatalogError(w, http.StatusNotFound, "event_not_found", err.Error())
	case errors.Is(err, catalogerrors.ErrInvalidSinceDate):
		writeCatalogError(w, http.StatusBadRequest, "invalid_date", err.Error())
	default:
		writeCatalogError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeRegistrationError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, registrationhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeCatalogError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, cataloghttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
