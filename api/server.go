package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/caiorlm/logichain/db"
	"github.com/caiorlm/logichain/geo"
	"github.com/caiorlm/logichain/ledger"
	"github.com/caiorlm/logichain/route"
	"github.com/caiorlm/logichain/timestamp"
)

// Server exposes the engine operations over HTTP. Engine errors map to
// distinct response conditions; the server adds no validation of its
// own.
type Server struct {
	table  *route.Table
	store  *db.DB
	signer *ledger.ProofSigner
	mux    *http.ServeMux
	log    *log.Entry
}

// NewServer builds the front-end server.
func NewServer(table *route.Table, store *db.DB, signer *ledger.ProofSigner) *Server {
	s := &Server{
		table:  table,
		store:  store,
		signer: signer,
		mux:    http.NewServeMux(),
		log:    log.WithField("component", "api"),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("POST /route/start", s.handleStartRoute)
	s.mux.HandleFunc("POST /route/point", s.handleAddPoint)
	s.mux.HandleFunc("POST /route/end", s.handleEndRoute)
	s.mux.HandleFunc("POST /route/abort", s.handleAbortRoute)
	s.mux.HandleFunc("GET /route/status", s.handleRouteStatus)
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe serves the front-end on addr.
func (s *Server) ListenAndServe(addr string) error {
	s.log.WithField("addr", addr).Info("Serving route API")
	return http.ListenAndServe(addr, s.mux)
}

type startRouteRequest struct {
	ContractID      string  `json:"contract_id"`
	ToleranceRadius float64 `json:"tolerance_radius"`
	MaxError        float64 `json:"max_error"`
}

type addPointRequest struct {
	ContractID string   `json:"contract_id"`
	Latitude   float64  `json:"latitude"`
	Longitude  float64  `json:"longitude"`
	Timestamp  int64    `json:"timestamp,omitempty"`
	Speed      *float64 `json:"speed,omitempty"`
	Accuracy   *float64 `json:"accuracy,omitempty"`
}

type endRouteRequest struct {
	ContractID string `json:"contract_id"`
}

type routeResponse struct {
	ContractID string `json:"contract_id"`
	Status     string `json:"status"`
	PointCount int    `json:"point_count"`
	ProofHash  string `json:"proof_hash,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleStartRoute(w http.ResponseWriter, r *http.Request) {
	req := &startRouteRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	if _, err := s.table.Begin(route.RouteConfig{
		ContractID:      req.ContractID,
		ToleranceRadius: req.ToleranceRadius,
		MaxError:        req.MaxError,
	}); err != nil {
		s.writeEngineError(w, err)
		return
	}

	var snapshot *routeResponse
	err := s.table.With(req.ContractID, func(v *route.RouteValidator) error {
		if err := s.store.SaveRoute(v); err != nil {
			return err
		}
		snapshot = snapshotRoute(v)
		return nil
	})
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.log.WithField("contract", req.ContractID).Info("Started route")
	s.writeJSON(w, http.StatusOK, snapshot)
}

func (s *Server) handleAddPoint(w http.ResponseWriter, r *http.Request) {
	req := &addPointRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	point := &geo.GeoPoint{
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Timestamp: req.Timestamp,
		Speed:     req.Speed,
		Accuracy:  req.Accuracy,
	}
	if point.Timestamp == 0 {
		point.Timestamp = timestamp.Now()
	}
	if err := point.Validate(); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	var snapshot *routeResponse
	err := s.table.With(req.ContractID, func(v *route.RouteValidator) error {
		if _, err := v.AddPoint(point, time.Now()); err != nil {
			return err
		}
		if err := s.store.SaveRoute(v); err != nil {
			return err
		}
		snapshot = snapshotRoute(v)
		return nil
	})
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, snapshot)
}

func (s *Server) handleEndRoute(w http.ResponseWriter, r *http.Request) {
	req := &endRouteRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	// Compute the proof and persist under the contract lock, then
	// release it before contacting the ledger. The route is terminal
	// once the lock drops, so the validator is safe to read here.
	var validator *route.RouteValidator
	var snapshot *routeResponse
	err := s.table.With(req.ContractID, func(v *route.RouteValidator) error {
		if _, err := v.GenerateProof(); err != nil {
			return err
		}
		if err := s.store.SaveRoute(v); err != nil {
			return err
		}
		validator = v
		snapshot = snapshotRoute(v)
		return nil
	})
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	if _, err := s.signer.SubmitProof(r.Context(), validator); err != nil {
		s.writeEngineError(w, err)
		return
	}

	s.log.WithField("contract", req.ContractID).
		WithField("proof", snapshot.ProofHash).
		Info("Completed route")
	s.writeJSON(w, http.StatusOK, snapshot)
}

func (s *Server) handleAbortRoute(w http.ResponseWriter, r *http.Request) {
	req := &endRouteRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	var snapshot *routeResponse
	err := s.table.With(req.ContractID, func(v *route.RouteValidator) error {
		v.Abort()
		if err := s.store.UpdateStatus(req.ContractID, v.Status()); err != nil {
			return err
		}
		snapshot = snapshotRoute(v)
		return nil
	})
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	s.log.WithField("contract", req.ContractID).Info("Aborted route")
	s.writeJSON(w, http.StatusOK, snapshot)
}

func (s *Server) handleRouteStatus(w http.ResponseWriter, r *http.Request) {
	contractID := r.URL.Query().Get("contract_id")

	var snapshot *routeResponse
	err := s.table.With(contractID, func(v *route.RouteValidator) error {
		snapshot = snapshotRoute(v)
		return nil
	})
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, snapshot)
}

// writeEngineError maps engine errors to distinct HTTP conditions.
func (s *Server) writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, route.ErrInvalidTimestamp),
		errors.Is(err, route.ErrPointOutOfBounds):
		s.writeError(w, http.StatusUnprocessableEntity, err)
	case errors.Is(err, route.ErrRouteNotFound):
		s.writeError(w, http.StatusNotFound, err)
	case errors.Is(err, route.ErrRouteExists),
		errors.Is(err, route.ErrRouteIncomplete),
		errors.Is(err, route.ErrRouteClosed),
		errors.Is(err, ledger.ErrValidation):
		s.writeError(w, http.StatusConflict, err)
	case errors.Is(err, ledger.ErrNetwork):
		s.writeError(w, http.StatusBadGateway, err)
	case errors.Is(err, context.Canceled):
		s.writeError(w, http.StatusServiceUnavailable, err)
	default:
		s.writeError(w, http.StatusInternalServerError, err)
	}
}

// snapshotRoute captures a response while the contract lock is held.
func snapshotRoute(validator *route.RouteValidator) *routeResponse {
	return &routeResponse{
		ContractID: validator.ContractID(),
		Status:     validator.Status().String(),
		PointCount: validator.PointCount(),
		ProofHash:  validator.ProofHash(),
	}
}

func (s *Server) writeError(w http.ResponseWriter, code int, err error) {
	if code >= 500 {
		s.log.WithError(err).Warn("Request failed")
	}
	s.writeJSON(w, code, &errorResponse{Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.WithError(err).Warn("Failed to write response")
	}
}
