package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/aretw0/routeops/internal/follower"
	"github.com/aretw0/routeops/pkg/domain"
	"github.com/aretw0/routeops/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Rerouter accepts external reroute requests.
type Rerouter interface {
	RequestReroute()
}

// Server exposes the operational API of a route operations deployment.
// Nil collaborators disable the corresponding endpoints.
type Server struct {
	Closures  ports.ClosureStore
	Reroutes  Rerouter
	Processor follower.Processor
	Graph     *domain.Graph
	Gatherer  prometheus.Gatherer
	Logger    *slog.Logger

	// Process calls are serialized: operations assume a single route follower.
	mu sync.Mutex
}

// StepRequest is the body of POST /routes/{name}/steps.
type StepRequest struct {
	Index         int         `json:"index"`
	StatusChange  bool        `json:"status_change"`
	ReroutingEdge string      `json:"rerouting_edge,omitempty"`
	Pose          domain.Pose `json:"pose"`
}

// maxStepBody bounds the size of a step request body.
const maxStepBody = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

// NewHandler creates the HTTP handler for s.
func NewHandler(s *Server) http.Handler {
	if s.Logger == nil {
		s.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if s.Reroutes != nil {
		r.Post("/reroute", s.requestReroute)
	}
	if s.Closures != nil {
		r.Route("/closures", func(r chi.Router) {
			r.Get("/", s.listClosures)
			r.Put("/{id}", s.closeElement)
			r.Delete("/{id}", s.openElement)
		})
	}
	if s.Processor != nil && s.Graph != nil {
		r.Post("/routes/{name}/steps", s.processStep)
	}
	if s.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) requestReroute(w http.ResponseWriter, r *http.Request) {
	s.Reroutes.RequestReroute()
	s.Logger.Info("Reroute requested", "remote", r.RemoteAddr)
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "reroute requested"})
}

func (s *Server) listClosures(w http.ResponseWriter, r *http.Request) {
	closed, err := s.Closures.Closed(r.Context())
	if err != nil {
		s.Logger.Error("List closures failed", "err", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"closed": closed})
}

func (s *Server) closeElement(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.Closures.Close(r.Context(), id); err != nil {
		s.Logger.Error("Close failed", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.Logger.Info("Element closed", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) openElement(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.Closures.Open(r.Context(), id); err != nil {
		s.Logger.Error("Open failed", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.Logger.Info("Element opened", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) processStep(w http.ResponseWriter, r *http.Request) {
	route := s.Graph.Route(chi.URLParam(r, "name"))
	if route == nil {
		writeError(w, http.StatusNotFound, "route not found")
		return
	}

	var body StepRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxStepBody)
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	state, err := follower.StateAt(route, body.Index)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var rerouting domain.ReroutingState
	if body.ReroutingEdge != "" {
		rerouting.CurrentEdge = s.Graph.Edge(body.ReroutingEdge)
		if rerouting.CurrentEdge == nil {
			writeError(w, http.StatusBadRequest, "unknown rerouting edge")
			return
		}
	}

	s.mu.Lock()
	res, err := s.Processor.Process(r.Context(), body.StatusChange, state, route, body.Pose, rerouting)
	s.mu.Unlock()
	if err != nil {
		s.Logger.Error("Step failed", "route", chi.URLParam(r, "name"), "index", body.Index, "err", err)
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrOperationNotFound) {
			status = http.StatusUnprocessableEntity
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}
