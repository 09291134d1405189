//go:generate mockgen -source ./server.go -destination=./mocks/server.go -package=server_mocks
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"gitlab.com/dormdrop/dormdrop/internal/engine"
	"gitlab.com/dormdrop/dormdrop/internal/imaging"
	"gitlab.com/dormdrop/dormdrop/internal/metrics"
	"gitlab.com/dormdrop/dormdrop/internal/repository"
)

// PackageService is the slice of the engine the HTTP layer needs.
type PackageService interface {
	CreatePackage(ctx context.Context, fields engine.Fields) (string, error)
	UpdatePackage(ctx context.Context, id string, fields engine.Fields) error
	Receive(ctx context.Context, targetIDs []string, receiverName, signatureImage string) (int, error)

	Pending() ([]engine.Package, error)
	History(searchTerm string) ([]engine.Package, error)
	GroupPending(searchBuilding, searchTerm string) ([]engine.Group, error)
	PackagesInGroup(building, room string) ([]engine.Package, error)
	FindByBuildingAndRoom(building, room string) ([]engine.Package, error)

	Config() (engine.Config, error)
	AddTaxonomyItem(ctx context.Context, key, value string) error
	RemoveTaxonomyItem(ctx context.Context, key, value string) error
	AddBuilding(ctx context.Context, name, color string) error
	RemoveBuilding(ctx context.Context, name string) error
}

// Authenticator is the staff identity gate; every mutating and reading
// endpoint sits behind it.
type Authenticator interface {
	SignIn(ctx context.Context, username, password string) error
}

type Server struct {
	svc          PackageService
	auth         Authenticator
	server       *http.Server
	logger       *zap.Logger
	AuditManager *AuditManager
}

func New(svc PackageService, auth Authenticator, logger *zap.Logger) *Server {
	return &Server{
		svc:          svc,
		auth:         auth,
		logger:       logger,
		AuditManager: NewAuditManager(2, 5, 500*time.Millisecond, logger),
	}
}

func (s *Server) Run(ctx context.Context, port string) error {
	s.server = &http.Server{
		Addr:         ":" + port,
		Handler:      s.setupRoutes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	s.AuditManager.Start(ctx)

	go s.handleShutdown()

	s.logger.Info("http server starting", zap.String("port", port))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleShutdown() {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	sig := <-signals
	s.logger.Info("received signal, shutting down", zap.Stringer("signal", sig))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		s.logger.Error("server shutdown failed", zap.Error(err))
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}
	s.AuditManager.Shutdown(ctx)
	s.logger.Info("server shutdown complete")
	return nil
}

func (s *Server) setupRoutes() http.Handler {
	router := mux.NewRouter()

	// The metrics endpoint stays outside auth so scrapers do not need
	// staff credentials.
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	// Student mode is self-service: residents look up their own room and
	// confirm pickup without staff credentials. Both calls are still audited.
	student := router.PathPrefix("/").Subrouter()
	student.Use(s.auditLogMiddleware)
	student.HandleFunc("/student/lookup", s.handleStudentLookup).Methods(http.MethodGet)
	student.HandleFunc("/pickup", s.handlePickup).Methods(http.MethodPost)

	api := router.PathPrefix("/").Subrouter()
	api.Use(s.auditLogMiddleware, s.basicAuthMiddleware)

	api.HandleFunc("/packages", s.handleLogPackage).Methods(http.MethodPost)
	api.HandleFunc("/packages/{id}", s.handleUpdatePackage).Methods(http.MethodPut)
	api.HandleFunc("/packages/groups", s.handleGroups).Methods(http.MethodGet)
	api.HandleFunc("/packages/room", s.handleRoomPackages).Methods(http.MethodGet)
	api.HandleFunc("/packages/history", s.handleHistory).Methods(http.MethodGet)

	api.HandleFunc("/settings", s.handleGetSettings).Methods(http.MethodGet)
	api.HandleFunc("/settings/items", s.handleAddItem).Methods(http.MethodPost)
	api.HandleFunc("/settings/items", s.handleRemoveItem).Methods(http.MethodDelete)
	api.HandleFunc("/settings/buildings", s.handleAddBuilding).Methods(http.MethodPost)
	api.HandleFunc("/settings/buildings", s.handleRemoveBuilding).Methods(http.MethodDelete)

	return router
}

func (s *Server) basicAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		if !ok {
			w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
			respondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		if err := s.auth.SignIn(r.Context(), username, password); err != nil {
			w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
			respondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondOperationError maps domain errors onto HTTP statuses: bad input is
// 400, a latched engine is 503, a missing record is 404, the rest is 500.
func (s *Server) respondOperationError(w http.ResponseWriter, operation string, err error) {
	metrics.OperationErrorsTotal.WithLabelValues(operation).Inc()

	switch {
	case engine.IsValidation(err):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, engine.ErrUnavailable):
		respondError(w, http.StatusServiceUnavailable, "service unavailable, restart required")
	case errors.Is(err, repository.ErrObjectNotFound):
		respondError(w, http.StatusNotFound, "package not found")
	default:
		s.logger.Error("operation failed", zap.String("operation", operation), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

type packageRequest struct {
	Building string `json:"building"`
	Room     string `json:"room"`
	Tracking string `json:"tracking"`
	Carrier  string `json:"carrier"`
	Type     string `json:"type"`
	Sender   string `json:"sender"`
	Image    string `json:"image"`
	Status   string `json:"status"`
}

func (r packageRequest) fields() engine.Fields {
	return engine.Fields{
		Building: r.Building,
		Room:     r.Room,
		Tracking: r.Tracking,
		Carrier:  r.Carrier,
		Type:     r.Type,
		Sender:   r.Sender,
		Image:    r.Image,
		Status:   engine.Status(r.Status),
	}
}

func (s *Server) handleLogPackage(w http.ResponseWriter, r *http.Request) {
	var req packageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Image != "" {
		normalized, err := imaging.NormalizeDataURI(req.Image)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid image: "+err.Error())
			return
		}
		req.Image = normalized
	}

	id, err := s.svc.CreatePackage(r.Context(), req.fields())
	if err != nil {
		s.respondOperationError(w, "log_package", err)
		return
	}

	metrics.PackagesLoggedTotal.Inc()
	respondJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) handleUpdatePackage(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		respondError(w, http.StatusBadRequest, "Missing package ID")
		return
	}

	var req packageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Image != "" {
		normalized, err := imaging.NormalizeDataURI(req.Image)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid image: "+err.Error())
			return
		}
		req.Image = normalized
	}

	if err := s.svc.UpdatePackage(r.Context(), id, req.fields()); err != nil {
		s.respondOperationError(w, "update_package", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Package updated"})
}

func (s *Server) handleGroups(w http.ResponseWriter, r *http.Request) {
	building := r.URL.Query().Get("building")
	if building == "" {
		building = engine.AllBuildings
	}
	groups, err := s.svc.GroupPending(building, r.URL.Query().Get("q"))
	if err != nil {
		s.respondOperationError(w, "list_groups", err)
		return
	}
	respondJSON(w, http.StatusOK, groups)
}

func (s *Server) handleRoomPackages(w http.ResponseWriter, r *http.Request) {
	building := r.URL.Query().Get("building")
	room := r.URL.Query().Get("room")
	if room == "" {
		respondError(w, http.StatusBadRequest, "Missing room")
		return
	}
	packages, err := s.svc.PackagesInGroup(building, room)
	if err != nil {
		s.respondOperationError(w, "room_packages", err)
		return
	}
	respondJSON(w, http.StatusOK, packages)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	packages, err := s.svc.History(r.URL.Query().Get("q"))
	if err != nil {
		s.respondOperationError(w, "history", err)
		return
	}
	respondJSON(w, http.StatusOK, packages)
}

func (s *Server) handleStudentLookup(w http.ResponseWriter, r *http.Request) {
	building := r.URL.Query().Get("building")
	room := r.URL.Query().Get("room")
	if room == "" {
		respondError(w, http.StatusBadRequest, "Missing room")
		return
	}
	packages, err := s.svc.FindByBuildingAndRoom(building, room)
	if err != nil {
		s.respondOperationError(w, "student_lookup", err)
		return
	}
	respondJSON(w, http.StatusOK, packages)
}

func (s *Server) handlePickup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PackageIDs   []string `json:"package_ids"`
		ReceiverName string   `json:"receiver_name"`
		Signature    string   `json:"signature"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	count, err := s.svc.Receive(r.Context(), req.PackageIDs, req.ReceiverName, req.Signature)
	if err != nil {
		s.respondOperationError(w, "pickup", err)
		return
	}

	metrics.PickupBatchesTotal.Inc()
	metrics.PackagesPickedUpTotal.Add(float64(count))
	respondJSON(w, http.StatusOK, map[string]int{"picked_up": count})
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.svc.Config()
	if err != nil {
		s.respondOperationError(w, "get_settings", err)
		return
	}
	respondJSON(w, http.StatusOK, cfg)
}

type itemRequest struct {
	List  string `json:"list"`
	Value string `json:"value"`
}

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.svc.AddTaxonomyItem(r.Context(), req.List, req.Value); err != nil {
		s.respondOperationError(w, "add_item", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Item added"})
}

func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.svc.RemoveTaxonomyItem(r.Context(), req.List, req.Value); err != nil {
		s.respondOperationError(w, "remove_item", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Item removed"})
}

func (s *Server) handleAddBuilding(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.svc.AddBuilding(r.Context(), req.Name, req.Color); err != nil {
		s.respondOperationError(w, "add_building", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Building added"})
}

func (s *Server) handleRemoveBuilding(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.svc.RemoveBuilding(r.Context(), req.Name); err != nil {
		s.respondOperationError(w, "remove_building", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Building removed"})
}
