package handler

import (
	"context"
	"net/http"
	"time"

	apperrors "booker/pkg/errors"
	httputil "booker/pkg/http"
	"booker/pkg/logger"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const readinessTimeout = 2 * time.Second

// Pinger is satisfied by *mongo.Client.
type Pinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
}

type HealthHandler struct {
	db  Pinger
	log *logger.Logger
}

// NewHealthHandler accepts a nil db for processes that never obtained a client.
func NewHealthHandler(db Pinger, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		db:  db,
		log: log,
	}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteSuccess(w, "Service is healthy", HealthResponse{
		Status: "ok",
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Health", "operation", "WriteSuccess", "error", err)
	}
}

func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if h.db == nil {
		h.notReady(w, r, "no database client")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	if err := h.db.Ping(ctx, nil); err != nil {
		h.notReady(w, r, err.Error())
		return
	}

	if err := httputil.WriteSuccess(w, "Service is ready", HealthResponse{
		Status:   "ready",
		Database: "ok",
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Ready", "operation", "WriteSuccess", "error", err)
	}
}

func (h *HealthHandler) notReady(w http.ResponseWriter, r *http.Request, reason string) {
	appErr := apperrors.Unavailable("MongoDB")
	h.log.Error("Database health check failed",
		"error", reason,
		"code", appErr.Code,
		"path", r.URL.Path,
	)
	if err := httputil.WriteEnvelope(w, appErr.StatusCode(), "Service is not ready", HealthResponse{
		Status:   "unavailable",
		Database: appErr.Message,
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Ready", "operation", "WriteEnvelope", "error", err)
	}
}

func (h *HealthHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
}
