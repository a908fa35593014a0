package app_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"booker/internal/bookings/events"
	"booker/internal/bookings/handler"
	"booker/internal/bookings/repository"
	"booker/internal/bookings/service"
	"booker/internal/bookings/validator"
	"booker/pkg/app"
	"booker/pkg/config"
	httputil "booker/pkg/http"
	"booker/pkg/logger"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func nestedTimeoutConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{
		MongoDatabaseName:  config.DefaultMongoDatabaseName,
		MongoConnTimeout:   time.Second,
		MongoOpTimeout:     200 * time.Millisecond,
		Port:               config.DefaultPort,
		LogFormat:          logger.LINE,
		RequestTimeout:     time.Second,
		MaxRequestSize:     config.DefaultMaxRequestSize,
		ReadTimeout:        2 * time.Second,
		WriteTimeout:       2 * time.Second,
		IdleTimeout:        time.Second,
		ShutdownTimeout:    time.Second,
		CORSAllowedOrigins: []string{"*"},
		Log:                logger.New(logger.Config{Format: logger.LINE, Output: io.Discard}),
	}
	require.NoError(t, cfg.Validate())
	return cfg
}

// startServer serves a with the same read and write deadlines the real
// process uses.
func startServer(t *testing.T, cfg *config.Config, a *app.Application) *httptest.Server {
	t.Helper()
	srv := httptest.NewUnstartedServer(a.Handler())
	srv.Config.ReadTimeout = cfg.ReadTimeout
	srv.Config.WriteTimeout = cfg.WriteTimeout
	srv.Start()
	t.Cleanup(srv.Close)
	return srv
}

func decode(t *testing.T, resp *http.Response) httputil.Envelope {
	t.Helper()
	defer resp.Body.Close()
	var env httputil.Envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}

func TestApplication_UnreachableStorageStillAnswers(t *testing.T) {
	cfg := nestedTimeoutConfig(t)

	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI("mongodb://127.0.0.1:1"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	repo := repository.NewMongoBookingRepository(cfg, client.Database(cfg.MongoDatabaseName))
	svc := service.NewBookingService(repo, validator.NewBookingValidator(cfg.Log), events.NewNoopPublisher(), cfg.Log)

	a := app.NewApplication(cfg)
	a.SetApp(handler.NewBookingHandler(svc, cfg.Log), handler.NewHealthHandler(client, cfg.Log))
	srv := startServer(t, cfg, a)

	start := time.Now()
	resp, err := http.Get(srv.URL + handler.BookingsPath)
	require.NoError(t, err)
	env := decode(t, resp)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, http.StatusInternalServerError, env.Status)
	assert.Equal(t, handler.MsgRetrieveFailed, env.Message)
	assert.Less(t, time.Since(start), cfg.RequestTimeout)

	resp, err = http.Post(srv.URL+handler.BookingsPath, "application/json",
		strings.NewReader(`{"name":"Ann","email":"ann@x.com","service":"Haircut","date":"2024-05-01"}`))
	require.NoError(t, err)
	env = decode(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, http.StatusBadRequest, env.Status)
	assert.Equal(t, handler.MsgCreateFailed, env.Message)
}

type stalledHandler struct{}

func (stalledHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/stalled", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		<-r.Context().Done()
	})
}

type noHealth struct{}

func (noHealth) RegisterRoutes(*httprouter.Router) {}

func TestApplication_RequestTimeoutBeatsServerWriteDeadline(t *testing.T) {
	cfg := nestedTimeoutConfig(t)

	a := app.NewApplication(cfg)
	a.SetApp(stalledHandler{}, noHealth{})
	srv := startServer(t, cfg, a)

	resp, err := http.Get(srv.URL + "/api/stalled")
	require.NoError(t, err)
	env := decode(t, resp)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "Request timeout", env.Message)
}
