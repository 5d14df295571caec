/*
Nova Panel
Copyright (c) 2026 The Nova Panel Contributors.
SPDX-License-Identifier: GPL-3.0-or-later

This file is part of Nova Panel.

Nova Panel is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Nova Panel is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Nova Panel.  If not, see <http://www.gnu.org/licenses/>.
*/

package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/novapanel/novapanel/pkg/api/methods"
	apimiddleware "github.com/novapanel/novapanel/pkg/api/middleware"
	"github.com/novapanel/novapanel/pkg/api/models"
	"github.com/novapanel/novapanel/pkg/api/models/requests"
	"github.com/novapanel/novapanel/pkg/api/validation"
	"github.com/novapanel/novapanel/pkg/config"
	"github.com/novapanel/novapanel/pkg/helpers/syncutil"
	"github.com/novapanel/novapanel/pkg/presets"
	"github.com/olahol/melody"
	"github.com/rs/zerolog/log"
)

const (
	jsonRPCVersion = "2.0"

	// ErrorCodeUnknownPreset is returned by play for ids not in the catalog.
	// The error data holds close matches under "suggestions".
	ErrorCodeUnknownPreset = -32001

	maxRequestBodySize = 1 << 20
	shutdownTimeout    = 5 * time.Second
	maxLoggedChars     = 100
)

var (
	JSONRPCErrorParseError = models.ErrorObject{
		Code:    -32700,
		Message: "Parse error",
	}
	JSONRPCErrorInvalidRequest = models.ErrorObject{
		Code:    -32600,
		Message: "Invalid Request",
	}
	JSONRPCErrorMethodNotFound = models.ErrorObject{
		Code:    -32601,
		Message: "Method not found",
	}
	JSONRPCErrorInvalidParams = models.ErrorObject{
		Code:    -32602,
		Message: "Invalid params",
	}
	JSONRPCErrorServerError = models.ErrorObject{
		Code:    -32000,
		Message: "Server error",
	}
)

var ErrMethodExists = errors.New("method already registered")

type MethodFunc func(requests.RequestEnv) (any, error)

// MethodMap routes JSON-RPC method names to handlers. Names are matched
// case-insensitively.
type MethodMap struct {
	methods map[string]MethodFunc
	mu      syncutil.RWMutex
}

func NewMethodMap() *MethodMap {
	return &MethodMap{methods: make(map[string]MethodFunc)}
}

// NewDefaultMethodMap has every panel method registered.
func NewDefaultMethodMap() *MethodMap {
	m := NewMethodMap()
	defaults := map[string]MethodFunc{
		// presets
		models.MethodPresets:       methods.HandlePresets,
		models.MethodPresetsExport: methods.HandlePresetsExport,
		models.MethodPresetsReload: methods.HandlePresetsReload,
		// playback
		models.MethodPlay:   methods.HandlePlay,
		models.MethodCustom: methods.HandleCustom,
		models.MethodStop:   methods.HandleStop,
		models.MethodClear:  methods.HandleClear,
		models.MethodSpeed:  methods.HandleSpeed,
		// settings
		models.MethodSettings:       methods.HandleSettings,
		models.MethodSettingsUpdate: methods.HandleSettingsUpdate,
		// utils
		models.MethodStatus:  methods.HandleStatus,
		models.MethodSysinfo: methods.HandleSysinfo,
		models.MethodVersion: methods.HandleVersion,
	}
	for name, fn := range defaults {
		m.methods[name] = fn
	}
	return m
}

func (m *MethodMap) AddMethod(name string, fn MethodFunc) error {
	name = strings.ToLower(name)
	if name == "" || fn == nil {
		return errors.New("method name and handler are required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.methods[name]; ok {
		return fmt.Errorf("%w: %s", ErrMethodExists, name)
	}
	m.methods[name] = fn
	return nil
}

func (m *MethodMap) GetMethod(name string) (MethodFunc, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	fn, ok := m.methods[strings.ToLower(name)]
	return fn, ok
}

// Names returns the registered method names, sorted.
func (m *MethodMap) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.methods))
	for name := range m.methods {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// rpcHandler answers JSON-RPC messages arriving over either transport.
type rpcHandler struct {
	methods  *MethodMap
	panel    requests.Panel
	cfg      *config.Instance
	platform string
}

func errorReply(id models.RPCID, e models.ErrorObject) []byte {
	if id.IsAbsent() {
		id = models.NullRPCID
	}
	log.Debug().Int("code", e.Code).Str("message", e.Message).Msg("sending error")

	data, err := json.Marshal(models.ResponseErrorObject{
		JSONRPC: jsonRPCVersion,
		ID:      id,
		Error:   &e,
	})
	if err != nil {
		log.Error().Err(err).Msg("error marshalling error response")
		return nil
	}
	return data
}

// errorObject maps a handler error to its JSON-RPC error.
func errorObject(err error) models.ErrorObject {
	var unknown *presets.UnknownPresetError
	var invalid *validation.Error
	switch {
	case errors.As(err, &unknown):
		suggestions := unknown.Suggestions
		if suggestions == nil {
			suggestions = []string{}
		}
		return models.ErrorObject{
			Code:    ErrorCodeUnknownPreset,
			Message: unknown.Error(),
			Data:    map[string][]string{"suggestions": suggestions},
		}
	case errors.As(err, &invalid):
		return models.ErrorObject{
			Code:    JSONRPCErrorInvalidParams.Code,
			Message: invalid.Error(),
			Data:    invalid.Fields,
		}
	case errors.Is(err, validation.ErrMissingParams),
		errors.Is(err, validation.ErrInvalidParams),
		errors.Is(err, presets.ErrUnknownCategory):
		return models.ErrorObject{
			Code:    JSONRPCErrorInvalidParams.Code,
			Message: err.Error(),
		}
	default:
		return models.ErrorObject{
			Code:    JSONRPCErrorServerError.Code,
			Message: err.Error(),
		}
	}
}

func logSafeRequest(req models.RequestObject) {
	if req.Method == models.MethodCustom {
		log.Debug().Str("method", req.Method).Str("id", req.ID.String()).Msg("received custom text request")
		return
	}
	log.Debug().Interface("request", req).Msg("received request")
}

// logSafeResponse keeps exported CSV out of the log.
func logSafeResponse(result any) {
	if resp, ok := result.(models.PresetsExportResponse); ok && len(resp.CSV) > maxLoggedChars {
		log.Debug().
			Str("csv", fmt.Sprintf("%s... (truncated, %d more chars)",
				resp.CSV[:maxLoggedChars], len(resp.CSV)-maxLoggedChars)).
			Msg("sending response")
		return
	}
	log.Debug().Interface("result", result).Msg("sending response")
}

// process handles one message and returns the reply, or nil when the
// message was a notification and must not be answered.
func (h *rpcHandler) process(ctx context.Context, remoteAddr string, msg []byte) []byte {
	if !json.Valid(msg) {
		log.Warn().Str("addr", remoteAddr).Msg("request is not valid json")
		return errorReply(models.NullRPCID, JSONRPCErrorParseError)
	}

	var req models.RequestObject
	if err := json.Unmarshal(msg, &req); err != nil {
		log.Warn().Err(err).Msg("request is not a JSON-RPC object")
		return errorReply(models.NullRPCID, JSONRPCErrorInvalidRequest)
	}

	if req.JSONRPC != jsonRPCVersion {
		log.Warn().Str("jsonrpc", req.JSONRPC).Msg("unsupported payload version")
		return errorReply(req.ID, JSONRPCErrorInvalidRequest)
	}
	if req.Method == "" {
		return errorReply(req.ID, JSONRPCErrorInvalidRequest)
	}

	rid := uuid.NewString()
	logSafeRequest(req)

	fn, ok := h.methods.GetMethod(req.Method)
	if !ok {
		log.Debug().Str("rid", rid).Str("method", req.Method).Msg("unknown method")
		if req.ID.IsAbsent() {
			return nil
		}
		return errorReply(req.ID, JSONRPCErrorMethodNotFound)
	}

	result, err := fn(requests.RequestEnv{
		Context:  ctx,
		Panel:    h.panel,
		Config:   h.cfg,
		Platform: h.platform,
		Params:   req.Params,
		ID:       req.ID,
		IsLocal:  apimiddleware.IsLoopbackAddr(remoteAddr),
	})

	if req.ID.IsAbsent() {
		if err != nil {
			log.Warn().Err(err).Str("rid", rid).Str("method", req.Method).Msg("notification failed")
		}
		return nil
	}

	if err != nil {
		log.Warn().Err(err).Str("rid", rid).Str("method", req.Method).Msg("method returned error")
		return errorReply(req.ID, errorObject(err))
	}

	logSafeResponse(result)
	data, err := json.Marshal(models.ResponseObject{
		JSONRPC: jsonRPCVersion,
		ID:      req.ID,
		Result:  result,
	})
	if err != nil {
		log.Error().Err(err).Str("rid", rid).Msg("error marshalling response")
		return errorReply(req.ID, JSONRPCErrorServerError)
	}
	return data
}

func handleWSMessage(h *rpcHandler) func(*melody.Session, []byte) {
	return func(session *melody.Session, msg []byte) {
		// ping command for heartbeat operation
		if string(msg) == "ping" {
			if err := session.Write([]byte("pong")); err != nil {
				log.Error().Err(err).Msg("sending pong")
			}
			return
		}

		reply := h.process(session.Request.Context(), session.Request.RemoteAddr, msg)
		if reply == nil {
			return
		}
		if err := session.Write(reply); err != nil {
			log.Error().Err(err).Msg("error sending response")
		}
	}
}

// handlePostRequest serves one-shot JSON-RPC calls. JSON-RPC errors are
// still HTTP 200 and notifications get 204 with no body.
func handlePostRequest(h *rpcHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || mediaType != "application/json" {
			http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
			return
		}

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBodySize))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				http.Error(w, "Request body too large", http.StatusRequestEntityTooLarge)
				return
			}
			http.Error(w, "Error reading request body", http.StatusBadRequest)
			return
		}

		reply := h.process(r.Context(), r.RemoteAddr, body)
		if reply == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(reply); err != nil {
			log.Error().Err(err).Msg("error writing response")
		}
	}
}

// broadcastNotifications sends every notification to all WebSocket
// clients until the channel closes or ctx is done.
func broadcastNotifications(
	ctx context.Context,
	session *melody.Melody,
	notifications <-chan models.Notification,
) {
	for {
		select {
		case <-ctx.Done():
			return
		case notif, ok := <-notifications:
			if !ok {
				return
			}

			data, err := json.Marshal(models.NotificationObject{
				JSONRPC: jsonRPCVersion,
				Method:  notif.Method,
				Params:  notif.Params,
			})
			if err != nil {
				log.Error().Err(err).Msg("marshalling notification")
				continue
			}

			if err := session.Broadcast(data); err != nil && !errors.Is(err, melody.ErrClosed) {
				log.Error().Err(err).Msg("broadcasting notification")
			}
		}
	}
}

// privateNetworkAccessMiddleware lets browser pages on public origins call
// the local API after a Private Network Access preflight.
func privateNetworkAccessMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions &&
			r.Header.Get("Access-Control-Request-Private-Network") == "true" {
			w.Header().Set("Access-Control-Allow-Private-Network", "true")
		}
		next.ServeHTTP(w, r)
	})
}

// checkOrigin accepts non-browser clients, local pages and configured
// origins.
func checkOrigin(allowed []string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || slices.Contains(allowed, "*") || slices.Contains(allowed, origin) {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		host := u.Hostname()
		if host == "localhost" {
			return true
		}
		ip := net.ParseIP(host)
		return ip != nil && ip.IsLoopback()
	}
}

type Options struct {
	Panel         requests.Panel
	Config        *config.Instance
	Methods       *MethodMap
	Clock         clockwork.Clock
	Notifications <-chan models.Notification
	Platform      string
}

// Server is a running API listener.
type Server struct {
	srv    *http.Server
	melody *melody.Melody
	addr   net.Addr
	done   chan struct{}
}

func (s *Server) Addr() net.Addr {
	return s.addr
}

// Done is closed once the server has stopped serving.
func (s *Server) Done() <-chan struct{} {
	return s.done
}

// Shutdown disconnects WebSocket clients and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.melody.CloseWithMsg(melody.FormatCloseMessage(1001, "shutting down")); err != nil &&
		!errors.Is(err, melody.ErrClosed) {
		log.Warn().Err(err).Msg("error closing websocket sessions")
	}
	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down api server: %w", err)
	}
	return nil
}

func newRouter(opts *Options, session *melody.Melody, limiter *apimiddleware.IPRateLimiter) http.Handler {
	h := &rpcHandler{
		methods:  opts.Methods,
		panel:    opts.Panel,
		cfg:      opts.Config,
		platform: opts.Platform,
	}

	session.Upgrader.CheckOrigin = checkOrigin(opts.Config.AllowedOrigins())
	session.HandleMessage(apimiddleware.WebSocketRateLimitHandler(limiter, handleWSMessage(h)))
	session.HandleConnect(func(s *melody.Session) {
		log.Debug().Str("addr", s.Request.RemoteAddr).Msg("websocket client connected")
	})
	session.HandleDisconnect(func(s *melody.Session) {
		log.Debug().Str("addr", s.Request.RemoteAddr).Msg("websocket client disconnected")
	})

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(apimiddleware.HTTPIPFilterMiddleware(apimiddleware.NewIPFilter(opts.Config.AllowedIPs())))
	r.Use(privateNetworkAccessMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: append([]string{"http://localhost:*", "http://127.0.0.1:*"},
			opts.Config.AllowedOrigins()...),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(middleware.NoCache)

	r.Group(func(r chi.Router) {
		r.Use(apimiddleware.HTTPRateLimitMiddleware(limiter))

		r.Get(config.APIPath, func(w http.ResponseWriter, r *http.Request) {
			if err := session.HandleRequest(w, r); err != nil {
				log.Error().Err(err).Msg("handling websocket request")
			}
		})

		r.With(middleware.Timeout(config.APIRequestTimeout)).
			Post(config.APIPath, handlePostRequest(h))
	})

	return r
}

// Start binds the API listener and serves it in the background until ctx
// is done. The listener is ready when Start returns.
func Start(ctx context.Context, opts Options) (*Server, error) {
	if opts.Methods == nil {
		opts.Methods = NewDefaultMethodMap()
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}

	session := melody.New()
	session.Config.MaxMessageSize = maxRequestBodySize

	limiter := apimiddleware.NewIPRateLimiter(opts.Clock)
	limiter.StartCleanup(ctx)

	addr := opts.Config.APIListen()
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	s := &Server{
		srv: &http.Server{
			Handler:           newRouter(&opts, session, limiter),
			ReadHeaderTimeout: 10 * time.Second,
		},
		melody: session,
		addr:   ln.Addr(),
		done:   make(chan struct{}),
	}

	if opts.Notifications != nil {
		go broadcastNotifications(ctx, session, opts.Notifications)
	}

	go func() {
		defer close(s.done)
		log.Info().Str("addr", s.addr.String()).Msg("api server listening")
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("api server stopped")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("error shutting down api server")
		}
	}()

	return s, nil
}
