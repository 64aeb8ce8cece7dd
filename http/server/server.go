package server

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gclaussn/go-bpmn-schema/codec"
	"github.com/gclaussn/go-bpmn-schema/http/common"
	"github.com/gclaussn/go-bpmn-schema/store"
)

func New(s store.Store, customizers ...func(*Options)) (*Server, error) {
	if s == nil {
		return nil, errors.New("store is nil")
	}

	options := NewOptions()
	for _, customizer := range customizers {
		customizer(&options)
	}

	if err := options.Validate(); err != nil {
		return nil, err
	}

	mux := http.NewServeMux()

	handler := &basicAuthHandler{
		username: options.BasicAuthUsername,
		password: options.BasicAuthPassword,
		handler:  mux,
	}

	// server-wide context for incoming requests
	httpServerCtx, httpServerCancel := context.WithCancel(context.Background())

	httpServer := http.Server{
		Addr: options.BindAddress,
		BaseContext: func(_ net.Listener) context.Context {
			return httpServerCtx
		},
		Handler:      http.TimeoutHandler(handler, options.HandlerTimeout, "handler timed out"),
		IdleTimeout:  options.IdleTimeout,
		ReadTimeout:  options.ReadTimeout,
		WriteTimeout: options.WriteTimeout,
	}

	if options.Configure != nil {
		options.Configure(&httpServer)
	}

	server := Server{
		handler:          handler,
		httpServer:       &httpServer,
		httpServerCtx:    httpServerCtx,
		httpServerCancel: httpServerCancel,
		options:          options,
		store:            s,
	}

	// operations:start
	mux.HandleFunc("POST "+common.PathDiagrams, server.saveDiagram)
	mux.HandleFunc("POST "+common.PathDiagramsQuery, server.queryDiagrams)
	mux.HandleFunc("POST "+common.PathDiagramsValidate, server.validateDiagram)
	mux.HandleFunc("GET "+common.PathDiagramsId, server.getDiagram)
	mux.HandleFunc("DELETE "+common.PathDiagramsId, server.deleteDiagram)
	mux.HandleFunc("GET "+common.PathDiagramsFindings, server.getFindings)

	mux.HandleFunc("GET "+common.PathReadiness, server.checkReadiness)
	// operations:end

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	return &server, nil
}

func NewOptions() Options {
	return Options{
		BindAddress: "127.0.0.1:8080",

		HandlerTimeout: 30 * time.Second,
		IdleTimeout:    60 * time.Second,
		ReadTimeout:    5 * time.Second,
		WriteTimeout:   35 * time.Second,

		ShutdownDelay:       5 * time.Second,
		ShutdownPeriod:      30 * time.Second,
		ShutdownForcePeriod: 5 * time.Second,
	}
}

type Options struct {
	BindAddress string // TCP address for the server to listen on.

	HandlerTimeout time.Duration // Time limit for HTTP handler - when reached, the handler responds with HTTP 503.
	IdleTimeout    time.Duration // Maximum amount of time to wait for the next request, when keep-alives are enabled - see http.Server#IdleTimeout
	ReadTimeout    time.Duration // Maximum duration for reading the entire request - see http.Server#ReadTimeout
	WriteTimeout   time.Duration // Maximum duration before timing out writing the response - see http.Server#WriteTimeout

	ShutdownDelay       time.Duration // Delay between the shutdown signal and the actual shutdown, used to propagate readiness.
	ShutdownPeriod      time.Duration // Period for a graceful shutdown without interrupting ongoing requests.
	ShutdownForcePeriod time.Duration // Period for a forced shutdown, where ongoing requests are canceled.

	BasicAuthUsername string
	BasicAuthPassword string

	Configure func(*http.Server) // Optional function, used to configure the underlying HTTP server if needed.
}

func (o Options) Validate() error {
	if o.BasicAuthUsername == "" || o.BasicAuthPassword == "" {
		return errors.New("basic auth username and password must be provided")
	}
	if o.HandlerTimeout <= 0 {
		return errors.New("handler timeout must be greater than 0")
	}
	return nil
}

type Server struct {
	handler          http.Handler // authenticating handler, not limited by the handler timeout
	httpServer       *http.Server
	httpServerCtx    context.Context    // server-wide base context for incoming requests
	httpServerCancel context.CancelFunc // invoked after server shutdown to cancel to ongoing requests
	isShuttingDown   atomic.Bool
	options          Options
	store            store.Store
}

// Handler returns the HTTP handler of the server, which can be used with a [net/http/httptest.Server].
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) ListenAndServe() {
	go func() {
		log.Printf("server listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("failed to listen and serve HTTP: %v", err)
		}
	}()
}

func (s *Server) Shutdown() {
	s.isShuttingDown.Store(true)
	log.Println("server is shutting down")

	time.Sleep(s.options.ShutdownDelay)
	log.Println("server is shutting down gracefully")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), s.options.ShutdownPeriod)
	defer shutdownCancel()

	err := s.httpServer.Shutdown(shutdownCtx)
	s.httpServerCancel()
	if err != nil {
		log.Printf("failed to shutdown HTTP server: %v", err)
		time.Sleep(s.options.ShutdownForcePeriod)
	}

	s.store.Shutdown()
	log.Println("server shut down")
}

// command handler

func (s *Server) deleteDiagram(w http.ResponseWriter, r *http.Request) {
	id, err := parseId(r)
	if err != nil {
		encodeJSONProblemResponseBody(w, r, err)
		return
	}

	if err := s.store.Delete(r.Context(), id); err != nil {
		encodeJSONProblemResponseBody(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) saveDiagram(w http.ResponseWriter, r *http.Request) {
	revision, err := parseRevision(r)
	if err != nil {
		encodeJSONProblemResponseBody(w, r, err)
		return
	}

	d, err := decodeDiagramRequestBody(w, r)
	if err != nil {
		encodeJSONProblemResponseBody(w, r, err)
		return
	}

	record, err := s.store.Save(r.Context(), store.SaveCmd{Diagram: d, Revision: revision})
	if err != nil {
		encodeJSONProblemResponseBody(w, r, err)
		return
	}

	statusCode := http.StatusOK
	if record.Revision == 1 {
		statusCode = http.StatusCreated
	}

	encodeJSONResponseBody(w, r, record, statusCode)
}

func (s *Server) validateDiagram(w http.ResponseWriter, r *http.Request) {
	customizer, err := parseRules(r)
	if err != nil {
		encodeJSONProblemResponseBody(w, r, err)
		return
	}

	d, err := decodeDiagramRequestBody(w, r)
	if err != nil {
		encodeJSONProblemResponseBody(w, r, err)
		return
	}

	resBody, err := common.NewFindingsRes(d, customizer)
	if err != nil {
		encodeJSONProblemResponseBody(w, r, err)
		return
	}

	encodeJSONResponseBody(w, r, resBody, http.StatusOK)
}

// query handler

func (s *Server) getDiagram(w http.ResponseWriter, r *http.Request) {
	id, err := parseId(r)
	if err != nil {
		encodeJSONProblemResponseBody(w, r, err)
		return
	}

	d, record, err := s.store.Load(r.Context(), id)
	if err != nil {
		encodeJSONProblemResponseBody(w, r, err)
		return
	}

	resBody := common.DiagramRes{
		Record:  record,
		Diagram: codec.NewDocument(d),
	}

	encodeJSONResponseBody(w, r, resBody, http.StatusOK)
}

func (s *Server) getFindings(w http.ResponseWriter, r *http.Request) {
	id, err := parseId(r)
	if err != nil {
		encodeJSONProblemResponseBody(w, r, err)
		return
	}

	customizer, err := parseRules(r)
	if err != nil {
		encodeJSONProblemResponseBody(w, r, err)
		return
	}

	d, _, err := s.store.Load(r.Context(), id)
	if err != nil {
		encodeJSONProblemResponseBody(w, r, err)
		return
	}

	resBody, err := common.NewFindingsRes(d, customizer)
	if err != nil {
		encodeJSONProblemResponseBody(w, r, err)
		return
	}

	encodeJSONResponseBody(w, r, resBody, http.StatusOK)
}

func (s *Server) queryDiagrams(w http.ResponseWriter, r *http.Request) {
	var criteria store.Criteria
	if err := decodeJSONRequestBody(w, r, &criteria); err != nil {
		encodeJSONProblemResponseBody(w, r, err)
		return
	}

	records, err := s.store.Query(r.Context(), criteria)
	if err != nil {
		encodeJSONProblemResponseBody(w, r, err)
		return
	}

	resBody := common.RecordRes{
		Count:   len(records),
		Results: records,
	}

	encodeJSONResponseBody(w, r, resBody, http.StatusOK)
}

func (s *Server) checkReadiness(w http.ResponseWriter, r *http.Request) {
	if s.isShuttingDown.Load() {
		http.Error(w, "server is shutting down", http.StatusServiceUnavailable)
		return
	}
	w.Write([]byte("ready"))
}
