package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/tartampluch/go-jalali-picker/internal/config"
)

// document stores a rendered export and its metadata for HTTP caching.
type document struct {
	data         []byte
	contentType  string
	etag         string
	lastModified string // RFC1123 format required by HTTP headers
}

// FeedServer serves the exports of the last picked date on localhost.
// Reads are lock-free: every route keeps its latest document behind an
// atomic.Pointer, replaced wholesale on each pick.
type FeedServer struct {
	calendar atomic.Pointer[document]
	contact  atomic.Pointer[document]
	Port     string
}

// NewFeedServer creates a new instance of the server.
func NewFeedServer(port string) *FeedServer {
	return &FeedServer{
		Port: port,
	}
}

// URL returns the address of a route on this server.
func (s *FeedServer) URL(route string) string {
	return config.SchemeHTTP + config.LocalhostBindAddr + config.AddrSeparator + s.Port + route
}

// Handler returns the routing table.
func (s *FeedServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(config.RouteCalendar, func(w http.ResponseWriter, r *http.Request) {
		s.serveDocument(w, r, s.calendar.Load())
	})
	mux.HandleFunc(config.RouteContact, func(w http.ResponseWriter, r *http.Request) {
		s.serveDocument(w, r, s.contact.Load())
	})
	return mux
}

// Start initializes the HTTP server and blocks until the context is cancelled.
func (s *FeedServer) Start(ctx context.Context) error {
	if s.Port == "" {
		return fmt.Errorf(config.ErrPortRequired)
	}

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      s.Handler(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.Port,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// UpdateCalendar replaces the served iCalendar feed.
func (s *FeedServer) UpdateCalendar(data []byte) {
	doc := newDocument(data, config.MimeTextCalendar)
	s.calendar.Store(doc)
	logUpdate(config.RouteCalendar, doc)
}

// UpdateContact replaces the served vCard.
func (s *FeedServer) UpdateContact(data []byte) {
	doc := newDocument(data, config.MimeTextVCard)
	s.contact.Store(doc)
	logUpdate(config.RouteContact, doc)
}

func newDocument(data []byte, contentType string) *document {
	hash := sha256.Sum256(data)
	return &document{
		data:         data,
		contentType:  contentType,
		etag:         fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:])),
		lastModified: time.Now().UTC().Format(http.TimeFormat),
	}
}

func logUpdate(route string, doc *document) {
	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeyRoute, route,
		config.LogKeySizeBytes, len(doc.data),
		config.LogKeyETag, doc.etag,
	)
}

// serveDocument writes doc with HTTP caching support.
func (s *FeedServer) serveDocument(w http.ResponseWriter, r *http.Request, doc *document) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return
	}

	if doc == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
		return
	}

	w.Header().Set(config.HeaderContentType, doc.contentType)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.Header().Set(config.HeaderETag, doc.etag)
	w.Header().Set(config.HeaderLastModified, doc.lastModified)

	if match := r.Header.Get(config.HeaderIfNoneMatch); match == doc.etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if since := r.Header.Get(config.HeaderIfModifiedSince); since != "" {
		if clientTime, err := time.Parse(http.TimeFormat, since); err == nil {
			if serverTime, err := time.Parse(http.TimeFormat, doc.lastModified); err == nil {
				if !serverTime.After(clientTime) {
					w.WriteHeader(http.StatusNotModified)
					return
				}
			}
		}
	}

	if r.Method == http.MethodGet {
		if _, err := io.Copy(w, bytes.NewReader(doc.data)); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
		}
	}
}
