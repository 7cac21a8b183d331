// Package server exposes the simulation library to remote hosts over
// websockets. A client connects for one slug, receives the parameter schema,
// then gets rendered frames at the configured rate; it can push parameter
// updates, resizes, and resets at any time. Each connection owns its own
// simulation instance, so connections never share state.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/san-kum/physlab/internal/canvas"
	"github.com/san-kum/physlab/internal/config"
	"github.com/san-kum/physlab/internal/engine"
)

const (
	defaultCols = 80
	defaultRows = 28
	maxCols     = 300
	maxRows     = 120
	writeWait   = 5 * time.Second
)

// ClientMessage is anything an attached host may send.
type ClientMessage struct {
	Type   string             `json:"type"` // "params", "reset", "resize"
	Params map[string]float64 `json:"params,omitempty"`
	Cols   int                `json:"cols,omitempty"`
	Rows   int                `json:"rows,omitempty"`
}

// Frame is one rendered animation frame.
type Frame struct {
	Type        string  `json:"type"` // "frame"
	T           float64 `json:"t"`
	Frame       string  `json:"frame"`
	Description string  `json:"description"`
	Probe       string  `json:"probe,omitempty"`
	ProbeValue  float64 `json:"probeValue,omitempty"`
}

type helloMessage struct {
	Type   string           `json:"type"` // "config"
	Config config.SimConfig `json:"config"`
}

type Server struct {
	registry *engine.Registry
	log      *zap.Logger
	fps      int
	upgrader websocket.Upgrader
}

func New(registry *engine.Registry, logger *zap.Logger, fps int) *Server {
	if fps <= 0 {
		fps = 30
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		registry: registry,
		log:      logger,
		fps:      fps,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 65536,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Handler serves /sims (the catalog) and /ws (one simulation per socket,
// selected by the ?sim= query parameter).
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/sims", s.handleCatalog)
	mux.HandleFunc("/ws", s.handleSocket)
	return mux
}

func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler()}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	s.log.Info("listening", zap.String("addr", addr), zap.Int("fps", s.fps))
	err := srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	type item struct {
		Slug     string `json:"slug"`
		Name     string `json:"name"`
		Category string `json:"category"`
	}
	items := make([]item, 0)
	for _, slug := range s.registry.List() {
		e, err := s.registry.Lookup(slug)
		if err != nil {
			continue
		}
		items = append(items, item{Slug: e.Config.Slug, Name: e.Config.Name, Category: e.Config.Category})
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(items)
}

func (s *Server) handleSocket(w http.ResponseWriter, r *http.Request) {
	slug := r.URL.Query().Get("sim")
	entry, err := s.registry.Lookup(slug)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	s.log.Info("client attached", zap.String("sim", slug), zap.String("remote", r.RemoteAddr))
	s.drive(conn, entry)
	s.log.Info("client detached", zap.String("sim", slug), zap.String("remote", r.RemoteAddr))
}

// drive owns one connection's frame loop: a reader goroutine feeds inbound
// messages into a channel, and the ticker loop applies them between frames.
func (s *Server) drive(conn *websocket.Conn, entry engine.Entry) {
	surface := canvas.New(defaultCols, defaultRows)
	sim := entry.New()
	if err := sim.Init(surface); err != nil {
		s.log.Error("init failed", zap.String("sim", entry.Config.Slug), zap.Error(err))
		return
	}
	defer sim.Destroy()

	hello := helloMessage{Type: "config", Config: entry.Config}
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(hello); err != nil {
		return
	}

	inbound := make(chan ClientMessage, 8)
	done := make(chan struct{})
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		defer close(done)
		for {
			var msg ClientMessage
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			select {
			case inbound <- msg:
			case <-quit:
				return
			}
		}
	}()

	params := entry.Config.Defaults()
	dt := 1 / float64(s.fps)
	elapsed := 0.0

	ticker := time.NewTicker(time.Second / time.Duration(s.fps))
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case msg := <-inbound:
			switch msg.Type {
			case "params":
				for k, v := range msg.Params {
					params[k] = v
				}
				params = config.Normalize(params, entry.Config.ParamSpecs)
			case "reset":
				sim.Reset()
				elapsed = 0
			case "resize":
				cols := int(engine.Clamp(float64(msg.Cols), 4, maxCols))
				rows := int(engine.Clamp(float64(msg.Rows), 4, maxRows))
				surface.Resize(cols, rows)
				w, h := surface.Size()
				sim.Resize(w, h)
			}
		case <-ticker.C:
			sim.Update(dt, engine.Params(params))
			sim.Render()
			elapsed += dt

			frame := Frame{
				Type:        "frame",
				T:           elapsed,
				Frame:       surface.String(),
				Description: sim.StateDescription(),
			}
			if p, ok := sim.(engine.Probe); ok {
				frame.Probe = p.ProbeName()
				frame.ProbeValue = p.ProbeValue()
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(frame); err != nil {
				return
			}
		}
	}
}
