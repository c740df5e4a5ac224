// Package live implements the live-view server (SPEC_FULL §4.14): it replays or tails a
// recording through the terminal emulator and streams the resulting grid to connected
// WebSocket viewers as binary frames.
//
// Grounded directly in a raw WebSocket handler (ping/pong, writer goroutine,
// non-blocking per-client send) and pkg/termsocket/manager.go (subscriber fan-out, one shared
// in-memory buffer feeding many viewers).
package live

import (
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/amantus-ai/cast/pkg/cell"
	"github.com/amantus-ai/cast/pkg/eventlog"
	"github.com/amantus-ai/cast/pkg/tail"
	"github.com/amantus-ai/cast/pkg/term"
	"github.com/amantus-ai/cast/pkg/theme"
)

// growingCheckWindow is how long Server waits between two mtime samples to decide whether the
// source recording is still being appended to (spec §4.14).
const growingCheckWindow = 300 * time.Millisecond

// Server serves one recording file over HTTP+WebSocket. A single in-memory grid is shared by
// every connected viewer; new viewers are caught up with the current grid immediately rather
// than waiting for the next event.
type Server struct {
	path  string
	theme theme.Theme
	speed float64

	mu   sync.RWMutex
	grid cell.GridSnapshot

	clientsMu sync.Mutex
	clients   map[*client]struct{}

	done chan struct{}
}

// NewServer constructs a Server for path. speed paces replay of a finished recording (ignored
// once the source is detected as still-growing, where events are fed as the writer appends
// them). speed <= 0 defaults to 1.0.
func NewServer(path string, th theme.Theme, speed float64) *Server {
	if speed <= 0 {
		speed = 1.0
	}
	return &Server{
		path:    path,
		theme:   th,
		speed:   speed,
		clients: make(map[*client]struct{}),
		done:    make(chan struct{}),
	}
}

// Handler builds the HTTP routing for this server: the embedded landing page at GET / and the
// WebSocket upgrade endpoint at GET /ws.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/ws", s.handleWS).Methods(http.MethodGet)
	return r
}

// Serve starts the feed loop and blocks serving HTTP on l until the listener closes or Close is
// called.
func (s *Server) Serve(l net.Listener) error {
	go s.feedLoop()
	srv := &http.Server{Handler: s.Handler()}
	return srv.Serve(l)
}

// Close stops the feed loop and disconnects every connected viewer.
func (s *Server) Close() {
	select {
	case <-s.done:
	default:
		close(s.done)
	}
	s.clientsMu.Lock()
	for c := range s.clients {
		c.close()
	}
	s.clientsMu.Unlock()
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, indexPage)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("live: upgrade: %v", err)
		return
	}

	c := newClient(conn)
	s.addClient(c)
	defer s.removeClient(c)

	go c.writer()
	c.safeSend(EncodeFrame(s.snapshot()))
	c.reader()
}

func (s *Server) addClient(c *client) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	s.clients[c] = struct{}{}
}

func (s *Server) removeClient(c *client) {
	c.close()
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	delete(s.clients, c)
}

func (s *Server) snapshot() cell.GridSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.grid
}

func (s *Server) broadcast(g cell.GridSnapshot) {
	s.mu.Lock()
	s.grid = g
	s.mu.Unlock()

	frame := EncodeFrame(g)
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	for c := range s.clients {
		c.safeSend(frame)
	}
}

// feedLoop decides, once, whether the source recording is still being appended to (spec
// §4.14): if so it tails new events as they're written; otherwise it replays the whole
// recording once at the configured speed and then holds the final frame.
func (s *Server) feedLoop() {
	if detectGrowing(s.path) {
		s.feedFollow()
	} else {
		s.feedPlayback()
	}
}

func detectGrowing(path string) bool {
	st1, err := os.Stat(path)
	if err != nil {
		return false
	}
	time.Sleep(growingCheckWindow)
	st2, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !st1.ModTime().Equal(st2.ModTime())
}

func (s *Server) feedFollow() {
	fl, header, err := tail.Open(s.path)
	if err != nil {
		log.Printf("live: %v", err)
		return
	}
	defer fl.Close()

	e := term.New(header.Width, header.Height)
	s.broadcast(e.Snapshot())

	events, errs := fl.Events()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			applyEvent(e, ev)
			s.broadcast(e.Snapshot())
		case werr, ok := <-errs:
			if !ok {
				continue
			}
			log.Printf("live: %v", werr)
		case <-s.done:
			return
		}
	}
}

func (s *Server) feedPlayback() {
	f, err := os.Open(s.path)
	if err != nil {
		log.Printf("live: %v", err)
		return
	}
	defer f.Close()

	r, err := eventlog.NewReader(f)
	if err != nil {
		log.Printf("live: %v", err)
		return
	}

	e := term.New(r.Header.Width, r.Header.Height)
	s.broadcast(e.Snapshot())

	lastTime := 0.0
	for {
		select {
		case <-s.done:
			return
		default:
		}

		ev, err := r.Next()
		if err != nil {
			return // EOF: hold the final frame, already broadcast, forever
		}

		if gap := ev.Time - lastTime; gap > 0 {
			select {
			case <-time.After(time.Duration(gap / s.speed * float64(time.Second))):
			case <-s.done:
				return
			}
		}
		lastTime = ev.Time

		applyEvent(e, ev)
		s.broadcast(e.Snapshot())
	}
}

func applyEvent(e *term.Emulator, ev eventlog.Event) {
	switch ev.Kind {
	case eventlog.KindOutput:
		e.Write([]byte(ev.Data))
	case eventlog.KindResize:
		if w, h, err := eventlog.ParseResize(ev.Data); err == nil {
			e.Resize(w, h)
		}
	}
}
