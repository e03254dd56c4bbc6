// Package web serves the viewer page and pushes display changes
// to the connected pages over websocket.
package web

import (
	"context"
	"embed"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/golang/glog"
	"golang.org/x/net/websocket"

	"github.com/robotalks/padscan/pkg/display"
	fx "github.com/robotalks/padscan/pkg/framework"
)

//go:embed static
var staticFS embed.FS

// DefaultClientBuffer is the number of pending messages per client.
const DefaultClientBuffer = 256

// Server is a display.Surface rendered by browsers.
type Server struct {
	Addr         string
	ClientBuffer int
	// OnToggle is invoked when the control on a page is clicked.
	OnToggle func()

	lock    sync.Mutex
	label   string
	order   []string
	blocks  map[string]*display.Block
	clients map[*client]bool
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// NewServer creates a Server.
func NewServer(addr string) *Server {
	return &Server{
		Addr:         addr,
		ClientBuffer: DefaultClientBuffer,
		label:        display.LabelIdle,
		blocks:       make(map[string]*display.Block),
		clients:      make(map[*client]bool),
	}
}

// Handler serves the page and the websocket endpoint.
func (s *Server) Handler() http.Handler {
	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.FS(static)))
	mux.Handle("/ws", websocket.Handler(s.serveWS))
	return mux
}

// AddToLoop implements LoopAdder.
func (s *Server) AddToLoop(l *fx.Loop) {
	l.AddRunnable(fx.NamedRun("http", s))
}

// Run implements Runnable.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.Addr, Handler: s.Handler()}
	errCh := make(chan error, 1)
	go func() {
		glog.Infof("Serving viewer on http://%s", s.Addr)
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	s.lock.Lock()
	for c := range s.clients {
		s.detach(c)
	}
	s.lock.Unlock()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// SetToggleLabel implements display.Surface.
func (s *Server) SetToggleLabel(label string) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.label = label
	s.broadcast(Message{Action: ActionLabel, Label: label})
	return nil
}

// Put implements display.Surface.
func (s *Server) Put(b *display.Block) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	if _, exists := s.blocks[b.ID]; !exists {
		s.order = append(s.order, b.ID)
	}
	s.blocks[b.ID] = b
	s.broadcast(blockMessage(b))
	return nil
}

// Remove implements display.Surface.
func (s *Server) Remove(id string) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	if _, exists := s.blocks[id]; !exists {
		return nil
	}
	delete(s.blocks, id)
	for n, bid := range s.order {
		if bid == id {
			s.order = append(s.order[:n], s.order[n+1:]...)
			break
		}
	}
	s.broadcast(Message{Action: ActionRemove, ID: id})
	return nil
}

// Clear implements display.Surface.
func (s *Server) Clear() error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.order, s.blocks = nil, make(map[string]*display.Block)
	s.broadcast(Message{Action: ActionReset})
	return nil
}

// Clients is the number of connected pages.
func (s *Server) Clients() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.clients)
}

func (s *Server) serveWS(conn *websocket.Conn) {
	c := s.attach(conn)
	go c.writeLoop()
	for {
		var msg Message
		if err := websocket.JSON.Receive(conn, &msg); err != nil {
			break
		}
		s.handle(msg)
	}
	s.lock.Lock()
	s.detach(c)
	s.lock.Unlock()
}

// attach registers the client and queues the current state to it.
func (s *Server) attach(conn *websocket.Conn) *client {
	size := s.ClientBuffer
	if size <= 0 {
		size = DefaultClientBuffer
	}
	c := &client{conn: conn, send: make(chan []byte, size)}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.clients[c] = true
	s.enqueue(c, Message{Action: ActionReset}.encode())
	s.enqueue(c, Message{Action: ActionLabel, Label: s.label}.encode())
	for _, id := range s.order {
		s.enqueue(c, blockMessage(s.blocks[id]).encode())
	}
	return c
}

func (s *Server) handle(msg Message) {
	switch msg.Action {
	case ActionToggle:
		if fn := s.OnToggle; fn != nil {
			fn()
		}
	default:
		glog.Warningf("unknown action from page: %q", msg.Action)
	}
}

func (s *Server) broadcast(msg Message) {
	if len(s.clients) == 0 {
		return
	}
	encoded := msg.encode()
	for c := range s.clients {
		s.enqueue(c, encoded)
	}
}

func (s *Server) enqueue(c *client, data []byte) {
	if !s.clients[c] {
		return
	}
	select {
	case c.send <- data:
	default:
		glog.Warningf("dropping slow viewer %s", c.remoteAddr())
		s.detach(c)
	}
}

func (s *Server) detach(c *client) {
	if s.clients[c] {
		delete(s.clients, c)
		close(c.send)
	}
}

func (c *client) writeLoop() {
	defer c.conn.Close()
	for data := range c.send {
		if err := websocket.Message.Send(c.conn, string(data)); err != nil {
			glog.V(2).Infof("viewer %s: %v", c.remoteAddr(), err)
			return
		}
	}
}

func (c *client) remoteAddr() string {
	if c.conn == nil || c.conn.Request() == nil {
		return "-"
	}
	return c.conn.Request().RemoteAddr
}
