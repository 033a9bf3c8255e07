package network

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/oklog/ulid/v2"

	"github.com/lixenwraith/minesim/status"
	"github.com/lixenwraith/minesim/system"
)

// ErrClosed is returned by ListenAndServe after Close
var ErrClosed = errors.New("broadcaster closed")

// Broadcaster fans simulation snapshots out to websocket spectators
// Publish is called from the simulation goroutine; peers are served on their own goroutines
// now may be replaced in tests
type Broadcaster struct {
	cfg   *Config
	runID ulid.ULID

	upgrader websocket.Upgrader

	mu     sync.RWMutex
	peers  map[PeerID]*Peer
	nextID PeerID
	closed bool

	seq         uint64
	lastPublish time.Time
	now         func() time.Time

	statPeers *atomic.Int64
	server    *http.Server
}

// NewBroadcaster creates a broadcaster for one run
func NewBroadcaster(cfg *Config, runID ulid.ULID, reg *status.Registry) *Broadcaster {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &Broadcaster{
		cfg:   cfg,
		runID: runID,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// Spectating is read-only; any origin may watch
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		peers:     make(map[PeerID]*Peer),
		now:       time.Now,
		statPeers: reg.Ints.Get(status.SpectatorsActive),
	}
}

// RunID returns the id stamped on every message
func (b *Broadcaster) RunID() ulid.ULID {
	return b.runID
}

// Handler returns the HTTP handler serving the /ws endpoint
func (b *Broadcaster) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", b.serveWS)
	return mux
}

func (b *Broadcaster) serveWS(w http.ResponseWriter, r *http.Request) {
	b.mu.RLock()
	full := b.closed || len(b.peers) >= b.cfg.MaxPeers
	b.mu.RUnlock()
	if full {
		http.Error(w, "spectator limit reached", http.StatusServiceUnavailable)
		return
	}

	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Websocket upgrade failed: %v", err)
		return
	}

	b.mu.Lock()
	if b.closed || len(b.peers) >= b.cfg.MaxPeers {
		b.mu.Unlock()
		conn.Close()
		return
	}
	b.nextID++
	peer := newPeer(b.nextID, conn, b.cfg.SendQueueSize)
	b.peers[peer.ID] = peer
	b.mu.Unlock()

	b.statPeers.Add(1)
	log.Printf("Spectator %d connected from %s", peer.ID, peer.Addr)

	go peer.writeLoop(b.cfg)
	go func() {
		peer.readLoop(b.cfg)
		b.removePeer(peer)
	}()
}

func (b *Broadcaster) removePeer(p *Peer) {
	b.mu.Lock()
	_, ok := b.peers[p.ID]
	delete(b.peers, p.ID)
	b.mu.Unlock()

	if ok {
		b.statPeers.Add(-1)
		log.Printf("Spectator %d disconnected", p.ID)
	}
}

// PeerCount returns the number of connected spectators
func (b *Broadcaster) PeerCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.peers)
}

// Publish encodes snap once and queues it to every peer
// Calls closer together than Interval are dropped; returns whether the snapshot was sent
// Slow peers miss messages instead of blocking the simulation
func (b *Broadcaster) Publish(snap system.Snapshot) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed || len(b.peers) == 0 {
		return false
	}

	now := b.now()
	if !b.lastPublish.IsZero() && now.Sub(b.lastPublish) < b.cfg.Interval {
		return false
	}

	b.seq++
	data, err := json.Marshal(NewSnapshotMessage(b.runID, b.seq, snap))
	if err != nil {
		log.Printf("Snapshot encode failed: %v", err)
		return false
	}
	b.lastPublish = now

	for _, p := range b.peers {
		p.Send(data)
	}
	return true
}

// ListenAndServe serves spectators on cfg.Address until ctx is cancelled
func (b *Broadcaster) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", b.cfg.Address)
	if err != nil {
		return fmt.Errorf("listen %s: %w", b.cfg.Address, err)
	}
	return b.Serve(ctx, ln)
}

// Serve accepts spectators on ln until ctx is cancelled
func (b *Broadcaster) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           b.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		ln.Close()
		return ErrClosed
	}
	b.server = srv
	b.mu.Unlock()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	log.Printf("Spectator server listening on %s", ln.Addr())

	select {
	case <-ctx.Done():
		b.Close()
		<-errCh
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return ErrClosed
		}
		return err
	}
}

// Close disconnects every peer and stops the server
func (b *Broadcaster) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	srv := b.server
	peers := make([]*Peer, 0, len(b.peers))
	for _, p := range b.peers {
		peers = append(peers, p)
	}
	b.mu.Unlock()

	for _, p := range peers {
		p.Close()
	}
	if srv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), b.cfg.WriteTimeout)
		defer cancel()
		srv.Shutdown(ctx)
	}
}
