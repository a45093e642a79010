package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// sweepEvery is how often allow drops entries older than the cooldown.
const sweepEvery = time.Minute

// ipRateLimiter tracks last connection time per IP to prevent abuse
type ipRateLimiter struct {
	mu       sync.Mutex
	times    map[string]time.Time
	cooldown time.Duration
	swept    time.Time
	now      func() time.Time
}

func newIPRateLimiter(cooldown time.Duration) *ipRateLimiter {
	return &ipRateLimiter{
		times:    make(map[string]time.Time),
		cooldown: cooldown,
		swept:    time.Now(),
		now:      time.Now,
	}
}

// allow returns true if this IP can connect, and records the attempt.
// Stale entries are swept lazily so the limiter needs no goroutine.
func (rl *ipRateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	now := rl.now()
	if now.Sub(rl.swept) >= sweepEvery {
		cutoff := now.Add(-rl.cooldown)
		for k, t := range rl.times {
			if t.Before(cutoff) {
				delete(rl.times, k)
			}
		}
		rl.swept = now
	}
	if last, ok := rl.times[ip]; ok {
		if now.Sub(last) < rl.cooldown {
			return false
		}
	}
	rl.times[ip] = now
	return true
}

// clientIP returns the address the cooldown is keyed on. X-Forwarded-For is
// client-controlled, so it is only honored behind a trusted reverse proxy,
// and then only its first (original client) entry.
func clientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
			first, _, _ := strings.Cut(fwd, ",")
			if ip := strings.TrimSpace(first); ip != "" {
				return ip
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins for development; tighten in production
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// Enable per-message deflate compression (RFC 7692)
	EnableCompression: true,
}

// sendErrorAndClose sends an error message via WebSocket then closes the connection
func sendErrorAndClose(ws *websocket.Conn, msg string) {
	data, _ := json.Marshal(ErrorMsg{Type: MsgError, Message: msg})
	_ = ws.WriteMessage(websocket.TextMessage, data)
	ws.Close()
}

// newHandler wires the websocket endpoint and the static client files.
func newHandler(conf Config, world *World, conns *ConnManager) http.Handler {
	rateLimiter := newIPRateLimiter(time.Duration(conf.IPCooldownSec) * time.Second)
	mux := http.NewServeMux()

	mux.HandleFunc(WebSocketPath, func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r, conf.TrustProxy)

		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("ws upgrade error: %v", err)
			return
		}

		// Check limits after upgrade so client can receive error messages
		if conns.Count() >= conf.MaxViewers {
			sendErrorAndClose(ws, "Server full. Please try again later.")
			return
		}
		if !rateLimiter.allow(ip) {
			sendErrorAndClose(ws, fmt.Sprintf("Too many connections. Please wait %d seconds.", conf.IPCooldownSec))
			return
		}

		ws.EnableWriteCompression(true)

		conn := NewConn(ws)
		conns.Add(conn)
		log.Printf("viewer connected: %s (%d total)", conn.ID, conns.Count())

		// Send welcome immediately so client knows the canvas and current params
		p := world.Params()
		_ = conn.Send(WelcomeMsg{
			Type:   MsgWelcome,
			ID:     conn.ID,
			Width:  p.Width,
			Height: p.Height,
			Params: p,
		})

		onDisconnect := func(c *Conn) {
			conns.Remove(c.ID)
			log.Printf("viewer disconnected: %s", c.ID)
		}

		// Blocking read loop, runs until client disconnects
		conn.ReadLoop(world, onDisconnect)
	})

	mux.Handle("/", http.FileServer(http.Dir(conf.StaticDir)))
	return mux
}

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	flag.Parse()

	conf, err := LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	seed := conf.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	world, err := NewWorld(conf.Flock, seed, conf.Limits())
	if err != nil {
		log.Fatalf("world: %v", err)
	}
	conns := NewConnManager()
	loop := NewGameLoop(world, conns, conf.TickRate)

	// Start game loop in background
	go loop.Run()

	log.Printf("server listening on %s (canvas %.0fx%.0f, %d boids, %d predators, seed %d)",
		conf.Addr, conf.Flock.Width, conf.Flock.Height, conf.Flock.BoidCount, conf.Flock.PredatorCount, seed)
	if err := http.ListenAndServe(conf.Addr, newHandler(conf, world, conns)); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
