package main

import (
	"encoding/json"
	"fmt"
	"image/color"
	"math"

	"github.com/ajpkim/interactive-boids/flock"
	"github.com/ajpkim/interactive-boids/vector"
)

// Protocol uses single-character JSON keys to minimize wire size.
// All x,y coordinates are rounded to 1 decimal place.
//
// Message type constants (value of "t" field):
//   Client → Server:
//     "p" = params  {"t":"p","p":{"alignMagnitude":0.1,"boidCount":200}}
//                   (partial; merged over the current params)
//   Server → Client:
//     "w" = welcome {"t":"w","i":"id","w":800,"h":600,"p":{params}}
//     "s" = state   {"t":"s","k":tick,"b":[boids],"p":[predators]}
//     "e" = error   {"t":"e","m":"message"}
//
// BoidDTO:     {"i":id,"s":[[x,y],[x,y],[x,y],[x,y]]}
//   s = polygon head, left, tail, right
// PredatorDTO: {"i":id,"s":[[x,y],...],"c":"#color","z":size,"e":eaten,"m":"seeking","x":1}
//   x = exploding, omitted if not

// Message type identifiers
const (
	MsgParams  = "p"
	MsgWelcome = "w"
	MsgState   = "s"
	MsgError   = "e"
)

// ClientMessage is an incoming message from the browser.
type ClientMessage struct {
	Type   string          `json:"t"`
	Params json.RawMessage `json:"p,omitempty"`
}

// WelcomeMsg is sent to a viewer immediately on WebSocket connect.
type WelcomeMsg struct {
	Type   string       `json:"t"`
	ID     string       `json:"i"`
	Width  float64      `json:"w"`
	Height float64      `json:"h"`
	Params flock.Params `json:"p"`
}

// Polygon is an agent outline as flat [x,y] pairs: head, left, tail, right.
type Polygon [4][2]float64

// BoidDTO is the compact boid for per-tick state updates.
type BoidDTO struct {
	ID    uint64  `json:"i"`
	Shape Polygon `json:"s"`
}

// PredatorDTO is the compact predator for per-tick state updates.
type PredatorDTO struct {
	ID        uint64  `json:"i"`
	Shape     Polygon `json:"s"`
	Color     string  `json:"c"`
	Size      float64 `json:"z"`
	Eaten     int     `json:"e"`
	State     string  `json:"m"`
	Exploding int     `json:"x,omitempty"` // 1 if exploding, omitted if not
}

// StateMsg is the per-tick state update broadcast to every viewer.
type StateMsg struct {
	Type      string        `json:"t"`
	Tick      uint64        `json:"k"`
	Boids     []BoidDTO     `json:"b"`
	Predators []PredatorDTO `json:"p"`
}

// ErrorMsg reports a rejected connection or message.
type ErrorMsg struct {
	Type    string `json:"t"`
	Message string `json:"m"`
}

// StateFromSnapshot converts the drawable simulation state to its wire form.
func StateFromSnapshot(snap flock.Snapshot) StateMsg {
	msg := StateMsg{
		Type:      MsgState,
		Tick:      snap.Tick,
		Boids:     make([]BoidDTO, len(snap.Boids)),
		Predators: make([]PredatorDTO, len(snap.Predators)),
	}
	for i, b := range snap.Boids {
		msg.Boids[i] = BoidDTO{ID: b.ID, Shape: polygon(b.Shape)}
	}
	for i, pr := range snap.Predators {
		dto := PredatorDTO{
			ID:    pr.ID,
			Shape: polygon(pr.Shape),
			Color: hexColor(pr.Color),
			Size:  roundTo1(pr.Shape.Head.Dist(pr.Shape.Left)),
			Eaten: pr.EatCount,
			State: pr.State,
		}
		if pr.Exploding {
			dto.Exploding = 1
		}
		msg.Predators[i] = dto
	}
	return msg
}

func polygon(s flock.Shape) Polygon {
	var p Polygon
	for i, v := range [4]vector.Vec2{s.Head, s.Left, s.Tail, s.Right} {
		p[i] = [2]float64{roundTo1(v.X), roundTo1(v.Y)}
	}
	return p
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// roundTo1 rounds to 1 decimal place
func roundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}
