package main

import (
	"encoding/json"
	"log"
	"time"

	"github.com/ajpkim/interactive-boids/flock"
)

// GameLoop drives the simulation at a fixed tick rate
type GameLoop struct {
	world    *World
	conns    *ConnManager
	tickRate int

	// accumulated since the last stats line
	eaten, exploded, spawned int
}

// NewGameLoop creates a game loop bound to world and conn manager.
func NewGameLoop(world *World, conns *ConnManager, tickRate int) *GameLoop {
	return &GameLoop{world: world, conns: conns, tickRate: tickRate}
}

// Run starts the fixed-timestep loop. Blocks until process exits.
func (gl *GameLoop) Run() {
	ticker := time.NewTicker(time.Second / time.Duration(gl.tickRate))
	defer ticker.Stop()
	log.Printf("game loop started at %d ticks/sec", gl.tickRate)

	for range ticker.C {
		gl.tick()
	}
}

// tick executes a single simulation update and broadcasts the result
func (gl *GameLoop) tick() flock.StepStats {
	stats := gl.world.Step()
	gl.record(stats)

	if gl.conns.Count() > 0 {
		gl.broadcast(gl.world.State())
	}
	return stats
}

func (gl *GameLoop) record(st flock.StepStats) {
	gl.eaten += st.Eaten
	gl.exploded += st.Exploded
	gl.spawned += st.Spawned
	if st.Exploded > 0 {
		log.Printf("tick %d: %d predator(s) exploded, %d offspring", st.Tick, st.Exploded, st.Spawned)
	}
	if st.Tick%StatsEvery != 0 {
		return
	}
	log.Printf("tick %d: %d boids, %d predators, %d pairs, %d viewers; last %d ticks: %d eaten, %d exploded, %d spawned",
		st.Tick, st.Boids, st.Predators, st.Pairs, gl.conns.Count(),
		StatsEvery, gl.eaten, gl.exploded, gl.spawned)
	gl.eaten, gl.exploded, gl.spawned = 0, 0, 0
}

// broadcast sends the same state message to every connected viewer.
func (gl *GameLoop) broadcast(msg StateMsg) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("encode state: %v", err)
		return
	}
	for _, c := range gl.conns.Snapshot() {
		if err := c.SendRaw(data); err != nil {
			log.Printf("send error to %s: %v", c.ID, err)
		}
	}
}
