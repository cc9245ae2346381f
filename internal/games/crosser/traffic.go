package crosser

import (
	"fmt"
)

// moveVehicles advances every vehicle along its lane for dt milliseconds.
func (e *Engine) moveVehicles(dt float64) {
	mult := e.difficulty.SpeedMultiplier(e.state.CurrentLevel)
	step := dt / FrameReference

	for i := range e.state.Vehicles {
		v := &e.state.Vehicles[i]
		dx := v.Speed * mult * step
		if v.Direction == DirLeft {
			v.X -= dx
		} else {
			v.X += dx
		}
	}
}

// cullVehicles drops vehicles that left [-CullMargin, gameWidth+CullMargin].
func (e *Engine) cullVehicles() {
	maxX := float64(e.cfg.Game.GameWidth) + CullMargin
	kept := e.state.Vehicles[:0]
	for _, v := range e.state.Vehicles {
		if v.X < -CullMargin || v.X > maxX {
			continue
		}
		kept = append(kept, v)
	}
	e.state.Vehicles = kept
}

// maybeSpawn draws once per frame and spawns a vehicle when the draw succeeds.
func (e *Engine) maybeSpawn() {
	if e.rng.Float64() < e.difficulty.SpawnRate(e.state.CurrentCity) {
		e.spawnVehicle()
	}
}

// spawnVehicle appends one vehicle of a random allowed type in a random
// traffic lane. Types missing from the vehicle table are skipped.
func (e *Engine) spawnVehicle() {
	types := e.City().VehicleTypes
	if len(types) == 0 || len(e.trafficLanes) == 0 {
		return
	}

	typ := types[e.rng.Intn(len(types))]
	vc, ok := e.cfg.Vehicles[typ]
	if !ok {
		return
	}

	laneY := e.trafficLanes[e.rng.Intn(len(e.trafficLanes))]

	dir := DirRight
	x := -SpawnOffset
	if e.rng.Intn(2) == 0 {
		dir = DirLeft
		x = float64(e.cfg.Game.GameWidth) + SpawnOffset
	}

	e.nextID++
	e.state.Vehicles = append(e.state.Vehicles, Vehicle{
		ID:        fmt.Sprintf("vehicle-%d", e.nextID),
		Type:      typ,
		X:         x,
		Y:         laneY,
		Speed:     vc.Speed,
		Direction: dir,
		Lane:      e.laneIndex(laneY),
		Width:     vc.Width,
		Height:    vc.Height,
	})
}

// laneIndex returns the index of a lane position in the configured lane list.
func (e *Engine) laneIndex(y float64) int {
	for i, p := range e.cfg.Lanes.Positions {
		if p == y {
			return i
		}
	}
	return -1
}
