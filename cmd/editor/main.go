package main

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"sdf-engine/internal/bridge"
	"sdf-engine/internal/engine"
	"sdf-engine/internal/engineconfig"
	"sdf-engine/internal/logger"
)

const (
	windowWidth  = 1280
	windowHeight = 800

	// eventQueueSize bounds the input and delta queues. At 60 fps input and a
	// 120 Hz engine tick a handful of slots suffice; 64 absorbs stalls.
	eventQueueSize = 64

	// engineStopTimeout bounds how long the window waits for the engine
	// goroutine after closing its side of the bridge.
	engineStopTimeout = 2 * time.Second
)

func main() {
	prefs := engineconfig.Load(engineconfig.DefaultPath)
	log := logger.Must(prefs.Debug)
	defer log.Sync()

	channels := bridge.NewChannels(eventQueueSize)
	eng := engine.New(prefs, channels, log.Named("engine"))
	if err := buildDemoScene(eng); err != nil {
		log.Fatal("building demo scene", zap.Error(err))
	}

	done := make(chan struct{})
	go func() {
		eng.Run()
		close(done)
	}()

	runWindow(channels, prefs, log.Named("render"))

	// The render side owns the input queue; closing it is the shutdown signal
	// the engine keys its lifetime off.
	channels.Input.Close()
	select {
	case <-done:
	case <-time.After(engineStopTimeout):
		log.Warn("engine goroutine did not stop in time")
	}

	if err := engineconfig.Save(engineconfig.DefaultPath, prefs); err != nil {
		log.Warn("saving preferences", zap.Error(err))
	}
}

// runWindow owns the OS window and the render loop: it samples input for the
// engine, mirrors shipped deltas into encoded GPU state and draws the scene.
// Returns when the user closes the window or the engine disconnects.
func runWindow(channels *bridge.Channels, prefs engineconfig.Prefs, log *zap.Logger) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(windowWidth, windowHeight, "sdf editor")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	r, err := newRenderer(channels, prefs, log)
	if err != nil {
		log.Error("starting renderer", zap.Error(err))
		return
	}
	defer r.close()

	for !rl.WindowShouldClose() {
		if !r.update() {
			log.Info("engine disconnected, closing window")
			return
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		r.draw()
		rl.EndDrawing()

		r.publishFrame()
	}
}
