// Command sandbox opens a window with the example layer and the engine's
// debug overlays.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"runtime"

	"github.com/hubastard/hazel/engine/core"
	"github.com/hubastard/hazel/engine/gfx"
	glbackend "github.com/hubastard/hazel/engine/gfx/gl"
	"github.com/hubastard/hazel/engine/layers"
	"github.com/hubastard/hazel/engine/logging"
	"github.com/hubastard/hazel/engine/platform"
	"github.com/hubastard/hazel/engine/profiler"
)

func init() {
	// GLFW and the GL context belong to the main thread.
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "sandbox.toml", "TOML or YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		logging.Logger().Error("sandbox failed", "error", err)
		fmt.Fprintln(os.Stderr, "sandbox:", err)
		os.Exit(1)
	}
}

// loadConfig reads path, falling back to the defaults when it does not exist.
func loadConfig(path string) (core.Config, error) {
	cfg, err := core.LoadConfig(path)
	if errors.Is(err, fs.ErrNotExist) {
		return core.DefaultConfig(), nil
	}
	return cfg, err
}

func run(configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logging.SetLogger(logging.NewTextLogger(os.Stderr, level))
	profiler.Init(1 << 16)

	win, err := platform.NewWindow(cfg)
	if err != nil {
		return err
	}
	power, _ := cfg.PowerPreferenceValue()
	dev, err := glbackend.NewDevice(win, gfx.DeviceOptions{Label: cfg.Title, PowerPreference: power})
	if err != nil {
		win.Destroy()
		return err
	}
	app, err := core.NewApplication(cfg, win, dev)
	if err != nil {
		dev.Destroy()
		win.Destroy()
		return err
	}

	if err := pushLayers(app); err != nil {
		app.Destroy()
		return err
	}
	return app.Run()
}

func pushLayers(app *core.Application) error {
	for _, l := range []core.Layer{NewExampleLayer()} {
		if err := app.PushLayer(l); err != nil {
			return err
		}
	}
	for _, l := range []core.Layer{layers.NewControls(), layers.NewDebugText(), layers.NewDebugUI()} {
		if err := app.PushOverlay(l); err != nil {
			return err
		}
	}
	return nil
}
