package gfx

import (
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/hubastard/hazel/engine/logging"
)

// DefaultFormat is the colour format of the presentation resource.
const DefaultFormat = gputypes.TextureFormatBGRA8UnormSrgb

// SurfaceConfig is everything the presentation resource depends on.
// Width and Height are physical pixels.
type SurfaceConfig struct {
	Width, Height int
	ScaleFactor   float64
	PresentMode   gputypes.PresentMode
	Format        gputypes.TextureFormat
}

// PresentModeFor maps the v-sync switch to a present mode.
func PresentModeFor(vsync bool) gputypes.PresentMode {
	if vsync {
		return gputypes.PresentModeFifo
	}
	return gputypes.PresentModeMailbox
}

// Surface owns the frame lifecycle on top of a Device: it keeps the desired
// configuration, recreates the presentation resource when that configuration
// changes, and hands out at most one Frame at a time.
//
// Changes requested while a frame is in flight are applied by the next
// BeginFrame, before the next acquire.
type Surface struct {
	device Device

	desired    SurfaceConfig
	current    SurfaceConfig
	configured bool

	clearColor  gputypes.Color
	inFlight    *Frame
	frameSeq    uint64
	recreations int

	lastFrame         time.Time
	lastFrameDuration time.Duration
}

// NewSurface configures the presentation resource for the first time.
// An error here is fatal for the application.
func NewSurface(device Device, cfg SurfaceConfig) (*Surface, error) {
	if cfg.Format == 0 {
		cfg.Format = DefaultFormat
	}
	if cfg.PresentMode == gputypes.PresentModeUndefined {
		cfg.PresentMode = PresentModeFor(true)
	}
	if cfg.ScaleFactor <= 0 {
		cfg.ScaleFactor = 1
	}
	s := &Surface{
		device:     device,
		desired:    cfg,
		clearColor: gputypes.Color{R: 0.1, G: 0.2, B: 0.3, A: 1},
	}
	if err := s.applyPending(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Surface) Device() Device { return s.device }

// Size returns the requested size in physical pixels.
func (s *Surface) Size() (width, height int) { return s.desired.Width, s.desired.Height }

func (s *Surface) ScaleFactor() float64           { return s.desired.ScaleFactor }
func (s *Surface) Format() gputypes.TextureFormat { return s.desired.Format }
func (s *Surface) VSync() bool                    { return s.desired.PresentMode == gputypes.PresentModeFifo }

// PresentMode returns the present mode of the live presentation resource.
func (s *Surface) PresentMode() gputypes.PresentMode { return s.current.PresentMode }

// Recreations counts how many times the presentation resource was rebuilt
// after its initial creation.
func (s *Surface) Recreations() int { return s.recreations }

func (s *Surface) ClearColor() gputypes.Color     { return s.clearColor }
func (s *Surface) SetClearColor(c gputypes.Color) { s.clearColor = c }

// LastFrameDuration is the time between the last two EndFrame calls.
func (s *Surface) LastFrameDuration() time.Duration { return s.lastFrameDuration }

// InFlight reports whether a frame has been acquired and not ended yet.
func (s *Surface) InFlight() bool { return s.inFlight != nil }

// Resize requests a new physical size.
func (s *Surface) Resize(width, height int) error {
	s.desired.Width, s.desired.Height = width, height
	return s.apply()
}

// SetScaleFactor requests a new scale factor together with the physical size
// the window reported for it.
func (s *Surface) SetScaleFactor(factor float64, width, height int) error {
	if factor > 0 {
		s.desired.ScaleFactor = factor
	}
	s.desired.Width, s.desired.Height = width, height
	return s.apply()
}

// SetVSync switches between the vsync-on and vsync-off present modes.
func (s *Surface) SetVSync(on bool) error {
	s.desired.PresentMode = PresentModeFor(on)
	return s.apply()
}

func (s *Surface) apply() error {
	if s.inFlight != nil {
		return nil
	}
	return s.applyPending()
}

func (s *Surface) applyPending() error {
	if s.configured && s.desired == s.current {
		return nil
	}
	if s.desired.Width <= 0 || s.desired.Height <= 0 {
		return nil
	}
	if err := s.device.Configure(s.desired); err != nil {
		return fmt.Errorf("gfx: configure surface %dx%d: %w", s.desired.Width, s.desired.Height, err)
	}
	if s.configured {
		s.recreations++
	}
	prev := s.current
	s.current = s.desired
	s.configured = true
	logging.Logger().Debug("surface configured",
		"width", s.current.Width, "height", s.current.Height,
		"scale", s.current.ScaleFactor, "present_mode", s.current.PresentMode,
		"previous_present_mode", prev.PresentMode, "recreations", s.recreations)
	return nil
}

// BeginFrame applies any pending configuration change, acquires the next
// target and returns a Frame that already clears to the clear colour.
//
// Transient failures wrap ErrDroppedFrame. ErrDeviceLost is returned as is.
// Calling BeginFrame while a frame is in flight panics.
func (s *Surface) BeginFrame() (*Frame, error) {
	if s.inFlight != nil {
		panic("gfx: BeginFrame called while a frame is in flight")
	}
	if err := s.applyPending(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDroppedFrame, err)
	}
	if !s.configured || s.desired.Width <= 0 || s.desired.Height <= 0 {
		return nil, fmt.Errorf("%w: surface has no area", ErrDroppedFrame)
	}

	target, err := s.device.Acquire()
	if err != nil {
		if errors.Is(err, ErrDeviceLost) {
			return nil, err
		}
		if errors.Is(err, ErrSurfaceOutdated) {
			// force a reconfigure before the next acquire
			s.current = SurfaceConfig{}
		}
		return nil, fmt.Errorf("%w: %w", ErrDroppedFrame, err)
	}

	s.frameSeq++
	f := newFrame(target, s.frameSeq)
	f.Clear(s.clearColor)
	s.inFlight = f
	return f, nil
}

// EndFrame submits and presents f. f becomes invalid whatever the outcome.
func (s *Surface) EndFrame(f *Frame) error {
	if f == nil || f != s.inFlight {
		panic("gfx: EndFrame called with a frame that is not in flight")
	}
	cmds := f.finish()
	s.inFlight = nil

	now := time.Now()
	if !s.lastFrame.IsZero() {
		s.lastFrameDuration = now.Sub(s.lastFrame)
	}
	s.lastFrame = now

	if err := s.device.Submit(f.target, cmds); err != nil {
		return fmt.Errorf("gfx: submit: %w", err)
	}
	if err := s.device.Present(f.target); err != nil {
		return fmt.Errorf("gfx: present: %w", err)
	}
	return nil
}
