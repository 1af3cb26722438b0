package platform

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/samber/oops"

	"github.com/lixenwraith/pigpen/constant"
)

// TerminalOptions tune the adapter loop; zero values take the defaults
type TerminalOptions struct {
	Refresh    time.Duration // frame interval
	KeyRelease time.Duration // hold time after the last press report
	Clock      Clock
	Logger     *slog.Logger
}

// Terminal drives a Handler from a tcell screen and also serves as its Canvas
type Terminal struct {
	screen tcell.Screen
	opts   TerminalOptions
	log    *slog.Logger

	start time.Time
	held  map[KeyCode]time.Time // last press report per held key

	mouseX, mouseY int
	buttons        tcell.ButtonMask

	events chan tcell.Event
	done   chan struct{}
	wg     sync.WaitGroup

	initOnce sync.Once
	initErr  error
	ready    bool
	finiOnce sync.Once
}

var tcellKeys = map[tcell.Key]KeyCode{
	tcell.KeyEscape:     KeyEscape,
	tcell.KeyEnter:      KeyEnter,
	tcell.KeyTab:        KeyTab,
	tcell.KeyBackspace:  KeyBackspace,
	tcell.KeyBackspace2: KeyBackspace,
	tcell.KeyDelete:     KeyDelete,
	tcell.KeyUp:         KeyUp,
	tcell.KeyDown:       KeyDown,
	tcell.KeyLeft:       KeyLeft,
	tcell.KeyRight:      KeyRight,
	tcell.KeyHome:       KeyHome,
	tcell.KeyEnd:        KeyEnd,
	tcell.KeyPgUp:       KeyPageUp,
	tcell.KeyPgDn:       KeyPageDown,
}

var mouseButtons = [...]tcell.ButtonMask{tcell.Button1, tcell.Button2, tcell.Button3}

var palette = [...]tcell.Color{
	ColorDefault: tcell.ColorDefault,
	ColorPink:    tcell.ColorHotPink,
	ColorGold:    tcell.ColorGold,
	ColorBrown:   tcell.ColorSaddleBrown,
	ColorGreen:   tcell.ColorGreen,
	ColorWhite:   tcell.ColorWhite,
	ColorRed:     tcell.ColorRed,
	ColorGray:    tcell.ColorGray,
}

// NewTerminal wraps screen; the screen is initialized by Init or Run
func NewTerminal(screen tcell.Screen, opts TerminalOptions) *Terminal {
	if opts.Refresh <= 0 {
		opts.Refresh = constant.FrameUpdateInterval
	}
	if opts.KeyRelease <= 0 {
		opts.KeyRelease = constant.KeyRelease
	}
	if opts.Clock == nil {
		opts.Clock = TimeProvider{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Terminal{
		screen: screen,
		opts:   opts,
		log:    opts.Logger.With("component", "terminal"),
		held:   make(map[KeyCode]time.Time),
		events: make(chan tcell.Event, constant.InputQueueSize),
		done:   make(chan struct{}),
		mouseX: -1,
		mouseY: -1,
	}
}

// Init prepares the screen once, enabling mouse reporting
func (t *Terminal) Init() error {
	t.initOnce.Do(func() {
		if err := t.screen.Init(); err != nil {
			t.initErr = oops.In("platform").Wrapf(err, "screen init")
			return
		}
		t.screen.EnableMouse()
		t.screen.HideCursor()
		t.screen.Clear()
		t.start = t.opts.Clock.Now()
		t.ready = true
	})
	return t.initErr
}

// Fini restores the terminal; safe to call more than once
func (t *Terminal) Fini() {
	t.finiOnce.Do(func() {
		close(t.done)
		if t.ready {
			t.screen.Fini()
		}
		t.wg.Wait()
	})
}

// Run initializes the screen, calls OnSetup and drives frames until ctx is
// cancelled or the quit key is pressed; the screen is restored on return
func (t *Terminal) Run(ctx context.Context, h Handler) error {
	if err := t.Init(); err != nil {
		return err
	}
	defer t.Fini()

	h.OnSetup()

	t.wg.Add(1)
	go t.poll()

	ticker := time.NewTicker(t.opts.Refresh)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-t.events:
			if !t.dispatch(ev, h) {
				t.log.Info("quit requested")
				return nil
			}
		case <-ticker.C:
			if !t.drain(h) {
				t.log.Info("quit requested")
				return nil
			}
			t.frame(h)
		}
	}
}

// poll forwards screen events until the screen is finalized
func (t *Terminal) poll() {
	defer t.wg.Done()
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case t.events <- ev:
		case <-t.done:
			return
		}
	}
}

// drain dispatches every event queued so far, false on quit
func (t *Terminal) drain(h Handler) bool {
	for {
		select {
		case ev := <-t.events:
			if !t.dispatch(ev, h) {
				return false
			}
		default:
			return true
		}
	}
}

// frame releases stale keys, lets the handler simulate and draw, then flushes
func (t *Terminal) frame(h Handler) {
	now := t.opts.Clock.Now()
	t.releaseExpired(h, now)

	w, hgt := t.screen.Size()
	h.OnUpdate(w, hgt, now.Sub(t.start).Seconds())
	t.screen.Show()
}

// dispatch translates one tcell event into handler calls, false on quit
func (t *Terminal) dispatch(ev tcell.Event, h Handler) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return t.dispatchKey(ev, h)
	case *tcell.EventMouse:
		t.dispatchMouse(ev, h)
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return true
}

func (t *Terminal) dispatchKey(ev *tcell.EventKey, h Handler) bool {
	switch {
	case ev.Key() == tcell.KeyCtrlC, ev.Key() == tcell.KeyCtrlQ:
		return false
	case ev.Key() == tcell.KeyRune && ev.Modifiers()&tcell.ModCtrl != 0 &&
		(ev.Rune() == 'q' || ev.Rune() == 'c'):
		return false
	}

	var code KeyCode
	if ev.Key() == tcell.KeyRune {
		code = KeyForRune(ev.Rune())
	} else {
		code = tcellKeys[ev.Key()]
	}

	if code != KeyNone {
		t.press(h, code)
	}
	if ev.Key() == tcell.KeyRune {
		h.OnText(TextRune(ev.Rune()))
	}
	return true
}

// press reports the first press of a key; repeats only extend the hold
func (t *Terminal) press(h Handler, code KeyCode) {
	if _, ok := t.held[code]; !ok {
		h.OnKey(code, true)
	}
	t.held[code] = t.opts.Clock.Now()
}

// releaseExpired synthesizes releases for keys with no recent press report
func (t *Terminal) releaseExpired(h Handler, now time.Time) {
	for code, last := range t.held {
		if now.Sub(last) >= t.opts.KeyRelease {
			delete(t.held, code)
			h.OnKey(code, false)
		}
	}
}

func (t *Terminal) dispatchMouse(ev *tcell.EventMouse, h Handler) {
	x, y := ev.Position()
	if x != t.mouseX || y != t.mouseY {
		t.mouseX, t.mouseY = x, y
		h.OnMouseMove(x, y)
	}

	btn := ev.Buttons()
	for i, mask := range mouseButtons {
		was := t.buttons&mask != 0
		is := btn&mask != 0
		if was != is {
			h.OnMouseButton(i, is)
		}
	}
	t.buttons = btn & (tcell.Button1 | tcell.Button2 | tcell.Button3)

	switch {
	case btn&tcell.WheelUp != 0:
		h.OnMouseWheel(0, 1)
	case btn&tcell.WheelDown != 0:
		h.OnMouseWheel(0, -1)
	case btn&tcell.WheelLeft != 0:
		h.OnMouseWheel(-1, 0)
	case btn&tcell.WheelRight != 0:
		h.OnMouseWheel(1, 0)
	}
}

// Size returns the screen size in cells
func (t *Terminal) Size() (width, height int) {
	return t.screen.Size()
}

// Clear blanks the back buffer
func (t *Terminal) Clear() {
	t.screen.Clear()
}

// Plot draws one cell; out of range cells are ignored by the screen
func (t *Terminal) Plot(x, y int, r rune, c Color) {
	t.screen.SetContent(x, y, r, nil, style(c))
}

// Print draws s left to right from x, one cell per rune
func (t *Terminal) Print(x, y int, s string, c Color) {
	st := style(c)
	for _, r := range s {
		t.screen.SetContent(x, y, r, nil, st)
		x++
	}
}

func style(c Color) tcell.Style {
	if int(c) >= len(palette) {
		c = ColorDefault
	}
	return tcell.StyleDefault.Foreground(palette[c])
}
