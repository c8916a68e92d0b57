package terminal

import (
	"unicode/utf8"

	rl "github.com/gen2brain/raylib-go/raylib"

	"rigid2d/internal/commands"
	"rigid2d/internal/logger"
)

const (
	BarHeight = 40
	prompt    = "> "
	fontSize  = 20
	padding   = 8
	// Number of log lines drawn above the input bar when terminal is open.
	maxLinesOnScreen = 12
	lineHeight       = fontSize + 4
	maxLineLength    = 160
)

var (
	// Reused every frame when drawing the terminal bar to avoid per-frame color allocations.
	barColor    = rl.NewColor(40, 40, 40, 255)
	borderColor = rl.NewColor(80, 80, 80, 255)
	historyBg   = rl.NewColor(24, 24, 24, 220)
)

// Terminal is the command bar at the bottom of the window. It is shown/hidden with ESC.
// Lines starting with "cmd " are parsed as subcommand + flags and executed via the
// command registry; every submitted line and every error is logged, and the
// logger's recent lines are drawn above the bar.
type Terminal struct {
	log      *logger.Logger
	reg      *commands.Registry
	inputBuf string
	open     bool
	history  commands.History
}

// New returns a closed Terminal that logs lines and runs "cmd ..." through reg.
func New(log *logger.Logger, reg *commands.Registry) *Terminal {
	return &Terminal{log: log, reg: reg}
}

// IsOpen returns true when the terminal is visible and capturing input.
func (t *Terminal) IsOpen() bool {
	return t.open
}

// Update handles ESC (toggle open/closed), and when open: typing, paste, backspace, enter.
// Call once per frame.
func (t *Terminal) Update() {
	if rl.IsKeyPressed(rl.KeyEscape) {
		t.open = !t.open
	}
	if !t.open {
		return
	}
	if rl.IsKeyPressed(rl.KeyV) && (rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) || rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper)) {
		if pasted := rl.GetClipboardText(); pasted != "" {
			t.inputBuf += pasted
		}
	} else {
		for {
			c := rl.GetCharPressed()
			if c == 0 {
				break
			}
			t.inputBuf += string(rune(c))
		}
	}
	if rl.IsKeyPressed(rl.KeyBackspace) && len(t.inputBuf) > 0 {
		_, size := utf8.DecodeLastRuneInString(t.inputBuf)
		t.inputBuf = t.inputBuf[:len(t.inputBuf)-size]
	}
	if rl.IsKeyPressed(rl.KeyUp) {
		t.inputBuf = t.history.Prev()
	}
	if rl.IsKeyPressed(rl.KeyDown) {
		t.inputBuf = t.history.Next()
	}
	if (rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter)) && t.inputBuf != "" {
		t.Submit(t.inputBuf)
		t.inputBuf = ""
	}
}

// Submit logs line and runs it when it is a command.
func (t *Terminal) Submit(line string) {
	t.history.Add(line)
	t.log.Log(line)
	args, isCmd := commands.Parse(line)
	if !isCmd {
		t.log.Log(`commands start with "cmd "; try "cmd help"`)
		return
	}
	if err := t.reg.Execute(args); err != nil {
		t.log.Log(err.Error())
	}
}

// Draw draws the input bar and the recent log lines above it when open.
func (t *Terminal) Draw() {
	if !t.open {
		return
	}
	screenW := int32(rl.GetScreenWidth())
	barY := int32(rl.GetScreenHeight()) - BarHeight

	historyHeight := int32(maxLinesOnScreen * lineHeight)
	historyY := barY - historyHeight
	if historyY < 0 {
		historyHeight = barY
		historyY = 0
	}
	if historyHeight > 0 {
		rl.DrawRectangle(0, historyY, screenW, historyHeight, historyBg)
	}
	lines := t.log.Lines()
	start := 0
	if len(lines) > maxLinesOnScreen {
		start = len(lines) - maxLinesOnScreen
	}
	for i := start; i < len(lines); i++ {
		y := historyY + int32((i-start)*lineHeight+padding)
		line := lines[i]
		if len(line) > maxLineLength {
			line = line[:maxLineLength-3] + "..."
		}
		rl.DrawText(line, padding, y, fontSize, rl.LightGray)
	}

	rl.DrawRectangle(0, barY, screenW, BarHeight, barColor)
	rl.DrawRectangle(0, barY, screenW, 1, borderColor)
	rl.DrawText(prompt+t.inputBuf+"|", padding, barY+padding, fontSize, rl.White)
}
