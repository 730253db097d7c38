package terminal

import (
	"unicode/utf8"

	"corebell/internal/commands"
	"corebell/internal/logger"
)

const (
	Prompt = "> "
	// maxLineLen truncates long log lines on screen.
	maxLineLen  = 200
	historySize = 50
)

// Terminal is the chat/terminal input bar at the bottom of the screen. It is shown/hidden with ESC.
// Lines starting with "cmd " are parsed as subcommand + flags and executed via the command registry.
// Other lines are treated as natural language and handed to OnNaturalLanguage, which must not block.
// The graphics loop feeds key events in and draws Lines and Input.
type Terminal struct {
	log               *logger.Logger
	reg               *commands.Registry
	input             string
	open              bool
	history           []string
	histPos           int
	OnNaturalLanguage func(line string)
}

// New returns a new Terminal that logs lines and runs "cmd ..." through reg. It starts closed.
func New(log *logger.Logger, reg *commands.Registry) *Terminal {
	return &Terminal{log: log, reg: reg}
}

// IsOpen returns true when the terminal is visible and capturing keyboard input.
func (t *Terminal) IsOpen() bool {
	return t.open
}

// Toggle opens or closes the terminal and returns the new state.
func (t *Terminal) Toggle() bool {
	t.open = !t.open
	return t.open
}

// Input returns the line being typed.
func (t *Terminal) Input() string {
	return t.input
}

// Type appends text (typed characters or a paste) to the input line.
func (t *Terminal) Type(s string) {
	if t.open {
		t.input += s
	}
}

// Backspace deletes the last rune of the input line.
func (t *Terminal) Backspace() {
	if len(t.input) == 0 {
		return
	}
	_, size := utf8.DecodeLastRuneInString(t.input)
	t.input = t.input[:len(t.input)-size]
}

// HistoryPrev replaces the input with the previous submitted line.
func (t *Terminal) HistoryPrev() {
	if t.histPos > 0 {
		t.histPos--
		t.input = t.history[t.histPos]
	}
}

// HistoryNext moves forward through history; past the newest entry the input is cleared.
func (t *Terminal) HistoryNext() {
	if t.histPos >= len(t.history) {
		return
	}
	t.histPos++
	if t.histPos == len(t.history) {
		t.input = ""
		return
	}
	t.input = t.history[t.histPos]
}

// Submit runs the input line: commands synchronously, natural language through OnNaturalLanguage.
func (t *Terminal) Submit() {
	line := t.input
	if line == "" {
		return
	}
	t.input = ""
	t.history = append(t.history, line)
	if len(t.history) > historySize {
		t.history = t.history[len(t.history)-historySize:]
	}
	t.histPos = len(t.history)
	t.log.Log(Prompt + line)

	if args, isCmd := commands.Parse(line); isCmd {
		if err := t.reg.Execute(args); err != nil {
			t.log.Error("%v", err)
		}
		return
	}
	if t.OnNaturalLanguage == nil {
		t.log.Warn("no AI model configured; use cmd help for commands")
		return
	}
	t.OnNaturalLanguage(line)
}

// Lines returns up to n recent log lines, truncated for display.
func (t *Terminal) Lines(n int) []string {
	lines := t.log.Last(n)
	for i, l := range lines {
		if len(l) > maxLineLen {
			lines[i] = l[:maxLineLen-3] + "..."
		}
	}
	return lines
}
