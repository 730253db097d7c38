package graphics

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"corebell/internal/terminal"
	"corebell/internal/ui"
)

const (
	overlayPadding    = 10
	debugFontSize     = 20
	termFontSize      = 18
	termLineHeight    = 22
	termBarHeight     = 36
	termLinesOnScreen = 12
)

var (
	termChatBg = rl.NewColor(0, 0, 0, 160)
	termBarBg  = rl.NewColor(20, 22, 28, 230)
	termLine   = rl.NewColor(90, 90, 100, 255)
)

// text draws s with the loaded font, or raylib's default font when none is loaded.
func (a *App) text(s string, x, y int32, size int32, c rl.Color) {
	if a.font.Texture.ID != 0 {
		rl.DrawTextEx(a.font, s, rl.NewVector2(float32(x), float32(y)), float32(size), 1, c)
		return
	}
	rl.DrawText(s, x, y, size, c)
}

func (a *App) measure(s string, size int32) int32 {
	if a.font.Texture.ID != 0 {
		return int32(rl.MeasureTextEx(a.font, s, float32(size), 1).X)
	}
	return rl.MeasureText(s, size)
}

func (a *App) drawBoxes(boxes []ui.Box) {
	for _, b := range boxes {
		x, y := int32(b.Rect.X), int32(b.Rect.Y)
		w, h := int32(b.Rect.Width), int32(b.Rect.Height)
		if b.Style.Background.A > 0 {
			rl.DrawRectangle(x, y, w, h, b.Style.Background)
		}
		if b.Style.HasBorder && w > 0 && h > 0 {
			rl.DrawRectangleLines(x, y, w, h, b.Style.Border)
		}
		if b.Node.Text != "" {
			a.text(b.Node.Text, x+b.Style.Padding, y+b.Style.Padding, b.Style.FontSize, b.Style.Color)
		}
	}
}

// drawDebug right-aligns lines at the top of the screen.
func (a *App) drawDebug(lines []string, screenW int32) {
	y := int32(overlayPadding)
	for _, l := range lines {
		x := screenW - a.measure(l, debugFontSize) - overlayPadding
		a.text(l, x, y, debugFontSize, rl.Green)
		y += debugFontSize + 4
	}
}

// drawTerminal draws recent log lines above the input bar while the terminal is open.
func (a *App) drawTerminal(screenW, screenH int32) {
	if !a.Terminal.IsOpen() {
		return
	}
	barY := screenH - termBarHeight
	lines := a.Terminal.Lines(termLinesOnScreen)
	chatH := int32(len(lines))*termLineHeight + overlayPadding
	rl.DrawRectangle(0, barY-chatH, screenW, chatH, termChatBg)
	for i, l := range lines {
		a.text(l, overlayPadding, barY-chatH+int32(i)*termLineHeight+overlayPadding/2, termFontSize, rl.LightGray)
	}
	rl.DrawRectangle(0, barY, screenW, termBarHeight, termBarBg)
	rl.DrawRectangle(0, barY, screenW, 1, termLine)
	a.text(terminal.Prompt+a.Terminal.Input()+"|", overlayPadding, barY+(termBarHeight-termFontSize)/2, termFontSize, rl.White)
}
