package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/shadowspire/internal/gamedata"
	"github.com/samdwyer/shadowspire/internal/inventory"
	"github.com/samdwyer/shadowspire/internal/story"
)

const (
	margin    = 2
	textWidth = 74
)

var (
	titleStyle  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	textStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	dimStyle    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	noticeStyle = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	dangerStyle = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

// Renderer draws game screens line by line.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// WrapText splits text into lines no wider than width, breaking on spaces.
// Words longer than width get a line of their own.
func WrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, word := range words[1:] {
			if len(line)+1+len(word) > width {
				lines = append(lines, line)
				line = word
				continue
			}
			line += " " + word
		}
		lines = append(lines, line)
	}
	return lines
}

// print draws one line of text and returns the next row.
func (r *Renderer) print(x, y int, text string, style tcell.Style) int {
	col := x
	for _, ch := range text {
		r.screen.SetContent(col, y, ch, style)
		col++
	}
	return y + 1
}

// paragraph draws wrapped text and returns the next row.
func (r *Renderer) paragraph(y int, text string, style tcell.Style) int {
	for _, line := range WrapText(text, textWidth) {
		y = r.print(margin, y, line, style)
	}
	return y
}

// notices draws one-shot notification lines and returns the next row.
func (r *Renderer) notices(y int, lines []string) int {
	for _, line := range lines {
		y = r.print(margin, y, line, noticeStyle)
	}
	if len(lines) > 0 {
		y++
	}
	return y
}

// RenderMenu draws the start menu.
func (r *Renderer) RenderMenu(notes []string) {
	r.screen.Clear()
	y := r.print(margin, 1, "=== SHADOWSPIRE ===", titleStyle)
	y = r.print(margin, y+1, "A text adventure of glades, castles and patient shadows.", dimStyle)
	y = r.notices(y+1, notes)
	y = r.print(margin, y, "(N)ew game", textStyle)
	y = r.print(margin, y, "(L)oad game", textStyle)
	r.print(margin, y, "(Q)uit", textStyle)
	r.screen.Show()
}

// RenderCharacterSelect draws the fixed roster of playable templates.
func (r *Renderer) RenderCharacterSelect(characters []gamedata.CharacterDef, notes []string) {
	r.screen.Clear()
	y := r.print(margin, 1, "CHARACTER SELECTION", titleStyle)
	y = r.notices(y+1, notes)
	for i, c := range characters {
		line := fmt.Sprintf("%d. %s - %s (STR:%d AGI:%d MAG:%d)",
			i+1, c.Name, c.Description, c.Strength, c.Agility, c.Magic)
		y = r.print(margin, y, line, textStyle)
	}
	r.print(margin, y+1, "Choose your character (number), or Esc to go back.", dimStyle)
	r.screen.Show()
}

// RenderScene draws a narrative scene with its numbered choices.
func (r *Renderer) RenderScene(scene *story.Scene, hp, maxHP int, notes []string) {
	r.screen.Clear()
	y := r.print(margin, 1, "== "+scene.Title+" ==", titleStyle)
	y = r.paragraph(y+1, scene.Desc, textStyle)
	y = r.notices(y+1, notes)
	for i, choice := range scene.Choices {
		y = r.print(margin, y, fmt.Sprintf("%d. %s", i+1, choice.Text), textStyle)
	}
	y = r.print(margin, y+1, "I. Inventory | S. Save | Q. Quit to menu", dimStyle)
	r.print(margin, y, fmt.Sprintf("HP: %d/%d", hp, maxHP), dimStyle)
	r.screen.Show()
}

// RenderEnding draws a terminal scene and the post-game menu.
func (r *Renderer) RenderEnding(scene *story.Scene, notes []string) {
	r.screen.Clear()
	y := r.print(margin, 1, "*** ENDING: "+scene.Title+" ***", titleStyle)
	y = r.paragraph(y+1, scene.Desc, textStyle)
	y = r.notices(y+1, notes)
	r.print(margin, y, "(S)ave, (N)ew Game, (Q)uit", dimStyle)
	r.screen.Show()
}

// RenderInventory draws the inventory list.
func (r *Renderer) RenderInventory(items []inventory.Item, notes []string) {
	r.screen.Clear()
	y := r.print(margin, 1, "-- Inventory --", titleStyle)
	y = r.notices(y+1, notes)
	if len(items) == 0 {
		y = r.print(margin, y, "Inventory is empty.", dimStyle)
	}
	for i, item := range items {
		y = r.print(margin, y, fmt.Sprintf("%d. %s - %s", i+1, item.Name, item.Description), textStyle)
	}
	r.print(margin, y+1, "Number to use an item, B or Esc to go back.", dimStyle)
	r.screen.Show()
}

// CombatView is everything the combat screen shows.
type CombatView struct {
	PlayerName     string
	PlayerHP       int
	PlayerMaxHP    int
	PlayerStatuses []string
	EnemyName      string
	EnemyHP        int
	EnemyMaxHP     int
	EnemyColor     tcell.Color
	EnemyStatuses  []string
	Log            []string
}

// RenderCombat draws the encounter: both health lines, the recent combat
// log, and the action prompt.
func (r *Renderer) RenderCombat(view CombatView) {
	r.screen.Clear()
	enemyStyle := tcell.StyleDefault.Foreground(view.EnemyColor).Bold(true)
	y := r.print(margin, 1, "--- COMBAT: "+view.EnemyName+" ---", enemyStyle)

	playerLine := fmt.Sprintf("%s  HP %d/%d", view.PlayerName, view.PlayerHP, view.PlayerMaxHP)
	if len(view.PlayerStatuses) > 0 {
		playerLine += "  [" + strings.Join(view.PlayerStatuses, ", ") + "]"
	}
	y = r.print(margin, y+1, playerLine, textStyle)

	enemyLine := fmt.Sprintf("%s  HP %d/%d", view.EnemyName, view.EnemyHP, view.EnemyMaxHP)
	if len(view.EnemyStatuses) > 0 {
		enemyLine += "  [" + strings.Join(view.EnemyStatuses, ", ") + "]"
	}
	y = r.print(margin, y, enemyLine, dangerStyle)
	y++

	// Show only as much log as fits above the prompt.
	_, height := r.screen.Size()
	visible := height - y - 3
	log := view.Log
	if visible > 0 && len(log) > visible {
		log = log[len(log)-visible:]
	}
	for _, line := range log {
		y = r.print(margin, y, line, textStyle)
	}

	r.print(margin, y+1, "1) Attack   2) Magic   3) Use Item   4) Focus   F) Flee", dimStyle)
	r.screen.Show()
}
