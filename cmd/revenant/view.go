package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/revenant/component"
	"github.com/lixenwraith/revenant/core"
	"github.com/lixenwraith/revenant/engine"
	"github.com/lixenwraith/revenant/navigation"
)

// View is the terminal top-down debug view of the simulation
type View struct {
	screen tcell.Screen

	transforms *engine.Store[component.TransformComponent]
	kinds      *engine.Store[component.AgentKindComponent]
	spawnings  *engine.Store[component.SpawningComponent]
	dead       *engine.Store[component.DeadComponent]
	health     *engine.Store[component.HealthComponent]
	contacts   *engine.Store[component.ContactDamageComponent]
	hitboxes   *engine.Store[component.HitboxComponent]
}

// NewView opens a tcell screen over the world
func NewView(world *engine.World) (*View, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.HideCursor()

	return &View{
		screen:     screen,
		transforms: engine.GetStore[component.TransformComponent](world),
		kinds:      engine.GetStore[component.AgentKindComponent](world),
		spawnings:  engine.GetStore[component.SpawningComponent](world),
		dead:       engine.GetStore[component.DeadComponent](world),
		health:     engine.GetStore[component.HealthComponent](world),
		contacts:   engine.GetStore[component.ContactDamageComponent](world),
		hitboxes:   engine.GetStore[component.HitboxComponent](world),
	}, nil
}

// Close releases the terminal
func (v *View) Close() {
	v.screen.Fini()
}

// Events returns a channel of terminal events, closed on screen shutdown
func (v *View) Events() <-chan tcell.Event {
	ch := make(chan tcell.Event, 32)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				close(ch)
				return
			}
			ch <- ev
		}
	}()
	return ch
}

// Render draws walls, entities and the status line
func (v *View) Render(island *navigation.Archipelago, frame int64, scale float64, muted bool) {
	v.screen.Clear()

	wallStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for y := 0; y < island.Height; y++ {
		for x := 0; x < island.Width; x++ {
			if island.Blocked(x, y) {
				v.screen.SetContent(x, y, '#', nil, wallStyle)
			}
		}
	}

	for _, e := range v.transforms.All() {
		transform, _ := v.transforms.Get(e)
		cell := island.WorldToCell(transform.Position)
		if cell.X < 0 || cell.X >= island.Width || cell.Y < 0 || cell.Y >= island.Height {
			continue
		}

		r, style := v.glyph(e)
		v.screen.SetContent(cell.X, cell.Y, r, nil, style)
	}

	status := fmt.Sprintf(
		" frame %d | scale %.2f | audio %s | [1/2/3] spawn [r] rewind [t] slow [m] mute [q] quit ",
		frame, scale, map[bool]string{true: "off", false: "on"}[muted])
	statusStyle := tcell.StyleDefault.Reverse(true)
	for i, r := range status {
		v.screen.SetContent(i, island.Height, r, nil, statusStyle)
	}

	v.screen.Show()
}

// Sync repaints after a resize
func (v *View) Sync() {
	v.screen.Sync()
}

// glyph picks the rune and style for an entity
func (v *View) glyph(e core.Entity) (rune, tcell.Style) {
	if v.dead.Has(e) {
		return 'x', tcell.StyleDefault.Foreground(tcell.ColorDarkRed)
	}
	if v.spawnings.Has(e) {
		return '?', tcell.StyleDefault.Foreground(tcell.ColorYellow)
	}
	if kind, ok := v.kinds.Get(e); ok {
		style := tcell.StyleDefault.Foreground(tcell.ColorRed)
		switch kind.Kind {
		case component.KindBoombox:
			return 'b', style
		case component.KindScreamer:
			return 'S', style
		default:
			return 'd', style
		}
	}
	// Projectiles carry contact damage without being anyone's hitbox
	if c, ok := v.contacts.Get(e); ok && c.Kind == component.ContactDespawn {
		return '*', tcell.StyleDefault.Foreground(tcell.ColorWhite)
	}
	return 'o', tcell.StyleDefault
}
