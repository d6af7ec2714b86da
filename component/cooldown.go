package component

import (
	"github.com/lixenwraith/revenant/core"
)

// ShotCooldownComponent gates successive shots
// Ticked on physics time by the cooldown leaf actions
type ShotCooldownComponent struct {
	Timer core.Timer
}
