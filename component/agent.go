package component

import (
	"github.com/lixenwraith/revenant/vmath"
)

// Faction separates combatants for target acquisition
type Faction int

const (
	FactionPlayer Faction = iota
	FactionEnemy
)

// FactionComponent tags a combatant's side
type FactionComponent struct {
	Faction Faction
}

// AgentKind identifies the enemy archetype
type AgentKind int

const (
	KindDummy AgentKind = iota
	KindBoombox
	KindScreamer
)

// AgentKindComponent tags which archetype an enemy entity is
type AgentKindComponent struct {
	Kind AgentKind
}

// HandsComponent holds weapon mount offsets in body space
// Dominant is where single shots originate
type HandsComponent struct {
	Dominant vmath.Vec3
	Off      vmath.Vec3
}
