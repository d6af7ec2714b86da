// Package agent assembles spawnable enemies from loaded definitions
// It owns the archetype behavior trees and the staged spawn pipeline
// that attaches components as an enemy materializes
package agent

import (
	"github.com/lixenwraith/revenant/bt"
	"github.com/lixenwraith/revenant/component"
)

// GunnerTree fights at range: acquire, steer, then either fire when the
// cooldown allows or keep closing in
func GunnerTree() *bt.Tree[component.ActionKind] {
	return bt.MustBuild(bt.SequenceOf(
		bt.Do(component.ActionTrack),
		bt.Do(component.ActionTarget),
		bt.SelectorOf(
			bt.SequenceOf(
				bt.Do(component.ActionFireCheck),
				bt.Do(component.ActionFire),
			),
			bt.Do(component.ActionChase),
		),
	))
}

// WalkerTree has no ranged attack; it acquires, steers, and pursues
func WalkerTree() *bt.Tree[component.ActionKind] {
	return bt.MustBuild(bt.SequenceOf(
		bt.Do(component.ActionTrack),
		bt.Do(component.ActionTarget),
		bt.Do(component.ActionChase),
	))
}

// Trees maps definition tree names to shared tree instances
// Trees are immutable after build, so all agents of an archetype share one
func Trees() map[string]*bt.Tree[component.ActionKind] {
	return map[string]*bt.Tree[component.ActionKind]{
		"gunner": GunnerTree(),
		"walker": WalkerTree(),
	}
}
