package breeding

import (
	"github.com/cplax14/sawyers-rpg-game-sub003/internal/game/creature"
	"github.com/cplax14/sawyers-rpg-game-sub003/internal/game/dice"
	"github.com/cplax14/sawyers-rpg-game-sub003/internal/game/recipe"
)

// RollRarityUpgrade rolls a possible one-tier promotion of r.
//
// A recipe minimum rarity above the rolled result overrides it without
// counting as an upgrade; only the random roll sets upgraded.
//
// Postcondition: final >= r; upgraded implies final > r; exactly one
// draw is taken from src.
func RollRarityUpgrade(r creature.Rarity, rec recipe.Option, src dice.Source) (upgraded bool, final creature.Rarity) {
	final = r
	if dice.Chance(src, RarityUpgradeChance) {
		if next, ok := r.Next(); ok {
			final = next
			upgraded = true
		}
	}
	if rc, ok := rec.Get(); ok {
		if floor := rc.Bonuses.MinimumRarity; floor != nil && *floor > final {
			final = *floor
		}
	}
	return upgraded, final
}
