package sessionserver

import (
	"github.com/udisondev/monbattle/internal/config"
	"github.com/udisondev/monbattle/internal/session"
)

// DeriveRewards computes experience and coins for a completed battle.
// exp = (base + dealt/damage_per_exp), multiplied on a win.
func DeriveRewards(cfg config.Rewards, won bool, damageDealt int) session.Rewards {
	exp := cfg.BaseExp
	if cfg.DamagePerExp > 0 && damageDealt > 0 {
		exp += damageDealt / cfg.DamagePerExp
	}

	coins := cfg.LossCoins
	if won {
		if cfg.WinMultiplier > 0 {
			exp = int(float64(exp) * cfg.WinMultiplier)
		}
		coins = cfg.WinCoins
	}

	return session.Rewards{
		Experience: max(exp, 0),
		Coins:      max(coins, 0),
	}
}
