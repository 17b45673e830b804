package sessionserver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/monbattle/internal/config"
	"github.com/udisondev/monbattle/internal/session"
)

func TestDeriveRewards(t *testing.T) {
	cfg := config.DefaultRewards()

	tests := []struct {
		name  string
		cfg   config.Rewards
		won   bool
		dealt int
		want  session.Rewards
	}{
		{"loss no damage", cfg, false, 0, session.Rewards{Experience: 10, Coins: 10}},
		{"loss with damage", cfg, false, 27, session.Rewards{Experience: 15, Coins: 10}},
		{"win", cfg, true, 50, session.Rewards{Experience: 40, Coins: 50}},
		{"zero divisor ignores damage", config.Rewards{BaseExp: 3, WinCoins: 1}, true, 100, session.Rewards{Experience: 3, Coins: 1}},
		{"negative config floors at zero", config.Rewards{BaseExp: -5, LossCoins: -1}, false, 0, session.Rewards{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveRewards(tt.cfg, tt.won, tt.dealt))
		})
	}
}
