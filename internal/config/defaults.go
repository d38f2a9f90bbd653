package config

import (
	_ "embed"
)

//go:embed defaults/tuning.yaml
var defaultTuningYAML []byte

// DefaultTuning returns the built-in tuning, matching defaults/tuning.yaml.
func DefaultTuning() Tuning {
	return Tuning{
		TickRate: 60,
		Physics: PhysicsConfig{
			Gravity:       800,
			FallThreshold: 600,
		},
		Player: PlayerConfig{
			Width:    32,
			Height:   32,
			RunSpeed: 250,
			Jump: JumpImpulses{
				Standard: -600,
				Agile:    -400,
			},
			MaxJumps: 2,
		},
		Enemies: EnemyConfig{
			Width:          32,
			Height:         32,
			PatrolRange:    200,
			GroundSpeed:    150,
			FlyingSpeed:    100,
			StallThreshold: 10,
			VerticalRange:  200,
			VerticalPeriod: 2000,
		},
		Platform: PlatformConfig{
			CrumbleWindow: 550,
		},
		Items: ItemConfig{
			StarSize:   24,
			StarPoints: 10,
			GoalWidth:  32,
			GoalHeight: 64,
		},
		Ground: GroundConfig{
			CenterY: 580,
			Height:  40,
		},
		Unlock: UnlockConfig{
			AgileRequires: []int{1, 2, 3},
		},
	}
}

// DefaultYAML returns the embedded default tuning file, for `starhop settings --dump-tuning`.
func DefaultYAML() []byte {
	return defaultTuningYAML
}
