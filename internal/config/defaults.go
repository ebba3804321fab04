package config

import (
	_ "embed"
)

//go:embed defaults/neon.yaml
var defaultNeonYAML []byte

//go:embed defaults/neon.schema.json
var neonSchemaJSON []byte

// DefaultNeonConfig returns the default engine tuning.
func DefaultNeonConfig() NeonConfig {
	return NeonConfig{
		World: NeonWorld{
			TickRate:        60,
			MaxFrame:        0.25,
			LaneCount:       3,
			LaneWidth:       200,
			SpawnZ:          3000,
			PlayerZ:         0,
			DespawnBehind:   -200,
			DespawnBeyond:   7000,
			WaveLength:      1500,
			BaseScrollSpeed: 200,
			ScrollPerWave:   10,
			EntitySpeed:     350,
			ScorePerSecond:  10,
		},
		Camera: NeonCamera{
			Width:        720,
			Height:       1280,
			HorizonY:     0,
			GroundY:      930,
			FocalDepth:   800,
			LateralScale: 1,
			Near:         -200,
			Far:          3500,
		},
		Player: NeonPlayer{
			Radius:          12,
			MoveSpeed:       600,
			DragFollow:      15,
			EdgeMargin:      40,
			Damage:          10,
			FireRate:        4,
			ProjectileCount: 1,
			GraceTime:       0.5,
			SquadSpacing:    18,
		},
		Enemies: NeonEnemies{
			Grunt:              EnemyKind{Radius: 18, Score: 10},
			Sprinter:           EnemyKind{Radius: 22, Score: 30},
			Tank:               EnemyKind{Radius: 40, Score: 30},
			ConvergenceZ:       500,
			ConvergeRange:      400,
			SteerMin:           0.2,
			SteerRate:          4,
			FormationSpread:    40,
			MaxStuck:           8,
			StuckDrainInterval: 0.8,
			StuckRule:          StuckRuleProximity,
			PassiveRatio:       0.25,
		},
		Combat: NeonCombat{
			BulletSpeed:   1800,
			BulletRadius:  10,
			BulletRange:   3000,
			BulletFade:    600,
			MaxShots:      12,
			AimCone:       3,
			MaxSpread:     20,
			SpreadPerShot: 0.5,
			ContactDepth:  30,
			BulletDepth:   60,
			GateDepth:     50,
			DPSCap:        100000,
		},
		Pickups: NeonPickups{
			Radius:           30,
			SmallRadius:      300,
			MediumRadius:     600,
			LargeRadius:      1200,
			ClusterDepth:     1200,
			ClusterHalfWidth: 400,
			BossBombDamage:   500,
		},
		Gates: NeonGates{
			Interval:                3800,
			IntervalPerWave:         100,
			MinInterval:             2000,
			Height:                  120,
			ExpectedDPSPerWave:      200,
			BaselineDPS:             200,
			EarlyBias:               0.1,
			BaseBias:                0.5,
			OverRatio:               1.2,
			OverBias:                0.7,
			UnderRatio:              0.5,
			UnderBias:               0.2,
			LateWave:                5,
			LateFloor:               0.4,
			ExtremeRatio:            4,
			ExtremeBias:             0.85,
			ExtremeDivisor:          4,
			ExtremeSubtractFraction: 0.5,
			GuaranteeRatio:          0.8,
			OpenLaneChance:          0.2,
			MultiplyChance:          0.4,
			GoodMultiply:            2,
			BadMultiply:             0.5,
			GoodAddMin:              3,
			GoodAddMax:              7,
			BadAddMin:               2,
			BadAddMax:               5,
		},
		Spawn: NeonSpawn{
			InitialDelay:    2,
			BaseInterval:    3,
			IntervalPerWave: 0.15,
			MinInterval:     0.8,
			MaxInterval:     3,
			EliteCut:        0.5,
			EliteDPSStart:   400,
			EliteDPSFull:    4000,
			ArmyChance:      0.5,
			EliteShift:      0.2,
			EliteChance:     0.3,
			BaseHP:          10,
			HPPerWave:       5,
			GridColumns:     5,
			GridBaseDepth:   5,
			GridDPSDivisor:  100,
			GridDepthJitter: 3,
			MaxGridDepth:    30,
			GridSpacingX:    35,
			GridSpacingZ:    40,
			GridJitter:      5,
			LeaderChance:    0.4,
			LeaderHP:        3,
			LeaderScore:     50,
			PickupChance:    0.4,
			EliteLaneChance: 0.7,
			TankChance:      0.5,
			TankEliteBonus:  0.3,
			TankHP:          4,
			SprinterHP:      2,
			EliteRowOffset:  200,
			GapGroup:        4,
			GapSpread:       20,
			GapRowOffset:    50,
			ObstacleChance:  0.3,
			ObstacleWidth:   120,
		},
		Boss: NeonBoss{
			Interval:        25000,
			EntryZ:          3200,
			HoverZ:          1400,
			ApproachSpeed:   250,
			Radius:          80,
			BaseHP:          2000,
			HPPerWave:       400,
			Score:           1000,
			BobAmplitude:    60,
			BobFrequency:    1.5,
			StrafeSpeed:     120,
			ReverseInterval: 3,
			FireInterval:    1.6,
			ShotSpeed:       700,
			RecoveryTime:    4,
		},
		Effects: NeonEffects{
			MaxParticles:  150,
			BurstCap:      15,
			ParticleSpeed: 250,
			ParticleLife:  0.8,
			HitShake:      0.3,
			BombShake:     0.5,
			GridSpeed:     200,
			WeatherFlakes: 40,
		},
		Tiers: []TierConfig{
			{Name: TierEasy, HPMultiplier: 0.5, GateBias: -0.1},
			{Name: TierNormal, HPMultiplier: 1, GateBias: 0},
			{Name: TierHard, HPMultiplier: 1.5, GateBias: 0.05},
			{Name: TierUnfair, HPMultiplier: 2, GateBias: 0.1},
			{Name: TierEmotional, HPMultiplier: 3, GateBias: 0.15},
			{Name: TierSingularity, HPMultiplier: 5, GateBias: 0.2},
			{Name: TierOmega, HPMultiplier: 10, GateBias: 0.25},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a config name.
func GetDefaultYAML(name string) []byte {
	switch name {
	case "neon":
		return defaultNeonYAML
	default:
		return nil
	}
}
