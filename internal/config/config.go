// Package config provides YAML-based tuning for the neon runner engine,
// player settings, and difficulty tier management.
package config

// NeonConfig contains every tunable constant of the simulation.
// All distances are world units; all times are seconds.
type NeonConfig struct {
	World   NeonWorld    `yaml:"world"`
	Camera  NeonCamera   `yaml:"camera"`
	Player  NeonPlayer   `yaml:"player"`
	Enemies NeonEnemies  `yaml:"enemies"`
	Combat  NeonCombat   `yaml:"combat"`
	Pickups NeonPickups  `yaml:"pickups"`
	Gates   NeonGates    `yaml:"gates"`
	Spawn   NeonSpawn    `yaml:"spawn"`
	Boss    NeonBoss     `yaml:"boss"`
	Effects NeonEffects  `yaml:"effects"`
	Tiers   []TierConfig `yaml:"tiers"`
}

// NeonWorld defines the track layout and run progression.
type NeonWorld struct {
	TickRate        int     `yaml:"tick_rate"`         // Fixed simulation ticks per second
	MaxFrame        float64 `yaml:"max_frame"`         // Upper bound on one frame's elapsed time
	LaneCount       int     `yaml:"lane_count"`        // Number of lanes
	LaneWidth       float64 `yaml:"lane_width"`        // Width of a single lane
	SpawnZ          float64 `yaml:"spawn_z"`           // Depth at which new rows appear
	PlayerZ         float64 `yaml:"player_z"`          // Depth of the player
	DespawnBehind   float64 `yaml:"despawn_behind"`    // Entities closer than this are removed
	DespawnBeyond   float64 `yaml:"despawn_beyond"`    // Entities farther than this are removed
	WaveLength      float64 `yaml:"wave_length"`       // Distance per wave
	BaseScrollSpeed float64 `yaml:"base_scroll_speed"` // Distance gained per second at wave 0
	ScrollPerWave   float64 `yaml:"scroll_per_wave"`   // Extra scroll speed per wave
	EntitySpeed     float64 `yaml:"entity_speed"`      // Approach speed shared by all entities
	ScorePerSecond  float64 `yaml:"score_per_second"`  // Survival score rate
}

// NeonCamera defines the single-point perspective projection.
type NeonCamera struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	HorizonY     float64 `yaml:"horizon_y"`
	GroundY      float64 `yaml:"ground_y"`
	FocalDepth   float64 `yaml:"focal_depth"`
	LateralScale float64 `yaml:"lateral_scale"`
	Near         float64 `yaml:"near"`
	Far          float64 `yaml:"far"`
}

// NeonPlayer defines the player unit and its starting loadout.
type NeonPlayer struct {
	Radius          float64 `yaml:"radius"`
	MoveSpeed       float64 `yaml:"move_speed"`       // Lateral speed for discrete steering
	DragFollow      float64 `yaml:"drag_follow"`      // Exponential approach factor toward a drag target
	EdgeMargin      float64 `yaml:"edge_margin"`      // Inset from the outer lane edges
	Damage          float64 `yaml:"damage"`           // Damage per projectile
	FireRate        float64 `yaml:"fire_rate"`        // Volleys per second
	ProjectileCount int     `yaml:"projectile_count"` // Starting squad size
	GraceTime       float64 `yaml:"grace_time"`       // Invulnerability after losing a unit
	SquadSpacing    float64 `yaml:"squad_spacing"`
}

// EnemyKind defines one enemy archetype.
type EnemyKind struct {
	Radius float64 `yaml:"radius"`
	Score  int     `yaml:"score"`
}

// NeonEnemies defines enemy archetypes, convergence steering and latching.
type NeonEnemies struct {
	Grunt              EnemyKind `yaml:"grunt"`
	Sprinter           EnemyKind `yaml:"sprinter"`
	Tank               EnemyKind `yaml:"tank"`
	ConvergenceZ       float64   `yaml:"convergence_z"`
	ConvergeRange      float64   `yaml:"converge_range"`
	SteerMin           float64   `yaml:"steer_min"`
	SteerRate          float64   `yaml:"steer_rate"`
	FormationSpread    float64   `yaml:"formation_spread"`
	MaxStuck           int       `yaml:"max_stuck"`
	StuckDrainInterval float64   `yaml:"stuck_drain_interval"`
	StuckRule          string    `yaml:"stuck_rule"` // "proximity" or "weapons"
	PassiveRatio       float64   `yaml:"passive_ratio"`
}

// Stuck rules.
const (
	StuckRuleProximity = "proximity"
	StuckRuleWeapons   = "weapons"
)

// NeonCombat defines firing and collision windows.
type NeonCombat struct {
	BulletSpeed   float64 `yaml:"bullet_speed"`
	BulletRadius  float64 `yaml:"bullet_radius"`
	BulletRange   float64 `yaml:"bullet_range"`
	BulletFade    float64 `yaml:"bullet_fade"`
	MaxShots      int     `yaml:"max_shots"`
	AimCone       float64 `yaml:"aim_cone"`        // Degrees
	MaxSpread     float64 `yaml:"max_spread"`      // Degrees
	SpreadPerShot float64 `yaml:"spread_per_shot"` // Degrees
	ContactDepth  float64 `yaml:"contact_depth"`
	BulletDepth   float64 `yaml:"bullet_depth"`
	GateDepth     float64 `yaml:"gate_depth"`
	DPSCap        float64 `yaml:"dps_cap"`
}

// NeonPickups defines bomb pickups.
type NeonPickups struct {
	Radius           float64 `yaml:"radius"`
	SmallRadius      float64 `yaml:"small_radius"`
	MediumRadius     float64 `yaml:"medium_radius"`
	LargeRadius      float64 `yaml:"large_radius"`
	ClusterDepth     float64 `yaml:"cluster_depth"`
	ClusterHalfWidth float64 `yaml:"cluster_half_width"`
	BossBombDamage   float64 `yaml:"boss_bomb_damage"`
}

// NeonGates defines power gate placement and the negative-bias formula.
type NeonGates struct {
	Interval                float64 `yaml:"interval"`
	IntervalPerWave         float64 `yaml:"interval_per_wave"`
	MinInterval             float64 `yaml:"min_interval"`
	Height                  float64 `yaml:"height"`
	ExpectedDPSPerWave      float64 `yaml:"expected_dps_per_wave"`
	BaselineDPS             float64 `yaml:"baseline_dps"`
	EarlyBias               float64 `yaml:"early_bias"`
	BaseBias                float64 `yaml:"base_bias"`
	OverRatio               float64 `yaml:"over_ratio"`
	OverBias                float64 `yaml:"over_bias"`
	UnderRatio              float64 `yaml:"under_ratio"`
	UnderBias               float64 `yaml:"under_bias"`
	LateWave                int     `yaml:"late_wave"`
	LateFloor               float64 `yaml:"late_floor"`
	ExtremeRatio            float64 `yaml:"extreme_ratio"`
	ExtremeBias             float64 `yaml:"extreme_bias"`
	ExtremeDivisor          float64 `yaml:"extreme_divisor"`
	ExtremeSubtractFraction float64 `yaml:"extreme_subtract_fraction"`
	GuaranteeRatio          float64 `yaml:"guarantee_ratio"`
	OpenLaneChance          float64 `yaml:"open_lane_chance"`
	MultiplyChance          float64 `yaml:"multiply_chance"`
	GoodMultiply            float64 `yaml:"good_multiply"`
	BadMultiply             float64 `yaml:"bad_multiply"`
	GoodAddMin              int     `yaml:"good_add_min"`
	GoodAddMax              int     `yaml:"good_add_max"`
	BadAddMin               int     `yaml:"bad_add_min"`
	BadAddMax               int     `yaml:"bad_add_max"`
}

// NeonSpawn defines the timed enemy spawner and its three patterns.
type NeonSpawn struct {
	InitialDelay    float64 `yaml:"initial_delay"`
	BaseInterval    float64 `yaml:"base_interval"`
	IntervalPerWave float64 `yaml:"interval_per_wave"`
	MinInterval     float64 `yaml:"min_interval"`
	MaxInterval     float64 `yaml:"max_interval"`
	EliteCut        float64 `yaml:"elite_cut"`
	EliteDPSStart   float64 `yaml:"elite_dps_start"`
	EliteDPSFull    float64 `yaml:"elite_dps_full"`
	ArmyChance      float64 `yaml:"army_chance"`
	EliteShift      float64 `yaml:"elite_shift"`
	EliteChance     float64 `yaml:"elite_chance"`
	BaseHP          float64 `yaml:"base_hp"`
	HPPerWave       float64 `yaml:"hp_per_wave"`

	GridColumns     int     `yaml:"grid_columns"`
	GridBaseDepth   int     `yaml:"grid_base_depth"`
	GridDPSDivisor  float64 `yaml:"grid_dps_divisor"`
	GridDepthJitter int     `yaml:"grid_depth_jitter"`
	MaxGridDepth    int     `yaml:"max_grid_depth"`
	GridSpacingX    float64 `yaml:"grid_spacing_x"`
	GridSpacingZ    float64 `yaml:"grid_spacing_z"`
	GridJitter      float64 `yaml:"grid_jitter"`
	LeaderChance    float64 `yaml:"leader_chance"`
	LeaderHP        float64 `yaml:"leader_hp"`
	LeaderScore     int     `yaml:"leader_score"`
	PickupChance    float64 `yaml:"pickup_chance"`

	EliteLaneChance float64 `yaml:"elite_lane_chance"`
	TankChance      float64 `yaml:"tank_chance"`
	TankEliteBonus  float64 `yaml:"tank_elite_bonus"`
	TankHP          float64 `yaml:"tank_hp"`
	SprinterHP      float64 `yaml:"sprinter_hp"`
	EliteRowOffset  float64 `yaml:"elite_row_offset"`

	GapGroup       int     `yaml:"gap_group"`
	GapSpread      float64 `yaml:"gap_spread"`
	GapRowOffset   float64 `yaml:"gap_row_offset"`
	ObstacleChance float64 `yaml:"obstacle_chance"`
	ObstacleWidth  float64 `yaml:"obstacle_width"`
}

// NeonBoss defines the boss encounter.
type NeonBoss struct {
	Interval        float64 `yaml:"interval"` // Distance between boss encounters
	EntryZ          float64 `yaml:"entry_z"`
	HoverZ          float64 `yaml:"hover_z"`
	ApproachSpeed   float64 `yaml:"approach_speed"`
	Radius          float64 `yaml:"radius"`
	BaseHP          float64 `yaml:"base_hp"`
	HPPerWave       float64 `yaml:"hp_per_wave"`
	Score           int     `yaml:"score"`
	BobAmplitude    float64 `yaml:"bob_amplitude"`
	BobFrequency    float64 `yaml:"bob_frequency"`
	StrafeSpeed     float64 `yaml:"strafe_speed"`
	ReverseInterval float64 `yaml:"reverse_interval"`
	FireInterval    float64 `yaml:"fire_interval"`
	ShotSpeed       float64 `yaml:"shot_speed"`
	RecoveryTime    float64 `yaml:"recovery_time"`
}

// NeonEffects defines particles, shake and cosmetic background motion.
type NeonEffects struct {
	MaxParticles  int     `yaml:"max_particles"`
	BurstCap      int     `yaml:"burst_cap"`
	ParticleSpeed float64 `yaml:"particle_speed"`
	ParticleLife  float64 `yaml:"particle_life"`
	HitShake      float64 `yaml:"hit_shake"`
	BombShake     float64 `yaml:"bomb_shake"`
	GridSpeed     float64 `yaml:"grid_speed"`
	WeatherFlakes int     `yaml:"weather_flakes"`
}

// TierConfig maps a difficulty tier to its multipliers.
type TierConfig struct {
	Name         Tier    `yaml:"name"`
	HPMultiplier float64 `yaml:"hp_multiplier"`
	GateBias     float64 `yaml:"gate_bias"` // Added to the negative gate probability
}

// TierMultiplier returns the HP multiplier for a tier.
// Unknown tiers fall back to 1.0.
func (c NeonConfig) TierMultiplier(t Tier) float64 {
	for _, tc := range c.Tiers {
		if tc.Name == t {
			return tc.HPMultiplier
		}
	}
	return 1.0
}

// TierGateBias returns the negative-gate bias offset for a tier (0 if unknown).
func (c NeonConfig) TierGateBias(t Tier) float64 {
	for _, tc := range c.Tiers {
		if tc.Name == t {
			return tc.GateBias
		}
	}
	return 0
}

// HalfSpan returns the half-width of the playable lateral span.
func (c NeonConfig) HalfSpan() float64 {
	return float64(c.World.LaneCount) * c.World.LaneWidth / 2
}
