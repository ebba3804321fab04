package neon

// Store owns every live entity. The player is held apart and is reset,
// never recreated. Entities added during a tick wait in a pending list
// until Prune, so views built by Index stay valid for the whole tick.
type Store struct {
	player    Entity
	entities  []Entity
	pending   []Entity
	particles []Entity
	nextID    uint64

	maxParticles int

	enemies   []*Entity
	bullets   []*Entity
	pickups   []*Entity
	gates     []*Entity
	obstacles []*Entity
	boss      *Entity
	stuck     int
}

// NewStore creates an empty store that keeps at most maxParticles particles.
func NewStore(maxParticles int) *Store {
	return &Store{
		maxParticles: maxParticles,
		entities:     make([]Entity, 0, 256),
		particles:    make([]Entity, 0, maxParticles),
	}
}

// Reset drops everything except the player, which is reinitialised in place.
func (s *Store) Reset(player Entity) {
	s.entities = s.entities[:0]
	s.pending = s.pending[:0]
	s.particles = s.particles[:0]
	s.nextID = 0
	player.ID = s.id()
	player.Active = true
	player.Lane = -1
	s.player = player
	s.Index()
}

func (s *Store) id() uint64 {
	s.nextID++
	return s.nextID
}

// Player returns the persistent player entity.
func (s *Store) Player() *Entity { return &s.player }

// Add queues an entity for the next Prune and returns its id.
func (s *Store) Add(e Entity) uint64 {
	e.ID = s.id()
	e.Active = true
	e.Hostile = e.Kind.IsEnemy()
	if e.Kind != KindGate {
		e.Lane = -1
	}
	s.pending = append(s.pending, e)
	return e.ID
}

// AddParticle inserts a particle immediately, dropping the oldest at capacity.
func (s *Store) AddParticle(p Entity) {
	if s.maxParticles <= 0 {
		return
	}
	p.ID = s.id()
	p.Kind = KindParticle
	p.Active = true
	p.Lane = -1
	if len(s.particles) >= s.maxParticles {
		copy(s.particles, s.particles[1:])
		s.particles = s.particles[:len(s.particles)-1]
	}
	s.particles = append(s.particles, p)
}

// Prune removes inactive entities and admits pending ones.
// Views from Index are invalid afterwards.
func (s *Store) Prune() {
	live := s.entities[:0]
	for i := range s.entities {
		if s.entities[i].Active {
			live = append(live, s.entities[i])
		}
	}
	for i := len(live); i < len(s.entities); i++ {
		s.entities[i] = Entity{}
	}
	s.entities = append(live, s.pending...)
	for i := range s.pending {
		s.pending[i] = Entity{}
	}
	s.pending = s.pending[:0]

	parts := s.particles[:0]
	for i := range s.particles {
		if s.particles[i].Active {
			parts = append(parts, s.particles[i])
		}
	}
	s.particles = parts
}

// Index rebuilds the per-kind views over active entities.
func (s *Store) Index() {
	s.enemies = s.enemies[:0]
	s.bullets = s.bullets[:0]
	s.pickups = s.pickups[:0]
	s.gates = s.gates[:0]
	s.obstacles = s.obstacles[:0]
	s.boss = nil
	s.stuck = 0

	for i := range s.entities {
		e := &s.entities[i]
		if !e.Active {
			continue
		}
		switch e.Kind {
		case KindGrunt, KindSprinter, KindTank:
			s.enemies = append(s.enemies, e)
			if e.Stuck.Active {
				s.stuck++
			}
		case KindBoss:
			s.boss = e
		case KindBullet:
			s.bullets = append(s.bullets, e)
		case KindPickup:
			s.pickups = append(s.pickups, e)
		case KindGate:
			s.gates = append(s.gates, e)
		case KindObstacle:
			s.obstacles = append(s.obstacles, e)
		}
	}
}

// Each calls fn for every active non-particle entity, pending ones excluded.
func (s *Store) Each(fn func(e *Entity)) {
	for i := range s.entities {
		if s.entities[i].Active {
			fn(&s.entities[i])
		}
	}
}

// EachParticle calls fn for every active particle.
func (s *Store) EachParticle(fn func(p *Entity)) {
	for i := range s.particles {
		if s.particles[i].Active {
			fn(&s.particles[i])
		}
	}
}

// Entities returns a copy of the active entities.
func (s *Store) Entities() []Entity {
	out := make([]Entity, 0, len(s.entities))
	for i := range s.entities {
		if s.entities[i].Active {
			out = append(out, s.entities[i])
		}
	}
	return out
}

// Particles returns a copy of the active particles.
func (s *Store) Particles() []Entity {
	out := make([]Entity, 0, len(s.particles))
	for i := range s.particles {
		if s.particles[i].Active {
			out = append(out, s.particles[i])
		}
	}
	return out
}

// Len counts active entities including particles and the player.
func (s *Store) Len() int {
	n := 1
	for i := range s.entities {
		if s.entities[i].Active {
			n++
		}
	}
	for i := range s.particles {
		if s.particles[i].Active {
			n++
		}
	}
	return n
}

// Pending reports how many entities wait for the next Prune.
func (s *Store) Pending() int { return len(s.pending) }

// Boss returns the active boss, or nil.
func (s *Store) Boss() *Entity { return s.boss }

// StuckCount returns the number of latched enemies as of the last Index.
func (s *Store) StuckCount() int { return s.stuck }

// FindBoss scans live and pending entities for an active boss.
func (s *Store) FindBoss() *Entity {
	for i := range s.entities {
		if s.entities[i].Active && s.entities[i].Kind == KindBoss {
			return &s.entities[i]
		}
	}
	for i := range s.pending {
		if s.pending[i].Kind == KindBoss {
			return &s.pending[i]
		}
	}
	return nil
}
