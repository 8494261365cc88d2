package world

import "github.com/google/uuid"

// Projectile is a player auto-attack in flight. It carries a fixed velocity
// and damage snapshot taken at launch; the owner is referenced by id so that
// disconnects never dangle.
type Projectile struct {
	ID               string   `json:"id"`
	OwnerID          string   `json:"owner_id"`
	Position         Position `json:"position"`
	Velocity         Vec2     `json:"velocity"`
	Damage           float64  `json:"damage"`
	Lifetime         float64  `json:"lifetime"`
	OriginalLifetime float64  `json:"original_lifetime"`
}

// NewProjectile launches a projectile from origin along direction. The
// direction is normalized here; callers pass the raw aim vector.
func NewProjectile(ownerID string, origin Position, direction Vec2, speed, damage, lifetime float64) *Projectile {
	return &Projectile{
		ID:               uuid.NewString(),
		OwnerID:          ownerID,
		Position:         origin,
		Velocity:         direction.Normalized().Scaled(speed),
		Damage:           damage,
		Lifetime:         lifetime,
		OriginalLifetime: lifetime,
	}
}

// Advance moves the projectile along its velocity and burns lifetime.
func (p *Projectile) Advance(dt float64) {
	p.Position.X += p.Velocity.X * dt
	p.Position.Y += p.Velocity.Y * dt
	p.Lifetime -= dt
}

// Expired reports whether the projectile's lifetime has run out.
func (p *Projectile) Expired() bool {
	return p.Lifetime <= 0
}
