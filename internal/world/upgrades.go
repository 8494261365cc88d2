package world

import "math/rand"

// UpgradeKind identifies one of the closed set of upgrade choices offered on
// level-up. The string values double as the wire representation.
type UpgradeKind string

const (
	UpgradeIncreaseDamage          UpgradeKind = "IncreaseDamage"
	UpgradeIncreaseAttackSpeed     UpgradeKind = "IncreaseAttackSpeed"
	UpgradeIncreaseProjectileSpeed UpgradeKind = "IncreaseProjectileSpeed"
	UpgradeMultiShot               UpgradeKind = "MultiShot"
	UpgradePiercingShots           UpgradeKind = "PiercingShots"
	UpgradeIncreaseMaxHealth       UpgradeKind = "IncreaseMaxHealth"
	UpgradeIncreaseMovementSpeed   UpgradeKind = "IncreaseMovementSpeed"
	UpgradeHealthRegeneration      UpgradeKind = "HealthRegeneration"
	UpgradePickupRadius            UpgradeKind = "PickupRadius"
	UpgradeMagnet                  UpgradeKind = "Magnet"
	UpgradeArmor                   UpgradeKind = "Armor"
	UpgradeLuck                    UpgradeKind = "Luck"
)

// AllUpgradeKinds lists the full upgrade catalogue in presentation order.
func AllUpgradeKinds() []UpgradeKind {
	return []UpgradeKind{
		UpgradeIncreaseDamage,
		UpgradeIncreaseAttackSpeed,
		UpgradeIncreaseProjectileSpeed,
		UpgradeMultiShot,
		UpgradePiercingShots,
		UpgradeIncreaseMaxHealth,
		UpgradeIncreaseMovementSpeed,
		UpgradeHealthRegeneration,
		UpgradePickupRadius,
		UpgradeMagnet,
		UpgradeArmor,
		UpgradeLuck,
	}
}

var upgradeNames = map[UpgradeKind]string{
	UpgradeIncreaseDamage:          "Damage+",
	UpgradeIncreaseAttackSpeed:     "Attack Speed+",
	UpgradeIncreaseProjectileSpeed: "Projectile Speed+",
	UpgradeMultiShot:               "Multi Shot",
	UpgradePiercingShots:           "Piercing Shots",
	UpgradeIncreaseMaxHealth:       "Max Health+",
	UpgradeIncreaseMovementSpeed:   "Move Speed+",
	UpgradeHealthRegeneration:      "HP Regeneration",
	UpgradePickupRadius:            "Pickup Radius+",
	UpgradeMagnet:                  "Magnet",
	UpgradeArmor:                   "Armor",
	UpgradeLuck:                    "Luck",
}

var upgradeDescriptions = map[UpgradeKind]string{
	UpgradeIncreaseDamage:          "Increase damage by 20%",
	UpgradeIncreaseAttackSpeed:     "Increase attack speed by 15%",
	UpgradeIncreaseProjectileSpeed: "Increase projectile speed by 25%",
	UpgradeMultiShot:               "Fire 2 additional projectiles",
	UpgradePiercingShots:           "Projectiles pierce through 1 enemy",
	UpgradeIncreaseMaxHealth:       "Increase max health by 25%",
	UpgradeIncreaseMovementSpeed:   "Increase movement speed by 10%",
	UpgradeHealthRegeneration:      "Regenerate 1 HP per second",
	UpgradePickupRadius:            "Increase pickup radius by 50%",
	UpgradeMagnet:                  "Automatically collect nearby XP",
	UpgradeArmor:                   "Reduce damage taken by 10%",
	UpgradeLuck:                    "Increase luck by 10%",
}

// Valid reports whether the kind belongs to the catalogue. The wire decodes
// into an open string, so holders must check before trusting one.
func (k UpgradeKind) Valid() bool {
	_, ok := upgradeNames[k]
	return ok
}

// Name returns the short display name for the upgrade.
func (k UpgradeKind) Name() string {
	return upgradeNames[k]
}

// Description returns the player-facing description for the upgrade.
func (k UpgradeKind) Description() string {
	return upgradeDescriptions[k]
}

// RandomUpgradeChoices draws count distinct upgrades from the catalogue.
// Repeat offers across separate level-ups are allowed; within one draw the
// choices never repeat.
func RandomUpgradeChoices(rng *rand.Rand, count int) []UpgradeKind {
	pool := AllUpgradeKinds()
	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	if count > len(pool) {
		count = len(pool)
	}
	return pool[:count]
}

// UpgradeLevels accumulates how many times a player picked each upgrade.
type UpgradeLevels struct {
	Damage          int  `json:"damage_level"`
	AttackSpeed     int  `json:"attack_speed_level"`
	ProjectileSpeed int  `json:"projectile_speed_level"`
	MultiShot       int  `json:"multi_shot_level"`
	Piercing        int  `json:"piercing_level"`
	MaxHealth       int  `json:"max_health_level"`
	MovementSpeed   int  `json:"movement_speed_level"`
	Regen           int  `json:"regen_level"`
	PickupRadius    int  `json:"pickup_radius_level"`
	HasMagnet       bool `json:"has_magnet"`
	Armor           int  `json:"armor_level"`
	Luck            int  `json:"luck_level"`
}

// Apply records one level of the given upgrade.
func (u *UpgradeLevels) Apply(kind UpgradeKind) {
	switch kind {
	case UpgradeIncreaseDamage:
		u.Damage++
	case UpgradeIncreaseAttackSpeed:
		u.AttackSpeed++
	case UpgradeIncreaseProjectileSpeed:
		u.ProjectileSpeed++
	case UpgradeMultiShot:
		u.MultiShot++
	case UpgradePiercingShots:
		u.Piercing++
	case UpgradeIncreaseMaxHealth:
		u.MaxHealth++
	case UpgradeIncreaseMovementSpeed:
		u.MovementSpeed++
	case UpgradeHealthRegeneration:
		u.Regen++
	case UpgradePickupRadius:
		u.PickupRadius++
	case UpgradeMagnet:
		u.HasMagnet = true
	case UpgradeArmor:
		u.Armor++
	case UpgradeLuck:
		u.Luck++
	}
}

// DamageMultiplier scales base damage by 20% per level.
func (u UpgradeLevels) DamageMultiplier() float64 {
	return 1 + float64(u.Damage)*0.2
}

// AttackSpeedMultiplier scales base attack cadence by 15% per level.
func (u UpgradeLevels) AttackSpeedMultiplier() float64 {
	return 1 + float64(u.AttackSpeed)*0.15
}

// MovementSpeedMultiplier scales base movement speed by 10% per level.
func (u UpgradeLevels) MovementSpeedMultiplier() float64 {
	return 1 + float64(u.MovementSpeed)*0.1
}

// ProjectileSpeedMultiplier scales projectile speed by 25% per level.
func (u UpgradeLevels) ProjectileSpeedMultiplier() float64 {
	return 1 + float64(u.ProjectileSpeed)*0.25
}

// DamageReduction returns the armor damage reduction, capped at 75%.
func (u UpgradeLevels) DamageReduction() float64 {
	reduction := float64(u.Armor) * 0.1
	if reduction > 0.75 {
		return 0.75
	}
	return reduction
}

// ExtraProjectiles returns how many additional projectiles multi-shot
// grants per attack. Extension point: the base combat pass fires one.
func (u UpgradeLevels) ExtraProjectiles() int {
	return u.MultiShot * 2
}
