package world

// updateEnemies moves every enemy toward the nearest living player and
// records that player as the enemy's target for the attack pass. Enemies
// with no living player to chase hold position and keep no target.
func (w *World) updateEnemies(dt float64) {
	for _, enemy := range w.enemies {
		target, _ := w.nearestLivingPlayer(enemy.Position)
		if target == nil {
			enemy.TargetPlayerID = ""
			continue
		}
		enemy.TargetPlayerID = target.ID
		enemy.Position.MoveTowards(target.Position, enemy.MovementSpeed, dt)
	}
}
