package proc

// MaxPower is the binding power reached by a mythical enchantment at the level cap
const MaxPower = 1900

// MaxChance caps every proc chance, in percent
const MaxChance = 50.0

// TriggerChance returns the proc chance in percent for a power-scaled enchantment.
// It grows linearly to 40% at MaxPower and never exceeds MaxChance.
func TriggerChance(power int) float64 {
	if power <= 0 {
		return 0
	}
	return clampChance(float64(power) / MaxPower * 40)
}

// DamageScaledChance returns the proc chance in percent for enchantments whose
// odds grow with the damage of the triggering hit.
func DamageScaledChance(damage int, baseChance float64) float64 {
	if damage <= 0 || baseChance <= 0 {
		return 0
	}
	return clampChance(float64(damage) / 100 * baseChance)
}

func clampChance(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > MaxChance {
		return MaxChance
	}
	return c
}
