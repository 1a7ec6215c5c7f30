package encounter

import (
	"crypto/rand"
	"math/big"
)

var mockDiceQueue []int

// MockDice prepares a sequence of deterministic results for the next d20
// draws. Used by tests to pin down probabilistic outcomes.
func MockDice(results []int) {
	mockDiceQueue = results
}

// ResetMockDice clears the deterministic queue.
func ResetMockDice() {
	mockDiceQueue = nil
}

// safeRand fetches a strongly uniform random integer via crypto/rand.
func safeRand(max int) int {
	if max <= 0 {
		return 0
	}
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(max)))
	return int(n.Int64()) + 1 // Convert 0-(Max-1) to 1-Max
}

// d20 draws one d20, honoring the mock queue when primed.
func d20() int {
	if len(mockDiceQueue) > 0 {
		val := mockDiceQueue[0]
		mockDiceQueue = mockDiceQueue[1:]
		return val
	}
	return safeRand(20)
}

// Maneuver is one of the capture actions.
type Maneuver string

const (
	ManeuverSneak    Maneuver = "sneak"
	ManeuverDistract Maneuver = "distract"
	ManeuverCorner   Maneuver = "corner"
	ManeuverRush     Maneuver = "rush"
	ManeuverGlide    Maneuver = "glide"
)

// Maneuvers lists every capture action in presentation order.
var Maneuvers = []Maneuver{ManeuverSneak, ManeuverDistract, ManeuverCorner, ManeuverRush, ManeuverGlide}

// ParseManeuver maps an action word to a Maneuver.
func ParseManeuver(s string) (Maneuver, bool) {
	for _, m := range Maneuvers {
		if string(m) == s {
			return m, true
		}
	}
	return "", false
}

// glideBonus is always granted on a Glide attempt, on top of any
// environment modifier.
const glideBonus = 3

// distractionThreshold is the adjusted-roll target for a distraction item.
const distractionThreshold = 7

// maneuverThresholds are the adjusted-roll targets per maneuver. Distract
// resolves through the item path instead and is absent here.
var maneuverThresholds = map[Maneuver]int{
	ManeuverSneak:  5,
	ManeuverCorner: 7,
	ManeuverRush:   17,
	ManeuverGlide:  17,
}

// DiscoveryRoll rolls the d20 that decides whether exploring turns up a
// wild mount. Only a natural 20 promotes the roll into an encounter.
func DiscoveryRoll() (roll int, found bool) {
	roll = d20()
	return roll, roll == 20
}

// ManeuverResult captures one capture-maneuver roll.
type ManeuverResult struct {
	Roll     int
	Modifier int
	Adjusted int
	Success  bool
}

// ResolveManeuver rolls a d20 for the given maneuver and applies the
// additive environment modifier. Glide additionally gets its flat bonus.
func ResolveManeuver(m Maneuver, modifier int) ManeuverResult {
	if m == ManeuverGlide {
		modifier += glideBonus
	}
	roll := d20()
	adjusted := roll + modifier
	return ManeuverResult{
		Roll:     roll,
		Modifier: modifier,
		Adjusted: adjusted,
		Success:  adjusted >= maneuverThresholds[m],
	}
}

// DistractionResult captures one distraction-item roll.
type DistractionResult struct {
	Roll     int
	Bonus    int
	Adjusted int
	Success  bool
}

// ResolveDistraction rolls a d20 and applies the item-specific bonus
// against the fixed distraction threshold.
func ResolveDistraction(itemBonus int) DistractionResult {
	roll := d20()
	adjusted := roll + itemBonus
	return DistractionResult{
		Roll:     roll,
		Bonus:    itemBonus,
		Adjusted: adjusted,
		Success:  adjusted >= distractionThreshold,
	}
}

// TamingResult captures the dice-pool taming check.
type TamingResult struct {
	Rolls     []int
	Successes int
	Natural20 bool
	Tamed     bool
}

// ResolveTaming draws one d20 per point of the character's current
// stamina and counts rolls of 5 or higher as successes. The check passes
// on a natural 20 anywhere in the pool, or when successes reach the
// mount's stamina threshold.
func ResolveTaming(characterStamina, mountStamina int) TamingResult {
	if characterStamina < 0 {
		characterStamina = 0
	}

	res := TamingResult{}
	for i := 0; i < characterStamina; i++ {
		roll := d20()
		res.Rolls = append(res.Rolls, roll)
		if roll == 20 {
			res.Natural20 = true
		}
		if roll >= 5 {
			res.Successes++
		}
	}

	res.Tamed = res.Natural20 || res.Successes >= mountStamina
	return res
}
