package encounter

import (
	"fmt"
	"sort"
)

// CaptureController orchestrates the maneuver loop of the capture phase.
// Every entry point re-fetches the encounter, runs the guard chain in
// order, and persists after each state-affecting step. Stamina is debited
// before the roll so a crash between the two leaves the cost charged and
// the step re-presentable, never the reverse.
type CaptureController struct {
	Store     Store
	Ledger    Ledger
	Inventory Inventory
	Modifiers Modifiers
	Audit     AuditSink
}

// Attempt resolves one of the sneak/corner/rush/glide maneuvers. Distract
// goes through Distract/UseDistraction instead.
func (c *CaptureController) Attempt(id string, m Maneuver, characterName, userID string) (*Prompt, error) {
	e, err := c.Store.Get(id)
	if err != nil {
		return nil, err
	}
	if e.State != StateAwaitingAction {
		return nil, fmt.Errorf("%w: no capture maneuver pending", ErrInvalidSelection)
	}

	// Glide is single-use; the check precedes any stamina debit.
	if m == ManeuverGlide && e.GlideUsed {
		return nil, ErrGlideSpent
	}

	if err := e.Authorize(characterName, userID); err != nil {
		return nil, err
	}

	if m == ManeuverDistract {
		return c.Distract(id, characterName, userID)
	}

	res, err := c.Ledger.DebitStamina(characterName, 1)
	if err != nil {
		return nil, err
	}
	if !res.OK {
		return c.escape(e, characterName)
	}

	mod, err := c.Modifiers.ManeuverModifier(e.Village, e.Environment, e.MountType, m)
	if err != nil {
		return nil, err
	}
	outcome := ResolveManeuver(m, mod)

	if m == ManeuverGlide {
		// Spent whether the attempt landed or not.
		e.GlideUsed = true
	}

	if outcome.Success {
		if err := e.Transition(StateAwaitingTame); err != nil {
			return nil, err
		}
	}
	if err := c.Store.Put(e); err != nil {
		return nil, err
	}

	c.Audit.Record(&ManeuverAttemptedEvent{
		EncounterID: e.ID,
		Character:   characterName,
		Maneuver:    m,
		Roll:        outcome.Roll,
		Adjusted:    outcome.Adjusted,
		Success:     outcome.Success,
		StaminaLeft: res.NewBalance,
	})

	if outcome.Success {
		msg := fmt.Sprintf("Your %s worked (rolled %d, adjusted %d)! The %s holds still. Try to tame it.",
			m, outcome.Roll, outcome.Adjusted, e.MountType)
		return tamePrompt(e, msg), nil
	}
	msg := fmt.Sprintf("Your %s failed (rolled %d, adjusted %d). The %s is still wary. Stamina left: %d.",
		m, outcome.Roll, outcome.Adjusted, e.MountType, res.NewBalance)
	return maneuverPrompt(e, msg), nil
}

// Distract opens the nested item-selection step: it lists the acting
// character's valid distraction items for this species, deduplicated by
// name with summed quantities. No stamina is debited for distractions.
func (c *CaptureController) Distract(id, characterName, userID string) (*Prompt, error) {
	e, err := c.Store.Get(id)
	if err != nil {
		return nil, err
	}
	if e.State != StateAwaitingAction {
		return nil, fmt.Errorf("%w: no capture maneuver pending", ErrInvalidSelection)
	}
	if err := e.Authorize(characterName, userID); err != nil {
		return nil, err
	}

	items, err := c.Inventory.DistractionItems(characterName, e.MountType)
	if err != nil {
		return nil, err
	}
	items = dedupeItems(items)
	if len(items) == 0 {
		return maneuverPrompt(e, fmt.Sprintf("You carry nothing a %s would care about. Try another approach.", e.MountType)), nil
	}

	p := &Prompt{
		State:   e.State,
		Message: fmt.Sprintf("What do you throw to the %s?", e.MountType),
	}
	for _, item := range items {
		p.Options = append(p.Options, Option{
			Label:   fmt.Sprintf("%s x%d", item.Name, item.Quantity),
			Command: "use " + item.Name,
		})
	}
	return p, nil
}

// UseDistraction consumes exactly one unit of the chosen item and
// resolves the distraction roll. Success skips straight to the taming
// phase without a stamina debit.
func (c *CaptureController) UseDistraction(id, item, characterName, userID string) (*Prompt, error) {
	e, err := c.Store.Get(id)
	if err != nil {
		return nil, err
	}
	if e.State != StateAwaitingAction {
		return nil, fmt.Errorf("%w: no capture maneuver pending", ErrInvalidSelection)
	}
	if err := e.Authorize(characterName, userID); err != nil {
		return nil, err
	}

	items, err := c.Inventory.DistractionItems(characterName, e.MountType)
	if err != nil {
		return nil, err
	}
	var bonus int
	found := false
	for _, it := range items {
		if it.Name == item && it.Quantity > 0 {
			bonus = it.Bonus
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: %s is not a usable distraction item", ErrInvalidSelection, item)
	}

	if err := c.Inventory.ConsumeItem(characterName, item); err != nil {
		return nil, err
	}

	outcome := ResolveDistraction(bonus)
	e.DistractionResult = outcome.Success
	if outcome.Success {
		if err := e.Transition(StateAwaitingTame); err != nil {
			return nil, err
		}
	}
	if err := c.Store.Put(e); err != nil {
		return nil, err
	}

	c.Audit.Record(&DistractionUsedEvent{
		EncounterID: e.ID,
		Character:   characterName,
		Item:        item,
		Roll:        outcome.Roll,
		Adjusted:    outcome.Adjusted,
		Success:     outcome.Success,
	})

	if outcome.Success {
		msg := fmt.Sprintf("The %s takes the bait (rolled %d, adjusted %d)! Try to tame it.",
			e.MountType, outcome.Roll, outcome.Adjusted)
		return tamePrompt(e, msg), nil
	}
	msg := fmt.Sprintf("The %s ignores your %s (rolled %d, adjusted %d).",
		e.MountType, item, outcome.Roll, outcome.Adjusted)
	return maneuverPrompt(e, msg), nil
}

// escape deletes the encounter and reports the terminal outcome. The
// returned error wraps ErrResourceExhausted; callers convert it into a
// terminal "creature escaped" response, it is expected game flow.
func (c *CaptureController) escape(e *Encounter, characterName string) (*Prompt, error) {
	if err := c.Store.Delete(e.ID); err != nil {
		return nil, err
	}
	c.Audit.Record(&CreatureEscapedEvent{
		EncounterID: e.ID,
		Character:   characterName,
		Species:     e.MountType,
		Phase:       e.State,
	})
	return nil, fmt.Errorf("the %s broke free and escaped into the wild: %w", e.MountType, ErrResourceExhausted)
}

// dedupeItems merges entries with the same name, summing quantities, and
// returns them in a stable name order.
func dedupeItems(items []DistractionItem) []DistractionItem {
	merged := make(map[string]DistractionItem)
	for _, it := range items {
		cur, ok := merged[it.Name]
		if !ok {
			merged[it.Name] = it
			continue
		}
		cur.Quantity += it.Quantity
		merged[it.Name] = cur
	}

	out := make([]DistractionItem, 0, len(merged))
	for _, it := range merged {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
