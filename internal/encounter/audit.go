package encounter

import (
	"fmt"
	"strings"
)

// AuditEventType discriminates serialized audit events.
type AuditEventType string

const (
	AuditEncounterDiscovered AuditEventType = "EncounterDiscovered"
	AuditManeuverAttempted   AuditEventType = "ManeuverAttempted"
	AuditDistractionUsed     AuditEventType = "DistractionUsed"
	AuditCreatureEscaped     AuditEventType = "CreatureEscaped"
	AuditTamingResolved      AuditEventType = "TamingResolved"
	AuditTraitResolved       AuditEventType = "TraitResolved"
	AuditMountRegistered     AuditEventType = "MountRegistered"
)

// AuditEvent is a structured record of something that happened during the
// taming flow. Events are emitted fire-and-forget to an AuditSink.
type AuditEvent interface {
	Type() AuditEventType
	Message() string
}

// EncounterDiscoveredEvent records a natural-20 discovery roll.
type EncounterDiscoveredEvent struct {
	EncounterID string `json:"encounter_id"`
	Village     string `json:"village"`
	Species     string `json:"species"`
	Rarity      Rarity `json:"rarity"`
	RollerID    string `json:"roller_id"`
}

func (e *EncounterDiscoveredEvent) Type() AuditEventType { return AuditEncounterDiscovered }
func (e *EncounterDiscoveredEvent) Message() string {
	return fmt.Sprintf("A wild %s %s appeared near %s!", strings.ToLower(string(e.Rarity)), e.Species, e.Village)
}

// ManeuverAttemptedEvent records one capture maneuver and its cost.
type ManeuverAttemptedEvent struct {
	EncounterID string   `json:"encounter_id"`
	Character   string   `json:"character"`
	Maneuver    Maneuver `json:"maneuver"`
	Roll        int      `json:"roll"`
	Adjusted    int      `json:"adjusted"`
	Success     bool     `json:"success"`
	StaminaLeft int      `json:"stamina_left"`
}

func (e *ManeuverAttemptedEvent) Type() AuditEventType { return AuditManeuverAttempted }
func (e *ManeuverAttemptedEvent) Message() string {
	outcome := "failed"
	if e.Success {
		outcome = "succeeded"
	}
	return fmt.Sprintf("%s tried to %s: rolled %d (adjusted %d) and %s.", e.Character, e.Maneuver, e.Roll, e.Adjusted, outcome)
}

// DistractionUsedEvent records an item-based distraction attempt.
type DistractionUsedEvent struct {
	EncounterID string `json:"encounter_id"`
	Character   string `json:"character"`
	Item        string `json:"item"`
	Roll        int    `json:"roll"`
	Adjusted    int    `json:"adjusted"`
	Success     bool   `json:"success"`
}

func (e *DistractionUsedEvent) Type() AuditEventType { return AuditDistractionUsed }
func (e *DistractionUsedEvent) Message() string {
	outcome := "was ignored"
	if e.Success {
		outcome = "worked"
	}
	return fmt.Sprintf("%s used %s as a distraction: rolled %d (adjusted %d), it %s.", e.Character, e.Item, e.Roll, e.Adjusted, outcome)
}

// CreatureEscapedEvent records a terminal escape from stamina exhaustion.
type CreatureEscapedEvent struct {
	EncounterID string `json:"encounter_id"`
	Character   string `json:"character"`
	Species     string `json:"species"`
	Phase       State  `json:"phase"`
}

func (e *CreatureEscapedEvent) Type() AuditEventType { return AuditCreatureEscaped }
func (e *CreatureEscapedEvent) Message() string {
	return fmt.Sprintf("The %s escaped from %s!", e.Species, e.Character)
}

// TamingResolvedEvent records one taming dice-pool check.
type TamingResolvedEvent struct {
	EncounterID string `json:"encounter_id"`
	Character   string `json:"character"`
	Rolls       []int  `json:"rolls"`
	Successes   int    `json:"successes"`
	Threshold   int    `json:"threshold"`
	Natural20   bool   `json:"natural_20"`
	Tamed       bool   `json:"tamed"`
}

func (e *TamingResolvedEvent) Type() AuditEventType { return AuditTamingResolved }
func (e *TamingResolvedEvent) Message() string {
	if e.Natural20 {
		return fmt.Sprintf("%s rolled a natural 20 and tamed the mount outright!", e.Character)
	}
	outcome := "the mount resisted"
	if e.Tamed {
		outcome = "the mount was tamed"
	}
	return fmt.Sprintf("%s rolled %v: %d/%d successes, %s.", e.Character, e.Rolls, e.Successes, e.Threshold, outcome)
}

// TraitResolvedEvent records one customization step and its charge.
type TraitResolvedEvent struct {
	EncounterID string `json:"encounter_id"`
	Character   string `json:"character"`
	Trait       string `json:"trait"`
	Value       string `json:"value"`
	Cost        int    `json:"cost"`
	Random      bool   `json:"random"`
}

func (e *TraitResolvedEvent) Type() AuditEventType { return AuditTraitResolved }
func (e *TraitResolvedEvent) Message() string {
	if e.Random {
		return fmt.Sprintf("%s let %s resolve randomly: %s.", e.Character, e.Trait, e.Value)
	}
	return fmt.Sprintf("%s chose %s = %s for %d tokens.", e.Character, e.Trait, e.Value, e.Cost)
}

// MountRegisteredEvent records the terminal registration.
type MountRegisteredEvent struct {
	EncounterID string `json:"encounter_id"`
	Character   string `json:"character"`
	MountName   string `json:"mount_name"`
	Species     string `json:"species"`
	Fee         int    `json:"fee"`
	TotalSpent  int    `json:"total_spent"`
}

func (e *MountRegisteredEvent) Type() AuditEventType { return AuditMountRegistered }
func (e *MountRegisteredEvent) Message() string {
	return fmt.Sprintf("%s registered %s the %s (%d tokens total).", e.Character, e.MountName, e.Species, e.TotalSpent)
}
