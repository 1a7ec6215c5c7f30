package encounter

import "fmt"

// Option is one action the player can take next. Command is the chat
// input that triggers it; the presentation layer may render it as a
// button or just show it inline.
type Option struct {
	Label   string
	Command string
}

// Prompt is the abstract next-step descriptor handed to the presentation
// layer after every interaction. The controllers never depend on how (or
// whether) it gets rendered.
type Prompt struct {
	State    State
	Message  string
	Options  []Option
	Terminal bool
}

// maneuverPrompt re-presents the capture menu, omitting Glide once spent.
func maneuverPrompt(e *Encounter, message string) *Prompt {
	p := &Prompt{State: e.State, Message: message}
	for _, m := range Maneuvers {
		if m == ManeuverGlide && e.GlideUsed {
			continue
		}
		p.Options = append(p.Options, Option{
			Label:   string(m),
			Command: string(m),
		})
	}
	return p
}

// tamePrompt presents the taming action.
func tamePrompt(e *Encounter, message string) *Prompt {
	return &Prompt{
		State:   e.State,
		Message: message,
		Options: []Option{{Label: "tame", Command: "tame"}},
	}
}

// customizationChoicePrompt presents the customize-or-skip fork.
func customizationChoicePrompt(e *Encounter) *Prompt {
	return &Prompt{
		State: e.State,
		Message: fmt.Sprintf("You tamed the %s %s! Customize its traits, or skip to roll them randomly.",
			e.Rarity, e.MountType),
		Options: []Option{
			{Label: "customize", Command: "customize"},
			{Label: "skip", Command: "skip"},
		},
	}
}

// traitPrompt presents the current trait's option values plus the free
// random choice.
func traitPrompt(e *Encounter, spec TraitSpec) *Prompt {
	p := &Prompt{
		State:   e.State,
		Message: fmt.Sprintf("Choose a %s (%d tokens each, random is free):", spec.Key, spec.Price),
	}
	for _, opt := range spec.Options {
		p.Options = append(p.Options, Option{Label: opt, Command: "pick " + opt})
	}
	p.Options = append(p.Options, Option{Label: "random", Command: "pick random"})
	return p
}

// registrationPrompt asks for the mount's display name.
func registrationPrompt(e *Encounter, fee int) *Prompt {
	return &Prompt{
		State:   e.State,
		Message: fmt.Sprintf("All traits are set. Name your %s to register it (%d token fee): register <name>", e.MountType, fee),
	}
}
