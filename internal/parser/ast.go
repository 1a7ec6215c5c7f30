package parser

import "strings"

// Command represents a top-level action inputted into the chat DSL.
type Command struct {
	Explore   *ExploreCmd   `parser:"( @@"`
	Maneuver  *ManeuverCmd  `parser:"| @@"`
	Use       *UseCmd       `parser:"| @@"`
	Tame      *TameCmd      `parser:"| @@"`
	Customize *CustomizeCmd `parser:"| @@"`
	Pick      *PickCmd      `parser:"| @@"`
	Register  *RegisterCmd  `parser:"| @@"`
	Stable    *StableCmd    `parser:"| @@"`
	History   *HistoryCmd   `parser:"| @@"`
	Help      *HelpCmd      `parser:"| @@ )"`
}

// ActorExpr maps parsing the "by: Someone" block naming the acting
// character. Every state-changing command requires it.
type ActorExpr struct {
	Keyword string `parser:"'by' ':'"`
	Name    string `parser:"@Ident"`
}

// ExploreCmd rolls for a wild mount discovery near a village.
type ExploreCmd struct {
	Keyword string     `parser:"@('explore'|'Explore')"`
	Village []string   `parser:"@Ident+"`
	Actor   *ActorExpr `parser:"@@"`
}

// VillageName joins the captured village words back together.
func (c *ExploreCmd) VillageName() string {
	return strings.Join(c.Village, " ")
}

// ManeuverCmd attempts one of the capture maneuvers.
type ManeuverCmd struct {
	Action string     `parser:"@('sneak'|'Sneak'|'distract'|'Distract'|'corner'|'Corner'|'rush'|'Rush'|'glide'|'Glide')"`
	Actor  *ActorExpr `parser:"@@"`
}

// UseCmd throws a distraction item picked from the nested selection step.
type UseCmd struct {
	Keyword string     `parser:"@('use'|'Use')"`
	Item    []string   `parser:"@Ident+"`
	Actor   *ActorExpr `parser:"@@"`
}

// ItemName joins the captured item words back together.
func (c *UseCmd) ItemName() string {
	return strings.Join(c.Item, " ")
}

// TameCmd attempts the taming dice-pool check.
type TameCmd struct {
	Keyword string     `parser:"@('tame'|'Tame')"`
	Actor   *ActorExpr `parser:"@@"`
}

// CustomizeCmd answers the customize-or-skip fork after a tame.
type CustomizeCmd struct {
	Choice string     `parser:"@('customize'|'Customize'|'skip'|'Skip')"`
	Actor  *ActorExpr `parser:"@@"`
}

// Customize reports whether the player chose the paid customization path.
func (c *CustomizeCmd) Customize() bool {
	return strings.EqualFold(c.Choice, "customize")
}

// PickCmd resolves the current trait: an explicit option value, or the
// free "random" choice.
type PickCmd struct {
	Keyword string     `parser:"@('pick'|'Pick')"`
	Random  bool       `parser:"( @('random'|'Random')"`
	Value   []string   `parser:"| @Ident+ )"`
	Actor   *ActorExpr `parser:"@@"`
}

// OptionValue joins the captured option words back together.
func (c *PickCmd) OptionValue() string {
	return strings.Join(c.Value, " ")
}

// RegisterCmd names and registers the tamed mount.
type RegisterCmd struct {
	Keyword string     `parser:"@('register'|'Register')"`
	Name    []string   `parser:"@Ident+"`
	Actor   *ActorExpr `parser:"@@"`
}

// MountName joins the captured name words back together.
func (c *RegisterCmd) MountName() string {
	return strings.Join(c.Name, " ")
}

// StableCmd lists the acting character's registered mounts.
type StableCmd struct {
	Keyword string     `parser:"@('stable'|'Stable')"`
	Actor   *ActorExpr `parser:"@@"`
}

// HistoryCmd prints the recent audit trail.
type HistoryCmd struct {
	Keyword string `parser:"@('history'|'History')"`
}

// HelpCmd lists the available commands.
type HelpCmd struct {
	Keyword string `parser:"@('help'|'Help')"`
}
