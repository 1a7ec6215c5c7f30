package game

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/google/uuid"

	"github.com/tessvale/stablehand/internal/encounter"
	"github.com/tessvale/stablehand/internal/ledger"
	"github.com/tessvale/stablehand/internal/parser"
	"github.com/tessvale/stablehand/internal/rules"
	"github.com/tessvale/stablehand/internal/species"
	"github.com/tessvale/stablehand/internal/stable"
	"github.com/tessvale/stablehand/internal/store"
	"github.com/tessvale/stablehand/internal/world"
)

// Reply is what one chat interaction sends back: messages plus the next
// actions the presentation layer may render as buttons.
type Reply struct {
	Messages []string
	Options  []encounter.Option
	Terminal bool
}

// Session wires the stores, ledger, catalog, and policy into the phase
// controllers and routes parsed chat commands to them. It holds no
// per-interaction state: every handler re-fetches the encounter and
// character records, since another participant's interaction may have
// mutated them in between.
type Session struct {
	store   *store.FileStore
	ledger  *ledger.FileLedger
	catalog *species.Catalog
	policy  *world.Policy
	audit   *store.AuditLog
	mounts  *stable.FileRegistry

	capture   *encounter.CaptureController
	taming    *encounter.TamingController
	customize *encounter.CustomizeController
	register  *encounter.RegisterController

	parser *participle.Parser[parser.Command]
	rng    *rand.Rand
}

// NewSession bootstraps the full game pipeline for one world.
func NewSession(m *world.Manager, worldName string, seed int64) (*Session, error) {
	if err := m.Load(worldName); err != nil {
		return nil, err
	}

	encStore, err := store.NewFileStore(m.EncountersDir(worldName))
	if err != nil {
		return nil, err
	}
	led, err := ledger.NewFileLedger(m.LedgerDir(worldName))
	if err != nil {
		return nil, err
	}
	mounts, err := stable.NewFileRegistry(m.MountsDir(worldName))
	if err != nil {
		return nil, err
	}
	audit, err := store.NewAuditLog(m.AuditLogPath(worldName))
	if err != nil {
		return nil, err
	}

	dataDirs := m.DataDirs(worldName)
	catalog := species.NewCatalog(dataDirs, seed)

	villages, err := world.LoadVillages(dataDirs)
	if err != nil {
		return nil, err
	}
	eval, err := rules.NewEvaluator()
	if err != nil {
		return nil, err
	}
	policy := &world.Policy{Villages: villages, Eval: eval}

	inv := &inventorySource{ledger: led, catalog: catalog}
	registry := &mountRegistry{mounts: mounts, ledger: led}

	s := &Session{
		store:   encStore,
		ledger:  led,
		catalog: catalog,
		policy:  policy,
		audit:   audit,
		mounts:  mounts,
		parser:  parser.Build(),
		rng:     rand.New(rand.NewSource(seed)),
	}
	s.capture = &encounter.CaptureController{Store: encStore, Ledger: led, Inventory: inv, Modifiers: policy, Audit: audit}
	s.taming = &encounter.TamingController{Store: encStore, Ledger: led, Audit: audit}
	s.customize = &encounter.CustomizeController{Store: encStore, Ledger: led, Catalog: catalog, Audit: audit}
	s.register = &encounter.RegisterController{Store: encStore, Ledger: led, Registry: registry, Audit: audit}
	return s, nil
}

// Close releases the session's file handles.
func (s *Session) Close() error {
	return s.audit.Close()
}

// Execute takes a raw command string from a chat client and coordinates
// parsing, routing, and error conversion. Guard failures of the taming
// flow come back as player-facing replies, never as raw errors.
func (s *Session) Execute(input, userID string) (*Reply, error) {
	cmd, err := s.parser.ParseString("", strings.TrimSpace(input))
	if err != nil {
		return nil, parser.MapError(input, err)
	}

	switch {
	case cmd.Explore != nil:
		return s.convert(s.explore(cmd.Explore.VillageName(), cmd.Explore.Actor.Name, userID))
	case cmd.Maneuver != nil:
		m, _ := encounter.ParseManeuver(strings.ToLower(cmd.Maneuver.Action))
		return s.convert(s.maneuver(m, cmd.Maneuver.Actor.Name, userID))
	case cmd.Use != nil:
		return s.convert(s.useItem(cmd.Use.ItemName(), cmd.Use.Actor.Name, userID))
	case cmd.Tame != nil:
		return s.convert(s.tame(cmd.Tame.Actor.Name, userID))
	case cmd.Customize != nil:
		return s.convert(s.choose(cmd.Customize.Customize(), cmd.Customize.Actor.Name, userID))
	case cmd.Pick != nil:
		return s.convert(s.pick(cmd.Pick.OptionValue(), cmd.Pick.Random, cmd.Pick.Actor.Name, userID))
	case cmd.Register != nil:
		return s.convert(s.finalize(cmd.Register.MountName(), cmd.Register.Actor.Name, userID))
	case cmd.Stable != nil:
		return s.listStable(cmd.Stable.Actor.Name)
	case cmd.History != nil:
		return s.history()
	case cmd.Help != nil:
		return helpReply(), nil
	}
	return nil, fmt.Errorf("unsupported command pattern")
}

// explore rolls for a discovery near the named village. Only a natural
// 20 produces a concrete encounter.
func (s *Session) explore(villageName, characterName, userID string) (*encounter.Prompt, error) {
	c, err := s.ledger.Character(characterName)
	if err != nil {
		return nil, err
	}
	if c.UserID != userID {
		return nil, encounter.ErrUnauthorized
	}

	v, ok := s.policy.Village(villageName)
	if !ok {
		return nil, fmt.Errorf("%w: no village called %s", encounter.ErrInvalidSelection, villageName)
	}
	if len(v.Spawns) == 0 {
		return nil, fmt.Errorf("%w: nothing roams near %s", encounter.ErrUnsupportedConfiguration, v.Name)
	}

	if e, err := s.store.FindByParticipant(characterName); err == nil {
		return nil, fmt.Errorf("%w: %s is already in the middle of taming a %s", encounter.ErrInvalidSelection, characterName, e.MountType)
	}

	roll, found := encounter.DiscoveryRoll()
	if !found {
		return &encounter.Prompt{
			Message: fmt.Sprintf("%s scouts the fields around %s (rolled %d)... nothing but wind and grass.", characterName, v.Name, roll),
		}, nil
	}

	spawn := v.Spawns[s.rng.Intn(len(v.Spawns))]
	sp, err := s.catalog.Species(spawn.Species)
	if err != nil {
		return nil, err
	}

	rarity := encounter.RarityRegular
	if s.rng.Intn(100) < spawn.RareChance {
		rarity = encounter.RarityRare
	}

	e := encounter.New(
		uuid.NewString(),
		v.Name,
		v.Environment,
		sp.Name,
		s.catalog.RollLevel(sp),
		s.catalog.RollStamina(sp),
		rarity,
		userID,
	)
	if err := e.AddParticipant(characterName, userID); err != nil {
		return nil, err
	}
	if err := s.store.Put(e); err != nil {
		return nil, err
	}

	s.audit.Record(&encounter.EncounterDiscoveredEvent{
		EncounterID: e.ID,
		Village:     v.Name,
		Species:     sp.Name,
		Rarity:      rarity,
		RollerID:    userID,
	})

	return &encounter.Prompt{
		State: e.State,
		Message: fmt.Sprintf("A natural 20! A wild %s %s (level %d) is grazing nearby. How do you approach?",
			strings.ToLower(string(rarity)), sp.Name, e.MountLevel),
		Options: maneuverOptions(e),
	}, nil
}

func (s *Session) maneuver(m encounter.Maneuver, characterName, userID string) (*encounter.Prompt, error) {
	e, err := s.store.FindByParticipant(characterName)
	if err != nil {
		return nil, err
	}
	return s.capture.Attempt(e.ID, m, characterName, userID)
}

func (s *Session) useItem(item, characterName, userID string) (*encounter.Prompt, error) {
	e, err := s.store.FindByParticipant(characterName)
	if err != nil {
		return nil, err
	}
	return s.capture.UseDistraction(e.ID, item, characterName, userID)
}

func (s *Session) tame(characterName, userID string) (*encounter.Prompt, error) {
	e, err := s.store.FindByParticipant(characterName)
	if err != nil {
		return nil, err
	}
	return s.taming.Attempt(e.ID, characterName, userID)
}

func (s *Session) choose(customize bool, characterName, userID string) (*encounter.Prompt, error) {
	e, err := s.store.FindByParticipant(characterName)
	if err != nil {
		return nil, err
	}
	return s.customize.Choose(e.ID, customize, characterName, userID)
}

func (s *Session) pick(value string, random bool, characterName, userID string) (*encounter.Prompt, error) {
	e, err := s.store.FindByParticipant(characterName)
	if err != nil {
		return nil, err
	}
	return s.customize.Pick(e.ID, value, random, characterName, userID)
}

func (s *Session) finalize(mountName, characterName, userID string) (*encounter.Prompt, error) {
	e, err := s.store.FindByParticipant(characterName)
	if err != nil {
		return nil, err
	}
	return s.register.Finalize(e.ID, mountName, characterName, userID)
}

func (s *Session) listStable(characterName string) (*Reply, error) {
	mounts, err := s.mounts.ByOwner(characterName)
	if err != nil {
		return nil, err
	}
	if len(mounts) == 0 {
		return &Reply{Messages: []string{fmt.Sprintf("%s's stable is empty.", characterName)}}, nil
	}

	lines := []string{fmt.Sprintf("%s's stable:", characterName)}
	for _, m := range mounts {
		lines = append(lines, fmt.Sprintf("- %s, a %s %s (level %d, stamina %d)", m.Name, strings.ToLower(m.Rarity), m.Species, m.Level, m.Stamina))
	}
	return &Reply{Messages: []string{strings.Join(lines, "\n")}}, nil
}

func (s *Session) history() (*Reply, error) {
	records, err := s.audit.Tail(10)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return &Reply{Messages: []string{"Nothing has happened yet."}}, nil
	}

	var lines []string
	for _, rec := range records {
		lines = append(lines, rec.Message)
	}
	return &Reply{Messages: []string{strings.Join(lines, "\n")}}, nil
}

// convert turns a controller result into a chat reply. The expected
// guard failures of the taming flow are player-facing outcomes, not
// errors; anything outside the taxonomy propagates.
func (s *Session) convert(p *encounter.Prompt, err error) (*Reply, error) {
	if err != nil {
		switch {
		case errors.Is(err, encounter.ErrResourceExhausted):
			return &Reply{Messages: []string{err.Error()}, Terminal: true}, nil
		case errors.Is(err, encounter.ErrInsufficientFunds),
			errors.Is(err, encounter.ErrGlideSpent),
			errors.Is(err, encounter.ErrInvalidSelection),
			errors.Is(err, encounter.ErrUnauthorized),
			errors.Is(err, encounter.ErrNotFound):
			return &Reply{Messages: []string{err.Error()}}, nil
		case errors.Is(err, encounter.ErrUnsupportedConfiguration):
			// Data defect, not player error: soften the message and
			// leave the details to the server log.
			log.Printf("species data defect: %v", err)
			return &Reply{Messages: []string{"Customization is unavailable for this creature."}}, nil
		}
		return nil, err
	}

	return &Reply{
		Messages: []string{p.Message},
		Options:  p.Options,
		Terminal: p.Terminal,
	}, nil
}

func maneuverOptions(e *encounter.Encounter) []encounter.Option {
	var opts []encounter.Option
	for _, m := range encounter.Maneuvers {
		if m == encounter.ManeuverGlide && e.GlideUsed {
			continue
		}
		opts = append(opts, encounter.Option{Label: string(m), Command: string(m)})
	}
	return opts
}

func helpReply() *Reply {
	return &Reply{Messages: []string{strings.TrimSpace(`
explore <village> by: <character> - scout for a wild mount
sneak|distract|corner|rush|glide by: <character> - capture maneuvers
use <item> by: <character> - throw a distraction item
tame by: <character> - attempt the taming check
customize|skip by: <character> - choose how traits are resolved
pick <option|random> by: <character> - resolve the current trait
register <name> by: <character> - pay the fee and claim your mount
stable by: <character> - list your registered mounts
history - recent events`)}}
}
