package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tessvale/stablehand/internal/encounter"
)

// Item is one inventory stack on a character.
type Item struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Character is the ledger's view of a playable character: the consumable
// resources gating the taming flow plus the carried inventory.
type Character struct {
	Name           string `json:"name"`
	UserID         string `json:"user_id"`
	Job            string `json:"job"`
	CurrentStamina int    `json:"current_stamina"`
	MaxStamina     int    `json:"max_stamina"`
	CurrentHearts  int    `json:"current_hearts"`
	MaxHearts      int    `json:"max_hearts"`
	HasMount       bool   `json:"has_mount"`
	Inventory      []Item `json:"inventory"`
}

// Wallet is a user's spendable token balance.
type Wallet struct {
	UserID string `json:"user_id"`
	Tokens int    `json:"tokens"`
}

// FileLedger owns character and wallet records as JSON documents. Every
// operation re-reads the record before mutating it, since other
// interactions (or out-of-band tooling) may have changed it in between.
// Debits are atomic at the file level: check and decrement happen against
// the freshly loaded record, and the write goes through a rename.
type FileLedger struct {
	dir string
}

// NewFileLedger creates the characters and wallets directories if needed.
func NewFileLedger(dir string) (*FileLedger, error) {
	for _, sub := range []string{"characters", "wallets"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0755); err != nil {
			return nil, fmt.Errorf("failed to create ledger dir: %w", err)
		}
	}
	return &FileLedger{dir: dir}, nil
}

func slug(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

func (l *FileLedger) characterPath(name string) string {
	return filepath.Join(l.dir, "characters", slug(name)+".json")
}

func (l *FileLedger) walletPath(userID string) string {
	return filepath.Join(l.dir, "wallets", userID+".json")
}

// Character loads the named character record.
func (l *FileLedger) Character(name string) (*Character, error) {
	data, err := os.ReadFile(l.characterPath(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("character %s: %w", name, encounter.ErrNotFound)
		}
		return nil, err
	}

	var c Character
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("corrupt character record %s: %w", name, err)
	}
	return &c, nil
}

// SaveCharacter persists a character record atomically.
func (l *FileLedger) SaveCharacter(c *Character) error {
	return writeJSON(l.characterPath(c.Name), c)
}

// Wallet loads a user's wallet record.
func (l *FileLedger) Wallet(userID string) (*Wallet, error) {
	data, err := os.ReadFile(l.walletPath(userID))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("wallet for user %s: %w", userID, encounter.ErrNotFound)
		}
		return nil, err
	}

	var w Wallet
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("corrupt wallet record %s: %w", userID, err)
	}
	return &w, nil
}

// SaveWallet persists a wallet record atomically.
func (l *FileLedger) SaveWallet(w *Wallet) error {
	return writeJSON(l.walletPath(w.UserID), w)
}

// DebitStamina charges n stamina from the character. OK false means the
// balance could not cover the debit; nothing was changed and stamina is
// never driven negative.
func (l *FileLedger) DebitStamina(characterName string, n int) (encounter.LedgerResult, error) {
	c, err := l.Character(characterName)
	if err != nil {
		return encounter.LedgerResult{}, err
	}
	if c.CurrentStamina < n {
		return encounter.LedgerResult{OK: false, NewBalance: c.CurrentStamina}, nil
	}

	c.CurrentStamina -= n
	if err := l.SaveCharacter(c); err != nil {
		return encounter.LedgerResult{}, err
	}
	return encounter.LedgerResult{OK: true, NewBalance: c.CurrentStamina}, nil
}

// DebitTokens charges n tokens from the user's wallet. OK false means the
// balance was insufficient and nothing was changed.
func (l *FileLedger) DebitTokens(userID string, n int) (encounter.LedgerResult, error) {
	w, err := l.Wallet(userID)
	if err != nil {
		return encounter.LedgerResult{}, err
	}
	if w.Tokens < n {
		return encounter.LedgerResult{OK: false, NewBalance: w.Tokens}, nil
	}

	w.Tokens -= n
	if err := l.SaveWallet(w); err != nil {
		return encounter.LedgerResult{}, err
	}
	return encounter.LedgerResult{OK: true, NewBalance: w.Tokens}, nil
}

// CreditStamina restores stamina up to the character's maximum.
func (l *FileLedger) CreditStamina(characterName string, n int) error {
	c, err := l.Character(characterName)
	if err != nil {
		return err
	}
	c.CurrentStamina += n
	if c.CurrentStamina > c.MaxStamina {
		c.CurrentStamina = c.MaxStamina
	}
	return l.SaveCharacter(c)
}

// CreditHearts restores hearts up to the character's maximum.
func (l *FileLedger) CreditHearts(characterName string, n int) error {
	c, err := l.Character(characterName)
	if err != nil {
		return err
	}
	c.CurrentHearts += n
	if c.CurrentHearts > c.MaxHearts {
		c.CurrentHearts = c.MaxHearts
	}
	return l.SaveCharacter(c)
}

// CreditTokens adds tokens to a user's wallet.
func (l *FileLedger) CreditTokens(userID string, n int) error {
	w, err := l.Wallet(userID)
	if err != nil {
		return err
	}
	w.Tokens += n
	return l.SaveWallet(w)
}

// Stamina re-reads the character's current stamina.
func (l *FileLedger) Stamina(characterName string) (int, error) {
	c, err := l.Character(characterName)
	if err != nil {
		return 0, err
	}
	return c.CurrentStamina, nil
}

// Tokens re-reads the user's token balance.
func (l *FileLedger) Tokens(userID string) (int, error) {
	w, err := l.Wallet(userID)
	if err != nil {
		return 0, err
	}
	return w.Tokens, nil
}

// Items returns the character's inventory stacks.
func (l *FileLedger) Items(characterName string) ([]Item, error) {
	c, err := l.Character(characterName)
	if err != nil {
		return nil, err
	}
	return c.Inventory, nil
}

// ConsumeItem removes exactly one unit of the named item, dropping the
// stack when it hits zero.
func (l *FileLedger) ConsumeItem(characterName, item string) error {
	c, err := l.Character(characterName)
	if err != nil {
		return err
	}

	for i := range c.Inventory {
		if c.Inventory[i].Name != item || c.Inventory[i].Quantity <= 0 {
			continue
		}
		c.Inventory[i].Quantity--
		if c.Inventory[i].Quantity == 0 {
			c.Inventory = append(c.Inventory[:i], c.Inventory[i+1:]...)
		}
		return l.SaveCharacter(c)
	}
	return fmt.Errorf("%s carries no %s: %w", characterName, item, encounter.ErrInvalidSelection)
}

// MarkMountOwner flags the character as possessing a registered mount.
func (l *FileLedger) MarkMountOwner(characterName string) error {
	c, err := l.Character(characterName)
	if err != nil {
		return err
	}
	c.HasMount = true
	return l.SaveCharacter(c)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
