package telegram

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Option is one follow-up action offered to the player, rendered as an
// inline keyboard button.
type Option struct {
	Label   string
	Command string
}

// CommandResult holds the output of a command execution.
type CommandResult struct {
	Messages []string
	Options  []Option
}

// Executor defines the interface for running game commands.
type Executor interface {
	Execute(input, userID string) (*CommandResult, error)
}

// Bot handles the integration between Telegram and a stablehand game
// session.
type Bot struct {
	client       *Client
	executor     Executor
	chatID       int64
	userMap      map[int64]string // telegram_user_id -> character name
	lastUpdateID int
}

// NewBot initializes a new follower bot
func NewBot(token string, chatID int64, userMap map[int64]string, exec Executor) *Bot {
	return &Bot{
		client:       NewClient(token),
		executor:     exec,
		chatID:       chatID,
		userMap:      userMap,
		lastUpdateID: viper.GetInt("tg_last_update_id"),
	}
}

// Start launches the long-polling loop
func (b *Bot) Start() {
	log.Printf("Telegram bot started for chat %d", b.chatID)
	for {
		updates, err := b.client.GetUpdates(b.lastUpdateID+1, 25)
		if err != nil {
			log.Printf("Error fetching updates: %v", err)
			time.Sleep(5 * time.Second)
			continue
		}

		for _, update := range updates {
			if update.UpdateID > b.lastUpdateID {
				b.lastUpdateID = update.UpdateID
				// Persist last_update_id
				viper.Set("tg_last_update_id", b.lastUpdateID)
				_ = viper.WriteConfig() // Ignore error if config file doesn't exist yet
			}

			if update.Message != nil {
				b.handleMessage(update.Message)
			}
			if update.CallbackQuery != nil {
				b.handleCallback(update.CallbackQuery)
			}
		}
	}
}

func (b *Bot) handleMessage(msg *Message) {
	// 1. Verify Chat ID
	if msg.Chat.ID != b.chatID {
		return
	}

	// 2. Ignore non-commands
	if !strings.HasPrefix(msg.Text, "/") {
		return
	}

	rawText := strings.TrimPrefix(msg.Text, "/")
	b.run(rawText, msg.From)
}

func (b *Bot) handleCallback(cb *CallbackQuery) {
	if cb.Message == nil || cb.Message.Chat.ID != b.chatID {
		return
	}
	// Acknowledge first so the client drops its spinner even if the
	// command itself fails.
	if err := b.client.AnswerCallbackQuery(cb.ID); err != nil {
		log.Printf("Error answering callback: %v", err)
	}
	b.run(cb.Data, cb.From)
}

// run translates the raw command for the acting user and dispatches it.
func (b *Bot) run(rawText string, from User) {
	parts := strings.Fields(rawText)
	if len(parts) == 0 {
		return
	}

	actor, ok := b.userMap[from.ID]
	if !ok {
		b.client.SendMessage(b.chatID, fmt.Sprintf("User %s (%d) is not registered in this world.", from.FirstName, from.ID))
		return
	}

	// Append the actor clause unless the command already carries one or
	// doesn't take one at all.
	translatedCmd := rawText
	head := strings.ToLower(parts[0])
	if head != "history" && head != "help" && !strings.Contains(rawText, "by:") {
		translatedCmd = rawText + " by: " + actor
	}

	result, err := b.executor.Execute(translatedCmd, fmt.Sprintf("%d", from.ID))
	if err != nil {
		b.client.SendMessage(b.chatID, fmt.Sprintf("Error: %v", err))
		return
	}

	rows := buttonRows(result.Options)
	for i, msg := range result.Messages {
		if msg == "" {
			continue
		}
		// Attach the keyboard to the last message only.
		if i == len(result.Messages)-1 && len(rows) > 0 {
			b.client.SendMessageWithButtons(b.chatID, fmt.Sprintf("*%s*", msg), rows)
			continue
		}
		b.client.SendMessage(b.chatID, fmt.Sprintf("*%s*", msg))
	}
}

// buttonRows lays the options out three to a row.
func buttonRows(options []Option) [][]InlineButton {
	var rows [][]InlineButton
	var row []InlineButton
	for _, opt := range options {
		row = append(row, InlineButton{Text: opt.Label, CallbackData: opt.Command})
		if len(row) == 3 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return rows
}
