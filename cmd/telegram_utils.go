package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/tessvale/stablehand/internal/game"
	"github.com/tessvale/stablehand/internal/telegram"
	"github.com/tessvale/stablehand/internal/world"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// maybeStartBot checks if telegram is configured and starts the background worker
func maybeStartBot(session *game.Session, manager *world.Manager, worldName string) {
	token := viper.GetString("telegram_token")
	if token == "" {
		return
	}

	configPath := filepath.Join(manager.WorldPath(worldName), "telegram.yaml")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return
	}

	f, err := os.Open(configPath)
	if err != nil {
		return
	}
	defer f.Close()

	var config TelegramWorldConfig
	if err := yaml.NewDecoder(f).Decode(&config); err != nil {
		return
	}

	if config.ChatID == "" {
		return
	}

	chatID, err := strconv.ParseInt(config.ChatID, 10, 64)
	if err != nil {
		return
	}

	userMap := make(map[int64]string)
	for idStr, characterName := range config.Users {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err == nil {
			userMap[id] = characterName
		}
	}

	bot := telegram.NewBot(token, chatID, userMap, &botAdapter{session})

	// Run in background
	go bot.Start()
	fmt.Printf("[Telegram Bot] Active for chat %d\n", chatID)
}

// botAdapter bridges game.Session to the telegram.Executor interface.
type botAdapter struct {
	session *game.Session
}

func (a *botAdapter) Execute(input, userID string) (*telegram.CommandResult, error) {
	reply, err := a.session.Execute(input, userID)
	if err != nil {
		return nil, err
	}

	result := &telegram.CommandResult{}
	for _, msg := range reply.Messages {
		if msg != "" {
			result.Messages = append(result.Messages, msg)
		}
	}
	for _, opt := range reply.Options {
		result.Options = append(result.Options, telegram.Option{
			Label:   opt.Label,
			Command: opt.Command,
		})
	}
	return result, nil
}
