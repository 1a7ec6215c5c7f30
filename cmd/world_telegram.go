package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tessvale/stablehand/internal/ledger"
	"github.com/tessvale/stablehand/internal/world"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	tgChatID    string
	tgUserPairs []string
)

// TelegramWorldConfig maps a Telegram group chat onto a world: which
// chat the bot listens to and which character each Telegram user plays.
type TelegramWorldConfig struct {
	ChatID string            `yaml:"chat_id"`
	Users  map[string]string `yaml:"users"` // user_id -> character name
}

var telegramCmd = &cobra.Command{
	Use:   "telegram [world_name]",
	Short: "Configure Telegram settings for a world",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		worldName := requireWorldArg(args)

		manager := world.NewManager(worldsDir())
		if err := manager.Load(worldName); err != nil {
			fmt.Printf("Error: %v. Run 'world create' first.\n", err)
			os.Exit(1)
		}

		configPath := filepath.Join(manager.WorldPath(worldName), "telegram.yaml")
		config := TelegramWorldConfig{
			Users: make(map[string]string),
		}

		// Load existing config if it exists
		if _, err := os.Stat(configPath); err == nil {
			f, _ := os.Open(configPath)
			yaml.NewDecoder(f).Decode(&config)
			f.Close()
		}

		if tgChatID == "" {
			fmt.Println("---")
			fmt.Println("How to get your Telegram Chat ID:")
			fmt.Println("1. Add your bot to the group.")
			fmt.Println("2. Send a message in the group (e.g., /start).")
			fmt.Println("3. Access https://api.telegram.org/bot<TOKEN>/getUpdates in your browser.")
			fmt.Println("4. Look for the 'chat' object and its 'id' field (it usually starts with a minus sign).")
			fmt.Println("---")
			fmt.Print("chat_id: ")
			scanner := bufio.NewScanner(os.Stdin)
			if scanner.Scan() {
				tgChatID = strings.TrimSpace(scanner.Text())
			}
		}

		if tgChatID != "" {
			config.ChatID = tgChatID
		}
		if len(tgUserPairs) > 0 {
			led, err := ledger.NewFileLedger(manager.LedgerDir(worldName))
			if err != nil {
				fmt.Printf("Error opening ledger: %v\n", err)
				os.Exit(1)
			}

			for _, pair := range tgUserPairs {
				parts := strings.Split(pair, ":")
				if len(parts) != 2 {
					fmt.Printf("Warning: invalid user pair format '%s'. Expected 'character:user_id'\n", pair)
					continue
				}
				characterName := parts[0]
				userID := parts[1]

				if _, err := led.Character(characterName); err != nil {
					fmt.Printf("Warning: character '%s' not found in the ledger. The user may be unable to play it.\n", characterName)
				}

				config.Users[userID] = characterName
			}
		}

		// Save config
		f, err := os.Create(configPath)
		if err != nil {
			fmt.Printf("Error creating config file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()

		encoder := yaml.NewEncoder(f)
		if err := encoder.Encode(config); err != nil {
			fmt.Printf("Error encoding config: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Telegram world configuration saved to %s\n", configPath)
	},
}

func init() {
	worldCmd.AddCommand(telegramCmd)
	telegramCmd.Flags().StringVarP(&tgChatID, "chat_id", "c", "", "Telegram group chat ID")
	telegramCmd.Flags().StringSliceVarP(&tgUserPairs, "user", "u", []string{}, "Map a Telegram user_id to a character (format: character:user_id)")
}
