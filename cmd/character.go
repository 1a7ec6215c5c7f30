package cmd

import (
	"fmt"
	"os"

	"github.com/tessvale/stablehand/internal/ledger"
	"github.com/tessvale/stablehand/internal/world"

	"github.com/spf13/cobra"
)

var (
	charUserID  string
	charJob     string
	charStamina int
	charHearts  int
	charTokens  int
)

// characterCmd represents the world character command
var characterCmd = &cobra.Command{
	Use:   "character [world_name] [character_name]",
	Short: "Add a playable character and wallet to a world",
	Long: `Writes a character record into the world's ledger and seeds the
owning user's wallet. Existing records with the same name or user id
are overwritten.`,
	Args: cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		worldName := requireWorldArg(args)
		if len(args) < 2 || args[1] == "" {
			fmt.Println("Error: must specify [character_name]")
			os.Exit(1)
		}
		characterName := args[1]

		if charUserID == "" {
			fmt.Println("Error: --user is required")
			os.Exit(1)
		}

		manager := world.NewManager(worldsDir())
		if err := manager.Load(worldName); err != nil {
			fmt.Printf("Error: %v. Run 'world create' first.\n", err)
			os.Exit(1)
		}

		led, err := ledger.NewFileLedger(manager.LedgerDir(worldName))
		if err != nil {
			fmt.Printf("Error opening ledger: %v\n", err)
			os.Exit(1)
		}

		c := &ledger.Character{
			Name:           characterName,
			UserID:         charUserID,
			Job:            charJob,
			CurrentStamina: charStamina,
			MaxStamina:     charStamina,
			CurrentHearts:  charHearts,
			MaxHearts:      charHearts,
		}
		if err := led.SaveCharacter(c); err != nil {
			fmt.Printf("Error saving character: %v\n", err)
			os.Exit(1)
		}

		w := &ledger.Wallet{UserID: charUserID, Tokens: charTokens}
		if err := led.SaveWallet(w); err != nil {
			fmt.Printf("Error saving wallet: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Character %s created for user %s (%d stamina, %d tokens).\n",
			characterName, charUserID, charStamina, charTokens)
	},
}

func init() {
	worldCmd.AddCommand(characterCmd)
	characterCmd.Flags().StringVarP(&charUserID, "user", "u", "", "Owning user id (Telegram user id for bot play)")
	characterCmd.Flags().StringVarP(&charJob, "job", "j", "", "Character job or class, informational only")
	characterCmd.Flags().IntVar(&charStamina, "stamina", 10, "Starting and maximum stamina")
	characterCmd.Flags().IntVar(&charHearts, "hearts", 10, "Starting and maximum hearts")
	characterCmd.Flags().IntVar(&charTokens, "tokens", 100, "Starting wallet tokens")
}
