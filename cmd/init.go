package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tessvale/stablehand/internal/species"
	"github.com/tessvale/stablehand/internal/world"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// starterSpecies is the playable seed catalog written by init.
var starterSpecies = []species.Species{
	{
		Name:    "Horse",
		Levels:  species.Range{Min: 1, Max: 10},
		Stamina: species.Range{Min: 1, Max: 4},
		Traits: []species.Trait{
			{Key: "coat", Options: []string{"chestnut", "dappled", "black", "white"}, Price: 20},
			{Key: "mane", Options: []string{"braided", "flowing", "cropped"}, Price: 10},
			{Key: "temperament", Options: []string{"gentle", "spirited"}, Price: 15, RareOnly: true},
		},
		DistractionItems: []species.DistractionItem{
			{Name: "apple", Bonus: 2},
			{Name: "sugar cube", Bonus: 3},
		},
	},
	{
		Name:    "Ostrich",
		Levels:  species.Range{Min: 1, Max: 6},
		Stamina: species.Range{Min: 2, Max: 5},
		Traits: []species.Trait{
			{Key: "plumage", Options: []string{"dusty", "ashen", "ember"}, Price: 15},
			{Key: "crest", Options: []string{"tall", "short"}, Price: 10, RareOnly: true},
		},
		DistractionItems: []species.DistractionItem{
			{Name: "grain pouch", Bonus: 2},
		},
	},
}

// starterVillages pairs each village with spawn tables and the
// environment rules that tilt maneuver odds.
var starterVillages = []world.Village{
	{
		Name:        "Meadowbrook",
		Environment: "plains",
		Spawns: []world.SpawnEntry{
			{Species: "Horse", RareChance: 10},
		},
		ManeuverRules: []world.ManeuverRule{
			{When: `maneuver == "sneak" && environment == "plains"`, Bonus: -2},
			{When: `maneuver == "rush" && environment == "plains"`, Bonus: 2},
		},
	},
	{
		Name:        "Duneside",
		Environment: "desert",
		Spawns: []world.SpawnEntry{
			{Species: "Ostrich", RareChance: 15},
			{Species: "Horse", RareChance: 5},
		},
		ManeuverRules: []world.ManeuverRule{
			{When: `maneuver == "corner" && environment == "desert"`, Bonus: 1},
			{When: `maneuver == "glide" && species == "Ostrich"`, Bonus: 2},
		},
	},
}

var initCmd = &cobra.Command{
	Use:   "init [world_name]",
	Short: "Initialize a world with starter species and village data",
	Long: `Bootstraps a playable world: creates the directory layout and writes
a starter catalog of species and villages so a game session can run
immediately. Add characters with 'world character'.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		worldName := requireWorldArg(args)
		force, _ := cmd.Flags().GetBool("force")

		manager := world.NewManager(worldsDir())
		if err := manager.Create(worldName); err != nil {
			fmt.Printf("Error creating world: %v\n", err)
			os.Exit(1)
		}

		dataDir := filepath.Join(manager.WorldPath(worldName), "data")

		for _, sp := range starterSpecies {
			path := filepath.Join(dataDir, "species", slugify(sp.Name)+".yaml")
			if err := writeYAML(path, sp, force); err != nil {
				fmt.Printf("Error writing species %s: %v\n", sp.Name, err)
				os.Exit(1)
			}
		}
		for _, v := range starterVillages {
			path := filepath.Join(dataDir, "villages", slugify(v.Name)+".yaml")
			if err := writeYAML(path, v, force); err != nil {
				fmt.Printf("Error writing village %s: %v\n", v.Name, err)
				os.Exit(1)
			}
		}

		fmt.Printf("World %s initialized at %s\n", worldName, manager.WorldPath(worldName))
		fmt.Printf("Starter data: %d species, %d villages.\n", len(starterSpecies), len(starterVillages))
		fmt.Println("Next: add a character with 'stablehand world character' and start playing with 'stablehand repl'.")
	},
}

func slugify(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case r == ' ':
			out = append(out, '-')
		default:
			out = append(out, r)
		}
	}
	return string(out)
}

// writeYAML refuses to clobber hand-edited data unless forced.
func writeYAML(path string, v any, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			fmt.Printf("Skipping existing file %s (use --force to overwrite)\n", path)
			return nil
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	defer enc.Close()
	return enc.Encode(v)
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "Overwrite existing starter data files")
}
