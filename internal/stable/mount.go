package stable

// Mount is a registered, tamed creature: a snapshot of the encounter's
// resolved fields at the moment of registration.
type Mount struct {
	ID      string            `json:"id"`
	Name    string            `json:"name"`
	Species string            `json:"species"`
	Level   int               `json:"level"`
	Stamina int               `json:"stamina"`
	Rarity  string            `json:"rarity"`
	Owner   string            `json:"owner"`
	OwnerID string            `json:"owner_id"`
	Region  string            `json:"region"`
	Traits  map[string]string `json:"traits"`
}
