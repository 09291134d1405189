package engine

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusPickedUp Status = "picked_up"
)

// AllBuildings is the sentinel that disables the building filter.
const AllBuildings = "all"

type Package struct {
	ID         string     `json:"id"`
	Building   string     `json:"building"`
	Room       string     `json:"room"`
	Tracking   string     `json:"tracking"`
	Carrier    string     `json:"carrier"`
	Type       string     `json:"type"`
	Sender     string     `json:"sender"`
	Image      string     `json:"image,omitempty"`
	Status     Status     `json:"status"`
	Receiver   string     `json:"receiver"`
	Signature  string     `json:"signature,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	PickedUpAt *time.Time `json:"picked_up_at"`
}

// Fields is the editable field set of a package. Create and edit both write
// the full set; omitted values land as their zero value, never as leftovers
// from an earlier edit session.
type Fields struct {
	Building string `json:"building"`
	Room     string `json:"room"`
	Tracking string `json:"tracking"`
	Carrier  string `json:"carrier"`
	Type     string `json:"type"`
	Sender   string `json:"sender"`
	Image    string `json:"image"`
	Status   Status `json:"status,omitempty"`
}

type Building struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type Config struct {
	Carriers  []string   `json:"carriers"`
	Types     []string   `json:"types"`
	Buildings []Building `json:"buildings"`
}

// Group is one (building, room) bucket of pending packages.
type Group struct {
	Building string    `json:"building"`
	Room     string    `json:"room"`
	Packages []Package `json:"packages"`
}

// Palette is the fixed set of building colors.
var Palette = []string{"Red", "Orange", "Amber", "Green", "Blue", "Indigo", "Purple", "Pink", "Slate"}

// DefaultConfig is seeded into the store on first access.
func DefaultConfig() Config {
	return Config{
		Carriers:  []string{"Kerry", "Flash", "Thai Post", "J&T", "Lazada", "Shopee", "Other"},
		Types:     []string{"Box", "Envelope", "Bag", "Food/Drink", "Oversized"},
		Buildings: []Building{},
	}
}

func ValidColor(color string) bool {
	for _, c := range Palette {
		if c == color {
			return true
		}
	}
	return false
}
