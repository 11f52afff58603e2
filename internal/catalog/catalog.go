package catalog

import "strings"

// Exercise is one entry of the exercise catalog. Title encodes a quantity and a
// unit ("20 squats", "500m run", "8 reps dumbbell").
type Exercise struct {
	ID      string `mapstructure:"id" json:"id"`
	Title   string `mapstructure:"title" json:"title"`
	Icon    string `mapstructure:"icon" json:"icon,omitempty"`
	HasNote bool   `mapstructure:"has_note" json:"hasNote,omitempty"`
}

// Defaults is the built-in catalog.
var Defaults = []Exercise{
	{ID: "pushup", Title: "10 pushups", Icon: "pushup.png"},
	{ID: "squats", Title: "20 squats", Icon: "squats.png"},
	{ID: "pullup", Title: "3 pull ups", Icon: "pullup.png"},
	{ID: "stretch", Title: "2 min stretch", Icon: "stretch.png"},
	{ID: "rows", Title: "20 rows", Icon: "rows.png"},
	{ID: "run", Title: "500m run", Icon: "run.png"},
	{ID: "plank", Title: "1 min plank", Icon: "plank.png"},
	{ID: "bicycles", Title: "20 bicycles", Icon: "bicycles.png"},
	{ID: "dumbbell", Title: "8 reps dumbbell", Icon: "dumbbell.png", HasNote: true},
	{ID: "barbell", Title: "5 reps barbell", Icon: "barbell.png", HasNote: true},
}

// Catalog is an ordered, read-only id lookup.
type Catalog struct {
	list []Exercise
	byID map[string]int
}

// New builds a catalog from list. Entries with an empty id or title are skipped,
// and a repeated id keeps its first definition. An empty result falls back to
// Defaults.
func New(list []Exercise) *Catalog {
	c := &Catalog{byID: make(map[string]int, len(list))}
	for _, ex := range list {
		ex.ID = strings.TrimSpace(ex.ID)
		ex.Title = strings.TrimSpace(ex.Title)
		if ex.ID == "" || ex.Title == "" {
			continue
		}
		if _, dup := c.byID[ex.ID]; dup {
			continue
		}
		c.byID[ex.ID] = len(c.list)
		c.list = append(c.list, ex)
	}
	if len(c.list) == 0 {
		return New(Defaults)
	}
	return c
}

// Default returns a catalog of the built-in exercises.
func Default() *Catalog { return New(Defaults) }

// Lookup returns the exercise with the given id.
func (c *Catalog) Lookup(id string) (Exercise, bool) {
	i, ok := c.byID[strings.TrimSpace(id)]
	if !ok {
		return Exercise{}, false
	}
	return c.list[i], true
}

// All returns the exercises in catalog order.
func (c *Catalog) All() []Exercise {
	out := make([]Exercise, len(c.list))
	copy(out, c.list)
	return out
}

// Len reports the number of exercises.
func (c *Catalog) Len() int { return len(c.list) }
