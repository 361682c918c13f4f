// Package catalog loads the static game data: enchantments, bosses, charges and elixirs.
package catalog

//go:generate mockgen -destination=mock/mock_reader.go -package=catalogmock github.com/KirkDiggler/rpg-raid/internal/catalog Reader

import (
	"sort"

	"github.com/KirkDiggler/rpg-raid/internal/entities/enchantment"
	"github.com/KirkDiggler/rpg-raid/internal/entities/raid"
	"github.com/KirkDiggler/rpg-raid/internal/errors"
)

// Reader is the read-only view of the catalog the engine depends on.
// Unknown IDs return errors.InvalidTarget.
type Reader interface {
	Enchantment(id enchantment.ID) (*enchantment.Enchantment, error)
	Boss(id string) (*raid.Boss, error)
	Charge(id string) (*raid.Charge, error)
	Elixir(id string) (*raid.Elixir, error)
}

// Catalog is an immutable, validated set of game data
type Catalog struct {
	enchantments map[enchantment.ID]*enchantment.Enchantment
	bosses       map[string]*raid.Boss
	charges      map[string]*raid.Charge
	elixirs      map[string]*raid.Elixir
}

// Enchantment returns the enchantment with the given ID
func (c *Catalog) Enchantment(id enchantment.ID) (*enchantment.Enchantment, error) {
	e, ok := c.enchantments[id]
	if !ok {
		return nil, errors.InvalidTarget("unknown enchantment %q", id)
	}
	return e, nil
}

// Boss returns the boss with the given ID
func (c *Catalog) Boss(id string) (*raid.Boss, error) {
	b, ok := c.bosses[id]
	if !ok {
		return nil, errors.InvalidTarget("unknown boss %q", id)
	}
	return b, nil
}

// Charge returns the charge with the given ID
func (c *Catalog) Charge(id string) (*raid.Charge, error) {
	ch, ok := c.charges[id]
	if !ok {
		return nil, errors.InvalidTarget("unknown charge %q", id)
	}
	return ch, nil
}

// Elixir returns the elixir with the given ID
func (c *Catalog) Elixir(id string) (*raid.Elixir, error) {
	e, ok := c.elixirs[id]
	if !ok {
		return nil, errors.InvalidTarget("unknown elixir %q", id)
	}
	return e, nil
}

// Enchantments lists every enchantment ordered by ID
func (c *Catalog) Enchantments() []*enchantment.Enchantment {
	out := make([]*enchantment.Enchantment, 0, len(c.enchantments))
	for _, e := range c.enchantments {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Bosses lists every boss ordered by ID
func (c *Catalog) Bosses() []*raid.Boss {
	out := make([]*raid.Boss, 0, len(c.bosses))
	for _, b := range c.bosses {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

var _ Reader = (*Catalog)(nil)
