package catalog

import (
	"sync/atomic"

	"github.com/KirkDiggler/rpg-raid/internal/entities/enchantment"
	"github.com/KirkDiggler/rpg-raid/internal/entities/raid"
)

// Store serves lookups from the current catalog and lets a watcher swap in a
// reloaded one without blocking readers.
type Store struct {
	current atomic.Pointer[Catalog]
}

// NewStore creates a store serving c
func NewStore(c *Catalog) *Store {
	s := &Store{}
	s.current.Store(c)
	return s
}

// Current returns the catalog being served
func (s *Store) Current() *Catalog {
	return s.current.Load()
}

// Replace swaps the served catalog
func (s *Store) Replace(c *Catalog) {
	if c != nil {
		s.current.Store(c)
	}
}

// Enchantment implements Reader
func (s *Store) Enchantment(id enchantment.ID) (*enchantment.Enchantment, error) {
	return s.Current().Enchantment(id)
}

// Boss implements Reader
func (s *Store) Boss(id string) (*raid.Boss, error) {
	return s.Current().Boss(id)
}

// Charge implements Reader
func (s *Store) Charge(id string) (*raid.Charge, error) {
	return s.Current().Charge(id)
}

// Elixir implements Reader
func (s *Store) Elixir(id string) (*raid.Elixir, error) {
	return s.Current().Elixir(id)
}

var _ Reader = (*Store)(nil)
