package catalog

import (
	"embed"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-raid/internal/entities/enchantment"
	"github.com/KirkDiggler/rpg-raid/internal/entities/raid"
	"github.com/KirkDiggler/rpg-raid/internal/errors"
)

// Catalog file names, relative to the catalog root
const (
	EnchantmentsFile = "enchantments.yaml"
	BossesFile       = "bosses.yaml"
	ConsumablesFile  = "consumables.yaml"
)

//go:embed data/*.yaml
var embedded embed.FS

type enchantmentsDoc struct {
	Enchantments []*enchantment.Enchantment `yaml:"enchantments"`
}

type bossesDoc struct {
	Bosses []*raid.Boss `yaml:"bosses"`
}

type consumablesDoc struct {
	Charges []*raid.Charge `yaml:"charges"`
	Elixirs []*raid.Elixir `yaml:"elixirs"`
}

// LoadDefault loads the catalog shipped with the binary
func LoadDefault() (*Catalog, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, errors.Wrap(err, "failed to open embedded catalog")
	}
	return Load(sub)
}

// LoadDir loads a catalog from a directory on disk
func LoadDir(dir string) (*Catalog, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, errors.Wrapf(err, "catalog directory %s", dir)
	}
	return Load(os.DirFS(dir))
}

// Load reads and validates the three catalog files from fsys.
// A missing consumables file yields a catalog without charges or elixirs.
func Load(fsys fs.FS) (*Catalog, error) {
	var ench enchantmentsDoc
	if err := readYAML(fsys, EnchantmentsFile, &ench, true); err != nil {
		return nil, err
	}
	var bosses bossesDoc
	if err := readYAML(fsys, BossesFile, &bosses, true); err != nil {
		return nil, err
	}
	var cons consumablesDoc
	if err := readYAML(fsys, ConsumablesFile, &cons, false); err != nil {
		return nil, err
	}

	c := &Catalog{
		enchantments: make(map[enchantment.ID]*enchantment.Enchantment, len(ench.Enchantments)),
		bosses:       make(map[string]*raid.Boss, len(bosses.Bosses)),
		charges:      make(map[string]*raid.Charge, len(cons.Charges)),
		elixirs:      make(map[string]*raid.Elixir, len(cons.Elixirs)),
	}

	vb := errors.NewValidationBuilder()
	for i, e := range ench.Enchantments {
		if e == nil {
			vb.Fieldf("enchantments", "entry %d is empty", i)
			continue
		}
		validateEnchantment(i, e, vb)
		if _, dup := c.enchantments[e.ID]; dup {
			vb.Fieldf("enchantments", "duplicate id %q", e.ID)
		}
		c.enchantments[e.ID] = e
	}
	for i, b := range bosses.Bosses {
		if b == nil {
			vb.Fieldf("bosses", "entry %d is empty", i)
			continue
		}
		validateBoss(i, b, vb)
		if _, dup := c.bosses[b.ID]; dup {
			vb.Fieldf("bosses", "duplicate id %q", b.ID)
		}
		c.bosses[b.ID] = b
	}
	for i, ch := range cons.Charges {
		if ch == nil {
			vb.Fieldf("charges", "entry %d is empty", i)
			continue
		}
		validateCharge(i, ch, vb)
		if _, dup := c.charges[ch.ID]; dup {
			vb.Fieldf("charges", "duplicate id %q", ch.ID)
		}
		c.charges[ch.ID] = ch
	}
	for i, el := range cons.Elixirs {
		if el == nil {
			vb.Fieldf("elixirs", "entry %d is empty", i)
			continue
		}
		validateElixir(i, el, vb)
		if _, dup := c.elixirs[el.ID]; dup {
			vb.Fieldf("elixirs", "duplicate id %q", el.ID)
		}
		c.elixirs[el.ID] = el
	}
	if err := vb.Build(); err != nil {
		return nil, errors.Wrap(err, "invalid catalog")
	}

	return c, nil
}

func readYAML(fsys fs.FS, name string, out interface{}, required bool) error {
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return errors.Wrapf(err, "failed to read %s", name)
	}
	if err := yaml.Unmarshal(b, out); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse "+name)
	}
	return nil
}
