// Package battle simulates one battle against a boss shield or final HP pool.
//
// A Simulator is driven by discrete actions and by Advance, which steps the
// battle clock in whole seconds. It is not safe for concurrent use; callers
// serialize access.
package battle

import (
	"math"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-raid/internal/catalog"
	"github.com/KirkDiggler/rpg-raid/internal/engine/proc"
	"github.com/KirkDiggler/rpg-raid/internal/entities/combat"
	"github.com/KirkDiggler/rpg-raid/internal/entities/enchantment"
	"github.com/KirkDiggler/rpg-raid/internal/entities/raid"
	"github.com/KirkDiggler/rpg-raid/internal/errors"
	"github.com/KirkDiggler/rpg-raid/internal/pkg/roller"
)

//go:generate mockgen -destination=mock/mock_resolver.go -package=battlemock github.com/KirkDiggler/rpg-raid/internal/engine/battle ProcResolver

// ProcResolver resolves enchantment procs for the simulator
type ProcResolver interface {
	ResolveOnHit(attacker, defender *combat.Entity, baseDamage int, b *enchantment.Binding) (*proc.Outcome, error)
	ResolveOnHitTaken(defender, attacker *combat.Entity, incoming int, b *enchantment.Binding) (*proc.Outcome, error)
}

// Config seeds a battle
type Config struct {
	Catalog  catalog.Reader
	Resolver ProcResolver
	Roller   dice.Roller

	Boss   *raid.Boss
	Player *combat.Entity
	// Loadout is the player's enchantment bindings
	Loadout Loadout

	// Pool selects the shield or the final battle pool. PoolMax is its full
	// capacity and PoolRemaining what is left of it when the battle starts.
	Pool          Pool
	PoolMax       int
	PoolRemaining int

	// MaxRounds defaults to DefaultMaxRounds
	MaxRounds int
	// BossAttackInterval is seconds between passive boss attacks, default 3
	BossAttackInterval int
}

// Validate ensures the battle can be seeded
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	if c.Resolver == nil {
		vb.RequiredField("Resolver")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.Boss == nil {
		vb.RequiredField("Boss")
	}
	if c.Player == nil {
		vb.RequiredField("Player")
	} else if !c.Player.IsAlive() {
		vb.Field("Player", "must be alive")
	}
	switch c.Pool {
	case PoolShield, PoolFinal:
	default:
		vb.Fieldf("Pool", "unknown pool %q", c.Pool)
	}
	errors.ValidatePositive("PoolMax", c.PoolMax, vb)
	if c.PoolRemaining <= 0 || c.PoolRemaining > c.PoolMax {
		vb.Field("PoolRemaining", "must be in (0, PoolMax]")
	}
	if c.MaxRounds < 0 {
		vb.Field("MaxRounds", "must not be negative")
	}
	if c.BossAttackInterval < 0 {
		vb.Field("BossAttackInterval", "must not be negative")
	}

	return vb.Build()
}

// Simulator owns the mutable state of one battle
type Simulator struct {
	catalog  catalog.Reader
	resolver ProcResolver
	roller   dice.Roller

	bossID         string
	loadout        Loadout
	setBonus       enchantment.ID
	attackInterval int

	pool       Pool
	player     *combat.Entity
	boss       *combat.Entity
	elixirs    []raid.ActiveElixir
	round      int
	maxRounds  int
	budget     int
	remaining  int
	elapsed    int
	dealt      int
	hits       int
	magic      int
	complete   bool
	victory    bool
	reason     EndReason
	lastAction string
	lastDamage int
	lastProcs  []enchantment.ID
}

// New creates a simulator. The time budget is parsed from the boss time limit.
func New(cfg *Config) (*Simulator, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid battle config")
	}

	budget, err := cfg.Boss.RoundBudget()
	if err != nil {
		return nil, errors.Wrapf(err, "boss %s", cfg.Boss.ID)
	}

	maxRounds := cfg.MaxRounds
	if maxRounds == 0 {
		maxRounds = DefaultMaxRounds
	}
	interval := cfg.BossAttackInterval
	if interval == 0 {
		interval = DefaultBossAttackInterval
	}

	boss := combat.NewEntity(cfg.Boss.ID, cfg.PoolMax, combat.Stats{Damage: cfg.Boss.Damage})
	boss.CurrentHealth = cfg.PoolRemaining

	s := &Simulator{
		catalog:        cfg.Catalog,
		resolver:       cfg.Resolver,
		roller:         cfg.Roller,
		bossID:         cfg.Boss.ID,
		loadout:        cfg.Loadout,
		attackInterval: interval,
		pool:           cfg.Pool,
		player:         cfg.Player,
		boss:           boss,
		round:          1,
		maxRounds:      maxRounds,
		budget:         int(budget.Seconds()),
		remaining:      int(budget.Seconds()),
		lastAction:     ActionStart,
	}
	if id, ok := proc.SetBonus(cfg.Loadout.Bindings()); ok {
		s.setBonus = id
	}
	return s, nil
}

// Snapshot returns a copy of the current state
func (s *Simulator) Snapshot() *State {
	return &State{
		BossID:        s.bossID,
		Pool:          s.pool,
		Shield:        s.boss.CurrentHealth,
		MaxShield:     s.boss.MaxHealth,
		Round:         s.round,
		MaxRounds:     s.maxRounds,
		TimeRemaining: s.remaining,
		TimeBudget:    s.budget,
		Player:        s.player.Clone(),
		Boss:          s.boss.Clone(),
		ActiveElixirs: cloneElixirs(s.elixirs),
		DamageDealt:   s.dealt,
		Hits:          s.hits,
		MagicCharge:   s.magic,
		Complete:      s.complete,
		Victory:       s.victory,
		EndReason:     s.reason,
		SetBonus:      s.setBonus,
		LastAction:    s.lastAction,
		LastDamage:    s.lastDamage,
		LastProcs:     append([]enchantment.ID(nil), s.lastProcs...),
	}
}

// Complete reports whether the battle has ended
func (s *Simulator) Complete() bool {
	return s.complete
}

// Attack performs a basic attack. Every bound slot gets its on-hit chance,
// weapon first.
func (s *Simulator) Attack() (*State, error) {
	if err := s.begin(ActionAttack); err != nil {
		return nil, err
	}

	base, err := roller.Between(s.roller, attackMin, attackMax)
	if err != nil {
		return nil, err
	}
	base += s.player.Stats.Damage

	// a pending single-use buff applies to this hit, before the weapon can grant a new one
	single := s.player.ConsumeSingleUse()

	dmg := base
	for _, b := range s.offensiveBindings() {
		out, err := s.resolver.ResolveOnHit(s.player, s.boss, dmg, b)
		if err != nil {
			return nil, errors.Wrap(err, "failed to resolve on-hit enchantment")
		}
		s.recordProc(out)
		dmg = out.Damage
	}

	mult := single * s.player.OutgoingMultiplier() * s.elixirProduct(raid.ElixirDamageBoost)
	if s.setBonus != "" {
		mult *= proc.SetBonusMultiplier
	}
	s.dealDamage(applyMultiplier(dmg, mult))
	s.hits++
	s.gainMagic(MagicChargePerAttack)

	s.checkKill()
	return s.Snapshot(), nil
}

// BossAttack resolves one boss attack against the player
func (s *Simulator) BossAttack() (*State, error) {
	if err := s.begin(ActionBossAttack); err != nil {
		return nil, err
	}
	if err := s.bossAttack(); err != nil {
		return nil, err
	}
	return s.Snapshot(), nil
}

// UseCharge fires a charge for burst damage. Inventory is the caller's concern.
func (s *Simulator) UseCharge(chargeID string) (*State, error) {
	if s.complete {
		return nil, errors.Terminal("battle is complete")
	}
	charge, err := s.catalog.Charge(chargeID)
	if err != nil {
		return nil, err
	}
	s.reset(ActionCharge)

	dmg, err := roller.Between(s.roller, charge.Min, charge.Max)
	if err != nil {
		return nil, err
	}
	s.dealDamage(dmg)
	s.checkKill()
	return s.Snapshot(), nil
}

// UseElixir activates an elixir for the rest of the round.
// An elixir already active is rejected without changing state.
func (s *Simulator) UseElixir(elixirID string) (*State, error) {
	if s.complete {
		return nil, errors.Terminal("battle is complete")
	}
	for _, active := range s.elixirs {
		if active.ElixirID == elixirID {
			return nil, errors.AlreadyActive("elixir %s is already active", elixirID)
		}
	}
	elixir, err := s.catalog.Elixir(elixirID)
	if err != nil {
		return nil, err
	}

	s.reset(ActionElixir)
	s.elixirs = append(s.elixirs, elixir.Activate())
	return s.Snapshot(), nil
}

// CastMagic spends a full magic gauge on a spell
func (s *Simulator) CastMagic() (*State, error) {
	if s.complete {
		return nil, errors.Terminal("battle is complete")
	}
	if s.magic < MaxMagicCharge {
		return nil, errors.InsufficientResources("magic charge %d/%d", s.magic, MaxMagicCharge)
	}
	s.reset(ActionMagic)

	dmg, err := roller.Between(s.roller, magicMin, magicMax)
	if err != nil {
		return nil, err
	}
	dmg += s.player.Stats.MagicPower
	mult := s.player.OutgoingMultiplier() * s.elixirProduct(raid.ElixirDamageBoost)

	s.magic = 0
	s.dealDamage(applyMultiplier(dmg, mult))
	s.checkKill()
	return s.Snapshot(), nil
}

// EndRound expires elixirs and advances the round counter. Passing the round
// cap ends the battle with whatever the pool holds.
func (s *Simulator) EndRound() (*State, error) {
	if err := s.begin(ActionEndRound); err != nil {
		return nil, err
	}

	kept := s.elixirs[:0]
	for _, e := range s.elixirs {
		e.RoundsRemaining--
		if e.RoundsRemaining > 0 {
			kept = append(kept, e)
		}
	}
	s.elixirs = kept

	s.round++
	if s.round > s.maxRounds {
		s.finish(false, EndRoundCap)
	}
	return s.Snapshot(), nil
}

// Advance steps the battle clock. Each second ticks status effects, checks for
// a kill, runs the passive boss attack and only then spends time, so a kill on
// the last second still wins.
func (s *Simulator) Advance(seconds int) (*State, error) {
	if seconds < 0 {
		return nil, errors.InvalidArgumentf("cannot advance by %d seconds", seconds)
	}
	if err := s.begin(ActionTick); err != nil {
		return nil, err
	}

	for i := 0; i < seconds && !s.complete; i++ {
		if err := s.step(); err != nil {
			return nil, err
		}
	}
	return s.Snapshot(), nil
}

func (s *Simulator) step() error {
	s.elapsed++
	// status at the start of the second decides the boss turn
	bossTurn := s.bossAttacksNow()

	bossTick := s.boss.Tick()
	s.dealDamage(bossTick.DotDamage)

	playerTick := s.player.Tick()
	s.player.TakeDamage(playerTick.DotDamage)
	s.player.Heal(playerTick.Heal)
	s.gainMagic(playerTick.MagicRecharge)

	s.checkKill()
	if s.complete {
		return nil
	}
	if !s.player.IsAlive() {
		s.finish(false, EndPlayerDefeated)
		return nil
	}

	if bossTurn {
		if err := s.bossAttack(); err != nil {
			return err
		}
		if s.complete {
			return nil
		}
	}

	s.remaining--
	if s.remaining <= 0 {
		s.remaining = 0
		s.finish(false, EndTimeExpired)
	}
	return nil
}

// bossAttacksNow applies the passive attack cadence. Slowed bosses attack at
// half rate; stunned bosses skip their turn.
func (s *Simulator) bossAttacksNow() bool {
	interval := s.attackInterval
	if s.boss.HasDebuff(combat.DebuffSlow) {
		interval *= 2
	}
	if s.elapsed%interval != 0 {
		return false
	}
	return !s.boss.HasDebuff(combat.DebuffStun)
}

func (s *Simulator) bossAttack() error {
	raw, err := roller.Between(s.roller, bossAttackMin, bossAttackMax)
	if err != nil {
		return err
	}
	raw += s.boss.Stats.Damage

	reduction := s.elixirSum(raid.ElixirDamageReduction)
	dmg := float64(raw) * s.boss.OutgoingMultiplier() * math.Max(0, 1-reduction/100)
	dmg = dmg * 100 / float64(100+max(0, s.player.Stats.Defense))
	dmg *= s.player.DefenseMultiplier()
	incoming := int(math.Round(dmg))

	reflected := 0
	for _, b := range s.defensiveBindings() {
		out, err := s.resolver.ResolveOnHitTaken(s.player, s.boss, incoming, b)
		if err != nil {
			return errors.Wrap(err, "failed to resolve defensive enchantment")
		}
		s.recordProc(out)
		incoming = out.Damage
		reflected += out.Reflected
	}

	taken := s.player.TakeDamage(incoming)
	if pct := s.elixirSum(raid.ElixirReflect); pct > 0 {
		reflected += int(float64(taken) * pct / 100)
	}
	if reflected > 0 {
		s.dealDamage(reflected)
	}

	s.checkKill()
	if !s.complete && !s.player.IsAlive() {
		s.finish(false, EndPlayerDefeated)
	}
	return nil
}

// offensiveBindings returns the weapon slot first, possibly nil, followed by
// every other bound slot. Each enchantment appears once.
func (s *Simulator) offensiveBindings() []*enchantment.Binding {
	w := s.loadout[enchantment.CategoryWeapon]
	return append([]*enchantment.Binding{w}, s.uniqueBindings(w,
		enchantment.CategoryGloves, enchantment.CategoryHelmet, enchantment.CategoryArmor, enchantment.CategoryBoots)...)
}

// defensiveBindings returns every bound slot, armor pieces first. Bindings
// without a hit-taken effect resolve to a no-op.
func (s *Simulator) defensiveBindings() []*enchantment.Binding {
	return s.uniqueBindings(nil, enchantment.CategoryHelmet, enchantment.CategoryArmor,
		enchantment.CategoryBoots, enchantment.CategoryGloves, enchantment.CategoryWeapon)
}

// uniqueBindings collects the bound slots of categories in order, dropping
// repeats of an enchantment and of skip's enchantment.
func (s *Simulator) uniqueBindings(skip *enchantment.Binding, categories ...enchantment.Category) []*enchantment.Binding {
	seen := make(map[enchantment.ID]bool)
	if skip != nil {
		seen[skip.EnchantmentID] = true
	}
	var out []*enchantment.Binding
	for _, c := range categories {
		b := s.loadout[c]
		if b == nil || seen[b.EnchantmentID] {
			continue
		}
		seen[b.EnchantmentID] = true
		out = append(out, b)
	}
	return out
}

func (s *Simulator) begin(action string) error {
	if s.complete {
		return errors.Terminal("battle is complete")
	}
	s.reset(action)
	return nil
}

func (s *Simulator) reset(action string) {
	s.lastAction = action
	s.lastDamage = 0
	s.lastProcs = nil
}

func (s *Simulator) recordProc(out *proc.Outcome) {
	if out != nil && out.Triggered {
		s.lastProcs = append(s.lastProcs, out.Enchantment)
	}
}

// dealDamage removes damage from the pool. Overkill still counts toward damage dealt.
func (s *Simulator) dealDamage(dmg int) {
	if dmg <= 0 {
		return
	}
	s.boss.TakeDamage(dmg)
	s.dealt += dmg
	s.lastDamage += dmg
}

func (s *Simulator) gainMagic(amount int) {
	if amount <= 0 {
		return
	}
	boosted := applyMultiplier(amount, s.elixirProduct(raid.ElixirMagicBoost))
	s.magic = min(MaxMagicCharge, s.magic+boosted)
}

func (s *Simulator) checkKill() {
	if !s.complete && s.boss.CurrentHealth <= 0 {
		s.finish(true, EndPoolDepleted)
	}
}

// finish completes the battle; later calls are ignored
func (s *Simulator) finish(victory bool, reason EndReason) {
	if s.complete {
		return
	}
	s.complete = true
	s.victory = victory
	s.reason = reason
}

func (s *Simulator) elixirProduct(kind raid.ElixirEffectKind) float64 {
	m := 1.0
	for _, e := range s.elixirs {
		for _, eff := range e.Effects {
			if eff.Kind == kind {
				m *= eff.Value
			}
		}
	}
	return m
}

func (s *Simulator) elixirSum(kind raid.ElixirEffectKind) float64 {
	total := 0.0
	for _, e := range s.elixirs {
		for _, eff := range e.Effects {
			if eff.Kind == kind {
				total += eff.Value
			}
		}
	}
	return total
}

func applyMultiplier(v int, m float64) int {
	if m == 1 {
		return v
	}
	return int(math.Round(float64(v) * m))
}

func cloneElixirs(in []raid.ActiveElixir) []raid.ActiveElixir {
	out := make([]raid.ActiveElixir, len(in))
	for i, e := range in {
		e.Effects = append([]raid.ElixirEffect(nil), e.Effects...)
		out[i] = e
	}
	return out
}
