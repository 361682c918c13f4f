package forge_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-raid/internal/catalog"
	"github.com/KirkDiggler/rpg-raid/internal/entities/enchantment"
	"github.com/KirkDiggler/rpg-raid/internal/errors"
	"github.com/KirkDiggler/rpg-raid/internal/orchestrators/forge"
	"github.com/KirkDiggler/rpg-raid/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-raid/internal/repositories/enchantments"
	"github.com/KirkDiggler/rpg-raid/internal/repositories/equipment"
	forgeslots "github.com/KirkDiggler/rpg-raid/internal/repositories/forge_slots"
	forgeslotsmock "github.com/KirkDiggler/rpg-raid/internal/repositories/forge_slots/mock"
	"github.com/KirkDiggler/rpg-raid/internal/repositories/inventory"
	inventorymock "github.com/KirkDiggler/rpg-raid/internal/repositories/inventory/mock"
	"github.com/KirkDiggler/rpg-raid/internal/testutils"
	"github.com/KirkDiggler/rpg-raid/internal/testutils/mocks"
)

const (
	testPlayer = "player-1"
	testWeapon = "sword-1"
	testHelmet = "helm-1"
)

type OrchestratorTestSuite struct {
	suite.Suite
	ctx       context.Context
	clock     *clock.Manual
	catalog   *catalog.Catalog
	inventory *inventory.InMemoryRepository
	equipment *equipment.InMemoryRepository
	bindings  *enchantments.InMemoryRepository
	slots     *forgeslots.InMemoryRepository
	svc       forge.Service
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = clock.NewManual(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))

	cat, err := catalog.LoadDefault()
	s.Require().NoError(err)
	s.catalog = cat

	s.inventory = inventory.NewInMemory()
	s.equipment = equipment.NewInMemory()
	s.bindings = enchantments.NewInMemory()
	s.slots = forgeslots.NewInMemory()

	s.saveItem(testWeapon, testPlayer, enchantment.CategoryWeapon, 10)
	s.saveItem(testHelmet, testPlayer, enchantment.CategoryHelmet, 20)

	svc, err := forge.NewOrchestrator(&forge.Config{
		Catalog:       s.catalog,
		InventoryRepo: s.inventory,
		EquipmentRepo: s.equipment,
		BindingRepo:   s.bindings,
		SlotRepo:      s.slots,
		Clock:         s.clock,
	})
	s.Require().NoError(err)
	s.svc = svc
}

func (s *OrchestratorTestSuite) saveItem(id, owner string, category enchantment.Category, level int) {
	_, err := s.equipment.Save(s.ctx, equipment.SaveInput{
		Item: testutils.CreateTestItem(owner, id, category, level),
	})
	s.Require().NoError(err)
}

func (s *OrchestratorTestSuite) give(item string, n int) {
	_, err := s.inventory.Increment(s.ctx, &inventory.IncrementInput{PlayerID: testPlayer, ItemID: item, Delta: n})
	s.Require().NoError(err)
}

func (s *OrchestratorTestSuite) count(item string) int {
	out, err := s.inventory.Get(s.ctx, &inventory.GetInput{PlayerID: testPlayer, ItemID: item})
	s.Require().NoError(err)
	return out.Count
}

func (s *OrchestratorTestSuite) binding(equipmentID string) *enchantment.Binding {
	out, err := s.bindings.Get(s.ctx, &enchantments.GetInput{EquipmentID: equipmentID})
	s.Require().NoError(err)
	return out.Binding
}

func (s *OrchestratorTestSuite) start(slot int, id enchantment.ID, equipmentID string) (*forge.StartForgingOutput, error) {
	return s.svc.StartForging(s.ctx, &forge.StartForgingInput{
		PlayerID:      testPlayer,
		Slot:          slot,
		EnchantmentID: id,
		EquipmentID:   equipmentID,
	})
}

func (s *OrchestratorTestSuite) TestNewOrchestrator() {
	s.Run("nil config", func() {
		_, err := forge.NewOrchestrator(nil)
		s.Error(err)
		s.True(errors.IsInvalidArgument(err))
	})

	s.Run("missing dependencies", func() {
		_, err := forge.NewOrchestrator(&forge.Config{Catalog: s.catalog})
		s.Require().Error(err)
		s.Contains(err.Error(), "invalid config")
	})
}

func (s *OrchestratorTestSuite) TestStartForgingConsumesExactBalance() {
	s.give(inventory.ItemGreenOrbs, 3)

	out, err := s.start(0, enchantment.Precision, testWeapon)
	s.Require().NoError(err)
	s.Equal(0, out.Remaining[inventory.ItemGreenOrbs])
	s.Equal(0, s.count(inventory.ItemGreenOrbs))
	s.Require().NotNil(out.Slot.Job)
	s.Equal(enchantment.Precision, out.Slot.Job.EnchantmentID)
	s.Equal(s.clock.Now().Add(60*time.Second), out.Slot.Job.EndTime)
	s.Equal(60*time.Second, out.Slot.Remaining)

	_, err = s.start(1, enchantment.Weakness, testHelmet)
	s.Require().Error(err)
	s.True(errors.IsInsufficientResources(err))
	s.Equal(0, s.count(inventory.ItemGreenOrbs))

	slot, err := s.slots.Get(s.ctx, &forgeslots.GetInput{PlayerID: testPlayer, Index: 1})
	s.Require().NoError(err)
	s.True(slot.Slot.Idle())
}

func (s *OrchestratorTestSuite) TestStartForgingRejections() {
	s.give(inventory.ItemGreenOrbs, 30)
	s.give(inventory.ItemBlueOrbs, 30)
	s.saveItem("other-sword", "player-2", enchantment.CategoryWeapon, 5)

	testCases := []struct {
		name    string
		slot    int
		ench    enchantment.ID
		equip   string
		checkFn func(error) bool
	}{
		{name: "slot out of range", slot: 3, ench: enchantment.Precision, equip: testWeapon, checkFn: errors.IsInvalidTarget},
		{name: "negative slot", slot: -1, ench: enchantment.Precision, equip: testWeapon, checkFn: errors.IsInvalidTarget},
		{name: "unknown enchantment", slot: 0, ench: "nope", equip: testWeapon, checkFn: errors.IsInvalidTarget},
		{name: "unknown equipment", slot: 0, ench: enchantment.Precision, equip: "missing", checkFn: errors.IsInvalidTarget},
		{name: "foreign equipment", slot: 0, ench: enchantment.Precision, equip: "other-sword", checkFn: errors.IsInvalidTarget},
		{name: "ineligible category", slot: 0, ench: enchantment.Precision, equip: testHelmet, checkFn: errors.IsInvalidTarget},
		{name: "missing enchantment id", slot: 0, ench: "", equip: testWeapon, checkFn: errors.IsInvalidArgument},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.start(tc.slot, tc.ench, tc.equip)
			s.Require().Error(err)
			s.True(tc.checkFn(err), "unexpected error: %v", err)
		})
	}

	s.Equal(30, s.count(inventory.ItemGreenOrbs))
}

func (s *OrchestratorTestSuite) TestStartForgingBusySlot() {
	s.give(inventory.ItemGreenOrbs, 6)

	_, err := s.start(0, enchantment.Precision, testWeapon)
	s.Require().NoError(err)

	_, err = s.start(0, enchantment.Weakness, testHelmet)
	s.Require().Error(err)
	s.True(errors.IsAlreadyActive(err))
	s.Equal(3, s.count(inventory.ItemGreenOrbs))

	_, err = s.start(1, enchantment.Poisoning, testWeapon)
	s.Require().Error(err)
	s.True(errors.IsAlreadyActive(err))
	s.Equal(3, s.count(inventory.ItemGreenOrbs))
}

func (s *OrchestratorTestSuite) TestMythicalBindingCannotBeDowngraded() {
	_, err := s.bindings.Put(s.ctx, &enchantments.PutInput{Binding: &enchantment.Binding{
		EquipmentID:   testWeapon,
		Category:      enchantment.CategoryWeapon,
		EnchantmentID: enchantment.Karma,
		Tier:          enchantment.TierMythical,
		Power:         190,
		BoundAt:       s.clock.Now(),
	}})
	s.Require().NoError(err)
	s.give(inventory.ItemGreenOrbs, 3)

	_, err = s.start(0, enchantment.Precision, testWeapon)
	s.Require().Error(err)
	s.True(errors.IsIneligibleReplacement(err))
	s.Equal(3, s.count(inventory.ItemGreenOrbs))

	s.give(inventory.ItemPurpleOrbs, 5)
	s.give(inventory.ItemBlueOrbs, 2)
	_, err = s.start(0, enchantment.TempestRage, testWeapon)
	s.NoError(err)
}

func (s *OrchestratorTestSuite) TestCompleteForging() {
	s.give(inventory.ItemGreenOrbs, 3)
	_, err := s.start(2, enchantment.Precision, testWeapon)
	s.Require().NoError(err)

	s.Run("not ready", func() {
		s.clock.Advance(59 * time.Second)
		_, err := s.svc.CompleteForging(s.ctx, &forge.CompleteForgingInput{PlayerID: testPlayer, Slot: 2})
		s.Require().Error(err)
		s.True(errors.IsFailedPrecondition(err))
		s.Nil(s.binding(testWeapon))
	})

	s.Run("ready", func() {
		s.clock.Advance(time.Second)
		out, err := s.svc.CompleteForging(s.ctx, &forge.CompleteForgingInput{PlayerID: testPlayer, Slot: 2})
		s.Require().NoError(err)
		s.Require().NotNil(out.Binding)
		s.Equal(enchantment.Precision, out.Binding.EnchantmentID)
		s.Equal(100, out.Binding.Power)
		s.Equal(s.clock.Now(), out.Binding.BoundAt)
		s.Equal(out.Binding, s.binding(testWeapon))
	})

	s.Run("second completion is a no-op", func() {
		out, err := s.svc.CompleteForging(s.ctx, &forge.CompleteForgingInput{PlayerID: testPlayer, Slot: 2})
		s.Require().NoError(err)
		s.Nil(out.Binding)
	})
}

func (s *OrchestratorTestSuite) TestSpeedUpForging() {
	s.give(inventory.ItemGreenOrbs, 3)
	_, err := s.start(0, enchantment.Weakness, testHelmet)
	s.Require().NoError(err)

	s.Run("not enough crystals", func() {
		s.give(inventory.ItemCrystals, 9)
		_, err := s.svc.SpeedUpForging(s.ctx, &forge.SpeedUpForgingInput{PlayerID: testPlayer, Slot: 0})
		s.Require().Error(err)
		s.True(errors.IsInsufficientResources(err))
		s.Equal(9, s.count(inventory.ItemCrystals))
		s.Nil(s.binding(testHelmet))
	})

	s.Run("pays and completes", func() {
		s.give(inventory.ItemCrystals, 1)
		out, err := s.svc.SpeedUpForging(s.ctx, &forge.SpeedUpForgingInput{PlayerID: testPlayer, Slot: 0})
		s.Require().NoError(err)
		s.Equal(10, out.CrystalsSpent)
		s.Require().NotNil(out.Binding)
		s.Equal(200, out.Binding.Power)
		s.Equal(0, s.count(inventory.ItemCrystals))
	})

	s.Run("idle slot is free", func() {
		s.give(inventory.ItemCrystals, 10)
		out, err := s.svc.SpeedUpForging(s.ctx, &forge.SpeedUpForgingInput{PlayerID: testPlayer, Slot: 0})
		s.Require().NoError(err)
		s.Zero(out.CrystalsSpent)
		s.Equal(10, s.count(inventory.ItemCrystals))
	})
}

func (s *OrchestratorTestSuite) TestCancelForgingDoesNotRefund() {
	s.give(inventory.ItemGreenOrbs, 3)
	_, err := s.start(1, enchantment.Precision, testWeapon)
	s.Require().NoError(err)

	out, err := s.svc.CancelForging(s.ctx, &forge.CancelForgingInput{PlayerID: testPlayer, Slot: 1})
	s.Require().NoError(err)
	s.Require().NotNil(out.Cancelled)
	s.Equal(testWeapon, out.Cancelled.EquipmentID)
	s.Equal(0, s.count(inventory.ItemGreenOrbs))

	s.clock.Advance(time.Hour)
	expired, err := s.svc.CheckExpired(s.ctx, &forge.CheckExpiredInput{PlayerID: testPlayer})
	s.Require().NoError(err)
	s.Empty(expired.Completed)
	s.Nil(s.binding(testWeapon))

	again, err := s.svc.CancelForging(s.ctx, &forge.CancelForgingInput{PlayerID: testPlayer, Slot: 1})
	s.Require().NoError(err)
	s.Nil(again.Cancelled)
}

func (s *OrchestratorTestSuite) TestCheckExpiredAndListSlots() {
	s.give(inventory.ItemGreenOrbs, 3)
	s.give(inventory.ItemBlueOrbs, 3)
	_, err := s.start(0, enchantment.Weakness, testHelmet)
	s.Require().NoError(err)
	_, err = s.start(1, enchantment.Overheat, testWeapon)
	s.Require().NoError(err)

	s.clock.Advance(30 * time.Second)
	list, err := s.svc.ListSlots(s.ctx, &forge.ListSlotsInput{PlayerID: testPlayer})
	s.Require().NoError(err)
	s.Require().Len(list.Slots, forge.DefaultSlotCount)
	s.InDelta(0.5, list.Slots[0].Progress, 1e-9)
	s.Equal(30*time.Second, list.Slots[0].Remaining)
	s.InDelta(0.1, list.Slots[1].Progress, 1e-9)
	s.Nil(list.Slots[2].Job)
	s.Zero(list.Slots[2].Progress)

	s.clock.Advance(30 * time.Second)
	expired, err := s.svc.CheckExpired(s.ctx, &forge.CheckExpiredInput{PlayerID: testPlayer})
	s.Require().NoError(err)
	s.Require().Len(expired.Completed, 1)
	s.Equal(enchantment.Weakness, expired.Completed[0].EnchantmentID)

	s.clock.Advance(5 * time.Minute)
	expired, err = s.svc.CheckExpired(s.ctx, &forge.CheckExpiredInput{PlayerID: testPlayer})
	s.Require().NoError(err)
	s.Require().Len(expired.Completed, 1)
	s.Equal(enchantment.Overheat, expired.Completed[0].EnchantmentID)
	s.Equal(150, expired.Completed[0].Power)
}

// sharedSlots empties the slot right after it is read, the way a completion
// from another server would
type sharedSlots struct {
	forgeslots.Repository
}

func (r *sharedSlots) Get(ctx context.Context, input *forgeslots.GetInput) (*forgeslots.GetOutput, error) {
	got, err := r.Repository.Get(ctx, input)
	if err != nil {
		return nil, err
	}
	if _, err := r.Repository.Clear(ctx, &forgeslots.ClearInput{PlayerID: input.PlayerID, Index: input.Index}); err != nil {
		return nil, err
	}
	return got, nil
}

func (s *OrchestratorTestSuite) TestSpeedUpRefundsWhenSlotEmptiedFirst() {
	s.give(inventory.ItemGreenOrbs, 3)
	_, err := s.start(0, enchantment.Weakness, testHelmet)
	s.Require().NoError(err)
	s.give(inventory.ItemCrystals, 10)

	svc, err := forge.NewOrchestrator(&forge.Config{
		Catalog:       s.catalog,
		InventoryRepo: s.inventory,
		EquipmentRepo: s.equipment,
		BindingRepo:   s.bindings,
		SlotRepo:      &sharedSlots{Repository: s.slots},
		Clock:         s.clock,
	})
	s.Require().NoError(err)

	out, err := svc.SpeedUpForging(s.ctx, &forge.SpeedUpForgingInput{PlayerID: testPlayer, Slot: 0})
	s.Require().NoError(err)
	s.Nil(out.Binding)
	s.Zero(out.CrystalsSpent)
	s.Equal(10, s.count(inventory.ItemCrystals))
}

func (s *OrchestratorTestSuite) TestSpeedUpAndExpiryCompleteOnce() {
	s.give(inventory.ItemGreenOrbs, 3)
	_, err := s.start(0, enchantment.Weakness, testHelmet)
	s.Require().NoError(err)
	s.give(inventory.ItemCrystals, 40)
	s.clock.Advance(time.Minute)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		completed int
		spent     int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(speedUp bool) {
			defer wg.Done()
			if speedUp {
				out, err := s.svc.SpeedUpForging(s.ctx, &forge.SpeedUpForgingInput{PlayerID: testPlayer, Slot: 0})
				if err != nil {
					return
				}
				mu.Lock()
				defer mu.Unlock()
				spent += out.CrystalsSpent
				if out.Binding != nil {
					completed++
				}
				return
			}
			out, err := s.svc.CheckExpired(s.ctx, &forge.CheckExpiredInput{PlayerID: testPlayer})
			if err != nil {
				return
			}
			mu.Lock()
			defer mu.Unlock()
			completed += len(out.Completed)
		}(i%2 == 0)
	}
	wg.Wait()

	s.Equal(1, completed)
	s.Equal(40-spent, s.count(inventory.ItemCrystals))
	s.LessOrEqual(spent, 10)
	s.NotNil(s.binding(testHelmet))
}

func (s *OrchestratorTestSuite) TestRefusedBindingStaysInSlot() {
	s.give(inventory.ItemGreenOrbs, 3)
	_, err := s.start(0, enchantment.Weakness, testHelmet)
	s.Require().NoError(err)

	_, err = s.bindings.Put(s.ctx, &enchantments.PutInput{Binding: &enchantment.Binding{
		EquipmentID:   testHelmet,
		Category:      enchantment.CategoryHelmet,
		EnchantmentID: enchantment.Karma,
		Tier:          enchantment.TierMythical,
		Power:         100,
	}})
	s.Require().NoError(err)
	s.clock.Advance(time.Minute)

	_, err = s.svc.CompleteForging(s.ctx, &forge.CompleteForgingInput{PlayerID: testPlayer, Slot: 0})
	s.Require().Error(err)
	s.True(errors.IsIneligibleReplacement(err))

	expired, err := s.svc.CheckExpired(s.ctx, &forge.CheckExpiredInput{PlayerID: testPlayer})
	s.Require().NoError(err)
	s.Empty(expired.Completed)

	slot, err := s.slots.Get(s.ctx, &forgeslots.GetInput{PlayerID: testPlayer, Index: 0})
	s.Require().NoError(err)
	s.Require().NotNil(slot.Slot.Job)
	s.Equal(enchantment.Weakness, slot.Slot.Job.EnchantmentID)
	s.Equal(enchantment.Karma, s.binding(testHelmet).EnchantmentID)

	cancelled, err := s.svc.CancelForging(s.ctx, &forge.CancelForgingInput{PlayerID: testPlayer, Slot: 0})
	s.Require().NoError(err)
	s.NotNil(cancelled.Cancelled)
}

func TestStartForgingRefundsWhenSlotIsTaken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	cat, err := catalog.LoadDefault()
	if err != nil {
		t.Fatal(err)
	}

	equip := equipment.NewInMemory()
	_, err = equip.Save(ctx, equipment.SaveInput{
		Item: testutils.CreateTestItem(testPlayer, testWeapon, enchantment.CategoryWeapon, 1),
	})
	if err != nil {
		t.Fatal(err)
	}

	mockInventory := inventorymock.NewMockRepository(ctrl)
	mockSlots := forgeslotsmock.NewMockRepository(ctrl)

	mockSlots.EXPECT().
		List(ctx, &forgeslots.ListInput{PlayerID: testPlayer, Count: forge.DefaultSlotCount}).
		Return(&forgeslots.ListOutput{}, nil)
	cost := map[string]int{inventory.ItemGreenOrbs: 3}
	mocks.ExpectConsume(ctx, mockInventory, testPlayer, cost, map[string]int{inventory.ItemGreenOrbs: 0})
	put := mockSlots.EXPECT().
		Put(ctx, gomock.Any()).
		Return(nil, errors.AlreadyActive("forge slot 0 is already forging"))
	mocks.ExpectRefund(ctx, mockInventory, testPlayer, cost, put)

	svc, err := forge.NewOrchestrator(&forge.Config{
		Catalog:       cat,
		InventoryRepo: mockInventory,
		EquipmentRepo: equip,
		BindingRepo:   enchantments.NewInMemory(),
		SlotRepo:      mockSlots,
		Clock:         clock.NewManual(time.Unix(0, 0)),
	})
	if err != nil {
		t.Fatal(err)
	}

	_, err = svc.StartForging(ctx, &forge.StartForgingInput{
		PlayerID:      testPlayer,
		Slot:          0,
		EnchantmentID: enchantment.Precision,
		EquipmentID:   testWeapon,
	})
	if !errors.IsAlreadyActive(err) {
		t.Fatalf("expected already active, got %v", err)
	}
}
