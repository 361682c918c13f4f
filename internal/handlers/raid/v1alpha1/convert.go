package v1alpha1

import (
	"encoding/json"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-raid/internal/errors"
)

// Request field names
const (
	fieldPlayerID      = "player_id"
	fieldBossID        = "boss_id"
	fieldRaidID        = "raid_id"
	fieldChargeID      = "charge_id"
	fieldElixirID      = "elixir_id"
	fieldSlot          = "slot"
	fieldEnchantmentID = "enchantment_id"
	fieldEquipmentID   = "equipment_id"
)

func stringField(req *structpb.Struct, key string) string {
	return req.GetFields()[key].GetStringValue()
}

func intField(req *structpb.Struct, key string) int {
	return int(req.GetFields()[key].GetNumberValue())
}

func requireField(req *structpb.Struct, key string) (string, error) {
	v := stringField(req, key)
	if v == "" {
		return "", errors.InvalidArgumentf("%s is required", key)
	}
	return v, nil
}

// toStruct renders a response through its JSON form
func toStruct(fields map[string]any) (*structpb.Struct, error) {
	data, err := json.Marshal(fields)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode response")
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(err, "failed to encode response")
	}
	out, err := structpb.NewStruct(m)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode response")
	}
	return out, nil
}
