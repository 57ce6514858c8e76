package server

import (
	"encoding/json"
	"fmt"

	"github.com/lawnchairsociety/towerclimb/internal/engine"
	"github.com/lawnchairsociety/towerclimb/internal/equipment"
	"github.com/lawnchairsociety/towerclimb/internal/job"
	"github.com/lawnchairsociety/towerclimb/internal/tower"
	"github.com/lawnchairsociety/towerclimb/internal/upgrade"
)

// ActionMessage is the envelope clients send over the WebSocket. Type
// selects the action; the remaining fields carry its arguments.
type ActionMessage struct {
	Type    string `json:"type"`
	ItemID  string `json:"itemId,omitempty"`
	Key     string `json:"key,omitempty"`
	Job     string `json:"job,omitempty"`
	Slot    string `json:"slot,omitempty"`
	Floor   int    `json:"floor,omitempty"`
	Min     int    `json:"min,omitempty"`
	Max     int    `json:"max,omitempty"`
	Speed   int    `json:"speed,omitempty"`
	Enabled bool   `json:"enabled,omitempty"`
	Clear   bool   `json:"clear,omitempty"`
}

// StateMessage is the snapshot pushed to clients after every tick batch
// and every applied action. BossApproach flags the last stretch of a tier
// so the client can switch presentation.
type StateMessage struct {
	Type         string            `json:"type"`
	State        *engine.GameState `json:"state"`
	Speed        int               `json:"speed"`
	Paused       bool              `json:"paused"`
	BossApproach bool              `json:"bossApproach"`
}

// ErrorMessage reports a rejected or malformed action back to the client.
type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func decodeAction(data []byte) (ActionMessage, error) {
	var msg ActionMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return ActionMessage{}, fmt.Errorf("malformed action: %w", err)
	}
	if msg.Type == "" {
		return ActionMessage{}, fmt.Errorf("action missing type")
	}
	return msg, nil
}

// dispatch applies an action message to the running game. Game-state
// actions go through the runner so they serialize with the tick loop;
// speed and pause control the runner directly.
func (s *Server) dispatch(msg ActionMessage) error {
	eng := s.engine
	switch msg.Type {
	case "equip":
		s.runner.Apply(func(g *engine.GameState) *engine.GameState {
			return eng.Equip(g, msg.ItemID)
		})
	case "synthesize":
		s.runner.Apply(func(g *engine.GameState) *engine.GameState {
			return eng.Synthesize(g, msg.ItemID)
		})
	case "bulkSynthesize":
		s.runner.Apply(eng.BulkSynthesize)
	case "changeJob":
		newJob, err := job.ParseJob(msg.Job)
		if err != nil {
			return err
		}
		s.runner.Apply(func(g *engine.GameState) *engine.GameState {
			return eng.ChangeJob(g, newJob)
		})
	case "buyMerchantUpgrade":
		key := upgrade.MerchantKey(msg.Key)
		if _, ok := upgrade.MerchantItemFor(key); !ok {
			return fmt.Errorf("unknown merchant upgrade %q", msg.Key)
		}
		s.runner.Apply(func(g *engine.GameState) *engine.GameState {
			return eng.BuyMerchantUpgrade(g, key)
		})
	case "buyMaxMerchantUpgrade":
		key := upgrade.MerchantKey(msg.Key)
		if _, ok := upgrade.MerchantItemFor(key); !ok {
			return fmt.Errorf("unknown merchant upgrade %q", msg.Key)
		}
		s.runner.Apply(func(g *engine.GameState) *engine.GameState {
			return eng.BuyMaxMerchantUpgrade(g, key)
		})
	case "buyReincarnationUpgrade":
		key := upgrade.ReincarnationKey(msg.Key)
		if _, ok := upgrade.ReincarnationItemFor(key); !ok {
			return fmt.Errorf("unknown reincarnation upgrade %q", msg.Key)
		}
		s.runner.Apply(func(g *engine.GameState) *engine.GameState {
			return eng.BuyReincarnationUpgrade(g, key)
		})
	case "toggleAutoMerchant":
		key := upgrade.MerchantKey(msg.Key)
		if _, ok := upgrade.MerchantItemFor(key); !ok {
			return fmt.Errorf("unknown merchant upgrade %q", msg.Key)
		}
		s.runner.Apply(func(g *engine.GameState) *engine.GameState {
			return eng.ToggleAutoMerchant(g, key)
		})
	case "toggleDropPreference":
		s.runner.Apply(func(g *engine.GameState) *engine.GameState {
			return eng.ToggleDropPreference(g, equipment.Slot(msg.Slot))
		})
	case "activateSkill":
		s.runner.Apply(func(g *engine.GameState) *engine.GameState {
			return eng.ActivateSkill(g, upgrade.ReincarnationKey(msg.Key))
		})
	case "setFarmingMode":
		var mode *engine.FarmingMode
		if !msg.Clear {
			mode = &engine.FarmingMode{Min: msg.Min, Max: msg.Max}
		}
		s.runner.Apply(func(g *engine.GameState) *engine.GameState {
			return eng.SetFarmingMode(g, mode)
		})
	case "reincarnate":
		s.runner.Apply(func(g *engine.GameState) *engine.GameState {
			return eng.Reincarnate(g, msg.Floor)
		})
	case "acknowledgeRareDrop":
		s.runner.Apply(eng.AcknowledgeRareDrop)
	case "setAutoBattle":
		s.runner.Apply(func(g *engine.GameState) *engine.GameState {
			return eng.SetAutoBattle(g, msg.Enabled)
		})
	case "setSpeed":
		s.runner.SetSpeed(msg.Speed)
	case "pause":
		s.runner.Pause()
	case "resume":
		s.runner.Resume()
	default:
		return fmt.Errorf("unknown action %q", msg.Type)
	}
	return nil
}

func (s *Server) snapshot() StateMessage {
	state := s.runner.State()
	return StateMessage{
		Type:         "state",
		State:        state,
		Speed:        s.runner.Speed(),
		Paused:       s.runner.Paused(),
		BossApproach: tower.IsBossApproach(state.Player.Floor),
	}
}
