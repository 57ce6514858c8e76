package engine

import (
	"github.com/google/uuid"

	"github.com/lawnchairsociety/towerclimb/internal/equipment"
	"github.com/lawnchairsociety/towerclimb/internal/job"
	"github.com/lawnchairsociety/towerclimb/internal/tower"
	"github.com/lawnchairsociety/towerclimb/internal/upgrade"
)

// maxLogEntries caps the battle log ring buffer.
const maxLogEntries = 50

// LogType categorizes a battle log entry for presentation.
type LogType string

const (
	LogDamage LogType = "damage"
	LogGain   LogType = "gain"
	LogInfo   LogType = "info"
	LogBoss   LogType = "boss"
	LogDanger LogType = "danger"
	LogCrit   LogType = "crit"
)

// LogEntry is one line of the battle log.
type LogEntry struct {
	ID        string  `json:"id"`
	Message   string  `json:"message"`
	Type      LogType `json:"type"`
	Timestamp int64   `json:"timestamp"`
}

// Mastery tracks per-skill usage. Every 10 triggers raises the level by one
// and resets the counter; each level adds 1% trigger rate.
type Mastery struct {
	Level int `json:"level"`
	Count int `json:"count"`
}

// ActiveSkill is the runtime state of one manually activated skill.
// Times are epoch milliseconds.
type ActiveSkill struct {
	IsActive    bool  `json:"isActive"`
	EndTime     int64 `json:"endTime"`
	CooldownEnd int64 `json:"cooldownEnd"`
	Duration    int64 `json:"duration"`
}

// ActiveSkills holds the four activatable reincarnation skills.
type ActiveSkills struct {
	Concentration ActiveSkill `json:"concentration"`
	VitalSpot     ActiveSkill `json:"vitalSpot"`
	HyperSpeed    ActiveSkill `json:"hyperSpeed"`
	Awakening     ActiveSkill `json:"awakening"`
}

// FarmingMode loops the player between two floors instead of climbing.
type FarmingMode struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Player is the mutable progression record.
type Player struct {
	Level               int                             `json:"level"`
	CurrentXP           float64                         `json:"currentXp"`
	RequiredXP          float64                         `json:"requiredXp"`
	Job                 job.Job                         `json:"job"`
	JobLevel            int                             `json:"jobLevel"`
	Gold                float64                         `json:"gold"`
	Floor               int                             `json:"floor"`
	MaxFloorReached     int                             `json:"maxFloorReached"`
	BaseAttack          float64                         `json:"baseAttack"`
	SkillMastery        map[string]Mastery              `json:"skillMastery"`
	ReincarnationStones float64                         `json:"reincarnationStones"`
	Merchant            upgrade.MerchantUpgrades        `json:"merchantUpgrades"`
	Reincarnation       upgrade.ReincarnationUpgrades   `json:"reincarnationUpgrades"`
	AutoMerchantKeys    map[upgrade.MerchantKey]bool    `json:"autoMerchantKeys"`
	DropPreferences     map[equipment.Slot]bool         `json:"dropPreferences"`
}

// GameState is the whole game in one value. Every tick and every action
// produces a new state; previous snapshots are never mutated.
type GameState struct {
	Player       Player                                   `json:"player"`
	Enemy        *tower.Enemy                             `json:"enemy"`
	Inventory    []*equipment.Equipment                   `json:"inventory"`
	Equipped     map[equipment.Slot]*equipment.Equipment  `json:"equipped"`
	Logs         []LogEntry                               `json:"logs"`
	BossTimer    *int                                     `json:"bossTimer"`
	AutoBattle   bool                                     `json:"autoBattleEnabled"`
	FarmingMode  *FarmingMode                             `json:"farmingMode"`
	RareDropItem *equipment.Equipment                     `json:"rareDropItem"`
	ActiveSkills ActiveSkills                             `json:"activeSkills"`

	// InventoryVersion changes whenever Inventory or Equipped is replaced.
	// The engine keys its collection bonus cache on it.
	InventoryVersion uint64 `json:"-"`
}

// NewPlayer returns the fresh starting player.
func NewPlayer() Player {
	return Player{
		Level:            1,
		CurrentXP:        0,
		RequiredXP:       50,
		Job:              job.Novice,
		JobLevel:         1,
		Gold:             0,
		Floor:            1,
		MaxFloorReached:  1,
		BaseAttack:       10,
		SkillMastery:     make(map[string]Mastery),
		AutoMerchantKeys: make(map[upgrade.MerchantKey]bool),
		DropPreferences:  make(map[equipment.Slot]bool),
	}
}

// NewGameState returns the initial state of a fresh run.
func NewGameState() *GameState {
	return &GameState{
		Player:     NewPlayer(),
		Inventory:  []*equipment.Equipment{},
		Equipped:   make(map[equipment.Slot]*equipment.Equipment),
		Logs:       []LogEntry{},
		AutoBattle: true,
	}
}

// Clone copies the state deeply enough that mutating the copy never touches
// the original. Equipment values are shared; callers replace items instead
// of mutating them.
func (s *GameState) Clone() *GameState {
	next := *s

	next.Player.SkillMastery = make(map[string]Mastery, len(s.Player.SkillMastery))
	for k, v := range s.Player.SkillMastery {
		next.Player.SkillMastery[k] = v
	}
	next.Player.AutoMerchantKeys = make(map[upgrade.MerchantKey]bool, len(s.Player.AutoMerchantKeys))
	for k, v := range s.Player.AutoMerchantKeys {
		next.Player.AutoMerchantKeys[k] = v
	}
	next.Player.DropPreferences = make(map[equipment.Slot]bool, len(s.Player.DropPreferences))
	for k, v := range s.Player.DropPreferences {
		next.Player.DropPreferences[k] = v
	}

	next.Inventory = make([]*equipment.Equipment, len(s.Inventory))
	copy(next.Inventory, s.Inventory)
	next.Equipped = make(map[equipment.Slot]*equipment.Equipment, len(s.Equipped))
	for k, v := range s.Equipped {
		next.Equipped[k] = v
	}

	next.Logs = make([]LogEntry, len(s.Logs))
	copy(next.Logs, s.Logs)

	if s.BossTimer != nil {
		t := *s.BossTimer
		next.BossTimer = &t
	}
	if s.FarmingMode != nil {
		fm := *s.FarmingMode
		next.FarmingMode = &fm
	}

	return &next
}

// ActiveSkillFor returns the runtime state for an activatable skill key.
func (s *GameState) ActiveSkillFor(key upgrade.ReincarnationKey) *ActiveSkill {
	switch key {
	case upgrade.Concentration:
		return &s.ActiveSkills.Concentration
	case upgrade.VitalSpot:
		return &s.ActiveSkills.VitalSpot
	case upgrade.HyperSpeed:
		return &s.ActiveSkills.HyperSpeed
	case upgrade.Awakening:
		return &s.ActiveSkills.Awakening
	default:
		return nil
	}
}

func newLog(msg string, typ LogType, nowMillis int64) LogEntry {
	return LogEntry{
		ID:        uuid.NewString(),
		Message:   msg,
		Type:      typ,
		Timestamp: nowMillis,
	}
}

// appendLogs merges new entries into the ring buffer, trimming to the cap.
func appendLogs(logs []LogEntry, entries []LogEntry) []LogEntry {
	merged := append(logs, entries...)
	if len(merged) > maxLogEntries {
		merged = merged[len(merged)-maxLogEntries:]
	}
	return merged
}

// bumpInventory marks the inventory/equipped pair as replaced so cached
// aggregates recompute.
func (s *GameState) bumpInventory() {
	s.InventoryVersion++
}
