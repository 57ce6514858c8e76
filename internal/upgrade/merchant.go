// Package upgrade defines the two upgrade ladders and their cost and effect
// formulas: merchant upgrades bought with gold (reset on reincarnation) and
// reincarnation upgrades bought with stones (permanent).
package upgrade

import "math"

// MerchantKey identifies one gold-purchased upgrade
type MerchantKey string

const (
	AttackBonus  MerchantKey = "attackBonus"
	CritDamage   MerchantKey = "critDamage"
	CritRate     MerchantKey = "critRate"
	WeaponBoost  MerchantKey = "weaponBoost"
	HelmBoost    MerchantKey = "helmBoost"
	ArmorBoost   MerchantKey = "armorBoost"
	ShieldBoost  MerchantKey = "shieldBoost"
	GiantKilling MerchantKey = "giantKilling"
)

// CritRateMaxLevel caps the crit rate upgrade at +50%.
const CritRateMaxLevel = 50

// MerchantItem is one catalog entry in the merchant shop
type MerchantItem struct {
	Key      MerchantKey
	Name     string
	BaseCost float64
	Desc     string
}

// MerchantCatalog lists the shop inventory in display order. Auto-purchase
// walks this order, so cheap upgrades fill up before expensive ones.
var MerchantCatalog = []MerchantItem{
	{Key: AttackBonus, Name: "Attack Training", BaseCost: 1e3, Desc: "Raises attack power"},
	{Key: CritDamage, Name: "Critical Force", BaseCost: 1e7, Desc: "Base 30% + Lv x (Lv+1) x 2% critical damage"},
	{Key: CritRate, Name: "Critical Eye", BaseCost: 1e10, Desc: "Raises critical rate (max 50%)"},
	{Key: WeaponBoost, Name: "Weapon Polish", BaseCost: 1e11, Desc: "Boosts weapon effect"},
	{Key: HelmBoost, Name: "Helm Refit", BaseCost: 1e14, Desc: "Boosts helm effect"},
	{Key: ArmorBoost, Name: "Armor Plating", BaseCost: 1e17, Desc: "Boosts armor effect"},
	{Key: ShieldBoost, Name: "Shield Temper", BaseCost: 1e23, Desc: "Boosts shield effect"},
	{Key: GiantKilling, Name: "Giant Killing", BaseCost: 1e32, Desc: "Extra damage against bosses"},
}

// MerchantItemFor returns the catalog entry for a key
func MerchantItemFor(key MerchantKey) (MerchantItem, bool) {
	for _, item := range MerchantCatalog {
		if item.Key == key {
			return item, true
		}
	}
	return MerchantItem{}, false
}

// MerchantUpgrades holds one player's merchant upgrade levels
type MerchantUpgrades struct {
	AttackBonus  int `json:"attackBonus"`
	CritDamage   int `json:"critDamage"`
	CritRate     int `json:"critRate"`
	WeaponBoost  int `json:"weaponBoost"`
	HelmBoost    int `json:"helmBoost"`
	ArmorBoost   int `json:"armorBoost"`
	ShieldBoost  int `json:"shieldBoost"`
	GiantKilling int `json:"giantKilling"`
}

// Level returns the level of one upgrade
func (m *MerchantUpgrades) Level(key MerchantKey) int {
	switch key {
	case AttackBonus:
		return m.AttackBonus
	case CritDamage:
		return m.CritDamage
	case CritRate:
		return m.CritRate
	case WeaponBoost:
		return m.WeaponBoost
	case HelmBoost:
		return m.HelmBoost
	case ArmorBoost:
		return m.ArmorBoost
	case ShieldBoost:
		return m.ShieldBoost
	case GiantKilling:
		return m.GiantKilling
	default:
		return 0
	}
}

// SetLevel sets the level of one upgrade
func (m *MerchantUpgrades) SetLevel(key MerchantKey, level int) {
	switch key {
	case AttackBonus:
		m.AttackBonus = level
	case CritDamage:
		m.CritDamage = level
	case CritRate:
		m.CritRate = level
	case WeaponBoost:
		m.WeaponBoost = level
	case HelmBoost:
		m.HelmBoost = level
	case ArmorBoost:
		m.ArmorBoost = level
	case ShieldBoost:
		m.ShieldBoost = level
	case GiantKilling:
		m.GiantKilling = level
	}
}

// AtCap returns true when an upgrade cannot be leveled further
func (m *MerchantUpgrades) AtCap(key MerchantKey) bool {
	return key == CritRate && m.CritRate >= CritRateMaxLevel
}

// Quad is the shared quadratic growth term level*(level+1) used by almost
// every upgrade effect.
func Quad(level int) float64 {
	if level <= 0 {
		return 0
	}
	return float64(level * (level + 1))
}

// MerchantAttackBonus is flat attack from the attack upgrade: Lv*(Lv+1)*10
func MerchantAttackBonus(level int) float64 {
	return Quad(level) * 10
}

// CritDamageMultiplier is the critical damage factor: 1.3 + Lv*(Lv+1)*0.02
func CritDamageMultiplier(level int) float64 {
	return 1.3 + Quad(level)*0.02
}

// SlotBoostPercent is the fractional power boost for one equipment slot:
// Lv*(Lv+1)*1%
func SlotBoostPercent(level int) float64 {
	return Quad(level) * 0.01
}

// GiantKillingMultiplier is the boss-only damage factor: 1 + Lv*2%
func GiantKillingMultiplier(level int) float64 {
	if level <= 0 {
		return 1
	}
	return 1 + float64(level)*0.02
}

// DiscountPercent converts the price discount level into a percentage,
// capped at 99.
func DiscountPercent(level int) float64 {
	return math.Min(99, Quad(level)/2)
}
