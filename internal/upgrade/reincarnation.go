package upgrade

// ReincarnationKey identifies one stone-purchased permanent upgrade
type ReincarnationKey string

const (
	XPBoost          ReincarnationKey = "xpBoost"
	GoldBoost        ReincarnationKey = "goldBoost"
	StoneBoost       ReincarnationKey = "stoneBoost"
	StartFloor       ReincarnationKey = "startFloor"
	AutoPromote      ReincarnationKey = "autoPromote"
	AutoEquip        ReincarnationKey = "autoEquip"
	AutoMerchant     ReincarnationKey = "autoMerchant"
	ItemFilter       ReincarnationKey = "itemFilter"
	Farming          ReincarnationKey = "farming"
	AutoEnhance      ReincarnationKey = "autoEnhance"
	ItemPersistence  ReincarnationKey = "itemPersistence"
	BaseAttackBoost  ReincarnationKey = "baseAttackBoost"
	EnemyHPDown      ReincarnationKey = "enemyHpDown"
	SkillDamageBoost ReincarnationKey = "skillDamageBoost"
	PriceDiscount    ReincarnationKey = "priceDiscount"
	Concentration    ReincarnationKey = "concentration"
	VitalSpot        ReincarnationKey = "vitalSpot"
	HyperSpeed       ReincarnationKey = "hyperSpeed"
	Awakening        ReincarnationKey = "awakening"
)

// ItemPersistenceMaxLevel caps equipment inheritance at the S-rank tier.
const ItemPersistenceMaxLevel = 3

// ReincarnationItem is one catalog entry in the reincarnation shop
type ReincarnationItem struct {
	Key      ReincarnationKey
	Name     string
	BaseCost float64
	Desc     string
}

// ReincarnationCatalog lists the prestige shop in display order
var ReincarnationCatalog = []ReincarnationItem{
	{Key: XPBoost, Name: "Tome of Experience", BaseCost: 100, Desc: "Raises XP gained"},
	{Key: GoldBoost, Name: "Lucky Coin", BaseCost: 100, Desc: "Raises gold gained"},
	{Key: StoneBoost, Name: "Rite of Rebirth", BaseCost: 500, Desc: "Raises reincarnation stones gained"},
	{Key: StartFloor, Name: "Floor Skip", BaseCost: 500, Desc: "Start floor +100"},
	{Key: AutoPromote, Name: "Auto Promotion", BaseCost: 5000, Desc: "Promote automatically when the level requirement is met"},
	{Key: AutoEquip, Name: "Auto Equip", BaseCost: 5000, Desc: "Equip stronger drops automatically"},
	{Key: AutoMerchant, Name: "Auto Merchant", BaseCost: 1e7, Desc: "Enables automatic merchant purchases"},
	{Key: ItemFilter, Name: "Drop Filter", BaseCost: 1e6, Desc: "Choose which equipment slots may drop"},
	{Key: Farming, Name: "Auto Farming", BaseCost: 1e8, Desc: "Loop a chosen floor range automatically"},
	{Key: AutoEnhance, Name: "Auto Enhance", BaseCost: 1e7, Desc: "Synthesize picked-up equipment automatically"},
	{Key: ItemPersistence, Name: "Equipment Legacy", BaseCost: 0, Desc: "Carry high-rank equipment through reincarnation (Lv1:B, Lv2:A, Lv3:S)"},
	{Key: BaseAttackBoost, Name: "Hero's Soul", BaseCost: 1000, Desc: "Raises base attack"},
	{Key: EnemyHPDown, Name: "Enemy Frailty", BaseCost: 1000, Desc: "Lowers enemy HP"},
	{Key: SkillDamageBoost, Name: "Skill Mastery", BaseCost: 2000, Desc: "Raises skill damage multipliers"},
	{Key: PriceDiscount, Name: "Keen Haggler", BaseCost: 1000, Desc: "Lowers merchant prices"},
	{Key: Concentration, Name: "Concentration", BaseCost: 2e7, Desc: "On use: +30% skill trigger rate for a short time (60s cooldown)"},
	{Key: VitalSpot, Name: "Vital Spot", BaseCost: 2e7, Desc: "On use: +20% critical rate for a short time (60s cooldown)"},
	{Key: HyperSpeed, Name: "Hyper Speed", BaseCost: 5e7, Desc: "On use: 10x attacks per tick (60s cooldown)"},
	{Key: Awakening, Name: "Awakening", BaseCost: 1e9, Desc: "On use: double attack, +25% crit, +15% skill rate (60s cooldown)"},
}

// ReincarnationItemFor returns the catalog entry for a key
func ReincarnationItemFor(key ReincarnationKey) (ReincarnationItem, bool) {
	for _, item := range ReincarnationCatalog {
		if item.Key == key {
			return item, true
		}
	}
	return ReincarnationItem{}, false
}

// ReincarnationUpgrades holds one player's permanent upgrade levels
type ReincarnationUpgrades struct {
	XPBoost          int `json:"xpBoost"`
	GoldBoost        int `json:"goldBoost"`
	StoneBoost       int `json:"stoneBoost"`
	StartFloor       int `json:"startFloor"`
	AutoPromote      int `json:"autoPromote"`
	AutoEquip        int `json:"autoEquip"`
	AutoMerchant     int `json:"autoMerchant"`
	ItemFilter       int `json:"itemFilter"`
	Farming          int `json:"farming"`
	AutoEnhance      int `json:"autoEnhance"`
	ItemPersistence  int `json:"itemPersistence"`
	BaseAttackBoost  int `json:"baseAttackBoost"`
	EnemyHPDown      int `json:"enemyHpDown"`
	SkillDamageBoost int `json:"skillDamageBoost"`
	PriceDiscount    int `json:"priceDiscount"`
	Concentration    int `json:"concentration"`
	VitalSpot        int `json:"vitalSpot"`
	HyperSpeed       int `json:"hyperSpeed"`
	Awakening        int `json:"awakening"`
}

// Level returns the level of one upgrade
func (r *ReincarnationUpgrades) Level(key ReincarnationKey) int {
	switch key {
	case XPBoost:
		return r.XPBoost
	case GoldBoost:
		return r.GoldBoost
	case StoneBoost:
		return r.StoneBoost
	case StartFloor:
		return r.StartFloor
	case AutoPromote:
		return r.AutoPromote
	case AutoEquip:
		return r.AutoEquip
	case AutoMerchant:
		return r.AutoMerchant
	case ItemFilter:
		return r.ItemFilter
	case Farming:
		return r.Farming
	case AutoEnhance:
		return r.AutoEnhance
	case ItemPersistence:
		return r.ItemPersistence
	case BaseAttackBoost:
		return r.BaseAttackBoost
	case EnemyHPDown:
		return r.EnemyHPDown
	case SkillDamageBoost:
		return r.SkillDamageBoost
	case PriceDiscount:
		return r.PriceDiscount
	case Concentration:
		return r.Concentration
	case VitalSpot:
		return r.VitalSpot
	case HyperSpeed:
		return r.HyperSpeed
	case Awakening:
		return r.Awakening
	default:
		return 0
	}
}

// SetLevel sets the level of one upgrade
func (r *ReincarnationUpgrades) SetLevel(key ReincarnationKey, level int) {
	switch key {
	case XPBoost:
		r.XPBoost = level
	case GoldBoost:
		r.GoldBoost = level
	case StoneBoost:
		r.StoneBoost = level
	case StartFloor:
		r.StartFloor = level
	case AutoPromote:
		r.AutoPromote = level
	case AutoEquip:
		r.AutoEquip = level
	case AutoMerchant:
		r.AutoMerchant = level
	case ItemFilter:
		r.ItemFilter = level
	case Farming:
		r.Farming = level
	case AutoEnhance:
		r.AutoEnhance = level
	case ItemPersistence:
		r.ItemPersistence = level
	case BaseAttackBoost:
		r.BaseAttackBoost = level
	case EnemyHPDown:
		r.EnemyHPDown = level
	case SkillDamageBoost:
		r.SkillDamageBoost = level
	case PriceDiscount:
		r.PriceDiscount = level
	case Concentration:
		r.Concentration = level
	case VitalSpot:
		r.VitalSpot = level
	case HyperSpeed:
		r.HyperSpeed = level
	case Awakening:
		r.Awakening = level
	}
}

// AtCap returns true when an upgrade cannot be leveled further
func (r *ReincarnationUpgrades) AtCap(key ReincarnationKey) bool {
	return key == ItemPersistence && r.ItemPersistence >= ItemPersistenceMaxLevel
}

// ReincAttackBonus is flat attack from Hero's Soul: Lv*(Lv+1)*50
func ReincAttackBonus(level int) float64 {
	return Quad(level) * 50
}

// GainBoost converts an XP/gold/stone boost level into a multiplier:
// 1 + Lv*(Lv+1)/100
func GainBoost(level int) float64 {
	return 1 + Quad(level)/100
}

// SkillDamageMultiplier scales all skill damage multipliers:
// 1 + Lv*(Lv+1)*5%
func SkillDamageMultiplier(level int) float64 {
	return 1 + Quad(level)*5/100
}
