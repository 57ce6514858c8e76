package equipment

// equipNames holds the per-slot name tables, one entry per tier. Tiers past
// the table length wrap around via modulo.
var equipNames = map[Slot][]string{
	Weapon: {
		"Wooden Stick", "Copper Sword", "Iron Sword", "Steel Sword",
		"Mithril Sword", "Orichalcum Sword", "Dragon Slayer",
		"Cursed Blade Gram", "Holy Sword Excalibur", "Divine Sword Ragnarok",
	},
	Helm: {
		"Cloth Cap", "Leather Cap", "Iron Helm", "Steel Helm",
		"Mithril Helm", "Knight's Helm", "Dragoon Helm",
		"Paladin's Helm", "King's Crown", "Divine Crown",
	},
	Armor: {
		"Cloth Garb", "Leather Armor", "Chainmail", "Iron Armor",
		"Steel Armor", "Mithril Armor", "Dragon Mail",
		"Sacred Armor", "Hero's Armor", "Divine Armor",
	},
	Shield: {
		"Pot Lid", "Wooden Shield", "Leather Shield", "Iron Shield",
		"Steel Shield", "Mithril Shield", "Hero's Shield",
		"Aegis", "Pridwen", "Absolute Defense",
	},
}

// NameForTier returns the item name for a slot and tier
func NameForTier(slot Slot, tier int) string {
	names := equipNames[slot]
	if len(names) == 0 {
		return string(slot)
	}
	if tier < 1 {
		tier = 1
	}
	return names[(tier-1)%len(names)]
}
