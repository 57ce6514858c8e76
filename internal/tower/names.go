package tower

// Archetype is one entry in the repeating enemy or boss tables.
type Archetype struct {
	Name string
	HP   float64
	Gold float64
	XP   float64
}

// enemyTypes cycles every 20 floors, one archetype per 2 floors.
var enemyTypes = []Archetype{
	{Name: "Slime", HP: 40, Gold: 2, XP: 10},
	{Name: "Goblin", HP: 80, Gold: 4, XP: 15},
	{Name: "Wolf", HP: 120, Gold: 6, XP: 20},
	{Name: "Orc", HP: 200, Gold: 10, XP: 35},
	{Name: "Skeleton", HP: 300, Gold: 15, XP: 50},
	{Name: "Ghost", HP: 400, Gold: 20, XP: 70},
	{Name: "Golem", HP: 1000, Gold: 50, XP: 150},
	{Name: "Wyvern", HP: 1600, Gold: 100, XP: 300},
	{Name: "Dragon", HP: 4000, Gold: 250, XP: 800},
	{Name: "Demon", HP: 10000, Gold: 500, XP: 2000},
}

// bossTypes holds the ten hand-authored boss archetypes, keyed by position
// in the 100-floor cycle (10, 20, ..., 100).
var bossTypes = map[int]Archetype{
	10:  {Name: "Giant Slime", HP: 1000, Gold: 100, XP: 300},
	20:  {Name: "Goblin King", HP: 2400, Gold: 250, XP: 800},
	30:  {Name: "Fenrir", HP: 6000, Gold: 500, XP: 1500},
	40:  {Name: "High Orc General", HP: 12000, Gold: 1000, XP: 3000},
	50:  {Name: "Lich Lord", HP: 30000, Gold: 2500, XP: 8000},
	60:  {Name: "Ancient Dragon", HP: 100000, Gold: 10000, XP: 30000},
	70:  {Name: "Arch Demon", HP: 400000, Gold: 40000, XP: 100000},
	80:  {Name: "Chaos Knight", HP: 2000000, Gold: 150000, XP: 500000},
	90:  {Name: "Shadow of the Demon King", HP: 10000000, Gold: 500000, XP: 2000000},
	100: {Name: "Demon King", HP: 100000000, Gold: 5000000, XP: 20000000},
}

// BossArchetype returns the boss table entry for a boss floor, looking up
// the position within the 100-floor cycle.
func BossArchetype(floor int) Archetype {
	key := (floor-1)%BossCycle + 1
	if archetype, ok := bossTypes[key]; ok {
		return archetype
	}
	return bossTypes[100]
}
