package job

// Skill is a passive combat skill that may trigger on any attack
type Skill struct {
	Name             string
	Description      string
	TriggerRate      float64 // Base chance per attack, 0.0 - 1.0
	DamageMultiplier float64
}

// SkillList holds every skill in unlock order. A job's skill set is a prefix
// of this list, so promoted players never lose lower-job skills.
var SkillList = []Skill{
	{Name: "Slash", Description: "A basic sword strike", TriggerRate: 0.2, DamageMultiplier: 1.5},
	{Name: "Power Attack", Description: "A blow with full force behind it", TriggerRate: 0.15, DamageMultiplier: 2.0},
	{Name: "Holy Strike", Description: "A strike of sacred light", TriggerRate: 0.1, DamageMultiplier: 3.0},
	{Name: "Divine Burst", Description: "A holy explosion", TriggerRate: 0.08, DamageMultiplier: 4.5},
	{Name: "Meteor Break", Description: "A slash like a falling meteor", TriggerRate: 0.05, DamageMultiplier: 6.0},
	{Name: "Galaxy Slash", Description: "A cut that splits the galaxy", TriggerRate: 0.04, DamageMultiplier: 8.0},
	{Name: "Void Cutter", Description: "Tears through the void itself", TriggerRate: 0.03, DamageMultiplier: 12.0},
	{Name: "God Blow", Description: "A blow from the gods", TriggerRate: 0.02, DamageMultiplier: 20.0},
	{Name: "Infinity Edge", Description: "The endless blade", TriggerRate: 0.01, DamageMultiplier: 50.0},
	{Name: "Legend Cross", Description: "The cross of legend", TriggerRate: 0.01, DamageMultiplier: 100.0},
}
