// Package job defines the job ladder the player climbs by leveling.
package job

import (
	"fmt"
	"strings"
)

// Job represents a player job on the promotion ladder
type Job string

const (
	Novice            Job = "novice"
	Warrior           Job = "warrior"
	Paladin           Job = "paladin"
	PaladinKing       Job = "paladin_king"
	MagicSwordsman    Job = "magic_swordsman"
	MagicWarrior      Job = "magic_warrior"
	GreatMagicWarrior Job = "great_magic_warrior"
	GodMagicWarrior   Job = "god_magic_warrior"
	UltimateWarrior   Job = "ultimate_warrior"
	LegendaryHero     Job = "legendary_hero"
)

// Order lists all jobs from lowest to highest. Promotion always moves one
// step along this list.
var Order = []Job{
	Novice,
	Warrior,
	Paladin,
	PaladinKing,
	MagicSwordsman,
	MagicWarrior,
	GreatMagicWarrior,
	GodMagicWarrior,
	UltimateWarrior,
	LegendaryHero,
}

// IsValid returns true if the job is a known job
func (j Job) IsValid() bool {
	_, ok := Definitions[j]
	return ok
}

// String returns the display name of the job
func (j Job) String() string {
	if def, ok := Definitions[j]; ok {
		return def.DisplayName
	}
	return "Unknown"
}

// ParseJob parses a string into a Job, case-insensitive
func ParseJob(s string) (Job, error) {
	j := Job(strings.ToLower(strings.TrimSpace(s)))
	if !j.IsValid() {
		return "", fmt.Errorf("unknown job: %s", s)
	}
	return j, nil
}

// Index returns the position of the job on the ladder, or -1 if unknown
func Index(j Job) int {
	for i, candidate := range Order {
		if candidate == j {
			return i
		}
	}
	return -1
}

// Next returns the next job on the ladder, or "" if j is the last (or unknown)
func Next(j Job) Job {
	idx := Index(j)
	if idx < 0 || idx >= len(Order)-1 {
		return ""
	}
	return Order[idx+1]
}

// Definition contains the static definition for a job
type Definition struct {
	Name        Job
	DisplayName string
	Multiplier  float64 // Attack multiplier applied to the whole damage base
	UnlockLevel int     // Job level required in the previous job to promote
	Skills      []Skill // Accumulated: includes every lower job's skills
}

// Multiplier returns the attack multiplier for a job, 1.0 for unknown jobs
func Multiplier(j Job) float64 {
	if def, ok := Definitions[j]; ok {
		return def.Multiplier
	}
	return 1.0
}

// UnlockLevel returns the job level required to promote into j
func UnlockLevel(j Job) int {
	if def, ok := Definitions[j]; ok {
		return def.UnlockLevel
	}
	return 0
}

// Skills returns the skill list for a job. Higher jobs keep every skill
// learned by the jobs below them.
func Skills(j Job) []Skill {
	if def, ok := Definitions[j]; ok {
		return def.Skills
	}
	return nil
}

// Definitions contains all job definitions
var Definitions = map[Job]*Definition{
	Novice: {
		Name:        Novice,
		DisplayName: "Novice",
		Multiplier:  1.0,
		UnlockLevel: 0,
		Skills:      SkillList[:1],
	},
	Warrior: {
		Name:        Warrior,
		DisplayName: "Warrior",
		Multiplier:  1.5,
		UnlockLevel: 10,
		Skills:      SkillList[:2],
	},
	Paladin: {
		Name:        Paladin,
		DisplayName: "Paladin",
		Multiplier:  2.5,
		UnlockLevel: 20,
		Skills:      SkillList[:3],
	},
	PaladinKing: {
		Name:        PaladinKing,
		DisplayName: "Paladin King",
		Multiplier:  4.0,
		UnlockLevel: 30,
		Skills:      SkillList[:4],
	},
	MagicSwordsman: {
		Name:        MagicSwordsman,
		DisplayName: "Magic Swordsman",
		Multiplier:  7.0,
		UnlockLevel: 40,
		Skills:      SkillList[:5],
	},
	MagicWarrior: {
		Name:        MagicWarrior,
		DisplayName: "Magic Warrior",
		Multiplier:  12.0,
		UnlockLevel: 50,
		Skills:      SkillList[:6],
	},
	GreatMagicWarrior: {
		Name:        GreatMagicWarrior,
		DisplayName: "Great Magic Warrior",
		Multiplier:  20.0,
		UnlockLevel: 60,
		Skills:      SkillList[:7],
	},
	GodMagicWarrior: {
		Name:        GodMagicWarrior,
		DisplayName: "God Magic Warrior",
		Multiplier:  50.0,
		UnlockLevel: 70,
		Skills:      SkillList[:8],
	},
	UltimateWarrior: {
		Name:        UltimateWarrior,
		DisplayName: "Ultimate Warrior",
		Multiplier:  150.0,
		UnlockLevel: 80,
		Skills:      SkillList[:9],
	},
	LegendaryHero: {
		Name:        LegendaryHero,
		DisplayName: "Legendary Hero",
		Multiplier:  500.0,
		UnlockLevel: 100,
		Skills:      SkillList[:10],
	},
}
