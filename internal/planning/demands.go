package planning

import "strings"

// demandRule maps a keyword set to a fixed demand split. Rules are tested
// in slice order and the first hit wins, so endurance beats everything.
type demandRule struct {
	keywords []string
	demands  SportEnergyDemands
}

var demandRules = []demandRule{
	{
		keywords: []string{
			"marathon", "running", "jogging", "cycling", "triathlon", "swimming",
			"endurance", "ultra", "rowing", "cross-country", "5k", "10k",
		},
		demands: SportEnergyDemands{
			Aerobic: 85, Alactic: 5, Lactic: 10,
			Category:  CategoryEndurance,
			Duration:  "long (30+ minutes continuous)",
			Intensity: "low to moderate, sustained",
		},
	},
	{
		keywords: []string{
			"powerlifting", "weightlifting", "strength", "power", "sprint",
			"bodybuilding", "strongman", "throwing", "jumping", "muscle",
		},
		demands: SportEnergyDemands{
			Aerobic: 10, Alactic: 70, Lactic: 20,
			Category:  CategoryStrengthPower,
			Duration:  "very short (under 15 seconds per effort)",
			Intensity: "maximal",
		},
	},
	{
		keywords: []string{
			"boxing", "mma", "martial arts", "wrestling", "judo", "jiu-jitsu",
			"bjj", "kickboxing", "muay thai", "karate", "taekwondo", "combat",
		},
		demands: SportEnergyDemands{
			Aerobic: 20, Alactic: 50, Lactic: 30,
			Category:  CategoryCombat,
			Duration:  "rounds of 2-5 minutes",
			Intensity: "high with explosive bursts",
		},
	},
	{
		keywords: []string{
			"soccer", "football", "basketball", "hockey", "rugby", "volleyball",
			"handball", "lacrosse", "team",
		},
		demands: SportEnergyDemands{
			Aerobic: 25, Alactic: 40, Lactic: 35,
			Category:  CategoryTeam,
			Duration:  "intermittent over 60-90 minutes",
			Intensity: "variable, repeated sprints",
		},
	},
	{
		keywords: []string{
			"tennis", "golf", "climbing", "gymnastics", "badminton", "squash",
			"skiing", "surfing", "skateboarding", "dance", "skill",
		},
		demands: SportEnergyDemands{
			Aerobic: 30, Alactic: 40, Lactic: 30,
			Category:  CategorySkill,
			Duration:  "short technical efforts with pauses",
			Intensity: "moderate with precise bursts",
		},
	},
}

var mixedDemands = SportEnergyDemands{
	Aerobic: 60, Alactic: 20, Lactic: 20,
	Category:  CategoryMixed,
	Duration:  "varied",
	Intensity: "moderate",
}

// ClassifyDemands maps a free-text goal and optional sport to an energy
// demand split. Matching is case-insensitive substring search over both
// strings; an unmatched description gets the mixed default.
func ClassifyDemands(goal, sport string) SportEnergyDemands {
	goal, sport = strings.ToLower(goal), strings.ToLower(sport)
	for _, rule := range demandRules {
		for _, kw := range rule.keywords {
			if strings.Contains(goal, kw) || strings.Contains(sport, kw) {
				return rule.demands
			}
		}
	}
	return mixedDemands
}
