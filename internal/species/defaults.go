package species

// defaultProfiles returns the built-in high-risk species catalog for Malaysian
// airport operations. Used when no catalog file is configured.
func defaultProfiles() []Profile {
	return []Profile{
		{
			ScientificName:   "Corvus splendens",
			CommonName:       "House Crow",
			BaseRisk:         0.9,
			FlockBehavior:    "highly_social",
			TerritorialCalls: []string{"caw", "rattle", "click"},
			AlarmPatterns:    []string{"rapid_succession", "pitch_variation"},
			FlightPattern:    "erratic_when_alarmed",
		},
		{
			ScientificName:   "Corvus macrorhynchos",
			CommonName:       "Large-billed Crow",
			BaseRisk:         0.8,
			FlockBehavior:    "family_groups",
			TerritorialCalls: []string{"deep_caw", "grunt", "whistle"},
			AlarmPatterns:    []string{"descending_pitch", "repeated_calls"},
			FlightPattern:    "coordinated_group_movement",
		},
		{
			ScientificName:   "Haliaeetus leucogaster",
			CommonName:       "White-bellied Sea Eagle",
			BaseRisk:         0.95,
			FlockBehavior:    "solitary_pairs",
			TerritorialCalls: []string{"harsh_bark", "whistle", "scream"},
			AlarmPatterns:    []string{"extended_calls", "circling_behavior"},
			FlightPattern:    "soaring_thermal_riding",
		},
		{
			ScientificName:   "Acridotheres javanicus",
			CommonName:       "Javan Myna",
			BaseRisk:         0.7,
			FlockBehavior:    "large_flocks",
			TerritorialCalls: []string{"chatter", "whistle", "click"},
			AlarmPatterns:    []string{"chorus_calling", "synchronized_movement"},
			FlightPattern:    "dense_group_formation",
		},
	}
}
