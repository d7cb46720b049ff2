package strategy

import "fmt"

// actionsFor returns the action template for a threat level, ordered by
// ascending priority. The species common name is woven into deterrent
// descriptions; withFlock appends the precautionary delay on medium threats.
func actionsFor(level ThreatLevel, commonName string, withFlock bool) []Action {
	switch level {
	case ThreatCritical:
		return criticalThreatActions()
	case ThreatHigh:
		return highThreatActions(commonName)
	case ThreatMedium:
		return mediumThreatActions(commonName, withFlock)
	default:
		return lowThreatActions()
	}
}

func lowThreatActions() []Action {
	return []Action{
		{
			Type:               ActionMonitor,
			Priority:           1,
			Description:        "Continue passive monitoring with standard sensors",
			EstimatedDuration:  15,
			ResourcesRequired:  []string{"audio_sensors", "visual_monitoring"},
			SuccessProbability: 0.9,
			RiskAssessment:     "Minimal risk - routine monitoring sufficient",
			Automated:          true,
		},
		{
			Type:               ActionSoundDeterrent,
			Priority:           2,
			Description:        "Gentle sound deterrent if bird approaches critical zones",
			EstimatedDuration:  2,
			ResourcesRequired:  []string{"speaker_system"},
			SuccessProbability: 0.7,
			RiskAssessment:     "Low risk - gentle deterrent should be sufficient",
			Automated:          true,
		},
	}
}

func mediumThreatActions(commonName string, withFlock bool) []Action {
	actions := []Action{
		{
			Type:               ActionSoundDeterrent,
			Priority:           1,
			Description:        fmt.Sprintf("Deploy predator sound deterrent optimized for %s", commonName),
			EstimatedDuration:  5,
			ResourcesRequired:  []string{"speaker_system", "predator_sounds"},
			SuccessProbability: 0.8,
			RiskAssessment:     "Medium risk - sound deterrent should be effective",
			Automated:          true,
		},
		{
			Type:               ActionMonitor,
			Priority:           2,
			Description:        "Enhanced monitoring with increased sensor sensitivity",
			EstimatedDuration:  10,
			ResourcesRequired:  []string{"audio_sensors", "visual_monitoring", "radar"},
			SuccessProbability: 0.85,
			RiskAssessment:     "Essential for tracking bird response to deterrent",
			Automated:          true,
		},
	}

	if withFlock {
		actions = append(actions, Action{
			Type:               ActionDelay,
			Priority:           3,
			Description:        "Consider brief operational delay if deterrent ineffective",
			EstimatedDuration:  3,
			ResourcesRequired:  []string{"air_traffic_control"},
			SuccessProbability: 0.95,
			RiskAssessment:     "Precautionary delay to prevent flock collision",
			Automated:          false,
		})
	}

	return actions
}

func highThreatActions(commonName string) []Action {
	return []Action{
		{
			Type:               ActionSoundDeterrent,
			Priority:           1,
			Description:        fmt.Sprintf("Immediate intensive predator sound deployment for %s", commonName),
			EstimatedDuration:  3,
			ResourcesRequired:  []string{"speaker_system", "predator_sounds"},
			SuccessProbability: 0.75,
			RiskAssessment:     "High urgency - immediate deterrent required",
			Automated:          true,
		},
		{
			Type:               ActionDelay,
			Priority:           2,
			Description:        "Implement operational delay until threat clears",
			EstimatedDuration:  10,
			ResourcesRequired:  []string{"air_traffic_control", "operations_team"},
			SuccessProbability: 0.9,
			RiskAssessment:     "Necessary precaution for high-risk scenario",
			Automated:          false,
		},
		{
			Type:               ActionRedirect,
			Priority:           3,
			Description:        "Prepare alternative routing if delay extends",
			EstimatedDuration:  15,
			ResourcesRequired:  []string{"air_traffic_control", "flight_planning"},
			SuccessProbability: 0.8,
			RiskAssessment:     "Contingency plan for extended bird presence",
			Automated:          false,
		},
	}
}

func criticalThreatActions() []Action {
	return []Action{
		{
			Type:               ActionEmergencyStop,
			Priority:           1,
			Description:        "Immediate emergency stop of all runway operations",
			EstimatedDuration:  1,
			ResourcesRequired:  []string{"emergency_protocols", "all_personnel"},
			SuccessProbability: 0.99,
			RiskAssessment:     "Critical - immediate action required",
			Automated:          true,
		},
		{
			Type:               ActionSoundDeterrent,
			Priority:           2,
			Description:        "Maximum intensity predator sound deployment",
			EstimatedDuration:  5,
			ResourcesRequired:  []string{"speaker_system", "predator_sounds"},
			SuccessProbability: 0.7,
			RiskAssessment:     "Emergency deterrent - all available resources",
			Automated:          true,
		},
		{
			Type:               ActionEvacuate,
			Priority:           3,
			Description:        "Evacuate aircraft from immediate danger zone",
			EstimatedDuration:  20,
			ResourcesRequired:  []string{"ground_crew", "emergency_vehicles"},
			SuccessProbability: 0.95,
			RiskAssessment:     "Essential for preventing catastrophic collision",
			Automated:          false,
		},
	}
}
