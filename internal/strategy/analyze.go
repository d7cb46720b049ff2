package strategy

import (
	"fmt"
	"strings"
	"time"

	"github.com/strikewarn/strikewarn-go/internal/analysis/intent"
	"github.com/strikewarn/strikewarn-go/internal/analysis/pattern"
	"github.com/strikewarn/strikewarn-go/internal/analysis/risk"
	"github.com/strikewarn/strikewarn-go/internal/history"
)

// Urgency score modifiers layered on top of the risk score.
const (
	highUrgencyBonus        = 0.2
	mediumUrgencyBonus      = 0.1
	flockUrgencyBonus       = 0.15
	territorialUrgencyBonus = 0.1
)

// Recurrence pattern labels for historical context.
const (
	recurrenceInsufficientData = "insufficient_data"
	recurrenceTimePattern      = "time_pattern_detected"
	recurrenceNoClearPattern   = "no_clear_pattern"
)

// situationAnalysis is the internal assessment a recommendation is built from.
type situationAnalysis struct {
	threat            ThreatLevel
	urgencyScore      float64
	complexityFactors []string
	timeOfDay         string
	migrationSeason   bool
	similarIncidents  int
	recurrence        string
}

// assessThreat buckets the operational threat. Flock communication alone is
// enough to force HIGH: a single strike is survivable, a flock strike is not.
func assessThreat(assessment risk.Assessment, p pattern.Pattern) ThreatLevel {
	switch {
	case assessment.RiskScore > 0.8 || assessment.AlertLevel == risk.AlertCritical:
		return ThreatCritical
	case assessment.RiskScore > 0.6 || assessment.AlertLevel == risk.AlertHigh || p.FlockCommunication:
		return ThreatHigh
	case assessment.RiskScore > 0.4 || assessment.AlertLevel == risk.AlertMedium:
		return ThreatMedium
	default:
		return ThreatLow
	}
}

// urgencyScore layers pattern-derived modifiers on the risk score, capped at 1.
func urgencyScore(assessment risk.Assessment, p pattern.Pattern) float64 {
	score := assessment.RiskScore

	switch p.Urgency {
	case pattern.UrgencyHigh, pattern.UrgencyCritical:
		score += highUrgencyBonus
	case pattern.UrgencyMedium:
		score += mediumUrgencyBonus
	}
	if p.FlockCommunication {
		score += flockUrgencyBonus
	}
	if p.TerritorialBehavior {
		score += territorialUrgencyBonus
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}

// complexityFactors names the conditions that complicate the response. Each
// factor later reduces recommendation confidence.
func complexityFactors(p pattern.Pattern, pred intent.Prediction) []string {
	var factors []string

	if p.FlockCommunication {
		factors = append(factors, "Flock coordination detected")
	}
	if p.TerritorialBehavior {
		factors = append(factors, "Territorial behavior - birds may return")
	}
	if p.AlarmSignal {
		factors = append(factors, "Alarm signals - potential for mass movement")
	}

	switch pred.PrimaryIntent {
	case intent.TerritoryDefense:
		factors = append(factors, "Territory defense - persistent threat")
	case intent.FlockGathering:
		factors = append(factors, "Flock gathering - increasing numbers expected")
	}

	return factors
}

// timeOfDay buckets the hour into dawn, dusk, or day.
func timeOfDay(now time.Time) string {
	hour := now.Hour()
	switch {
	case hour >= 5 && hour <= 7:
		return "dawn"
	case hour >= 17 && hour <= 19:
		return "dusk"
	default:
		return "day"
	}
}

// isMigrationSeason reports whether the month falls in spring or fall
// migration.
func isMigrationSeason(now time.Time) bool {
	switch now.Month() {
	case time.March, time.April, time.May,
		time.September, time.October, time.November:
		return true
	default:
		return false
	}
}

// historicalContext mines the response log for incidents involving the same
// species and looks for a same-hour clustering pattern.
func historicalContext(responseLog *history.Store[ResponseEntry], scientificName string) (incidents int, recurrence string) {
	if responseLog == nil {
		return 0, recurrenceInsufficientData
	}

	var hours []int
	for _, entry := range responseLog.Recent(responseLog.Len()) {
		if entry.Species == scientificName {
			incidents++
			hours = append(hours, entry.Timestamp.Hour())
		}
	}

	if incidents < 2 {
		return incidents, recurrenceInsufficientData
	}

	distinct := make(map[int]struct{}, len(hours))
	for _, h := range hours {
		distinct[h] = struct{}{}
	}
	if len(distinct) <= 2 {
		return incidents, recurrenceTimePattern
	}
	return incidents, recurrenceNoClearPattern
}

// confidenceScore combines the base confidence with the average strategy
// success probability, penalized per complexity factor and rewarded when
// historical data backs the plan.
func confidenceScore(analysis situationAnalysis, actions []Action) float64 {
	base := 0.8
	if analysis.similarIncidents > 5 {
		base += 0.1
	}

	reduction := float64(len(analysis.complexityFactors)) * 0.1
	if reduction > 0.3 {
		reduction = 0.3
	}

	avgSuccess := 0.0
	for _, a := range actions {
		avgSuccess += a.SuccessProbability
	}
	avgSuccess /= float64(len(actions))

	score := (base+avgSuccess)/2 - reduction
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// successMetrics summarizes the plan quality across success probability,
// automation, resource usage, and total time.
func successMetrics(actions []Action) SuccessMetrics {
	n := float64(len(actions))
	var totalSuccess, automated, resources, duration float64
	for _, a := range actions {
		totalSuccess += a.SuccessProbability
		if a.Automated {
			automated++
		}
		resources += float64(len(a.ResourcesRequired))
		duration += float64(a.EstimatedDuration)
	}

	timeEfficiency := 1.0 - duration/60
	if timeEfficiency < 0 {
		timeEfficiency = 0
	}

	return SuccessMetrics{
		OverallSuccessProbability: totalSuccess / n,
		AutomationCoverage:        automated / n,
		ResourceEfficiency:        1.0 - resources/(n*10),
		TimeEfficiency:            timeEfficiency,
	}
}

// reasoning renders the one-paragraph explanation attached to a
// recommendation.
func reasoning(commonName string, analysis situationAnalysis, actions []Action) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Based on %s detection with %s threat level and urgency score of %.2f, ",
		commonName, analysis.threat, analysis.urgencyScore)

	if len(analysis.complexityFactors) > 0 {
		shown := analysis.complexityFactors
		if len(shown) > 2 {
			shown = shown[:2]
		}
		fmt.Fprintf(&b, "complicated by: %s. ", strings.Join(shown, ", "))
	}

	fmt.Fprintf(&b, "Recommended %d strategic actions prioritizing %s with %.0f%% success probability.",
		len(actions), strings.ToLower(string(actions[0].Type)), actions[0].SuccessProbability*100)

	return b.String()
}

// formatAnalysis renders the situation summary for display.
func formatAnalysis(analysis situationAnalysis) string {
	return fmt.Sprintf(
		"Threat Level: %s | Urgency Score: %.2f | Complexity Factors: %d | Time of Day: %s | Migration Season: %t | Similar Incidents: %d (%s)",
		analysis.threat,
		analysis.urgencyScore,
		len(analysis.complexityFactors),
		analysis.timeOfDay,
		analysis.migrationSeason,
		analysis.similarIncidents,
		analysis.recurrence,
	)
}
