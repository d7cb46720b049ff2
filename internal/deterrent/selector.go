package deterrent

import (
	"math/rand"
	"strings"

	"github.com/strikewarn/strikewarn-go/internal/errors"
)

// Bird categories for predator sound mapping.
const (
	categoryCorvids    = "corvids"
	categoryPasserines = "passerines"
	categoryRaptors    = "raptors"
	categoryWaterfowl  = "waterfowl"
	categoryDefault    = "default"
)

// categoryKeywords maps common-name substrings to bird categories.
var categoryKeywords = map[string][]string{
	categoryCorvids:    {"crow", "raven", "magpie", "jay"},
	categoryPasserines: {"sparrow", "finch", "warbler", "robin"},
	categoryRaptors:    {"hawk", "eagle", "falcon", "kestrel"},
	categoryWaterfowl:  {"duck", "goose", "swan", "gull"},
}

// predatorMappings lists effective predator sounds per bird category.
var predatorMappings = map[string][]string{
	categoryCorvids:    {"hawk_screech", "eagle_cry", "falcon_call"},
	categoryPasserines: {"cat_meow", "snake_hiss", "hawk_screech"},
	categoryRaptors:    {"owl_hoot", "hawk_screech"},
	categoryWaterfowl:  {"fox_bark", "coyote_howl", "hawk_screech"},
	categoryDefault:    {"hawk_screech", "eagle_cry", "owl_hoot"},
}

// aggressiveSounds is the subset preferred against territorial or aggressive
// behavior.
var aggressiveSounds = map[string]bool{
	"hawk_screech": true,
	"eagle_cry":    true,
	"falcon_call":  true,
}

// ErrEmptyLibrary is returned when selection is attempted with no loaded
// sounds.
var ErrEmptyLibrary = errors.Newf("sound library is empty").
	Component("deterrent").
	Category(errors.CategorySoundLibrary).
	Build()

// SelectSound picks the most effective predator sound for the given bird.
// The species common name maps to a category, the category to a candidate
// list filtered down to loaded sounds; territorial or aggressive behavior
// narrows the list to the aggressive subset when one is available. When no
// mapped candidate is loaded, any loaded sound qualifies. The final pick
// among candidates is random.
func SelectSound(library Library, commonName, behavior string) (string, error) {
	loaded := library.ListIDs()
	if len(loaded) == 0 {
		return "", ErrEmptyLibrary
	}

	category := categorize(commonName)
	mapped := predatorMappings[category]

	candidates := make([]string, 0, len(mapped))
	for _, id := range mapped {
		if _, ok := library.Get(id); ok {
			candidates = append(candidates, id)
		}
	}
	if len(candidates) == 0 {
		candidates = loaded
	}

	behaviorLower := strings.ToLower(behavior)
	if strings.Contains(behaviorLower, "territorial") || strings.Contains(behaviorLower, "aggressive") {
		aggressive := make([]string, 0, len(candidates))
		for _, id := range candidates {
			if aggressiveSounds[id] {
				aggressive = append(aggressive, id)
			}
		}
		if len(aggressive) > 0 {
			candidates = aggressive
		}
	}

	return candidates[rand.Intn(len(candidates))], nil
}

// categorize maps a common name to a bird category by keyword match.
func categorize(commonName string) string {
	name := strings.ToLower(commonName)
	for _, category := range []string{categoryCorvids, categoryPasserines, categoryRaptors, categoryWaterfowl} {
		for _, keyword := range categoryKeywords[category] {
			if strings.Contains(name, keyword) {
				return category
			}
		}
	}
	return categoryDefault
}
