package api

import (
	"strconv"
	"strings"
)

// Experiments lists the repository's content experiments, split by state.
// Only running experiments take part in variation resolution.
type Experiments struct {
	Draft   []Experiment `json:"draft"`
	Running []Experiment `json:"running"`
}

// Experiment is an A/B content test. Each variation addresses its own ref,
// so serving a variation means querying with that ref in place of master.
type Experiment struct {
	ID         string      `json:"id"`
	GoogleID   string      `json:"googleId"`
	Name       string      `json:"name"`
	Variations []Variation `json:"variations"`
}

// Variation is one arm of an experiment.
type Variation struct {
	ID    string `json:"id"`
	Ref   string `json:"ref"`
	Label string `json:"label"`
}

// VariationRef resolves an experiment cookie to the ref of the variation it
// selects. The cookie value is the experiment's Google ID (or its own ID)
// and a variation index separated by "%20". Returns false when the cookie
// does not identify a variation of a running experiment.
func (e Experiments) VariationRef(cookie string) (string, bool) {
	expID, indexStr, found := strings.Cut(cookie, "%20")
	if !found {
		return "", false
	}
	index, err := strconv.Atoi(indexStr)
	if err != nil || index < 0 {
		return "", false
	}
	for _, exp := range e.Running {
		if exp.GoogleID != expID && exp.ID != expID {
			continue
		}
		if index >= len(exp.Variations) {
			return "", false
		}
		return exp.Variations[index].Ref, true
	}
	return "", false
}
