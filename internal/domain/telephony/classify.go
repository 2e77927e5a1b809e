package telephony

import "github.com/diillson/cdr-billing/internal/domain/entity"

// IsTollFree reports whether raw belongs to a toll-free NPA.
func IsTollFree(raw string) bool {
	_, ok := tollFree[AreaCode(raw)]
	return ok
}

// StateOf returns the two-letter state or territory of raw, or "" if the NPA is unmapped.
func StateOf(raw string) string {
	return npaToState[AreaCode(raw)]
}

// Classify assigns a call between source and destination to a jurisdiction.
// Toll-free wins over everything, including endpoints with no known state.
func Classify(source, destination string) entity.Jurisdiction {
	if IsTollFree(source) || IsTollFree(destination) {
		return entity.TollFree
	}

	src, dst := StateOf(source), StateOf(destination)
	if src == "" || dst == "" {
		return entity.Unknown
	}
	if src == dst {
		return entity.Intrastate
	}
	return entity.Interstate
}
