package entity

// Jurisdiction is the regulatory bucket a call or message falls into.
type Jurisdiction string

const (
	Interstate Jurisdiction = "interstate"
	Intrastate Jurisdiction = "intrastate"
	TollFree   Jurisdiction = "toll_free"
	Unknown    Jurisdiction = "unknown"
)

// Jurisdictions lists every bucket in reporting order.
var Jurisdictions = []Jurisdiction{Interstate, Intrastate, TollFree, Unknown}
