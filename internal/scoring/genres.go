package scoring

import (
	"sort"
	"strings"
)

// genreFamilies maps named subgenres onto a small set of families. Kept as
// data so matching rules stay testable apart from the scoring flow.
var genreFamilies = map[string]string{
	"house":             "house",
	"deep house":        "house",
	"tech house":        "house",
	"progressive house": "house",
	"electro house":     "house",
	"future house":      "house",
	"bass house":        "house",
	"afro house":        "house",
	"tropical house":    "house",
	"disco house":       "house",

	"techno":           "techno",
	"melodic techno":   "techno",
	"minimal techno":   "techno",
	"hard techno":      "techno",
	"peak time techno": "techno",
	"detroit techno":   "techno",

	"trance":             "trance",
	"psytrance":          "trance",
	"progressive trance": "trance",
	"uplifting trance":   "trance",
	"vocal trance":       "trance",

	"dubstep":       "bass",
	"drum and bass": "bass",
	"drum & bass":   "bass",
	"dnb":           "bass",
	"trap":          "bass",
	"future bass":   "bass",
	"riddim":        "bass",
	"garage":        "bass",
	"uk garage":     "bass",
	"breakbeat":     "bass",
	"jungle":        "bass",

	"hip hop": "hip-hop",
	"hip-hop": "hip-hop",
	"rap":     "hip-hop",
	"r&b":     "hip-hop",
	"rnb":     "hip-hop",

	"pop":       "pop",
	"dance pop": "pop",
	"electropop": "pop",
	"synthpop":  "pop",
	"k-pop":     "pop",

	"rock":        "rock",
	"indie rock":  "rock",
	"alternative": "rock",
	"metal":       "rock",
	"punk":        "rock",

	"country":   "country",
	"folk":      "country",
	"americana": "country",
	"bluegrass": "country",

	"edm":         "electronic",
	"electronic":  "electronic",
	"electronica": "electronic",
	"dance":       "electronic",
	"ambient":     "electronic",
	"downtempo":   "electronic",
	"indie dance": "electronic",
}

// familyAffinity declares symmetric cross-family compatibility. Pairs are
// stored with family names in sorted order.
var familyAffinity = map[[2]string]float64{
	{"house", "techno"}:      0.4,
	{"house", "trance"}:      0.3,
	{"techno", "trance"}:     0.3,
	{"electronic", "house"}:  0.4,
	{"electronic", "techno"}: 0.4,
	{"electronic", "trance"}: 0.4,
	{"bass", "electronic"}:   0.3,
	{"bass", "house"}:        0.2,
	{"hip-hop", "pop"}:       0.3,
	{"pop", "rock"}:          0.2,
	{"country", "rock"}:      0.2,
}

// genreFamily resolves a raw genre string to its family, or "" when the
// genre is not in the table.
func genreFamily(genre string) string {
	return genreFamilies[strings.ToLower(strings.TrimSpace(genre))]
}

// affinity returns the declared cross-family compatibility for two
// families, or 0 when no pair is declared.
func affinity(famA, famB string) float64 {
	pair := [2]string{famA, famB}
	sort.Strings(pair[:])
	return familyAffinity[pair]
}
