package entities

import (
	"strings"

	"github.com/rs/zerolog/log"
)

// OrganKey is one of the canonical organ identifiers understood by the body
// visualization. Keys appearing anywhere in an AnalysisResult must come from
// this set.
type OrganKey string

const (
	OrganBrain     OrganKey = "brain"
	OrganSinuses   OrganKey = "sinuses"
	OrganThroat    OrganKey = "throat"
	OrganLungs     OrganKey = "lungs"
	OrganBronchi   OrganKey = "bronchi"
	OrganHeart     OrganKey = "heart"
	OrganLiver     OrganKey = "liver"
	OrganStomach   OrganKey = "stomach"
	OrganKidney    OrganKey = "kidney"
	OrganIntestine OrganKey = "intestine"
	OrganPancreas  OrganKey = "pancreas"
	OrganBladder   OrganKey = "bladder"
)

// organAliases is the single source of truth for mapping free-form organ
// names from the model to canonical keys. The keys must stay in sync with the
// clip IDs used by the frontend organ SVG.
var organAliases = map[string]OrganKey{
	"brain":      OrganBrain,
	"lungs":      OrganLungs,
	"lung":       OrganLungs,
	"bronchi":    OrganBronchi,
	"bronchus":   OrganBronchi,
	"sinuses":    OrganSinuses,
	"sinus":      OrganSinuses,
	"throat":     OrganThroat,
	"heart":      OrganHeart,
	"liver":      OrganLiver,
	"stomach":    OrganStomach,
	"kidney":     OrganKidney,
	"kidneys":    OrganKidney,
	"intestine":  OrganIntestine,
	"intestines": OrganIntestine,
	"pancreas":   OrganPancreas,
	"bladder":    OrganBladder,
}

// CanonicalOrgan maps a single free-form organ name to its canonical key.
func CanonicalOrgan(name string) (OrganKey, bool) {
	key, ok := organAliases[strings.ToLower(strings.TrimSpace(name))]
	return key, ok
}

// NormalizeOrgans maps free-form organ names to canonical keys, preserving
// first-seen order and dropping later duplicates. Unrecognized names are
// dropped with a diagnostic log rather than an error.
func NormalizeOrgans(names []string) []OrganKey {
	seen := make(map[OrganKey]struct{}, len(names))
	normalized := make([]OrganKey, 0, len(names))

	for _, name := range names {
		key, ok := CanonicalOrgan(name)
		if !ok {
			log.Warn().Str("organ", name).Msg("unknown organ name from model")
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		normalized = append(normalized, key)
	}

	return normalized
}
