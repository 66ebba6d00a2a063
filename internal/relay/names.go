package relay

import (
	"math/rand/v2"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	nameAdjectives = []string{
		"amber", "brave", "clever", "dusty", "eager", "fuzzy", "gentle", "hasty",
		"icy", "jolly", "keen", "lucky", "mellow", "nimble", "odd", "plucky",
		"quiet", "rusty", "swift", "tidy", "umber", "vivid", "witty", "zesty",
	}
	nameCreatures = []string{
		"badger", "crane", "dingo", "egret", "ferret", "gecko", "heron", "ibis",
		"jackal", "koala", "lemur", "marmot", "newt", "otter", "puffin", "quokka",
		"raven", "stoat", "tapir", "urchin", "vole", "walrus", "yak", "zebu",
	}
)

// GenerateUsername returns a title-cased "Adjective Creature" name.
func GenerateUsername(rng *rand.Rand) string {
	adj := nameAdjectives[rng.IntN(len(nameAdjectives))]
	creature := nameCreatures[rng.IntN(len(nameCreatures))]
	// A Caser holds state, so each call gets its own.
	return cases.Title(language.English).String(adj + " " + creature)
}
