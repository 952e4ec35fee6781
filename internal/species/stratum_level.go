package species

import "github.com/appengine-ltd/flamepath/internal/stratumlevel"

// StratumLevel identifies a horizontal vegetation layer. It is an alias
// of stratumlevel.StratumLevel so the flame package (whose
// PreHeatingFlame records the level it was produced at) and the species
// package can share one type without an import cycle between them.
type StratumLevel = stratumlevel.StratumLevel

const (
	NearSurface = stratumlevel.NearSurface
	Elevated    = stratumlevel.Elevated
	MidStorey   = stratumlevel.MidStorey
	Canopy      = stratumlevel.Canopy
)
