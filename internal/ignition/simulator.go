package ignition

import (
	"math"

	"github.com/appengine-ltd/flamepath/internal/flame"
	"github.com/appengine-ltd/flamepath/internal/geom"
	"github.com/appengine-ltd/flamepath/internal/numeric"
	"github.com/appengine-ltd/flamepath/internal/settings"
	"github.com/appengine-ltd/flamepath/internal/species"
)

// Params bundles everything an ignition-path simulation needs to run:
// the species and context it runs for, the flames it is exposed to,
// and the model settings governing its time step and thresholds.
type Params struct {
	RunType      RunType
	StratumLevel species.StratumLevel
	Species      species.Species
	Settings     settings.ModelSettings

	Slope       float64
	AmbientTemp float64

	IncidentFlames    []flame.Flame
	PreHeatingFlames  []flame.PreHeatingFlame
	PreHeatingEndTime *float64

	// CanopyHeatingDistance is the along-wind distance beyond which a
	// canopy stratum run switches to the reduced flame residence time
	// (§4.4.1). Ignored for every other stratum level.
	CanopyHeatingDistance float64

	StratumWindSpeed float64
	InitialPoint     geom.Coord
}

type sim struct {
	p     Params
	grass bool

	curPoint    geom.Coord
	plantFlames []flame.Flame
	segments    []IgnitedSegment
	preIgnition []PreIgnitionData
	t           int

	// firstIgnitionStep is the time step of the species' first ignited
	// segment, or 0 before ignition. Once set, the simulation runs for
	// at most Settings.MaxIgnitionTimeSteps further steps (§4.1): the
	// step budget bounds post-ignition spread, not the unbounded
	// pre-ignition search.
	firstIgnitionStep int
}

// Run executes the per-species ignition-path simulation described by
// p and returns the resulting path. It returns ErrGeometryFailure if a
// flame's angle is parallel to the surface line through the current
// point, making its effective origin undefined.
func Run(p Params) (IgnitionPath, error) {
	s := &sim{
		p:        p,
		grass:    p.Species.IsGrass(p.StratumLevel),
		curPoint: p.InitialPoint,
	}

	for s.t = 1; ; s.t++ {
		if s.firstIgnitionStep > 0 && s.t > s.firstIgnitionStep+p.Settings.MaxIgnitionTimeSteps {
			break
		}
		modWind := s.modifiedWindSpeed()

		plantFlame, hasPlant := s.currentPlantFlame()
		incidentFlame, hasIncident := s.incidentFlameAt(s.t)
		if !hasPlant && !hasIncident {
			break
		}

		plantLen, plantAngle, plantOk, err := s.candidateLength(plantFlame, hasPlant)
		if err != nil {
			return IgnitionPath{}, err
		}
		incLen, incAngle, incOk, err := s.candidateLength(incidentFlame, hasIncident)
		if err != nil {
			return IgnitionPath{}, err
		}
		if !plantOk && !incOk {
			break
		}

		pathLength, pathAngle := plantLen, plantAngle
		if incOk && (!plantOk || incLen > plantLen) {
			pathLength, pathAngle = incLen, incAngle
		}

		nextPoint, ignited, err := s.advance(pathAngle, pathLength)
		if err != nil {
			return IgnitionPath{}, err
		}
		if !ignited {
			break
		}

		if !s.emitSegment(nextPoint, modWind) {
			break
		}
		if s.firstIgnitionStep == 0 {
			s.firstIgnitionStep = s.t
		}
		s.curPoint = nextPoint
	}

	return IgnitionPath{
		Context: Context{
			RunType:      p.RunType,
			StratumLevel: p.StratumLevel,
			Slope:        p.Slope,
			AmbientTemp:  p.AmbientTemp,
		},
		Species:         p.Species,
		InitialPoint:    p.InitialPoint,
		PreIgnitionData: s.preIgnition,
		Segments:        s.segments,
	}, nil
}

// candidateLength returns the path length and angle the given flame
// offers this step: the lesser of how far the crown extends along the
// flame's angle from curPoint and how far the flame's plume still
// exceeds the species' ignition temperature.
func (s *sim) candidateLength(f flame.Flame, ok bool) (float64, float64, bool, error) {
	if !ok {
		return 0, 0, false, nil
	}

	crownLen := 0.0
	if seg, hit := s.p.Species.Crown.Intersection(geom.Ray{Origin: s.curPoint, Angle: f.Angle}); hit {
		crownLen = s.curPoint.DistanceTo(seg.End)
	}

	tempLen, reachable := f.DistanceForTemperature(s.p.Species.IgnitionTemperature(), s.p.AmbientTemp)
	if !reachable {
		tempLen = 0
	}

	length := math.Min(crownLen, tempLen)
	if length <= 0 || numeric.AlmostZero(length) {
		return 0, 0, false, nil
	}
	return length, f.Angle, true, nil
}

// advance subdivides the candidate path into NumPenetrationSteps equal
// steps and walks forward while the accumulated drying still allows
// ignition within the model's computation time interval, returning the
// furthest accepted point.
func (s *sim) advance(angle, length float64) (geom.Coord, bool, error) {
	n := s.p.Settings.NumPenetrationSteps
	if n < 1 {
		n = 1
	}
	step := length / float64(n)

	var last geom.Coord
	found := false
	ignitionTemp := s.p.Species.IgnitionTemperature()

	for i := 1; i <= n; i++ {
		testPoint := geom.PointAt(s.curPoint, angle, step*float64(i))

		maxTemp, err := s.maxTempAt(testPoint)
		if err != nil {
			return geom.Coord{}, false, err
		}
		if maxTemp < ignitionTemp {
			break
		}

		factor, err := s.dryingFactor(s.t, testPoint)
		if err != nil {
			return geom.Coord{}, false, err
		}

		idt := s.calculateIDT(maxTemp)
		if factor*idt > s.p.Settings.DeltaTSeconds() {
			break
		}

		last, found = testPoint, true
	}
	return last, found, nil
}

// maxTempAt returns the greater of the plant and incident flames'
// plume temperatures at testPoint for the current time step.
func (s *sim) maxTempAt(testPoint geom.Coord) (float64, error) {
	max := 0.0
	if f, ok := s.currentPlantFlame(); ok {
		origin, err := s.effectiveOrigin(f)
		if err != nil {
			return 0, err
		}
		if t := f.PlumeTemperature(origin.DistanceTo(testPoint), s.p.AmbientTemp); t > max {
			max = t
		}
	}
	if f, ok := s.incidentFlameAt(s.t); ok {
		origin, err := s.effectiveOrigin(f)
		if err != nil {
			return 0, err
		}
		if t := f.PlumeTemperature(origin.DistanceTo(testPoint), s.p.AmbientTemp); t > max {
			max = t
		}
	}
	return max, nil
}

// emitSegment records the ignited segment ending at nextPoint and the
// plant flame it produces, looking back over the flame duration to
// find the segment's start as described in §4.1 step 7. It reports
// false when the computed segment would be empty, signalling the
// caller to stop the simulation.
func (s *sim) emitSegment(nextPoint geom.Coord, modWind float64) bool {
	var segStart geom.Coord
	switch {
	case len(s.segments) == 0:
		segStart = s.curPoint
	case len(s.segments) < s.flameDurationSteps():
		segStart = s.segments[0].Start
	default:
		segStart = s.segments[len(s.segments)-s.flameDurationSteps()].End
	}

	depth := segStart.DistanceTo(nextPoint)
	if len(s.segments) > 0 && !numeric.DistinctFrom(depth, 0) {
		return false
	}

	deltaT := s.p.Settings.MainFlameDeltaTemperature
	if s.grass {
		deltaT = s.p.Settings.GrassFlameDeltaTemperature
	}
	length := s.p.Species.FlameLength(depth)
	angle := flame.WindEffectFlameAngle(length, modWind, s.p.Slope)
	newFlame := flame.Flame{
		Length:           length,
		Angle:            angle,
		Origin:           segStart,
		DepthIgnited:     depth,
		DeltaTemperature: deltaT,
	}

	s.segments = append(s.segments, IgnitedSegment{TimeStep: s.t, Start: segStart, End: nextPoint, Flame: newFlame})
	s.plantFlames = append(s.plantFlames, newFlame)
	return true
}

// flameDurationSteps returns how many time steps a newly emitted plant
// flame's heritage should reach back over, reduced for canopy strata
// once the current point lies beyond the canopy heating distance.
func (s *sim) flameDurationSteps() int {
	deltaT := s.p.Settings.DeltaTSeconds()
	dur := s.p.Species.FlameDuration(deltaT)
	if s.p.RunType == StratumRun && s.p.StratumLevel == species.Canopy && s.curPoint.X > s.p.CanopyHeatingDistance {
		dur = s.p.Settings.ReducedCanopyFlameResidenceTimeSeconds()
	}
	steps := int(math.Ceil(dur / deltaT))
	if steps < 1 {
		steps = 1
	}
	return steps
}

// modifiedWindSpeed reduces the incident wind speed on a stratum run
// once ignition has occurred, proportionally to how far the most
// recent segment advanced horizontally in the last time step.
func (s *sim) modifiedWindSpeed() float64 {
	if s.p.RunType != StratumRun || len(s.segments) == 0 {
		return s.p.StratumWindSpeed
	}
	last := s.segments[len(s.segments)-1]
	dx := last.End.X - last.Start.X
	reduced := s.p.StratumWindSpeed - math.Max(0, dx)/s.p.Settings.DeltaTSeconds()
	return math.Max(0, reduced)
}

func (s *sim) currentPlantFlame() (flame.Flame, bool) {
	if len(s.plantFlames) == 0 {
		return flame.Flame{}, false
	}
	return s.plantFlames[len(s.plantFlames)-1], true
}

func (s *sim) incidentFlameAt(t int) (flame.Flame, bool) {
	idx := t - 1
	if idx < 0 || idx >= len(s.p.IncidentFlames) {
		return flame.Flame{}, false
	}
	return s.p.IncidentFlames[idx], true
}

func (s *sim) preHeatingEndTime() float64 {
	if s.p.PreHeatingEndTime == nil {
		return 0
	}
	return math.Max(*s.p.PreHeatingEndTime, 0)
}
