package ignition

import (
	"math"

	"github.com/appengine-ltd/flamepath/internal/flame"
	"github.com/appengine-ltd/flamepath/internal/geom"
)

// calculateIDT returns the species' ignition delay time at temperature
// temp, reduced for grass species per GrassIDTReduction.
func (s *sim) calculateIDT(temp float64) float64 {
	idt := s.p.Species.IgnitionDelayTime(temp)
	if s.grass {
		idt *= s.p.Settings.GrassIDTReduction
	}
	return idt
}

func (s *sim) record(d PreIgnitionData) {
	if len(s.segments) == 0 {
		s.preIgnition = append(s.preIgnition, d)
	}
}

// dryingFactor computes the drying factor (§4.1.1) applicable to
// testPoint at time step t, recording every finite contribution as
// pre-ignition data until the path's first ignition.
func (s *sim) dryingFactor(t int, testPoint geom.Coord) (float64, error) {
	preHeat, err := s.preHeatingDryingFactor(t, testPoint)
	if err != nil {
		return 0, err
	}
	if preHeat <= 0 {
		return 0, nil
	}

	incident, err := s.incidentDryingFactor(t, testPoint)
	if err != nil {
		return 0, err
	}
	if incident <= 0 {
		return 0, nil
	}

	plant, err := s.plantDryingFactor(testPoint)
	if err != nil {
		return 0, err
	}
	return preHeat * incident * plant, nil
}

func (s *sim) preHeatingDryingFactor(t int, testPoint geom.Coord) (float64, error) {
	phfs := s.p.PreHeatingFlames
	if len(phfs) < 2 {
		return 1, nil
	}
	// Skip the most recent pre-heating flame; it is treated as direct
	// heating, not drying.
	remaining := phfs[:len(phfs)-1]

	factor := 1.0
	for _, phf := range remaining {
		origin, err := s.projectedOrigin(phf.Flame)
		if err != nil {
			return 0, err
		}
		dist := origin.DistanceTo(testPoint)
		temp := phf.PlumeTemperature(dist, s.p.AmbientTemp)
		idt := s.calculateIDT(temp)
		duration := phf.Duration(s.preHeatingEndTime())
		contribution := math.Max(0, 1-duration/idt)
		factor *= contribution

		s.record(PreIgnitionData{
			Kind:       PreHeatingDrying,
			Time:       t,
			PreHeating: phf,
			Dist:       dist,
			Factor:     contribution,
			Temp:       temp,
			Duration:   duration,
		})

		if factor <= 0 {
			return 0, nil
		}
	}
	return factor, nil
}

func (s *sim) incidentDryingFactor(t int, testPoint geom.Coord) (float64, error) {
	n := t - 1
	if n > len(s.p.IncidentFlames) {
		n = len(s.p.IncidentFlames)
	}
	factor := 1.0
	for i := 1; i <= n; i++ {
		f := s.p.IncidentFlames[i-1]
		origin, err := s.effectiveOrigin(f)
		if err != nil {
			return 0, err
		}
		dist := origin.DistanceTo(testPoint)
		temp := f.PlumeTemperature(dist, s.p.AmbientTemp)
		idt := s.calculateIDT(temp)
		contribution := math.Max(0, 1-s.p.Settings.DeltaTSeconds()/idt)
		factor *= contribution

		s.record(PreIgnitionData{
			Kind:   IncidentDrying,
			Time:   t,
			Source: f,
			Dist:   dist,
			Factor: contribution,
			Temp:   temp,
			IDT:    idt,
		})

		if factor <= 0 {
			return 0, nil
		}
	}
	return factor, nil
}

func (s *sim) plantDryingFactor(testPoint geom.Coord) (float64, error) {
	factor := 1.0
	for _, f := range s.plantFlames {
		dist := f.Origin.DistanceTo(testPoint)
		temp := f.PlumeTemperature(dist, s.p.AmbientTemp)
		idt := s.calculateIDT(temp)
		contribution := math.Max(0, 1-s.p.Settings.DeltaTSeconds()/idt)
		factor *= contribution

		s.record(PreIgnitionData{
			Kind:   IncidentDrying,
			Time:   s.t,
			Source: f,
			Dist:   dist,
			Factor: contribution,
			Temp:   temp,
			IDT:    idt,
		})

		if factor <= 0 {
			return 0, nil
		}
	}
	return factor, nil
}

// effectiveOrigin returns the origin to use when measuring a flame's
// plume distance to the simulation's current point: the flame's own
// origin on a StratumRun, or its direction projected onto the surface
// line through curPoint on a PlantRun.
func (s *sim) effectiveOrigin(f flame.Flame) (geom.Coord, error) {
	if s.p.RunType == StratumRun {
		return f.Origin, nil
	}
	return s.projectedOrigin(f)
}

func (s *sim) projectedOrigin(f flame.Flame) (geom.Coord, error) {
	line := geom.Line{Point: s.curPoint, Slope: s.p.Slope}
	return line.OriginOnLine(f.Origin, f.Angle)
}
