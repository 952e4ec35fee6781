package flame

import (
	"math"
	"testing"

	"github.com/appengine-ltd/flamepath/internal/geom"
)

func TestPlumeTemperatureDecaysWithDistance(t *testing.T) {
	f := Flame{Length: 2, DeltaTemperature: 500}
	ambient := 20.0

	prev := f.PlumeTemperature(0, ambient)
	if prev != ambient+f.DeltaTemperature {
		t.Fatalf("expected plume temperature at distance 0 to equal ambient+deltaT, got %v", prev)
	}
	for _, d := range []float64{0.5, 1, 2, 4, 8} {
		got := f.PlumeTemperature(d, ambient)
		if got >= prev {
			t.Fatalf("expected plume temperature to strictly decrease with distance: at %v got %v, previous %v", d, got, prev)
		}
		if got < ambient {
			t.Fatalf("plume temperature %v fell below ambient %v", got, ambient)
		}
		prev = got
	}
}

func TestDistanceForTemperatureInvertsPlumeTemperature(t *testing.T) {
	f := Flame{Length: 3, DeltaTemperature: 400}
	ambient := 15.0
	target := ambient + 100

	d, ok := f.DistanceForTemperature(target, ambient)
	if !ok {
		t.Fatalf("expected target within (ambient, ambient+deltaT] to be reachable")
	}
	got := f.PlumeTemperature(d, ambient)
	if math.Abs(got-target) > 1e-6 {
		t.Fatalf("PlumeTemperature(DistanceForTemperature(target))=%v want=%v", got, target)
	}
}

func TestDistanceForTemperatureRejectsUnreachableTargets(t *testing.T) {
	f := Flame{Length: 3, DeltaTemperature: 400}
	ambient := 15.0

	if _, ok := f.DistanceForTemperature(ambient+500, ambient); ok {
		t.Fatalf("expected a target above ambient+deltaT to be unreachable")
	}
	if _, ok := f.DistanceForTemperature(ambient, ambient); ok {
		t.Fatalf("expected a target at ambient itself to be unreachable (d would be infinite)")
	}
}

func TestWindEffectFlameAngleMonotonicInWind(t *testing.T) {
	length := 4.0
	prevTilt := math.Pi / 2
	for _, wind := range []float64{0, 1, 3, 6, 10} {
		angle := WindEffectFlameAngle(length, wind, 0)
		if angle > prevTilt+1e-9 {
			t.Fatalf("expected flame angle to decrease (tilt further from vertical) as wind increases: wind=%v angle=%v prev=%v", wind, angle, prevTilt)
		}
		prevTilt = angle
	}
}

func TestWindEffectFlameAngleAddsSlope(t *testing.T) {
	flat := WindEffectFlameAngle(4, 2, 0)
	sloped := WindEffectFlameAngle(4, 2, 0.2)
	if math.Abs(sloped-flat-0.2) > 1e-9 {
		t.Fatalf("expected slope to add directly to the flame angle: flat=%v sloped=%v", flat, sloped)
	}
}

func TestLateralMergedFlameLengthGrowsWithFireLineLength(t *testing.T) {
	base := LateralMergedFlameLength(5, 0, 1, 2)
	if base != 5 {
		t.Fatalf("expected no merging with a zero fire-line length, got %v", base)
	}
	wide := LateralMergedFlameLength(5, 200, 1, 2)
	if wide <= 5 {
		t.Fatalf("expected lateral merging to increase flame length, got %v", wide)
	}
}

func TestCombineFlamesWeightsByLength(t *testing.T) {
	upper := Flame{Length: 1, DeltaTemperature: 300, Origin: geom.Coord{X: 10}}
	lower := Flame{Length: 9, DeltaTemperature: 700, Origin: geom.Coord{X: 0}}

	combined := CombineFlames(upper, lower, 2, 0, 50)
	if combined.Length <= 0 {
		t.Fatalf("expected a positive combined length, got %v", combined.Length)
	}
	if combined.Origin.X >= 5 {
		t.Fatalf("expected the combined origin to sit closer to the longer (lower) flame's origin, got %v", combined.Origin.X)
	}
	if combined.DeltaTemperature != 700 {
		t.Fatalf("expected combined delta temperature to be the max of the two, got %v", combined.DeltaTemperature)
	}
}

func TestCombineFlamesZeroWhenBothEmpty(t *testing.T) {
	combined := CombineFlames(Flame{}, Flame{}, 1, 0, 10)
	if combined != (Flame{}) {
		t.Fatalf("expected combining two zero flames to produce the zero flame, got %+v", combined)
	}
}
