package report

import (
	"encoding/json"

	"github.com/appengine-ltd/flamepath/internal/orchestrator"
	"github.com/appengine-ltd/flamepath/internal/species"
)

// jsonResult mirrors the sections Render prints as plain text, for
// downstream tooling that wants the result as data rather than a
// terminal-styled report. It is a serialization convenience, not a
// persistence format: nothing reads a jsonResult back in.
type jsonResult struct {
	Surface   jsonSurface `json:"surface"`
	FirstRun  jsonRun     `json:"first_run"`
	SecondRun *jsonRun    `json:"second_run,omitempty"`
}

type jsonSurface struct {
	FlameLengthM        float64 `json:"flame_length_m"`
	FlameResidenceTimeS float64 `json:"flame_residence_time_s"`
	DeltaTemperatureC   float64 `json:"delta_temperature_c"`
	SlopeRad            float64 `json:"slope_rad"`
}

type jsonRun struct {
	Strata             []jsonStratum `json:"strata"`
	CombinedFlameSteps int           `json:"combined_flame_steps"`
}

type jsonStratum struct {
	Level              string  `json:"level"`
	Ignited            bool    `json:"ignited"`
	Connected          bool    `json:"connected"`
	PlantFlameSteps    int     `json:"plant_flame_steps"`
	StratumFlameSteps  int     `json:"stratum_flame_steps"`
	LongestFlameLength float64 `json:"longest_flame_length_m,omitempty"`
}

// RenderJSON marshals a fire model result into the summary form
// described by jsonResult, indented for readability.
func RenderJSON(site species.Site, result orchestrator.FireModelResult) (string, error) {
	out := jsonResult{
		Surface: jsonSurface{
			FlameLengthM:        site.Surface.FlameLength(),
			FlameResidenceTimeS: site.Surface.FlameResidenceTime(),
			DeltaTemperatureC:   site.Surface.DeltaTemperature(),
			SlopeRad:            site.Surface.Slope,
		},
		FirstRun: jsonRunOf(result.FirstRun),
	}
	if result.HasSecondRun {
		second := jsonRunOf(result.SecondRun)
		out.SecondRun = &second
	}

	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b) + "\n", nil
}

func jsonRunOf(r orchestrator.RunResult) jsonRun {
	strata := make([]jsonStratum, len(r.Outcomes))
	for i, o := range r.Outcomes {
		js := jsonStratum{
			Level:             o.Level.String(),
			Ignited:           o.Ignited(),
			Connected:         o.Connected,
			PlantFlameSteps:   len(o.PlantFlames),
			StratumFlameSteps: len(o.StratumFlames),
		}
		for _, f := range o.PlantFlames {
			if f.Length > js.LongestFlameLength {
				js.LongestFlameLength = f.Length
			}
		}
		for _, f := range o.StratumFlames {
			if f.Length > js.LongestFlameLength {
				js.LongestFlameLength = f.Length
			}
		}
		strata[i] = js
	}
	return jsonRun{Strata: strata, CombinedFlameSteps: len(r.CombinedFlames)}
}
