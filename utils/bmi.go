package utils

import "errors"

// Plausibility bounds for profile biometrics. Values outside these are almost
// certainly unit mix-ups (meters vs centimeters, pounds vs kilograms).
const (
	minHeightCm = 50
	maxHeightCm = 250
	minWeightKg = 10
	maxWeightKg = 400
)

var ErrBiometricsOutOfRange = errors.New("height/weight out of plausible range")

// CalculateBMI computes body mass index from height in centimeters and weight
// in kilograms.
func CalculateBMI(heightCm, weightKg float64) (float64, error) {
	if heightCm <= 0 || weightKg <= 0 {
		return 0, errors.New("height and weight must be positive")
	}
	if heightCm < minHeightCm || heightCm > maxHeightCm ||
		weightKg < minWeightKg || weightKg > maxWeightKg {
		return 0, ErrBiometricsOutOfRange
	}

	m := heightCm / 100.0
	return weightKg / (m * m), nil
}

// BMICategory maps a BMI value onto the WHO classification bands.
func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25.0:
		return "Normal weight"
	case bmi < 30.0:
		return "Overweight"
	case bmi < 35.0:
		return "Obesity class I"
	case bmi < 40.0:
		return "Obesity class II"
	default:
		return "Obesity class III"
	}
}
