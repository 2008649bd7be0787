package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateBMI(t *testing.T) {
	bmi, err := CalculateBMI(165, 60)
	require.NoError(t, err)
	assert.InDelta(t, 22.04, bmi, 0.01)
	assert.Equal(t, "Normal weight", BMICategory(bmi))
}

func TestCalculateBMIRejectsImplausibleInput(t *testing.T) {
	_, err := CalculateBMI(0, 60)
	assert.Error(t, err)

	_, err = CalculateBMI(165, -5)
	assert.Error(t, err)

	// A height of 1.65 looks like meters slipped in where centimeters belong.
	_, err = CalculateBMI(1.65, 60)
	assert.ErrorIs(t, err, ErrBiometricsOutOfRange)

	_, err = CalculateBMI(165, 500)
	assert.ErrorIs(t, err, ErrBiometricsOutOfRange)
}

func TestBMICategoryBands(t *testing.T) {
	assert.Equal(t, "Underweight", BMICategory(17.0))
	assert.Equal(t, "Normal weight", BMICategory(18.5))
	assert.Equal(t, "Overweight", BMICategory(25.0))
	assert.Equal(t, "Obesity class I", BMICategory(31.0))
	assert.Equal(t, "Obesity class II", BMICategory(36.0))
	assert.Equal(t, "Obesity class III", BMICategory(42.0))
}
