package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCourseLabel(t *testing.T) {
	c := Course{ID: 1, Name: "First Aid", Price: decimal.NewFromInt(1500)}
	assert.Equal(t, "First Aid (R1500)", c.Label())

	c = Course{ID: 9, Name: "Pottery", Price: decimal.RequireFromString("99.5")}
	assert.Equal(t, "Pottery (R99.5)", c.Label())
}
