package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/elevatemedia/invoicer/internal/domain"
)

func testRouter() *Router {
	return NewRouter(map[string]string{
		"invisible arts": "hourly",
		"touch a heart":  "retainer",
	})
}

func TestFormRouteMatchesCaseInsensitively(t *testing.T) {
	r := testRouter()

	assert.Equal(t, domain.VariantRetainer, r.FormRoute("Touch A Heart"))
	assert.Equal(t, domain.VariantRetainer, r.FormRoute("  touch a heart  "))
	assert.Equal(t, domain.VariantRetainer, r.FormRoute("TOUCH A HEART"))
}

func TestFormRouteDefaultsToHourly(t *testing.T) {
	r := testRouter()

	assert.Equal(t, domain.VariantHourly, r.FormRoute("Invisible Arts"))
	assert.Equal(t, domain.VariantHourly, r.FormRoute("Brand New Client"))
	assert.Equal(t, domain.VariantHourly, r.FormRoute(""))
}

func TestNewRouterIgnoresUnknownVariants(t *testing.T) {
	r := NewRouter(map[string]string{"someone": "quarterly"})

	assert.Equal(t, domain.VariantHourly, r.FormRoute("someone"))
}
