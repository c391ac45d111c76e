package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	svc := NewPriceService()

	tests := []struct {
		name      string
		massGrams float64
		tech      string
		material  string
		wantPrice int
	}{
		{name: "FDM PLA", massGrams: 10, tech: "FDM", material: "PLA", wantPrice: 10000},
		{name: "FDM ABS", massGrams: 10, tech: "FDM", material: "ABS", wantPrice: 12000},
		{name: "Resin", massGrams: 10, tech: "Resin", material: "Resin", wantPrice: 30000},
		{name: "Unknown combination uses default", massGrams: 10, tech: "SLS", material: "Nylon", wantPrice: 10000},
		{name: "Fractional mass truncates", massGrams: 1.24, tech: "FDM", material: "PLA", wantPrice: 1240},
		{name: "Zero mass", massGrams: 0, tech: "FDM", material: "PLA", wantPrice: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := svc.Calculate(tt.massGrams, tt.tech, tt.material)
			assert.Equal(t, tt.wantPrice, result.Price)
			assert.Equal(t, tt.tech, result.Tech)
			assert.Equal(t, tt.material, result.Material)
		})
	}
}
