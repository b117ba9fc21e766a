package signal

import (
	"math"
	"testing"
)

func TestClassifyReturnsLong(t *testing.T) {
	dir, raw := ClassifyReturns(0.010, 0.005, 0.5, 0.5, 0.003)
	if dir != DirectionLong {
		t.Errorf("Expected LONG, got %s", dir)
	}
	if math.Abs(raw-0.0075) > 1e-9 {
		t.Errorf("Expected raw 0.0075, got %f", raw)
	}
}

func TestClassifyReturnsShort(t *testing.T) {
	dir, _ := ClassifyReturns(-0.012, -0.004, 0.5, 0.5, 0.003)
	if dir != DirectionShort {
		t.Errorf("Expected SHORT, got %s", dir)
	}
}

func TestClassifyReturnsFlatInsideThreshold(t *testing.T) {
	dir, raw := ClassifyReturns(0.002, -0.001, 0.5, 0.5, 0.003)
	if dir != DirectionFlat {
		t.Errorf("Expected FLAT, got %s", dir)
	}
	if math.Abs(raw-0.0005) > 1e-9 {
		t.Errorf("Expected raw 0.0005, got %f", raw)
	}
}

func TestClassifyReturnsThresholdBoundaryTrades(t *testing.T) {
	// |raw| == threshold clears the bar.
	dir, _ := ClassifyReturns(0.003, 0.003, 0.5, 0.5, 0.003)
	if dir != DirectionLong {
		t.Errorf("Expected LONG at the boundary, got %s", dir)
	}
}
