package odds

import (
	"errors"
	"math"
	"testing"

	"github.com/yourusername/kalshi-scout/internal/models"
)

func TestToProbability(t *testing.T) {
	tests := []struct {
		name     string
		american int
		want     float64
	}{
		{"even favorite", -100, 0.5},
		{"even underdog", 100, 0.5},
		{"moderate favorite", -150, 0.6},
		{"moderate underdog", 130, 100.0 / 230.0},
		{"heavy favorite", -500, 500.0 / 600.0},
		{"heavy underdog", 500, 100.0 / 600.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToProbability(tt.american)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ToProbability(%d) = %f, want %f", tt.american, got, tt.want)
			}
		})
	}
}

func TestToProbabilityRange(t *testing.T) {
	// Probabilities must lie strictly in (0,1) across the realistic odds range.
	for o := -10000; o <= 10000; o += 37 {
		if o == 0 {
			continue
		}
		prob, err := ToProbability(o)
		if err != nil {
			t.Fatalf("unexpected error for odds %d: %v", o, err)
		}
		if prob <= 0 || prob >= 1 {
			t.Fatalf("ToProbability(%d) = %f outside (0,1)", o, prob)
		}
	}
}

func TestToProbabilityZeroOdds(t *testing.T) {
	if _, err := ToProbability(0); !errors.Is(err, models.ErrInvalidOdds) {
		t.Errorf("expected ErrInvalidOdds, got %v", err)
	}
}

func TestToProbabilityFloatNonFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := ToProbabilityFloat(v); !errors.Is(err, models.ErrInvalidOdds) {
			t.Errorf("expected ErrInvalidOdds for %v, got %v", v, err)
		}
	}
}

func TestRemoveVig(t *testing.T) {
	a, err1 := ToProbability(-150)
	b, err2 := ToProbability(130)
	if err1 != nil || err2 != nil {
		t.Fatalf("setup failed: %v %v", err1, err2)
	}

	trueA, trueB, err := RemoveVig(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(trueA+trueB-1.0) > 1e-9 {
		t.Errorf("devigged probabilities sum to %f, want 1", trueA+trueB)
	}
	// Vig removal must preserve the ratio between the two sides.
	if math.Abs(trueA/trueB-a/b) > 1e-9 {
		t.Errorf("ratio changed: %f vs %f", trueA/trueB, a/b)
	}
	// Worked example: -150/+130 devigs to roughly 0.579/0.421.
	if math.Abs(trueA-0.579) > 0.001 {
		t.Errorf("trueA = %f, want ~0.579", trueA)
	}
}

func TestRemoveVigInvalidSum(t *testing.T) {
	if _, _, err := RemoveVig(0, 0); !errors.Is(err, models.ErrInvalidOdds) {
		t.Errorf("expected ErrInvalidOdds, got %v", err)
	}
	if _, _, err := RemoveVig(-0.5, 0.2); !errors.Is(err, models.ErrInvalidOdds) {
		t.Errorf("expected ErrInvalidOdds, got %v", err)
	}
}

func TestConsensusMean(t *testing.T) {
	quotes := []models.Quote{
		{Bookmaker: "draftkings", Side: models.SideHome, AmericanOdds: -150},
		{Bookmaker: "fanduel", Side: models.SideHome, AmericanOdds: -160},
		{Bookmaker: "betmgm", Side: models.SideHome, AmericanOdds: -140},
	}

	prob, count, err := Consensus(quotes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}

	want := 0.0
	for _, o := range []int{-150, -160, -140} {
		p, _ := ToProbability(o)
		want += p
	}
	want /= 3
	if math.Abs(prob-want) > 1e-9 {
		t.Errorf("consensus = %f, want %f", prob, want)
	}
}

func TestConsensusSkipsMalformedQuotes(t *testing.T) {
	quotes := []models.Quote{
		{Bookmaker: "draftkings", Side: models.SideHome, AmericanOdds: -150},
		{Bookmaker: "badbook", Side: models.SideHome, AmericanOdds: 0},
	}
	prob, count, err := Consensus(quotes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
	want, _ := ToProbability(-150)
	if math.Abs(prob-want) > 1e-9 {
		t.Errorf("consensus = %f, want %f", prob, want)
	}
}

func TestConsensusEmpty(t *testing.T) {
	if _, _, err := Consensus(nil); !errors.Is(err, models.ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData, got %v", err)
	}
	onlyBad := []models.Quote{{Bookmaker: "badbook", AmericanOdds: 0}}
	if _, _, err := Consensus(onlyBad); !errors.Is(err, models.ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData, got %v", err)
	}
}
