package sentiment

import (
	"context"
	"testing"

	"oslobors-bot/internal/types"
)

func TestLexiconNegativeHeadline(t *testing.T) {
	s := NewLexiconScorer()

	j, err := s.Score(context.Background(), "Oslo Børs faller kraftig etter oljeprisras")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if j.Polarity != types.PolarityNegative {
		t.Errorf("Expected NEGATIVE, got %v", j.Polarity)
	}
	if j.Confidence <= 0 || j.Confidence > 1 {
		t.Errorf("Expected confidence in (0, 1], got %f", j.Confidence)
	}
}

func TestLexiconPositiveHeadline(t *testing.T) {
	s := NewLexiconScorer()

	j, err := s.Score(context.Background(), "Børsen stiger til ny rekord")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if j.Polarity != types.PolarityPositive {
		t.Errorf("Expected POSITIVE, got %v", j.Polarity)
	}
}

func TestLexiconNeutralText(t *testing.T) {
	s := NewLexiconScorer()

	j, err := s.Score(context.Background(), "Kvartalsrapporten legges frem onsdag")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if j.Polarity != types.PolarityOther {
		t.Errorf("Expected OTHER for neutral text, got %v", j.Polarity)
	}
}

func TestLexiconBalancedTextIsOther(t *testing.T) {
	s := NewLexiconScorer()

	// One positive and one negative word cancel out.
	j, err := s.Score(context.Background(), "Børsen stiger etter gårsdagens fall")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if j.Polarity != types.PolarityOther {
		t.Errorf("Expected OTHER for balanced text, got %v", j.Polarity)
	}
}

func TestLexiconEmptyText(t *testing.T) {
	s := NewLexiconScorer()

	j, err := s.Score(context.Background(), "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if j.Polarity != types.PolarityOther {
		t.Errorf("Expected OTHER for empty text, got %v", j.Polarity)
	}
}
