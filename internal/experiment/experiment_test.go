package experiment

import (
	"errors"
	"testing"

	"github.com/san-kum/scramble/internal/chaos"
	"github.com/san-kum/scramble/internal/cycles"
	"github.com/san-kum/scramble/internal/scramble"
)

func logistic(t *testing.T) chaos.Param {
	t.Helper()
	p, err := chaos.NewParam(chaos.Logistic, 3.9)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestTrial_Reproducible(t *testing.T) {
	cfg := Config{Param: logistic(t), Iterations: 5, Length: 20, Seed: 17}

	a, err := Trial(cfg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Trial(cfg)
	if err != nil {
		t.Fatal(err)
	}

	if a.X0 != b.X0 {
		t.Errorf("same seed drew different x0: %v vs %v", a.X0, b.X0)
	}
	if a.Order.Cmp(b.Order) != 0 {
		t.Errorf("same seed produced different orders: %s vs %s", a.Order, b.Order)
	}
	if a.N != 20 || a.Seed != 17 {
		t.Errorf("sample metadata = (N=%d, seed=%d)", a.N, a.Seed)
	}
}

func TestTrial_MatchesManualPipeline(t *testing.T) {
	p := logistic(t)
	for seed := int64(0); seed < 10; seed++ {
		s, err := Trial(Config{Param: p, Iterations: 3, Length: 12, Seed: seed})
		if err != nil {
			t.Fatal(err)
		}

		x0 := InitialState(seed)
		if x0 != s.X0 {
			t.Fatalf("seed %d: InitialState=%v, trial x0=%v", seed, x0, s.X0)
		}
		table, err := scramble.Generate(p, x0, 3, 12)
		if err != nil {
			t.Fatal(err)
		}
		if want := cycles.Order(table); want.Cmp(s.Order) != 0 {
			t.Errorf("seed %d: order %s, want %s", seed, s.Order, want)
		}
	}
}

func TestTrial_InitialStateRange(t *testing.T) {
	for seed := int64(0); seed < 100; seed++ {
		x0 := InitialState(seed)
		if x0 < 0 || x0 >= 1 {
			t.Fatalf("seed %d: x0=%v outside [0, 1)", seed, x0)
		}
	}
}

func TestTrial_Errors(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero length", Config{Param: logistic(t), Iterations: 5, Length: 0}},
		{"bad parameter", Config{Param: chaos.Param{Kind: chaos.PWLCM, A: 1}, Iterations: 5, Length: 8}},
		{"negative iterations", Config{Param: logistic(t), Iterations: -1, Length: 8}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Trial(tt.cfg); !errors.Is(err, chaos.ErrInvalidParameter) {
				t.Errorf("expected ErrInvalidParameter, got %v", err)
			}
		})
	}
}
