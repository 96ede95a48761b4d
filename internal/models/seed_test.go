package models

import "testing"

func TestParseSeedMode(t *testing.T) {
	cases := []struct {
		in      string
		want    SeedMode
		wantErr bool
	}{
		{"fixed", SeedFixed, false},
		{"increment", SeedIncrement, false},
		{"decrement", SeedDecrement, false},
		{"randomize", SeedRandomize, false},
		{"", SeedFixed, false},
		{"bogus", "", true},
	}
	for _, tc := range cases {
		got, err := ParseSeedMode(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseSeedMode(%q) should fail", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseSeedMode(%q) error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseSeedMode(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestSeedForIteration(t *testing.T) {
	for i := 0; i < 5; i++ {
		if got := SeedFixed.SeedForIteration(10, i); got != 10 {
			t.Errorf("fixed seed(%d) = %d, want 10", i, got)
		}
		if got := SeedIncrement.SeedForIteration(10, i); got != int64(10+i) {
			t.Errorf("increment seed(%d) = %d, want %d", i, got, 10+i)
		}
	}

	wantDec := []int64{2, 1, 0, 0, 0}
	for i, want := range wantDec {
		if got := SeedDecrement.SeedForIteration(2, i); got != want {
			t.Errorf("decrement seed(%d) = %d, want %d", i, got, want)
		}
	}
}

func TestSeedRandomizeReproducible(t *testing.T) {
	for i := 0; i < 5; i++ {
		a := SeedRandomize.SeedForIteration(42, i)
		b := SeedRandomize.SeedForIteration(42, i)
		if a != b {
			t.Errorf("randomize seed(%d) not reproducible: %d vs %d", i, a, b)
		}
		if a < 0 || a > MaxSeed {
			t.Errorf("randomize seed(%d) = %d out of [0, %d]", i, a, MaxSeed)
		}
	}

	// Different iterations should usually differ.
	same := 0
	for i := 1; i < 6; i++ {
		if SeedRandomize.SeedForIteration(42, 0) == SeedRandomize.SeedForIteration(42, i) {
			same++
		}
	}
	if same == 5 {
		t.Error("randomize produced identical seeds for every iteration")
	}
}

func TestRandomSeedInRange(t *testing.T) {
	for i := 0; i < 100; i++ {
		s := RandomSeed()
		if s < 0 || s > MaxSeed {
			t.Fatalf("RandomSeed() = %d out of range", s)
		}
	}
}
