package speedfix

import "testing"

func fps(v float64) *float64 { return &v }

func TestDecide(t *testing.T) {
	tests := []struct {
		name    string
		base    *float64
		donor   *float64
		enabled bool
		apply   bool
	}{
		{"classic pal mismatch", fps(23.976), fps(25.0), true, true},
		{"exact rational base", fps(24000.0 / 1001.0), fps(25.0), true, true},
		{"within tolerance", fps(23.98), fps(24.99), true, true},
		{"disabled", fps(23.976), fps(25.0), false, false},
		{"audio-only donor", fps(23.976), nil, true, false},
		{"unmeasured base", nil, fps(25.0), true, false},
		{"both at film rate", fps(23.976), fps(23.976), true, false},
		{"both pal", fps(25.0), fps(25.0), true, false},
		{"base out of tolerance", fps(24.1), fps(25.0), true, false},
		{"donor out of tolerance", fps(23.976), fps(25.1), true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := Decide(tt.base, tt.donor, tt.enabled)
			if decision.Apply != tt.apply {
				t.Errorf("Decide apply = %v, want %v", decision.Apply, tt.apply)
			}
			if decision.Tempo != Tempo {
				t.Errorf("Decide tempo = %v, want %v", decision.Tempo, Tempo)
			}
		})
	}
}
