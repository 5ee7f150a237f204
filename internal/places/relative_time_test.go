package places

import "testing"

func TestRelativeTimeFR(t *testing.T) {
	const now = int64(1_700_000_000)

	cases := []struct {
		name string
		ago  int64
		want string
	}{
		{"just now", 10, "à l'instant"},
		{"one minute", 90, "il y a 1 minute"},
		{"minutes", 45 * minuteSeconds, "il y a 45 minutes"},
		{"one hour", hourSeconds + 300, "il y a 1 heure"},
		{"hours", 5 * hourSeconds, "il y a 5 heures"},
		{"one day", daySeconds + hourSeconds, "il y a 1 jour"},
		{"days", 3 * daySeconds, "il y a 3 jours"},
		{"weeks", 2 * weekSeconds, "il y a 2 semaines"},
		{"one month", monthSeconds + daySeconds, "il y a 1 mois"},
		{"months stay invariant", 5 * monthSeconds, "il y a 5 mois"},
		{"one year", yearSeconds + daySeconds, "il y a 1 an"},
		{"years", 3 * yearSeconds, "il y a 3 ans"},
		{"future timestamp clamps", -3600, "à l'instant"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := relativeTimeFRAt(now-tc.ago, now)
			if got != tc.want {
				t.Fatalf("relativeTimeFRAt(now-%d) = %q, want %q", tc.ago, got, tc.want)
			}
		})
	}
}
