package repository

import "testing"

// TestBudgetTotalsMutationSequence проверяет, что итоги после любой
// последовательности правок статей совпадают с полным пересчетом.
func TestBudgetTotalsMutationSequence(t *testing.T) {
	const total = int64(1_000_000)
	amounts := []int64{}

	check := func(step string, wantSpent int64) {
		t.Helper()
		spent, remaining := budgetTotals(total, amounts)
		if spent != wantSpent {
			t.Fatalf("%s: spent = %d, want %d", step, spent, wantSpent)
		}
		if remaining != total-wantSpent {
			t.Fatalf("%s: remaining = %d, want %d", step, remaining, total-wantSpent)
		}
	}

	check("empty", 0)

	amounts = append(amounts, 400_000) // salle
	check("add salle", 400_000)

	amounts = append(amounts, 250_000) // traiteur
	check("add traiteur", 650_000)

	amounts[0] = 500_000 // salle подорожала
	check("update salle", 750_000)

	amounts = amounts[:1] // traiteur удален
	check("delete traiteur", 500_000)
}

// TestBudgetTotalsOverspentClamps проверяет, что остаток не уходит в минус.
func TestBudgetTotalsOverspentClamps(t *testing.T) {
	spent, remaining := budgetTotals(100_000, []int64{80_000, 50_000})
	if spent != 130_000 {
		t.Fatalf("spent = %d", spent)
	}
	if remaining != 0 {
		t.Fatalf("remaining = %d, want 0", remaining)
	}
}

func TestRemainingCents(t *testing.T) {
	cases := []struct {
		name  string
		total int64
		spent int64
		want  int64
	}{
		{"untouched", 100000, 0, 100000},
		{"partial", 100000, 40000, 60000},
		{"exact", 100000, 100000, 0},
		{"overspent clamps to zero", 100000, 120000, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := remainingCents(tc.total, tc.spent)
			if got != tc.want {
				t.Fatalf("remainingCents(%d, %d) = %d, want %d", tc.total, tc.spent, got, tc.want)
			}
		})
	}
}
