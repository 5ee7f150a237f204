package places

import (
	"fmt"
	"time"
)

const (
	minuteSeconds = 60
	hourSeconds   = minuteSeconds * 60
	daySeconds    = hourSeconds * 24
	weekSeconds   = daySeconds * 7
	monthSeconds  = daySeconds * 30
	yearSeconds   = daySeconds * 365
)

// RelativeTimeFR переводит unix-время отзыва во французскую
// относительную фразу ("il y a 3 jours").
func RelativeTimeFR(timestamp int64) string {
	return relativeTimeFRAt(timestamp, time.Now().Unix())
}

func relativeTimeFRAt(timestamp, now int64) string {
	diff := now - timestamp
	if diff < 0 {
		diff = 0
	}

	switch {
	case diff < minuteSeconds:
		return "à l'instant"
	case diff < hourSeconds:
		return pluralFR(diff/minuteSeconds, "minute", "minutes")
	case diff < daySeconds:
		return pluralFR(diff/hourSeconds, "heure", "heures")
	case diff < weekSeconds:
		return pluralFR(diff/daySeconds, "jour", "jours")
	case diff < monthSeconds:
		return pluralFR(diff/weekSeconds, "semaine", "semaines")
	case diff < yearSeconds:
		// "mois" не меняется во множественном числе
		return fmt.Sprintf("il y a %d mois", diff/monthSeconds)
	default:
		return pluralFR(diff/yearSeconds, "an", "ans")
	}
}

func pluralFR(count int64, singular, plural string) string {
	unit := singular
	if count > 1 {
		unit = plural
	}

	return fmt.Sprintf("il y a %d %s", count, unit)
}
