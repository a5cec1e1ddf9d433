package domain

import "time"

// Season is one of the four meteorological seasons.
type Season string

const (
	Winter Season = "Winter"
	Spring Season = "Spring"
	Summer Season = "Summer"
	Autumn Season = "Autumn"
)

// Seasons lists all seasons in calendar order starting from Winter.
var Seasons = []Season{Winter, Spring, Summer, Autumn}

// SeasonForMonth maps a month to its meteorological season:
// Dec/Jan/Feb -> Winter, Mar/Apr/May -> Spring, Jun/Jul/Aug -> Summer,
// Sep/Oct/Nov -> Autumn.
func SeasonForMonth(m time.Month) Season {
	switch m {
	case time.December, time.January, time.February:
		return Winter
	case time.March, time.April, time.May:
		return Spring
	case time.June, time.July, time.August:
		return Summer
	default:
		return Autumn
	}
}

// ValidSeason reports whether s is one of the four canonical season labels.
func ValidSeason(s Season) bool {
	switch s {
	case Winter, Spring, Summer, Autumn:
		return true
	}
	return false
}
