package constants

import "strings"

// Role is the persona a journey is experienced from
type Role string

// Favorability classifies how supportive a jurisdiction's law is
type Favorability string

// StageStatus is the derived status of a timeline entry
type StageStatus string

// Mood is a fixed label recorded in the mood log
type Mood string

const (
	RoleCarrier        Role = "carrier"
	RoleIntendedParent Role = "intended-parent"

	FavorabilityFavorable   Favorability = "favorable"
	FavorabilityModerate    Favorability = "moderate"
	FavorabilityRestrictive Favorability = "restrictive"

	StageDone    StageStatus = "done"
	StageCurrent StageStatus = "current"
	StageFuture  StageStatus = "future"

	MoodGreat      Mood = "Great"
	MoodGood       Mood = "Good"
	MoodOkay       Mood = "Okay"
	MoodHard       Mood = "Hard"
	MoodStruggling Mood = "Struggling"

	// UnknownJurisdiction marks a counterpart whose jurisdiction is not known yet
	UnknownJurisdiction = "unknown"
)

// Roles lists the defined roles in display order
var Roles = []Role{RoleCarrier, RoleIntendedParent}

// Moods lists the mood labels in display order, best first
var Moods = []Mood{MoodGreat, MoodGood, MoodOkay, MoodHard, MoodStruggling}

// ParseRole accepts the canonical role names plus the short aliases gc and ip.
func ParseRole(s string) (Role, bool) {
	switch s {
	case string(RoleCarrier), "gc", "surrogate":
		return RoleCarrier, true
	case string(RoleIntendedParent), "ip", "parent":
		return RoleIntendedParent, true
	}
	return "", false
}

// ParseMood matches a mood label case-insensitively.
func ParseMood(s string) (Mood, bool) {
	for _, m := range Moods {
		if strings.EqualFold(string(m), strings.TrimSpace(s)) {
			return m, true
		}
	}
	return "", false
}

