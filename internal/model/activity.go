package model

import "time"

// Activity is the closed set of built-in free-time activity kinds. A nil
// *Activity on a task means the block is untyped: fixed commitments, meal and
// routine blocks, and custom user preferences all stay untyped, and progress
// attribution for those falls back to title matching.
type Activity string

const (
	ActivityStudy      Activity = "study"
	ActivitySkill      Activity = "skill_building"
	ActivityExercise   Activity = "exercise"
	ActivityChores     Activity = "chores"
	ActivityRelaxation Activity = "relaxation"
	ActivityCooking    Activity = "cooking"
	ActivitySocial     Activity = "social"
)

// Activities lists every built-in kind in stable declaration order. Map-like
// state keyed by Activity is serialized through these string tags.
func Activities() []Activity {
	return []Activity{
		ActivityStudy,
		ActivitySkill,
		ActivityExercise,
		ActivityChores,
		ActivityRelaxation,
		ActivityCooking,
		ActivitySocial,
	}
}

func (a Activity) IsValid() bool {
	switch a {
	case ActivityStudy, ActivitySkill, ActivityExercise, ActivityChores,
		ActivityRelaxation, ActivityCooking, ActivitySocial:
		return true
	default:
		return false
	}
}

// DefaultDuration is the unscaled block length the generator plans for an
// activity kind.
func (a Activity) DefaultDuration() time.Duration {
	switch a {
	case ActivityStudy:
		return 90 * time.Minute
	case ActivitySkill:
		return 75 * time.Minute
	case ActivityExercise:
		return 45 * time.Minute
	case ActivityChores:
		return 40 * time.Minute
	case ActivityRelaxation:
		return 30 * time.Minute
	case ActivityCooking:
		return 45 * time.Minute
	case ActivitySocial:
		return 120 * time.Minute
	default:
		return 60 * time.Minute
	}
}

// Label returns the human-readable task title used for a planned block of
// this kind.
func (a Activity) Label() string {
	switch a {
	case ActivityStudy:
		return "Study"
	case ActivitySkill:
		return "Skill building"
	case ActivityExercise:
		return "Exercise"
	case ActivityChores:
		return "Chores"
	case ActivityRelaxation:
		return "Relax"
	case ActivityCooking:
		return "Cook"
	case ActivitySocial:
		return "Social time"
	default:
		return string(a)
	}
}

// ParseActivity resolves a stored string tag back to its Activity, reporting
// whether the tag named a built-in kind.
func ParseActivity(tag string) (Activity, bool) {
	a := Activity(tag)
	return a, a.IsValid()
}
