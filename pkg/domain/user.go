package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of account roles on the platform.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

// AllRoles lists every valid role, in display order.
var AllRoles = []Role{RoleStudent, RoleTeacher, RoleAdmin}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return true
	}
	return false
}

// AgeGroup is a student's age bracket; it determines the learning level.
type AgeGroup string

const (
	AgeFoundation  AgeGroup = "5-8"
	AgeDevelopment AgeGroup = "9-12"
	AgeMastery     AgeGroup = "13-16"
)

// AgeGroups lists the brackets in ascending order.
var AgeGroups = []AgeGroup{AgeFoundation, AgeDevelopment, AgeMastery}

// LearningLevel is the curriculum tier a student is placed in.
type LearningLevel string

const (
	LevelFoundation  LearningLevel = "foundation"
	LevelDevelopment LearningLevel = "development"
	LevelMastery     LearningLevel = "mastery"
)

// LevelForAge maps an age group to its learning level.
func LevelForAge(ag AgeGroup) LearningLevel {
	switch ag {
	case AgeDevelopment:
		return LevelDevelopment
	case AgeMastery:
		return LevelMastery
	default:
		return LevelFoundation
	}
}

// SubscriptionType is a paid plan's billing interval.
type SubscriptionType string

const (
	SubMonthly   SubscriptionType = "monthly"
	SubQuarterly SubscriptionType = "quarterly"
	SubAnnual    SubscriptionType = "annual"
)

// Profile is the authenticated user's resolved identity. It is an immutable
// snapshot from the backend, replaced wholesale on re-fetch.
type Profile struct {
	ID                  uuid.UUID         `json:"id"`
	Email               string            `json:"email"`
	FullName            string            `json:"full_name"`
	Role                Role              `json:"role"`
	AgeGroup            AgeGroup          `json:"age_group,omitempty"`
	LearningLevel       LearningLevel     `json:"learning_level,omitempty"`
	SubscriptionType    SubscriptionType  `json:"subscription_type,omitempty"`
	SubscriptionExpires *time.Time        `json:"subscription_expires,omitempty"`
	SkillProgress       map[string]int    `json:"skill_progress,omitempty"`
	TotalWatchTime      int               `json:"total_watch_time,omitempty"`
	IsActive            bool              `json:"is_active"`
	CreatedAt           time.Time         `json:"created_at"`
}
