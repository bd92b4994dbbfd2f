package domain

import "github.com/google/uuid"

// DashboardStats is the aggregate shown on a student's dashboard.
type DashboardStats struct {
	EnrolledCourses   int            `json:"enrolled_courses"`
	CompletedCourses  int            `json:"completed_courses"`
	TotalLearningTime int            `json:"total_learning_time"` // minutes
	LevelCompletion   float64        `json:"level_completion_percentage"`
	SkillProgress     map[string]int `json:"skill_progress"`
	CurrentStreak     int            `json:"current_streak_days"`
}

// StudentAnalytics is one row of the teacher/admin student overview.
type StudentAnalytics struct {
	UserID            uuid.UUID        `json:"user_id"`
	FullName          string           `json:"full_name"`
	Email             string           `json:"email"`
	AgeGroup          AgeGroup         `json:"age_group,omitempty"`
	LearningLevel     LearningLevel    `json:"learning_level,omitempty"`
	SubscriptionType  SubscriptionType `json:"subscription_type,omitempty"`
	SkillProgress     map[string]int   `json:"skill_progress"`
	LevelCompletion   float64          `json:"level_completion"`
	TotalLearningTime int              `json:"total_learning_time"`
}
