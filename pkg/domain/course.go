package domain

import (
	"time"

	"github.com/google/uuid"
)

// SkillArea is one of the curriculum's future-readiness skill tracks.
type SkillArea string

const (
	SkillAILiteracy      SkillArea = "ai_literacy"
	SkillLogicalThinking SkillArea = "logical_thinking"
	SkillProblemSolving  SkillArea = "creative_problem_solving"
	SkillFutureCareers   SkillArea = "future_career_skills"
	SkillSystemsThinking SkillArea = "systems_thinking"
	SkillInnovation      SkillArea = "innovation_methods"
)

// Course is a published course in the catalog.
type Course struct {
	ID              uuid.UUID     `json:"id"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	LearningLevel   LearningLevel `json:"learning_level"`
	SkillAreas      []SkillArea   `json:"skill_areas"`
	AgeGroup        AgeGroup      `json:"age_group"`
	IsPremium       bool          `json:"is_premium"`
	DifficultyLevel int           `json:"difficulty_level"` // 1-5
	EstimatedHours  int           `json:"estimated_hours,omitempty"`
	EnrollmentCount int           `json:"enrollment_count"`
	AverageRating   float64       `json:"average_rating"`
	IsPublished     bool          `json:"is_published"`
	CreatedAt       time.Time     `json:"created_at"`
}

// Enrollment is the caller's read-only view of one course enrollment.
// Progress is a completion percentage in [0, 100], owned by the backend.
type Enrollment struct {
	ID          uuid.UUID `json:"id"`
	CourseID    uuid.UUID `json:"course_id"`
	CourseTitle string    `json:"course_title"`
	Progress    int       `json:"progress"`
	EnrolledAt  time.Time `json:"enrolled_at"`
}

// FrameworkLevel describes one tier of the learning framework.
type FrameworkLevel struct {
	LevelName       string   `json:"level_name"`
	AgeRange        string   `json:"age_range"`
	Description     string   `json:"description"`
	CoreSkills      []string `json:"core_skills"`
	FutureReadiness []string `json:"future_readiness"`
}

// LearningPath is a student's progress through their learning level.
type LearningPath struct {
	ID                uuid.UUID       `json:"id"`
	StudentID         uuid.UUID       `json:"student_id"`
	LearningLevel     LearningLevel   `json:"learning_level"`
	SkillProgress     map[string]int  `json:"skill_progress"`
	CompletedCourses  []uuid.UUID     `json:"completed_courses"`
	CurrentFocusAreas []SkillArea     `json:"current_focus_areas"`
	TotalLearningTime int             `json:"total_learning_time"`
	LevelCompletion   float64         `json:"level_completion_percentage"`
	Framework         *FrameworkLevel `json:"framework,omitempty"`
	LastUpdated       time.Time       `json:"last_updated"`
}
