package domain

import (
	"time"

	"github.com/google/uuid"
)

// WorkoutType categorizes a logical-thinking workout.
type WorkoutType string

const (
	WorkoutPatternRecognition   WorkoutType = "pattern_recognition"
	WorkoutLogicalSequences     WorkoutType = "logical_sequences"
	WorkoutPuzzleSolving        WorkoutType = "puzzle_solving"
	WorkoutReasoningChains      WorkoutType = "reasoning_chains"
	WorkoutCriticalThinking     WorkoutType = "critical_thinking"
	WorkoutProblemDecomposition WorkoutType = "problem_decomposition"
)

// WorkoutDifficulty is a workout's difficulty tier.
type WorkoutDifficulty string

const (
	DifficultyBeginner     WorkoutDifficulty = "beginner"
	DifficultyIntermediate WorkoutDifficulty = "intermediate"
	DifficultyAdvanced     WorkoutDifficulty = "advanced"
	DifficultyExpert       WorkoutDifficulty = "expert"
)

// Workout is a logical-thinking exercise. The backend strips the solution
// for student callers.
type Workout struct {
	ID            uuid.UUID         `json:"id"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	WorkoutType   WorkoutType       `json:"workout_type"`
	Difficulty    WorkoutDifficulty `json:"difficulty"`
	LearningLevel LearningLevel     `json:"learning_level"`
	AgeGroup      AgeGroup          `json:"age_group"`
	EstimatedTime int               `json:"estimated_time_minutes"`
	SkillAreas    []SkillArea       `json:"skill_areas,omitempty"`
	Hints         []string          `json:"hints,omitempty"`
}

// WorkoutProgress aggregates a student's attempts for one workout type
// and difficulty.
type WorkoutProgress struct {
	WorkoutType        WorkoutType       `json:"workout_type"`
	Difficulty         WorkoutDifficulty `json:"difficulty"`
	LearningLevel      LearningLevel     `json:"learning_level"`
	TotalAttempts      int               `json:"total_attempts"`
	SuccessfulAttempts int               `json:"successful_attempts"`
	AverageScore       float64           `json:"average_score"`
	AverageTimeMinutes float64           `json:"average_time_minutes"`
	MasteryLevel       int               `json:"mastery_level"` // 0-100
	LastAttempt        *time.Time        `json:"last_attempt,omitempty"`
}

// WorkoutAttempt is one recorded attempt at a workout.
type WorkoutAttempt struct {
	ID        uuid.UUID  `json:"id"`
	WorkoutID uuid.UUID  `json:"workout_id"`
	StartedAt time.Time  `json:"started_at"`
	Completed *time.Time `json:"completed_at,omitempty"`
	IsCorrect *bool      `json:"is_correct,omitempty"`
	Score     *int       `json:"score,omitempty"`
	HintsUsed int        `json:"hints_used"`
}
