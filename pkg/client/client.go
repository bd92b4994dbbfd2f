package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/mentora/mentora/pkg/domain"
)

// Client is the Mentora platform API client.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New creates a new API client. token may be empty for anonymous calls
// (registration, public enrollment).
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetToken replaces the bearer token used on subsequent requests.
// An empty string reverts the client to anonymous.
func (c *Client) SetToken(token string) {
	c.token = token
}

// --- Auth ---

// LoginResponse is the payload returned by a successful login.
type LoginResponse struct {
	AccessToken string         `json:"access_token"`
	TokenType   string         `json:"token_type"`
	User        domain.Profile `json:"user"`
}

// Login exchanges credentials for a bearer token and the user's profile.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var res LoginResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.post(ctx, "/auth/login", body, &res); err != nil {
		return nil, fmt.Errorf("client.Login: %w", err)
	}
	return &res, nil
}

// RegisterRequest is the payload for creating a new account.
type RegisterRequest struct {
	Email    string          `json:"email"`
	FullName string          `json:"full_name"`
	Password string          `json:"password"`
	Role     domain.Role     `json:"role"`
	AgeGroup domain.AgeGroup `json:"age_group,omitempty"`
}

// Register creates a new account. It does not establish a session; the
// caller must log in separately.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*domain.Profile, error) {
	var p domain.Profile
	if err := c.post(ctx, "/auth/register", req, &p); err != nil {
		return nil, fmt.Errorf("client.Register: %w", err)
	}
	return &p, nil
}

// Me returns the profile the current token resolves to.
func (c *Client) Me(ctx context.Context) (*domain.Profile, error) {
	var p domain.Profile
	if err := c.get(ctx, "/auth/me", &p); err != nil {
		return nil, fmt.Errorf("client.Me: %w", err)
	}
	return &p, nil
}

// Logout notifies the backend that the session is ending.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.doRequest(ctx, http.MethodPost, "/auth/logout", nil, nil); err != nil {
		return fmt.Errorf("client.Logout: %w", err)
	}
	return nil
}

// --- Courses ---

// CourseFilter narrows the course catalog listing. Zero values are omitted.
type CourseFilter struct {
	LearningLevel domain.LearningLevel
	SkillArea     domain.SkillArea
	AgeGroup      domain.AgeGroup
}

// ListCourses fetches the published course catalog.
func (c *Client) ListCourses(ctx context.Context, f CourseFilter) ([]domain.Course, error) {
	params := url.Values{}
	if f.LearningLevel != "" {
		params.Set("learning_level", string(f.LearningLevel))
	}
	if f.SkillArea != "" {
		params.Set("skill_area", string(f.SkillArea))
	}
	if f.AgeGroup != "" {
		params.Set("age_group", string(f.AgeGroup))
	}

	path := "/courses"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}
	var courses []domain.Course
	if err := c.get(ctx, path, &courses); err != nil {
		return nil, fmt.Errorf("client.ListCourses: %w", err)
	}
	return courses, nil
}

// GetCourse fetches a single course by ID.
func (c *Client) GetCourse(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	var course domain.Course
	if err := c.get(ctx, "/courses/"+id.String(), &course); err != nil {
		return nil, fmt.Errorf("client.GetCourse: %w", err)
	}
	return &course, nil
}

// Enroll enrolls the current user in a course.
func (c *Client) Enroll(ctx context.Context, courseID uuid.UUID) error {
	if err := c.doRequest(ctx, http.MethodPost, "/enrollments/"+courseID.String(), nil, nil); err != nil {
		return fmt.Errorf("client.Enroll: %w", err)
	}
	return nil
}

// MyEnrollments returns the current user's enrollments with progress.
func (c *Client) MyEnrollments(ctx context.Context) ([]domain.Enrollment, error) {
	var enrollments []domain.Enrollment
	if err := c.get(ctx, "/enrollments/my", &enrollments); err != nil {
		return nil, fmt.Errorf("client.MyEnrollments: %w", err)
	}
	return enrollments, nil
}

// --- Analytics & learning path ---

// Dashboard returns the current student's dashboard aggregates.
func (c *Client) Dashboard(ctx context.Context) (*domain.DashboardStats, error) {
	var stats domain.DashboardStats
	if err := c.get(ctx, "/analytics/dashboard", &stats); err != nil {
		return nil, fmt.Errorf("client.Dashboard: %w", err)
	}
	return &stats, nil
}

// StudentAnalytics returns the teacher/admin student overview.
func (c *Client) StudentAnalytics(ctx context.Context) ([]domain.StudentAnalytics, error) {
	var students []domain.StudentAnalytics
	if err := c.get(ctx, "/analytics/students", &students); err != nil {
		return nil, fmt.Errorf("client.StudentAnalytics: %w", err)
	}
	return students, nil
}

// LearningPath returns the current student's learning path progress.
func (c *Client) LearningPath(ctx context.Context) (*domain.LearningPath, error) {
	var path domain.LearningPath
	if err := c.get(ctx, "/learning-path", &path); err != nil {
		return nil, fmt.Errorf("client.LearningPath: %w", err)
	}
	return &path, nil
}

// LearningFramework returns the curriculum framework, keyed by level.
func (c *Client) LearningFramework(ctx context.Context) (map[string]domain.FrameworkLevel, error) {
	var framework map[string]domain.FrameworkLevel
	if err := c.get(ctx, "/learning-framework", &framework); err != nil {
		return nil, fmt.Errorf("client.LearningFramework: %w", err)
	}
	return framework, nil
}

// --- Workouts ---

// WorkoutFilter narrows the workout listing. Zero values are omitted.
type WorkoutFilter struct {
	LearningLevel domain.LearningLevel
	WorkoutType   domain.WorkoutType
	Difficulty    domain.WorkoutDifficulty
}

// ListWorkouts fetches available logical-thinking workouts.
func (c *Client) ListWorkouts(ctx context.Context, f WorkoutFilter) ([]domain.Workout, error) {
	params := url.Values{}
	if f.LearningLevel != "" {
		params.Set("learning_level", string(f.LearningLevel))
	}
	if f.WorkoutType != "" {
		params.Set("workout_type", string(f.WorkoutType))
	}
	if f.Difficulty != "" {
		params.Set("difficulty", string(f.Difficulty))
	}

	path := "/workouts"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}
	var workouts []domain.Workout
	if err := c.get(ctx, path, &workouts); err != nil {
		return nil, fmt.Errorf("client.ListWorkouts: %w", err)
	}
	return workouts, nil
}

// WorkoutProgressReport is the response of the workout progress endpoint.
type WorkoutProgressReport struct {
	ProgressByType []domain.WorkoutProgress `json:"progress_by_type"`
	RecentAttempts []domain.WorkoutAttempt  `json:"recent_attempts"`
	TotalAttempts  int                      `json:"total_attempts"`
}

// WorkoutProgress returns the current student's workout progress.
func (c *Client) WorkoutProgress(ctx context.Context) (*WorkoutProgressReport, error) {
	var report WorkoutProgressReport
	if err := c.get(ctx, "/workouts/progress", &report); err != nil {
		return nil, fmt.Errorf("client.WorkoutProgress: %w", err)
	}
	return &report, nil
}

// AttemptStarted is the response to starting a workout attempt.
type AttemptStarted struct {
	AttemptID uuid.UUID `json:"attempt_id"`
	Message   string    `json:"message"`
}

// StartWorkoutAttempt records the start of a new attempt at a workout.
func (c *Client) StartWorkoutAttempt(ctx context.Context, workoutID uuid.UUID) (*AttemptStarted, error) {
	var started AttemptStarted
	if err := c.post(ctx, "/workouts/"+workoutID.String()+"/attempt", nil, &started); err != nil {
		return nil, fmt.Errorf("client.StartWorkoutAttempt: %w", err)
	}
	return &started, nil
}

// --- Enrollment checkout ---

// CheckoutRequest is the payload for both payment paths of the public
// enrollment flow.
type CheckoutRequest struct {
	StudentName  string              `json:"student_name"`
	ParentName   string              `json:"parent_name"`
	Email        string              `json:"email"`
	Phone        string              `json:"phone"`
	Address      string              `json:"address,omitempty"`
	ProgramID    string              `json:"program_id"`
	AgeGroup     domain.AgeGroup     `json:"age_group"`
	BillingCycle domain.BillingCycle `json:"subscription_type"`
	Amount       int                 `json:"amount"`
}

// CheckoutSession is the hosted-checkout redirect returned by the backend.
type CheckoutSession struct {
	CheckoutURL string `json:"checkout_url"`
	SessionID   string `json:"session_id"`
}

// CreateCheckout starts a hosted-checkout session for a public enrollment.
func (c *Client) CreateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	var session CheckoutSession
	if err := c.post(ctx, "/enrollment/checkout", req, &session); err != nil {
		return nil, fmt.Errorf("client.CreateCheckout: %w", err)
	}
	return &session, nil
}

// BankTransferResult confirms a pending bank-transfer enrollment.
type BankTransferResult struct {
	Success      bool   `json:"success"`
	EnrollmentID string `json:"enrollment_id"`
	Message      string `json:"message"`
}

// CreateBankTransfer records a pending enrollment to be settled by bank
// transfer and returns its reference.
func (c *Client) CreateBankTransfer(ctx context.Context, req CheckoutRequest) (*BankTransferResult, error) {
	var result BankTransferResult
	if err := c.post(ctx, "/enrollment/bank-transfer", req, &result); err != nil {
		return nil, fmt.Errorf("client.CreateBankTransfer: %w", err)
	}
	return &result, nil
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.doRequest(ctx, http.MethodPost, path, body, out)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode >= 400 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
		if readErr != nil {
			return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		var apiErr struct {
			Detail string `json:"detail"`
			Error  string `json:"error"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil {
			// The backend reports errors under "detail"; a few public
			// endpoints still use "error".
			if apiErr.Detail != "" {
				return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Detail}
			}
			if apiErr.Error != "" {
				return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Error}
			}
		}
		return &HTTPError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, out)
}
