package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/mentora/mentora/pkg/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, "")
}

func TestLogin(t *testing.T) {
	userID := uuid.New()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("path = %q, want /auth/login", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("method = %q, want POST", r.Method)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if body["email"] != "amara@example.lk" {
			t.Errorf("email = %q", body["email"])
		}
		json.NewEncoder(w).Encode(LoginResponse{ //nolint:errcheck
			AccessToken: "tok-123",
			TokenType:   "bearer",
			User: domain.Profile{
				ID:       userID,
				Email:    "amara@example.lk",
				FullName: "Amara Perera",
				Role:     domain.RoleStudent,
			},
		})
	})

	res, err := c.Login(context.Background(), "amara@example.lk", "secret1")
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if res.AccessToken != "tok-123" {
		t.Errorf("AccessToken = %q", res.AccessToken)
	}
	if res.User.ID != userID {
		t.Errorf("User.ID = %v, want %v", res.User.ID, userID)
	}
}

func TestLoginFailureReturnsBackendMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Incorrect email or password"}) //nolint:errcheck
	})

	_, err := c.Login(context.Background(), "amara@example.lk", "wrong")
	if err == nil {
		t.Fatal("Login() = nil error, want failure")
	}
	if got := ErrorMessage(err); got != "Incorrect email or password" {
		t.Errorf("ErrorMessage() = %q, want the backend message verbatim", got)
	}
	if !IsAuthFailure(err) {
		t.Error("IsAuthFailure() = false, want true for 401")
	}
}

func TestErrorFallbackKey(t *testing.T) {
	// A few public endpoints report under "error" instead of "detail".
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid program"}) //nolint:errcheck
	})

	_, err := c.CreateCheckout(context.Background(), CheckoutRequest{})
	if err == nil {
		t.Fatal("expected error")
	}
	if got := ErrorMessage(err); got != "Invalid program" {
		t.Errorf("ErrorMessage() = %q", got)
	}
	if IsAuthFailure(err) {
		t.Error("IsAuthFailure() = true for a 400")
	}
}

func TestMeSendsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(domain.Profile{ID: uuid.New()}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, "tok-abc")
	if _, err := c.Me(context.Background()); err != nil {
		t.Fatalf("Me() error: %v", err)
	}
	if gotAuth != "Bearer tok-abc" {
		t.Errorf("Authorization = %q", gotAuth)
	}
}

func TestEnrollPostsCoursePath(t *testing.T) {
	courseID := uuid.New()
	var gotPath, gotMethod string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		w.WriteHeader(http.StatusCreated)
	})

	if err := c.Enroll(context.Background(), courseID); err != nil {
		t.Fatalf("Enroll() error: %v", err)
	}
	if want := "/enrollments/" + courseID.String(); gotPath != want {
		t.Errorf("path = %q, want %q", gotPath, want)
	}
	if gotMethod != http.MethodPost {
		t.Errorf("method = %q", gotMethod)
	}
}

func TestListCoursesFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter CourseFilter
		want   string
	}{
		{"no filter", CourseFilter{}, ""},
		{"level only", CourseFilter{LearningLevel: domain.LevelMastery}, "learning_level=mastery"},
		{
			"level and skill",
			CourseFilter{LearningLevel: domain.LevelFoundation, SkillArea: domain.SkillAILiteracy},
			"learning_level=foundation&skill_area=ai_literacy",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotQuery string
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				gotQuery = r.URL.RawQuery
				json.NewEncoder(w).Encode([]domain.Course{}) //nolint:errcheck
			})
			if _, err := c.ListCourses(context.Background(), tt.filter); err != nil {
				t.Fatalf("ListCourses() error: %v", err)
			}
			if gotQuery != tt.want {
				t.Errorf("query = %q, want %q", gotQuery, tt.want)
			}
		})
	}
}

func TestCreateCheckout(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/enrollment/checkout" {
			t.Errorf("path = %q", r.URL.Path)
		}
		var req CheckoutRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.ProgramID != "explorers" || req.Amount != 4200 {
			t.Errorf("got program %q amount %d", req.ProgramID, req.Amount)
		}
		json.NewEncoder(w).Encode(CheckoutSession{ //nolint:errcheck
			CheckoutURL: "https://pay.example/session/s1",
			SessionID:   "s1",
		})
	})

	session, err := c.CreateCheckout(context.Background(), CheckoutRequest{
		StudentName:  "Nimal",
		ParentName:   "Kumari",
		Email:        "kumari@example.lk",
		Phone:        "0771234567",
		ProgramID:    "explorers",
		AgeGroup:     domain.AgeDevelopment,
		BillingCycle: domain.CycleQuarterly,
		Amount:       4200,
	})
	if err != nil {
		t.Fatalf("CreateCheckout() error: %v", err)
	}
	if session.CheckoutURL != "https://pay.example/session/s1" {
		t.Errorf("CheckoutURL = %q", session.CheckoutURL)
	}
}

func TestCreateBankTransfer(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/enrollment/bank-transfer" {
			t.Errorf("path = %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(BankTransferResult{ //nolint:errcheck
			Success:      true,
			EnrollmentID: "ENR-2024-0042",
			Message:      "We will confirm your transfer within 2 working days",
		})
	})

	result, err := c.CreateBankTransfer(context.Background(), CheckoutRequest{ProgramID: "teens"})
	if err != nil {
		t.Fatalf("CreateBankTransfer() error: %v", err)
	}
	if !result.Success || result.EnrollmentID != "ENR-2024-0042" {
		t.Errorf("result = %+v", result)
	}
}

func TestStartWorkoutAttempt(t *testing.T) {
	workoutID := uuid.New()
	attemptID := uuid.New()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if want := "/workouts/" + workoutID.String() + "/attempt"; r.URL.Path != want {
			t.Errorf("path = %q, want %q", r.URL.Path, want)
		}
		json.NewEncoder(w).Encode(AttemptStarted{AttemptID: attemptID, Message: "good luck"}) //nolint:errcheck
	})

	started, err := c.StartWorkoutAttempt(context.Background(), workoutID)
	if err != nil {
		t.Fatalf("StartWorkoutAttempt() error: %v", err)
	}
	if started.AttemptID != attemptID {
		t.Errorf("AttemptID = %v", started.AttemptID)
	}
}
