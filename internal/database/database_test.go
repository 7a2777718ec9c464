package database

import (
	"errors"
	"testing"

	"quadsolver/internal/models"
	"quadsolver/internal/quadratic"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCreateUser(t *testing.T) {
	s := openTestStore(t)

	id, err := s.CreateUser("alice", "secret")
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	if id <= 0 {
		t.Errorf("CreateUser() id = %v, want positive", id)
	}

	if _, err := s.CreateUser("alice", "other"); !errors.Is(err, ErrUserExists) {
		t.Errorf("CreateUser() duplicate error = %v, want %v", err, ErrUserExists)
	}

	user, err := s.GetUser("alice")
	if err != nil || user == nil {
		t.Fatalf("GetUser() = %v, %v", user, err)
	}
	if user.ID != id || user.Password == "secret" {
		t.Errorf("GetUser() = %+v, want id %v and hashed password", user, id)
	}
	if !CheckPasswordHash("secret", user.Password) {
		t.Error("CheckPasswordHash() = false for the right password")
	}
	if CheckPasswordHash("wrong", user.Password) {
		t.Error("CheckPasswordHash() = true for a wrong password")
	}

	missing, err := s.GetUser("bob")
	if err != nil || missing != nil {
		t.Errorf("GetUser() for unknown login = %v, %v, want nil, nil", missing, err)
	}
}

func TestSaveAndGetEquations(t *testing.T) {
	s := openTestStore(t)
	userID, err := s.CreateUser("alice", "secret")
	if err != nil {
		t.Fatal(err)
	}

	pair, err := quadratic.Solve(1, 2, 5)
	if err != nil {
		t.Fatal(err)
	}
	solved := &models.Equation{
		ID: "eq-1", A: 1, B: 2, C: 5,
		Status:  models.StatusCompleted,
		Roots:   &pair,
		Display: quadratic.FormatRoots(pair),
	}
	if err := s.SaveEquation(solved, userID); err != nil {
		t.Fatalf("SaveEquation() error = %v", err)
	}
	if solved.CreatedAt == "" {
		t.Error("SaveEquation() did not set CreatedAt")
	}

	failed := &models.Equation{
		ID: "eq-2", A: 1e200, B: 1e200, C: 1e200,
		Status:    models.StatusError,
		ErrorKind: quadratic.KindInsufficientPrecision,
	}
	if err := s.SaveEquation(failed, userID); err != nil {
		t.Fatalf("SaveEquation() error = %v", err)
	}

	equations, err := s.GetEquations(userID)
	if err != nil {
		t.Fatalf("GetEquations() error = %v", err)
	}
	if len(equations) != 2 {
		t.Fatalf("GetEquations() returned %d equations, want 2", len(equations))
	}
	if equations[0].Roots == nil || *equations[0].Roots != pair {
		t.Errorf("GetEquations()[0].Roots = %+v, want %+v", equations[0].Roots, pair)
	}
	if equations[1].Roots != nil || equations[1].ErrorKind != quadratic.KindInsufficientPrecision {
		t.Errorf("GetEquations()[1] = %+v", equations[1])
	}

	other, err := s.GetEquations(userID + 1)
	if err != nil || len(other) != 0 {
		t.Errorf("GetEquations() for another user = %v, %v", other, err)
	}
}

func TestSaveEquationUpdatesStatus(t *testing.T) {
	s := openTestStore(t)

	eq := &models.Equation{ID: "eq-1", A: 1, B: -3, C: 2, Status: models.StatusProcessing}
	if err := s.SaveEquation(eq, 1); err != nil {
		t.Fatal(err)
	}

	pair, _ := quadratic.Solve(1, -3, 2)
	eq.Status = models.StatusCompleted
	eq.Roots = &pair
	if err := s.SaveEquation(eq, 1); err != nil {
		t.Fatalf("SaveEquation() update error = %v", err)
	}

	got, err := s.GetEquation("eq-1", 1)
	if err != nil {
		t.Fatalf("GetEquation() error = %v", err)
	}
	if got.Status != models.StatusCompleted || got.Roots == nil || got.Roots.X1.Re != 2 {
		t.Errorf("GetEquation() = %+v", got)
	}

	if _, err := s.GetEquation("eq-1", 2); !errors.Is(err, ErrEquationNotFound) {
		t.Errorf("GetEquation() for another user error = %v, want %v", err, ErrEquationNotFound)
	}
}
