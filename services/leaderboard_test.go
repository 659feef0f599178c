// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/danielhkuo/safety-points/auth"
	"github.com/danielhkuo/safety-points/docstore"
	"github.com/danielhkuo/safety-points/models"
	"github.com/danielhkuo/safety-points/testutil"
	"github.com/danielhkuo/safety-points/validate"
)

func TestLeaderboardGet_SeedsDefaults(t *testing.T) {
	store := testutil.SetupTestStore(t)
	svc := NewLeaderboardService(docstore.New(store), testutil.TestPassword)

	doc, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(doc.Departments) != 6 {
		t.Fatalf("Expected 6 default departments, got %d", len(doc.Departments))
	}
	for _, d := range doc.Departments {
		if d.Points != 500 {
			t.Errorf("Expected %s at 500 points, got %v", d.Name, d.Points)
		}
	}

	var stored models.LeaderboardDocument
	if !testutil.ReadDocument(t, store, models.LeaderboardKey, &stored) {
		t.Fatal("Expected default leaderboard to be persisted")
	}
	if len(stored.Departments) != 6 {
		t.Errorf("Expected 6 stored departments, got %d", len(stored.Departments))
	}
}

func TestLeaderboardGet_ResetsCorruptDocument(t *testing.T) {
	testCases := []struct {
		name string
		data string
	}{
		{"not json", `garbage`},
		{"wrong shape", `{"teams":[]}`},
		{"invalid entry", `{"departments":[{"name":"CAD","points":500},{"name":"","points":1}]}`},
		{"empty list", `{"departments":[]}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := testutil.SetupTestStore(t)
			testutil.PutDocument(t, store, models.LeaderboardKey, tc.data)
			svc := NewLeaderboardService(docstore.New(store), testutil.TestPassword)

			doc, err := svc.Get(context.Background())
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if len(doc.Departments) != len(models.DefaultDepartments) {
				t.Errorf("Expected default roster, got %+v", doc.Departments)
			}

			var stored models.LeaderboardDocument
			testutil.ReadDocument(t, store, models.LeaderboardKey, &stored)
			if len(stored.Departments) != len(models.DefaultDepartments) {
				t.Errorf("Expected reset to be persisted, got %+v", stored.Departments)
			}
		})
	}
}

func TestLeaderboardReplace_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := testutil.SetupTestStore(t)
	svc := NewLeaderboardService(docstore.New(store), testutil.TestPassword)

	payload := json.RawMessage(`[{"name":" CAD ","points":500},{"name":"Wiring","points":"bad"},{"name":"Media","points":450.5}]`)
	if err := svc.Replace(ctx, payload, testutil.TestPassword); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	doc, err := svc.Get(ctx)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	expected := []models.Department{{Name: "CAD", Points: 500}, {Name: "Media", Points: 450.5}}
	if len(doc.Departments) != len(expected) {
		t.Fatalf("Expected %d departments, got %+v", len(expected), doc.Departments)
	}
	for i, d := range expected {
		if doc.Departments[i] != d {
			t.Errorf("Department %d: expected %+v, got %+v", i, d, doc.Departments[i])
		}
	}
}

func TestLeaderboardReplace_RejectsWithoutMutation(t *testing.T) {
	original := `{"departments":[{"name":"CAD","points":500}]}`

	testCases := []struct {
		name        string
		password    string
		configured  string
		payload     string
		expectedErr error
	}{
		{"empty list", testutil.TestPassword, testutil.TestPassword, `[]`, validate.ErrInvalidDepartments},
		{"all invalid", testutil.TestPassword, testutil.TestPassword, `[{"name":""}]`, validate.ErrInvalidDepartments},
		{"wrong password", "nope", testutil.TestPassword, `[{"name":"Media","points":1}]`, auth.ErrUnauthorized},
		{"not configured", "", "", `[{"name":"Media","points":1}]`, auth.ErrNotConfigured},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := testutil.SetupTestStore(t)
			testutil.PutDocument(t, store, models.LeaderboardKey, original)
			svc := NewLeaderboardService(docstore.New(store), tc.configured)

			err := svc.Replace(context.Background(), json.RawMessage(tc.payload), tc.password)
			if !errors.Is(err, tc.expectedErr) {
				t.Fatalf("Expected %v, got %v", tc.expectedErr, err)
			}

			var stored models.LeaderboardDocument
			testutil.ReadDocument(t, store, models.LeaderboardKey, &stored)
			if len(stored.Departments) != 1 || stored.Departments[0].Name != "CAD" {
				t.Errorf("Stored document changed: %+v", stored.Departments)
			}
		})
	}
}

func TestLeaderboardTestLogin(t *testing.T) {
	store := testutil.SetupTestStore(t)
	svc := NewLeaderboardService(docstore.New(store), testutil.TestPassword)

	if err := svc.TestLogin(testutil.TestPassword); err != nil {
		t.Errorf("Expected login to succeed, got %v", err)
	}
	if err := svc.TestLogin("wrong"); !errors.Is(err, auth.ErrUnauthorized) {
		t.Errorf("Expected ErrUnauthorized, got %v", err)
	}

	// No side effect: the document is not even seeded
	if testutil.ReadDocument(t, store, models.LeaderboardKey, &models.LeaderboardDocument{}) {
		t.Error("TestLogin must not create the leaderboard")
	}
}
