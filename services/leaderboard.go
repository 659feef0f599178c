// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/danielhkuo/safety-points/auth"
	"github.com/danielhkuo/safety-points/docstore"
	"github.com/danielhkuo/safety-points/models"
	"github.com/danielhkuo/safety-points/validate"
)

type LeaderboardService struct {
	docs     *docstore.Store
	password string
}

func NewLeaderboardService(docs *docstore.Store, password string) *LeaderboardService {
	return &LeaderboardService{docs: docs, password: password}
}

// Get returns the leaderboard, seeding it on first access. A stored document
// that fails validation is replaced by the default roster and persisted.
func (s *LeaderboardService) Get(ctx context.Context) (models.LeaderboardDocument, error) {
	data, err := s.docs.Load(ctx, models.LeaderboardKey, models.DefaultLeaderboard())
	if err != nil {
		return models.LeaderboardDocument{}, err
	}
	if doc, ok := validate.NormalizeLeaderboard(data); ok {
		return doc, nil
	}

	var doc models.LeaderboardDocument
	err = s.docs.Update(ctx, models.LeaderboardKey, func(ctx context.Context) error {
		// Another request may have repaired or replaced it while we waited
		data, err := s.docs.Get(ctx, models.LeaderboardKey)
		if err != nil && !errors.Is(err, docstore.ErrNotFound) {
			return err
		}
		if err == nil {
			if current, ok := validate.NormalizeLeaderboard(data); ok {
				doc = current
				return nil
			}
		}

		slog.Warn("leaderboard document invalid, resetting to defaults",
			"key", models.LeaderboardKey,
			"stored_bytes", len(data),
		)
		doc = models.DefaultLeaderboard()
		return s.docs.Save(ctx, models.LeaderboardKey, doc)
	})
	if err != nil {
		return models.LeaderboardDocument{}, err
	}
	return doc, nil
}

// Replace overwrites the whole department list
func (s *LeaderboardService) Replace(ctx context.Context, departments json.RawMessage, password string) error {
	if err := auth.CheckPassword(s.password, password); err != nil {
		return err
	}

	list, err := validate.SanitizeDepartments(departments)
	if err != nil {
		return err
	}

	return s.docs.Update(ctx, models.LeaderboardKey, func(ctx context.Context) error {
		return s.docs.Save(ctx, models.LeaderboardKey, models.LeaderboardDocument{Departments: list})
	})
}

// TestLogin checks the admin password without touching any document
func (s *LeaderboardService) TestLogin(password string) error {
	return auth.CheckPassword(s.password, password)
}
