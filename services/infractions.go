// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/danielhkuo/safety-points/auth"
	"github.com/danielhkuo/safety-points/docstore"
	"github.com/danielhkuo/safety-points/models"
	"github.com/danielhkuo/safety-points/validate"
)

type InfractionService struct {
	docs     *docstore.Store
	password string
	now      func() time.Time
}

func NewInfractionService(docs *docstore.Store, password string) *InfractionService {
	return &InfractionService{docs: docs, password: password, now: time.Now}
}

// Get returns the infraction log, seeding it on first access. Malformed
// entries are dropped and the cleaned log is written back.
func (s *InfractionService) Get(ctx context.Context) (models.InfractionsDocument, error) {
	data, err := s.docs.Load(ctx, models.InfractionsKey, models.EmptyInfractions())
	if err != nil {
		return models.InfractionsDocument{}, err
	}

	doc, _, changed := validate.NormalizeInfractions(data)
	if !changed {
		return doc, nil
	}

	err = s.docs.Update(ctx, models.InfractionsKey, func(ctx context.Context) error {
		var dropped int
		doc, dropped, changed, err = s.load(ctx)
		if err != nil || !changed {
			return err
		}

		slog.Warn("dropped malformed infractions",
			"key", models.InfractionsKey,
			"dropped", dropped,
			"kept", len(doc.Infractions),
		)
		return s.docs.Save(ctx, models.InfractionsKey, doc)
	})
	if err != nil {
		return models.InfractionsDocument{}, err
	}
	return doc, nil
}

// Append validates and records a new infraction stamped with the current time
func (s *InfractionService) Append(ctx context.Context, fields map[string]any, password string) (models.Infraction, error) {
	if err := auth.CheckPassword(s.password, password); err != nil {
		return models.Infraction{}, err
	}

	payload, err := validate.ParseInfractionPayload(fields)
	if err != nil {
		return models.Infraction{}, err
	}

	infraction := models.Infraction{
		Department:  payload.Department,
		Points:      payload.Points,
		Description: payload.Description,
		Date:        s.now().UnixMilli(),
	}

	err = s.docs.Update(ctx, models.InfractionsKey, func(ctx context.Context) error {
		doc, _, _, err := s.load(ctx)
		if err != nil && !errors.Is(err, docstore.ErrNotFound) {
			return err
		}

		doc.Infractions = append(doc.Infractions, infraction)
		return s.docs.Save(ctx, models.InfractionsKey, doc)
	})
	if err != nil {
		return models.Infraction{}, err
	}
	return infraction, nil
}

// DeleteAt removes the infraction at index in the current (normalized) log.
// Later entries shift down by one.
func (s *InfractionService) DeleteAt(ctx context.Context, rawIndex json.RawMessage, password string) (models.Infraction, error) {
	if err := auth.CheckPassword(s.password, password); err != nil {
		return models.Infraction{}, err
	}

	index, err := validate.ParseIndex(rawIndex)
	if err != nil {
		return models.Infraction{}, err
	}

	var removed models.Infraction
	err = s.docs.Update(ctx, models.InfractionsKey, func(ctx context.Context) error {
		doc, _, _, err := s.load(ctx)
		if errors.Is(err, docstore.ErrNotFound) {
			return ErrNoDocument
		}
		if err != nil {
			return err
		}

		if len(doc.Infractions) == 0 {
			return ErrNoDocument
		}
		if index >= len(doc.Infractions) {
			return ErrIndexOutOfRange
		}

		removed = doc.Infractions[index]
		doc.Infractions = append(doc.Infractions[:index], doc.Infractions[index+1:]...)
		return s.docs.Save(ctx, models.InfractionsKey, doc)
	})
	if err != nil {
		return models.Infraction{}, err
	}
	return removed, nil
}

// load reads and normalizes the stored log. On docstore.ErrNotFound the
// returned document is empty.
func (s *InfractionService) load(ctx context.Context) (models.InfractionsDocument, int, bool, error) {
	data, err := s.docs.Get(ctx, models.InfractionsKey)
	if err != nil {
		return models.EmptyInfractions(), 0, false, err
	}
	doc, dropped, changed := validate.NormalizeInfractions(data)
	return doc, dropped, changed, nil
}
