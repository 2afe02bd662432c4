package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"xrnode/internal/domain/profile"
	"xrnode/internal/search"
	"xrnode/internal/ws"
)

type ProfileUsecase interface {
	Get(ctx context.Context, id string) (profile.Profile, error)
	List(ctx context.Context) ([]profile.Profile, error)
	Search(ctx context.Context, query string) ([]profile.Profile, error)
	Import(ctx context.Context, raw []byte) (profile.Profile, error)
}

type Profiles struct {
	repo     profile.Repository
	matches  MatchUsecase
	notifier ws.Notifier
	logger   *log.Logger
}

func NewProfileUsecase(repo profile.Repository, matches MatchUsecase, notifier ws.Notifier, logger *log.Logger) *Profiles {
	if notifier == nil {
		notifier = ws.NopNotifier{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Profiles{repo: repo, matches: matches, notifier: notifier, logger: logger}
}

func (u *Profiles) Get(ctx context.Context, id string) (profile.Profile, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return profile.Profile{}, ErrInvalidInput
	}
	return loadParticipant(ctx, u.repo, id)
}

func (u *Profiles) List(ctx context.Context) ([]profile.Profile, error) {
	out, err := u.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	return out, nil
}

// Search returns every participant for a blank query. Otherwise the query is
// expanded with synonyms and the union of matches is ranked by relevance.
func (u *Profiles) Search(ctx context.Context, query string) ([]profile.Profile, error) {
	q := search.ProcessQuery(query)
	if q.Normalized == "" {
		return u.List(ctx)
	}

	seen := make(map[string]struct{})
	var candidates []profile.Profile
	for _, v := range q.Variants {
		found, err := u.repo.Search(ctx, v)
		if err != nil {
			return nil, fmt.Errorf("search participants: %w", err)
		}
		for _, p := range found {
			if _, ok := seen[p.ID]; ok {
				continue
			}
			seen[p.ID] = struct{}{}
			candidates = append(candidates, p)
		}
	}
	return search.Rank(candidates, q.Variants), nil
}

// Import decodes and validates a participant record, then inserts or
// replaces it.
func (u *Profiles) Import(ctx context.Context, raw []byte) (profile.Profile, error) {
	p, err := profile.Decode(raw)
	if err != nil {
		return profile.Profile{}, err
	}

	if err := u.repo.Upsert(ctx, p); err != nil {
		return profile.Profile{}, fmt.Errorf("upsert participant %s: %w", p.ID, err)
	}
	if u.matches != nil {
		u.matches.Invalidate(ctx, p.ID)
	}

	u.logger.Printf("Profile import | id=%s skills=%d interests=%d", p.ID, len(p.Skills), len(p.Interests))
	u.notifier.Notify("", ws.EventProfileImported, map[string]string{"participant_id": p.ID})
	return p, nil
}

// IsValidationError reports whether err came from profile validation.
func IsValidationError(err error) bool {
	return errors.Is(err, profile.ErrInvalidProfile)
}
