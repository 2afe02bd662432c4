package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"xrnode/internal/domain/matching"
	"xrnode/internal/domain/profile"
	"xrnode/internal/metrics"
)

type MatchOutcome struct {
	Viewer    profile.Profile    `json:"viewer"`
	Target    profile.Profile    `json:"target"`
	Result    matching.Result    `json:"result"`
	Breakdown matching.Breakdown `json:"breakdown"`
	Label     string             `json:"label"`
	AuraColor string             `json:"aura_color"`
}

type MatchUsecase interface {
	Match(ctx context.Context, viewerID, targetID string) (MatchOutcome, error)
	Compute(ctx context.Context, viewer, target profile.Profile) matching.Result
	Invalidate(ctx context.Context, participantID string)
}

type Matcher struct {
	engine      *matching.Engine
	profiles    profile.Repository
	cache       MatchCache
	ttl         time.Duration
	fingerprint string
	metrics     metrics.Recorder
	logger      *log.Logger
}

func NewMatchUsecase(engine *matching.Engine, profiles profile.Repository, cache MatchCache, ttl time.Duration, rec metrics.Recorder, logger *log.Logger) *Matcher {
	if engine == nil {
		engine = matching.NewEngine(matching.DefaultConfig())
	}
	if rec == nil {
		rec = metrics.Nop{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Matcher{
		engine:      engine,
		profiles:    profiles,
		cache:       cache,
		ttl:         ttl,
		fingerprint: ConfigFingerprint(engine.Config()),
		metrics:     rec,
		logger:      logger,
	}
}

func (u *Matcher) Match(ctx context.Context, viewerID, targetID string) (MatchOutcome, error) {
	if viewerID == "" || targetID == "" {
		return MatchOutcome{}, ErrInvalidInput
	}

	viewer, err := loadParticipant(ctx, u.profiles, viewerID)
	if err != nil {
		return MatchOutcome{}, err
	}
	target, err := loadParticipant(ctx, u.profiles, targetID)
	if err != nil {
		return MatchOutcome{}, err
	}

	res := u.Compute(ctx, viewer, target)
	return MatchOutcome{
		Viewer:    viewer,
		Target:    target,
		Result:    res,
		Breakdown: u.engine.Breakdown(viewer, target),
		Label:     res.Level.Label(),
		AuraColor: res.Level.AuraColor(),
	}, nil
}

// Compute scores viewer against target, consulting the cache first. Cache
// failures degrade to a direct computation.
func (u *Matcher) Compute(ctx context.Context, viewer, target profile.Profile) matching.Result {
	start := time.Now()

	var key string
	if u.cache != nil {
		key = MatchCacheKey(u.fingerprint, viewer, target)
		var cached matching.Result
		hit, err := u.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			u.logger.Printf("Match cache | op=get key=%s err=%v", key, err)
		}
		u.metrics.CacheLookup(hit)
		if hit && cached.Level.Valid() {
			u.metrics.ObserveMatch(string(cached.Level), time.Since(start))
			return cached
		}
	}

	res := u.engine.Compute(viewer, target)

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, res, u.ttl); err != nil {
			u.logger.Printf("Match cache | op=set key=%s err=%v", key, err)
		}
	}
	u.metrics.ObserveMatch(string(res.Level), time.Since(start))
	return res
}

func (u *Matcher) Invalidate(ctx context.Context, participantID string) {
	if u.cache == nil || participantID == "" {
		return
	}
	for _, p := range MatchCachePatterns(participantID) {
		if err := u.cache.DeleteByPattern(ctx, p); err != nil {
			u.logger.Printf("Match cache | op=invalidate pattern=%s err=%v", p, err)
		}
	}
}

func loadParticipant(ctx context.Context, repo profile.Repository, id string) (profile.Profile, error) {
	p, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return profile.Profile{}, ErrParticipantNotFound
		}
		return profile.Profile{}, fmt.Errorf("load participant %s: %w", id, err)
	}
	return p, nil
}
