package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"xrnode/internal/domain/connection"
	"xrnode/internal/domain/matching"
	"xrnode/internal/domain/profile"
	"xrnode/internal/domain/scan"
	"xrnode/internal/metrics"
	"xrnode/internal/ws"
)

type ScanOutcome struct {
	Scan             scan.Result     `json:"scan"`
	Profile          profile.Profile `json:"profile"`
	Match            matching.Result `json:"match"`
	Label            string          `json:"label"`
	AuraColor        string          `json:"aura_color"`
	AlreadyConnected bool            `json:"already_connected"`
}

type ScanUsecase interface {
	Scan(ctx context.Context, viewerID, raw string) (ScanOutcome, error)
}

type ScanOptions struct {
	Prefix   string
	Debounce time.Duration
}

type Scanner struct {
	profiles    profile.Repository
	connections connection.Repository
	matches     MatchUsecase
	locker      ScanLocker
	debouncer   *scan.Debouncer
	prefix      string
	notifier    ws.Notifier
	metrics     metrics.Recorder
	logger      *log.Logger
	now         func() time.Time
}

func NewScanUsecase(
	profiles profile.Repository,
	connections connection.Repository,
	matches MatchUsecase,
	locker ScanLocker,
	opts ScanOptions,
	notifier ws.Notifier,
	rec metrics.Recorder,
	logger *log.Logger,
) *Scanner {
	if notifier == nil {
		notifier = ws.NopNotifier{}
	}
	if rec == nil {
		rec = metrics.Nop{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Scanner{
		profiles:    profiles,
		connections: connections,
		matches:     matches,
		locker:      locker,
		debouncer:   scan.NewDebouncer(opts.Debounce),
		prefix:      opts.Prefix,
		notifier:    notifier,
		metrics:     rec,
		logger:      logger,
		now:         time.Now,
	}
}

func (u *Scanner) Scan(ctx context.Context, viewerID, raw string) (ScanOutcome, error) {
	out, err := u.scan(ctx, viewerID, raw)
	u.metrics.ObserveScan(scanOutcomeLabel(err))
	return out, err
}

func (u *Scanner) scan(ctx context.Context, viewerID, raw string) (ScanOutcome, error) {
	if viewerID == "" {
		return ScanOutcome{}, ErrInvalidInput
	}

	res, err := scan.ParseQRCode(raw, u.prefix, u.now())
	if err != nil {
		return ScanOutcome{}, ErrInvalidCode
	}
	if res.ParticipantID == viewerID {
		return ScanOutcome{}, ErrSelfScan
	}

	allowed, err := u.allow(ctx, viewerID, res.ParticipantID)
	if err != nil {
		return ScanOutcome{}, err
	}
	if !allowed {
		return ScanOutcome{}, ErrDuplicateScan
	}

	out, err := u.lookup(ctx, viewerID, res)
	if err != nil && !errors.Is(err, ErrParticipantNotFound) {
		u.release(ctx, viewerID, res.ParticipantID)
	}
	return out, err
}

func (u *Scanner) lookup(ctx context.Context, viewerID string, res scan.Result) (ScanOutcome, error) {
	target, err := loadParticipant(ctx, u.profiles, res.ParticipantID)
	if err != nil {
		return ScanOutcome{}, err
	}
	viewer, err := loadParticipant(ctx, u.profiles, viewerID)
	if err != nil {
		return ScanOutcome{}, err
	}

	match := u.matches.Compute(ctx, viewer, target)

	connected := false
	if u.connections != nil {
		_, err := u.connections.GetByProfileID(ctx, viewerID, target.ID)
		switch {
		case err == nil:
			connected = true
		case !errors.Is(err, connection.ErrNotFound):
			return ScanOutcome{}, fmt.Errorf("lookup connection: %w", err)
		}
	}

	out := ScanOutcome{
		Scan:             res,
		Profile:          target,
		Match:            match,
		Label:            match.Level.Label(),
		AuraColor:        match.Level.AuraColor(),
		AlreadyConnected: connected,
	}

	u.logger.Printf("Scan matched | viewer=%s participant=%s score=%d level=%s", viewerID, target.ID, match.Score, match.Level)
	u.notifier.Notify(viewerID, ws.EventScanMatched, out)
	return out, nil
}

// allow takes the shared redis lock when reachable and otherwise falls back to
// the in-process debouncer.
func (u *Scanner) allow(ctx context.Context, viewerID, participantID string) (bool, error) {
	if u.locker != nil && u.locker.Available() {
		ok, err := u.locker.SetIfNotExists(ctx, ScanLockKey(viewerID, participantID), "1", u.debouncer.Window())
		if err == nil {
			return ok, nil
		}
		u.logger.Printf("Scan lock | viewer=%s participant=%s err=%v fallback=local", viewerID, participantID, err)
	}
	return u.debouncer.Allow(viewerID, participantID, u.now()), nil
}

// release drops the debounce record after a failed lookup so a retry of the
// same badge is not reported as a duplicate.
func (u *Scanner) release(ctx context.Context, viewerID, participantID string) {
	if u.locker != nil && u.locker.Available() {
		if err := u.locker.Delete(ctx, ScanLockKey(viewerID, participantID)); err != nil {
			u.logger.Printf("Scan lock | op=release viewer=%s participant=%s err=%v", viewerID, participantID, err)
		}
	}
	u.debouncer.Forget(viewerID, participantID)
}

func scanOutcomeLabel(err error) string {
	switch {
	case err == nil:
		return "matched"
	case errors.Is(err, ErrInvalidCode):
		return "invalid"
	case errors.Is(err, ErrDuplicateScan):
		return "duplicate"
	case errors.Is(err, ErrSelfScan):
		return "self"
	case errors.Is(err, ErrParticipantNotFound):
		return "not_found"
	default:
		return "error"
	}
}
