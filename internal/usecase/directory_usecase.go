package usecase

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"xrnode/internal/domain/connection"
	"xrnode/internal/domain/matching"
	"xrnode/internal/domain/profile"
	"xrnode/internal/metrics"
	"xrnode/internal/worker"

	"golang.org/x/sync/singleflight"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	DirectoryFilterAll       = "all"
	DirectoryFilterExcellent = "excellent"
	DirectoryFilterGood      = "good"
	DirectoryFilterLow       = "low"

	DirectorySortMatch   = "match"
	DirectorySortName    = "name"
	DirectorySortCompany = "company"
)

type DirectoryParams struct {
	Query  string
	Filter string
	Sort   string
}

type DirectoryEntry struct {
	Profile   profile.Profile `json:"profile"`
	Match     matching.Result `json:"match"`
	Label     string          `json:"label"`
	AuraColor string          `json:"aura_color"`
	Connected bool            `json:"connected"`
}

type DirectorySummary struct {
	Total     int `json:"total"`
	Excellent int `json:"excellent"`
	Good      int `json:"good"`
	Potential int `json:"potential"`
}

type Directory struct {
	Entries []DirectoryEntry `json:"entries"`
	Summary DirectorySummary `json:"summary"`
	Filter  string           `json:"filter"`
	Sort    string           `json:"sort"`
}

type DirectoryUsecase interface {
	List(ctx context.Context, viewerID string, params DirectoryParams) (Directory, error)
}

type DirectoryService struct {
	profiles    profile.Repository
	connections connection.Repository
	matches     MatchUsecase
	workers     int
	tag         language.Tag
	group       singleflight.Group
	metrics     metrics.Recorder
	logger      *log.Logger
}

func NewDirectoryUsecase(
	profiles profile.Repository,
	connections connection.Repository,
	matches MatchUsecase,
	workers int,
	rec metrics.Recorder,
	logger *log.Logger,
) *DirectoryService {
	if workers <= 0 {
		workers = 4
	}
	if rec == nil {
		rec = metrics.Nop{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &DirectoryService{
		profiles:    profiles,
		connections: connections,
		matches:     matches,
		workers:     workers,
		tag:         language.English,
		metrics:     rec,
		logger:      logger,
	}
}

// List scores every other participant for the viewer. Identical concurrent
// requests share one build.
func (u *DirectoryService) List(ctx context.Context, viewerID string, params DirectoryParams) (Directory, error) {
	if viewerID == "" {
		return Directory{}, ErrInvalidInput
	}
	filter, tier, err := parseDirectoryFilter(params.Filter)
	if err != nil {
		return Directory{}, err
	}
	sortBy, err := parseDirectorySort(params.Sort)
	if err != nil {
		return Directory{}, err
	}
	query := strings.TrimSpace(params.Query)

	key := strings.Join([]string{viewerID, strings.ToLower(query), filter, sortBy}, "\x00")
	v, err, _ := u.group.Do(key, func() (any, error) {
		return u.build(ctx, viewerID, query, tier, sortBy)
	})
	if err != nil {
		return Directory{}, err
	}

	shared := v.(Directory)
	out := shared
	out.Entries = append([]DirectoryEntry(nil), shared.Entries...)
	out.Filter = filter
	return out, nil
}

func (u *DirectoryService) build(ctx context.Context, viewerID, query string, tier matching.Tier, sortBy string) (Directory, error) {
	start := time.Now()

	viewer, err := loadParticipant(ctx, u.profiles, viewerID)
	if err != nil {
		return Directory{}, err
	}

	var candidates []profile.Profile
	if query == "" {
		candidates, err = u.profiles.List(ctx)
	} else {
		candidates, err = u.profiles.Search(ctx, query)
	}
	if err != nil {
		return Directory{}, fmt.Errorf("load participants: %w", err)
	}

	others := candidates[:0:0]
	for _, p := range candidates {
		if p.ID != viewerID {
			others = append(others, p)
		}
	}

	connected, err := u.connectedSet(ctx, viewerID)
	if err != nil {
		return Directory{}, err
	}

	entries := make([]DirectoryEntry, len(others))
	tasks := make([]worker.Task, 0, len(others))
	for i := range others {
		tasks = append(tasks, func(ctx context.Context) error {
			res := u.matches.Compute(ctx, viewer, others[i])
			entries[i] = DirectoryEntry{
				Profile:   others[i],
				Match:     res,
				Label:     res.Level.Label(),
				AuraColor: res.Level.AuraColor(),
				Connected: connected[others[i].ID],
			}
			return nil
		})
	}
	if err := worker.Do(ctx, u.workers, tasks); err != nil {
		return Directory{}, fmt.Errorf("score directory: %w", err)
	}

	summary := DirectorySummary{Total: len(entries)}
	filtered := entries[:0:0]
	for _, e := range entries {
		switch e.Match.Level {
		case matching.TierExcellent:
			summary.Excellent++
		case matching.TierGood:
			summary.Good++
		default:
			summary.Potential++
		}
		if tier == "" || e.Match.Level == tier {
			filtered = append(filtered, e)
		}
	}

	u.sortEntries(filtered, sortBy)
	u.metrics.ObserveDirectory(len(filtered), time.Since(start))
	u.logger.Printf("Directory built | viewer=%s query=%q total=%d returned=%d sort=%s latency=%s",
		viewerID, query, summary.Total, len(filtered), sortBy, time.Since(start))

	return Directory{Entries: filtered, Summary: summary, Sort: sortBy}, nil
}

func (u *DirectoryService) connectedSet(ctx context.Context, viewerID string) (map[string]bool, error) {
	out := map[string]bool{}
	if u.connections == nil {
		return out, nil
	}
	items, err := u.connections.List(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("list connections: %w", err)
	}
	for _, c := range items {
		out[c.Profile.ID] = true
	}
	return out, nil
}

// sortEntries orders by score for match, otherwise by locale collation of the
// chosen field. Ties fall back to participant id.
func (u *DirectoryService) sortEntries(entries []DirectoryEntry, sortBy string) {
	col := collate.New(u.tag, collate.IgnoreCase)
	field := func(e DirectoryEntry) string { return e.Profile.Name }
	if sortBy == DirectorySortCompany {
		field = func(e DirectoryEntry) string { return e.Profile.Company }
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if sortBy == DirectorySortMatch {
			if a.Match.Score != b.Match.Score {
				return a.Match.Score > b.Match.Score
			}
			return a.Profile.ID < b.Profile.ID
		}
		if c := col.CompareString(field(a), field(b)); c != 0 {
			return c < 0
		}
		return a.Profile.ID < b.Profile.ID
	})
}

func parseDirectoryFilter(raw string) (string, matching.Tier, error) {
	f := strings.ToLower(strings.TrimSpace(raw))
	switch f {
	case "", DirectoryFilterAll:
		return DirectoryFilterAll, "", nil
	case DirectoryFilterExcellent, DirectoryFilterGood, DirectoryFilterLow, "potential":
		tier, err := matching.ParseTier(f)
		if err != nil {
			return "", "", ErrInvalidInput
		}
		if f == "potential" {
			f = DirectoryFilterLow
		}
		return f, tier, nil
	default:
		return "", "", ErrInvalidInput
	}
}

func parseDirectorySort(raw string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch s {
	case "":
		return DirectorySortMatch, nil
	case DirectorySortMatch, DirectorySortName, DirectorySortCompany:
		return s, nil
	default:
		return "", ErrInvalidInput
	}
}
