package stats

import (
	"context"

	"github.com/verte-zerg/typoeq/internal/model"
	"github.com/verte-zerg/typoeq/internal/profile"
	"github.com/verte-zerg/typoeq/internal/store"
)

// Report contains precomputed data for stats rendering.
type Report struct {
	Sessions         []model.SessionAggregate
	WindowSessionIDs []int64
	WordAggsAll      []model.WordAggregate
	WordAggsWindow   []model.WordAggregate
	Mastery          []WordRow
	Levels           map[profile.Level]int
}

// BuildReport loads session history and joins it with profile mastery counts.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig, learnt map[string]int) (Report, error) {
	sessions, err := st.ListSessions(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	if cfg.Last > 0 && len(sessions) > cfg.Last {
		sessions = sessions[len(sessions)-cfg.Last:]
	}

	allIDs := sessionIDs(sessions)
	windowIDs := lastSessionIDs(sessions, cfg.CurveWindow)
	wordAggsAll, err := st.ListWordAggregatesForSessions(ctx, allIDs)
	if err != nil {
		return Report{}, err
	}
	wordAggsWindow, err := st.ListWordAggregatesForSessions(ctx, windowIDs)
	if err != nil {
		return Report{}, err
	}

	return Report{
		Sessions:         sessions,
		WindowSessionIDs: windowIDs,
		WordAggsAll:      wordAggsAll,
		WordAggsWindow:   wordAggsWindow,
		Mastery:          MasteryRows(learnt, wordAggsWindow),
		Levels:           LevelCounts(learnt),
	}, nil
}

func sessionIDs(sessions []model.SessionAggregate) []int64 {
	ids := make([]int64, len(sessions))
	for i, s := range sessions {
		ids[i] = s.SessionID
	}
	return ids
}

func lastSessionIDs(sessions []model.SessionAggregate, window int) []int64 {
	if window <= 0 || len(sessions) <= window {
		return sessionIDs(sessions)
	}
	return sessionIDs(sessions[len(sessions)-window:])
}
