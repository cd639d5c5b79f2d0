package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robco-termlink/wastelandhub/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "data", "wastelandhub.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestRecordAndList(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2077, 10, 23, 9, 0, 0, 0, time.UTC)
	keys := []string{"COMM_01", "SECURITY", "COMM_01"}
	for i, key := range keys {
		start := base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, st.Record(ctx, model.ReadRecord{
			RunID:     "run-1",
			LogKey:    key,
			StartedAt: start,
			EndedAt:   start.Add(2 * time.Second),
			Outcome:   model.OutcomeCompleted,
			Revealed:  40 + i,
			Total:     40 + i,
			CPS:       20,
		}))
	}

	all, err := st.ListReads(ctx, model.HistoryFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "COMM_01", all[0].LogKey)
	require.Equal(t, "SECURITY", all[1].LogKey)
	require.True(t, all[0].EndedAt.Equal(base.Add(2*time.Second)))
	require.Equal(t, 40, all[0].Revealed)

	last, err := st.ListReads(ctx, model.HistoryFilter{Last: 2})
	require.NoError(t, err)
	require.Len(t, last, 2)
	require.Equal(t, "SECURITY", last[0].LogKey)
	require.Equal(t, 42, last[1].Revealed)

	comm, err := st.ListReads(ctx, model.HistoryFilter{LogKey: "COMM_01"})
	require.NoError(t, err)
	require.Len(t, comm, 2)

	counts, err := st.CountByKey(ctx)
	require.NoError(t, err)
	require.Equal(t, map[string]int{"COMM_01": 2, "SECURITY": 1}, counts)
}

func TestListEmpty(t *testing.T) {
	st := openTestStore(t)
	reads, err := st.ListReads(context.Background(), model.HistoryFilter{Last: 5})
	require.NoError(t, err)
	require.Empty(t, reads)
}

func TestListOrdersWithinOneSecond(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2077, 10, 23, 9, 0, 0, 0, time.UTC)
	reads := []struct {
		key string
		end time.Time
	}{
		{"SECURITY", base.Add(500 * time.Millisecond)},
		{"COMM_01", base},
		{"DIARY_05", base.Add(123 * time.Millisecond)},
		{"DOOR_CTRL", base.Add(120 * time.Millisecond)},
	}
	for _, r := range reads {
		require.NoError(t, st.Record(ctx, model.ReadRecord{
			RunID:     "run-1",
			LogKey:    r.key,
			StartedAt: r.end.Add(-time.Second),
			EndedAt:   r.end,
			Outcome:   model.OutcomeSkipped,
			CPS:       20,
		}))
	}

	last, err := st.ListReads(ctx, model.HistoryFilter{Last: 1})
	require.NoError(t, err)
	require.Len(t, last, 1)
	require.Equal(t, "SECURITY", last[0].LogKey)

	all, err := st.ListReads(ctx, model.HistoryFilter{})
	require.NoError(t, err)
	keys := make([]string, 0, len(all))
	for _, r := range all {
		keys = append(keys, r.LogKey)
	}
	require.Equal(t, []string{"COMM_01", "DOOR_CTRL", "DIARY_05", "SECURITY"}, keys)
	require.True(t, all[0].EndedAt.Equal(base))
	require.True(t, all[2].EndedAt.Equal(base.Add(123*time.Millisecond)))
}
