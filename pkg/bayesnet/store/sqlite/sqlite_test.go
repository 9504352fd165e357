package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/bayesnet/pkg/bayesnet/internalerr"
	"github.com/cognicore/bayesnet/pkg/bayesnet/store"
)

func sampleRun(id string, at time.Time) store.Run {
	return store.Run{
		ID:        id,
		Network:   "alarm_net.xml",
		CreatedAt: at,
		Records: []store.Record{
			{Position: 0, Query: "P(B=T|J=T,M=T),1", Algorithm: 1, Probability: 0.28417, Additions: 7, Multiplications: 32},
			{Position: 1, Query: "P(J=T,M=T,A=T,B=F,E=F),0", Algorithm: 0, Probability: 0.00063, Multiplications: 4},
		},
	}
}

func openTemp(t *testing.T) store.Store {
	t.Helper()
	st, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestSaveAndGetRun(t *testing.T) {
	ctx := context.Background()
	st := openTemp(t)
	at := time.Date(2024, 5, 1, 10, 30, 0, 123, time.UTC)
	want := sampleRun("01HX0000000000000000000001", at)

	require.NoError(t, st.SaveRun(ctx, want))
	got, err := st.GetRun(ctx, want.ID)
	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Network, got.Network)
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt))
	assert.Equal(t, want.Records, got.Records)

	_, err = st.GetRun(ctx, "missing")
	assert.ErrorIs(t, err, internalerr.ErrNotFound)
}

func TestSaveRunReplaces(t *testing.T) {
	ctx := context.Background()
	st := openTemp(t)
	r := sampleRun("01HX0000000000000000000001", time.Now())
	require.NoError(t, st.SaveRun(ctx, r))

	r.Records = r.Records[:1]
	require.NoError(t, st.SaveRun(ctx, r))
	got, err := st.GetRun(ctx, r.ID)
	require.NoError(t, err)
	assert.Len(t, got.Records, 1)

	assert.ErrorIs(t, st.SaveRun(ctx, store.Run{}), internalerr.ErrInvalidInput)
}

func TestListRunsNewestFirst(t *testing.T) {
	ctx := context.Background()
	st := openTemp(t)
	base := time.Now()
	ids := []string{"01HX0000000000000000000002", "01HX0000000000000000000001", "01HX0000000000000000000003"}
	for i, id := range ids {
		require.NoError(t, st.SaveRun(ctx, sampleRun(id, base.Add(time.Duration(i)*time.Second))))
	}

	runs, err := st.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "01HX0000000000000000000003", runs[0].ID)
	assert.Equal(t, "01HX0000000000000000000001", runs[2].ID)
	assert.Len(t, runs[0].Records, 2)

	runs, err = st.ListRuns(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestReopenKeepsRuns(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "runs.db")

	st, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, st.SaveRun(ctx, sampleRun("01HX0000000000000000000001", time.Now())))
	require.NoError(t, st.Close())

	st, err = OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer st.Close()
	runs, err := st.ListRuns(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}
