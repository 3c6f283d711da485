package telemetry

import (
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agbru/vedicmath/internal/numeric"
	"github.com/agbru/vedicmath/internal/sutra"
)

func tempStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenStore(filepath.Join(t.TempDir(), "telemetry.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreRoundTrip(t *testing.T) {
	s := tempStore(t)

	l := NewLog(4)
	l.Append(sampleRecord(0, sutra.Nikhilam))
	inf := sampleRecord(1, sutra.Standard)
	inf.Op = numeric.Div
	inf.A, inf.B = numeric.FromFloat64(1), numeric.FromFloat64(0)
	inf.Result = numeric.FromFloat64(math.Inf(1))
	inf.Reason = "divzero"
	l.Append(inf)
	big := sampleRecord(2, sutra.Urdhva)
	big.A, big.B = numeric.FromInt64(math.MaxInt64), numeric.FromInt64(2)
	big.Result = numeric.FromFloat64(math.MaxInt64 * 2.0)
	big.Fallback = true
	l.Append(big)

	id, err := s.Save("bench nikhilam", l)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := s.Load(id)
	require.NoError(t, err)
	require.Len(t, got, 3)

	want := l.Records()
	for i := range want {
		assert.Equal(t, want[i].Op, got[i].Op, "record %d", i)
		assert.Equal(t, want[i].A, got[i].A, "record %d", i)
		assert.Equal(t, want[i].B, got[i].B, "record %d", i)
		assert.Equal(t, want[i].Sutra, got[i].Sutra, "record %d", i)
		assert.Equal(t, want[i].Reason, got[i].Reason, "record %d", i)
		assert.Equal(t, want[i].Fallback, got[i].Fallback, "record %d", i)
		assert.Equal(t, want[i].Elapsed, got[i].Elapsed, "record %d", i)
		assert.Equal(t, want[i].Mode, got[i].Mode, "record %d", i)
		assert.True(t, want[i].Timestamp.Equal(got[i].Timestamp), "record %d", i)
		assert.Equal(t, want[i].Result.Tag(), got[i].Result.Tag(), "record %d", i)
		assert.Equal(t, want[i].Result.String(), got[i].Result.String(), "record %d", i)
	}
}

func TestStoreSessions(t *testing.T) {
	s := tempStore(t)

	first := NewLog(1)
	first.Append(sampleRecord(0, sutra.Nikhilam))
	first.Append(sampleRecord(1, sutra.Nikhilam)) // dropped
	second := NewLog(3)
	second.Append(sampleRecord(0, sutra.Urdhva))
	second.Append(sampleRecord(1, sutra.Urdhva))
	second.Append(sampleRecord(2, sutra.Standard))

	id1, err := s.Save("first", first)
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	id2, err := s.Save("second", second)
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)

	sessions, err := s.Sessions()
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "first", sessions[0].Label)
	assert.Equal(t, 1, sessions[0].Records)
	assert.Equal(t, uint64(1), sessions[0].Dropped)
	assert.Equal(t, 3, sessions[1].Records)

	counts, err := s.SutraCounts(id2)
	require.NoError(t, err)
	assert.Equal(t, map[sutra.Sutra]int{sutra.Urdhva: 2, sutra.Standard: 1}, counts)
}

func TestStoreLoadUnknownSession(t *testing.T) {
	s := tempStore(t)

	got, err := s.Load("missing")
	require.NoError(t, err)
	assert.Empty(t, got)
}
