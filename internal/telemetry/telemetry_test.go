package telemetry

import (
	"bytes"
	"encoding/csv"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agbru/vedicmath/internal/classifier"
	apperrors "github.com/agbru/vedicmath/internal/errors"
	"github.com/agbru/vedicmath/internal/numeric"
	"github.com/agbru/vedicmath/internal/sutra"
)

func sampleRecord(i int, s sutra.Sutra) Record {
	return Record{
		Timestamp:  time.Unix(1_700_000_000+int64(i), 0),
		Op:         numeric.Mul,
		A:          numeric.FromInt(int64(90 + i)),
		B:          numeric.FromInt(97),
		Result:     numeric.FromInt(int64(90+i) * 97),
		Sutra:      s,
		Confidence: 0.88,
		Reason:     "near base",
		Elapsed:    time.Duration(i+1) * time.Microsecond,
		Mode:       classifier.Adaptive,
		Platform:   Desktop,
	}
}

func TestLogDropsNewest(t *testing.T) {
	t.Parallel()

	l := NewLog(3)
	for i := 0; i < 5; i++ {
		ok := l.Append(sampleRecord(i, sutra.Nikhilam))
		assert.Equal(t, i < 3, ok, "append %d", i)
	}

	require.Equal(t, 3, l.Len())
	assert.Equal(t, 3, l.Cap())
	assert.Equal(t, uint64(2), l.Dropped())
	for i := 0; i < 3; i++ {
		assert.Equal(t, int64(90+i), l.At(i).A.Int64(), "record %d kept out of order", i)
	}

	l.Clear()
	assert.Equal(t, 0, l.Len())
	assert.Equal(t, 3, l.Cap())
	assert.Equal(t, uint64(2), l.Dropped(), "clear must not reset the drop counter")

	l.Append(sampleRecord(9, sutra.Urdhva))
	assert.Equal(t, 1, l.Len())
}

func TestNewLogMinimumCapacity(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 1, NewLog(0).Cap())
}

func TestRecordsIsACopy(t *testing.T) {
	t.Parallel()

	l := NewLog(2)
	l.Append(sampleRecord(0, sutra.Nikhilam))
	recs := l.Records()
	recs[0].Reason = "mutated"
	assert.Equal(t, "near base", l.At(0).Reason)
}

func TestExportCSV(t *testing.T) {
	t.Parallel()

	l := NewLog(4)
	l.Append(sampleRecord(0, sutra.Nikhilam))
	l.Append(Record{
		Timestamp: time.Unix(1_700_000_100, 0),
		Op:        numeric.Div,
		A:         numeric.FromInt32(7),
		B:         numeric.FromInt32(2),
		Result:    numeric.FromFloat32(3.5),
		Sutra:     sutra.Standard,
		Elapsed:   1500 * time.Microsecond,
		Mode:      classifier.Dynamic,
		Platform:  Embedded,
	})

	var buf bytes.Buffer
	require.NoError(t, l.Export(&buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "timestamp_unix,opkind,a_tag,a_val,b_tag,b_val,r_tag,r_val,sutra,elapsed_ms,mode,platform_tag", strings.Join(rows[0], ","))
	assert.Equal(t, []string{"1700000000", "mul", "i32", "90", "i32", "97", "i32", "8730", "nikhilam", "0.001", "adaptive", "desktop"}, rows[1])
	assert.Equal(t, []string{"1700000100", "div", "i32", "7", "i32", "2", "f32", "3.5", "standard", "1.5", "dynamic", "embedded"}, rows[2])
	assert.Equal(t, 2, l.Len(), "export must not consume records")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestExportSurfacesIOError(t *testing.T) {
	t.Parallel()

	l := NewLog(1)
	l.Append(sampleRecord(0, sutra.Nikhilam))
	err := l.Export(failingWriter{})

	var ioErr apperrors.IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Contains(t, err.Error(), "disk full")
}

func TestStats(t *testing.T) {
	t.Parallel()

	l := NewLog(4)
	l.Append(sampleRecord(0, sutra.Nikhilam)) // 1µs
	l.Append(sampleRecord(2, sutra.Nikhilam)) // 3µs
	fb := sampleRecord(1, sutra.Standard)
	fb.Fallback = true
	l.Append(fb)
	l.Append(sampleRecord(3, sutra.Urdhva))
	l.Append(sampleRecord(4, sutra.Urdhva))

	s := l.Stats()
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 3, s.Vedic)
	assert.Equal(t, 1, s.Fallbacks)
	assert.Equal(t, uint64(1), s.Dropped)
	assert.True(t, s.Truncated())

	nik := s.PerSutra[sutra.Nikhilam]
	assert.Equal(t, 2, nik.Count)
	assert.Equal(t, 2*time.Microsecond, nik.MeanElapsed)
	assert.InDelta(t, 0.5, nik.Share, 1e-12)

	used := s.Used()
	require.Len(t, used, 3)
	assert.Equal(t, sutra.Standard, used[0].Sutra)
	assert.Equal(t, sutra.Nikhilam, used[1].Sutra)
	assert.Equal(t, sutra.Urdhva, used[2].Sutra)

	total := 0.0
	for _, ps := range used {
		total += ps.Share
	}
	assert.InDelta(t, 1.0, total, 1e-12)
}

func TestEmptyStats(t *testing.T) {
	t.Parallel()

	s := NewLog(8).Stats()
	assert.Equal(t, 0, s.Total)
	assert.Empty(t, s.Used())
	assert.False(t, math.IsNaN(s.PerSutra[sutra.Standard].Share))
}

func TestParsePlatform(t *testing.T) {
	t.Parallel()

	for _, p := range []Platform{Desktop, Embedded, Cloud, Mobile} {
		got, err := ParsePlatform(strings.ToUpper(p.String()))
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	_, err := ParsePlatform("mainframe")
	assert.Error(t, err)
}
