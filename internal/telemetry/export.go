package telemetry

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	apperrors "github.com/agbru/vedicmath/internal/errors"
	"github.com/agbru/vedicmath/internal/numeric"
)

// Header is the fixed CSV header row.
var Header = []string{
	"timestamp_unix", "opkind",
	"a_tag", "a_val", "b_tag", "b_val", "r_tag", "r_val",
	"sutra", "elapsed_ms", "mode", "platform_tag",
}

// Fields renders r as one CSV row in Header order. Values use the shortest
// round-tripping representation of their tag.
func (r Record) Fields() []string {
	return []string{
		strconv.FormatInt(r.Timestamp.Unix(), 10),
		r.Op.String(),
		r.A.Tag().String(), r.A.String(),
		r.B.Tag().String(), r.B.String(),
		r.Result.Tag().String(), r.Result.String(),
		r.Sutra.String(),
		strconv.FormatFloat(ElapsedMillis(r.Elapsed), 'f', -1, 64),
		r.Mode.String(),
		r.Platform.String(),
	}
}

// Export writes the header and every record in append order. It does not
// modify the log.
func (l *Log) Export(w io.Writer) error {
	return WriteCSV(w, l.records)
}

// WriteCSV writes the header followed by records. Write failures are
// returned as IOError.
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return apperrors.IOError{Op: "export telemetry", Err: err}
	}
	for i := range records {
		if err := cw.Write(records[i].Fields()); err != nil {
			return apperrors.IOError{Op: "export telemetry", Err: err}
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return apperrors.IOError{Op: "export telemetry", Err: err}
	}
	return nil
}

// ElapsedMillis converts a duration to fractional milliseconds.
func ElapsedMillis(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e6
}

// parseValue rebuilds a Value from its tag and text columns.
func parseValue(tag, text string) (numeric.Value, error) {
	t, ok := numeric.ParseTag(tag)
	if !ok {
		return numeric.Value{}, apperrors.ParseError{Input: tag, Reason: "unknown tag"}
	}
	v, err := numeric.Parse(text)
	if err != nil {
		return numeric.Value{}, err
	}
	return v.Convert(t), nil
}
