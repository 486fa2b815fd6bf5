package tracking

import (
	"context"
	"time"
)

// Logger is the logging interface used by this package.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Sink receives every location after it has been committed to SQLite.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, loc Location) error
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithClock overrides the clock used to default missing timestamps.
func WithClock(now func() time.Time) RecorderOption {
	return func(r *Recorder) {
		if now != nil {
			r.now = now
		}
	}
}

// WithSinks adds sinks that receive each recorded location.
func WithSinks(sinks ...Sink) RecorderOption {
	return func(r *Recorder) {
		for _, s := range sinks {
			if s != nil {
				r.sinks = append(r.sinks, s)
			}
		}
	}
}

// Recorder is the write path for location readings.
type Recorder struct {
	repo   Repository
	sinks  []Sink
	now    func() time.Time
	logger Logger
}

// NewRecorder creates a Recorder over repo.
//
// Parameters:
//   - repo: Storage for groups and locations
//   - logger: Logger for sink failures (nil disables logging)
//   - opts: Clock and sink options
//
// Returns:
//   - *Recorder: Ready to record
func NewRecorder(repo Repository, logger Logger, opts ...RecorderOption) *Recorder {
	if logger == nil {
		logger = noopLogger{}
	}
	r := &Recorder{
		repo:   repo,
		now:    func() time.Time { return time.Now().UTC() },
		logger: logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record persists a reading for groupID. When ts is nil the recorder's
// current time is used. The committed location is then delivered to each
// sink in order; a sink error is logged and does not fail the call.
func (r *Recorder) Record(ctx context.Context, groupID int64, lat, lon float64, ts *time.Time) (*Location, error) {
	at := r.now()
	if ts != nil {
		at = *ts
	}

	loc, err := r.repo.CreateLocation(ctx, groupID, lat, lon, at)
	if err != nil {
		return nil, err
	}

	r.Notify(ctx, *loc)
	return loc, nil
}

// Notify delivers an already committed location to each sink in order.
// Sink errors are logged and never returned.
func (r *Recorder) Notify(ctx context.Context, loc Location) {
	for _, sink := range r.sinks {
		if err := sink.Deliver(ctx, loc); err != nil {
			r.logger.Warn("location sink delivery failed",
				"sink", sink.Name(),
				"group_id", loc.GroupID,
				"location_id", loc.ID,
				"error", err,
			)
		}
	}
}

// withoutSinks returns a recorder sharing r's clock and logger that writes to
// repo and delivers nowhere. Used inside transactions, where sinks must wait
// for the commit.
func (r *Recorder) withoutSinks(repo Repository) *Recorder {
	return &Recorder{repo: repo, now: r.now, logger: r.logger}
}
