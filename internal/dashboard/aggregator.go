package dashboard

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"ritmo/internal/core"
	"ritmo/internal/store"
)

// StoreUnavailableError reports that one of the four record reads failed.
// The whole computation aborts; there is no partial dashboard.
type StoreUnavailableError struct {
	Err error
}

func (e *StoreUnavailableError) Error() string {
	return "record store unavailable: " + e.Err.Error()
}

func (e *StoreUnavailableError) Unwrap() error { return e.Err }

// Aggregator turns an owner's raw records into the dashboard views. It only
// reads, so it is safe to run concurrently for any mix of owners.
type Aggregator struct {
	records store.RecordReader
	now     func() time.Time
}

func New(records store.RecordReader) *Aggregator {
	return &Aggregator{records: records, now: time.Now}
}

// Compute fetches the owner's four record collections and derives the nine
// views over the trailing 7-day window ending today. An owner with no
// records gets zero-valued views, never an error. The owner id is trusted
// as given; authentication happens upstream.
func (a *Aggregator) Compute(ctx context.Context, ownerID string) (*Dashboard, error) {
	var (
		meditations []core.MeditationSession
		readings    []core.ReadingSession
		reflections []core.Reflection
		plans       []core.Plan
	)

	// The four reads are independent; issue them concurrently.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		meditations, err = a.records.FindMeditations(gctx, ownerID)
		return err
	})
	g.Go(func() (err error) {
		readings, err = a.records.FindReadings(gctx, ownerID)
		return err
	})
	g.Go(func() (err error) {
		reflections, err = a.records.FindReflections(gctx, ownerID)
		return err
	})
	g.Go(func() (err error) {
		plans, err = a.records.FindPlans(gctx, ownerID)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, &StoreUnavailableError{Err: err}
	}

	window := core.Window(a.now(), windowDays)

	d := &Dashboard{
		WeeklyFocus:      make([]FocusPoint, 0, windowDays),
		WeeklyReading:    make([]MinutesPoint, 0, windowDays),
		WeeklyMeditation: make([]MinutesPoint, 0, windowDays),
		WeeklyTasks:      make([]TaskPoint, 0, windowDays),
		Growth:           make([]GrowthPoint, 0, windowDays),
	}

	var cumulative float64
	for _, day := range window {
		med := core.Minutes(meditationSeconds(meditations, day))
		read := core.Minutes(readingSeconds(readings, day))

		d.WeeklyFocus = append(d.WeeklyFocus, FocusPoint{Date: day, Meditation: med, Reading: read})
		d.WeeklyReading = append(d.WeeklyReading, MinutesPoint{Date: day, Minutes: read})
		d.WeeklyMeditation = append(d.WeeklyMeditation, MinutesPoint{Date: day, Minutes: med})
		d.WeeklyTasks = append(d.WeeklyTasks, TaskPoint{Date: day, Tasks: tasksPlannedFor(plans, day)})

		cumulative += med + read
		d.Growth = append(d.Growth, GrowthPoint{Date: day, Total: cumulative})
	}

	d.TimeDistribution = timeDistribution(meditations, readings)
	d.ReflectionTrends = reflectionTrends(reflections)
	d.ActivityByDay = activityByDay(meditations, readings)
	d.SessionCounts = []CountPoint{
		{Name: "Meditation", Count: len(meditations)},
		{Name: "Reading", Count: len(readings)},
		{Name: "Reflections", Count: len(reflections)},
		{Name: "Plans", Count: len(plans)},
	}

	return d, nil
}

func meditationSeconds(sessions []core.MeditationSession, day string) int64 {
	var total int64
	for _, s := range sessions {
		if s.Date == day {
			total += s.DurationSeconds
		}
	}
	return total
}

func readingSeconds(sessions []core.ReadingSession, day string) int64 {
	var total int64
	for _, s := range sessions {
		if s.Date == day {
			total += s.DurationSeconds
		}
	}
	return total
}

// tasksPlannedFor counts the tasks of the first plan targeting day. When
// several plans target the same day only the first one in store order
// counts; they are not merged.
func tasksPlannedFor(plans []core.Plan, day string) int {
	for _, p := range plans {
		if p.Date == day {
			return len(p.Tasks)
		}
	}
	return 0
}

// timeDistribution is all-time, not windowed.
func timeDistribution(meditations []core.MeditationSession, readings []core.ReadingSession) []CategoryValue {
	var medSeconds, readSeconds int64
	for _, s := range meditations {
		medSeconds += s.DurationSeconds
	}
	for _, s := range readings {
		readSeconds += s.DurationSeconds
	}
	return []CategoryValue{
		{Name: "Meditation", Value: core.Minutes(medSeconds)},
		{Name: "Reading", Value: core.Minutes(readSeconds)},
	}
}

// reflectionTrends takes the chronologically last 7 reflections and counts
// tokens in the three prompts joined with no separator. Splitting the raw
// concatenation on single spaces is the historical contract: words that
// touch across a field boundary collapse into one token.
func reflectionTrends(reflections []core.Reflection) []TrendPoint {
	sorted := append([]core.Reflection(nil), reflections...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})
	if len(sorted) > windowDays {
		sorted = sorted[len(sorted)-windowDays:]
	}

	trends := make([]TrendPoint, 0, len(sorted))
	for _, r := range sorted {
		joined := r.BestThing + r.WorstThing + r.Improvement
		trends = append(trends, TrendPoint{
			Date:  r.Date,
			Words: len(strings.Split(joined, " ")),
		})
	}
	return trends
}

// activityByDay buckets every record ever recorded by weekday. Records with
// an unparseable date fall into no bucket.
func activityByDay(meditations []core.MeditationSession, readings []core.ReadingSession) []WeekdayActivity {
	var counts [7]int
	for _, s := range meditations {
		if wd, err := core.Weekday(s.Date); err == nil {
			counts[wd]++
		}
	}
	for _, s := range readings {
		if wd, err := core.Weekday(s.Date); err == nil {
			counts[wd]++
		}
	}

	activity := make([]WeekdayActivity, 0, len(weekdayLabels))
	for i, label := range weekdayLabels {
		activity = append(activity, WeekdayActivity{
			Day:      label,
			Activity: counts[i],
			FullMark: weekdayFullMark,
		})
	}
	return activity
}
