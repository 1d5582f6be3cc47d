// Package dashboard derives the analytic views shown on the dashboard from
// an owner's raw records. Everything is computed per request; nothing is
// cached or persisted.
package dashboard

// windowDays is the trailing analysis window for the "weekly" views.
const windowDays = 7

// weekdayFullMark is the radar chart's fixed display scale. It is a chart
// hint, not a computed maximum: counts may exceed it.
const weekdayFullMark = 10

var weekdayLabels = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

type (
	// FocusPoint is one day of combined meditation and reading minutes.
	FocusPoint struct {
		Date       string  `json:"date"`
		Meditation float64 `json:"meditation"`
		Reading    float64 `json:"reading"`
	}

	// MinutesPoint is one day of a single-series minutes chart.
	MinutesPoint struct {
		Date    string  `json:"date"`
		Minutes float64 `json:"minutes"`
	}

	// TaskPoint is the task count of the plan targeting one day.
	TaskPoint struct {
		Date  string `json:"date"`
		Tasks int    `json:"tasks"`
	}

	// CategoryValue is one slice of the all-time distribution pie.
	CategoryValue struct {
		Name  string  `json:"name"`
		Value float64 `json:"value"`
	}

	// TrendPoint is the word count of one reflection entry.
	TrendPoint struct {
		Date  string `json:"date"`
		Words int    `json:"words"`
	}

	// WeekdayActivity is the all-time session count for one weekday bucket.
	// "A" is the activity axis name the radar chart binds to.
	WeekdayActivity struct {
		Day      string `json:"day"`
		Activity int    `json:"A"`
		FullMark int    `json:"fullMark"`
	}

	// CountPoint is one bar of the all-time record-count chart.
	CountPoint struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	// GrowthPoint carries the running minute total up to and including Date.
	GrowthPoint struct {
		Date  string  `json:"date"`
		Total float64 `json:"total"`
	}

	// Dashboard is the composite result: nine independently computed views.
	Dashboard struct {
		WeeklyFocus      []FocusPoint      `json:"weeklyFocus"`
		WeeklyReading    []MinutesPoint    `json:"weeklyReading"`
		WeeklyMeditation []MinutesPoint    `json:"weeklyMeditation"`
		WeeklyTasks      []TaskPoint       `json:"weeklyTasks"`
		TimeDistribution []CategoryValue   `json:"timeDistribution"`
		ReflectionTrends []TrendPoint      `json:"reflectionTrends"`
		ActivityByDay    []WeekdayActivity `json:"activityByDay"`
		SessionCounts    []CountPoint      `json:"sessionCounts"`
		Growth           []GrowthPoint     `json:"growth"`
	}
)
