// Package model defines shared data structures.
package model

import "time"

// Config defines practice settings resolved from flags and the config file.
type Config struct {
	DictionaryPath string
	ProfileName    string
	ProfilePath    string
	ShowPhrases    bool
	Debug          bool
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Profile     string
	ProfilePath string
	Since       *time.Time
	Last        int
	CurveWindow int
}

// SessionStats captures a finished practice run.
type SessionStats struct {
	StartedAt      time.Time
	EndedAt        time.Time
	Profile        string
	DictionaryPath string
	LangFrom       string
	LangTo         string
	Completed      int
	CharsTyped     int
	CharsFailed    int
	DurationMs     int64
}

// WordStats stores per-word completions for a session.
type WordStats struct {
	Word        string
	Completions int
}

// WordAggregate aggregates word completions across sessions.
type WordAggregate struct {
	Word        string
	Completions int
	Sessions    int
}

// SessionAggregate summarizes a session for reporting.
type SessionAggregate struct {
	SessionID   int64
	EndedAt     time.Time
	Profile     string
	Completed   int
	CharsTyped  int
	CharsFailed int
	DurationMs  int64
}
