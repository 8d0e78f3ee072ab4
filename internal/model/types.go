// Package model defines shared data structures.
package model

import "time"

// Config defines generation settings.
type Config struct {
	Poet       string
	CorpusPath string
	Lines      int
	Depth      int
	Devices    []string
	Seed       int64
}

// HistoryConfig defines filters for browsing saved poems.
type HistoryConfig struct {
	Poet  string
	Since *time.Time
	Last  int
}

// PoemRecord is a saved poem.
type PoemRecord struct {
	ID         string    `json:"id"`
	Poet       string    `json:"poet"`
	CorpusPath string    `json:"corpus_path"`
	Text       string    `json:"text"`
	Devices    []string  `json:"devices"`
	Lines      int       `json:"lines"`
	Depth      int       `json:"depth"`
	Seed       int64     `json:"seed"`
	CreatedAt  time.Time `json:"created_at"`
}

// ContextStat summarizes one context key of a transition table.
type ContextStat struct {
	Key        string
	Successors int
	Total      int
	Top        string
	TopCount   int
}
