package model

// Package model contains domain models/data structures.
// These are the UI-facing shapes; upstream wire shapes live in internal/tms.
