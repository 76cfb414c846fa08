package domain

import (
	"fmt"
	"strconv"
	"time"
)

// LogType selects one of the three broadcast channels.
type LogType string

const (
	LogTypeSystem        LogType = "system"
	LogTypeConstellation LogType = "constellation"
	LogTypeScenario      LogType = "scenario"
)

// Valid reports whether the log type is a known channel.
func (t LogType) Valid() bool {
	switch t {
	case LogTypeSystem, LogTypeConstellation, LogTypeScenario:
		return true
	}
	return false
}

// TargetAll addresses a log entry to every player.
const TargetAll = "all"

// LogEntry is one line of the shared scenario log. Entries are append-only
// from the server's perspective.
type LogEntry struct {
	ID        int64
	Text      string
	Type      LogType
	Target    string
	Timestamp string
}

// AddressedTo reports whether the entry should be visible in a view scoped
// to the given player.
func (e LogEntry) AddressedTo(playerID int64) bool {
	return e.Target == TargetAll || e.Target == strconv.FormatInt(playerID, 10)
}

// PlayerTarget formats a player id as a log target selector.
func PlayerTarget(playerID int64) string {
	return strconv.FormatInt(playerID, 10)
}

// MessagePrefix synthesizes the human-readable broadcast prefix for a GM
// message of the given type addressed to targetLabel.
func MessagePrefix(logType LogType, targetLabel string) string {
	switch logType {
	case LogTypeConstellation:
		return fmt.Sprintf("[Constellation Message to %s]", targetLabel)
	case LogTypeScenario:
		return fmt.Sprintf("[Scenario Update for %s]", targetLabel)
	default:
		return fmt.Sprintf("[System Broadcast to %s]", targetLabel)
	}
}

// CoinAwardText describes a coin adjustment for the scenario log.
func CoinAwardText(amount int, playerName string) string {
	if amount >= 0 {
		return fmt.Sprintf("%d coins awarded to %s.", amount, playerName)
	}
	return fmt.Sprintf("%d coins removed from %s.", -amount, playerName)
}

// ClockTimestamp renders the wall-clock HH:MM:SS stamp logs carry.
func ClockTimestamp(now time.Time) string {
	return now.Format("15:04:05")
}
