package paladins

import (
	"fmt"
	"math"
	"time"
)

// WinLose carries win/loss statistics and their derived ratios.
type WinLose struct {
	Wins   int
	Losses int
}

// MatchesPlayed returns the total amount of matches played.
func (w WinLose) MatchesPlayed() int {
	return w.Wins + w.Losses
}

// Winrate returns the fraction of matches won, or NaN when no matches
// were played.
func (w WinLose) Winrate() float64 {
	played := w.MatchesPlayed()
	if played == 0 {
		return math.NaN()
	}
	return float64(w.Wins) / float64(played)
}

// WinrateText formats the winrate as a percentage, or "N/A" when no matches
// were played.
func (w WinLose) WinrateText() string {
	if w.MatchesPlayed() == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.3g%%", w.Winrate()*100)
}

// KDA carries kill/death/assist statistics and their derived ratios.
type KDA struct {
	Kills   int
	Deaths  int
	Assists int
}

// Ratio returns (kills + assists/2) / deaths, or NaN with zero deaths.
func (k KDA) Ratio() float64 {
	if k.Deaths == 0 {
		return math.NaN()
	}
	return (float64(k.Kills) + float64(k.Assists)/2) / float64(k.Deaths)
}

// Text formats the raw kills/deaths/assists triple.
func (k KDA) Text() string {
	return fmt.Sprintf("%d/%d/%d", k.Kills, k.Deaths, k.Assists)
}

// Stats are a player's casual statistics.
type Stats struct {
	WinLose
	Leaves int
}

// RankedStats are a player's ranked statistics for one input type.
type RankedStats struct {
	WinLose
	// Input is "Keyboard" or "Controller".
	Input  string
	Leaves int
	Rank   Rank
	Points int
	Season int
}

func newRankedStats(input string, resp rankedStatsResponse) RankedStats {
	return RankedStats{
		WinLose: WinLose{Wins: resp.Wins, Losses: resp.Losses},
		Input:   input,
		Leaves:  resp.Leaves,
		Rank:    rankByID(resp.Tier),
		Points:  resp.Points,
		Season:  resp.Season,
	}
}

// ChampionStats are a player's statistics for a single champion, optionally
// filtered to a single queue.
type ChampionStats struct {
	WinLose
	KDA
	Player *PartialPlayer

	// Champion these statistics are for, or a placeholder with
	// incomplete cache.
	Champion Entity

	// Queue the statistics are filtered to. QueueUnknown means all queues.
	Queue Queue

	Level          int
	CreditsEarned  int
	Playtime       Duration
	LastPlayed     time.Time
}

// ID returns the champion's ID, letting stats be indexed in a Lookup.
func (s *ChampionStats) ID() int { return s.Champion.ID() }

// Name returns the champion's name.
func (s *ChampionStats) Name() string { return s.Champion.Name() }

func newChampionStats(
	player *PartialPlayer, entry *CacheEntry, resp championRankResponse, queue Queue,
) *ChampionStats {
	championID := resp.ChampionID.IntOr(0)
	return &ChampionStats{
		WinLose:       WinLose{Wins: resp.Wins, Losses: resp.Losses},
		KDA:           KDA{Kills: resp.Kills, Deaths: resp.Deaths, Assists: resp.Assists},
		Player:        player,
		Champion:      entry.Champions.Resolve(championID, resp.Champion),
		Queue:         queue,
		Level:         resp.Rank,
		CreditsEarned: resp.Gold.IntOr(0),
		Playtime:      DurationOf(time.Duration(resp.Minutes) * time.Minute),
		LastPlayed:    parseTimestamp(resp.LastPlayed),
	}
}

// DataUsed describes the developer account's API usage statistics.
type DataUsed struct {
	Timestamp time.Time

	ActiveSessions     int
	TotalSessionsToday int
	SessionCap         int
	SessionTimeLimit   Duration
	ConcurrentSessions int

	TotalRequestsToday int
	DailyRequestLimit  int
}

func newDataUsed(now time.Time, resp dataUsedResponse) *DataUsed {
	return &DataUsed{
		Timestamp:          now,
		ActiveSessions:     resp.ActiveSessions,
		TotalSessionsToday: resp.TotalSessionsToday,
		SessionCap:         resp.SessionCap,
		SessionTimeLimit:   DurationOf(time.Duration(resp.SessionTimeLimit) * time.Minute),
		ConcurrentSessions: resp.ConcurrentSessions,
		TotalRequestsToday: resp.TotalRequestsToday,
		DailyRequestLimit:  resp.RequestLimitDaily,
	}
}

// SessionsLeft returns the amount of sessions available today.
func (d *DataUsed) SessionsLeft() int {
	return max(d.SessionCap-d.TotalSessionsToday, 0)
}

// RequestsLeft returns the amount of requests available today.
func (d *DataUsed) RequestsLeft() int {
	return max(d.DailyRequestLimit-d.TotalRequestsToday, 0)
}
