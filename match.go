package paladins

import (
	"context"
	"fmt"
	"time"
)

func newMatchItems(entry *CacheEntry, pairs [][2]int) []MatchItem {
	var items []MatchItem
	for _, pair := range pairs {
		id, level := pair[0], pair[1]
		if id == 0 {
			continue
		}
		items = append(items, MatchItem{
			Item:  entry.Items.Resolve(id, ""),
			Level: level,
		})
	}
	return items
}

// DamageStats groups the damage and healing numbers a player put up during
// a match.
type DamageStats struct {
	Damage          int
	DamageBot       int
	DamageTaken     int
	DamageMitigated int
	Healing         int
	HealingBot      int
	SelfHealing     int
	ObjectiveTime   int
	Shielding       int
}

// PartialMatch is a single match from a player's match history, seen from
// that player's perspective only. Expand upgrades it into a full Match.
type PartialMatch struct {
	KDA

	Player   *PartialPlayer
	Language Language

	ID        int
	Queue     Queue
	Region    Region
	Timestamp time.Time
	Duration  Duration
	MapName   string

	// Score is the team1, team2 score pair. Winner reports whether the
	// perspective player's team won.
	Score  [2]int
	Winner bool

	// Champion played, or a placeholder with incomplete cache.
	Champion Entity

	// Skin used, or a placeholder with incomplete cache.
	Skin Entity

	Loadout MatchLoadout
	Items   []MatchItem

	Damage       DamageStats
	Credits      int
	MultikillMax int
}

func newPartialMatch(
	player *PartialPlayer, language Language, entry *CacheEntry, resp historyMatchResponse,
) *PartialMatch {
	return &PartialMatch{
		KDA:          KDA{Kills: resp.Kills, Deaths: resp.Deaths, Assists: resp.Assists},
		Player:       player,
		Language:     language,
		ID:           resp.Match,
		Queue:        queueByID(resp.MatchQueueID),
		Region:       parseRegionValue(resp.Region),
		Timestamp:    parseTimestamp(resp.MatchTime),
		Duration:     DurationSeconds(resp.TimeInMatchSeconds),
		MapName:      convertMapName(resp.MapGame),
		Score:        [2]int{resp.Team1Score, resp.Team2Score},
		Winner:       resp.TaskForce == resp.WinningTaskForce,
		Champion:     entry.Champions.Resolve(resp.ChampionID, resp.Champion),
		Skin:         entry.Skins.Resolve(resp.SkinID, resp.Skin),
		Loadout:      newMatchLoadout(entry, resp.cards()),
		Items:        newMatchItems(entry, resp.actives()),
		Credits:      resp.Gold,
		MultikillMax: resp.MultiKillMax,
		Damage: DamageStats{
			Damage:          resp.Damage,
			DamageBot:       resp.DamageBot,
			DamageTaken:     resp.DamageTaken,
			DamageMitigated: resp.DamageMitigated,
			Healing:         resp.Healing,
			HealingBot:      resp.HealingBot,
			SelfHealing:     resp.HealingPlayerSelf,
			ObjectiveTime:   resp.ObjectiveAssists,
		},
	}
}

func (m *PartialMatch) String() string {
	return fmt.Sprintf("%s: %s: %s(%d/%d/%d)",
		m.Queue, m.Champion.Name(), m.Player.Name(), m.Kills, m.Deaths, m.Assists)
}

// Expand upgrades this match into a full Match, containing all of its
// players. Uses up a single request.
func (m *PartialMatch) Expand(ctx context.Context) (*Match, error) {
	client := m.Player.client
	entry, err := client.ensureEntry(ctx, m.Language)
	if err != nil {
		return nil, err
	}
	client.logger.Info("expanding match", "id", m.ID)
	raw, err := client.Request(ctx, "getmatchdetails", m.ID)
	if err != nil {
		return nil, err
	}
	var resps []matchPlayerResponse
	if err := unmarshalResponse(raw, &resps); err != nil {
		return nil, err
	}
	if len(resps) == 0 {
		return nil, notFound("Match")
	}
	return newMatch(client, m.Language, entry, resps, nil), nil
}

// MatchPlayer is a single player's statistics within a full Match.
type MatchPlayer struct {
	KDA

	Match  *Match
	Player *PartialPlayer

	// Champion played, or a placeholder with incomplete cache.
	Champion Entity

	// Skin used, or a placeholder with incomplete cache.
	Skin Entity

	Loadout MatchLoadout
	Items   []MatchItem

	Damage       DamageStats
	Credits      int
	MultikillMax int

	// PartyNumber groups premade players: players sharing a non-zero number
	// queued together. Solo players keep zero.
	PartyNumber int

	AccountLevel int
	MasteryLevel int

	// Rank the player held at match time, for ranked queues.
	Rank Rank

	KillingSpree int
	MatchLevel   int
}

// Winner reports whether this player's team won the match.
func (p *MatchPlayer) Winner() bool {
	return p.Match != nil && containsPlayer(p.Match.winningTeam(), p)
}

func containsPlayer(team []*MatchPlayer, player *MatchPlayer) bool {
	for _, p := range team {
		if p == player {
			return true
		}
	}
	return false
}

func (p *MatchPlayer) String() string {
	return fmt.Sprintf("%s: %s(%d/%d/%d)",
		p.Champion.Name(), p.Player.Name(), p.Kills, p.Deaths, p.Assists)
}

// Match is a full match, with all of its players.
type Match struct {
	client *Client

	Language  Language
	ID        int
	Queue     Queue
	Region    Region
	Timestamp time.Time
	Duration  Duration
	MapName   string

	Score            [2]int
	WinningTaskForce int
	ReplayAvailable  bool

	// Bans lists the champions banned in a ranked match, resolved against
	// the cache where possible.
	Bans []Entity

	Team1 []*MatchPlayer
	Team2 []*MatchPlayer
}

// newMatch builds a full match out of its per-player detail records. The
// optional players map substitutes already-expanded Player objects for the
// partial ones, matched by ID.
func newMatch(
	client *Client,
	language Language,
	entry *CacheEntry,
	resps []matchPlayerResponse,
	players map[int]*Player,
) *Match {
	first := resps[0]
	match := &Match{
		client:           client,
		Language:         language,
		ID:               first.Match,
		Queue:            queueByID(first.MatchQueueID),
		Region:           parseRegionValue(first.Region),
		Timestamp:        parseTimestamp(first.EntryDatetime),
		Duration:         DurationSeconds(first.TimeInMatchSeconds),
		MapName:          convertMapName(first.MapGame),
		Score:            [2]int{first.Team1Score, first.Team2Score},
		WinningTaskForce: first.WinningTaskForce,
		ReplayAvailable:  first.HasReplay == "y",
	}
	for i := range first.BanIDs {
		if first.BanIDs[i] == 0 && first.BanNames[i] == "" {
			continue
		}
		match.Bans = append(match.Bans, entry.Champions.Resolve(first.BanIDs[i], first.BanNames[i]))
	}

	// Non-zero party IDs shared by at least two players get a small party
	// number, in order of appearance. One-man "parties" keep zero.
	partyCounts := make(map[int]int)
	for _, resp := range resps {
		if resp.PartyID != 0 {
			partyCounts[resp.PartyID]++
		}
	}
	partyNumbers := make(map[int]int)
	nextParty := 0

	for _, resp := range resps {
		partyNumber := 0
		if partyCounts[resp.PartyID] > 1 {
			number, ok := partyNumbers[resp.PartyID]
			if !ok {
				nextParty++
				number = nextParty
				partyNumbers[resp.PartyID] = number
			}
			partyNumber = number
		}

		playerID := resp.PlayerID.IntOr(0)
		var partial *PartialPlayer
		if expanded, ok := players[playerID]; ok && playerID != 0 {
			partial = expanded.PartialPlayer
		} else {
			partial = newPartialPlayer(
				client, playerID, resp.PlayerName,
				parsePlatformValue(resp.PlayerPortalID), playerID == 0)
		}

		player := &MatchPlayer{
			KDA:          KDA{Kills: resp.KillsPlayer, Deaths: resp.Deaths, Assists: resp.Assists},
			Match:        match,
			Player:       partial,
			Champion:     entry.Champions.Resolve(resp.ChampionID, resp.ReferenceName),
			Skin:         entry.Skins.Resolve(resp.SkinID, resp.Skin),
			Loadout:      newMatchLoadout(entry, resp.cards()),
			Items:        newMatchItems(entry, resp.actives()),
			Credits:      resp.GoldEarned,
			MultikillMax: resp.MultiKillMax,
			PartyNumber:  partyNumber,
			AccountLevel: resp.AccountLevel,
			MasteryLevel: resp.MasteryLevel,
			Rank:         rankByID(resp.LeagueTier),
			KillingSpree: resp.KillingSpree,
			MatchLevel:   resp.FinalMatchLevel,
			Damage: DamageStats{
				Damage:          resp.DamagePlayer,
				DamageBot:       resp.DamageBot,
				DamageTaken:     resp.DamageTaken,
				DamageMitigated: resp.DamageMitigated,
				Healing:         resp.Healing,
				HealingBot:      resp.HealingBot,
				SelfHealing:     resp.HealingPlayerSelf,
				ObjectiveTime:   resp.ObjectiveAssists,
			},
		}
		if resp.TaskForce == 2 {
			match.Team2 = append(match.Team2, player)
		} else {
			match.Team1 = append(match.Team1, player)
		}
	}
	return match
}

func (m *Match) winningTeam() []*MatchPlayer {
	if m.WinningTaskForce == 2 {
		return m.Team2
	}
	return m.Team1
}

// Players iterates over both teams' players, team 1 first.
func (m *Match) Players() []*MatchPlayer {
	players := make([]*MatchPlayer, 0, len(m.Team1)+len(m.Team2))
	players = append(players, m.Team1...)
	players = append(players, m.Team2...)
	return players
}

func (m *Match) String() string {
	return fmt.Sprintf("%s(%d): %d-%d", m.Queue, m.ID, m.Score[0], m.Score[1])
}

// ExpandPlayers fetches full profiles for every player in the match and
// substitutes them in place of the partial ones. Private players are left
// untouched. Uses up one request per 20 unique players.
func (m *Match) ExpandPlayers(ctx context.Context) error {
	var ids []int
	for _, player := range m.Players() {
		ids = append(ids, player.Player.ID())
	}
	players, err := m.client.getPlayersMap(ctx, ids)
	if err != nil {
		return err
	}
	for _, player := range m.Players() {
		if expanded, ok := players[player.Player.ID()]; ok {
			player.Player = expanded.PartialPlayer
		}
	}
	return nil
}

// LivePlayer is a single player in an ongoing match.
type LivePlayer struct {
	Match  *LiveMatch
	Player *PartialPlayer

	// Champion picked, or a placeholder with incomplete cache.
	Champion Entity

	// Skin used, or a placeholder with incomplete cache.
	Skin Entity

	// TaskForce is 1 or 2, naming the player's team.
	TaskForce int

	// Rank and the per-tier win/loss record, for ranked queues.
	Rank   Rank
	Wins   int
	Losses int

	AccountLevel int
	MasteryLevel int
}

func (p *LivePlayer) String() string {
	return fmt.Sprintf("%s: %s(%d)", p.Champion.Name(), p.Player.Name(), p.AccountLevel)
}

// LiveMatch is an ongoing match, fetched through a player's status.
type LiveMatch struct {
	client *Client

	ID      int
	Queue   Queue
	Region  Region
	MapName string

	Team1 []*LivePlayer
	Team2 []*LivePlayer
}

func newLiveMatch(
	client *Client, entry *CacheEntry, resps []livePlayerResponse, players map[int]*Player,
) *LiveMatch {
	first := resps[0]
	match := &LiveMatch{
		client:  client,
		ID:      first.Match,
		Queue:   queueByID(first.Queue.IntOr(0)),
		Region:  parseRegionValue(first.PlayerRegion),
		MapName: convertMapName(first.MapGame),
	}
	for _, resp := range resps {
		playerID := resp.PlayerID.IntOr(0)
		var partial *PartialPlayer
		if expanded, ok := players[playerID]; ok && playerID != 0 {
			partial = expanded.PartialPlayer
		} else {
			partial = newPartialPlayer(
				client, playerID, resp.PlayerName,
				parsePlatformValue(resp.PlayerPortalID), playerID == 0)
		}
		player := &LivePlayer{
			Match:        match,
			Player:       partial,
			Champion:     entry.Champions.Resolve(resp.ChampionID, resp.ChampionName),
			Skin:         entry.Skins.Resolve(resp.SkinID, resp.Skin),
			TaskForce:    resp.TaskForce,
			AccountLevel: resp.AccountLevel,
			MasteryLevel: resp.MasteryLevel,
			Wins:         resp.TierWins,
			Losses:       resp.TierLosses,
		}
		if match.Queue.IsRanked() {
			player.Rank = rankByID(resp.Tier)
		}
		if resp.TaskForce == 2 {
			match.Team2 = append(match.Team2, player)
		} else {
			match.Team1 = append(match.Team1, player)
		}
	}
	return match
}

// Players iterates over both teams' players, team 1 first.
func (m *LiveMatch) Players() []*LivePlayer {
	players := make([]*LivePlayer, 0, len(m.Team1)+len(m.Team2))
	players = append(players, m.Team1...)
	players = append(players, m.Team2...)
	return players
}

func (m *LiveMatch) String() string {
	return fmt.Sprintf("Live %s(%d)", m.Queue, m.ID)
}

// ExpandPlayers fetches full profiles for every player in the live match
// and substitutes them in place of the partial ones. Private players are
// left untouched. Uses up one request per 20 unique players.
func (m *LiveMatch) ExpandPlayers(ctx context.Context) error {
	var ids []int
	for _, player := range m.Players() {
		ids = append(ids, player.Player.ID())
	}
	players, err := m.client.getPlayersMap(ctx, ids)
	if err != nil {
		return err
	}
	for _, player := range m.Players() {
		if expanded, ok := players[player.Player.ID()]; ok {
			player.Player = expanded.PartialPlayer
		}
	}
	return nil
}
