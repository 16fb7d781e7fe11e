package paladins

import (
	"context"
	"fmt"
	"time"
)

// PartialPlayer stores basic information about a player: their ID, name and
// platform. Depending on how it was obtained, only the ID is guaranteed to
// be set. Expand upgrades it into a full Player.
//
// A player with a zero ID represents a private account and cannot be
// expanded or queried.
type PartialPlayer struct {
	client   *Client
	id       int
	name     string
	platform Platform
	private  bool
}

func newPartialPlayer(client *Client, id int, name string, platform Platform, private bool) *PartialPlayer {
	p := &PartialPlayer{
		client:   client,
		id:       id,
		name:     name,
		platform: platform,
		private:  private,
	}
	client.logger.Debug("partial player created",
		"id", id, "name", name, "platform", platform.String(), "private", private)
	return p
}

// ID returns the unique player ID. Zero indicates a private account and
// shouldn't be used to distinguish between players.
func (p *PartialPlayer) ID() int { return p.id }

// Name returns the player's name. May be empty, depending on the source.
func (p *PartialPlayer) Name() string { return p.name }

// Platform returns the player's platform.
func (p *PartialPlayer) Platform() Platform { return p.platform }

// IsPrivate reports whether the profile is private. Fetching any
// information for a private profile fails with ErrPrivate.
func (p *PartialPlayer) IsPrivate() bool {
	return p.private || p.id == 0
}

// Equal compares two players by their non-zero IDs.
func (p *PartialPlayer) Equal(other *PartialPlayer) bool {
	return p.id != 0 && other != nil && other.id != 0 && p.id == other.id
}

func (p *PartialPlayer) String() string {
	return fmt.Sprintf("%s(%d / %s)", p.name, p.id, p.platform)
}

// Expand upgrades this object to a full Player, refreshing all information
// stored. Uses up a single request.
func (p *PartialPlayer) Expand(ctx context.Context) (*Player, error) {
	if p.IsPrivate() {
		return nil, ErrPrivate
	}
	p.client.logger.Info("expanding player", "id", p.id)
	raw, err := p.client.Request(ctx, "getplayer", p.id)
	if err != nil {
		return nil, err
	}
	var resps []playerResponse
	if err := unmarshalResponse(raw, &resps); err != nil {
		return nil, err
	}
	if len(resps) == 0 {
		return nil, notFound("Player")
	}
	if resps[0].RetMsg != "" {
		return nil, ErrPrivate
	}
	return newPlayer(p.client, resps[0]), nil
}

// GetStatus fetches the player's current online status. Uses up a
// single request.
func (p *PartialPlayer) GetStatus(ctx context.Context) (*PlayerStatus, error) {
	if p.IsPrivate() {
		return nil, ErrPrivate
	}
	p.client.logger.Info("fetching player status", "id", p.id)
	raw, err := p.client.Request(ctx, "getplayerstatus", p.id)
	if err != nil {
		return nil, err
	}
	var resps []playerStatusResponse
	if err := unmarshalResponse(raw, &resps); err != nil {
		return nil, err
	}
	if len(resps) == 0 || resps[0].Status == int(ActivityUnknown) {
		return nil, notFound("Player status")
	}
	resp := resps[0]
	return &PlayerStatus{
		Player:      p,
		LiveMatchID: resp.Match,
		Queue:       queueByID(resp.MatchQueueID),
		Status:      activityByID(resp.Status),
	}, nil
}

// GetFriends fetches the player's friend list, split into friends and
// blocked players. Players with private profiles may be missing. Uses up a
// single request.
func (p *PartialPlayer) GetFriends(ctx context.Context) (friends, blocked []*PartialPlayer, err error) {
	if p.IsPrivate() {
		return nil, nil, ErrPrivate
	}
	p.client.logger.Info("fetching player friends", "id", p.id)
	raw, err := p.client.Request(ctx, "getfriends", p.id)
	if err != nil {
		return nil, nil, err
	}
	var resps []friendResponse
	if err := unmarshalResponse(raw, &resps); err != nil {
		return nil, nil, err
	}
	for _, resp := range resps {
		friend := newPartialPlayer(
			p.client,
			resp.PlayerID.IntOr(0),
			resp.Name,
			parsePlatformValue(resp.PortalID),
			false,
		)
		// yes, the flags really are strings
		switch resp.FriendFlags {
		case "1":
			friends = append(friends, friend)
		case "32":
			blocked = append(blocked, friend)
		}
	}
	return friends, blocked, nil
}

// GetLoadouts fetches the player's loadouts, grouped by champion. Uses up a
// single request.
func (p *PartialPlayer) GetLoadouts(
	ctx context.Context, language Language,
) (*LookupGroup[*Loadout], error) {
	if p.IsPrivate() {
		return nil, ErrPrivate
	}
	language = p.client.resolveLanguage(language)
	entry, err := p.client.ensureEntry(ctx, language)
	if err != nil {
		return nil, err
	}
	p.client.logger.Info("fetching player loadouts", "id", p.id, "language", language.String())
	raw, err := p.client.Request(ctx, "getplayerloadouts", p.id, int(language))
	if err != nil {
		return nil, err
	}
	var resps []loadoutResponse
	if err := unmarshalResponse(raw, &resps); err != nil {
		return nil, err
	}
	group := NewLookupGroup[*Loadout](func(l *Loadout) Entity { return l.Champion })
	if len(resps) == 0 || resps[0].PlayerID.IntOr(0) == 0 {
		return group, nil
	}
	for _, resp := range resps {
		group.Add(newLoadout(p, language, entry, resp))
	}
	return group, nil
}

// GetChampionStats fetches the player's per-champion statistics, indexed by
// champion. Pass QueueUnknown to aggregate over all queues. Uses up a
// single request.
func (p *PartialPlayer) GetChampionStats(
	ctx context.Context, language Language, queue Queue,
) (*Lookup[*ChampionStats], error) {
	if p.IsPrivate() {
		return nil, ErrPrivate
	}
	language = p.client.resolveLanguage(language)
	entry, err := p.client.ensureEntry(ctx, language)
	if err != nil {
		return nil, err
	}
	p.client.logger.Info("fetching champion stats", "id", p.id, "queue", queue.String())
	var raw []byte
	if queue == QueueUnknown {
		raw, err = p.client.Request(ctx, "getchampionranks", p.id)
	} else {
		raw, err = p.client.Request(ctx, "getqueuestats", p.id, int(queue))
	}
	if err != nil {
		return nil, err
	}
	var resps []championRankResponse
	if err := unmarshalResponse(raw, &resps); err != nil {
		return nil, err
	}
	lookup := NewLookup[*ChampionStats]()
	for _, resp := range resps {
		lookup.Add(newChampionStats(p, entry, resp, queue))
	}
	return lookup, nil
}

// GetMatchHistory fetches the player's up to 50 most recent matches, from
// this player's perspective only. The list can be shorter, or empty, if the
// player hasn't played recently. Uses up a single request.
func (p *PartialPlayer) GetMatchHistory(
	ctx context.Context, language Language,
) ([]*PartialMatch, error) {
	if p.IsPrivate() {
		return nil, ErrPrivate
	}
	language = p.client.resolveLanguage(language)
	entry, err := p.client.ensureEntry(ctx, language)
	if err != nil {
		return nil, err
	}
	p.client.logger.Info("fetching match history", "id", p.id, "language", language.String())
	raw, err := p.client.Request(ctx, "getmatchhistory", p.id)
	if err != nil {
		return nil, err
	}
	var resps []historyMatchResponse
	if err := unmarshalResponse(raw, &resps); err != nil {
		return nil, err
	}
	if len(resps) == 0 || resps[0].RetMsg != "" {
		return nil, nil
	}
	matches := make([]*PartialMatch, 0, len(resps))
	for _, resp := range resps {
		matches = append(matches, newPartialMatch(p, language, entry, resp))
	}
	return matches, nil
}

// PlayerStatus is a player's current online status.
type PlayerStatus struct {
	Player *PartialPlayer

	// LiveMatchID is the ID of the live match the player is in, or zero.
	LiveMatchID int

	// Queue the player is playing in, or QueueUnknown outside a match.
	Queue Queue

	Status Activity
}

func (s *PlayerStatus) String() string {
	return fmt.Sprintf("%s(%d): %s", s.Player.Name(), s.Player.ID(), s.Status)
}

// GetLiveMatch fetches the live match the player is currently in, or nil
// when the player isn't in one. Uses up a single request.
func (s *PlayerStatus) GetLiveMatch(ctx context.Context, language Language) (*LiveMatch, error) {
	if s.LiveMatchID == 0 {
		return nil, nil
	}
	client := s.Player.client
	language = client.resolveLanguage(language)
	entry, err := client.ensureEntry(ctx, language)
	if err != nil {
		return nil, err
	}
	raw, err := client.Request(ctx, "getmatchplayerdetails", s.LiveMatchID)
	if err != nil {
		return nil, err
	}
	var resps []livePlayerResponse
	if err := unmarshalResponse(raw, &resps); err != nil {
		return nil, err
	}
	if len(resps) == 0 || resps[0].RetMsg != "" {
		return nil, nil
	}
	return newLiveMatch(client, entry, resps, nil), nil
}

// Player is a full player profile, as returned by Client.GetPlayer and by
// expanding a PartialPlayer.
type Player struct {
	*PartialPlayer

	// ActivePlayer is the active player between merged profiles, or nil
	// when this profile is the active one.
	ActivePlayer *PartialPlayer

	// MergedPlayers lists merged profiles; only ID and platform are set.
	MergedPlayers []*PartialPlayer

	// PlatformName is the profile's platform-level name; this differs from
	// Name on platforms that allow nicknames (Steam).
	PlatformName string

	// CreatedAt and LastLogin are zero for accounts old enough that the
	// API no longer reports them.
	CreatedAt time.Time
	LastLogin time.Time

	Level         int
	Title         string
	AvatarID      int
	AvatarURL     string
	LoadingFrame  string
	Playtime      Duration
	ChampionCount int
	Region        Region

	TotalAchievements int
	TotalExperience   int

	Casual           Stats
	RankedKeyboard   RankedStats
	RankedController RankedStats
}

func newPlayer(client *Client, resp playerResponse) *Player {
	name := resp.Name
	if resp.HzPlayerName != "" {
		name = resp.HzPlayerName
	} else if resp.HzGamerTag != "" {
		name = resp.HzGamerTag
	}
	player := &Player{
		PartialPlayer: newPartialPlayer(
			client, resp.ID, name, parsePlatformValue(resp.Platform), false),
		PlatformName:      resp.Name,
		CreatedAt:         parseTimestamp(resp.CreatedDatetime),
		LastLogin:         parseTimestamp(resp.LastLoginDatetime),
		Level:             resp.Level,
		Title:             resp.Title,
		AvatarID:          resp.AvatarID,
		AvatarURL:         resp.AvatarURL,
		LoadingFrame:      resp.LoadingFrame,
		Playtime:          DurationOf(time.Duration(resp.MinutesPlayed) * time.Minute),
		ChampionCount:     resp.MasteryLevel,
		Region:            parseRegionValue(resp.Region),
		TotalAchievements: resp.TotalAchievements,
		TotalExperience:   resp.TotalXP,
		Casual: Stats{
			WinLose: WinLose{Wins: resp.Wins, Losses: resp.Losses},
			Leaves:  resp.Leaves,
		},
		RankedKeyboard:   newRankedStats("Keyboard", resp.RankedKBM),
		RankedController: newRankedStats("Controller", resp.RankedController),
	}
	if resp.ActivePlayerID != 0 && resp.ActivePlayerID != resp.ID {
		player.ActivePlayer = newPartialPlayer(client, resp.ActivePlayerID, "", PlatformUnknown, false)
	}
	for _, merged := range resp.MergedPlayers {
		player.MergedPlayers = append(player.MergedPlayers, newPartialPlayer(
			client, merged.PlayerID.IntOr(0), "", parsePlatformValue(merged.PortalID), false))
	}
	return player
}

// RankedBest returns the better of the keyboard and controller ranked
// statistics. Equal ranks are broken by winrate.
func (p *Player) RankedBest() RankedStats {
	kb, ctrl := p.RankedKeyboard, p.RankedController
	if kb.Rank == ctrl.Rank {
		if ctrl.MatchesPlayed() > 0 && (kb.MatchesPlayed() == 0 || ctrl.Winrate() > kb.Winrate()) {
			return ctrl
		}
		return kb
	}
	if ctrl.Rank > kb.Rank {
		return ctrl
	}
	return kb
}

// CalculatedLevel derives the profile level from total experience, instead
// of trusting the API-reported value. Unlike the reported one, it keeps
// counting past the 999 level cap.
func (p *Player) CalculatedLevel() int {
	// Players start at level 1, with 40k EXP needed to reach level 2.
	// The requirement then grows by 20k per level until hitting 1M EXP at
	// level 50, after which every level needs a flat 1M EXP.
	const level50Threshold = 25_480_000
	if p.TotalExperience >= level50Threshold {
		return (p.TotalExperience-level50Threshold)/1_000_000 + 50
	}
	total := 0
	for level := 2; level <= 50; level++ {
		total += level * 20_000
		if total > p.TotalExperience {
			return level - 1
		}
	}
	return 50
}
