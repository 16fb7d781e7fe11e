package paladins

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smoketree/paladins-go/internal/testutil"
)

func fixturePlayer(id int, name string) map[string]any {
	return map[string]any{
		"Id":                  id,
		"ActivePlayerId":      id,
		"Name":                name,
		"hz_player_name":      name,
		"Platform":            "Steam",
		"Created_Datetime":    "3/18/2019 7:18:06 AM",
		"Last_Login_Datetime": "10/10/2023 6:11:04 PM",
		"Level":               321,
		"Title":               "The Grizzled",
		"MinutesPlayed":       54321,
		"MasteryLevel":        58,
		"Region":              "Europe",
		"Total_XP":            100_000,
		"Wins":                2000,
		"Losses":              1500,
		"Leaves":              7,
		"RankedKBM": map[string]any{
			"Wins": 90, "Losses": 60, "Tier": 15, "Points": 44, "Season": 6,
		},
		"RankedController": map[string]any{
			"Wins": 0, "Losses": 0, "Tier": 0,
		},
	}
}

func TestGetPlayerByName(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.Handle("getplayer", testutil.Respond(mustJSON(t, []any{fixturePlayer(5959, "DragonSlayer")})))
	client := newTestClient(t, api)

	player, err := client.GetPlayer(context.Background(), "DragonSlayer")
	require.NoError(t, err)
	assert.Equal(t, 5959, player.ID())
	assert.Equal(t, "DragonSlayer", player.Name())
	assert.Equal(t, PlatformSteam, player.Platform())
	assert.Equal(t, RegionEurope, player.Region)
	assert.Equal(t, 321, player.Level)
	assert.Equal(t, 58, player.ChampionCount)
	assert.False(t, player.IsPrivate())
	assert.Equal(t, 2019, player.CreatedAt.Year())
}

func TestGetPlayerNamePrecedence(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	resp := fixturePlayer(5959, "SteamNickname")
	resp["hz_player_name"] = ""
	resp["hz_gamer_tag"] = "ConsoleTag"
	api.Handle("getplayer", testutil.Respond(mustJSON(t, []any{resp})))
	client := newTestClient(t, api)

	player, err := client.GetPlayer(context.Background(), 5959)
	require.NoError(t, err)
	assert.Equal(t, "ConsoleTag", player.Name())
	assert.Equal(t, "SteamNickname", player.PlatformName)
}

func TestGetPlayerZeroID(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	client := newTestClient(t, api)

	_, err := client.GetPlayer(context.Background(), 0)
	assert.True(t, IsNotFound(err))
	_, err = client.GetPlayer(context.Background(), "0")
	assert.True(t, IsNotFound(err))
	assert.Zero(t, api.Calls("getplayer"))
}

func TestGetPlayerNotFound(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.Handle("getplayer", testutil.Respond(`[]`))
	client := newTestClient(t, api)

	_, err := client.GetPlayer(context.Background(), "Nobody")
	assert.True(t, IsNotFound(err))
}

func TestGetPlayerPrivateProfile(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.Handle("getplayer", testutil.Respond(
		`[{"ret_msg":"Player Privacy Flag set for: playerIdType=9; playerId=12345; playerIdStr="}]`))
	client := newTestClient(t, api)

	_, err := client.GetPlayer(context.Background(), 12345)
	require.ErrorIs(t, err, ErrPrivate)
	var privErr *PrivateError
	require.ErrorAs(t, err, &privErr)
	assert.Equal(t, 12345, privErr.Player.ID())
	assert.Equal(t, PlatformPSN, privErr.Player.Platform())
	assert.True(t, privErr.Player.IsPrivate())
}

func TestPrivatePlayerRefusesRequests(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	client := newTestClient(t, api)

	private := newPartialPlayer(client, 0, "Hidden", PlatformUnknown, true)
	ctx := context.Background()

	_, err := private.Expand(ctx)
	assert.ErrorIs(t, err, ErrPrivate)
	_, err = private.GetStatus(ctx)
	assert.ErrorIs(t, err, ErrPrivate)
	_, _, err = private.GetFriends(ctx)
	assert.ErrorIs(t, err, ErrPrivate)
	assert.Zero(t, api.Sessions())
}

func TestPartialPlayerExpand(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.Handle("getplayer", testutil.Respond(mustJSON(t, []any{fixturePlayer(5959, "DragonSlayer")})))
	client := newTestClient(t, api)

	partial := client.WrapPlayer(5959, "", PlatformUnknown)
	player, err := partial.Expand(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "DragonSlayer", player.Name())
	assert.True(t, partial.Equal(player.PartialPlayer))
}

func TestGetStatus(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.Handle("getplayerstatus", testutil.Respond(
		`[{"Match":987654,"match_queue_id":486,"status":3}]`))
	client := newTestClient(t, api)

	status, err := client.WrapPlayer(5959, "", PlatformUnknown).GetStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ActivityInMatch, status.Status)
	assert.Equal(t, QueueRanked, status.Queue)
	assert.Equal(t, 987654, status.LiveMatchID)
}

func TestGetStatusUnknown(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.Handle("getplayerstatus", testutil.Respond(`[{"Match":0,"status":5}]`))
	client := newTestClient(t, api)

	_, err := client.WrapPlayer(5959, "", PlatformUnknown).GetStatus(context.Background())
	assert.True(t, IsNotFound(err))
}

func TestGetFriends(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.Handle("getfriends", testutil.Respond(mustJSON(t, []map[string]any{
		{"player_id": "11", "name": "BuddyOne", "portal_id": "5", "friend_flags": "1"},
		{"player_id": "22", "name": "BuddyTwo", "portal_id": "9", "friend_flags": "1"},
		{"player_id": "33", "name": "Nemesis", "portal_id": "1", "friend_flags": "32"},
		{"player_id": "44", "name": "Stranger", "portal_id": "1", "friend_flags": "4"},
	})))
	client := newTestClient(t, api)

	friends, blocked, err := client.WrapPlayer(5959, "", PlatformUnknown).GetFriends(context.Background())
	require.NoError(t, err)
	require.Len(t, friends, 2)
	assert.Equal(t, "BuddyOne", friends[0].Name())
	assert.Equal(t, PlatformSteam, friends[0].Platform())
	require.Len(t, blocked, 1)
	assert.Equal(t, "Nemesis", blocked[0].Name())
}

func TestGetLoadouts(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	installChampionInfo(t, api)
	api.Handle("getplayerloadouts", testutil.Respond(mustJSON(t, []map[string]any{
		{
			"playerId":     "5959",
			"ChampionId":   testChampionID,
			"ChampionName": "Androxus",
			"DeckId":       777,
			"DeckName":     "Flanking",
			"LoadoutItems": []map[string]any{
				{"ItemId": 9001, "itemName": "Card 01", "Points": 4},
				{"ItemId": 9002, "itemName": "Card 02", "Points": 3},
			},
		},
	})))
	client := newTestClient(t, api)

	loadouts, err := client.WrapPlayer(5959, "", PlatformUnknown).
		GetLoadouts(context.Background(), 0)
	require.NoError(t, err)
	require.Equal(t, 1, loadouts.Len())

	decks, ok := loadouts.Get("Androxus")
	require.True(t, ok)
	require.Len(t, decks, 1)
	assert.Equal(t, "Flanking", decks[0].DeckName)
	require.Len(t, decks[0].Cards, 2)
	// cards resolved against the cache carry the rich device
	_, isRich := decks[0].Cards[0].Card.(*Device)
	assert.True(t, isRich)
}

func TestGetLoadoutsEmpty(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	installChampionInfo(t, api)
	api.Handle("getplayerloadouts", testutil.Respond(`[{"playerId":"","ret_msg":null}]`))
	client := newTestClient(t, api)

	loadouts, err := client.WrapPlayer(5959, "", PlatformUnknown).
		GetLoadouts(context.Background(), 0)
	require.NoError(t, err)
	assert.Zero(t, loadouts.Len())
}

func TestGetChampionStats(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	installChampionInfo(t, api)
	api.Handle("getchampionranks", testutil.Respond(mustJSON(t, []map[string]any{
		{
			"champion_id": "2205", "champion": "Androxus",
			"Wins": 42, "Losses": 18, "Kills": 800, "Deaths": 400, "Assists": 200,
			"Gold": "1234567", "Minutes": 900, "Rank": 37,
			"LastPlayed": "10/10/2023 6:11:04 PM",
		},
	})))
	client := newTestClient(t, api)

	stats, err := client.WrapPlayer(5959, "", PlatformUnknown).
		GetChampionStats(context.Background(), 0, QueueUnknown)
	require.NoError(t, err)
	require.Equal(t, 1, stats.Len())
	assert.Equal(t, 1, api.Calls("getchampionranks"))
	assert.Zero(t, api.Calls("getqueuestats"))

	androxus, ok := stats.Get("Androxus")
	require.True(t, ok)
	assert.Equal(t, 60, androxus.MatchesPlayed())
	assert.InDelta(t, 0.7, androxus.Winrate(), 1e-9)
	assert.InDelta(t, 2.25, androxus.Ratio(), 1e-9)
	assert.Equal(t, 37, androxus.Level)
	assert.Equal(t, 1234567, androxus.CreditsEarned)
	_, isRich := androxus.Champion.(*Champion)
	assert.True(t, isRich)
}

func TestGetChampionStatsPerQueue(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	installChampionInfo(t, api)
	api.Handle("getqueuestats", testutil.Respond(`[]`))
	client := newTestClient(t, api)

	stats, err := client.WrapPlayer(5959, "", PlatformUnknown).
		GetChampionStats(context.Background(), 0, QueueRanked)
	require.NoError(t, err)
	assert.Zero(t, stats.Len())
	assert.Equal(t, 1, api.Calls("getqueuestats"))
}

func TestGetMatchHistory(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	installChampionInfo(t, api)
	api.Handle("getmatchhistory", testutil.Respond(mustJSON(t, []map[string]any{
		{
			"Match": 111, "Match_Queue_Id": 486, "Region": "Europe",
			"Match_Time": "10/10/2023 6:11:04 PM", "Time_In_Match_Seconds": 1265,
			"Map_Game": "LIVE Jaguar Falls (Siege)", "Win_Status": "Winner",
			"Winning_TaskForce": 1, "TaskForce": 1, "Team1Score": 4, "Team2Score": 2,
			"playerId": "5959", "playerName": "DragonSlayer",
			"ChampionId": testChampionID, "Champion": "Androxus",
			"Kills": 20, "Deaths": 10, "Assists": 5, "Gold": 98765,
			"ItemId1": 9001, "ItemLevel1": 4, "ItemId6": 9100, "ItemLevel6": 1,
			"ActiveId1": 13001, "ActiveLevel1": 2,
		},
	})))
	client := newTestClient(t, api)

	history, err := client.WrapPlayer(5959, "DragonSlayer", PlatformSteam).
		GetMatchHistory(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, history, 1)

	match := history[0]
	assert.Equal(t, 111, match.ID)
	assert.Equal(t, QueueRanked, match.Queue)
	assert.Equal(t, RegionEurope, match.Region)
	assert.Equal(t, "Jaguar Falls", match.MapName)
	assert.True(t, match.Winner)
	assert.Equal(t, [2]int{4, 2}, match.Score)
	assert.Equal(t, "21:05", match.Duration.String())
	assert.Equal(t, "Androxus", match.Champion.Name())
	require.Len(t, match.Loadout.Cards, 1)
	assert.Equal(t, 9100, match.Loadout.Talent.ID())
	require.Len(t, match.Items, 1)
	assert.Equal(t, 2, match.Items[0].Level)
}

func TestGetMatchHistoryEmpty(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	installChampionInfo(t, api)
	api.Handle("getmatchhistory", testutil.Respond(
		`[{"ret_msg":"No Match History","playerId":"5959"}]`))
	client := newTestClient(t, api)

	history, err := client.WrapPlayer(5959, "", PlatformUnknown).
		GetMatchHistory(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestRankedBest(t *testing.T) {
	player := &Player{
		RankedKeyboard: RankedStats{
			WinLose: WinLose{Wins: 10, Losses: 10}, Input: "Keyboard", Rank: RankGoldV,
		},
		RankedController: RankedStats{
			WinLose: WinLose{Wins: 5, Losses: 5}, Input: "Controller", Rank: RankSilverI,
		},
	}
	assert.Equal(t, "Keyboard", player.RankedBest().Input)

	player.RankedController.Rank = RankPlatinumV
	assert.Equal(t, "Controller", player.RankedBest().Input)

	// tied ranks break on winrate
	player.RankedController.Rank = RankGoldV
	player.RankedController.WinLose = WinLose{Wins: 9, Losses: 1}
	assert.Equal(t, "Controller", player.RankedBest().Input)
}

func TestCalculatedLevel(t *testing.T) {
	cases := []struct {
		xp       int
		expected int
	}{
		{0, 1},
		{39_999, 1},
		{40_000, 2},
		{99_999, 2},
		{100_000, 3},
		{25_479_999, 49},
		{25_480_000, 50},
		{26_480_000, 51},
		{35_480_000, 60},
	}
	for _, tc := range cases {
		player := &Player{TotalExperience: tc.xp}
		assert.Equal(t, tc.expected, player.CalculatedLevel(), "xp=%d", tc.xp)
	}
}

func TestWinLoseText(t *testing.T) {
	assert.Equal(t, "N/A", WinLose{}.WinrateText())
	assert.Equal(t, "50%", WinLose{Wins: 1, Losses: 1}.WinrateText())
	assert.Equal(t, "66.7%", WinLose{Wins: 2, Losses: 1}.WinrateText())
}
