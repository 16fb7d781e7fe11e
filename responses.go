package paladins

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

func unmarshalResponse(raw json.RawMessage, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// The API is loose with scalar types: IDs and enum values arrive either as
// JSON numbers or as strings, depending on the endpoint. intOrString accepts
// both forms.
type intOrString struct {
	raw   string
	isNum bool
}

func (v *intOrString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = intOrString{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = intOrString{raw: s}
		return nil
	}
	*v = intOrString{raw: string(data), isNum: true}
	return nil
}

// Int returns the numeric value. The second return value is false when the
// payload held a non-numeric string.
func (v intOrString) Int() (int, bool) {
	n, err := strconv.Atoi(v.raw)
	return n, err == nil
}

// IntOr returns the numeric value, or fallback for non-numeric payloads.
func (v intOrString) IntOr(fallback int) int {
	if n, ok := v.Int(); ok {
		return n
	}
	return fallback
}

func (v intOrString) String() string {
	return v.raw
}

// Wire-level response shapes, one struct per API endpoint family. Only the
// fields the library consumes are declared.

type sessionResponse struct {
	RetMsg    string `json:"ret_msg"`
	SessionID string `json:"session_id"`
}

type dataUsedResponse struct {
	RetMsg             string `json:"ret_msg"`
	ActiveSessions     int    `json:"Active_Sessions"`
	ConcurrentSessions int    `json:"Concurrent_Sessions"`
	RequestLimitDaily  int    `json:"Request_Limit_Daily"`
	SessionCap         int    `json:"Session_Cap"`
	SessionTimeLimit   int    `json:"Session_Time_Limit"`
	TotalRequestsToday int    `json:"Total_Requests_Today"`
	TotalSessionsToday int    `json:"Total_Sessions_Today"`
}

type serverStatusResponse struct {
	RetMsg        string `json:"ret_msg"`
	Environment   string `json:"environment"`
	Platform      string `json:"platform"`
	LimitedAccess bool   `json:"limited_access"`
	Status        string `json:"status"`
	Version       string `json:"version"`
}

type abilityResponse struct {
	ID              int    `json:"Id"`
	Summary         string `json:"Summary"`
	Description     string `json:"Description"`
	DamageType      string `json:"damageType"`
	RechargeSeconds int    `json:"rechargeSeconds"`
	URL             string `json:"URL"`
}

type championResponse struct {
	RetMsg   string          `json:"ret_msg"`
	ID       int             `json:"id"`
	Name     string          `json:"Name"`
	Title    string          `json:"Title"`
	Roles    string          `json:"Roles"`
	Lore     string          `json:"Lore"`
	Health   int             `json:"Health"`
	Speed    int             `json:"Speed"`
	IconURL  string          `json:"ChampionIcon_URL"`
	Ability1 abilityResponse `json:"Ability_1"`
	Ability2 abilityResponse `json:"Ability_2"`
	Ability3 abilityResponse `json:"Ability_3"`
	Ability4 abilityResponse `json:"Ability_4"`
	Ability5 abilityResponse `json:"Ability_5"`
}

func (c *championResponse) abilities() []abilityResponse {
	return []abilityResponse{c.Ability1, c.Ability2, c.Ability3, c.Ability4, c.Ability5}
}

type deviceResponse struct {
	RetMsg             string `json:"ret_msg"`
	ItemID             int    `json:"ItemId"`
	DeviceName         string `json:"DeviceName"`
	Description        string `json:"Description"`
	ItemType           string `json:"item_type"`
	IconURL            string `json:"itemIcon_URL"`
	Price              int    `json:"Price"`
	ChampionID         int    `json:"champion_id"`
	RechargeSeconds    int    `json:"recharge_seconds"`
	TalentRewardLevel  int    `json:"talent_reward_level"`
}

type championSkinResponse struct {
	RetMsg     string `json:"ret_msg"`
	ChampionID int    `json:"champion_id"`
	SkinID     int    `json:"skin_id2"`
	SkinName   string `json:"skin_name"`
	Rarity     string `json:"rarity"`
}

type mergedPlayerResponse struct {
	PlayerID intOrString `json:"playerId"`
	PortalID intOrString `json:"portalId"`
}

type rankedStatsResponse struct {
	Wins         int `json:"Wins"`
	Losses       int `json:"Losses"`
	Leaves       int `json:"Leaves"`
	Points       int `json:"Points"`
	Tier         int `json:"Tier"`
	Season       int `json:"Season"`
	PrevRank     int `json:"PrevRank"`
	TrendingUp   int `json:"Trends"`
}

type playerResponse struct {
	RetMsg             string                 `json:"ret_msg"`
	ID                 int                    `json:"Id"`
	ActivePlayerID     int                    `json:"ActivePlayerId"`
	MergedPlayers      []mergedPlayerResponse `json:"MergedPlayers"`
	Name               string                 `json:"Name"`
	HzPlayerName       string                 `json:"hz_player_name"`
	HzGamerTag         string                 `json:"hz_gamer_tag"`
	Platform           intOrString            `json:"Platform"`
	CreatedDatetime    string                 `json:"Created_Datetime"`
	LastLoginDatetime  string                 `json:"Last_Login_Datetime"`
	Level              int                    `json:"Level"`
	Title              string                 `json:"Title"`
	AvatarID           int                    `json:"AvatarId"`
	AvatarURL          string                 `json:"AvatarURL"`
	LoadingFrame       string                 `json:"LoadingFrame"`
	MinutesPlayed      int                    `json:"MinutesPlayed"`
	MasteryLevel       int                    `json:"MasteryLevel"`
	Region             string                 `json:"Region"`
	TotalAchievements  int                    `json:"Total_Achievements"`
	TotalXP            int                    `json:"Total_XP"`
	Wins               int                    `json:"Wins"`
	Losses             int                    `json:"Losses"`
	Leaves             int                    `json:"Leaves"`
	RankedKBM          rankedStatsResponse    `json:"RankedKBM"`
	RankedController   rankedStatsResponse    `json:"RankedController"`
}

type partialPlayerResponse struct {
	RetMsg      string      `json:"ret_msg"`
	PlayerID    intOrString `json:"player_id"`
	Name        string      `json:"Name"`
	HzName      string      `json:"hz_player_name"`
	PortalID    intOrString `json:"portal_id"`
	PrivacyFlag string      `json:"privacy_flag"`
}

type playerStatusResponse struct {
	RetMsg       string `json:"ret_msg"`
	Match        int    `json:"Match"`
	MatchQueueID int    `json:"match_queue_id"`
	Status       int    `json:"status"`
}

type friendResponse struct {
	RetMsg      string      `json:"ret_msg"`
	PlayerID    intOrString `json:"player_id"`
	Name        string      `json:"name"`
	PortalID    intOrString `json:"portal_id"`
	FriendFlags string      `json:"friend_flags"`
}

type loadoutItemResponse struct {
	ItemID   int    `json:"ItemId"`
	ItemName string `json:"itemName"`
	Points   int    `json:"Points"`
}

type loadoutResponse struct {
	RetMsg       string                `json:"ret_msg"`
	PlayerID     intOrString           `json:"playerId"`
	ChampionID   int                   `json:"ChampionId"`
	ChampionName string                `json:"ChampionName"`
	DeckID       int                   `json:"DeckId"`
	DeckName     string                `json:"DeckName"`
	LoadoutItems []loadoutItemResponse `json:"LoadoutItems"`
}

type championRankResponse struct {
	RetMsg       string      `json:"ret_msg"`
	ChampionID   intOrString `json:"champion_id"`
	Champion     string      `json:"champion"`
	Wins         int         `json:"Wins"`
	Losses       int         `json:"Losses"`
	Kills        int         `json:"Kills"`
	Deaths       int         `json:"Deaths"`
	Assists      int         `json:"Assists"`
	Gold         intOrString `json:"Gold"`
	Minutes      int         `json:"Minutes"`
	Rank         int         `json:"Rank"`
	LastPlayed   string      `json:"LastPlayed"`
}

type historyMatchResponse struct {
	RetMsg             string `json:"ret_msg"`
	Match              int    `json:"Match"`
	MatchQueueID       int    `json:"Match_Queue_Id"`
	Region             string `json:"Region"`
	MatchTime          string `json:"Match_Time"`
	TimeInMatchSeconds int    `json:"Time_In_Match_Seconds"`
	MapGame            string `json:"Map_Game"`
	WinStatus          string `json:"Win_Status"`
	WinningTaskForce   int    `json:"Winning_TaskForce"`
	TaskForce          int    `json:"TaskForce"`
	Team1Score         int    `json:"Team1Score"`
	Team2Score         int    `json:"Team2Score"`
	PlayerID           intOrString `json:"playerId"`
	PlayerName         string `json:"playerName"`
	ChampionID         int    `json:"ChampionId"`
	Champion           string `json:"Champion"`
	SkinID             int    `json:"SkinId"`
	Skin               string `json:"Skin"`
	Gold               int    `json:"Gold"`
	Kills              int    `json:"Kills"`
	Deaths             int    `json:"Deaths"`
	Assists            int    `json:"Assists"`
	Damage             int    `json:"Damage"`
	DamageBot          int    `json:"Damage_Bot"`
	DamageTaken        int    `json:"Damage_Taken"`
	DamageMitigated    int    `json:"Damage_Mitigated"`
	Healing            int    `json:"Healing"`
	HealingBot         int    `json:"Healing_Bot"`
	HealingPlayerSelf  int    `json:"Healing_Player_Self"`
	ObjectiveAssists   int    `json:"Objective_Assists"`
	MultiKillMax       int    `json:"Multi_kill_Max"`
	ActiveID1          int    `json:"ActiveId1"`
	ActiveID2          int    `json:"ActiveId2"`
	ActiveID3          int    `json:"ActiveId3"`
	ActiveID4          int    `json:"ActiveId4"`
	ActiveLevel1       int    `json:"ActiveLevel1"`
	ActiveLevel2       int    `json:"ActiveLevel2"`
	ActiveLevel3       int    `json:"ActiveLevel3"`
	ActiveLevel4       int    `json:"ActiveLevel4"`
	ItemID1            int    `json:"ItemId1"`
	ItemID2            int    `json:"ItemId2"`
	ItemID3            int    `json:"ItemId3"`
	ItemID4            int    `json:"ItemId4"`
	ItemID5            int    `json:"ItemId5"`
	ItemID6            int    `json:"ItemId6"`
	ItemLevel1         int    `json:"ItemLevel1"`
	ItemLevel2         int    `json:"ItemLevel2"`
	ItemLevel3         int    `json:"ItemLevel3"`
	ItemLevel4         int    `json:"ItemLevel4"`
	ItemLevel5         int    `json:"ItemLevel5"`
	ItemLevel6         int    `json:"ItemLevel6"`
}

func (r *historyMatchResponse) actives() [][2]int {
	return [][2]int{
		{r.ActiveID1, r.ActiveLevel1}, {r.ActiveID2, r.ActiveLevel2},
		{r.ActiveID3, r.ActiveLevel3}, {r.ActiveID4, r.ActiveLevel4},
	}
}

func (r *historyMatchResponse) cards() [][2]int {
	return [][2]int{
		{r.ItemID1, r.ItemLevel1}, {r.ItemID2, r.ItemLevel2},
		{r.ItemID3, r.ItemLevel3}, {r.ItemID4, r.ItemLevel4},
		{r.ItemID5, r.ItemLevel5}, {r.ItemID6, r.ItemLevel6},
	}
}

type matchPlayerResponse struct {
	RetMsg             string      `json:"ret_msg"`
	Match              int         `json:"Match"`
	MatchQueueID       int         `json:"match_queue_id"`
	Region             string      `json:"Region"`
	EntryDatetime      string      `json:"Entry_Datetime"`
	TimeInMatchSeconds int         `json:"Time_In_Match_Seconds"`
	MapGame            string      `json:"Map_Game"`
	WinStatus          string      `json:"Win_Status"`
	WinningTaskForce   int         `json:"Winning_TaskForce"`
	TaskForce          int         `json:"TaskForce"`
	Team1Score         int         `json:"Team1Score"`
	Team2Score         int         `json:"Team2Score"`
	HasReplay          string      `json:"hasReplay"`
	PlayerID           intOrString `json:"playerId"`
	PlayerName         string      `json:"playerName"`
	PlayerPortalID     intOrString `json:"playerPortalId"`
	ReferenceName      string      `json:"Reference_Name"`
	ChampionID         int         `json:"ChampionId"`
	SkinID             int         `json:"SkinId"`
	Skin               string      `json:"Skin"`
	GoldEarned         int         `json:"Gold_Earned"`
	FinalMatchLevel    int         `json:"Final_Match_Level"`
	KillsPlayer        int         `json:"Kills_Player"`
	Deaths             int         `json:"Deaths"`
	Assists            int         `json:"Assists"`
	DamagePlayer       int         `json:"Damage_Player"`
	DamageBot          int         `json:"Damage_Bot"`
	DamageTaken        int         `json:"Damage_Taken"`
	DamageMitigated    int         `json:"Damage_Mitigated"`
	Healing            int         `json:"Healing"`
	HealingBot         int         `json:"Healing_Bot"`
	HealingPlayerSelf  int         `json:"Healing_Player_Self"`
	ObjectiveAssists   int         `json:"Objective_Assists"`
	MultiKillMax       int         `json:"Multi_kill_Max"`
	KillsGoldFury      int         `json:"Kills_Gold_Fury"`
	KillsFireGiant     int         `json:"Kills_Fire_Giant"`
	KillsBot           int         `json:"Kills_Bot"`
	KillingSpree       int         `json:"Killing_Spree"`
	AccountLevel       int         `json:"Account_Level"`
	MasteryLevel       int         `json:"Mastery_Level"`
	PartyID            int         `json:"PartyId"`
	LeagueTier         int         `json:"League_Tier"`
	BanIDs             [6]int      `json:"-"`
	BanNames           [6]string   `json:"-"`
	ActiveID1          int         `json:"ActiveId1"`
	ActiveID2          int         `json:"ActiveId2"`
	ActiveID3          int         `json:"ActiveId3"`
	ActiveID4          int         `json:"ActiveId4"`
	ActiveLevel1       int         `json:"ActiveLevel1"`
	ActiveLevel2       int         `json:"ActiveLevel2"`
	ActiveLevel3       int         `json:"ActiveLevel3"`
	ActiveLevel4       int         `json:"ActiveLevel4"`
	ItemID1            int         `json:"ItemId1"`
	ItemID2            int         `json:"ItemId2"`
	ItemID3            int         `json:"ItemId3"`
	ItemID4            int         `json:"ItemId4"`
	ItemID5            int         `json:"ItemId5"`
	ItemID6            int         `json:"ItemId6"`
	ItemLevel1         int         `json:"ItemLevel1"`
	ItemLevel2         int         `json:"ItemLevel2"`
	ItemLevel3         int         `json:"ItemLevel3"`
	ItemLevel4         int         `json:"ItemLevel4"`
	ItemLevel5         int         `json:"ItemLevel5"`
	ItemLevel6         int         `json:"ItemLevel6"`
}

// UnmarshalJSON decodes the regular fields, then collects the variable
// BanId1../Ban_1.. pairs ranked payloads carry.
func (r *matchPlayerResponse) UnmarshalJSON(data []byte) error {
	type plain matchPlayerResponse
	if err := json.Unmarshal(data, (*plain)(r)); err != nil {
		return err
	}
	var bans map[string]json.RawMessage
	if err := json.Unmarshal(data, &bans); err != nil {
		return err
	}
	for i := 0; i < 6; i++ {
		if raw, ok := bans["BanId"+strconv.Itoa(i+1)]; ok {
			_ = json.Unmarshal(raw, &r.BanIDs[i])
		}
		if raw, ok := bans["Ban_"+strconv.Itoa(i+1)]; ok {
			_ = json.Unmarshal(raw, &r.BanNames[i])
		}
	}
	return nil
}

func (r *matchPlayerResponse) actives() [][2]int {
	return [][2]int{
		{r.ActiveID1, r.ActiveLevel1}, {r.ActiveID2, r.ActiveLevel2},
		{r.ActiveID3, r.ActiveLevel3}, {r.ActiveID4, r.ActiveLevel4},
	}
}

func (r *matchPlayerResponse) cards() [][2]int {
	return [][2]int{
		{r.ItemID1, r.ItemLevel1}, {r.ItemID2, r.ItemLevel2},
		{r.ItemID3, r.ItemLevel3}, {r.ItemID4, r.ItemLevel4},
		{r.ItemID5, r.ItemLevel5}, {r.ItemID6, r.ItemLevel6},
	}
}

type livePlayerResponse struct {
	RetMsg         string      `json:"ret_msg"`
	Match          int         `json:"Match"`
	Queue          intOrString `json:"Queue"`
	MapGame        string      `json:"mapGame"`
	PlayerRegion   string      `json:"playerRegion"`
	TaskForce      int         `json:"taskForce"`
	PlayerID       intOrString `json:"playerId"`
	PlayerName     string      `json:"playerName"`
	PlayerPortalID intOrString `json:"playerPortalId"`
	ChampionID     int         `json:"ChampionId"`
	ChampionName   string      `json:"ChampionName"`
	SkinID         int         `json:"SkinId"`
	Skin           string      `json:"Skin"`
	Tier           int         `json:"Tier"`
	TierWins       int         `json:"tierWins"`
	TierLosses     int         `json:"tierLosses"`
	AccountLevel   int         `json:"Account_Level"`
	MasteryLevel   int         `json:"Mastery_Level"`
}

type matchSearchResponse struct {
	RetMsg        string      `json:"ret_msg"`
	Match         intOrString `json:"Match"`
	EntryDatetime string      `json:"Entry_Datetime"`
	Region        string      `json:"Region"`
	ActiveFlag    string      `json:"Active_Flag"`
}

type bountyItemResponse struct {
	RetMsg          string      `json:"ret_msg"`
	Active          string      `json:"active"`
	BountyItemID    int         `json:"bounty_item_id2"`
	BountyItemName  string      `json:"bounty_item_name"`
	ChampionID      int         `json:"champion_id"`
	ChampionName    string      `json:"champion_name"`
	SaleEndDatetime string      `json:"sale_end_datetime"`
	SaleType        string      `json:"sale_type"`
	InitialPrice    intOrString `json:"initial_price"`
	FinalPrice      intOrString `json:"final_price"`
}
