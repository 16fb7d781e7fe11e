package paladins

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/require"

	"github.com/smoketree/paladins-go/internal/testutil"
)

// testTime is the frozen clock most tests run under.
var testTime = time.Date(2023, 10, 11, 12, 0, 0, 0, time.UTC)

// newTestClient builds a client against the fake API, with a frozen clock
// and no delay between retries.
func newTestClient(t *testing.T, api *testutil.FakeAPI, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{WithBaseURL(api.URL())}, opts...)
	client, err := New("1234", "A1B2C3D4E5F6", opts...)
	require.NoError(t, err)
	client.now = func() time.Time { return testTime }
	client.newBackoff = func() backoff.BackOff { return &backoff.ZeroBackOff{} }
	t.Cleanup(client.Close)
	return client
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

const testChampionID = 2205

// fixtureChampions is a single-champion getchampions payload, with one
// regular and one composite ability slot filled.
func fixtureChampions(t *testing.T) string {
	return mustJSON(t, []map[string]any{{
		"id":               testChampionID,
		"Name":             "Androxus",
		"Title":            "The Godslayer",
		"Roles":            "Paladins Flanker",
		"Lore":             "A gunslinger.",
		"Health":           2100,
		"Speed":            365,
		"ChampionIcon_URL": "https://web2.hirez.com/paladins/champion-icons/androxus.jpg",
		"Ability_1": map[string]any{
			"Id":              101,
			"Summary":         "Revolver",
			"Description":     "Fire your revolver. <br><br> It hurts.",
			"damageType":      "Direct Damage",
			"rechargeSeconds": 0,
			"URL":             "https://web2.hirez.com/paladins/champion-abilities/revolver.jpg",
		},
		"Ability_2": map[string]any{
			"Id":              102,
			"Summary":         "Nether Step (Dash)",
			"Description":     "Nether Step: Dash three times.<br><br>Dash: Reset your momentum.",
			"damageType":      "Direct Damage",
			"rechargeSeconds": 10,
			"URL":             "https://web2.hirez.com/paladins/champion-abilities/nether-step.jpg",
		},
	}})
}

// fixtureDevices is a getitems payload with a full card and talent set for
// the fixture champion, plus two champion-agnostic shop items.
func fixtureDevices(t *testing.T) string {
	var devices []map[string]any
	for i := 1; i <= 16; i++ {
		devices = append(devices, map[string]any{
			"ItemId":      9000 + i,
			"DeviceName":  fmt.Sprintf("Card %02d", i),
			"Description": "[Revolver] Gain {scale=5|5}% reload speed.",
			"item_type":   "Card Vendor Rank 1 Epic",
			"champion_id": testChampionID,
		})
	}
	for i, name := range []string{"Cursed Revolver", "Dark Nebula", "Defiant Fist"} {
		devices = append(devices, map[string]any{
			"ItemId":              9100 + i,
			"DeviceName":          name,
			"Description":         "[Revolver] Changes everything.",
			"item_type":           "Inventory Vendor - Talents",
			"champion_id":         testChampionID,
			"talent_reward_level": 8 - 4*i,
		})
	}
	devices = append(devices,
		map[string]any{
			"ItemId":      13001,
			"DeviceName":  "Cauterize",
			"Description": "Your weapon shots reduce healing by {3}% for 1.5s.",
			"item_type":   "Inventory Vendor - Utility",
			"Price":       300,
		},
		map[string]any{
			"ItemId":      13002,
			"DeviceName":  "Nimble",
			"Description": "Increase your Movement Speed by {scale=4|4}%.",
			"item_type":   "Inventory Vendor - Defense",
			"Price":       250,
		},
	)
	return mustJSON(t, devices)
}

// fixtureSkins is a getchampionskins payload for the fixture champion, out
// of rarity order on purpose.
func fixtureSkins(t *testing.T) string {
	return mustJSON(t, []map[string]any{
		{
			"champion_id": testChampionID,
			"skin_id2":    501,
			"skin_name":   "Battlesuit Godslayer Androxus",
			"rarity":      "Epic",
		},
		{
			"champion_id": testChampionID,
			"skin_id2":    502,
			"skin_name":   "Dreadhunter Androxus",
			"rarity":      "Rare",
		},
	})
}

// installChampionInfo wires the three reference data endpoints with the
// fixture payloads.
func installChampionInfo(t *testing.T, api *testutil.FakeAPI) {
	api.Handle("getchampions", testutil.Respond(fixtureChampions(t)))
	api.Handle("getitems", testutil.Respond(fixtureDevices(t)))
	api.Handle("getchampionskins", testutil.Respond(fixtureSkins(t)))
}
