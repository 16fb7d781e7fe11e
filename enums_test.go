package paladins

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLanguage(t *testing.T) {
	for _, alias := range []string{"english", "EN", "Eng"} {
		language, ok := ParseLanguage(alias)
		require.True(t, ok, alias)
		assert.Equal(t, LanguageEnglish, language)
	}
	_, ok := ParseLanguage("klingon")
	assert.False(t, ok)
	assert.False(t, Language(99).Valid())
}

func TestParsePlatformValue(t *testing.T) {
	cases := []struct {
		raw      string
		expected Platform
	}{
		{`5`, PlatformSteam},
		{`"5"`, PlatformSteam},
		{`"steam"`, PlatformSteam},
		{`"Nintendo Switch"`, PlatformSwitch},
		{`99`, PlatformUnknown},
		{`"unknowable"`, PlatformUnknown},
	}
	for _, tc := range cases {
		var value intOrString
		require.NoError(t, value.UnmarshalJSON([]byte(tc.raw)), tc.raw)
		assert.Equal(t, tc.expected, parsePlatformValue(value), tc.raw)
	}
}

func TestPlatformIsPC(t *testing.T) {
	assert.True(t, PlatformPC.IsPC())
	assert.True(t, PlatformSteam.IsPC())
	assert.True(t, PlatformDiscord.IsPC())
	assert.False(t, PlatformXbox.IsPC())
	assert.False(t, PlatformUnknown.IsPC())
}

func TestParseRegionValue(t *testing.T) {
	assert.Equal(t, RegionNorthAmerica, parseRegionValue("North America"))
	assert.Equal(t, RegionEurope, parseRegionValue("eu"))
	assert.Equal(t, RegionBrazil, parseRegionValue("4"))
	assert.Equal(t, RegionUnknown, parseRegionValue("atlantis"))
	assert.Equal(t, RegionUnknown, parseRegionValue("42"))
}

func TestQueueClassification(t *testing.T) {
	assert.True(t, QueueRanked.IsRanked())
	assert.True(t, QueueCasualSiege.IsCasual())
	assert.True(t, QueueTrainingSiege.IsTraining())
	assert.False(t, QueueRanked.IsCasual())
	assert.Equal(t, QueueRanked, queueByID(486))
	assert.Equal(t, QueueUnknown, queueByID(123456))
}

func TestRankStrings(t *testing.T) {
	assert.Equal(t, "Qualifying", RankQualifying.String())
	assert.Equal(t, "Bronze V", RankBronzeV.String())
	assert.Equal(t, "Gold III", RankGoldIII.String())
	assert.Equal(t, "Diamond I", RankDiamondI.String())
	assert.Equal(t, "Master", RankMaster.String())
	assert.Equal(t, "Grandmaster", RankGrandmaster.String())

	assert.Equal(t, "Gold", RankGoldIII.Tier())
	assert.Equal(t, RankQualifying, rankByID(99))
}

func TestActivityByID(t *testing.T) {
	assert.Equal(t, ActivityOffline, activityByID(0))
	assert.Equal(t, ActivityInMatch, activityByID(3))
	assert.Equal(t, ActivityUnknown, activityByID(5))
	assert.Equal(t, ActivityUnknown, activityByID(42))
}
