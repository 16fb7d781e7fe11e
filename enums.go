package paladins

import (
	"strconv"
	"strings"
)

// The enum types below are closed sets of int-backed constants. Each type
// carries a static registry mapping canonical names and lowercase aliases to
// values, built once as constant map literals. Parsing an unknown name or
// value yields the type's zero ("Unknown") member.

// Language represents the response language of reference data.
type Language int

// Supported response languages.
const (
	LanguageEnglish    Language = 1
	LanguageGerman     Language = 2
	LanguageFrench     Language = 3
	LanguageChinese    Language = 5
	LanguageSpanish    Language = 9
	LanguagePortuguese Language = 10
	LanguageRussian    Language = 11
	LanguagePolish     Language = 12
	LanguageTurkish    Language = 13
)

var languageNames = map[Language]string{
	LanguageEnglish:    "English",
	LanguageGerman:     "German",
	LanguageFrench:     "French",
	LanguageChinese:    "Chinese",
	LanguageSpanish:    "Spanish",
	LanguagePortuguese: "Portuguese",
	LanguageRussian:    "Russian",
	LanguagePolish:     "Polish",
	LanguageTurkish:    "Turkish",
}

var languageAliases = map[string]Language{
	"english": LanguageEnglish, "en": LanguageEnglish, "eng": LanguageEnglish,
	"german": LanguageGerman, "de": LanguageGerman, "ger": LanguageGerman,
	"french": LanguageFrench, "fr": LanguageFrench, "fre": LanguageFrench,
	"chinese": LanguageChinese, "zh": LanguageChinese, "chi": LanguageChinese,
	"spanish": LanguageSpanish, "es": LanguageSpanish, "spa": LanguageSpanish,
	"portuguese": LanguagePortuguese, "pt": LanguagePortuguese, "por": LanguagePortuguese,
	"russian": LanguageRussian, "ru": LanguageRussian, "rus": LanguageRussian,
	"polish": LanguagePolish, "pl": LanguagePolish, "pol": LanguagePolish,
	"turkish": LanguageTurkish, "tr": LanguageTurkish, "tur": LanguageTurkish,
}

func (l Language) String() string {
	if name, ok := languageNames[l]; ok {
		return name
	}
	return "Unknown"
}

// Valid reports whether l is a known language.
func (l Language) Valid() bool {
	_, ok := languageNames[l]
	return ok
}

// ParseLanguage resolves a language by its name or one of its aliases,
// case-insensitively. The second return value is false for unknown names.
func ParseLanguage(name string) (Language, bool) {
	l, ok := languageAliases[strings.ToLower(name)]
	return l, ok
}

// Platform represents a player's platform.
type Platform int

// Known platforms. PlatformUnknown is used when the information
// isn't available.
const (
	PlatformUnknown   Platform = 0
	PlatformPC        Platform = 1
	PlatformSteam     Platform = 5
	PlatformPSN       Platform = 9
	PlatformXbox      Platform = 10
	PlatformFacebook  Platform = 12
	PlatformGoogle    Platform = 13
	PlatformMixer     Platform = 14
	PlatformSwitch    Platform = 22
	PlatformDiscord   Platform = 25
	PlatformEpicGames Platform = 28
)

var platformNames = map[Platform]string{
	PlatformUnknown:   "Unknown",
	PlatformPC:        "PC",
	PlatformSteam:     "Steam",
	PlatformPSN:       "PSN",
	PlatformXbox:      "Xbox",
	PlatformFacebook:  "Facebook",
	PlatformGoogle:    "Google",
	PlatformMixer:     "Mixer",
	PlatformSwitch:    "Switch",
	PlatformDiscord:   "Discord",
	PlatformEpicGames: "Epic Games",
}

var platformAliases = map[string]Platform{
	"pc": PlatformPC, "hirez": PlatformPC, "standalone": PlatformPC,
	"steam": PlatformSteam,
	"psn":   PlatformPSN, "ps4": PlatformPSN, "ps5": PlatformPSN, "playstation": PlatformPSN,
	"xbox": PlatformXbox, "xb": PlatformXbox, "xboxlive": PlatformXbox, "xboxone": PlatformXbox,
	"facebook": PlatformFacebook, "fb": PlatformFacebook,
	"google": PlatformGoogle,
	"mixer":  PlatformMixer,
	"switch": PlatformSwitch, "nintendo switch": PlatformSwitch,
	"discord": PlatformDiscord,
	"epic":    PlatformEpicGames, "epic games": PlatformEpicGames,
}

func (p Platform) String() string {
	if name, ok := platformNames[p]; ok {
		return name
	}
	return "Unknown"
}

// Valid reports whether p is a known, concrete platform.
func (p Platform) Valid() bool {
	_, ok := platformNames[p]
	return ok && p != PlatformUnknown
}

// platformByID maps a numeric portal ID to a Platform, or PlatformUnknown.
func platformByID(id int) Platform {
	if _, known := platformNames[Platform(id)]; known {
		return Platform(id)
	}
	return PlatformUnknown
}

// IsPC reports whether the platform uses unique PC-style player names.
func (p Platform) IsPC() bool {
	return p == PlatformPC || p == PlatformSteam || p == PlatformDiscord
}

// ParsePlatform resolves a platform by name or alias, case-insensitively.
func ParsePlatform(name string) (Platform, bool) {
	p, ok := platformAliases[strings.ToLower(name)]
	return p, ok
}

// parsePlatformValue accepts both numeric portal IDs and platform names, the
// two forms the API uses interchangeably.
func parsePlatformValue(value intOrString) Platform {
	if n, ok := value.Int(); ok {
		p := Platform(n)
		if _, known := platformNames[p]; known {
			return p
		}
		return PlatformUnknown
	}
	if p, ok := ParsePlatform(value.String()); ok {
		return p
	}
	return PlatformUnknown
}

// Region represents a player's or match's region.
type Region int

// Known regions.
const (
	RegionUnknown           Region = 0
	RegionNorthAmerica      Region = 1
	RegionEurope            Region = 2
	RegionAustralia         Region = 3
	RegionBrazil            Region = 4
	RegionLatinAmericaNorth Region = 5
	RegionSoutheastAsia     Region = 6
	RegionJapan             Region = 7
)

var regionNames = map[Region]string{
	RegionUnknown:           "Unknown",
	RegionNorthAmerica:      "North America",
	RegionEurope:            "Europe",
	RegionAustralia:         "Australia",
	RegionBrazil:            "Brazil",
	RegionLatinAmericaNorth: "Latin America North",
	RegionSoutheastAsia:     "Southeast Asia",
	RegionJapan:             "Japan",
}

var regionAliases = map[string]Region{
	"north america": RegionNorthAmerica, "na": RegionNorthAmerica, "nam": RegionNorthAmerica,
	"europe": RegionEurope, "eu": RegionEurope, "eur": RegionEurope,
	"australia": RegionAustralia, "au": RegionAustralia, "oce": RegionAustralia, "oceania": RegionAustralia,
	"brazil": RegionBrazil, "br": RegionBrazil, "bra": RegionBrazil,
	"latin america north": RegionLatinAmericaNorth, "latam": RegionLatinAmericaNorth, "lan": RegionLatinAmericaNorth,
	"southeast asia": RegionSoutheastAsia, "sea": RegionSoutheastAsia,
	"japan": RegionJapan, "jp": RegionJapan, "jpn": RegionJapan,
}

func (r Region) String() string {
	if name, ok := regionNames[r]; ok {
		return name
	}
	return "Unknown"
}

// ParseRegion resolves a region by name or alias, case-insensitively.
func ParseRegion(name string) (Region, bool) {
	r, ok := regionAliases[strings.ToLower(name)]
	return r, ok
}

// parseRegionValue accepts both region names and numeric values, the two
// forms the API uses interchangeably.
func parseRegionValue(value string) Region {
	if r, ok := ParseRegion(value); ok {
		return r
	}
	if n, err := strconv.Atoi(value); err == nil {
		if _, known := regionNames[Region(n)]; known {
			return Region(n)
		}
	}
	return RegionUnknown
}

// Queue represents a match queue.
type Queue int

// Known queues, excluding customs.
const (
	QueueUnknown                Queue = 0
	QueueCasualSiege            Queue = 424
	QueueTrainingSiege          Queue = 425
	QueueShootingRange          Queue = 434
	QueueTestMaps               Queue = 445
	QueueOnslaught              Queue = 452
	QueueTrainingOnslaught      Queue = 453
	QueueRanked                 Queue = 486
	QueueTeamDeathmatch         Queue = 10296
	QueueTrainingTeamDeathmatch Queue = 10297
)

var queueNames = map[Queue]string{
	QueueUnknown:                "Unknown",
	QueueCasualSiege:            "Casual Siege",
	QueueTrainingSiege:          "Training Siege",
	QueueShootingRange:          "Shooting Range",
	QueueTestMaps:               "Test Maps",
	QueueOnslaught:              "Onslaught",
	QueueTrainingOnslaught:      "Training Onslaught",
	QueueRanked:                 "Ranked",
	QueueTeamDeathmatch:         "Team Deathmatch",
	QueueTrainingTeamDeathmatch: "Training Team Deathmatch",
}

var queueAliases = map[string]Queue{
	"casual": QueueCasualSiege, "siege": QueueCasualSiege, "casual siege": QueueCasualSiege,
	"ranked": QueueRanked, "competitive": QueueRanked, "comp": QueueRanked,
	"tdm": QueueTeamDeathmatch, "deathmatch": QueueTeamDeathmatch, "team deathmatch": QueueTeamDeathmatch,
	"onslaught": QueueOnslaught,
	"range":     QueueShootingRange, "shooting range": QueueShootingRange,
	"test": QueueTestMaps, "test maps": QueueTestMaps,
	"bot siege": QueueTrainingSiege, "training siege": QueueTrainingSiege,
	"bot onslaught": QueueTrainingOnslaught, "training onslaught": QueueTrainingOnslaught,
	"bot tdm": QueueTrainingTeamDeathmatch, "training team deathmatch": QueueTrainingTeamDeathmatch,
}

func (q Queue) String() string {
	if name, ok := queueNames[q]; ok {
		return name
	}
	return "Unknown"
}

// IsRanked reports whether the queue is a competitive one. Ranked matches
// carry ban and rank information that other queues lack.
func (q Queue) IsRanked() bool {
	return q == QueueRanked
}

// IsCasual reports whether the queue is a casual (non-ranked,
// non-training) one.
func (q Queue) IsCasual() bool {
	switch q {
	case QueueCasualSiege, QueueOnslaught, QueueTeamDeathmatch, QueueTestMaps:
		return true
	}
	return false
}

// IsTraining reports whether the queue is a bot-training one.
func (q Queue) IsTraining() bool {
	switch q {
	case QueueTrainingSiege, QueueTrainingOnslaught, QueueTrainingTeamDeathmatch, QueueShootingRange:
		return true
	}
	return false
}

// ParseQueue resolves a queue by name or alias, case-insensitively.
func ParseQueue(name string) (Queue, bool) {
	q, ok := queueAliases[strings.ToLower(name)]
	return q, ok
}

// queueByID maps a numeric queue value to a known Queue, or QueueUnknown.
func queueByID(id int) Queue {
	if _, known := queueNames[Queue(id)]; known {
		return Queue(id)
	}
	return QueueUnknown
}

// Rank represents a player's competitive rank.
type Rank int

// Competitive ranks, ordered lowest to highest.
const (
	RankQualifying Rank = iota
	RankBronzeV
	RankBronzeIV
	RankBronzeIII
	RankBronzeII
	RankBronzeI
	RankSilverV
	RankSilverIV
	RankSilverIII
	RankSilverII
	RankSilverI
	RankGoldV
	RankGoldIV
	RankGoldIII
	RankGoldII
	RankGoldI
	RankPlatinumV
	RankPlatinumIV
	RankPlatinumIII
	RankPlatinumII
	RankPlatinumI
	RankDiamondV
	RankDiamondIV
	RankDiamondIII
	RankDiamondII
	RankDiamondI
	RankMaster
	RankGrandmaster
)

var rankTiers = [...]string{"Bronze", "Silver", "Gold", "Platinum", "Diamond"}

var rankDivisions = [...]string{"V", "IV", "III", "II", "I"}

func (r Rank) String() string {
	switch {
	case r == RankQualifying:
		return "Qualifying"
	case r == RankMaster:
		return "Master"
	case r == RankGrandmaster:
		return "Grandmaster"
	case r >= RankBronzeV && r <= RankDiamondI:
		tier := rankTiers[(int(r)-1)/5]
		division := rankDivisions[(int(r)-1)%5]
		return tier + " " + division
	}
	return "Unknown"
}

// Tier returns the rank's tier name, without the division.
func (r Rank) Tier() string {
	name, _, _ := strings.Cut(r.String(), " ")
	return name
}

// rankByID maps a numeric league tier to a Rank, defaulting to Qualifying
// for out-of-range values.
func rankByID(id int) Rank {
	if id >= int(RankQualifying) && id <= int(RankGrandmaster) {
		return Rank(id)
	}
	return RankQualifying
}

// DeviceType classifies a device as a shop item, a loadout card or a talent.
type DeviceType int

// Device types.
const (
	DeviceUndefined DeviceType = 0
	DeviceItem      DeviceType = 1
	DeviceCard      DeviceType = 2
	DeviceTalent    DeviceType = 3
)

func (d DeviceType) String() string {
	switch d {
	case DeviceItem:
		return "Item"
	case DeviceCard:
		return "Card"
	case DeviceTalent:
		return "Talent"
	}
	return "Undefined"
}

// Rarity represents a skin or card rarity.
type Rarity int

// Rarities, ordered by prestige.
const (
	RarityDefault Rarity = iota
	RarityCommon
	RarityUncommon
	RarityRare
	RarityEpic
	RarityLegendary
	RarityUnlimited
	RarityLimited
)

var rarityNames = map[string]Rarity{
	"common":    RarityCommon,
	"uncommon":  RarityUncommon,
	"rare":      RarityRare,
	"epic":      RarityEpic,
	"legendary": RarityLegendary,
	"unlimited": RarityUnlimited,
	"limited":   RarityLimited,
}

func (r Rarity) String() string {
	for name, v := range rarityNames {
		if v == r {
			return strings.ToUpper(name[:1]) + name[1:]
		}
	}
	return "Default"
}

// ParseRarity resolves a rarity by name, case-insensitively. Unknown or
// empty names yield RarityDefault.
func ParseRarity(name string) Rarity {
	if r, ok := rarityNames[strings.ToLower(name)]; ok {
		return r
	}
	return RarityDefault
}

// AbilityType represents an ability's damage type.
type AbilityType int

// Ability damage types.
const (
	AbilityUndefined    AbilityType = 0
	AbilityDirectDamage AbilityType = 1
	AbilityAreaDamage   AbilityType = 2
)

func (a AbilityType) String() string {
	switch a {
	case AbilityDirectDamage:
		return "Direct Damage"
	case AbilityAreaDamage:
		return "Area Damage"
	}
	return "Undefined"
}

func parseAbilityType(value string) AbilityType {
	switch strings.ToLower(value) {
	case "direct damage", "direct":
		return AbilityDirectDamage
	case "area damage", "aoe":
		return AbilityAreaDamage
	}
	return AbilityUndefined
}

// Activity represents a player's in-game status.
type Activity int

// Player activities. ActivityUnknown doubles as the fallback for values the
// API may add in the future.
const (
	ActivityOffline            Activity = 0
	ActivityInLobby            Activity = 1
	ActivityCharacterSelection Activity = 2
	ActivityInMatch            Activity = 3
	ActivityOnline             Activity = 4
	ActivityUnknown            Activity = 5
)

// activityByID maps a numeric status value to an Activity, defaulting to
// ActivityUnknown for values the API may add in the future.
func activityByID(id int) Activity {
	if id >= int(ActivityOffline) && id < int(ActivityUnknown) {
		return Activity(id)
	}
	return ActivityUnknown
}

func (a Activity) String() string {
	switch a {
	case ActivityOffline:
		return "Offline"
	case ActivityInLobby:
		return "In Lobby"
	case ActivityCharacterSelection:
		return "Character Selection"
	case ActivityInMatch:
		return "In Match"
	case ActivityOnline:
		return "Online"
	}
	return "Unknown"
}
