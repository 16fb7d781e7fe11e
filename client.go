package paladins

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"net/http"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	playerBatchSize = 20
	matchBatchSize  = 10
)

// Private profile soft errors leak the looked-up ID inside ret_msg.
var privatePlayerPattern = regexp.MustCompile(`playerIdType=([0-9]{1,2}); playerId=([0-9]+)`)

// Client is the main entry point of the library. It layers player, match and
// bounty store operations over the signed transport, with champion and item
// reference data resolved through the built-in cache.
//
// A Client is safe for concurrent use. Close releases its resources.
type Client struct {
	*DataCache

	statusPage *statusPage

	statusMu     sync.Mutex
	serverStatus *ServerStatus

	monitorMu sync.Mutex
	monitor   *statusMonitor
}

// Option customizes a Client during construction.
type Option func(*Client)

// WithBaseURL points the client at a different API base URL.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.url = strings.TrimRight(url, "/")
	}
}

// WithStatusPageURL points the client at a different status page.
func WithStatusPageURL(url string) Option {
	return func(c *Client) {
		c.statusPage = newStatusPage(url)
	}
}

// WithHTTPClient swaps the HTTP client used for API calls.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.http = client
	}
}

// WithLogger swaps the default logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithCacheDisabled starts the client with the reference data cache
// disabled; all champion and item information resolves to placeholders.
func WithCacheDisabled() Option {
	return func(c *Client) {
		c.SetCacheEnabled(false)
	}
}

// WithDefaultLanguage changes the language used when a call doesn't specify
// one. Defaults to English.
func WithDefaultLanguage(language Language) Option {
	return func(c *Client) {
		c.SetDefaultLanguage(language)
	}
}

// New builds a Client around the given developer credentials, obtainable at
// https://fs12.formsite.com/HiRez/form48/index.html.
func New(devID, authKey string, opts ...Option) (*Client, error) {
	devID = strings.TrimSpace(devID)
	authKey = strings.TrimSpace(authKey)
	if devID == "" || authKey == "" {
		return nil, fmt.Errorf("developer ID and authorization key are required")
	}
	if _, err := strconv.Atoi(devID); err != nil {
		return nil, fmt.Errorf("developer ID has to be numeric, got %q", devID)
	}
	for _, r := range authKey {
		alnum := r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
		if !alnum {
			return nil, fmt.Errorf("authorization key has to be alphanumeric")
		}
	}
	client := &Client{
		DataCache:  newDataCache(NewEndpoint(defaultBaseURL, devID, authKey)),
		statusPage: newStatusPage(defaultStatusPageURL),
	}
	client.DataCache.client = client
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Close stops the status monitor and tears down both connection pools.
func (c *Client) Close() {
	c.monitorMu.Lock()
	c.stopMonitorLocked()
	c.monitorMu.Unlock()
	c.statusPage.Close()
	c.Endpoint.Close()
}

// Ping checks the API connectivity without spending a request or needing
// valid credentials.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Request(ctx, "ping")
	return err
}

// GetDataUsed fetches the developer account's API usage statistics. Uses up
// a single request.
func (c *Client) GetDataUsed(ctx context.Context) (*DataUsed, error) {
	raw, err := c.Request(ctx, "getdataused")
	if err != nil {
		return nil, err
	}
	var resps []dataUsedResponse
	if err := unmarshalResponse(raw, &resps); err != nil {
		return nil, err
	}
	if len(resps) == 0 {
		return nil, notFound("Data usage")
	}
	return newDataUsed(c.now().UTC(), resps[0]), nil
}

// WrapPlayer wraps a known player ID into a PartialPlayer without spending
// any requests. Name and platform are optional extras; nothing verifies the
// ID actually exists until the wrapper is used.
func (c *Client) WrapPlayer(id int, name string, platform Platform) *PartialPlayer {
	return newPartialPlayer(c, id, name, platform, false)
}

// GetPlayer fetches a player by their ID (int) or name (string). Names only
// work for PC players; console players have to be looked up by ID or via
// SearchPlayers.
//
// A private profile errors with a *PrivateError carrying what little the
// API leaked about the player. Uses up a single request.
func (c *Client) GetPlayer(ctx context.Context, player any) (*Player, error) {
	var arg any
	switch v := player.(type) {
	case int:
		if v == 0 {
			return nil, notFound("Player")
		}
		arg = v
	case string:
		v = strings.TrimSpace(v)
		if v == "" || v == "0" {
			return nil, notFound("Player")
		}
		arg = v
	default:
		return nil, fmt.Errorf("player has to be an int ID or a string name, got %T", player)
	}
	c.logger.Info("fetching player", "player", arg)
	raw, err := c.Request(ctx, "getplayer", arg)
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
	if msg := resps[0].RetMsg; msg != "" {
		if match := privatePlayerPattern.FindStringSubmatch(msg); match != nil {
			portal, _ := strconv.Atoi(match[1])
			id, _ := strconv.Atoi(match[2])
			return nil, &PrivateError{
				Player: newPartialPlayer(c, id, "", platformByID(portal), true),
			}
		}
		return nil, notFound("Player")
	}
	return newPlayer(c, resps[0]), nil
}

// getPlayersMap batch-fetches full profiles by ID, 20 players per request.
// Private and missing profiles are simply absent from the result.
func (c *Client) getPlayersMap(ctx context.Context, ids []int) (map[int]*Player, error) {
	ids = deduplicated(ids, 0)
	players := make(map[int]*Player, len(ids))
	for chunk := range chunked(ids, playerBatchSize) {
		joined := make([]string, len(chunk))
		for i, id := range chunk {
			joined[i] = strconv.Itoa(id)
		}
		raw, err := c.Request(ctx, "getplayerbatch", strings.Join(joined, ","))
		if err != nil {
			return nil, err
		}
		var resps []playerResponse
		if err := unmarshalResponse(raw, &resps); err != nil {
			return nil, err
		}
		for _, resp := range resps {
			if resp.RetMsg != "" {
				continue
			}
			players[resp.ID] = newPlayer(c, resp)
		}
	}
	return players, nil
}

// GetPlayers batch-fetches multiple players by their IDs, 20 players per
// request. Duplicates and zeros are dropped; the rest come back in the
// requested order, with private and missing profiles skipped.
func (c *Client) GetPlayers(ctx context.Context, ids []int) ([]*Player, error) {
	ids = deduplicated(ids, 0)
	if len(ids) == 0 {
		return nil, nil
	}
	c.logger.Info("fetching player batch", "count", len(ids))
	players, err := c.getPlayersMap(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]*Player, 0, len(players))
	for _, id := range ids {
		if player, ok := players[id]; ok {
			out = append(out, player)
		}
	}
	return out, nil
}

func newSearchedPlayer(c *Client, resp partialPlayerResponse, platform Platform) *PartialPlayer {
	name := resp.Name
	if resp.HzName != "" {
		name = resp.HzName
	}
	if platform == PlatformUnknown {
		platform = parsePlatformValue(resp.PortalID)
	}
	return newPartialPlayer(c, resp.PlayerID.IntOr(0), name, platform, resp.PrivacyFlag == "y")
}

// SearchPlayers looks players up by their name. With a concrete platform
// given, the search is constrained to that platform; with PlatformUnknown
// it spans all of them. An exact search keeps only full name matches, while
// a non-exact one returns everything the prefix search found.
//
// Private profiles come back as private PartialPlayers with a zero ID.
// No matches at all error with a NotFoundError. Uses up a single request.
func (c *Client) SearchPlayers(
	ctx context.Context, name string, platform Platform, exact bool,
) ([]*PartialPlayer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, notFound("Player")
	}
	c.logger.Info("searching players",
		"name", name, "platform", platform.String(), "exact", exact)

	var raw []byte
	var err error
	switch {
	case platform == PlatformUnknown || !exact:
		// the only endpoint spanning platforms; also the only non-exact one
		raw, err = c.Request(ctx, "searchplayers", name)
	case platform.IsPC():
		raw, err = c.Request(ctx, "getplayeridbyname", name)
	default:
		raw, err = c.Request(ctx, "getplayeridsbygamertag", int(platform), name)
	}
	if err != nil {
		return nil, err
	}
	var resps []partialPlayerResponse
	if err := unmarshalResponse(raw, &resps); err != nil {
		return nil, err
	}

	var players []*PartialPlayer
	for _, resp := range resps {
		if resp.RetMsg != "" {
			continue
		}
		if !exact && platform != PlatformUnknown &&
			parsePlatformValue(resp.PortalID) != platform {
			continue
		}
		if exact && platform == PlatformUnknown {
			// the global search is a prefix match; keep exact hits only
			matched := resp.Name
			if resp.HzName != "" {
				matched = resp.HzName
			}
			if !strings.EqualFold(matched, name) {
				continue
			}
		}
		players = append(players, newSearchedPlayer(c, resp, platform))
	}
	if len(players) == 0 {
		return nil, notFound("Player")
	}
	return players, nil
}

// GetFromPlatform fetches the player linked to a platform-specific account
// ID, like a Steam ID64 or a Discord ID. Uses up a single request.
func (c *Client) GetFromPlatform(
	ctx context.Context, platformID int, platform Platform,
) (*PartialPlayer, error) {
	if platformID == 0 || !platform.Valid() {
		return nil, notFound("Linked profile")
	}
	c.logger.Info("fetching linked profile",
		"platform_id", platformID, "platform", platform.String())
	raw, err := c.Request(ctx, "getplayeridbyportaluserid", int(platform), platformID)
	if err != nil {
		return nil, err
	}
	var resps []partialPlayerResponse
	if err := unmarshalResponse(raw, &resps); err != nil {
		return nil, err
	}
	if len(resps) == 0 || resps[0].RetMsg != "" {
		return nil, notFound("Linked profile")
	}
	return newSearchedPlayer(c, resps[0], platform), nil
}

// GetMatch fetches a match by its ID. With expandPlayers set, all match
// participants get their full profiles fetched too, at one extra request
// per 20 unique players. Uses up a single request otherwise.
func (c *Client) GetMatch(
	ctx context.Context, matchID int, language Language, expandPlayers bool,
) (*Match, error) {
	language = c.resolveLanguage(language)
	entry, err := c.ensureEntry(ctx, language)
	if err != nil {
		return nil, err
	}
	c.logger.Info("fetching match", "id", matchID)
	raw, err := c.Request(ctx, "getmatchdetails", matchID)
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
	var players map[int]*Player
	if expandPlayers {
		var ids []int
		for _, resp := range resps {
			ids = append(ids, resp.PlayerID.IntOr(0))
		}
		if players, err = c.getPlayersMap(ctx, ids); err != nil {
			return nil, err
		}
	}
	return newMatch(c, language, entry, resps, players), nil
}

// fetchMatchChunk pulls the details for up to 10 match IDs in one request
// and returns the matches in the requested ID order.
func (c *Client) fetchMatchChunk(
	ctx context.Context, chunk []int, language Language, entry *CacheEntry,
	players map[int]*Player,
) ([]*Match, error) {
	joined := make([]string, len(chunk))
	for i, id := range chunk {
		joined[i] = strconv.Itoa(id)
	}
	raw, err := c.Request(ctx, "getmatchdetailsbatch", strings.Join(joined, ","))
	if err != nil {
		return nil, err
	}
	var resps []matchPlayerResponse
	if err := unmarshalResponse(raw, &resps); err != nil {
		return nil, err
	}
	bucketed := groupBy(resps, func(r matchPlayerResponse) int { return r.Match })
	matches := make([]*Match, 0, len(chunk))
	for _, id := range chunk {
		records, ok := bucketed[id]
		if !ok {
			continue
		}
		if records[0].RetMsg != "" {
			// a single bad ID poisons the whole batch response
			return nil, newHTTPError(0, fmt.Errorf("match %d: %s", id, records[0].RetMsg))
		}
		matches = append(matches, newMatch(c, language, entry, records, players))
	}
	return matches, nil
}

// GetMatches batch-fetches multiple matches by their IDs, 10 matches per
// request. Duplicates and zeros are dropped; the rest come back in the
// requested order, with missing matches skipped.
func (c *Client) GetMatches(
	ctx context.Context, ids []int, language Language, expandPlayers bool,
) ([]*Match, error) {
	ids = deduplicated(ids, 0)
	if len(ids) == 0 {
		return nil, nil
	}
	language = c.resolveLanguage(language)
	entry, err := c.ensureEntry(ctx, language)
	if err != nil {
		return nil, err
	}
	c.logger.Info("fetching match batch", "count", len(ids))
	var matches []*Match
	for chunk := range chunked(ids, matchBatchSize) {
		fetched, err := c.fetchMatchChunk(ctx, chunk, language, entry, nil)
		if err != nil {
			return nil, err
		}
		matches = append(matches, fetched...)
	}
	if expandPlayers {
		for _, match := range matches {
			if err := match.ExpandPlayers(ctx); err != nil {
				return nil, err
			}
		}
	}
	return matches, nil
}

// GetMatchesForQueue iterates over all matches played in a queue within the
// [start, end) time range, oldest first, or newest first with reverse set.
//
// Matches are fetched lazily as the loop advances: one listing request per
// time window, then one detail request per 10 matches. Breaking out of the
// loop early stops any further requests.
func (c *Client) GetMatchesForQueue(
	ctx context.Context, queue Queue, language Language, start, end time.Time, reverse bool,
) iter.Seq2[*Match, error] {
	return func(yield func(*Match, error) bool) {
		language = c.resolveLanguage(language)
		entry, err := c.ensureEntry(ctx, language)
		if err != nil {
			yield(nil, err)
			return
		}
		start, end = start.UTC(), end.UTC()
		c.logger.Info("listing queue matches",
			"queue", queue.String(), "start", start, "end", end, "reverse", reverse)

		for window := range queueWindows(start, end, reverse) {
			raw, err := c.Request(
				ctx, "getmatchidsbyqueue", int(queue), window.date, window.hour)
			if err != nil {
				yield(nil, err)
				return
			}
			var resps []matchSearchResponse
			if err := unmarshalResponse(raw, &resps); err != nil {
				yield(nil, err)
				return
			}

			type listed struct {
				id    int
				stamp time.Time
			}
			var ids []listed
			for _, resp := range resps {
				// matches still running have no details yet
				if resp.ActiveFlag != "n" {
					continue
				}
				stamp := parseTimestamp(resp.EntryDatetime)
				if stamp.Before(start) || !stamp.Before(end) {
					continue
				}
				ids = append(ids, listed{id: resp.Match.IntOr(0), stamp: stamp})
			}
			sort.SliceStable(ids, func(i, j int) bool {
				if reverse {
					return ids[i].stamp.After(ids[j].stamp)
				}
				return ids[i].stamp.Before(ids[j].stamp)
			})

			flat := make([]int, len(ids))
			for i, m := range ids {
				flat[i] = m.id
			}
			for chunk := range chunked(deduplicated(flat, 0), matchBatchSize) {
				matches, err := c.fetchMatchChunk(ctx, chunk, language, entry, nil)
				if err != nil {
					yield(nil, err)
					return
				}
				for _, match := range matches {
					if !yield(match, nil) {
						return
					}
				}
			}
		}
	}
}
