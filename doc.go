// Package paladins wraps the official Paladins API: players, matches, the
// bounty store, server status monitoring and champion reference data, with
// built-in session management, retries and a 12-hour reference data cache.
//
// Construct a Client with your developer credentials and use its methods;
// everything else hangs off the returned objects:
//
//	client, err := paladins.New(devID, authKey)
//	if err != nil {
//		// bad credentials format
//	}
//	defer client.Close()
//
//	player, err := client.GetPlayer(ctx, "SomePlayer")
//	if err != nil {
//		// paladins.IsNotFound(err), errors.Is(err, paladins.ErrPrivate), ...
//	}
//	history, err := player.GetMatchHistory(ctx, 0)
//
// Champion, card, talent, item and skin data is fetched per language and
// cached; IDs appearing in responses resolve against it. When the cache
// misses (or is disabled), those fields hold minimal CacheObject
// placeholders instead of rich objects, and the Entity interface covers
// both cases.
package paladins
