package paladins

import (
	"context"
	"fmt"
	"time"
)

// BountyItem is a single bounty store offer.
type BountyItem struct {
	id   int
	name string

	Active bool

	// Champion the offered skin belongs to, or a placeholder with
	// incomplete cache.
	Champion Entity

	ExpiresAt time.Time

	// SaleType is "Increasing" or "Decreasing".
	SaleType     string
	InitialPrice int

	// FinalPrice is the closing price of an expired offer. Zero while the
	// offer is still running, since the API reports a placeholder then.
	FinalPrice int
}

func (b *BountyItem) ID() int { return b.id }

func (b *BountyItem) Name() string { return b.name }

func (b *BountyItem) String() string {
	return fmt.Sprintf("%s(%d): %s", b.name, b.id, b.Champion.Name())
}

func newBountyItem(entry *CacheEntry, resp bountyItemResponse) *BountyItem {
	item := &BountyItem{
		id:           resp.BountyItemID,
		name:         resp.BountyItemName,
		Active:       resp.Active == "y",
		Champion:     entry.Champions.Resolve(resp.ChampionID, resp.ChampionName),
		ExpiresAt:    parseTimestamp(resp.SaleEndDatetime),
		SaleType:     resp.SaleType,
		InitialPrice: resp.InitialPrice.IntOr(0),
	}
	// expired offers carry a numeric final price, running ones a dash
	item.FinalPrice = resp.FinalPrice.IntOr(0)
	return item
}

// GetBounty fetches the bounty store offers: the currently running ones,
// newest first, followed by the expired history. Uses up a single request.
//
// The API returns the offers in a single chronological list; the split
// happens at the first expired offer.
func (c *Client) GetBounty(
	ctx context.Context, language Language,
) (active, past []*BountyItem, err error) {
	language = c.resolveLanguage(language)
	entry, err := c.ensureEntry(ctx, language)
	if err != nil {
		return nil, nil, err
	}
	c.logger.Info("fetching bounty store", "language", language.String())
	raw, err := c.Request(ctx, "getbountyitems")
	if err != nil {
		return nil, nil, err
	}
	var resps []bountyItemResponse
	if err := unmarshalResponse(raw, &resps); err != nil {
		return nil, nil, err
	}
	items := make([]*BountyItem, 0, len(resps))
	for _, resp := range resps {
		items = append(items, newBountyItem(entry, resp))
	}
	split := len(items)
	for i, item := range items {
		if !item.Active {
			split = i
			break
		}
	}
	active = make([]*BountyItem, 0, split)
	for i := split - 1; i >= 0; i-- {
		active = append(active, items[i])
	}
	return active, items[split:], nil
}
