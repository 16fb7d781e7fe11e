package paladins

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// serverStatusFreshness is how long a fetched ServerStatus is served from
// memory before a new upstream check.
const serverStatusFreshness = time.Minute

// PlatformStatus is the status of a single game platform.
type PlatformStatus struct {
	// Platform is the lowercase platform name: "pc", "ps4", "xbox",
	// "switch", "epic" or "pts".
	Platform string

	Up            bool
	LimitedAccess bool
	Version       string

	// Component is the matching status page component, when one was found.
	Component ComponentStatus
}

func (s PlatformStatus) String() string {
	state := "DOWN"
	if s.Up {
		state = "UP"
	}
	if s.LimitedAccess {
		state += " (limited access)"
	}
	return fmt.Sprintf("%s: %s", s.Platform, state)
}

// ServerStatus is a merged snapshot of the game server status endpoint and
// the status page.
type ServerStatus struct {
	Timestamp time.Time

	// Statuses maps lowercase platform names to their status, in no
	// particular order; Platforms preserves the API's reporting order.
	Statuses  map[string]PlatformStatus
	Platforms []string

	// Incidents and maintenances lifted off the status page. Empty when the
	// status page couldn't be reached.
	Incidents []Incident
}

// AllUp reports whether every platform is up. The test server doesn't
// count.
func (s *ServerStatus) AllUp() bool {
	for name, status := range s.Statuses {
		if name == "pts" {
			continue
		}
		if !status.Up {
			return false
		}
	}
	return true
}

// LimitedAccess reports whether any platform has limited access. The test
// server doesn't count.
func (s *ServerStatus) LimitedAccess() bool {
	for name, status := range s.Statuses {
		if name == "pts" {
			continue
		}
		if status.LimitedAccess {
			return true
		}
	}
	return false
}

// Equal compares two snapshots platform by platform, ignoring timestamps,
// versions and status page extras.
func (s *ServerStatus) Equal(other *ServerStatus) bool {
	if other == nil || len(s.Statuses) != len(other.Statuses) {
		return false
	}
	for name, status := range s.Statuses {
		otherStatus, ok := other.Statuses[name]
		if !ok || status.Up != otherStatus.Up || status.LimitedAccess != otherStatus.LimitedAccess {
			return false
		}
	}
	return true
}

func (s *ServerStatus) String() string {
	parts := make([]string, 0, len(s.Platforms))
	for _, name := range s.Platforms {
		parts = append(parts, s.Statuses[name].String())
	}
	return strings.Join(parts, ", ")
}

func newServerStatus(
	now time.Time, resps []serverStatusResponse, group *componentGroup,
) *ServerStatus {
	status := &ServerStatus{
		Timestamp: now,
		Statuses:  make(map[string]PlatformStatus, len(resps)),
	}
	for _, resp := range resps {
		platform := strings.ToLower(resp.Platform)
		// the test server reports through the environment field instead
		if env := strings.ToLower(resp.Environment); env == "pts" {
			platform = env
		}
		if platform == "" {
			continue
		}
		entry := PlatformStatus{
			Platform:      platform,
			Up:            strings.EqualFold(resp.Status, "UP"),
			LimitedAccess: resp.LimitedAccess,
			Version:       resp.Version,
		}
		if group != nil {
			if comp, ok := group.component(platform); ok {
				entry.Component = comp
			}
		}
		if _, dup := status.Statuses[platform]; !dup {
			status.Platforms = append(status.Platforms, platform)
		}
		status.Statuses[platform] = entry
	}
	if group != nil {
		status.Incidents = group.incidents
	}
	return status
}

// GetServerStatus fetches the current game server status, merged with the
// status page data where available.
//
// Snapshots stay cached for a minute; forceRefresh bypasses that. When both
// sources fail, a previously cached snapshot is served, and with none
// stored this errors with a NotFoundError. Uses up one request on refresh.
func (c *Client) GetServerStatus(ctx context.Context, forceRefresh bool) (*ServerStatus, error) {
	c.statusMu.Lock()
	defer c.statusMu.Unlock()

	now := c.now().UTC()
	if !forceRefresh && c.serverStatus != nil &&
		now.Before(c.serverStatus.Timestamp.Add(serverStatusFreshness)) {
		return c.serverStatus, nil
	}

	var resps []serverStatusResponse
	raw, apiErr := c.Request(ctx, "gethirezserverstatus")
	if apiErr == nil {
		apiErr = unmarshalResponse(raw, &resps)
	}
	if apiErr == nil && len(resps) == 0 {
		apiErr = notFound("Server status")
	}

	group, pageErr := c.statusPage.fetchGroup(ctx, statusPageGroupName)
	if pageErr != nil {
		c.logger.Warn("status page fetch failed", "error", pageErr)
		group = nil
	}

	if apiErr != nil {
		if group == nil {
			if c.serverStatus != nil {
				return c.serverStatus, nil
			}
			return nil, notFound("Server status")
		}
		// API down, status page up: synthesize platform entries off the
		// page components alone.
		status := &ServerStatus{
			Timestamp: now,
			Statuses:  make(map[string]PlatformStatus, len(group.components)),
			Incidents: group.incidents,
		}
		for _, comp := range group.components {
			platform := strings.ToLower(comp.Name)
			status.Platforms = append(status.Platforms, platform)
			status.Statuses[platform] = PlatformStatus{
				Platform:  platform,
				Up:        comp.Operational(),
				Component: comp,
			}
		}
		c.serverStatus = status
		return status, nil
	}

	status := newServerStatus(now, resps, group)
	c.serverStatus = status
	return status, nil
}
