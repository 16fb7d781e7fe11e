package paladins

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// defaultStatusPageURL is the Hi-Rez status page backing
// status.hirezstudios.com.
const defaultStatusPageURL = "https://stk4xr7r1y0r.statuspage.io"

// statusPageGroupName is the component group the library reads; the page
// also tracks the other Hi-Rez titles.
const statusPageGroupName = "Paladins"

// Incident is an ongoing incident or scheduled maintenance reported on the
// status page.
type Incident struct {
	Name   string
	Status string

	// Impact is "none", "minor", "major" or "critical" for incidents, and
	// "maintenance" for scheduled maintenances.
	Impact    string
	UpdatedAt time.Time

	// Components lists the names of the affected components.
	Components []string
}

func (i Incident) String() string {
	return fmt.Sprintf("[%s] %s: %s", i.Impact, i.Name, i.Status)
}

// ComponentStatus describes a single status page component, like the PC
// platform or the matchmaking service.
type ComponentStatus struct {
	Name string

	// Status is "operational", "degraded_performance", "partial_outage",
	// "major_outage" or "under_maintenance".
	Status string
}

// Operational reports whether the component runs without known issues.
func (c ComponentStatus) Operational() bool {
	return c.Status == "operational"
}

// componentGroup is one title's slice of the status page summary.
type componentGroup struct {
	name       string
	updatedAt  time.Time
	components []ComponentStatus
	incidents  []Incident
}

// component returns the group's component matching the given name,
// case-insensitively.
func (g *componentGroup) component(name string) (ComponentStatus, bool) {
	for _, comp := range g.components {
		if strings.EqualFold(comp.Name, name) {
			return comp, true
		}
	}
	return ComponentStatus{}, false
}

type statusPageComponentResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Status  string `json:"status"`
	Group   bool   `json:"group"`
	GroupID string `json:"group_id"`
}

type statusPageIncidentResponse struct {
	Name       string    `json:"name"`
	Status     string    `json:"status"`
	Impact     string    `json:"impact"`
	UpdatedAt  time.Time `json:"updated_at"`
	Components []struct {
		ID string `json:"id"`
	} `json:"components"`
}

type statusPageSummaryResponse struct {
	Page struct {
		UpdatedAt time.Time `json:"updated_at"`
	} `json:"page"`
	Components            []statusPageComponentResponse `json:"components"`
	Incidents             []statusPageIncidentResponse  `json:"incidents"`
	ScheduledMaintenances []statusPageIncidentResponse  `json:"scheduled_maintenances"`
}

// statusPage is a minimal client for the statuspage.io summary feed. It
// carries its own HTTP client, separate from the game API transport.
type statusPage struct {
	url  string
	http *http.Client
}

func newStatusPage(url string) *statusPage {
	return &statusPage{
		url:  strings.TrimRight(url, "/"),
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *statusPage) Close() {
	s.http.CloseIdleConnections()
}

// fetchGroup pulls the page summary and carves out a single component
// group, with the incidents and maintenances touching its components.
func (s *statusPage) fetchGroup(ctx context.Context, groupName string) (*componentGroup, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, s.url+"/api/v2/summary.json", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := s.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status page responded with %s", resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var summary statusPageSummaryResponse
	if err := json.Unmarshal(body, &summary); err != nil {
		return nil, fmt.Errorf("decoding status page summary: %w", err)
	}

	var groupID string
	for _, comp := range summary.Components {
		if comp.Group && strings.EqualFold(comp.Name, groupName) {
			groupID = comp.ID
			break
		}
	}
	if groupID == "" {
		return nil, notFound("Status page group")
	}

	group := &componentGroup{name: groupName, updatedAt: summary.Page.UpdatedAt}
	memberNames := make(map[string]string)
	for _, comp := range summary.Components {
		if comp.GroupID != groupID {
			continue
		}
		memberNames[comp.ID] = comp.Name
		group.components = append(group.components, ComponentStatus{
			Name:   comp.Name,
			Status: comp.Status,
		})
	}

	collect := func(resps []statusPageIncidentResponse) {
		for _, resp := range resps {
			var affected []string
			for _, comp := range resp.Components {
				if name, ok := memberNames[comp.ID]; ok {
					affected = append(affected, name)
				}
			}
			if len(affected) == 0 {
				continue
			}
			group.incidents = append(group.incidents, Incident{
				Name:       resp.Name,
				Status:     resp.Status,
				Impact:     resp.Impact,
				UpdatedAt:  resp.UpdatedAt,
				Components: affected,
			})
		}
	}
	collect(summary.Incidents)
	collect(summary.ScheduledMaintenances)
	return group, nil
}
