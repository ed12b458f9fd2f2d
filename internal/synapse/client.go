// Package synapse is a minimal client for the parts of the Synapse REST API
// the budget maker needs: resolving team membership into user ids.
package synapse

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

const memberPageSize = 50

// Client talks to one Synapse deployment. The HTTP client is injected so the
// transport can carry tracing instrumentation (and tests can point it at a
// local server).
type Client struct {
	baseURL string
	httpc   *http.Client
	log     *zap.Logger
}

// NewClient creates a Client for the given base URL (e.g.
// "https://repo-prod.prod.sagebase.org/repo/v1").
func NewClient(baseURL string, httpc *http.Client, log *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpc:   httpc,
		log:     log,
	}
}

type teamMember struct {
	TeamID string `json:"teamId"`
	Member struct {
		OwnerID string `json:"ownerId"`
	} `json:"member"`
	IsAdmin bool `json:"isAdmin"`
}

type teamMemberPage struct {
	TotalNumberOfResults int64        `json:"totalNumberOfResults"`
	Results              []teamMember `json:"results"`
}

// TeamMembers returns the user ids of a team's non-admin members, following
// pagination. Team admins manage the catalog and do not get a budget.
func (c *Client) TeamMembers(ctx context.Context, teamID string) ([]string, error) {
	var ids []string
	for offset := int64(0); ; {
		page, err := c.memberPage(ctx, teamID, offset)
		if err != nil {
			return nil, err
		}
		for _, m := range page.Results {
			if m.IsAdmin {
				continue
			}
			ids = append(ids, m.Member.OwnerID)
		}
		// Advance by what the server actually returned; Synapse may serve
		// pages smaller than the requested limit.
		offset += int64(len(page.Results))
		if len(page.Results) == 0 || offset >= page.TotalNumberOfResults {
			break
		}
	}
	c.log.Debug("fetched team members", zap.String("team", teamID), zap.Int("count", len(ids)))
	return ids, nil
}

func (c *Client) memberPage(ctx context.Context, teamID string, offset int64) (*teamMemberPage, error) {
	u := fmt.Sprintf("%s/teamMembers/%s?limit=%d&offset=%d",
		c.baseURL, url.PathEscape(teamID), memberPageSize, offset)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "fetching members of team %s", teamID)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf("synapse returned status %d for team %s", resp.StatusCode, teamID)
	}

	var page teamMemberPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, errors.Wrapf(err, "decoding members of team %s", teamID)
	}
	return &page, nil
}

// UsersByTeam fetches membership for each team and inverts it into a map of
// user id to the teams they belong to. Team order within each user's list
// follows the order of teamIDs.
func (c *Client) UsersByTeam(ctx context.Context, teamIDs []string) (map[string][]string, error) {
	teamsByUser := make(map[string][]string)
	for _, teamID := range teamIDs {
		ids, err := c.TeamMembers(ctx, teamID)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			teamsByUser[id] = append(teamsByUser[id], teamID)
		}
	}
	return teamsByUser, nil
}
