package salesforce

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/meganfung38/SFDC-Campaign-Clarity/internal/campaign"
)

// sfTimeLayout renders datetimes the way SOQL expects them.
const sfTimeLayout = "2006-01-02T15:04:05.000-0700"

// inClauseBatch is the number of ids per IN clause; Salesforce rejects much
// larger lists.
const inClauseBatch = 200

// campaignFields is every campaign field a run extracts.
const campaignFields = "BMID__c, Channel__c, Description, Id, Integrated_Marketing__c, " +
	"Intended_Country__c, Intended_Product__c, Marketing_Message__c, " +
	"Name, Non_Attributable__c, Program__c, Short_Description_for_Sales__c, " +
	"Sub_Channel__c, Sub_Channel_Detail__c, TCP_Campaign__c, " +
	"TCP_Program__c, TCP_Theme__c, Territory__c, Type, Vendor__c, Vertical__c"

// abmFilter is the semi-join that narrows campaign members to
// account-based-marketing campaigns.
const abmFilter = ` AND CampaignId IN (
  SELECT Id FROM Campaign WHERE (
    TCP_Program__c LIKE '%ABM%' OR
    Sub_Channel_Detail__c IN ('Target Accounts', 'POD - ABM', 'CXO', 'Field Event - CXO') OR
    TCP_Theme__c IN ('Top Target Acquisition', 'Top Target Expansion') OR
    (Channel__c IN ('Appointment Setting', 'Corporate Events', 'Field Events') AND
     (Sub_Channel_Detail__c LIKE '%1:1%' OR Sub_Channel_Detail__c LIKE '%CXO%' OR
      Sub_Channel_Detail__c LIKE '%Target%')) OR
    (Channel__c = 'Upsell' AND
     Sub_Channel_Detail__c IN ('Upsell - 1:1', 'Upsell - 1:Few')) OR
    (Type IN ('Dinner/Lunch', 'Meetings') AND
     Sub_Channel_Detail__c LIKE '%CXO%')
  ) AND IsActive = true
)`

// CampaignMembers returns the ids of campaigns with member rows created in
// the last monthsBack months, the member count per campaign, and the total
// member rows the query matched before any limit. Ids come back in first
// appearance order. limit 0 means unlimited.
func (c *Client) CampaignMembers(ctx context.Context, monthsBack, limit int) ([]string, map[string]int, int, error) {
	return c.campaignMembers(ctx, monthsBack, limit, "")
}

// ABMCampaignMembers is CampaignMembers narrowed to ABM campaigns.
func (c *Client) ABMCampaignMembers(ctx context.Context, monthsBack, limit int) ([]string, map[string]int, int, error) {
	return c.campaignMembers(ctx, monthsBack, limit, abmFilter)
}

func (c *Client) campaignMembers(ctx context.Context, monthsBack, limit int, filter string) ([]string, map[string]int, int, error) {
	since := time.Now().UTC().AddDate(0, 0, -monthsBack*30).Format(sfTimeLayout)

	soql := fmt.Sprintf("SELECT CampaignId FROM CampaignMember WHERE CreatedDate > %s%s", since, filter)
	if limit > 0 {
		soql += fmt.Sprintf(" LIMIT %d", limit)
	}

	c.logger.Info().Int("months_back", monthsBack).Int("limit", limit).Msg("fetching campaign members")

	result, err := c.queryAll(ctx, soql)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("query campaign members: %w", err)
	}

	var memberRow struct {
		CampaignID string `json:"CampaignId"`
	}
	counts := make(map[string]int)
	var ids []string
	for _, rec := range result.Records {
		if err := json.Unmarshal(rec, &memberRow); err != nil {
			return nil, nil, 0, fmt.Errorf("decode member row: %w", err)
		}
		if memberRow.CampaignID == "" {
			continue
		}
		if _, seen := counts[memberRow.CampaignID]; !seen {
			ids = append(ids, memberRow.CampaignID)
		}
		counts[memberRow.CampaignID]++
	}

	c.logger.Info().
		Int("campaigns", len(ids)).
		Int("members", len(result.Records)).
		Int("total_queried", result.TotalSize).
		Msg("campaign members extracted")
	return ids, counts, result.TotalSize, nil
}

// Campaigns fetches full campaign details for the given ids, batching IN
// clauses to stay under SOQL limits. Order follows the Salesforce response,
// not the input.
func (c *Client) Campaigns(ctx context.Context, ids []string) ([]campaign.Record, error) {
	var records []campaign.Record

	for start := 0; start < len(ids); start += inClauseBatch {
		end := start + inClauseBatch
		if end > len(ids) {
			end = len(ids)
		}
		batch := ids[start:end]

		soql := fmt.Sprintf("SELECT %s FROM Campaign WHERE Id IN ('%s')",
			campaignFields, strings.Join(batch, "','"))

		c.logger.Info().
			Int("batch", start/inClauseBatch+1).
			Int("ids", len(batch)).
			Msg("fetching campaign details")

		result, err := c.queryAll(ctx, soql)
		if err != nil {
			return nil, fmt.Errorf("query campaigns: %w", err)
		}

		for _, raw := range result.Records {
			var rec campaign.Record
			if err := json.Unmarshal(raw, &rec); err != nil {
				return nil, fmt.Errorf("decode campaign: %w", err)
			}
			records = append(records, rec)
		}
	}

	c.logger.Info().Int("campaigns", len(records)).Msg("campaign details extracted")
	return records, nil
}

// CampaignByID fetches one campaign. Returns ErrNotFound when the id does not
// resolve.
func (c *Client) CampaignByID(ctx context.Context, id string) (*campaign.Record, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	soql := fmt.Sprintf("SELECT %s, IsActive FROM Campaign WHERE Id = '%s'", campaignFields, id)
	result, err := c.queryAll(ctx, soql)
	if err != nil {
		return nil, fmt.Errorf("query campaign %s: %w", id, err)
	}
	if len(result.Records) == 0 {
		return nil, fmt.Errorf("%w: campaign %s", ErrNotFound, id)
	}

	var rec campaign.Record
	if err := json.Unmarshal(result.Records[0], &rec); err != nil {
		return nil, fmt.Errorf("decode campaign: %w", err)
	}
	return &rec, nil
}

// validateID enforces the 15/18-character alphanumeric Salesforce id shape,
// which also keeps raw input out of the SOQL string.
func validateID(id string) error {
	if len(id) != 15 && len(id) != 18 {
		return fmt.Errorf("campaign id must be 15 or 18 characters, got %d", len(id))
	}
	for _, r := range id {
		isAlnum := (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		if !isAlnum {
			return fmt.Errorf("campaign id contains invalid character %q", r)
		}
	}
	return nil
}
