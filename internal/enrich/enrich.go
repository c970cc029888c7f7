package enrich

import (
	"strings"

	"github.com/meganfung38/SFDC-Campaign-Clarity/internal/campaign"
)

// Enrich builds the multi-line context string for one campaign. Line order
// and labels are fixed; absent fields are omitted rather than rendered empty.
// The result is deterministic for a given record and table.
func (t *Table) Enrich(r campaign.Record) string {
	var parts []string
	add := func(label, value string) {
		if value != "" {
			parts = append(parts, label+": "+value)
		}
	}

	name := r.Name
	if name == "" {
		name = "Unknown"
	}
	parts = append(parts, "Campaign: "+name)

	add("Engagement method", t.lookup("Channel__c", r.Channel))
	add("Cross channel marketing integration indicator", t.lookup("Integrated_Marketing__c", r.IntegratedMarketing))
	if r.IntendedProduct != "" && r.IntendedProduct != "General" {
		add("Product interest", t.lookup("Intended_Product__c", r.IntendedProduct))
	}
	add("Secondary channel", t.lookup("Sub_Channel__c", r.SubChannel))
	add("Specific engagement context", t.lookup("Sub_Channel_Detail__c", r.SubChannelDetail))
	add("Target customer profile campaign identifier", t.lookup("TCP_Campaign__c", r.TCPCampaign))
	add("Target customer profile program classification", t.lookup("TCP_Program__c", r.TCPProgram))
	add("Target customer profile and strategy", t.lookup("TCP_Theme__c", r.TCPTheme))
	add("Campaign format", t.lookup("Type", r.Type))
	add("Lead source context", t.lookup("Vendor__c", r.Vendor))
	add("Industry context", t.lookup("Vertical__c", r.Vertical))
	add("Value proposition focus", t.lookup("Marketing_Message__c", r.MarketingMessage))

	// Multi-territory values are noise for a single salesperson; skip them.
	if r.Territory != "" && !strings.Contains(r.Territory, ";") {
		add("Sales territory assignment", t.lookup("Territory__c", r.Territory))
	}

	if size := companySize(r); size != "" {
		add("Company size segment", t.lookup("Company_Size_Context", size))
	}
	add("Buyer journey stage", t.buyerJourney(r))
	add("Business marketing identifier", DecodeBMID(r.BMID))

	add("Campaign description", r.Description)
	add("Campaign title", r.Name)
	add("Target geographic market for campaign", r.IntendedCountry)

	if r.NonAttributable {
		parts = append(parts, "Attribution tracking: Cannot directly trace leads back to this campaign (lead may have been influenced by campaign)")
	} else {
		parts = append(parts, "Attribution tracking: Can clearly track that a lead came from this specific campaign (clear cause + effect)")
	}

	add("Parent marketing program", r.Program)
	add("Concise sales focused campaign summary", r.ShortDescriptionForSales)

	return strings.Join(parts, "\n")
}

// companySize infers the size segment a campaign targets from the TCP theme
// and, failing that, keywords in the campaign name.
func companySize(r campaign.Record) string {
	switch {
	case strings.Contains(r.TCPTheme, "SMB"):
		return "SMB"
	case strings.Contains(r.TCPTheme, "Upmarket"):
		return "Upmarket"
	case strings.Contains(r.TCPTheme, "Enterprise"):
		return "Enterprise"
	}

	name := strings.ToLower(r.Name)
	switch {
	case strings.Contains(name, "smb"), strings.Contains(name, "small business"):
		return "Small Business"
	case strings.Contains(name, "enterprise"), strings.Contains(name, "majors"):
		return "Upmarket"
	case strings.Contains(name, "soho"):
		return "SOHO"
	}
	return ""
}

// buyerJourney scans the campaign's free-text fields for journey-stage
// keywords from the table. Highest-intent stage wins.
func (t *Table) buyerJourney(r campaign.Record) string {
	var sb strings.Builder
	for _, v := range []string{r.Name, r.Description, r.SubChannelDetail} {
		if v != "" {
			sb.WriteString(strings.ToLower(v))
			sb.WriteByte(' ')
		}
	}
	text := sb.String()

	contains := func(keywords []string) bool {
		for _, kw := range keywords {
			if kw != "" && strings.Contains(text, strings.ToLower(kw)) {
				return true
			}
		}
		return false
	}

	switch {
	case contains(t.journey.HighIntent):
		return "High intent - actively evaluating solutions (demo, trial, pricing interest)"
	case contains(t.journey.Research):
		return "Research phase - gathering information and comparing options"
	case contains(t.journey.Awareness):
		return "Awareness stage - learning about solutions and understanding needs"
	}
	return ""
}
