package enrich

import (
	"strings"
	"testing"

	"github.com/meganfung38/SFDC-Campaign-Clarity/internal/campaign"
)

const testMappings = `{
  "Channel__c": {
    "Paid Search": "prospect actively searched and clicked a sponsored result",
    "Webinar": "prospect registered for an online seminar"
  },
  "Vertical__c": {
    "Healthcare": "healthcare organizations, expect compliance concerns"
  },
  "Company_Size_Context": {
    "SMB": "small and mid-size business segment"
  },
  "Buyer_Journey_Indicators": {
    "High_Intent_Keywords": ["demo", "pricing"],
    "Research_Keywords": ["webinar", "whitepaper"],
    "Awareness_Keywords": ["overview"]
  }
}`

func testTable(t *testing.T) *Table {
	t.Helper()
	tbl, err := ParseTable([]byte(testMappings))
	if err != nil {
		t.Fatalf("ParseTable: %v", err)
	}
	return tbl
}

func TestParseTableRejectsMalformedField(t *testing.T) {
	_, err := ParseTable([]byte(`{"Channel__c": ["not", "a", "map"]}`))
	if err == nil {
		t.Fatal("expected error for non-map field entry")
	}
}

func TestEnrichMappedValue(t *testing.T) {
	tbl := testTable(t)
	out := tbl.Enrich(campaign.Record{Name: "C1", Channel: "Paid Search"})

	want := "Engagement method: Paid Search: prospect actively searched and clicked a sponsored result"
	if !strings.Contains(out, want) {
		t.Errorf("enriched context missing mapped channel line:\n%s", out)
	}
}

func TestEnrichUnmappedValueVerbatim(t *testing.T) {
	tbl := testTable(t)
	out := tbl.Enrich(campaign.Record{Name: "C1", Channel: "Skywriting"})

	if !strings.Contains(out, "Engagement method: Skywriting") {
		t.Errorf("unmapped channel not passed through verbatim:\n%s", out)
	}
	if strings.Contains(out, "Skywriting:") {
		t.Errorf("unmapped channel gained a description:\n%s", out)
	}
}

func TestEnrichCaseInsensitiveLookup(t *testing.T) {
	tbl := testTable(t)
	out := tbl.Enrich(campaign.Record{Name: "C1", Channel: "paid search"})

	if !strings.Contains(out, "prospect actively searched") {
		t.Errorf("case-insensitive lookup failed:\n%s", out)
	}
}

func TestEnrichOmitsEmptyFields(t *testing.T) {
	tbl := testTable(t)
	out := tbl.Enrich(campaign.Record{Name: "Bare"})

	for _, label := range []string{"Engagement method:", "Industry context:", "Secondary channel:", "Campaign description:"} {
		if strings.Contains(out, label) {
			t.Errorf("empty field rendered as %q:\n%s", label, out)
		}
	}
	// Attribution is always present, one phrasing or the other.
	if !strings.Contains(out, "Attribution tracking:") {
		t.Errorf("attribution line missing:\n%s", out)
	}
}

func TestEnrichUnknownName(t *testing.T) {
	tbl := testTable(t)
	out := tbl.Enrich(campaign.Record{})
	if !strings.HasPrefix(out, "Campaign: Unknown") {
		t.Errorf("missing Unknown fallback, got:\n%s", out)
	}
}

func TestEnrichSkipsGeneralProduct(t *testing.T) {
	tbl := testTable(t)
	out := tbl.Enrich(campaign.Record{Name: "C1", IntendedProduct: "General"})
	if strings.Contains(out, "Product interest") {
		t.Errorf("General product interest should be omitted:\n%s", out)
	}

	out = tbl.Enrich(campaign.Record{Name: "C1", IntendedProduct: "Video"})
	if !strings.Contains(out, "Product interest: Video") {
		t.Errorf("specific product interest missing:\n%s", out)
	}
}

func TestEnrichSkipsMultiTerritory(t *testing.T) {
	tbl := testTable(t)

	out := tbl.Enrich(campaign.Record{Name: "C1", Territory: "AMER;EMEA"})
	if strings.Contains(out, "Sales territory assignment") {
		t.Errorf("multi-territory value should be skipped:\n%s", out)
	}

	out = tbl.Enrich(campaign.Record{Name: "C1", Territory: "AMER"})
	if !strings.Contains(out, "Sales territory assignment: AMER") {
		t.Errorf("single territory missing:\n%s", out)
	}
}

func TestEnrichAttributionPhrasing(t *testing.T) {
	tbl := testTable(t)

	out := tbl.Enrich(campaign.Record{Name: "C1", NonAttributable: true})
	if !strings.Contains(out, "Cannot directly trace leads back") {
		t.Errorf("non-attributable phrasing missing:\n%s", out)
	}

	out = tbl.Enrich(campaign.Record{Name: "C1"})
	if !strings.Contains(out, "clear cause + effect") {
		t.Errorf("attributable phrasing missing:\n%s", out)
	}
}

func TestEnrichDeterministic(t *testing.T) {
	tbl := testTable(t)
	rec := campaign.Record{
		Name:        "Q2 Webinar Series",
		Channel:     "Webinar",
		Vertical:    "Healthcare",
		Description: "Product demo and pricing discussion",
		Territory:   "AMER",
	}
	a := tbl.Enrich(rec)
	b := tbl.Enrich(rec)
	if a != b {
		t.Error("Enrich is not deterministic for identical input")
	}
}

func TestCompanySize(t *testing.T) {
	tests := []struct {
		name string
		rec  campaign.Record
		want string
	}{
		{"tcp theme smb", campaign.Record{TCPTheme: "SMB Acquisition"}, "SMB"},
		{"tcp theme upmarket", campaign.Record{TCPTheme: "Upmarket Acquisition"}, "Upmarket"},
		{"tcp theme enterprise", campaign.Record{TCPTheme: "Enterprise Acquisition"}, "Enterprise"},
		{"name smb", campaign.Record{Name: "FY25 SMB Push"}, "Small Business"},
		{"name small business", campaign.Record{Name: "Small Business Week"}, "Small Business"},
		{"name enterprise", campaign.Record{Name: "Enterprise Summit"}, "Upmarket"},
		{"name majors", campaign.Record{Name: "Majors Field Dinner"}, "Upmarket"},
		{"name soho", campaign.Record{Name: "SOHO starter promo"}, "SOHO"},
		{"theme wins over name", campaign.Record{TCPTheme: "SMB Acquisition", Name: "Enterprise Summit"}, "SMB"},
		{"no signal", campaign.Record{Name: "Spring Campaign"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := companySize(tt.rec); got != tt.want {
				t.Errorf("companySize = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuyerJourney(t *testing.T) {
	tbl := testTable(t)

	tests := []struct {
		name string
		rec  campaign.Record
		want string
	}{
		{"high intent from description", campaign.Record{Description: "Request a demo today"}, "High intent"},
		{"research from name", campaign.Record{Name: "Industry Whitepaper Download"}, "Research phase"},
		{"awareness from sub detail", campaign.Record{SubChannelDetail: "Product Overview"}, "Awareness stage"},
		{"high intent wins over research", campaign.Record{Name: "Webinar", Description: "pricing available"}, "High intent"},
		{"no keywords", campaign.Record{Name: "Spring Thing"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tbl.buyerJourney(tt.rec)
			if tt.want == "" {
				if got != "" {
					t.Errorf("buyerJourney = %q, want empty", got)
				}
				return
			}
			if !strings.HasPrefix(got, tt.want) {
				t.Errorf("buyerJourney = %q, want prefix %q", got, tt.want)
			}
		})
	}
}
