package campaign

import "strings"

// ABMClass is the account-based-marketing classification of a campaign.
type ABMClass string

// ABM classification constants, in rule priority order.
const (
	ABMExplicitProgram      ABMClass = "Explicit ABM Program"
	ABMStrategicTargeting   ABMClass = "Strategic Account Targeting"
	ABMExecutiveTargeting   ABMClass = "Executive/C-Suite Targeting"
	ABMAcquisitionExpansion ABMClass = "Strategic Account Acquisition/Expansion"
	ABMPersonalizedUpsell   ABMClass = "Personalized Account Expansion"
	ABMHighTouchEvent       ABMClass = "High-Touch Event Targeting"
	ABMAligned              ABMClass = "ABM-Aligned Campaign"
)

// ClassifyABM buckets a campaign by its account-based-marketing
// characteristics. Rules are checked in priority order, first match wins;
// campaigns that matched the ABM extraction filter but none of the specific
// rules fall back to ABMAligned.
func ClassifyABM(r Record) ABMClass {
	subDetail := strings.TrimSpace(r.SubChannelDetail)

	if strings.Contains(r.TCPProgram, "ABM") {
		return ABMExplicitProgram
	}
	if subDetail == "Target Accounts" || subDetail == "POD - ABM" {
		return ABMStrategicTargeting
	}
	if strings.Contains(subDetail, "CXO") {
		return ABMExecutiveTargeting
	}
	if r.TCPTheme == "Top Target Acquisition" || r.TCPTheme == "Top Target Expansion" {
		return ABMAcquisitionExpansion
	}
	if r.Channel == "Upsell" && (strings.Contains(subDetail, "1:1") || strings.Contains(subDetail, "1:Few")) {
		return ABMPersonalizedUpsell
	}
	if r.Channel == "Corporate Events" || r.Channel == "Field Events" {
		lower := strings.ToLower(subDetail)
		for _, term := range []string{"target", "cxo", "1:"} {
			if strings.Contains(lower, term) {
				return ABMHighTouchEvent
			}
		}
	}
	return ABMAligned
}
