package enrich

import (
	"fmt"
	"regexp"
	"strings"
)

// Business marketing identifiers are dash-delimited codes, e.g.
// "NAMER-FY25Q2-DG-WBNR-017". Each segment decodes independently; segments
// with no known decoding pass through verbatim.
var (
	bmidRegions = map[string]string{
		"NAMER":  "North America",
		"NA":     "North America",
		"EMEA":   "Europe, Middle East and Africa",
		"APAC":   "Asia Pacific",
		"LATAM":  "Latin America",
		"GLOBAL": "all regions",
	}
	bmidMotions = map[string]string{
		"DG":  "demand generation",
		"ABM": "account-based marketing",
		"BR":  "brand",
		"FLD": "field marketing",
		"PTR": "partner marketing",
		"CM":  "customer marketing",
	}
	bmidFormats = map[string]string{
		"WBNR": "webinar",
		"EVNT": "event",
		"EML":  "email",
		"CNT":  "content syndication",
		"SEM":  "paid search",
		"DSP":  "display advertising",
		"SOC":  "paid social",
		"DM":   "direct mail",
	}

	fiscalPeriod = regexp.MustCompile(`^FY(\d{2})Q([1-4])$`)
)

// DecodeBMID translates a structured business marketing identifier into a
// human-readable phrase by decomposing its dash-delimited segments. Returns
// "" when the identifier is empty or has no recognizable structure.
func DecodeBMID(bmid string) string {
	bmid = strings.TrimSpace(bmid)
	if bmid == "" {
		return ""
	}

	segments := strings.Split(bmid, "-")
	if len(segments) < 2 {
		return ""
	}

	decoded := make([]string, 0, len(segments))
	for _, seg := range segments {
		upper := strings.ToUpper(strings.TrimSpace(seg))
		switch {
		case upper == "":
			continue
		case bmidRegions[upper] != "":
			decoded = append(decoded, bmidRegions[upper])
		case bmidMotions[upper] != "":
			decoded = append(decoded, bmidMotions[upper])
		case bmidFormats[upper] != "":
			decoded = append(decoded, bmidFormats[upper])
		default:
			if m := fiscalPeriod.FindStringSubmatch(upper); m != nil {
				decoded = append(decoded, fmt.Sprintf("fiscal year 20%s quarter %s", m[1], m[2]))
			} else {
				decoded = append(decoded, seg)
			}
		}
	}

	return fmt.Sprintf("%s (%s)", bmid, strings.Join(decoded, ", "))
}
