package enrich

import "testing"

func TestDecodeBMID(t *testing.T) {
	tests := []struct {
		name string
		bmid string
		want string
	}{
		{"empty", "", ""},
		{"single segment", "NAMER", ""},
		{
			"full identifier",
			"NAMER-FY25Q2-DG-WBNR-017",
			"NAMER-FY25Q2-DG-WBNR-017 (North America, fiscal year 2025 quarter 2, demand generation, webinar, 017)",
		},
		{
			"unknown segments verbatim",
			"EMEA-XYZ",
			"EMEA-XYZ (Europe, Middle East and Africa, XYZ)",
		},
		{
			"lowercase segments decode",
			"apac-abm",
			"apac-abm (Asia Pacific, account-based marketing)",
		},
		{
			"fiscal period alone with region",
			"GLOBAL-FY26Q4",
			"GLOBAL-FY26Q4 (all regions, fiscal year 2026 quarter 4)",
		},
		{
			"malformed fiscal period passes through",
			"NA-FY25Q5",
			"NA-FY25Q5 (North America, FY25Q5)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodeBMID(tt.bmid); got != tt.want {
				t.Errorf("DecodeBMID(%q) = %q, want %q", tt.bmid, got, tt.want)
			}
		})
	}
}
