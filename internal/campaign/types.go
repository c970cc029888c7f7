package campaign

// Record is one Salesforce marketing campaign as extracted for a run.
// JSON tags match the Salesforce REST API field names so query rows decode
// directly into it. Records are immutable once extracted; enrichment derives
// strings from them, it never writes back.
type Record struct {
	ID                       string `json:"Id"`
	Name                     string `json:"Name"`
	BMID                     string `json:"BMID__c"`
	Channel                  string `json:"Channel__c"`
	SubChannel               string `json:"Sub_Channel__c"`
	SubChannelDetail         string `json:"Sub_Channel_Detail__c"`
	Type                     string `json:"Type"`
	Description              string `json:"Description"`
	ShortDescriptionForSales string `json:"Short_Description_for_Sales__c"`
	IntendedProduct          string `json:"Intended_Product__c"`
	IntendedCountry          string `json:"Intended_Country__c"`
	IntegratedMarketing      string `json:"Integrated_Marketing__c"`
	MarketingMessage         string `json:"Marketing_Message__c"`
	NonAttributable          bool   `json:"Non_Attributable__c"`
	Program                  string `json:"Program__c"`
	TCPCampaign              string `json:"TCP_Campaign__c"`
	TCPProgram               string `json:"TCP_Program__c"`
	TCPTheme                 string `json:"TCP_Theme__c"`
	Territory                string `json:"Territory__c"`
	Vendor                   string `json:"Vendor__c"`
	Vertical                 string `json:"Vertical__c"`
	IsActive                 bool   `json:"IsActive"`

	// MemberCount is the number of campaign-member rows created for this
	// campaign inside the lookback window. Derived during extraction, not a
	// Salesforce field.
	MemberCount int `json:"-"`
}
