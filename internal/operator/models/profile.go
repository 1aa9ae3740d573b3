package models

// Profile is a point-in-time copy of the effective operator profile.
type Profile struct {
	UUID             string          `json:"uuid"`
	MNOKnown         bool            `json:"mno_known"`
	MVNOKnown        bool            `json:"mvno_known"`
	OperatorName     string          `json:"operator_name"`
	OperatorNameList []LocalizedName `json:"operator_name_list"`
	Country          string          `json:"country"`
	MCCMNC           string          `json:"mccmnc"`
	MCCMNCList       []string        `json:"mccmnc_list"`
	SID              string          `json:"sid"`
	SIDList          []string        `json:"sid_list"`
	NID              string          `json:"nid"`
	APNList          []APN           `json:"apn_list"`
	OnlinePortalList []OnlinePortal  `json:"olp_list"`
	ActivationCode   string          `json:"activation_code"`
	RequiresRoaming  bool            `json:"requires_roaming"`
}
