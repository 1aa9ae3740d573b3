// Package models holds the parsed operator database records and the profile
// types the engine exposes to the rest of the daemon.
package models

// FilterType names the identity dimension an MVNO filter is evaluated against.
type FilterType string

const (
	FilterIMSI         FilterType = "IMSI"
	FilterICCID        FilterType = "ICCID"
	FilterSID          FilterType = "SID"
	FilterOperatorName FilterType = "OPERATOR_NAME"
)

// IsValid reports whether t is one of the known filter dimensions.
func (t FilterType) IsValid() bool {
	switch t {
	case FilterIMSI, FilterICCID, FilterSID, FilterOperatorName:
		return true
	}
	return false
}

// PortalMethod is the HTTP method used to reach an online signup portal.
type PortalMethod string

const (
	PortalGET  PortalMethod = "GET"
	PortalPOST PortalMethod = "POST"
)

// IsValid reports whether m is GET or POST.
func (m PortalMethod) IsValid() bool {
	return m == PortalGET || m == PortalPOST
}

// LocalizedName is an operator name with an optional language tag.
type LocalizedName struct {
	Name     string `json:"name" yaml:"name"`
	Language string `json:"language,omitempty" yaml:"language,omitempty"`
}

// OnlinePortal describes a self-service account provisioning endpoint.
type OnlinePortal struct {
	URL      string       `json:"url" yaml:"url"`
	Method   PortalMethod `json:"method" yaml:"method"`
	PostData string       `json:"post_data,omitempty" yaml:"post_data,omitempty"`
}

// APN is one data-connection configuration entry.
type APN struct {
	APN            string          `json:"apn" yaml:"apn"`
	Username       string          `json:"username,omitempty" yaml:"username,omitempty"`
	Password       string          `json:"password,omitempty" yaml:"password,omitempty"`
	LocalizedNames []LocalizedName `json:"localized_name,omitempty" yaml:"localized_name,omitempty"`
}

// Data is the payload shared by MNO records and MVNO overlays. Pointer and
// slice fields left nil/empty are "unset" and never override a parent value.
type Data struct {
	UUID            *string         `json:"uuid,omitempty" yaml:"uuid,omitempty"`
	Country         *string         `json:"country,omitempty" yaml:"country,omitempty"`
	LocalizedNames  []LocalizedName `json:"localized_name,omitempty" yaml:"localized_name,omitempty"`
	RequiresRoaming *bool           `json:"requires_roaming,omitempty" yaml:"requires_roaming,omitempty"`
	OnlinePortals   []OnlinePortal  `json:"olp,omitempty" yaml:"olp,omitempty"`
	MCCMNCs         []string        `json:"mccmnc,omitempty" yaml:"mccmnc,omitempty"`
	APNs            []APN           `json:"mobile_apn,omitempty" yaml:"mobile_apn,omitempty"`
	SIDs            []string        `json:"sid,omitempty" yaml:"sid,omitempty"`
	NIDs            []string        `json:"nid,omitempty" yaml:"nid,omitempty"`
	ActivationCode  *string         `json:"activation_code,omitempty" yaml:"activation_code,omitempty"`
}

// Filter is a regex constraint over one identity dimension.
type Filter struct {
	Type  FilterType `json:"type" yaml:"type"`
	Regex string     `json:"regex" yaml:"regex"`
}

// MVNO is a branded sub-operator riding on its parent MNO's network.
type MVNO struct {
	Filters []Filter `json:"filter,omitempty" yaml:"filter,omitempty"`
	Data    Data     `json:"data" yaml:"data"`
}

// MNO is a mobile network operator record.
type MNO struct {
	Data  Data   `json:"data" yaml:"data"`
	MVNOs []MVNO `json:"mvno,omitempty" yaml:"mvno,omitempty"`
}

// RecordSet is one parsed operator database.
type RecordSet struct {
	Source string `json:"-" yaml:"-"`
	MNOs   []MNO  `json:"mno,omitempty" yaml:"mno,omitempty"`
	// IMVNOs are international MVNOs; they are parsed but not resolved.
	IMVNOs []MVNO `json:"imvno,omitempty" yaml:"imvno,omitempty"`
}
