package service

import (
	"slices"
	"strings"

	"opinfo/internal/operator/database"
	"opinfo/internal/operator/models"
)

// identity holds the latest externally supplied value of every dimension.
// Values persist until replaced or Reset; one dimension never clears another.
type identity struct {
	imsi         string
	iccid        string
	mccmnc       string
	sid          string
	nid          string
	operatorName string
	portal       models.OnlinePortal
	portalSet    bool
}

func (id identity) valueFor(t models.FilterType) string {
	switch t {
	case models.FilterIMSI:
		return id.imsi
	case models.FilterICCID:
		return id.iccid
	case models.FilterSID:
		return id.sid
	case models.FilterOperatorName:
		return id.operatorName
	default:
		return ""
	}
}

// UpdateIMSI records the subscriber identity. When no MCCMNC is known, the
// IMSI prefix is used to find MNO candidates. The IMSI is not an exposed
// property, so only an operator change raises an event.
func (s *Service) UpdateIMSI(imsi string) {
	if s.identity.imsi == imsi {
		return
	}
	s.identity.imsi = imsi

	changed := false
	if s.identity.mccmnc != "" {
		if !strings.HasPrefix(imsi, s.identity.mccmnc) {
			s.logger.Warn("IMSI does not start with the reported MCCMNC",
				"imsi", imsi,
				"mccmnc", s.identity.mccmnc,
			)
		}
	} else {
		candidates := candidatesFromIMSI(s.index, imsi)
		if !slices.Equal(candidates, s.candidatesByMCCMNC) {
			s.candidatesByMCCMNC = candidates
			changed = s.updateMNO()
		}
	}
	changed = s.updateMVNO() || changed

	if changed {
		s.notifier.post()
	}
}

// UpdateICCID records the SIM card identifier. It only feeds MVNO filters.
func (s *Service) UpdateICCID(iccid string) {
	if s.identity.iccid == iccid {
		return
	}
	s.identity.iccid = iccid

	if s.updateMVNO() {
		s.notifier.post()
	}
}

// UpdateMCCMNC records the network code reported by the modem. Candidates
// are always recomputed, even when none match, since a wrong code must
// drop a previous match.
func (s *Service) UpdateMCCMNC(mccmnc string) {
	if s.identity.mccmnc == mccmnc {
		return
	}
	s.identity.mccmnc = mccmnc
	s.applyMCCMNCOverride()

	s.candidatesByMCCMNC = s.index.ByMCCMNC(mccmnc)
	if len(s.candidatesByMCCMNC) == 0 && mccmnc != "" {
		s.logger.Warn("unknown MCCMNC value", "mccmnc", mccmnc)
	}

	// One event per call: an MNO change and the MVNO change it causes are
	// reported together.
	changed := s.updateMNO()
	changed = s.updateMVNO() || changed
	if changed || s.shouldNotifyPropertyUpdate() {
		s.notifier.post()
	}
}

func (s *Service) UpdateSID(sid string) {
	if s.identity.sid == sid {
		return
	}
	s.identity.sid = sid
	s.applySIDOverride()

	if s.updateMVNO() || s.shouldNotifyPropertyUpdate() {
		s.notifier.post()
	}
}

func (s *Service) UpdateNID(nid string) {
	if s.identity.nid == nid {
		return
	}
	s.identity.nid = nid
	s.applyNIDOverride()

	if s.updateMVNO() || s.shouldNotifyPropertyUpdate() {
		s.notifier.post()
	}
}

// UpdateOperatorName records the carrier display name and recomputes the
// name candidates.
func (s *Service) UpdateOperatorName(name string) {
	if s.identity.operatorName == name {
		return
	}
	s.identity.operatorName = name
	s.applyOperatorNameOverride()

	s.candidatesByName = s.index.ByName(name)
	if len(s.candidatesByName) == 0 && name != "" {
		s.logger.Info("operator name does not match any MNO", "operator_name", name)
	}

	// Single event, as in UpdateMCCMNC.
	changed := s.updateMNO()
	changed = s.updateMVNO() || changed
	if changed || s.shouldNotifyPropertyUpdate() {
		s.notifier.post()
	}
}

// UpdateOnlinePortal records a user-supplied signup portal. Portals never
// take part in operator resolution.
func (s *Service) UpdateOnlinePortal(url, method, postData string) {
	portal := models.OnlinePortal{URL: url, Method: models.PortalMethod(method), PostData: postData}
	if s.identity.portalSet && s.identity.portal == portal {
		return
	}
	s.identity.portal = portal
	s.identity.portalSet = true
	s.applyPortalOverride()

	if s.shouldNotifyPropertyUpdate() {
		s.notifier.post()
	}
}

// Reset forgets every identity value and the current match, and always
// enqueues one notification.
func (s *Service) Reset() {
	if s.IsMobileNetworkOperatorKnown() {
		s.metrics.IncrementResolution("mno", false)
	}
	if s.IsMobileVirtualNetworkOperatorKnown() {
		s.metrics.IncrementResolution("mvno", false)
	}

	s.currentMNO = database.NoMNO
	s.currentMVNO = noMVNO
	s.candidatesByMCCMNC = nil
	s.candidatesByName = nil
	s.identity = identity{}
	s.profile = profile{}

	s.notifier.post()
}

func (s *Service) shouldNotifyPropertyUpdate() bool {
	return s.IsMobileNetworkOperatorKnown() || s.IsMobileVirtualNetworkOperatorKnown()
}
