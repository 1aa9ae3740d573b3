package service

import (
	"fmt"
	"slices"

	"opinfo/internal/operator/models"
)

// profile is the effective operator information: database values of the
// current MNO, overlaid by the current MVNO, then by user-reported values.
type profile struct {
	uuid            string
	country         string
	operatorName    string
	operatorNames   []models.LocalizedName
	mccmnc          string
	mccmncs         []string
	sid             string
	sids            []string
	nid             string
	nids            []string
	apns            []models.APN
	portals         []models.OnlinePortal
	activationCode  string
	requiresRoaming bool
}

// overlay copies every field data sets. Lists are replaced wholesale.
func (p *profile) overlay(data models.Data) {
	if data.Country != nil {
		p.country = *data.Country
	}
	if len(data.LocalizedNames) > 0 {
		p.operatorNames = slices.Clone(data.LocalizedNames)
	}
	if data.RequiresRoaming != nil {
		p.requiresRoaming = *data.RequiresRoaming
	}
	if len(data.OnlinePortals) > 0 {
		p.portals = slices.Clone(data.OnlinePortals)
	}
	if len(data.MCCMNCs) > 0 {
		p.mccmncs = slices.Clone(data.MCCMNCs)
	}
	if len(data.APNs) > 0 {
		p.apns = cloneAPNs(data.APNs)
	}
	if len(data.SIDs) > 0 {
		p.sids = slices.Clone(data.SIDs)
	}
	if len(data.NIDs) > 0 {
		p.nids = slices.Clone(data.NIDs)
	}
	if data.ActivationCode != nil {
		p.activationCode = *data.ActivationCode
	}
}

// refreshProfile rebuilds the profile from scratch for the current match.
func (s *Service) refreshProfile() {
	s.profile = profile{}

	if mno := s.index.MNO(s.currentMNO); mno != nil {
		s.profile.overlay(mno.Data)
		s.profile.uuid = generateUUID(mno.Data)

		if mvno := s.index.MVNO(s.currentMNO, s.currentMVNO); mvno != nil {
			s.profile.overlay(mvno.Data)
			if id := generateUUID(mvno.Data); id != "" {
				s.profile.uuid = id
			}
		}
		if s.profile.uuid == "" {
			s.profile.uuid = fmt.Sprintf("mno_%d", s.currentMNO)
		}
	}

	s.applyUserOverrides()
}

func (s *Service) applyUserOverrides() {
	s.applyMCCMNCOverride()
	s.applyOperatorNameOverride()
	s.applySIDOverride()
	s.applyNIDOverride()
	s.applyPortalOverride()
}

func (s *Service) applyMCCMNCOverride() {
	p := &s.profile
	if user := s.identity.mccmnc; user != "" {
		if !slices.Contains(p.mccmncs, user) {
			p.mccmncs = append(p.mccmncs, user)
		}
		p.mccmnc = user
		return
	}
	p.mccmnc = first(p.mccmncs)
}

func (s *Service) applyOperatorNameOverride() {
	p := &s.profile
	if user := s.identity.operatorName; user != "" {
		known := slices.ContainsFunc(p.operatorNames, func(n models.LocalizedName) bool {
			return n.Name == user
		})
		if !known {
			p.operatorNames = append(p.operatorNames, models.LocalizedName{Name: user})
		}
		p.operatorName = user
		return
	}
	p.operatorName = ""
	if len(p.operatorNames) > 0 {
		p.operatorName = p.operatorNames[0].Name
	}
}

func (s *Service) applySIDOverride() {
	p := &s.profile
	if user := s.identity.sid; user != "" {
		if !slices.Contains(p.sids, user) {
			p.sids = append(p.sids, user)
		}
		p.sid = user
		return
	}
	p.sid = first(p.sids)
}

// NIDs are not exposed as a list, so the user value is never appended.
func (s *Service) applyNIDOverride() {
	if user := s.identity.nid; user != "" {
		s.profile.nid = user
		return
	}
	s.profile.nid = first(s.profile.nids)
}

func (s *Service) applyPortalOverride() {
	if !s.identity.portalSet {
		return
	}
	if !slices.Contains(s.profile.portals, s.identity.portal) {
		s.profile.portals = append(s.profile.portals, s.identity.portal)
	}
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func cloneAPNs(apns []models.APN) []models.APN {
	if apns == nil {
		return nil
	}
	out := make([]models.APN, len(apns))
	for i, apn := range apns {
		out[i] = apn
		out[i].LocalizedNames = slices.Clone(apn.LocalizedNames)
	}
	return out
}
