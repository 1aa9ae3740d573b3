package service

import (
	"slices"

	"opinfo/internal/operator/database"
)

// Shortest MCCMNC is a 3-digit MCC followed by a 2-digit MNC.
const minMCCMNCLen = 5

// candidatesFromIMSI looks up the 5- and 6-character IMSI prefixes as
// MCCMNC values. Prefixes longer than the IMSI are skipped.
func candidatesFromIMSI(idx *database.Index, imsi string) []database.MNOID {
	var out []database.MNOID
	for _, n := range []int{minMCCMNCLen, minMCCMNCLen + 1} {
		if len(imsi) < n {
			break
		}
		out = append(out, idx.ByMCCMNC(imsi[:n])...)
	}
	return out
}

// selection is the outcome of selectMNO together with the reason, so the
// caller can log the decision.
type selection struct {
	id     database.MNOID
	reason string
}

// selectMNO picks an MNO from the code and name candidate lists. A network
// code always wins over a name; a name alone decides only when no code was
// reported.
func selectMNO(byCode, byName []database.MNOID, codeStored bool) selection {
	switch {
	case len(byCode) == 1:
		if len(byName) > 0 && !slices.Contains(byName, byCode[0]) {
			return selection{id: byCode[0], reason: "mccmnc overrides name"}
		}
		return selection{id: byCode[0], reason: "unique mccmnc"}

	case len(byCode) > 1:
		for _, id := range byCode {
			if slices.Contains(byName, id) {
				return selection{id: id, reason: "mccmnc and name agree"}
			}
		}
		return selection{id: database.NoMNO, reason: "mccmnc ambiguous and disjoint from name"}

	case codeStored:
		return selection{id: database.NoMNO, reason: "unknown mccmnc"}

	case len(byName) == 1:
		return selection{id: byName[0], reason: "unique name"}

	case len(byName) > 1:
		return selection{id: database.NoMNO, reason: "name ambiguous"}

	default:
		return selection{id: database.NoMNO, reason: "no candidates"}
	}
}

// updateMNO re-runs MNO selection and reports whether the current MNO
// changed. A change drops the MVNO and rebuilds the profile.
func (s *Service) updateMNO() bool {
	sel := selectMNO(s.candidatesByMCCMNC, s.candidatesByName, s.identity.mccmnc != "")
	s.logger.Debug("MNO selection",
		"mno_id", int(sel.id),
		"reason", sel.reason,
		"mccmnc", s.identity.mccmnc,
		"operator_name", s.identity.operatorName,
	)

	if sel.id == s.currentMNO {
		return false
	}
	s.currentMNO = sel.id
	s.currentMVNO = noMVNO
	s.metrics.IncrementResolution("mno", sel.id.Valid())
	s.refreshProfile()
	return true
}
