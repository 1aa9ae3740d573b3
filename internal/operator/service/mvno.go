package service

import (
	"opinfo/internal/operator/database"
)

// updateMVNO selects the first MVNO of the current MNO whose filters all
// pass and reports whether the selection changed.
func (s *Service) updateMVNO() bool {
	if !s.currentMNO.Valid() {
		return false
	}

	mno := s.index.MNO(s.currentMNO)
	next := noMVNO
	for pos := range mno.MVNOs {
		if s.mvnoMatches(s.index.Filters(s.currentMNO, pos)) {
			next = pos
			break
		}
	}

	if next == s.currentMVNO {
		return false
	}
	s.logger.Debug("MVNO selection changed",
		"mno_id", int(s.currentMNO),
		"previous_mvno", s.currentMVNO,
		"mvno", next,
	)
	s.currentMVNO = next
	s.metrics.IncrementResolution("mvno", next != noMVNO)
	s.refreshProfile()
	return true
}

// mvnoMatches evaluates every filter against the stored identity. A missing
// value or a regex that did not compile fails the MVNO.
func (s *Service) mvnoMatches(filters []database.Filter) bool {
	for _, f := range filters {
		value := s.identity.valueFor(f.Type)
		if value == "" {
			s.metrics.IncrementFilterFailure("no_value")
			return false
		}
		if err := f.CompileErr(); err != nil {
			s.logger.Warn("could not compile MVNO filter regex, skipping MVNO",
				"regex", f.Regex,
				"error", err,
			)
			s.metrics.IncrementFilterFailure("compile")
			return false
		}
		if !f.Matches(value) {
			s.metrics.IncrementFilterFailure("mismatch")
			return false
		}
	}
	return true
}
