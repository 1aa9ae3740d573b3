package service

import (
	"strings"

	"opinfo/internal/operator/models"
)

// generateUUID returns the record's explicit uuid, or a reproducible id
// built from its first mccmnc, name, APN, SID and NID.
func generateUUID(data models.Data) string {
	if data.UUID != nil {
		return *data.UUID
	}

	var b strings.Builder
	if len(data.MCCMNCs) > 0 {
		b.WriteString(data.MCCMNCs[0])
	}
	if len(data.LocalizedNames) > 0 {
		b.WriteString(data.LocalizedNames[0].Name)
	}
	if len(data.APNs) > 0 {
		b.WriteString(data.APNs[0].APN)
	}
	if len(data.SIDs) > 0 {
		b.WriteString(data.SIDs[0])
	}
	if len(data.NIDs) > 0 {
		b.WriteString(data.NIDs[0])
	}
	return sanitizeUUID(b.String())
}

// sanitizeUUID replaces everything outside [A-Za-z0-9_] with an underscore.
func sanitizeUUID(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, s)
}
