package assemble

import (
	"strings"
	"time"

	"github.com/dealdocs/termsheet/pkg/snapshot"
)

// Filename derives the output name from the target company and the
// generation date, with unsafe filename characters removed:
// "Term-Sheet_Acme-Pty-Ltd_2025-12-15.docx".
func Filename(snap snapshot.Snapshot, now time.Time) string {
	parts := []string{"Term-Sheet"}
	if slug := slugify(snap.Get("companyName")); slug != "" {
		parts = append(parts, slug)
	}
	parts = append(parts, now.Format("2006-01-02"))
	return strings.Join(parts, "_") + ".docx"
}

func slugify(raw string) string {
	var b strings.Builder
	lastDash := true // suppress a leading dash
	for _, r := range sanitizeText(raw) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
