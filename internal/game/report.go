package game

import (
	"fmt"
	"strings"
)

// SessionReport formats a plain-text end-of-session summary.
func SessionReport(s Snapshot) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Vision Hero session (T=%d) ===\n", s.Tick)
	fmt.Fprintf(&sb, "  outcome:      %s\n", s.Outcome)
	fmt.Fprintf(&sb, "  score:        %d", s.Score)
	if s.Stats.WinBonus > 0 {
		fmt.Fprintf(&sb, " (incl. +%d victory bonus)", s.Stats.WinBonus)
	}
	sb.WriteByte('\n')
	fmt.Fprintf(&sb, "  time left:    %s\n", FormatClock(s.RemainingTime))
	fmt.Fprintf(&sb, "  crops saved:  %d/%d\n", s.CropsAlive, len(s.Crops))

	st := s.Stats
	sb.WriteString("\n--- Combat ---\n")
	fmt.Fprintf(&sb, "  spawned=%d  bullet_kills=%d  farmer_kills=%d  crop_hits=%d  escaped=%d\n",
		st.EnemiesSpawned, st.BulletKills, st.FarmerKills, st.CropHits, st.Escaped)
	fmt.Fprintf(&sb, "  shots=%d  accuracy=%.0f%%  superpowers=%d\n",
		st.ShotsFired, st.Accuracy()*100, st.SuperpowersUsed)
	fmt.Fprintf(&sb, "  time bonus earned: +%.1fs\n", st.TimeBonus)
	return sb.String()
}

// FormatClock renders seconds as MM:SS, truncating partial seconds.
func FormatClock(seconds float64) string {
	total := max(0, int(seconds))
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
