package game

// Stats are running counters for one session.
type Stats struct {
	Ticks           int
	EnemiesSpawned  int
	ShotsFired      int
	BulletKills     int
	FarmerKills     int
	CropHits        int // enemies that died on a crop
	Escaped         int // enemies that left the field alive
	CropsLost       int
	TimeBonus       float64 // seconds earned from kills
	SuperpowersUsed int
	WinBonus        int
}

// Kills counts enemies destroyed by the player.
func (s Stats) Kills() int {
	return s.BulletKills + s.FarmerKills
}

// Accuracy is the share of shots that killed, or 0 with no shots.
func (s Stats) Accuracy() float64 {
	if s.ShotsFired == 0 {
		return 0
	}
	return float64(s.BulletKills) / float64(s.ShotsFired)
}
