package constants

import "time"

const (
	StatsCacheTTL  = 2 * time.Minute
	ExportCacheTTL = 5 * time.Minute

	ExternalAPITimeout = 10 * time.Second
	DatabaseTimeout    = 5 * time.Second
	RequestTimeout     = 30 * time.Second
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
	DBBatchSize       = 100
)

const (
	ShutdownTimeout = 5 * time.Second
)

// Statistical gates. These are the service-layer defaults; the stats
// package takes them as explicit arguments so reports stay pure
// functions of their inputs.
const (
	// ParticipationFloor is the fraction of a month's games a player
	// must have played to be ranking-eligible for that month.
	ParticipationFloor = 0.40

	// MinCompositionAppearances gates a lineup signature before it can
	// headline a player-count bucket.
	MinCompositionAppearances = 5

	// MinConsistencySample is the game count under which the
	// consistency score reports its insufficient-evidence floor.
	MinConsistencySample = 30

	MinWolfPairGames  = 2
	MinLoverPairGames = 1
)
