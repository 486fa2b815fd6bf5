package tracking

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// TxRunner runs a function inside a database transaction.
// *database.DB satisfies it.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error
}

// SeedResult reports what a Seed call created.
type SeedResult struct {
	GroupsCreated    int
	LocationsCreated int
}

type seedPoint struct {
	group string
	lat   float64
	lon   float64
	at    string
}

// demoGroups are created when the groups table is empty.
var demoGroups = []string{
	"Group Alpha",
	"Group Bravo",
	"Group Charlie",
	"Group Delta",
	"Group Echo",
}

// demoPath is created when the locations table is empty.
var demoPath = []seedPoint{
	{"Group Alpha", 28.6139, 76.2090, "2025-07-15 09:00:00"},
	{"Group Alpha", 28.6304, 77.2177, "2025-07-15 11:30:00"},
	{"Group Alpha", 28.5245, 77.1855, "2025-07-16 14:00:00"},
	{"Group Alpha", 29.5245, 78.1855, "2025-07-17 14:00:00"},
	{"Group Alpha", 30.5245, 79.1855, "2025-07-18 14:00:00"},
	{"Group Alpha", 31.5245, 80.1855, "2025-07-19 14:00:00"},
	{"Group Alpha", 28.5245, 77.1855, "2025-07-20 14:00:00"},
	{"Group Bravo", 28.5355, 77.2244, "2025-07-17 10:00:00"},
	{"Group Bravo", 28.5827, 77.2188, "2025-07-18 12:00:00"},
	{"Group Charlie", 28.6562, 77.2410, "2025-07-19 08:00:00"},
	{"Group Charlie", 28.6791, 77.2294, "2025-07-19 15:00:00"},
	{"Group Delta", 28.7041, 77.1025, "2025-07-20 11:00:00"},
	{"Group Delta", 28.6981, 77.1105, "2025-07-20 13:00:00"},
	{"Group Echo", 28.4595, 77.0266, "2025-07-16 18:00:00"},
	{"Group Echo", 28.4715, 77.0306, "2025-07-17 19:00:00"},
}

// Seed populates an empty database with the demo groups and paths.
//
// Groups are only created when no groups exist, and locations only when no
// locations exist, so repeated calls are no-ops. Everything runs in one
// transaction: a failure leaves the database untouched. Points are written
// through rec and, once committed, handed to its sinks. A nil rec records
// without sinks.
func Seed(ctx context.Context, txr TxRunner, repo *SQLiteRepository, rec *Recorder, logger Logger) (SeedResult, error) {
	if logger == nil {
		logger = noopLogger{}
	}
	if rec == nil {
		rec = NewRecorder(repo, logger)
	}

	var result SeedResult
	var created []Location
	err := txr.WithTx(ctx, func(tx *sql.Tx) error {
		txRepo := repo.WithTx(tx)
		txRec := rec.withoutSinks(txRepo)

		groupCount, err := txRepo.CountGroups(ctx)
		if err != nil {
			return err
		}
		if groupCount == 0 {
			logger.Info("creating sample groups", "count", len(demoGroups))
			for _, name := range demoGroups {
				if _, err := txRepo.CreateGroup(ctx, name); err != nil {
					return fmt.Errorf("seeding group %q: %w", name, err)
				}
				result.GroupsCreated++
			}
		}

		locationCount, err := txRepo.CountLocations(ctx)
		if err != nil {
			return err
		}
		if locationCount > 0 {
			return nil
		}

		groups, err := txRepo.ListGroups(ctx)
		if err != nil {
			return err
		}
		ids := make(map[string]int64, len(groups))
		for _, g := range groups {
			ids[g.Name] = g.ID
		}

		logger.Info("creating sample locations", "count", len(demoPath))
		for _, p := range demoPath {
			groupID, ok := ids[p.group]
			if !ok {
				logger.Warn("sample group missing, skipping point", "group", p.group)
				continue
			}
			at, err := time.Parse(DisplayLayout, p.at)
			if err != nil {
				return fmt.Errorf("parsing sample timestamp %q: %w", p.at, err)
			}
			loc, err := txRec.Record(ctx, groupID, p.lat, p.lon, &at)
			if err != nil {
				return fmt.Errorf("seeding location for %q: %w", p.group, err)
			}
			created = append(created, *loc)
			result.LocationsCreated++
		}
		return nil
	})
	if err != nil {
		return SeedResult{}, fmt.Errorf("seeding database: %w", err)
	}

	for _, loc := range created {
		rec.Notify(ctx, loc)
	}

	if result.GroupsCreated > 0 || result.LocationsCreated > 0 {
		logger.Info("database seeded",
			"groups_created", result.GroupsCreated,
			"locations_created", result.LocationsCreated,
		)
	}
	return result, nil
}
