package storage

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strconv"
)

// Schema files live under migrations/<driver>/ and are named
// NNNN_name.up.sql or NNNN_name.down.sql.
//
//go:embed migrations/**/*.sql
var migrationsFS embed.FS

var reMigrationFilename = regexp.MustCompile(`^(?P<Version>\d{4})_(?P<Name>[^.]+)\.(?P<Direction>up|down)\.sql$`)

var ErrSchemaUpToDate = errors.New("schema is already at the target version")

// Migration is one embedded schema step.
type Migration struct {
	Version int
	Name    string
	Up      bool
	SQL     string
}

// LatestMigration is the version of the newest up migration for driver.
func LatestMigration(driver string) (int, error) {
	all, err := embeddedMigrations(driver)
	if err != nil {
		return 0, err
	}
	latest := 0
	for _, m := range all {
		if m.Up && m.Version > latest {
			latest = m.Version
		}
	}
	return latest, nil
}

// PlanMigrations returns the steps that move a schema at version current to
// target, in the order they must run. A negative target means the latest.
func PlanMigrations(driver string, current, target int) ([]Migration, error) {
	all, err := embeddedMigrations(driver)
	if err != nil {
		return nil, err
	}
	if target < 0 {
		if target, err = LatestMigration(driver); err != nil {
			return nil, err
		}
	}
	if current == target {
		return nil, ErrSchemaUpToDate
	}

	upward := target > current
	var plan []Migration
	for _, m := range all {
		switch {
		case upward && m.Up && m.Version > current && m.Version <= target:
			plan = append(plan, m)
		case !upward && !m.Up && m.Version <= current && m.Version > target:
			plan = append(plan, m)
		}
	}

	sort.Slice(plan, func(i, j int) bool {
		if upward {
			return plan[i].Version < plan[j].Version
		}
		return plan[i].Version > plan[j].Version
	})
	return plan, nil
}

func embeddedMigrations(driver string) ([]Migration, error) {
	switch driver {
	case "sqlite3", "pgx":
	default:
		return nil, fmt.Errorf("no migrations for driver %q", driver)
	}

	dir := path.Join("migrations", driver)
	entries, err := fs.ReadDir(migrationsFS, dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var out []Migration
	for _, entry := range entries {
		parts := reMigrationFilename.FindStringSubmatch(entry.Name())
		if entry.IsDir() || parts == nil {
			continue
		}
		sql, err := migrationsFS.ReadFile(path.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		version, _ := strconv.Atoi(parts[reMigrationFilename.SubexpIndex("Version")])
		out = append(out, Migration{
			Version: version,
			Name:    parts[reMigrationFilename.SubexpIndex("Name")],
			Up:      parts[reMigrationFilename.SubexpIndex("Direction")] == "up",
			SQL:     string(sql),
		})
	}
	return out, nil
}
