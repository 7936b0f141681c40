// reaper sweeps content rows whose owning account no longer exists.
// Account deletion cascades in-band; this catches rows orphaned before
// that existed, or by out-of-band account removal.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"foliohub/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "report orphans without deleting")
	flag.Parse()

	_ = godotenv.Load()
	dsn := os.Getenv("DB_DSN")
	if strings.TrimSpace(dsn) == "" {
		fmt.Fprintln(os.Stderr, "DB_DSN not set in environment")
		os.Exit(1)
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to open db:", err)
		os.Exit(1)
	}

	tables := map[string]any{
		"projects":         &models.Project{},
		"images":           &models.Image{},
		"music_tracks":     &models.MusicTrack{},
		"skills":           &models.Skill{},
		"contact_messages": &models.ContactMessage{},
		"cv_documents":     &models.CVDocument{},
		"analytics_events": &models.AnalyticsEvent{},
		"visitor_sessions": &models.VisitorSession{},
	}
	orphaned := "user_id NOT IN (SELECT id FROM users)"

	// list the remote object keys the orphans point at so an operator can
	// clean up the storage provider too
	for _, model := range []any{&models.Image{}, &models.MusicTrack{}, &models.CVDocument{}} {
		var keys []string
		if err := db.Model(model).Where(orphaned).Pluck("storage_id", &keys).Error; err != nil {
			continue
		}
		for _, key := range keys {
			if key != "" {
				fmt.Printf("orphaned remote object: %s\n", key)
			}
		}
	}

	total := int64(0)
	for name, model := range tables {
		var count int64
		if err := db.Model(model).Where(orphaned).Count(&count).Error; err != nil {
			fmt.Fprintf(os.Stderr, "count failed for %s: %v\n", name, err)
			continue
		}
		if count == 0 {
			continue
		}
		if *dryRun {
			fmt.Printf("%s: %d orphaned rows\n", name, count)
			total += count
			continue
		}
		res := db.Where(orphaned).Delete(model)
		if res.Error != nil {
			fmt.Fprintf(os.Stderr, "delete failed for %s: %v\n", name, res.Error)
			continue
		}
		fmt.Printf("%s: deleted %d orphaned rows\n", name, res.RowsAffected)
		total += res.RowsAffected
	}
	if *dryRun {
		fmt.Printf("dry run: %d orphaned rows total\n", total)
	} else {
		fmt.Printf("reaped %d rows\n", total)
	}
}
