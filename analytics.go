package main

import (
	"context"
	"math"
	"strings"
	"time"

	"foliohub/models"

	"github.com/mssola/useragent"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// parseWindow maps a dashboard lookback token to a duration.
func parseWindow(s string) (time.Duration, bool) {
	switch s {
	case "24h":
		return 24 * time.Hour, true
	case "", "7d":
		return 7 * 24 * time.Hour, true
	case "30d":
		return 30 * 24 * time.Hour, true
	case "90d":
		return 90 * 24 * time.Hour, true
	}
	return 0, false
}

// sniffDevice classifies a User-Agent into a coarse device class.
func sniffDevice(uaString string) string {
	if uaString == "" {
		return models.DeviceDesktop
	}
	ua := useragent.New(uaString)
	switch {
	case ua.Bot():
		return models.DeviceBot
	case strings.Contains(uaString, "iPad") || strings.Contains(strings.ToLower(uaString), "tablet"):
		return models.DeviceTablet
	case ua.Mobile():
		return models.DeviceMobile
	}
	return models.DeviceDesktop
}

type pageCount struct {
	Page  string `json:"page"`
	Count int64  `json:"count"`
}

type projectClickCount struct {
	ProjectID uint   `json:"projectId"`
	Title     string `json:"title"`
	Count     int64  `json:"count"`
}

type deviceCount struct {
	Device string `json:"device"`
	Count  int64  `json:"count"`
}

type timelinePoint struct {
	Date  string `json:"date"`
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

// dashboardStats is the windowed rollup backing the dashboard.
type dashboardStats struct {
	Window             string                  `json:"window"`
	TotalViews         int64                   `json:"totalViews"`
	UniqueVisitors     int64                   `json:"uniqueVisitors"`
	ProjectClicks      int64                   `json:"projectClicks"`
	ContactSubmissions int64                   `json:"contactSubmissions"`
	ViewsByPage        []pageCount             `json:"viewsByPage"`
	TopProjects        []projectClickCount     `json:"topProjects"`
	DeviceStats        []deviceCount           `json:"deviceStats"`
	Timeline           []timelinePoint         `json:"timeline"`
	RecentContacts     []models.ContactMessage `json:"recentContacts"`
	BounceRate         int                     `json:"bounceRate"`
}

// computeDashboard runs the independent aggregations concurrently. Every
// metric shares the same inclusive cutoff: created_at >= now − window.
func computeDashboard(ctx context.Context, userID uint, window string) (*dashboardStats, error) {
	dur, ok := parseWindow(window)
	if !ok {
		dur = 7 * 24 * time.Hour
		window = "7d"
	}
	if window == "" {
		window = "7d"
	}
	cutoff := time.Now().Add(-dur)
	stats := &dashboardStats{Window: window}

	events := func(tx *gorm.DB) *gorm.DB {
		return tx.Model(&models.AnalyticsEvent{}).
			Where("user_id = ? AND created_at >= ?", userID, cutoff)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return events(db.WithContext(gctx)).
			Where("type = ?", models.EventPageView).
			Count(&stats.TotalViews).Error
	})
	g.Go(func() error {
		return db.WithContext(gctx).Model(&models.VisitorSession{}).
			Where("user_id = ? AND created_at >= ?", userID, cutoff).
			Count(&stats.UniqueVisitors).Error
	})
	g.Go(func() error {
		return events(db.WithContext(gctx)).
			Where("type = ?", models.EventProjectClick).
			Count(&stats.ProjectClicks).Error
	})
	g.Go(func() error {
		return events(db.WithContext(gctx)).
			Where("type = ?", models.EventContactFormSubmit).
			Count(&stats.ContactSubmissions).Error
	})
	g.Go(func() error {
		return events(db.WithContext(gctx)).
			Where("type = ? AND page <> ''", models.EventPageView).
			Select("page, count(*) as count").
			Group("page").Order("count desc").
			Scan(&stats.ViewsByPage).Error
	})
	g.Go(func() error {
		type row struct {
			ProjectID uint
			Count     int64
		}
		var rows []row
		err := events(db.WithContext(gctx)).
			Where("type = ? AND project_id IS NOT NULL", models.EventProjectClick).
			Select("project_id, count(*) as count").
			Group("project_id").Order("count desc").Limit(5).
			Scan(&rows).Error
		if err != nil {
			return err
		}
		for _, r := range rows {
			var p models.Project
			title := ""
			if err := db.WithContext(gctx).Select("title").First(&p, r.ProjectID).Error; err == nil {
				title = p.Title
			}
			stats.TopProjects = append(stats.TopProjects, projectClickCount{
				ProjectID: r.ProjectID, Title: title, Count: r.Count,
			})
		}
		return nil
	})
	g.Go(func() error {
		return events(db.WithContext(gctx)).
			Where("device_type <> ''").
			Select("device_type as device, count(*) as count").
			Group("device_type").Order("count desc").
			Scan(&stats.DeviceStats).Error
	})
	g.Go(func() error {
		return events(db.WithContext(gctx)).
			Select("date(created_at) as date, type, count(*) as count").
			Group("date(created_at), type").Order("date asc").
			Scan(&stats.Timeline).Error
	})
	g.Go(func() error {
		return db.WithContext(gctx).Model(&models.ContactMessage{}).
			Where("user_id = ? AND created_at >= ?", userID, cutoff).
			Order("created_at desc").Limit(10).
			Find(&stats.RecentContacts).Error
	})
	g.Go(func() error {
		var total, bounced int64
		sessions := db.WithContext(gctx).Model(&models.VisitorSession{}).
			Where("user_id = ? AND created_at >= ?", userID, cutoff)
		if err := sessions.Count(&total).Error; err != nil {
			return err
		}
		if total == 0 {
			return nil
		}
		if err := db.WithContext(gctx).Model(&models.VisitorSession{}).
			Where("user_id = ? AND created_at >= ? AND page_views = ?", userID, cutoff, 1).
			Count(&bounced).Error; err != nil {
			return err
		}
		stats.BounceRate = int(math.Round(float64(bounced) / float64(total) * 100))
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}

// realtimeStats is the live snapshot, independent of the windowed rollup.
type realtimeStats struct {
	ActiveVisitors int64                   `json:"activeVisitors"`
	Views24h       int64                   `json:"views24h"`
	RecentEvents   []models.AnalyticsEvent `json:"recentEvents"`
}

func computeRealtime(ctx context.Context, userID uint) (*realtimeStats, error) {
	now := time.Now()
	stats := &realtimeStats{}
	if err := db.WithContext(ctx).Model(&models.VisitorSession{}).
		Where("user_id = ? AND last_activity >= ?", userID, now.Add(-time.Hour)).
		Count(&stats.ActiveVisitors).Error; err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Model(&models.AnalyticsEvent{}).
		Where("user_id = ? AND type = ? AND created_at >= ?", userID, models.EventPageView, now.Add(-24*time.Hour)).
		Count(&stats.Views24h).Error; err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").Limit(20).
		Find(&stats.RecentEvents).Error; err != nil {
		return nil, err
	}
	return stats, nil
}
