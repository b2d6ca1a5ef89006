package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

var appStart = time.Now()

type HealthCtrl struct {
	db             *gorm.DB
	authConfigured bool
}

func NewHealthCtrl(db *gorm.DB, authConfigured bool) *HealthCtrl {
	return &HealthCtrl{db: db, authConfigured: authConfigured}
}

type check struct {
	OK  bool   `json:"ok"`
	Err string `json:"err,omitempty"`
}

func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	db := h.pingDB(ctx)
	authCheck := check{OK: h.authConfigured}
	if !h.authConfigured {
		authCheck.Err = "SUPABASE_URL / SUPABASE_ANON_KEY not set"
	}

	allOK := db.OK && authCheck.OK
	status := http.StatusOK
	if !allOK {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, map[string]any{
		"status":     map[string]any{"ok": allOK},
		"uptime_sec": int(time.Since(appStart).Seconds()),
		"checks": map[string]any{
			"database": db,
			"auth":     authCheck,
		},
		"time": time.Now().Format(time.RFC3339),
	})
}

func (h *HealthCtrl) pingDB(ctx context.Context) check {
	if h.db == nil {
		return check{Err: "gorm db is nil"}
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return check{Err: "db.DB(): " + err.Error()}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return check{Err: "ping: " + err.Error()}
	}
	return check{OK: true}
}
