package server

import (
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	_ "modernc.org/sqlite"
)

// VisitRetention is how long visit records are kept before pruning.
const VisitRetention = 365 * 24 * time.Hour

// Visit is one recorded page view. IPs are stored hashed, never raw.
type Visit struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// VisitStats are the aggregate counters shown on the dev stats endpoint.
type VisitStats struct {
	TotalVisits    int64 `json:"total_visits"`
	UniqueVisitors int64 `json:"unique_visitors"`
	VisitsToday    int64 `json:"visits_today"`
	VisitsThisWeek int64 `json:"visits_this_week"`
}

// VisitLog counts page views in sqlite without keeping anything that
// identifies a visitor: IPs are salted and hashed, the salt is regenerated
// every start, and Do Not Track is honored.
type VisitLog struct {
	db   *sql.DB
	salt string

	mu sync.Mutex // serializes writes from concurrent requests
}

// OpenVisitLog opens (creating if needed) the visit table in the database
// at path.
func OpenVisitLog(path string) (*VisitLog, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path+"?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=10000")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS visits (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		hashed_ip TEXT NOT NULL,
		user_agent TEXT,
		path TEXT,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create visits table: %w", err)
	}

	salt, err := randomSalt()
	if err != nil {
		db.Close()
		return nil, err
	}
	return &VisitLog{db: db, salt: salt}, nil
}

func (v *VisitLog) Close() error {
	if v.db != nil {
		return v.db.Close()
	}
	return nil
}

// randomSalt returns a fresh salt so hashes cannot be correlated across
// restarts.
func randomSalt() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate hashing salt: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// hashIP is consistent per IP within one process lifetime, truncated for
// storage efficiency.
func (v *VisitLog) hashIP(ip string) string {
	h := sha256.New()
	h.Write([]byte(ip + v.salt))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// Middleware records page views. Static assets, dev endpoints, and
// favicon requests are skipped, and so is anyone sending Do Not Track.
func (v *VisitLog) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/static/") ||
			strings.HasPrefix(path, "/images/") ||
			strings.HasPrefix(path, "/dev/") ||
			strings.HasPrefix(path, "/favicon") {
			c.Next()
			return
		}
		if c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}
		v.Record(c.ClientIP(), c.GetHeader("User-Agent"), path)
		c.Next()
	}
}

// Record stores one page view with the IP already hashed.
func (v *VisitLog) Record(ip, userAgent, path string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	_, err := v.db.Exec(
		`INSERT INTO visits (hashed_ip, user_agent, path, timestamp) VALUES (?, ?, ?, ?)`,
		v.hashIP(ip), userAgent, path, time.Now().UTC())
	if err != nil {
		log.Printf("event=visit_record_failed err=%v", err)
	}
}

// Stats aggregates the counters for the dev stats endpoint.
func (v *VisitLog) Stats() (VisitStats, error) {
	var s VisitStats
	if err := v.db.QueryRow(`SELECT COUNT(*) FROM visits`).Scan(&s.TotalVisits); err != nil {
		return VisitStats{}, err
	}
	if err := v.db.QueryRow(`SELECT COUNT(DISTINCT hashed_ip) FROM visits`).Scan(&s.UniqueVisitors); err != nil {
		return VisitStats{}, err
	}
	now := time.Now().UTC()
	dayAgo := now.Add(-24 * time.Hour)
	weekAgo := now.Add(-7 * 24 * time.Hour)
	if err := v.db.QueryRow(`SELECT COUNT(*) FROM visits WHERE timestamp >= ?`, dayAgo).Scan(&s.VisitsToday); err != nil {
		return VisitStats{}, err
	}
	if err := v.db.QueryRow(`SELECT COUNT(*) FROM visits WHERE timestamp >= ?`, weekAgo).Scan(&s.VisitsThisWeek); err != nil {
		return VisitStats{}, err
	}
	return s, nil
}

// Recent returns the newest visits, newest first.
func (v *VisitLog) Recent(limit int) ([]Visit, error) {
	rows, err := v.db.Query(
		`SELECT id, hashed_ip, user_agent, path, timestamp FROM visits ORDER BY id DESC LIMIT ?`,
		limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	visits := make([]Visit, 0, limit)
	for rows.Next() {
		var visit Visit
		if err := rows.Scan(&visit.ID, &visit.HashedIP, &visit.UserAgent, &visit.Path, &visit.Timestamp); err != nil {
			return nil, err
		}
		visits = append(visits, visit)
	}
	return visits, rows.Err()
}

// Prune removes visits older than the retention window.
func (v *VisitLog) Prune(retention time.Duration) {
	v.mu.Lock()
	defer v.mu.Unlock()
	cutoff := time.Now().UTC().Add(-retention)
	result, err := v.db.Exec(`DELETE FROM visits WHERE timestamp < ?`, cutoff)
	if err != nil {
		log.Printf("event=visit_prune_failed err=%v", err)
		return
	}
	if deleted, _ := result.RowsAffected(); deleted > 0 {
		log.Printf("event=visit_prune_done removed=%d", deleted)
	}
}
