// Package store implements the ContentStore interface on a local SQLite
// database through gorm. Bodies are kept as canonical Portable Text JSON;
// each save stamps a content revision derived from the body bytes.
package store

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/gaurav-prasanna/blockpipe/core"
	"github.com/gaurav-prasanna/blockpipe/core/block"
	"github.com/gaurav-prasanna/blockpipe/internal/logger"
	"github.com/zeebo/blake3"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

type articleRecord struct {
	ContentID   string         `gorm:"column:content_id;primaryKey"`
	Title       string         `gorm:"column:title"`
	Slug        string         `gorm:"column:slug;index"`
	PublishedAt string         `gorm:"column:published_at;index"`
	Body        datatypes.JSON `gorm:"column:body"`
	Revision    string         `gorm:"column:revision"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (articleRecord) TableName() string { return "articles" }

var _ core.ConditionalStore = (*Store)(nil)

// Store is a gorm-backed ContentStore.
type Store struct {
	db  *gorm.DB
	log *logger.Logger
}

// Open opens (or creates) the SQLite database at path and migrates it.
func Open(path string, log *logger.Logger) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}
	return New(db, log)
}

// New wraps an existing connection and migrates the schema.
func New(db *gorm.DB, log *logger.Logger) (*Store, error) {
	if err := db.AutoMigrate(&articleRecord{}); err != nil {
		return nil, fmt.Errorf("migrating articles: %w", err)
	}
	return &Store{db: db, log: logger.OrNop(log)}, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Fetch loads one article by content ID.
func (s *Store) Fetch(ctx context.Context, id string) (*core.Article, error) {
	var rec articleRecord
	err := s.db.WithContext(ctx).First(&rec, "content_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("fetching %s: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", id, err)
	}

	body := block.Document{}
	if len(rec.Body) > 0 {
		body, err = block.Decode(bytes.NewReader(rec.Body))
		if err != nil {
			return nil, fmt.Errorf("decoding body of %s: %w", id, err)
		}
	}
	return &core.Article{
		ID:          rec.ContentID,
		Title:       rec.Title,
		Slug:        rec.Slug,
		PublishedAt: rec.PublishedAt,
		Revision:    rec.Revision,
		Body:        body,
	}, nil
}

// Save inserts or replaces the article and sets a.Revision.
func (s *Store) Save(ctx context.Context, a *core.Article) error {
	if a.ID == "" {
		return errors.New("saving article: empty content ID")
	}
	body, err := a.Body.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encoding body of %s: %w", a.ID, err)
	}
	rec := articleRecord{
		ContentID:   a.ID,
		Title:       a.Title,
		Slug:        a.Slug,
		PublishedAt: a.PublishedAt,
		Body:        datatypes.JSON(body),
		Revision:    Revision(body),
	}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "content_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "slug", "published_at", "body", "revision", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("saving %s: %w", a.ID, err)
	}
	a.Revision = rec.Revision
	s.log.Debug("saved article", "id", a.ID, "blocks", len(a.Body), "revision", rec.Revision)
	return nil
}

// SaveIfRevision updates the article only while its stored revision equals
// revision. A missing article also counts as a mismatch.
func (s *Store) SaveIfRevision(ctx context.Context, a *core.Article, revision string) error {
	if a.ID == "" {
		return errors.New("saving article: empty content ID")
	}
	body, err := a.Body.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encoding body of %s: %w", a.ID, err)
	}
	rev := Revision(body)
	res := s.db.WithContext(ctx).
		Model(&articleRecord{}).
		Where("content_id = ? AND revision = ?", a.ID, revision).
		Updates(map[string]any{
			"title":        a.Title,
			"slug":         a.Slug,
			"published_at": a.PublishedAt,
			"body":         datatypes.JSON(body),
			"revision":     rev,
			"updated_at":   time.Now(),
		})
	if res.Error != nil {
		return fmt.Errorf("saving %s: %w", a.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("saving %s at revision %q: %w", a.ID, revision, core.ErrRevisionMismatch)
	}
	a.Revision = rev
	s.log.Debug("saved article", "id", a.ID, "blocks", len(a.Body), "revision", rev)
	return nil
}

// List returns all content IDs, newest publication first.
func (s *Store) List(ctx context.Context) ([]string, error) {
	var ids []string
	err := s.db.WithContext(ctx).
		Model(&articleRecord{}).
		Order("published_at DESC").
		Order("content_id").
		Pluck("content_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("listing articles: %w", err)
	}
	return ids, nil
}

// Revision fingerprints an encoded body.
func Revision(body []byte) string {
	sum := blake3.Sum256(body)
	return hex.EncodeToString(sum[:12])
}
