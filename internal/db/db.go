package db

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"finsight-rag/internal/config"
	"finsight-rag/internal/models"
)

// BookInsight is the persisted form of a knowledge-base document.
type BookInsight struct {
	bun.BaseModel `bun:"table:book_insights,alias:b"`
	ID            int64     `bun:"id,pk,autoincrement"`
	BookTitle     string    `bun:"book_title,notnull,unique"`
	Author        string    `bun:"author,notnull"`
	Summary       string    `bun:"summary"`
	Topics        []string  `bun:"topics,type:jsonb"`
	Insights      []string  `bun:"insights,type:jsonb"`
	CreatedAt     time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

func (b *BookInsight) ToDocument() models.Document {
	return models.Document{
		Title:    b.BookTitle,
		Author:   b.Author,
		FullText: b.Summary,
		Topics:   b.Topics,
		Insights: b.Insights,
	}
}

func FromDocument(doc models.Document) *BookInsight {
	return &BookInsight{
		BookTitle: doc.Title,
		Author:    doc.Author,
		Summary:   doc.FullText,
		Topics:    doc.Topics,
		Insights:  doc.Insights,
	}
}

func ConnectDB(cfg *config.DatabaseConfig) (*sql.DB, error) {
	return sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithDSN(cfg.DSN),
		pgdriver.WithPassword(cfg.Password),
	)), nil
}

func NewDB(sqldb *sql.DB, debug bool) *bun.DB {
	db := bun.NewDB(sqldb, pgdialect.New())
	if debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}
	return db
}

func InitDB(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*BookInsight)(nil)).IfNotExists().Exec(ctx)
	return err
}

// SaveBookInsight inserts or updates a book keyed by title.
func SaveBookInsight(ctx context.Context, db *bun.DB, book *BookInsight) error {
	_, err := db.NewInsert().
		Model(book).
		On("CONFLICT (book_title) DO UPDATE").
		Set("author = EXCLUDED.author").
		Set("summary = EXCLUDED.summary").
		Set("topics = EXCLUDED.topics").
		Set("insights = EXCLUDED.insights").
		Exec(ctx)
	return err
}

func GetBookInsights(ctx context.Context, db *bun.DB) ([]BookInsight, error) {
	var books []BookInsight
	err := db.NewSelect().
		Model(&books).
		Order("book_title ASC").
		Scan(ctx)
	return books, err
}

func DropBookInsights(ctx context.Context, db *bun.DB) error {
	_, err := db.NewDropTable().Model((*BookInsight)(nil)).IfExists().Exec(ctx)
	return err
}
