package knowledge

import (
	"context"

	"github.com/uptrace/bun"

	"finsight-rag/internal/db"
	"finsight-rag/internal/models"
)

// BunPersistence adapts the bun-backed book_insights table to the
// Persistence boundary.
type BunPersistence struct {
	db *bun.DB
}

func NewBunPersistence(bunDB *bun.DB) *BunPersistence {
	return &BunPersistence{db: bunDB}
}

func (p *BunPersistence) GetDocuments(ctx context.Context) ([]models.Document, error) {
	books, err := db.GetBookInsights(ctx, p.db)
	if err != nil {
		return nil, err
	}
	docs := make([]models.Document, 0, len(books))
	for i := range books {
		docs = append(docs, books[i].ToDocument())
	}
	return docs, nil
}

func (p *BunPersistence) SaveDocument(ctx context.Context, doc models.Document) error {
	return db.SaveBookInsight(ctx, p.db, db.FromDocument(doc))
}
