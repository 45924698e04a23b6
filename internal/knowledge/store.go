package knowledge

import (
	"context"

	"github.com/rs/zerolog/log"

	"finsight-rag/internal/models"
)

// Persistence is the storage boundary the store loads through. Updates
// to the corpus happen out of band; the store only reads at load time
// and seeds defaults when the backing table is empty.
type Persistence interface {
	GetDocuments(ctx context.Context) ([]models.Document, error)
	SaveDocument(ctx context.Context, doc models.Document) error
}

// Store holds the book corpus for the lifetime of the process. It is
// read-only after Load.
type Store struct {
	persistence Persistence
	docs        []models.Document
	byTitle     map[string]int
}

func NewStore(persistence Persistence) *Store {
	return &Store{persistence: persistence}
}

// Load reads the corpus from persistence. When persistence is absent,
// unreachable or empty it falls back to the built-in default books;
// defaults are persisted best-effort so the next load finds them.
func (s *Store) Load(ctx context.Context) []models.Document {
	docs := s.loadPersisted(ctx)
	if len(docs) == 0 {
		log.Warn().Msg("No books found in storage, using default book data")
		docs = DefaultBooks()
		s.seedDefaults(ctx, docs)
	}

	s.docs = docs
	s.byTitle = make(map[string]int, len(docs))
	for i, doc := range docs {
		s.byTitle[doc.Title] = i
	}
	log.Info().Int("books", len(docs)).Msg("Knowledge store loaded")
	return s.docs
}

func (s *Store) loadPersisted(ctx context.Context) []models.Document {
	if s.persistence == nil {
		return nil
	}
	docs, err := s.persistence.GetDocuments(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Error loading books from storage")
		return nil
	}
	return docs
}

func (s *Store) seedDefaults(ctx context.Context, docs []models.Document) {
	if s.persistence == nil {
		return
	}
	for _, doc := range docs {
		if err := s.persistence.SaveDocument(ctx, doc); err != nil {
			log.Error().Err(err).Str("title", doc.Title).Msg("Could not save default book to storage")
		}
	}
}

// Documents returns the loaded corpus.
func (s *Store) Documents() []models.Document {
	return s.docs
}

// ByTitle resolves a document by its unique title.
func (s *Store) ByTitle(title string) (models.Document, bool) {
	i, ok := s.byTitle[title]
	if !ok {
		return models.Document{}, false
	}
	return s.docs[i], true
}
