package sinks

import (
	"context"
	"fmt"

	"orderwatch/internal/database"
	"orderwatch/internal/document"
	"orderwatch/internal/logger"
	"orderwatch/internal/models"
)

// DocumentStore turns each order into a purchase document and persists both
// to the shared store the admin backend reads.
type DocumentStore struct {
	db      *database.Database
	builder *document.Builder
	logger  *logger.Logger
}

func NewDocumentStore(db *database.Database, builder *document.Builder, logger *logger.Logger) *DocumentStore {
	return &DocumentStore{db: db, builder: builder, logger: logger}
}

func (s *DocumentStore) Name() string { return "documents" }

func (s *DocumentStore) HandleOrder(ctx context.Context, order models.Order) error {
	if err := s.db.SaveOrder(&order); err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}

	doc := s.builder.BuildDocument(order)
	if err := s.db.SaveDocument(&doc); err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}

	item := doc.Items[0]
	s.logger.Info("document %s created: no=%s customer=%s item=%s qty=%d subtotal=%d tax=%d total=%d",
		doc.DocID, doc.DocumentNumber, doc.CompanyName, item.Name, item.Quantity,
		doc.Subtotal, doc.Tax, doc.TotalAmount)
	return nil
}
