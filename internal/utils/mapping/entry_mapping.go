package mapping

import (
	"github.com/rusingacademy/ledger-service/internal/core/domain"
	"github.com/rusingacademy/ledger-service/internal/models"
)

// ToModelEntry converts a domain JournalEntry to a model JournalEntry
func ToModelEntry(d domain.JournalEntry) models.JournalEntry {
	m := models.JournalEntry{
		EntryID:      d.EntryID,
		EntryNumber:  d.EntryNumber,
		EntryDate:    d.EntryDate,
		Memo:         d.Memo,
		SourceID:     d.SourceID,
		IsAdjusting:  d.IsAdjusting,
		IsReversed:   d.IsReversed,
		ReversalOfID: d.ReversalOfID,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
	if d.SourceType != nil {
		st := string(*d.SourceType)
		m.SourceType = &st
	}
	return m
}

// ToDomainEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainEntry(m models.JournalEntry) domain.JournalEntry {
	d := domain.JournalEntry{
		EntryID:      m.EntryID,
		EntryNumber:  m.EntryNumber,
		EntryDate:    m.EntryDate,
		Memo:         m.Memo,
		SourceID:     m.SourceID,
		IsAdjusting:  m.IsAdjusting,
		IsReversed:   m.IsReversed,
		ReversalOfID: m.ReversalOfID,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
	if m.SourceType != nil {
		st := domain.SourceType(*m.SourceType)
		d.SourceType = &st
	}
	return d
}

// ToModelLine converts a domain EntryLine to a model EntryLine
func ToModelLine(d domain.EntryLine) models.EntryLine {
	return models.EntryLine{
		LineID:      d.LineID,
		EntryID:     d.EntryID,
		AccountID:   d.AccountID,
		Debit:       d.Debit,
		Credit:      d.Credit,
		Description: d.Description,
		LineOrder:   d.LineOrder,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLine converts a model EntryLine to a domain EntryLine
func ToDomainLine(m models.EntryLine) domain.EntryLine {
	return domain.EntryLine{
		LineID:      m.LineID,
		EntryID:     m.EntryID,
		AccountID:   m.AccountID,
		Debit:       m.Debit,
		Credit:      m.Credit,
		Description: m.Description,
		LineOrder:   m.LineOrder,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLineSlice converts a slice of model EntryLines to domain EntryLines
func ToDomainLineSlice(ms []models.EntryLine) []domain.EntryLine {
	ds := make([]domain.EntryLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLine(m)
	}
	return ds
}

// ToDomainSourceDocument converts a model SourceDocument to the domain view
func ToDomainSourceDocument(m models.SourceDocument) domain.SourceDocument {
	return domain.SourceDocument{
		SourceType: domain.SourceType(m.SourceType),
		SourceID:   m.SourceID,
		Payee:      m.Payee,
		Amount:     m.Amount,
		DocDate:    m.DocDate,
		Status:     domain.SourceDocumentStatus(m.Status),
	}
}
