package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stocktally/backend/internal/domain/counting"
)

// SessionModel is the persistence model for the StockCountSession aggregate root.
type SessionModel struct {
	TenantAggregateModel
	LocationID    uuid.UUID              `gorm:"type:uuid;not null;index:idx_count_session_tenant_location"`
	LocationName  string                 `gorm:"type:varchar(200)"`
	Status        counting.SessionStatus `gorm:"type:varchar(20);not null;default:'IN_PROGRESS';index"`
	Notes         string                 `gorm:"type:varchar(500)"`
	CreatedByID   uuid.UUID              `gorm:"type:uuid;not null"`
	CreatedByName string                 `gorm:"type:varchar(100)"`
	CompletedAt   *time.Time             `gorm:""`
	AdjustedItems int                    `gorm:"not null;default:0"`
	Lines         []CountLineModel       `gorm:"foreignKey:SessionID;references:ID"`
}

// TableName returns the table name for GORM
func (SessionModel) TableName() string {
	return "stock_count_sessions"
}

// ToDomain converts the persistence model to a domain StockCountSession.
func (m *SessionModel) ToDomain() *counting.StockCountSession {
	s := &counting.StockCountSession{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		LocationID:          m.LocationID,
		LocationName:        m.LocationName,
		Status:              m.Status,
		Notes:               m.Notes,
		CreatedByID:         m.CreatedByID,
		CreatedByName:       m.CreatedByName,
		CompletedAt:         m.CompletedAt,
		AdjustedItems:       m.AdjustedItems,
		Lines:               make([]counting.CountLine, len(m.Lines)),
	}
	for i := range m.Lines {
		s.Lines[i] = *m.Lines[i].ToDomain()
	}
	return s
}

// FromDomain populates the persistence model from a domain StockCountSession.
func (m *SessionModel) FromDomain(s *counting.StockCountSession) {
	m.FromDomainTenantAggregateRoot(s.TenantAggregateRoot)
	m.LocationID = s.LocationID
	m.LocationName = s.LocationName
	m.Status = s.Status
	m.Notes = s.Notes
	m.CreatedByID = s.CreatedByID
	m.CreatedByName = s.CreatedByName
	m.CompletedAt = s.CompletedAt
	m.AdjustedItems = s.AdjustedItems
	m.Lines = make([]CountLineModel, len(s.Lines))
	for i := range s.Lines {
		m.Lines[i] = *CountLineModelFromDomain(&s.Lines[i])
	}
}

// SessionModelFromDomain creates a new persistence model from a domain StockCountSession.
func SessionModelFromDomain(s *counting.StockCountSession) *SessionModel {
	m := &SessionModel{}
	m.FromDomain(s)
	return m
}

// CountLineModel is the persistence model for the CountLine entity.
type CountLineModel struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key"`
	SessionID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_count_line_session_item,priority:1"`
	ItemID           uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_count_line_session_item,priority:2"`
	ItemName         string          `gorm:"type:varchar(200)"`
	ItemSKU          string          `gorm:"type:varchar(50)"`
	CountedQuantity  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	SnapshotQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Variance         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Notes            string          `gorm:"type:varchar(500)"`
	CreatedAt        time.Time       `gorm:"not null"`
	UpdatedAt        time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CountLineModel) TableName() string {
	return "stock_count_lines"
}

// ToDomain converts the persistence model to a domain CountLine.
func (m *CountLineModel) ToDomain() *counting.CountLine {
	return &counting.CountLine{
		ID:               m.ID,
		SessionID:        m.SessionID,
		ItemID:           m.ItemID,
		ItemName:         m.ItemName,
		ItemSKU:          m.ItemSKU,
		CountedQuantity:  m.CountedQuantity,
		SnapshotQuantity: m.SnapshotQuantity,
		Variance:         m.Variance,
		Notes:            m.Notes,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain CountLine.
func (m *CountLineModel) FromDomain(l *counting.CountLine) {
	m.ID = l.ID
	m.SessionID = l.SessionID
	m.ItemID = l.ItemID
	m.ItemName = l.ItemName
	m.ItemSKU = l.ItemSKU
	m.CountedQuantity = l.CountedQuantity
	m.SnapshotQuantity = l.SnapshotQuantity
	m.Variance = l.Variance
	m.Notes = l.Notes
	m.CreatedAt = l.CreatedAt
	m.UpdatedAt = l.UpdatedAt
}

// CountLineModelFromDomain creates a new persistence model from a domain CountLine.
func CountLineModelFromDomain(l *counting.CountLine) *CountLineModel {
	m := &CountLineModel{}
	m.FromDomain(l)
	return m
}
