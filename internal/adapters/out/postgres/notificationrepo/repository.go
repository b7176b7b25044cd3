// Package notificationrepo is the notification_log outbox.
package notificationrepo

import (
	"context"
	"time"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/notification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Kind      string    `gorm:"type:varchar(32);not null"`
	Recipient string    `gorm:"type:varchar(255);not null"`
	Subject   string    `gorm:"type:varchar(255);not null"`
	Body      string    `gorm:"type:text"`
	Status    string    `gorm:"type:varchar(16);not null;index"`
	LastError string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null;index"`
	SentAt    *time.Time
}

func (MessageDTO) TableName() string {
	return "notification_log"
}

type GormNotificationRepository struct {
	db *gorm.DB
}

func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

func (r *GormNotificationRepository) Enqueue(ctx context.Context, message *notification.Message) error {
	if err := message.Validate(); err != nil {
		return err
	}

	dto := fromDomain(message)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormNotificationRepository) Update(ctx context.Context, message *notification.Message) error {
	if err := message.Validate(); err != nil {
		return err
	}

	dto := fromDomain(message)
	result := r.db.WithContext(ctx).Model(&MessageDTO{}).Where("id = ?", dto.ID).
		Select("status", "last_error", "sent_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormNotificationRepository) ListQueued(ctx context.Context, limit int) ([]*notification.Message, error) {
	var dtos []MessageDTO
	err := r.db.WithContext(ctx).
		Where("status = ?", string(notification.StatusQueued)).
		Order("created_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	messages := make([]*notification.Message, 0, len(dtos))
	for _, dto := range dtos {
		m, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		messages = append(messages, m)
	}
	return messages, nil
}

func fromDomain(m *notification.Message) MessageDTO {
	return MessageDTO{
		ID:        m.ID().Bytes(),
		OrderID:   m.OrderID().Bytes(),
		Kind:      string(m.Kind()),
		Recipient: m.Recipient(),
		Subject:   m.Subject(),
		Body:      m.Body(),
		Status:    string(m.Status()),
		LastError: m.LastError(),
		CreatedAt: m.CreatedAt(),
		SentAt:    m.SentAt(),
	}
}

func toDomain(dto MessageDTO) (*notification.Message, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	return notification.RestoreMessage(notification.MessageRecord{
		ID:        id,
		OrderID:   orderID,
		Kind:      notification.Kind(dto.Kind),
		Recipient: dto.Recipient,
		Subject:   dto.Subject,
		Body:      dto.Body,
		Status:    notification.Status(dto.Status),
		LastError: dto.LastError,
		CreatedAt: dto.CreatedAt,
		SentAt:    dto.SentAt,
	})
}
