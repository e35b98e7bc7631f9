package infrastructure

import (
	"context"
	"errors"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/mateusmacedo/go-layers/internal/busticket/domain"
	"github.com/mateusmacedo/go-layers/pkg/application"
)

type gormBusTicketRepository struct {
	db     *gorm.DB
	logger application.AppLogger
}

// NewGormBusTicketRepository abre a conexão PostgreSQL e migra a tabela de passagens.
func NewGormBusTicketRepository(dsn string, logger application.AppLogger) (domain.BusTicketRepository, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}
	return NewGormBusTicketRepositoryFromDB(db, logger)
}

func NewGormBusTicketRepositoryFromDB(db *gorm.DB, logger application.AppLogger) (domain.BusTicketRepository, error) {
	if err := db.AutoMigrate(&domain.BusTicket{}); err != nil {
		return nil, err
	}

	return &gormBusTicketRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormBusTicketRepository) Save(ctx context.Context, busTicket domain.BusTicket) error {
	if err := r.db.WithContext(ctx).Create(&busTicket).Error; err != nil {
		application.LogError(ctx, r.logger, "failed to save busTicket", err, map[string]interface{}{
			"busTicket": busTicket,
		})
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return r.duplicateError(ctx, busTicket)
		}
		return err
	}

	application.LogInfo(ctx, r.logger, "busTicket saved", map[string]interface{}{
		"busTicket": busTicket,
	})
	return nil
}

// duplicateError diferencia colisão de chave primária de assento já ocupado.
func (r *gormBusTicketRepository) duplicateError(ctx context.Context, busTicket domain.BusTicket) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.BusTicket{}).Where("id = ?", busTicket.ID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrBusTicketAlreadyExists
	}
	return domain.ErrSeatAlreadyTaken
}

func (r *gormBusTicketRepository) FindByPassengerName(ctx context.Context, passengerName string) ([]domain.BusTicket, error) {
	var busTickets []domain.BusTicket

	if err := r.db.WithContext(ctx).
		Where("passenger_name = ?", passengerName).
		Order("departure_time, seat_number").
		Find(&busTickets).Error; err != nil {
		application.LogError(ctx, r.logger, "failed to find busTickets", err, map[string]interface{}{
			"passengerName": passengerName,
		})
		return nil, err
	}

	application.LogInfo(ctx, r.logger, "busTickets found", map[string]interface{}{
		"passengerName": passengerName,
		"count":         len(busTickets),
	})

	return busTickets, nil
}
