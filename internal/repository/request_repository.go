// Package repository holds the SQL access for the Requests table. Every
// method is a single autocommit statement on the injected gorm handle.
package repository

import (
	"context"
	"errors"
	"fmt"

	"bloodbank-backend/internal/models"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("request not found")

type RequestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

// Create inserts req and fills in RequestID, Status and CreatedAt.
func (r *RequestRepository) Create(ctx context.Context, req *models.BloodRequest) error {
	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		return fmt.Errorf("insert request: %w", err)
	}
	return nil
}

// FindAll returns every request, newest first. request_id breaks ties
// between rows inserted within the same timestamp tick.
func (r *RequestRepository) FindAll(ctx context.Context) ([]models.BloodRequest, error) {
	requests := []models.BloodRequest{}
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("request_id DESC").
		Find(&requests).Error
	if err != nil {
		return nil, fmt.Errorf("select requests: %w", err)
	}
	return requests, nil
}

func (r *RequestRepository) FindByID(ctx context.Context, id uint64) (*models.BloodRequest, error) {
	var req models.BloodRequest
	err := r.db.WithContext(ctx).Where("request_id = ?", id).First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select request %d: %w", id, err)
	}
	return &req, nil
}

// FindByUser never returns ErrNotFound; no match is an empty slice.
func (r *RequestRepository) FindByUser(ctx context.Context, userID string) ([]models.BloodRequest, error) {
	requests := []models.BloodRequest{}
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("select requests for user %s: %w", userID, err)
	}
	return requests, nil
}

func (r *RequestRepository) FindPending(ctx context.Context) ([]models.BloodRequest, error) {
	requests := []models.BloodRequest{}
	if err := r.db.WithContext(ctx).Where("status = ?", models.StatusPending).Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("select pending requests: %w", err)
	}
	return requests, nil
}

// UpdateUserStatus sets user_status on one row and reports how many rows
// matched. Zero is not an error.
func (r *RequestRepository) UpdateUserStatus(ctx context.Context, id uint64, status string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.BloodRequest{}).
		Where("request_id = ?", id).
		Update("user_status", status)
	if res.Error != nil {
		return 0, fmt.Errorf("update request %d: %w", id, res.Error)
	}
	return res.RowsAffected, nil
}

// Ping checks the connection for the health endpoint.
func (r *RequestRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
