package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"salonbook/internal/domain"
)

type StaffRepository struct {
	db *gorm.DB
}

func NewStaffRepository(db *gorm.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

type staffModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	SalonID   string    `gorm:"column:salon_id;index"`
	Name      string    `gorm:"column:name"`
	PhotoURL  string    `gorm:"column:photo_url"`
	IsActive  bool      `gorm:"column:is_active"`
	SortOrder int       `gorm:"column:sort_order"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (staffModel) TableName() string { return "staff" }

type staffScheduleModel struct {
	ID        string `gorm:"column:id;primaryKey"`
	StaffID   string `gorm:"column:staff_id;uniqueIndex:idx_staff_dow"`
	DayOfWeek int    `gorm:"column:day_of_week;uniqueIndex:idx_staff_dow"`
	StartTime string `gorm:"column:start_time"`
	EndTime   string `gorm:"column:end_time"`
	IsWorking bool   `gorm:"column:is_working"`
}

func (staffScheduleModel) TableName() string { return "staff_schedules" }

type staffBlockModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	StaffID   string    `gorm:"column:staff_id;index"`
	StartAt   time.Time `gorm:"column:start_at"`
	EndAt     time.Time `gorm:"column:end_at"`
	Reason    string    `gorm:"column:reason"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (staffBlockModel) TableName() string { return "staff_blocks" }

func toDomainStaff(m staffModel) *domain.Staff {
	return &domain.Staff{
		ID:        m.ID,
		SalonID:   m.SalonID,
		Name:      m.Name,
		PhotoURL:  m.PhotoURL,
		IsActive:  m.IsActive,
		SortOrder: m.SortOrder,
		CreatedAt: m.CreatedAt,
	}
}

func (r *StaffRepository) Create(ctx context.Context, s *domain.Staff) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	m := staffModel{
		ID:        s.ID,
		SalonID:   s.SalonID,
		Name:      s.Name,
		PhotoURL:  s.PhotoURL,
		IsActive:  s.IsActive,
		SortOrder: s.SortOrder,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	s.CreatedAt = m.CreatedAt
	return nil
}

func (r *StaffRepository) GetByID(ctx context.Context, id string) (*domain.Staff, error) {
	var m staffModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toDomainStaff(m), nil
}

func (r *StaffRepository) ListActiveBySalon(ctx context.Context, salonID string) ([]domain.Staff, error) {
	var rows []staffModel
	err := r.db.WithContext(ctx).
		Where("salon_id = ? AND is_active = ?", salonID, true).
		Order("sort_order ASC, name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.Staff, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainStaff(m))
	}
	return out, nil
}

// UpsertSchedule saves a weekly schedule entry with at-most-one-per
// (staff, day-of-week) semantics.
func (r *StaffRepository) UpsertSchedule(ctx context.Context, s *domain.StaffSchedule) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	m := staffScheduleModel{
		ID:        s.ID,
		StaffID:   s.StaffID,
		DayOfWeek: s.DayOfWeek,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		IsWorking: s.IsWorking,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "staff_id"}, {Name: "day_of_week"}},
		DoUpdates: clause.AssignmentColumns([]string{"start_time", "end_time", "is_working"}),
	}).Create(&m).Error
}

func (r *StaffRepository) ListSchedules(ctx context.Context, staffIDs []string) ([]domain.StaffSchedule, error) {
	if len(staffIDs) == 0 {
		return nil, nil
	}
	var rows []staffScheduleModel
	err := r.db.WithContext(ctx).Where("staff_id IN ?", staffIDs).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.StaffSchedule, 0, len(rows))
	for _, m := range rows {
		out = append(out, domain.StaffSchedule{
			ID:        m.ID,
			StaffID:   m.StaffID,
			DayOfWeek: m.DayOfWeek,
			StartTime: m.StartTime,
			EndTime:   m.EndTime,
			IsWorking: m.IsWorking,
		})
	}
	return out, nil
}

func (r *StaffRepository) CreateBlock(ctx context.Context, b *domain.StaffBlock) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	m := staffBlockModel{
		ID:      b.ID,
		StaffID: b.StaffID,
		StartAt: b.StartAt,
		EndAt:   b.EndAt,
		Reason:  b.Reason,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	b.CreatedAt = m.CreatedAt
	return nil
}

func (r *StaffRepository) GetBlock(ctx context.Context, id string) (*domain.StaffBlock, error) {
	var m staffBlockModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &domain.StaffBlock{
		ID:        m.ID,
		StaffID:   m.StaffID,
		StartAt:   m.StartAt,
		EndAt:     m.EndAt,
		Reason:    m.Reason,
		CreatedAt: m.CreatedAt,
	}, nil
}

func (r *StaffRepository) DeleteBlock(ctx context.Context, id string) error {
	tx := r.db.WithContext(ctx).Where("id = ?", id).Delete(&staffBlockModel{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListBlocksInRange returns blocks for the given staff that intersect
// [from, to).
func (r *StaffRepository) ListBlocksInRange(ctx context.Context, staffIDs []string, from, to time.Time) ([]domain.StaffBlock, error) {
	if len(staffIDs) == 0 {
		return nil, nil
	}
	var rows []staffBlockModel
	err := r.db.WithContext(ctx).
		Where("staff_id IN ? AND start_at < ? AND end_at > ?", staffIDs, to, from).
		Order("start_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.StaffBlock, 0, len(rows))
	for _, m := range rows {
		out = append(out, domain.StaffBlock{
			ID:        m.ID,
			StaffID:   m.StaffID,
			StartAt:   m.StartAt,
			EndAt:     m.EndAt,
			Reason:    m.Reason,
			CreatedAt: m.CreatedAt,
		})
	}
	return out, nil
}
