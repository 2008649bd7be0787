package services

import (
	"context"
	"fmt"

	"backend/models"

	"gorm.io/gorm"
)

type IntakeService struct{ db *gorm.DB }

func NewIntakeService(db *gorm.DB) *IntakeService { return &IntakeService{db: db} }

// IntakeInput carries a new entry. Date defaults to today; servings to 1.
type IntakeInput struct {
	Date       string
	SourceType string
	ItemName   string
	Calories   float64
	ProteinG   *float64
	CarbsG     *float64
	FatG       *float64
	Servings   float64
	ImageURL   string
}

// IntakeUpdate uses pointers so absent fields are left untouched.
type IntakeUpdate struct {
	Date       *string  `json:"date"`
	SourceType *string  `json:"source_type"`
	ItemName   *string  `json:"item_name"`
	Calories   *float64 `json:"calories"`
	ProteinG   *float64 `json:"protein_g"`
	CarbsG     *float64 `json:"carbs_g"`
	FatG       *float64 `json:"fat_g"`
	Servings   *float64 `json:"servings"`
	ImageURL   *string  `json:"image_url"`
}

func (s *IntakeService) Add(ctx context.Context, userID uint, in IntakeInput) (*models.IntakeLog, error) {
	if in.Date == "" {
		in.Date = Today()
	}
	if in.SourceType == "" {
		in.SourceType = models.SourceManual
	}
	if in.Servings <= 0 {
		in.Servings = 1
	}

	row := models.IntakeLog{
		UserID:     userID,
		Date:       in.Date,
		SourceType: in.SourceType,
		ItemName:   in.ItemName,
		Calories:   in.Calories,
		ProteinG:   in.ProteinG,
		CarbsG:     in.CarbsG,
		FatG:       in.FatG,
		Servings:   in.Servings,
		ImageURL:   in.ImageURL,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("create intake entry: %w", err)
	}
	return &row, nil
}

func (s *IntakeService) ListByDate(ctx context.Context, userID uint, date string) ([]models.IntakeLog, error) {
	rows := make([]models.IntakeLog, 0)
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list intake entries: %w", err)
	}
	return rows, nil
}

// TotalsByDate loads the day's rows and reduces them in memory. A day with no
// rows yields the zero totals struct.
func (s *IntakeService) TotalsByDate(ctx context.Context, userID uint, date string) (DailyTotals, error) {
	rows, err := s.ListByDate(ctx, userID, date)
	if err != nil {
		return DailyTotals{}, err
	}
	return SumDailyTotals(rows), nil
}

// CalendarTotals returns per-date totals for a YYYY-MM month, sparse and
// ascending by date.
func (s *IntakeService) CalendarTotals(ctx context.Context, userID uint, month string) ([]DateTotals, error) {
	var rows []models.IntakeLog
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date LIKE ?", userID, month+"%").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load month intake: %w", err)
	}
	return GroupDailyTotals(rows), nil
}

func (s *IntakeService) Update(ctx context.Context, userID, id uint, in IntakeUpdate) (*models.IntakeLog, error) {
	var row models.IntakeLog
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&row).Error
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load intake entry: %w", err)
	}

	if in.Date != nil {
		row.Date = *in.Date
	}
	if in.SourceType != nil {
		row.SourceType = *in.SourceType
	}
	if in.ItemName != nil {
		row.ItemName = *in.ItemName
	}
	if in.Calories != nil {
		row.Calories = *in.Calories
	}
	if in.ProteinG != nil {
		row.ProteinG = in.ProteinG
	}
	if in.CarbsG != nil {
		row.CarbsG = in.CarbsG
	}
	if in.FatG != nil {
		row.FatG = in.FatG
	}
	if in.Servings != nil {
		row.Servings = *in.Servings
	}
	if in.ImageURL != nil {
		row.ImageURL = *in.ImageURL
	}

	if err := s.db.WithContext(ctx).Save(&row).Error; err != nil {
		return nil, fmt.Errorf("update intake entry: %w", err)
	}
	return &row, nil
}

func (s *IntakeService) Delete(ctx context.Context, userID, id uint) (string, error) {
	var row models.IntakeLog
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&row).Error
	if err != nil {
		if isNotFound(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("load intake entry: %w", err)
	}
	if err := s.db.WithContext(ctx).Delete(&row).Error; err != nil {
		return "", fmt.Errorf("delete intake entry: %w", err)
	}
	return row.Date, nil
}

// FrequentItem is an aggregated view of repeatedly logged item names.
type FrequentItem struct {
	ItemName    string  `json:"item_name"`
	SourceType  string  `json:"source_type"`
	Count       int64   `json:"count"`
	AvgCalories float64 `json:"avg_calories"`
	AvgProtein  float64 `json:"avg_protein"`
	AvgCarbs    float64 `json:"avg_carbs"`
	AvgFat      float64 `json:"avg_fat"`
}

func (s *IntakeService) Frequent(ctx context.Context, userID uint, limit int) ([]FrequentItem, error) {
	if limit <= 0 {
		limit = 20
	}
	items := make([]FrequentItem, 0)
	err := s.db.WithContext(ctx).
		Model(&models.IntakeLog{}).
		Select(`item_name,
			MAX(source_type) AS source_type,
			COUNT(*) AS count,
			AVG(calories) AS avg_calories,
			AVG(COALESCE(protein_g, 0)) AS avg_protein,
			AVG(COALESCE(carbs_g, 0)) AS avg_carbs,
			AVG(COALESCE(fat_g, 0)) AS avg_fat`).
		Where("user_id = ?", userID).
		Group("item_name").
		Order("count DESC").
		Limit(limit).
		Scan(&items).Error
	if err != nil {
		return nil, fmt.Errorf("aggregate frequent items: %w", err)
	}
	return items, nil
}
