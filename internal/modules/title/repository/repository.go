package repository

import (
	"context"
	"database/sql"

	"titlerate/backend/internal/entity"
	"titlerate/backend/internal/modules/title/dto"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TitleRepository interface {
	Create(ctx context.Context, title *entity.Title) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Title, error)
	FindAll(ctx context.Context, filter dto.TitleFilter) ([]*entity.Title, int64, error)
	Update(ctx context.Context, title *entity.Title, genres []entity.Genre) error
	Delete(ctx context.Context, id uuid.UUID) error
	AverageScore(ctx context.Context, titleID uuid.UUID) (*float64, error)
	AverageScores(ctx context.Context, titleIDs []uuid.UUID) (map[uuid.UUID]float64, error)
}

type titleRepository struct {
	db *gorm.DB
}

func NewTitleRepository(db *gorm.DB) TitleRepository {
	return &titleRepository{db: db}
}

func (r *titleRepository) Create(ctx context.Context, title *entity.Title) error {
	return r.db.WithContext(ctx).Create(title).Error
}

func (r *titleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Title, error) {
	var title entity.Title
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Genres").
		First(&title, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &title, nil
}

func (r *titleRepository) FindAll(ctx context.Context, filter dto.TitleFilter) ([]*entity.Title, int64, error) {
	var titles []*entity.Title
	var total int64

	// The genre join multiplies rows, so count and select both collapse on
	// titles.id. Each query starts fresh; sharing one builder would leak the
	// count's select into the row query.
	applyFilter := func(db *gorm.DB) *gorm.DB {
		if filter.Category != "" {
			db = db.
				Joins("JOIN categories ON categories.id = titles.category_id").
				Where("categories.slug = ?", filter.Category)
		}
		if filter.Genre != "" {
			db = db.
				Joins("JOIN title_genres ON title_genres.title_id = titles.id").
				Joins("JOIN genres ON genres.id = title_genres.genre_id").
				Where("genres.slug = ?", filter.Genre)
		}
		if filter.Name != "" {
			db = db.Where("titles.name LIKE ?", "%"+filter.Name+"%")
		}
		if filter.Year != 0 {
			db = db.Where("titles.year = ?", filter.Year)
		}
		return db
	}

	if err := applyFilter(r.db.WithContext(ctx).Model(&entity.Title{})).
		Distinct("titles.id").
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := applyFilter(r.db.WithContext(ctx).Model(&entity.Title{})).
		Preload("Category").
		Preload("Genres").
		Select("titles.*").
		Group("titles.id").
		Order("titles.name").
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&titles).Error; err != nil {
		return nil, 0, err
	}

	return titles, total, nil
}

func (r *titleRepository) Update(ctx context.Context, title *entity.Title, genres []entity.Genre) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Genres").Save(title).Error; err != nil {
			return err
		}

		if genres != nil {
			if err := tx.Model(title).Association("Genres").Replace(genres); err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *titleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Title{}, "id = ?", id).Error
}

// AverageScore computes the derived rating by aggregation; nil means the
// title has no reviews yet.
func (r *titleRepository) AverageScore(ctx context.Context, titleID uuid.UUID) (*float64, error) {
	var avg sql.NullFloat64
	err := r.db.WithContext(ctx).
		Model(&entity.Review{}).
		Select("AVG(score)").
		Where("title_id = ?", titleID).
		Scan(&avg).Error
	if err != nil {
		return nil, err
	}

	if !avg.Valid {
		return nil, nil
	}
	return &avg.Float64, nil
}

func (r *titleRepository) AverageScores(ctx context.Context, titleIDs []uuid.UUID) (map[uuid.UUID]float64, error) {
	if len(titleIDs) == 0 {
		return map[uuid.UUID]float64{}, nil
	}

	var rows []struct {
		TitleID uuid.UUID
		Avg     float64
	}
	err := r.db.WithContext(ctx).
		Model(&entity.Review{}).
		Select("title_id, AVG(score) AS avg").
		Where("title_id IN ?", titleIDs).
		Group("title_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	scores := make(map[uuid.UUID]float64, len(rows))
	for _, row := range rows {
		scores[row.TitleID] = row.Avg
	}
	return scores, nil
}
