package title

import (
	"context"
	"testing"
	"time"

	"titlerate/backend/internal/entity"
	categoryRepo "titlerate/backend/internal/modules/category/repository"
	genreRepo "titlerate/backend/internal/modules/genre/repository"
	"titlerate/backend/internal/modules/title/dto"
	"titlerate/backend/internal/modules/title/repository"
	"titlerate/backend/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.Category{},
		&entity.Genre{},
		&entity.Title{},
		&entity.Review{},
		&entity.Comment{},
	))
	return db
}

func newTitleService(db *gorm.DB) TitleService {
	return NewTitleService(
		repository.NewTitleRepository(db),
		genreRepo.NewGenreRepository(db),
		categoryRepo.NewCategoryRepository(db),
	)
}

func seedGenre(t *testing.T, db *gorm.DB, name, slug string) *entity.Genre {
	t.Helper()
	genre := &entity.Genre{Name: name, Slug: slug}
	require.NoError(t, db.Create(genre).Error)
	return genre
}

func seedCategory(t *testing.T, db *gorm.DB, name, slug string) *entity.Category {
	t.Helper()
	category := &entity.Category{Name: name, Slug: slug}
	require.NoError(t, db.Create(category).Error)
	return category
}

func seedReview(t *testing.T, db *gorm.DB, titleID uuid.UUID, username string, score int) {
	t.Helper()

	user := &entity.User{Username: username, Email: username + "@example.com"}
	require.NoError(t, db.Create(user).Error)
	review := &entity.Review{TitleID: titleID, AuthorID: user.ID, Text: "t", Score: score}
	require.NoError(t, db.Omit("Author").Create(review).Error)
}

func TestCreateTitleResolvesGenresAndCategory(t *testing.T) {
	db := newTestDB(t)
	svc := newTitleService(db)
	seedGenre(t, db, "Drama", "drama")
	seedCategory(t, db, "Movies", "movie")

	resp, err := svc.CreateTitle(context.Background(), dto.CreateTitleRequest{
		Name:     "Solaris",
		Year:     1972,
		Genres:   []string{"drama"},
		Category: "movie",
	})
	require.NoError(t, err)

	assert.Equal(t, "Solaris", resp.Name)
	require.NotNil(t, resp.Category)
	assert.Equal(t, "movie", resp.Category.Slug)
	require.Len(t, resp.Genres, 1)
	assert.Equal(t, "drama", resp.Genres[0].Slug)
	assert.Nil(t, resp.Rating)
}

func TestCreateTitleWithoutCategory(t *testing.T) {
	db := newTestDB(t)
	svc := newTitleService(db)
	seedGenre(t, db, "Drama", "drama")

	resp, err := svc.CreateTitle(context.Background(), dto.CreateTitleRequest{
		Name:   "Solaris",
		Year:   1972,
		Genres: []string{"drama"},
	})
	require.NoError(t, err)
	assert.Nil(t, resp.Category)
}

func TestCreateTitleUnknownGenreRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newTitleService(db)
	seedGenre(t, db, "Drama", "drama")

	_, err := svc.CreateTitle(context.Background(), dto.CreateTitleRequest{
		Name:   "Solaris",
		Year:   1972,
		Genres: []string{"drama", "noir"},
	})
	require.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.Contains(t, err.Error(), "noir")
}

func TestCreateTitleFutureYearRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newTitleService(db)
	seedGenre(t, db, "Drama", "drama")

	_, err := svc.CreateTitle(context.Background(), dto.CreateTitleRequest{
		Name:   "Unreleased",
		Year:   time.Now().Year() + 1,
		Genres: []string{"drama"},
	})
	require.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestRatingIsMeanOfScores(t *testing.T) {
	db := newTestDB(t)
	svc := newTitleService(db)
	seedGenre(t, db, "Drama", "drama")
	ctx := context.Background()

	created, err := svc.CreateTitle(ctx, dto.CreateTitleRequest{Name: "Solaris", Year: 1972, Genres: []string{"drama"}})
	require.NoError(t, err)

	seedReview(t, db, created.ID, "one", 6)
	seedReview(t, db, created.ID, "two", 8)
	seedReview(t, db, created.ID, "three", 10)

	resp, err := svc.GetTitle(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, resp.Rating)
	assert.InDelta(t, 8.0, *resp.Rating, 0.001)
}

func TestRatingNilWithoutReviews(t *testing.T) {
	db := newTestDB(t)
	svc := newTitleService(db)
	seedGenre(t, db, "Drama", "drama")
	ctx := context.Background()

	created, err := svc.CreateTitle(ctx, dto.CreateTitleRequest{Name: "Solaris", Year: 1972, Genres: []string{"drama"}})
	require.NoError(t, err)

	resp, err := svc.GetTitle(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, resp.Rating)
}

func TestGetAllTitlesFilters(t *testing.T) {
	db := newTestDB(t)
	svc := newTitleService(db)
	seedGenre(t, db, "Drama", "drama")
	seedGenre(t, db, "Comedy", "comedy")
	seedCategory(t, db, "Movies", "movie")
	ctx := context.Background()

	_, err := svc.CreateTitle(ctx, dto.CreateTitleRequest{Name: "Solaris", Year: 1972, Genres: []string{"drama"}, Category: "movie"})
	require.NoError(t, err)
	_, err = svc.CreateTitle(ctx, dto.CreateTitleRequest{Name: "Airplane!", Year: 1980, Genres: []string{"comedy"}, Category: "movie"})
	require.NoError(t, err)

	byGenre, err := svc.GetAllTitles(ctx, dto.TitleFilter{Genre: "drama"})
	require.NoError(t, err)
	require.Len(t, byGenre.Data, 1)
	assert.Equal(t, "Solaris", byGenre.Data[0].Name)
	assert.EqualValues(t, 1, byGenre.Meta.TotalItems)

	byCategory, err := svc.GetAllTitles(ctx, dto.TitleFilter{Category: "movie"})
	require.NoError(t, err)
	assert.Len(t, byCategory.Data, 2)

	byYear, err := svc.GetAllTitles(ctx, dto.TitleFilter{Year: 1980})
	require.NoError(t, err)
	require.Len(t, byYear.Data, 1)
	assert.Equal(t, "Airplane!", byYear.Data[0].Name)
}

func TestUpdateTitleReplacesGenresAndClearsCategory(t *testing.T) {
	db := newTestDB(t)
	svc := newTitleService(db)
	seedGenre(t, db, "Drama", "drama")
	seedGenre(t, db, "Comedy", "comedy")
	seedCategory(t, db, "Movies", "movie")
	ctx := context.Background()

	created, err := svc.CreateTitle(ctx, dto.CreateTitleRequest{Name: "Solaris", Year: 1972, Genres: []string{"drama"}, Category: "movie"})
	require.NoError(t, err)

	genres := []string{"comedy"}
	category := ""
	updated, err := svc.UpdateTitle(ctx, created.ID, dto.UpdateTitleRequest{
		Genres:   &genres,
		Category: &category,
	})
	require.NoError(t, err)

	assert.Nil(t, updated.Category)
	require.Len(t, updated.Genres, 1)
	assert.Equal(t, "comedy", updated.Genres[0].Slug)
}

func TestDeleteTitleUnknown(t *testing.T) {
	db := newTestDB(t)
	svc := newTitleService(db)

	err := svc.DeleteTitle(context.Background(), uuid.New())
	require.ErrorIs(t, err, apperror.ErrNotFound)
}
