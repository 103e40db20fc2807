package review

import (
	"context"
	"testing"
	"time"

	"titlerate/backend/internal/entity"
	"titlerate/backend/internal/modules/review/dto"
	"titlerate/backend/internal/modules/review/repository"
	titleRepo "titlerate/backend/internal/modules/title/repository"
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

func newReviewService(db *gorm.DB) ReviewService {
	return NewReviewService(repository.NewReviewRepository(db), titleRepo.NewTitleRepository(db), nil, time.Second)
}

func seedUser(t *testing.T, db *gorm.DB, username string, role entity.Role) *entity.User {
	t.Helper()

	user := &entity.User{
		Username: username,
		Email:    username + "@example.com",
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedTitle(t *testing.T, db *gorm.DB, name string) *entity.Title {
	t.Helper()

	title := &entity.Title{Name: name, Year: 2001}
	require.NoError(t, db.Create(title).Error)
	return title
}

func TestCreateReviewStampsAuthorAndDate(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService(db)
	author := seedUser(t, db, "reader", entity.RoleUser)
	title := seedTitle(t, db, "Solaris")

	resp, err := svc.CreateReview(context.Background(), author, title.ID, dto.CreateReviewRequest{Text: "slow but great", Score: 9})
	require.NoError(t, err)

	assert.Equal(t, "reader", resp.Author)
	assert.Equal(t, title.ID, resp.TitleID)
	assert.Equal(t, 9, resp.Score)
	assert.False(t, resp.PubDate.IsZero())
}

func TestCreateReviewSecondForSameTitleRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService(db)
	author := seedUser(t, db, "reader", entity.RoleUser)
	title := seedTitle(t, db, "Solaris")
	ctx := context.Background()

	_, err := svc.CreateReview(ctx, author, title.ID, dto.CreateReviewRequest{Text: "first take", Score: 7})
	require.NoError(t, err)

	_, err = svc.CreateReview(ctx, author, title.ID, dto.CreateReviewRequest{Text: "second take", Score: 3})
	require.ErrorIs(t, err, apperror.ErrInvalidInput)

	var count int64
	require.NoError(t, db.Model(&entity.Review{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCreateReviewDistinctAuthorsAllowed(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService(db)
	title := seedTitle(t, db, "Solaris")
	ctx := context.Background()

	for _, username := range []string{"one", "two", "three"} {
		author := seedUser(t, db, username, entity.RoleUser)
		_, err := svc.CreateReview(ctx, author, title.ID, dto.CreateReviewRequest{Text: "fine", Score: 5})
		require.NoError(t, err)
	}

	var count int64
	require.NoError(t, db.Model(&entity.Review{}).Count(&count).Error)
	assert.EqualValues(t, 3, count)
}

func TestCreateReviewUnknownTitle(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService(db)
	author := seedUser(t, db, "reader", entity.RoleUser)

	_, err := svc.CreateReview(context.Background(), author, uuid.New(), dto.CreateReviewRequest{Text: "where", Score: 5})
	require.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestCreateReviewStripsMarkup(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService(db)
	author := seedUser(t, db, "reader", entity.RoleUser)
	title := seedTitle(t, db, "Solaris")

	resp, err := svc.CreateReview(context.Background(), author, title.ID, dto.CreateReviewRequest{
		Text:  `<b>bold</b> move<script>alert(1)</script>`,
		Score: 6,
	})
	require.NoError(t, err)
	assert.Equal(t, "bold move", resp.Text)
}

func TestUpdateReviewByAuthor(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService(db)
	author := seedUser(t, db, "reader", entity.RoleUser)
	title := seedTitle(t, db, "Solaris")
	ctx := context.Background()

	created, err := svc.CreateReview(ctx, author, title.ID, dto.CreateReviewRequest{Text: "ok", Score: 5})
	require.NoError(t, err)

	score := 8
	updated, err := svc.UpdateReview(ctx, author, title.ID, created.ID, dto.UpdateReviewRequest{Score: &score})
	require.NoError(t, err)
	assert.Equal(t, 8, updated.Score)
	assert.Equal(t, "ok", updated.Text)
}

func TestUpdateReviewByStrangerForbidden(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService(db)
	author := seedUser(t, db, "reader", entity.RoleUser)
	stranger := seedUser(t, db, "stranger", entity.RoleUser)
	title := seedTitle(t, db, "Solaris")
	ctx := context.Background()

	created, err := svc.CreateReview(ctx, author, title.ID, dto.CreateReviewRequest{Text: "mine", Score: 5})
	require.NoError(t, err)

	score := 1
	_, err = svc.UpdateReview(ctx, stranger, title.ID, created.ID, dto.UpdateReviewRequest{Score: &score})
	require.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestUpdateReviewByModerator(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService(db)
	author := seedUser(t, db, "reader", entity.RoleUser)
	moderator := seedUser(t, db, "mod", entity.RoleModerator)
	title := seedTitle(t, db, "Solaris")
	ctx := context.Background()

	created, err := svc.CreateReview(ctx, author, title.ID, dto.CreateReviewRequest{Text: "spam spam", Score: 10})
	require.NoError(t, err)

	text := "removed by moderation"
	updated, err := svc.UpdateReview(ctx, moderator, title.ID, created.ID, dto.UpdateReviewRequest{Text: &text})
	require.NoError(t, err)
	assert.Equal(t, "removed by moderation", updated.Text)
}

func TestDeleteReviewPermissions(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService(db)
	author := seedUser(t, db, "reader", entity.RoleUser)
	stranger := seedUser(t, db, "stranger", entity.RoleUser)
	admin := seedUser(t, db, "boss", entity.RoleAdmin)
	title := seedTitle(t, db, "Solaris")
	ctx := context.Background()

	created, err := svc.CreateReview(ctx, author, title.ID, dto.CreateReviewRequest{Text: "gone soon", Score: 2})
	require.NoError(t, err)

	err = svc.DeleteReview(ctx, stranger, title.ID, created.ID)
	require.ErrorIs(t, err, apperror.ErrForbidden)

	require.NoError(t, svc.DeleteReview(ctx, admin, title.ID, created.ID))

	_, err = svc.GetReview(ctx, title.ID, created.ID)
	require.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestGetReviewThroughForeignTitlePath(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService(db)
	author := seedUser(t, db, "reader", entity.RoleUser)
	title := seedTitle(t, db, "Solaris")
	other := seedTitle(t, db, "Stalker")
	ctx := context.Background()

	created, err := svc.CreateReview(ctx, author, title.ID, dto.CreateReviewRequest{Text: "here", Score: 5})
	require.NoError(t, err)

	_, err = svc.GetReview(ctx, other.ID, created.ID)
	require.ErrorIs(t, err, apperror.ErrNotFound)
}
