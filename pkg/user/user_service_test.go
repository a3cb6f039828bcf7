package user

import (
	"EchoForge-Backend/domain"
	"EchoForge-Backend/entities"
	"EchoForge-Backend/pkg/jwt"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupService(t *testing.T) (UserService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&entities.User{}))
	return NewUserService(NewUserRepository(db), jwt.NewJWTService()), db
}

func TestRegister(t *testing.T) {
	service, db := setupService(t)
	ctx := context.Background()

	res, err := service.Register(ctx, domain.RegisterRequest{
		Name:     "Morgan",
		Email:    "morgan@example.com",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PlanFree, res.Plan)
	assert.Equal(t, domain.RoleUser, res.Role)

	// Passwords are stored hashed.
	var stored entities.User
	require.NoError(t, db.Where("email = ?", "morgan@example.com").First(&stored).Error)
	assert.NotEqual(t, "correct-horse-battery", stored.Password)

	_, err = service.Register(ctx, domain.RegisterRequest{
		Name:     "Morgan Again",
		Email:    "morgan@example.com",
		Password: "another-password",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin(t *testing.T) {
	service, _ := setupService(t)
	ctx := context.Background()

	_, err := service.Register(ctx, domain.RegisterRequest{
		Name:     "Morgan",
		Email:    "morgan@example.com",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)

	t.Run("valid credentials return a token", func(t *testing.T) {
		res, err := service.Login(ctx, domain.LoginRequest{
			Email:    "morgan@example.com",
			Password: "correct-horse-battery",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, res.Token)
		assert.Equal(t, domain.RoleUser, res.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := service.Login(ctx, domain.LoginRequest{
			Email:    "morgan@example.com",
			Password: "wrong",
		})
		assert.ErrorIs(t, err, domain.ErrCredentialsInvalid)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := service.Login(ctx, domain.LoginRequest{
			Email:    "nobody@example.com",
			Password: "whatever",
		})
		assert.ErrorIs(t, err, domain.ErrCredentialsInvalid)
	})
}

func TestMe(t *testing.T) {
	service, db := setupService(t)
	ctx := context.Background()

	user := &entities.User{
		ID:                uuid.New(),
		Name:              "Morgan",
		Email:             "me@example.com",
		Plan:              domain.PlanPayAsYouGo,
		Role:              domain.RoleUser,
		TokenBalanceMicro: 1_500_000,
	}
	require.NoError(t, db.Create(user).Error)

	res, err := service.Me(ctx, user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, user.Email, res.Email)
	assert.Equal(t, int64(1_500_000), res.TokenBalanceMicro)

	_, err = service.Me(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUpdateMe(t *testing.T) {
	service, db := setupService(t)
	ctx := context.Background()

	registered, err := service.Register(ctx, domain.RegisterRequest{
		Name:     "Morgan",
		Email:    "morgan@example.com",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)

	res, err := service.UpdateMe(ctx, registered.ID, domain.UpdateMeRequest{
		Name:     "Morgan Renamed",
		Password: "a-brand-new-secret",
	})
	require.NoError(t, err)
	assert.Equal(t, "Morgan Renamed", res.Name)

	// The new password is usable for login, the old one is not.
	_, err = service.Login(ctx, domain.LoginRequest{
		Email:    "morgan@example.com",
		Password: "a-brand-new-secret",
	})
	assert.NoError(t, err)

	_, err = service.Login(ctx, domain.LoginRequest{
		Email:    "morgan@example.com",
		Password: "correct-horse-battery",
	})
	assert.ErrorIs(t, err, domain.ErrCredentialsInvalid)

	var stored entities.User
	require.NoError(t, db.Where("email = ?", "morgan@example.com").First(&stored).Error)
	assert.Equal(t, "Morgan Renamed", stored.Name)

	_, err = service.UpdateMe(ctx, uuid.NewString(), domain.UpdateMeRequest{Name: "ghost"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
