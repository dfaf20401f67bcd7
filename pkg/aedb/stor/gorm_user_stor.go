package stor

import (
	"github.com/astroedu/astroedu/pkg/aedb/aemodel"
	"github.com/hashicorp/go-uuid"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type GormUserStor struct {
	db *gorm.DB
}

func NewGormUserStor(db *gorm.DB) *GormUserStor {
	return &GormUserStor{db: db}
}

// CreateUser hashes the (plaintext) password and generates an API token.
func (s *GormUserStor) CreateUser(user *aemodel.User) (*aemodel.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "hashing password")
	}
	user.Password = string(hashed)

	if user.APIToken, err = uuid.GenerateUUID(); err != nil {
		return nil, err
	}

	err = WithTxRetry(s.db, func(tx *gorm.DB) error {
		return tx.Create(user).Error
	})
	if err != nil {
		return nil, errors.Wrapf(err, "creating user %s", user.Email)
	}

	return user, nil
}

func (s *GormUserStor) GetUserByEmail(email string) (*aemodel.User, error) {
	var user aemodel.User

	err := s.db.Where("email = ?", email).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrNotFound
	case err != nil:
		return nil, errors.Wrapf(err, "getting user %s", email)
	}

	return &user, nil
}

func (s *GormUserStor) GetUserByAPIToken(apitoken string) (*aemodel.User, error) {
	var user aemodel.User

	err := s.db.Where("api_token = ?", apitoken).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrNotFound
	case err != nil:
		return nil, errors.Wrap(err, "getting user by api token")
	}

	return &user, nil
}
