package stor

import (
	"github.com/astroedu/astroedu/pkg/aedb/aemodel"
	"github.com/hashicorp/go-uuid"
	"golang.org/x/crypto/bcrypt"
)

type InMemoryUserStor struct {
	users []aemodel.User
}

func NewInMemoryUserStor(users []aemodel.User) *InMemoryUserStor {
	return &InMemoryUserStor{users: users}
}

func (s *InMemoryUserStor) CreateUser(user *aemodel.User) (*aemodel.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.Password = string(hashed)

	if user.APIToken, err = uuid.GenerateUUID(); err != nil {
		return nil, err
	}

	user.ID = len(s.users) + 1
	s.users = append(s.users, *user)
	return user, nil
}

func (s *InMemoryUserStor) GetUserByEmail(email string) (*aemodel.User, error) {
	for i := range s.users {
		if s.users[i].Email == email {
			return &s.users[i], nil
		}
	}
	return nil, ErrNotFound
}

func (s *InMemoryUserStor) GetUserByAPIToken(apitoken string) (*aemodel.User, error) {
	for i := range s.users {
		if s.users[i].APIToken == apitoken {
			return &s.users[i], nil
		}
	}
	return nil, ErrNotFound
}
