package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/restsoft-app/restsoft-pos/models"
)

// Store is the single owner of everything that survives a restart of
// the terminal: chosen role, session snapshot, registered admin users,
// employee credentials, recovery codes and the configured table count.
// Nothing else in the program touches the database.
type Store struct {
	db *gorm.DB
}

// One row per key; values are JSON.
const (
	keyRole      = "role"
	keySession   = "session"
	keyUsers     = "users"
	keyEmployees = "employees"
	keyRecovery  = "recovery"
	keyTables    = "mesasCount"
)

type entry struct {
	Key       string `gorm:"primaryKey;type:varchar(64)"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

// StoredUser is a registered admin account. Password is a bcrypt hash.
type StoredUser struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
	Phone        string `json:"phone"`
	Country      string `json:"country"`
	BusinessName string `json:"business_name"`
}

// EmployeeCredential is a local login for the employee role. There is
// no self-service registration for these; an admin provisions them.
type EmployeeCredential struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
	Phone        string `json:"phone,omitempty"`
}

type RecoveryCode struct {
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
}

func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if err := db.AutoMigrate(&entry{}); err != nil {
		return nil, fmt.Errorf("migrate store: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) get(key string, out interface{}) (bool, error) {
	var e entry
	err := s.db.First(&e, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(e.Value), out); err != nil {
		return false, fmt.Errorf("decode stored %s: %w", key, err)
	}
	return true, nil
}

func (s *Store) set(key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.db.Save(&entry{Key: key, Value: string(raw), UpdatedAt: time.Now()}).Error
}

func (s *Store) clear(key string) error {
	return s.db.Delete(&entry{}, "key = ?", key).Error
}

func (s *Store) Role() (string, bool) {
	var role string
	ok, err := s.get(keyRole, &role)
	if err != nil || !ok {
		return "", false
	}
	return role, true
}

func (s *Store) SetRole(role string) error { return s.set(keyRole, role) }
func (s *Store) ClearRole() error          { return s.clear(keyRole) }

func (s *Store) Session() (*models.User, bool) {
	var u models.User
	ok, err := s.get(keySession, &u)
	if err != nil || !ok {
		return nil, false
	}
	return &u, true
}

func (s *Store) SetSession(u models.User) error { return s.set(keySession, u) }
func (s *Store) ClearSession() error            { return s.clear(keySession) }

func (s *Store) Users() ([]StoredUser, error) {
	var users []StoredUser
	if _, err := s.get(keyUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Store) SaveUsers(users []StoredUser) error { return s.set(keyUsers, users) }

func (s *Store) Employees() ([]EmployeeCredential, error) {
	var employees []EmployeeCredential
	if _, err := s.get(keyEmployees, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

func (s *Store) SaveEmployees(employees []EmployeeCredential) error {
	return s.set(keyEmployees, employees)
}

func (s *Store) RecoveryCodes() (map[string]RecoveryCode, error) {
	codes := make(map[string]RecoveryCode)
	if _, err := s.get(keyRecovery, &codes); err != nil {
		return nil, err
	}
	return codes, nil
}

func (s *Store) SaveRecoveryCodes(codes map[string]RecoveryCode) error {
	return s.set(keyRecovery, codes)
}

func (s *Store) TableCount() (int, bool) {
	var n int
	ok, err := s.get(keyTables, &n)
	if err != nil || !ok || n < 1 {
		return 0, false
	}
	return n, true
}

func (s *Store) SetTableCount(n int) error { return s.set(keyTables, n) }
