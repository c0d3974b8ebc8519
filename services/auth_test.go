package services

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restsoft-app/restsoft-pos/models"
	"github.com/restsoft-app/restsoft-pos/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	return st
}

func validRegistration() RegisterRequest {
	return RegisterRequest{
		Name:         "María García",
		Email:        "maria@resto.com",
		Password:     "secreto1",
		Confirm:      "secreto1",
		Phone:        "11-2233-4455",
		Country:      "Argentina",
		BusinessName: "La Esquina",
	}
}

func TestRegisterAndSplashFlow(t *testing.T) {
	gate := NewGate(newTestStore(t), 5)

	assert.Equal(t, GateNoRole, gate.State())
	require.NoError(t, gate.ChooseRole(models.RoleAdmin))
	assert.Equal(t, GateRoleChosen, gate.State())

	require.NoError(t, gate.RegisterAdmin(validRegistration()))
	assert.Equal(t, GateSplash, gate.State())

	_, ok := gate.CurrentUser()
	assert.False(t, ok, "no session until the splash finishes")

	user, err := gate.FinishSplash()
	require.NoError(t, err)
	assert.Equal(t, GateAuthenticated, gate.State())
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.Equal(t, "La Esquina", user.BusinessName)
	assert.Equal(t, "+54 1122334455", user.Phone)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	gate := NewGate(newTestStore(t), 5)

	require.NoError(t, gate.RegisterAdmin(validRegistration()))
	_, err := gate.FinishSplash()
	require.NoError(t, err)
	gate.Logout()

	dup := validRegistration()
	dup.Email = "MARIA@resto.com"
	err = gate.RegisterAdmin(dup)
	assert.True(t, errors.Is(err, ErrDuplicateEmail))
}

func TestRegisterValidation(t *testing.T) {
	gate := NewGate(newTestStore(t), 5)

	req := validRegistration()
	req.Confirm = "otra-cosa"
	assert.True(t, errors.Is(gate.RegisterAdmin(req), ErrValidation))

	req = validRegistration()
	req.Phone = "12345"
	assert.True(t, errors.Is(gate.RegisterAdmin(req), ErrValidation))

	req = validRegistration()
	req.BusinessName = ""
	assert.True(t, errors.Is(gate.RegisterAdmin(req), ErrValidation))
}

func TestLoginAdmin(t *testing.T) {
	st := newTestStore(t)
	gate := NewGate(st, 5)
	require.NoError(t, gate.RegisterAdmin(validRegistration()))
	_, err := gate.FinishSplash()
	require.NoError(t, err)
	gate.Logout()

	assert.True(t, errors.Is(gate.LoginAdmin("maria@resto.com", "wrong"), ErrInvalidCredentials))
	assert.True(t, errors.Is(gate.LoginAdmin("nadie@resto.com", "secreto1"), ErrInvalidCredentials))

	require.NoError(t, gate.LoginAdmin("maria@resto.com", "secreto1"))
	user, err := gate.FinishSplash()
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
}

func TestEmployeeLoginNeedsProvisionedCredential(t *testing.T) {
	gate := NewGate(newTestStore(t), 5)

	assert.True(t, errors.Is(gate.LoginEmployee("mozo@resto.com", "secreto1"), ErrInvalidCredentials))

	require.NoError(t, gate.AddEmployeeCredential("Carlos", "mozo@resto.com", "secreto1", "1144556677"))
	require.NoError(t, gate.LoginEmployee("mozo@resto.com", "secreto1"))

	user, err := gate.FinishSplash()
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
}

func TestSessionRestoredAcrossRestart(t *testing.T) {
	st := newTestStore(t)
	gate := NewGate(st, 5)
	require.NoError(t, gate.RegisterAdmin(validRegistration()))
	_, err := gate.FinishSplash()
	require.NoError(t, err)

	// a fresh gate over the same store picks the session back up
	gate2 := NewGate(st, 5)
	assert.Equal(t, GateAuthenticated, gate2.State())
	user, ok := gate2.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "maria@resto.com", user.Email)
}

func TestLogoutClearsEverything(t *testing.T) {
	st := newTestStore(t)
	gate := NewGate(st, 5)
	require.NoError(t, gate.RegisterAdmin(validRegistration()))
	_, err := gate.FinishSplash()
	require.NoError(t, err)

	gate.Logout()
	assert.Equal(t, GateNoRole, gate.State())
	_, ok := gate.CurrentUser()
	assert.False(t, ok)

	gate2 := NewGate(st, 5)
	assert.Equal(t, GateNoRole, gate2.State())
}

func TestPasswordRecovery(t *testing.T) {
	gate := NewGate(newTestStore(t), 5)
	require.NoError(t, gate.RegisterAdmin(validRegistration()))
	_, err := gate.FinishSplash()
	require.NoError(t, err)
	gate.Logout()

	_, err = gate.RequestRecovery("nadie@resto.com")
	assert.True(t, errors.Is(err, ErrInvalidCredentials))

	code, err := gate.RequestRecovery("maria@resto.com")
	require.NoError(t, err)
	require.Len(t, code, 6)

	// wrong code, mismatched confirm
	assert.True(t, errors.Is(gate.ResetPassword("maria@resto.com", "000000", "nuevo123", "nuevo123"), ErrValidation))
	assert.True(t, errors.Is(gate.ResetPassword("maria@resto.com", code, "nuevo123", "otro123"), ErrValidation))

	require.NoError(t, gate.ResetPassword("maria@resto.com", code, "nuevo123", "nuevo123"))

	// the code is single use
	assert.True(t, errors.Is(gate.ResetPassword("maria@resto.com", code, "nuevo123", "nuevo123"), ErrValidation))

	assert.True(t, errors.Is(gate.LoginAdmin("maria@resto.com", "secreto1"), ErrInvalidCredentials))
	require.NoError(t, gate.LoginAdmin("maria@resto.com", "nuevo123"))
}

func TestRecoveryCodeExpires(t *testing.T) {
	gate := NewGate(newTestStore(t), 5)
	require.NoError(t, gate.RegisterAdmin(validRegistration()))
	_, err := gate.FinishSplash()
	require.NoError(t, err)
	gate.Logout()

	code, err := gate.RequestRecovery("maria@resto.com")
	require.NoError(t, err)

	gate.now = func() time.Time { return time.Now().Add(16 * time.Minute) }
	assert.True(t, errors.Is(gate.ResetPassword("maria@resto.com", code, "nuevo123", "nuevo123"), ErrValidation))
}

func TestChooseRoleRejectsUnknown(t *testing.T) {
	gate := NewGate(newTestStore(t), 5)
	assert.True(t, errors.Is(gate.ChooseRole("chef"), ErrValidation))
}
