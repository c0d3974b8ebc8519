package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/restsoft-app/restsoft-pos/models"
	"github.com/restsoft-app/restsoft-pos/store"
	"github.com/restsoft-app/restsoft-pos/utils"
)

// GateState is where the operator stands in the entry flow.
type GateState string

const (
	GateNoRole        GateState = "no_role"
	GateRoleChosen    GateState = "role_chosen"
	GateSplash        GateState = "splash"
	GateAuthenticated GateState = "authenticated"
)

// Recovery codes die after this long.
const recoveryCodeTTL = 15 * time.Minute

// Gate runs the entry flow: role choice, login or registration, the
// branded splash, and only then the authenticated session. Admins
// self-register; employee credentials are provisioned by an admin and
// have no registration path.
type Gate struct {
	store *store.Store

	state   GateState
	role    string
	pending *models.User
	current *models.User

	splashSeconds int
	now           func() time.Time
}

func NewGate(st *store.Store, splashSeconds int) *Gate {
	g := &Gate{
		store:         st,
		state:         GateNoRole,
		splashSeconds: splashSeconds,
		now:           time.Now,
	}
	g.restore()
	return g
}

// restore picks up where the previous run left off: an intact session
// goes straight to authenticated, a remembered role skips the chooser.
func (g *Gate) restore() {
	if user, ok := g.store.Session(); ok {
		g.current = user
		g.role = user.Role
		g.state = GateAuthenticated
		utils.InfoLogger.Printf("Session restored for %s (%s)", user.Email, user.Role)
		return
	}
	if role, ok := g.store.Role(); ok {
		g.role = role
		g.state = GateRoleChosen
	}
}

func (g *Gate) State() GateState { return g.state }

func (g *Gate) Role() string { return g.role }

func (g *Gate) SplashSeconds() int { return g.splashSeconds }

func (g *Gate) CurrentUser() (*models.User, bool) {
	if g.current == nil {
		return nil, false
	}
	u := *g.current
	return &u, true
}

// ChooseRole records which door the operator walked through. It is
// remembered across restarts until logout.
func (g *Gate) ChooseRole(role string) error {
	if role != models.RoleAdmin && role != models.RoleUser {
		return fmt.Errorf("unknown role %q: %w", role, ErrValidation)
	}
	if g.state == GateAuthenticated || g.state == GateSplash {
		return fmt.Errorf("already signed in: %w", ErrBadState)
	}
	g.role = role
	g.state = GateRoleChosen
	if err := g.store.SetRole(role); err != nil {
		utils.ErrorLogger.Printf("Could not persist role choice: %v", err)
	}
	return nil
}

// RegisterRequest is the admin sign-up form.
type RegisterRequest struct {
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=6"`
	Confirm      string `json:"confirm"`
	Phone        string `json:"phone" validate:"required"`
	Country      string `json:"country"`
	BusinessName string `json:"business_name" validate:"required"`
}

// dialPrefixes covers the markets the product ships in; an unknown
// country keeps the phone as typed.
var dialPrefixes = map[string]string{
	"argentina": "+54",
	"uruguay":   "+598",
	"paraguay":  "+595",
	"chile":     "+56",
	"bolivia":   "+591",
	"brasil":    "+55",
	"peru":      "+51",
	"mexico":    "+52",
	"colombia":  "+57",
	"espana":    "+34",
}

func digitsOf(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func fullPhone(country, phone string) string {
	digits := digitsOf(phone)
	prefix, ok := dialPrefixes[strings.ToLower(strings.TrimSpace(country))]
	if !ok {
		return digits
	}
	return prefix + " " + digits
}

// RegisterAdmin creates the admin account and moves the gate to the
// splash. Email is the account key and must be unique.
func (g *Gate) RegisterAdmin(req RegisterRequest) error {
	if g.state == GateAuthenticated || g.state == GateSplash {
		return fmt.Errorf("already signed in: %w", ErrBadState)
	}
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("all registration fields are required: %w", ErrValidation)
	}
	if req.Password != req.Confirm {
		return fmt.Errorf("passwords do not match: %w", ErrValidation)
	}
	if len(digitsOf(req.Phone)) < 7 {
		return fmt.Errorf("phone number looks too short: %w", ErrValidation)
	}

	users, err := g.store.Users()
	if err != nil {
		return err
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	for _, u := range users {
		if strings.ToLower(u.Email) == email {
			return fmt.Errorf("an account with %s already exists: %w", email, ErrDuplicateEmail)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("could not hash password: %w", err)
	}

	stored := store.StoredUser{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hash),
		Phone:        fullPhone(req.Country, req.Phone),
		Country:      req.Country,
		BusinessName: strings.TrimSpace(req.BusinessName),
	}
	if err := g.store.SaveUsers(append(users, stored)); err != nil {
		return err
	}

	g.pending = &models.User{
		Name:         stored.Name,
		Email:        stored.Email,
		Phone:        stored.Phone,
		Country:      stored.Country,
		BusinessName: stored.BusinessName,
		Role:         models.RoleAdmin,
	}
	g.role = models.RoleAdmin
	g.state = GateSplash
	utils.InfoLogger.Printf("Admin account registered: %s", email)
	return nil
}

// LoginAdmin checks the credentials against the registered admin
// accounts. A wrong email and a wrong password are indistinguishable.
func (g *Gate) LoginAdmin(email, password string) error {
	if g.state == GateAuthenticated || g.state == GateSplash {
		return fmt.Errorf("already signed in: %w", ErrBadState)
	}
	users, err := g.store.Users()
	if err != nil {
		return err
	}
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range users {
		if strings.ToLower(u.Email) != email {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
			break
		}
		g.pending = &models.User{
			Name:         u.Name,
			Email:        u.Email,
			Phone:        u.Phone,
			Country:      u.Country,
			BusinessName: u.BusinessName,
			Role:         models.RoleAdmin,
		}
		g.role = models.RoleAdmin
		g.state = GateSplash
		utils.InfoLogger.Printf("Admin signed in: %s", email)
		return nil
	}
	return fmt.Errorf("wrong email or password: %w", ErrInvalidCredentials)
}

// LoginEmployee checks against the employee credential set, which only
// an admin can provision.
func (g *Gate) LoginEmployee(email, password string) error {
	if g.state == GateAuthenticated || g.state == GateSplash {
		return fmt.Errorf("already signed in: %w", ErrBadState)
	}
	creds, err := g.store.Employees()
	if err != nil {
		return err
	}
	email = strings.ToLower(strings.TrimSpace(email))
	for _, c := range creds {
		if strings.ToLower(c.Email) != email {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)) != nil {
			break
		}
		g.pending = &models.User{
			Name:  c.Name,
			Email: c.Email,
			Phone: c.Phone,
			Role:  models.RoleUser,
		}
		g.role = models.RoleUser
		g.state = GateSplash
		utils.InfoLogger.Printf("Employee signed in: %s", email)
		return nil
	}
	return fmt.Errorf("wrong email or password: %w", ErrInvalidCredentials)
}

// AddEmployeeCredential provisions a login for a staff member. Admin
// only; the caller enforces that.
func (g *Gate) AddEmployeeCredential(name, email, password, phone string) error {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" {
		return fmt.Errorf("employee name and email are required: %w", ErrValidation)
	}
	if len(password) < 6 {
		return fmt.Errorf("password must be at least 6 characters: %w", ErrValidation)
	}
	creds, err := g.store.Employees()
	if err != nil {
		return err
	}
	email = strings.ToLower(strings.TrimSpace(email))
	for _, c := range creds {
		if strings.ToLower(c.Email) == email {
			return fmt.Errorf("an employee login with %s already exists: %w", email, ErrDuplicateEmail)
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("could not hash password: %w", err)
	}
	creds = append(creds, store.EmployeeCredential{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: string(hash),
		Phone:        phone,
	})
	if err := g.store.SaveEmployees(creds); err != nil {
		return err
	}
	utils.InfoLogger.Printf("Employee login provisioned: %s", email)
	return nil
}

// RequestRecovery mints a six digit code for the account and returns
// it. There is no mail infrastructure; the surface shows the code to
// the operator directly.
func (g *Gate) RequestRecovery(email string) (string, error) {
	users, err := g.store.Users()
	if err != nil {
		return "", err
	}
	email = strings.ToLower(strings.TrimSpace(email))
	found := false
	for _, u := range users {
		if strings.ToLower(u.Email) == email {
			found = true
			break
		}
	}
	if !found {
		return "", fmt.Errorf("no account with %s: %w", email, ErrInvalidCredentials)
	}

	code, err := sixDigitCode()
	if err != nil {
		return "", err
	}
	codes, err := g.store.RecoveryCodes()
	if err != nil {
		return "", err
	}
	codes[email] = store.RecoveryCode{Code: code, CreatedAt: g.now()}
	if err := g.store.SaveRecoveryCodes(codes); err != nil {
		return "", err
	}
	utils.InfoLogger.Printf("Recovery code issued for %s", email)
	return code, nil
}

func sixDigitCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("could not generate recovery code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// ResetPassword consumes a recovery code. The code must match exactly,
// must not have expired, and is deleted once the password changes.
func (g *Gate) ResetPassword(email, code, newPassword, confirm string) error {
	if newPassword != confirm {
		return fmt.Errorf("passwords do not match: %w", ErrValidation)
	}
	if len(newPassword) < 6 {
		return fmt.Errorf("password must be at least 6 characters: %w", ErrValidation)
	}

	email = strings.ToLower(strings.TrimSpace(email))
	codes, err := g.store.RecoveryCodes()
	if err != nil {
		return err
	}
	rec, ok := codes[email]
	if !ok || rec.Code != code {
		return fmt.Errorf("recovery code is not valid: %w", ErrValidation)
	}
	if g.now().Sub(rec.CreatedAt) > recoveryCodeTTL {
		delete(codes, email)
		_ = g.store.SaveRecoveryCodes(codes)
		return fmt.Errorf("recovery code expired: %w", ErrValidation)
	}

	users, err := g.store.Users()
	if err != nil {
		return err
	}
	for i := range users {
		if strings.ToLower(users[i].Email) != email {
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("could not hash password: %w", err)
		}
		users[i].PasswordHash = string(hash)
		if err := g.store.SaveUsers(users); err != nil {
			return err
		}
		delete(codes, email)
		if err := g.store.SaveRecoveryCodes(codes); err != nil {
			utils.ErrorLogger.Printf("Could not drop used recovery code: %v", err)
		}
		utils.InfoLogger.Printf("Password reset for %s", email)
		return nil
	}
	return fmt.Errorf("no account with %s: %w", email, ErrInvalidCredentials)
}

// FinishSplash completes the entry flow once the splash has run: the
// pending user becomes the session and is persisted.
func (g *Gate) FinishSplash() (*models.User, error) {
	if g.state != GateSplash || g.pending == nil {
		return nil, fmt.Errorf("no sign-in in progress: %w", ErrBadState)
	}
	g.current = g.pending
	g.pending = nil
	g.state = GateAuthenticated
	if err := g.store.SetSession(*g.current); err != nil {
		utils.ErrorLogger.Printf("Could not persist session: %v", err)
	}
	if err := g.store.SetRole(g.current.Role); err != nil {
		utils.ErrorLogger.Printf("Could not persist role: %v", err)
	}
	u := *g.current
	return &u, nil
}

// Logout wipes the session and the remembered role, back to the role
// chooser.
func (g *Gate) Logout() {
	if g.current != nil {
		utils.InfoLogger.Printf("Signed out: %s", g.current.Email)
	}
	g.current = nil
	g.pending = nil
	g.role = ""
	g.state = GateNoRole
	if err := g.store.ClearSession(); err != nil {
		utils.ErrorLogger.Printf("Could not clear session: %v", err)
	}
	if err := g.store.ClearRole(); err != nil {
		utils.ErrorLogger.Printf("Could not clear role: %v", err)
	}
}
