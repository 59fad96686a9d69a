package usermanagement

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/db"
	jwthandling "github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/jwt-handling"
	"github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/messaging"
	"github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/user-management/pwhash"
	userTypes "github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/user-management/types"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMain(m *testing.M) {
	pwhash.InitArgonParams(1024, 1, 1)
	os.Exit(m.Run())
}

type memoryAccounts struct {
	mu       sync.Mutex
	accounts []userTypes.Account
	inserts  int
	failWith error
}

func (m *memoryAccounts) AddAccount(ctx context.Context, account userTypes.Account) (userTypes.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return account, m.failWith
	}
	for _, a := range m.accounts {
		if a.Email == account.Email {
			return account, db.ErrDuplicateKey
		}
	}
	account.ID = primitive.NewObjectID()
	m.accounts = append(m.accounts, account)
	m.inserts++
	return account, nil
}

func (m *memoryAccounts) find(match func(a userTypes.Account) bool) (userTypes.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return userTypes.Account{}, m.failWith
	}
	for _, a := range m.accounts {
		if match(a) {
			return a, nil
		}
	}
	return userTypes.Account{}, db.ErrNotFound
}

func (m *memoryAccounts) FindAccountByEmail(ctx context.Context, email string) (userTypes.Account, error) {
	return m.find(func(a userTypes.Account) bool { return a.Email == email })
}

func (m *memoryAccounts) FindVerifiedAccountByEmail(ctx context.Context, email string) (userTypes.Account, error) {
	return m.find(func(a userTypes.Account) bool { return a.Email == email && a.Verified })
}

func (m *memoryAccounts) FindAccountByPin(ctx context.Context, pin int) (userTypes.Account, error) {
	return m.find(func(a userTypes.Account) bool { return a.Pin == pin })
}

func (m *memoryAccounts) FindAccountByEmailAndCode(ctx context.Context, email string, code string) (userTypes.Account, error) {
	return m.find(func(a userTypes.Account) bool { return a.Email == email && a.VerificationCode == code })
}

func (m *memoryAccounts) MarkAccountVerified(ctx context.Context, email string, code string) (userTypes.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, a := range m.accounts {
		if a.Email == email && a.VerificationCode == code && !a.Verified {
			m.accounts[i].Verified = true
			return m.accounts[i], nil
		}
	}
	return userTypes.Account{}, db.ErrNotFound
}

func (m *memoryAccounts) UpdateVerificationCode(ctx context.Context, email string, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, a := range m.accounts {
		if a.Email == email && !a.Verified {
			m.accounts[i].VerificationCode = code
			m.accounts[i].Timestamps.CodeIssuedAt = time.Now().Unix()
			return nil
		}
	}
	return db.ErrNotFound
}

func (m *memoryAccounts) UpdateLastLogin(ctx context.Context, accountID primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, a := range m.accounts {
		if a.ID == accountID {
			m.accounts[i].Timestamps.LastLogin = time.Now().Unix()
		}
	}
	return nil
}

func (m *memoryAccounts) get(email string) userTypes.Account {
	a, _ := m.FindAccountByEmail(context.Background(), email)
	return a
}

type memoryProfiles struct {
	mu       sync.Mutex
	profiles []userTypes.RestrictedProfile
}

func (m *memoryProfiles) AddRestrictedProfile(ctx context.Context, profile userTypes.RestrictedProfile) (userTypes.RestrictedProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	profile.ID = primitive.NewObjectID()
	m.profiles = append(m.profiles, profile)
	return profile, nil
}

func (m *memoryProfiles) FindRestrictedProfileByName(ctx context.Context, fullName string, ownerID string) (userTypes.RestrictedProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.profiles {
		if p.FullName == fullName && (ownerID == "" || p.OwnerID == ownerID) {
			return p, nil
		}
	}
	return userTypes.RestrictedProfile{}, db.ErrNotFound
}

func (m *memoryProfiles) FindRestrictedProfileByPin(ctx context.Context, pin string, ownerID string) (userTypes.RestrictedProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.profiles {
		if p.Pin == pin && (ownerID == "" || p.OwnerID == ownerID) {
			return p, nil
		}
	}
	return userTypes.RestrictedProfile{}, db.ErrNotFound
}

func (m *memoryProfiles) ListRestrictedProfilesByOwner(ctx context.Context, ownerID string) ([]userTypes.RestrictedProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := []userTypes.RestrictedProfile{}
	for _, p := range m.profiles {
		if p.OwnerID == ownerID {
			res = append(res, p)
		}
	}
	return res, nil
}

func (m *memoryProfiles) UpdateRestrictedProfile(ctx context.Context, profile userTypes.RestrictedProfile) (userTypes.RestrictedProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, p := range m.profiles {
		if p.ID == profile.ID && p.OwnerID == profile.OwnerID {
			m.profiles[i] = profile
			return profile, nil
		}
	}
	return userTypes.RestrictedProfile{}, db.ErrNotFound
}

func (m *memoryProfiles) DeleteRestrictedProfile(ctx context.Context, id primitive.ObjectID, ownerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, p := range m.profiles {
		if p.ID == id && p.OwnerID == ownerID {
			m.profiles = append(m.profiles[:i], m.profiles[i+1:]...)
			return nil
		}
	}
	return db.ErrNotFound
}

type sentMessage struct {
	To      string
	Subject string
	Body    string
}

type fakeNotifier struct {
	mu       sync.Mutex
	emails   []sentMessage
	sms      []sentMessage
	emailErr error
	smsErr   error
}

func (n *fakeNotifier) SendEmail(ctx context.Context, to string, subject string, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.emailErr != nil {
		return &messaging.DeliveryError{Channel: messaging.CHANNEL_EMAIL, Err: n.emailErr}
	}
	n.emails = append(n.emails, sentMessage{To: to, Subject: subject, Body: body})
	return nil
}

func (n *fakeNotifier) SendSMS(ctx context.Context, to string, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.smsErr != nil {
		return &messaging.DeliveryError{Channel: messaging.CHANNEL_SMS, Err: n.smsErr}
	}
	n.sms = append(n.sms, sentMessage{To: to, Body: body})
	return nil
}

type testEnv struct {
	service  *Service
	accounts *memoryAccounts
	profiles *memoryProfiles
	notifier *fakeNotifier
	tokens   *jwthandling.TokenService
	now      time.Time
}

func newTestEnv(t *testing.T, configure ...func(c *Config)) *testEnv {
	t.Helper()
	tokens, err := jwthandling.NewTokenService("test-sign-key")
	require.NoError(t, err)

	env := &testEnv{
		accounts: &memoryAccounts{},
		profiles: &memoryProfiles{},
		notifier: &fakeNotifier{},
		tokens:   tokens,
		now:      time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC),
	}
	config := Config{
		VerificationLinkURL: "http://localhost:3000/api/verify",
		ResendCooldown:      time.Minute,
		Now:                 func() time.Time { return env.now },
	}
	for _, c := range configure {
		c(&config)
	}
	env.service = New(env.accounts, env.profiles, tokens, env.notifier, config)
	return env
}

func intPtr(v int) *int {
	return &v
}

func validRegistration() RegistrationRequest {
	return RegistrationRequest{
		Email:          "a@x.com",
		Password:       "p",
		PasswordRepeat: "p",
		Pin:            intPtr(1234),
		FirstName:      "A",
		LastName:       "B",
		BirthDate:      "2000-01-01",
		Phone:          "+50688880000",
	}
}
