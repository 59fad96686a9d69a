package usermanagement

import (
	"context"
	"log/slog"
	"time"

	jwthandling "github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/jwt-handling"
	"github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/messaging/sms"
	"github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/user-management/pwhash"
	userTypes "github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/user-management/types"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DEFAULT_VERIFICATION_TOKEN_TTL = 24 * time.Hour
	DEFAULT_SESSION_TOKEN_TTL      = time.Hour
	DEFAULT_MINIMUM_AGE            = 18
	DEFAULT_RESEND_COOLDOWN        = time.Minute

	VERIFICATION_CODE_LENGTH = 6
)

const (
	DEFAULT_VERIFICATION_EMAIL_SUBJECT  = "Verifica tu correo electrónico"
	DEFAULT_VERIFICATION_EMAIL_TEMPLATE = `<p>Hola {{.name}},</p>
<p>Por favor haz clic en el siguiente enlace para verificar tu correo electrónico:</p>
<p><a href="{{.link}}">Verificar cuenta</a></p>
<p>Si no te has registrado, puedes ignorar este correo electrónico.</p>`
	DEFAULT_VERIFICATION_SMS_TEMPLATE = "Hola {{.name}}, este es tu código de verificación de PlayFlix: {{.code}}"
)

const (
	MESSAGE_TYPE_REGISTRATION        = "registration"
	MESSAGE_TYPE_RESEND_VERIFICATION = "resend-verification"
)

// AccountStore is implemented by the catalog DB service.
type AccountStore interface {
	AddAccount(ctx context.Context, account userTypes.Account) (userTypes.Account, error)
	FindAccountByEmail(ctx context.Context, email string) (userTypes.Account, error)
	FindVerifiedAccountByEmail(ctx context.Context, email string) (userTypes.Account, error)
	FindAccountByPin(ctx context.Context, pin int) (userTypes.Account, error)
	FindAccountByEmailAndCode(ctx context.Context, email string, code string) (userTypes.Account, error)
	MarkAccountVerified(ctx context.Context, email string, code string) (userTypes.Account, error)
	UpdateVerificationCode(ctx context.Context, email string, code string) error
	UpdateLastLogin(ctx context.Context, accountID primitive.ObjectID) error
}

type ProfileStore interface {
	AddRestrictedProfile(ctx context.Context, profile userTypes.RestrictedProfile) (userTypes.RestrictedProfile, error)
	FindRestrictedProfileByName(ctx context.Context, fullName string, ownerID string) (userTypes.RestrictedProfile, error)
	FindRestrictedProfileByPin(ctx context.Context, pin string, ownerID string) (userTypes.RestrictedProfile, error)
	ListRestrictedProfilesByOwner(ctx context.Context, ownerID string) ([]userTypes.RestrictedProfile, error)
	UpdateRestrictedProfile(ctx context.Context, profile userTypes.RestrictedProfile) (userTypes.RestrictedProfile, error)
	DeleteRestrictedProfile(ctx context.Context, id primitive.ObjectID, ownerID string) error
}

// Notifier delivers out-of-band messages. Failures are returned as *messaging.DeliveryError.
type Notifier interface {
	SendEmail(ctx context.Context, to string, subject string, body string) error
	SendSMS(ctx context.Context, to string, body string) error
}

type MessageTemplates struct {
	VerificationEmailSubject string `yaml:"verification_email_subject"`
	VerificationEmail        string `yaml:"verification_email"`
	VerificationSMS          string `yaml:"verification_sms"`
}

type Config struct {
	VerificationTokenTTL time.Duration
	SessionTokenTTL      time.Duration
	// VerificationLinkURL is the confirmation endpoint; the token is appended as query parameter.
	VerificationLinkURL string
	MinimumAge          int
	ResendCooldown      time.Duration
	DefaultPhoneRegion  string
	ProfileNameScope    string
	Templates           MessageTemplates

	// Now defaults to time.Now
	Now func() time.Time
}

// Service drives registration, verification, login and restricted profile management.
type Service struct {
	accounts AccountStore
	profiles ProfileStore
	tokens   *jwthandling.TokenService
	notifier Notifier
	config   Config

	comparePassword func(encodedHash string, password string) (bool, error)
	// hash checked for unknown accounts so that every login costs one argon2 run
	placeholderHash string
}

func New(
	accounts AccountStore,
	profiles ProfileStore,
	tokens *jwthandling.TokenService,
	notifier Notifier,
	config Config,
) *Service {
	placeholderHash, err := pwhash.HashPassword("playflix-placeholder")
	if err != nil {
		slog.Error("failed to prepare placeholder password hash", slog.String("error", err.Error()))
	}
	return &Service{
		accounts:        accounts,
		profiles:        profiles,
		tokens:          tokens,
		notifier:        notifier,
		config:          withDefaults(config),
		comparePassword: pwhash.ComparePasswordWithHash,
		placeholderHash: placeholderHash,
	}
}

func withDefaults(config Config) Config {
	if config.VerificationTokenTTL <= 0 {
		config.VerificationTokenTTL = DEFAULT_VERIFICATION_TOKEN_TTL
	}
	if config.SessionTokenTTL <= 0 {
		config.SessionTokenTTL = DEFAULT_SESSION_TOKEN_TTL
	}
	if config.MinimumAge <= 0 {
		config.MinimumAge = DEFAULT_MINIMUM_AGE
	}
	if config.ResendCooldown <= 0 {
		config.ResendCooldown = DEFAULT_RESEND_COOLDOWN
	}
	if config.DefaultPhoneRegion == "" {
		config.DefaultPhoneRegion = sms.DEFAULT_PHONE_REGION
	}
	if config.ProfileNameScope != userTypes.PROFILE_NAME_SCOPE_OWNER {
		config.ProfileNameScope = userTypes.PROFILE_NAME_SCOPE_GLOBAL
	}
	if config.Templates.VerificationEmailSubject == "" {
		config.Templates.VerificationEmailSubject = DEFAULT_VERIFICATION_EMAIL_SUBJECT
	}
	if config.Templates.VerificationEmail == "" {
		config.Templates.VerificationEmail = DEFAULT_VERIFICATION_EMAIL_TEMPLATE
	}
	if config.Templates.VerificationSMS == "" {
		config.Templates.VerificationSMS = DEFAULT_VERIFICATION_SMS_TEMPLATE
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	return config
}
