package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/apihelpers"
	"github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/catalog"
	"github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/db"
	httpclient "github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/http-client"
	jwthandling "github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/jwt-handling"
	"github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/messaging"
	emailsending "github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/messaging/email-sending"
	"github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/messaging/sms"
	"github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/messaging/templates"
	messagingTypes "github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/messaging/types"
	smtp_client "github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/smtp-client"
	usermanagement "github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/user-management"
	"github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/user-management/pwhash"
	"github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v2"

	catalogDB "github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/db/catalog"
	globalinfosDB "github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/db/global-infos"
	messagingDB "github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/db/messaging"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"
)

// Secrets overrides the "secrets" of the config file when the variables are set.
type Secrets struct {
	CatalogDBUsername     string `env:"CATALOG_DB_USERNAME"`
	CatalogDBPassword     string `env:"CATALOG_DB_PASSWORD"`
	GlobalInfosDBUsername string `env:"GLOBAL_INFOS_DB_USERNAME"`
	GlobalInfosDBPassword string `env:"GLOBAL_INFOS_DB_PASSWORD"`
	MessagingDBUsername   string `env:"MESSAGING_DB_USERNAME"`
	MessagingDBPassword   string `env:"MESSAGING_DB_PASSWORD"`

	JWTSignKey string `env:"USER_JWT_SIGN_KEY"`

	SmtpBridgeAPIKey   string `env:"SMTP_BRIDGE_API_KEY"`
	SMSGatewayAPIKey   string `env:"SMS_GATEWAY_API_KEY"`
	SmtpServerUsername string `env:"SMTP_SERVER_USERNAME"`
	SmtpServerPassword string `env:"SMTP_SERVER_PASSWORD"`
}

type CatalogApiConfig struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// Gin configs
	GinConfig struct {
		DebugMode    bool     `json:"debug_mode" yaml:"debug_mode"`
		AllowOrigins []string `json:"allow_origins" yaml:"allow_origins"`
		Port         string   `json:"port" yaml:"port"`

		// Mutual TLS configs
		MTLS struct {
			Use              bool                        `json:"use" yaml:"use"`
			CertificatePaths apihelpers.CertificatePaths `json:"certificate_paths" yaml:"certificate_paths"`
		} `json:"mtls" yaml:"mtls"`
	} `json:"gin_config" yaml:"gin_config"`

	// user management configs
	UserManagementConfig struct {
		PWHashing struct {
			Argon2Memory      uint32 `json:"argon2_memory" yaml:"argon2_memory"`
			Argon2Iterations  uint32 `json:"argon2_iterations" yaml:"argon2_iterations"`
			Argon2Parallelism uint8  `json:"argon2_parallelism" yaml:"argon2_parallelism"`
		} `json:"pw_hashing" yaml:"pw_hashing"`
		UserJWTConfig struct {
			SignKey   string        `json:"sign_key" yaml:"sign_key"`
			ExpiresIn time.Duration `json:"expires_in" yaml:"expires_in"`
		} `json:"user_jwt_config" yaml:"user_jwt_config"`
		VerificationTokenTTL time.Duration                   `json:"verification_token_ttl" yaml:"verification_token_ttl"`
		VerificationLinkURL  string                          `json:"verification_link_url" yaml:"verification_link_url"`
		MinimumAge           int                             `json:"minimum_age" yaml:"minimum_age"`
		ResendCooldown       time.Duration                   `json:"resend_cooldown" yaml:"resend_cooldown"`
		ProfileNameScope     string                          `json:"profile_name_scope" yaml:"profile_name_scope"`
		Templates            usermanagement.MessageTemplates `json:"templates" yaml:"templates"`
	} `json:"user_management_config" yaml:"user_management_config"`

	// DB configs
	DBConfigs struct {
		CatalogDB     db.MongoConfigYaml `json:"catalog_db" yaml:"catalog_db"`
		GlobalInfosDB db.MongoConfigYaml `json:"global_infos_db" yaml:"global_infos_db"`
		MessagingDB   db.MongoConfigYaml `json:"messaging_db" yaml:"messaging_db"`
	} `json:"db_configs" yaml:"db_configs"`

	MessagingConfigs messagingTypes.MessagingConfigs `json:"messaging_configs" yaml:"messaging_configs"`
}

var (
	catalogDBService     *catalogDB.CatalogDBService
	globalInfosDBService *globalinfosDB.GlobalInfosDBService
	messagingDBService   *messagingDB.MessagingDBService

	secrets Secrets

	tokenService          *jwthandling.TokenService
	notificationChannel   *messaging.Channel
	userManagementService *usermanagement.Service
	catalogManager        *catalog.Manager
)

func init() {
	// Read config from file
	yamlFile, err := os.ReadFile(os.Getenv(ENV_CONFIG_FILE_PATH))
	if err != nil {
		panic(err)
	}

	err = yaml.UnmarshalStrict(yamlFile, &conf)
	if err != nil {
		panic(err)
	}

	// Init logger:
	utils.InitLogger(conf.Logging)

	// Override secrets from environment variables
	if err := secretsOverride(context.Background()); err != nil {
		panic(err)
	}

	// Init DBs
	initDBs()

	if !conf.GinConfig.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	// init argon2
	pwhash.InitArgonParams(
		conf.UserManagementConfig.PWHashing.Argon2Memory,
		conf.UserManagementConfig.PWHashing.Argon2Iterations,
		conf.UserManagementConfig.PWHashing.Argon2Parallelism,
	)

	tokenService, err = jwthandling.NewTokenService(conf.UserManagementConfig.UserJWTConfig.SignKey)
	if err != nil {
		slog.Error("Error creating token service", slog.String("error", err.Error()))
		panic(err)
	}

	// init message sending config
	initMessageSendingConfig()

	initUserManagement()

	catalogManager = catalog.NewManager(catalogDBService, catalogDBService)
}

func secretsOverride(ctx context.Context) error {
	if err := envconfig.Process(ctx, &secrets); err != nil {
		return err
	}

	overrideIfSet(&conf.DBConfigs.CatalogDB.Username, secrets.CatalogDBUsername)
	overrideIfSet(&conf.DBConfigs.CatalogDB.Password, secrets.CatalogDBPassword)
	overrideIfSet(&conf.DBConfigs.GlobalInfosDB.Username, secrets.GlobalInfosDBUsername)
	overrideIfSet(&conf.DBConfigs.GlobalInfosDB.Password, secrets.GlobalInfosDBPassword)
	overrideIfSet(&conf.DBConfigs.MessagingDB.Username, secrets.MessagingDBUsername)
	overrideIfSet(&conf.DBConfigs.MessagingDB.Password, secrets.MessagingDBPassword)

	overrideIfSet(&conf.UserManagementConfig.UserJWTConfig.SignKey, secrets.JWTSignKey)
	overrideIfSet(&conf.MessagingConfigs.SmtpBridgeConfig.APIKey, secrets.SmtpBridgeAPIKey)

	if secrets.SMSGatewayAPIKey != "" {
		if conf.MessagingConfigs.SMSConfig == nil {
			conf.MessagingConfigs.SMSConfig = &messagingTypes.SMSGatewayConfig{}
		}
		conf.MessagingConfigs.SMSConfig.APIKey = secrets.SMSGatewayAPIKey
	}
	return nil
}

func overrideIfSet(target *string, value string) {
	if value != "" {
		*target = value
	}
}

func initDBs() {
	var err error
	catalogDBService, err = catalogDB.NewCatalogDBService(
		db.MongoConfigFromYaml(conf.DBConfigs.CatalogDB),
		conf.UserManagementConfig.ProfileNameScope,
	)
	if err != nil {
		slog.Error("Error connecting to Catalog DB", slog.String("error", err.Error()))
		panic(err)
	}

	globalInfosDBService, err = globalinfosDB.NewGlobalInfosDBService(db.MongoConfigFromYaml(conf.DBConfigs.GlobalInfosDB))
	if err != nil {
		slog.Error("Error connecting to Global Infos DB", slog.String("error", err.Error()))
		panic(err)
	}

	if conf.MessagingConfigs.DisableDeliveryLog {
		return
	}
	messagingDBService, err = messagingDB.NewMessagingDBService(db.MongoConfigFromYaml(conf.DBConfigs.MessagingDB))
	if err != nil {
		slog.Error("Error connecting to Messaging DB", slog.String("error", err.Error()))
		panic(err)
	}
}

func initMessageSendingConfig() {
	var emailSender messaging.EmailSender
	switch conf.MessagingConfigs.EmailTransport {
	case messagingTypes.EMAIL_TRANSPORT_BRIDGE:
		emailSender = emailsending.NewBridgeSender(loadEmailClientHTTPConfig())
	default:
		emailSender = emailsending.NewSmtpSender(initSmtpClients())
	}

	if conf.MessagingConfigs.SMSConfig == nil {
		slog.Error("SMS gateway not configured")
		panic("SMS gateway not configured")
	}
	smsGateway := sms.NewGateway(*conf.MessagingConfigs.SMSConfig)

	var deliveryLog messaging.DeliveryLog
	if messagingDBService != nil {
		deliveryLog = messagingDBService
	}

	notificationChannel = messaging.NewChannel(
		emailSender,
		smsGateway,
		deliveryLog,
		conf.MessagingConfigs.DefaultPhoneRegion,
	)
}

func initSmtpClients() *smtp_client.SmtpClients {
	servers := smtp_client.SmtpServerList{}
	if err := servers.ReadFromFile(conf.MessagingConfigs.SmtpServerConfigPath); err != nil {
		panic(err)
	}

	servers.OverrideCredentials(secrets.SmtpServerUsername, secrets.SmtpServerPassword)

	// per host password, e.g. SMTP_SERVER_PASSWORD_FOR_SMTP_EXAMPLE_COM
	for i := range servers.Servers {
		envVarName := utils.GenerateSmtpServerPasswordEnvVarName(servers.Servers[i].Host)
		if pw := os.Getenv(envVarName); pw != "" {
			servers.Servers[i].AuthData.Password = pw
		}
	}

	clients, err := smtp_client.NewSmtpClients(servers)
	if err != nil {
		slog.Error("Error connecting to SMTP servers", slog.String("error", err.Error()))
		panic(err)
	}
	return clients
}

func loadEmailClientHTTPConfig() *httpclient.ClientConfig {
	return &httpclient.ClientConfig{
		RootURL: conf.MessagingConfigs.SmtpBridgeConfig.URL,
		APIKey:  conf.MessagingConfigs.SmtpBridgeConfig.APIKey,
		Timeout: conf.MessagingConfigs.SmtpBridgeConfig.RequestTimeout,
	}
}

func initUserManagement() {
	umConf := conf.UserManagementConfig

	// empty templates fall back to the built-in defaults
	customTemplates := map[string]string{}
	if umConf.Templates.VerificationEmail != "" {
		customTemplates["verification-email"] = umConf.Templates.VerificationEmail
	}
	if umConf.Templates.VerificationSMS != "" {
		customTemplates["verification-sms"] = umConf.Templates.VerificationSMS
	}
	if err := templates.CheckTemplatesParsable(customTemplates); err != nil {
		slog.Error("Invalid message template", slog.String("error", err.Error()))
		panic(err)
	}

	userManagementService = usermanagement.New(
		catalogDBService,
		catalogDBService,
		tokenService,
		notificationChannel,
		usermanagement.Config{
			VerificationTokenTTL: umConf.VerificationTokenTTL,
			SessionTokenTTL:      umConf.UserJWTConfig.ExpiresIn,
			VerificationLinkURL:  umConf.VerificationLinkURL,
			MinimumAge:           umConf.MinimumAge,
			ResendCooldown:       umConf.ResendCooldown,
			DefaultPhoneRegion:   conf.MessagingConfigs.DefaultPhoneRegion,
			ProfileNameScope:     umConf.ProfileNameScope,
			Templates:            umConf.Templates,
		},
	)
}
