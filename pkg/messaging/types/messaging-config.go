package types

import "time"

const (
	EMAIL_TRANSPORT_SMTP   = "smtp"
	EMAIL_TRANSPORT_BRIDGE = "bridge"
)

type MessagingConfigs struct {
	// "smtp" sends through the connection pool, "bridge" posts to an smtp bridge service
	EmailTransport string `json:"email_transport" yaml:"email_transport"`

	SmtpServerConfigPath string `json:"smtp_server_config_path" yaml:"smtp_server_config_path"`

	SmtpBridgeConfig struct {
		URL            string        `json:"url" yaml:"url"`
		APIKey         string        `json:"api_key" yaml:"api_key"`
		RequestTimeout time.Duration `json:"request_timeout" yaml:"request_timeout"`
	} `json:"smtp_bridge_config" yaml:"smtp_bridge_config"`

	SMSConfig *SMSGatewayConfig `json:"sms_config" yaml:"sms_config"`

	DefaultPhoneRegion string `json:"default_phone_region" yaml:"default_phone_region"`

	// Skip writing sent/failed messages to the messaging DB
	DisableDeliveryLog bool `json:"disable_delivery_log" yaml:"disable_delivery_log"`
}
