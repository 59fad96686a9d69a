package main

import (
	"context"
	"os"

	"github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v2"

	sc "github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/smtp-client"
)

const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"
)

type SmtpBridgeConfig struct {
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	GinConfig struct {
		DebugMode    bool     `json:"debug_mode" yaml:"debug_mode"`
		AllowOrigins []string `json:"allow_origins" yaml:"allow_origins"`
		Port         string   `json:"port" yaml:"port"`
	} `json:"gin_config" yaml:"gin_config"`

	ApiKeys []string `json:"api_keys" yaml:"api_keys"`

	SmtpServerConfig struct {
		HighPrioPath string `json:"high_prio_path" yaml:"high_prio_path"`
		LowPrioPath  string `json:"low_prio_path" yaml:"low_prio_path"`
	} `json:"smtp_server_config" yaml:"smtp_server_config"`
}

type bridgeSecrets struct {
	ApiKeys            []string `env:"SMTP_BRIDGE_API_KEYS"`
	SmtpServerUsername string   `env:"SMTP_SERVER_USERNAME"`
	SmtpServerPassword string   `env:"SMTP_SERVER_PASSWORD"`
}

var (
	highPrioServers sc.SmtpServerList
	lowPrioServers  sc.SmtpServerList
)

func init() {
	yamlFile, err := os.ReadFile(os.Getenv(ENV_CONFIG_FILE_PATH))
	if err != nil {
		panic(err)
	}
	if err := yaml.UnmarshalStrict(yamlFile, &conf); err != nil {
		panic(err)
	}

	utils.InitLogger(conf.Logging)

	var secrets bridgeSecrets
	if err := envconfig.Process(context.Background(), &secrets); err != nil {
		panic(err)
	}
	if len(secrets.ApiKeys) > 0 {
		conf.ApiKeys = secrets.ApiKeys
	}

	highPrioServers = readServerList(conf.SmtpServerConfig.HighPrioPath, secrets)
	lowPrioServers = readServerList(conf.SmtpServerConfig.LowPrioPath, secrets)

	if !conf.GinConfig.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}
}

func readServerList(path string, secrets bridgeSecrets) sc.SmtpServerList {
	servers := sc.SmtpServerList{}
	if err := servers.ReadFromFile(path); err != nil {
		panic(err)
	}
	servers.OverrideCredentials(secrets.SmtpServerUsername, secrets.SmtpServerPassword)
	for i := range servers.Servers {
		if pw := os.Getenv(utils.GenerateSmtpServerPasswordEnvVarName(servers.Servers[i].Host)); pw != "" {
			servers.Servers[i].AuthData.Password = pw
		}
	}
	return servers
}
