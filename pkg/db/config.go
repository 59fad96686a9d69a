package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 // seconds

// MongoConfigFromYaml builds the connection URI and applies defaults.
func MongoConfigFromYaml(yamlObj MongoConfigYaml) MongoConfig {
	uri := fmt.Sprintf(`mongodb%s://%s:%s@%s`, yamlObj.ConnectionPrefix, yamlObj.Username, yamlObj.Password, yamlObj.ConnectionStr)
	if yamlObj.Username == "" && yamlObj.Password == "" {
		uri = fmt.Sprintf(`mongodb%s://%s`, yamlObj.ConnectionPrefix, yamlObj.ConnectionStr)
	}

	timeout := yamlObj.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	maxPoolSize := yamlObj.MaxPoolSize
	if maxPoolSize < 0 {
		maxPoolSize = 0
	}

	return MongoConfig{
		URI:              uri,
		AppName:          yamlObj.AppName,
		DBName:           yamlObj.DBName,
		Timeout:          timeout,
		IdleConnTimeout:  yamlObj.IdleConnTimeout,
		MaxPoolSize:      uint64(maxPoolSize),
		NoCursorTimeout:  yamlObj.UseNoCursorTimeout,
		DBNamePrefix:     yamlObj.DBNamePrefix,
		RunIndexCreation: yamlObj.RunIndexCreation,
	}
}

// Connect opens a client for the given config and pings the server once.
func Connect(configs MongoConfig) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	defer cancel()

	opts := options.Client().
		ApplyURI(configs.URI).
		SetMaxConnIdleTime(time.Duration(configs.IdleConnTimeout) * time.Second).
		SetMaxPoolSize(configs.MaxPoolSize)
	if configs.AppName != "" {
		opts.SetAppName(configs.AppName)
	}

	dbClient, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}

	ctx, conCancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	defer conCancel()

	if err := dbClient.Ping(ctx, nil); err != nil {
		return nil, err
	}
	return dbClient, nil
}
