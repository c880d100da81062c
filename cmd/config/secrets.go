package config

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/muhammadheryan/sample-api/utils/logger"
	"go.uber.org/zap"
)

const defaultSecretPort = 3306

// SecretFetcher returns the raw secret string stored under name.
type SecretFetcher func(ctx context.Context, name string) (string, error)

type databaseSecret struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Database string `json:"database"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// NewSecretsManagerFetcher reads the AWSCURRENT version of a secret from AWS
// Secrets Manager.
func NewSecretsManagerFetcher(ctx context.Context, cfg AWSConfig) (SecretFetcher, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, err
	}

	client := secretsmanager.NewFromConfig(awsCfg, func(o *secretsmanager.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	return func(ctx context.Context, name string) (string, error) {
		out, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
			SecretId:     aws.String(name),
			VersionStage: aws.String("AWSCURRENT"),
		})
		if err != nil {
			return "", err
		}
		if out.SecretString == nil {
			return "", errors.New("secret string is null")
		}
		return *out.SecretString, nil
	}, nil
}

// ResolveDatabase picks the database credentials for this process. The Local
// environment always uses configuration. Anywhere else the secret store wins,
// and any failure to reach or parse it falls back to configuration.
func ResolveDatabase(ctx context.Context, cfg *Config, fetch SecretFetcher) DatabaseCredentials {
	fallback := cfg.Database.Credentials()

	if cfg.IsLocal() {
		logger.Info("Using database configuration (Local environment)")
		return fallback
	}

	creds, err := fetchDatabaseSecret(ctx, cfg.AWS.SecretName, fetch)
	if err != nil {
		logger.Error("Error retrieving database secret", zap.String("secret", cfg.AWS.SecretName), zap.Error(err))
		logger.Warn("Using fallback database configuration")
		return fallback
	}

	logger.Info("Database credentials retrieved from secret store", zap.String("secret", cfg.AWS.SecretName))
	return creds
}

func fetchDatabaseSecret(ctx context.Context, name string, fetch SecretFetcher) (DatabaseCredentials, error) {
	if name == "" {
		return DatabaseCredentials{}, errors.New("secret name not configured")
	}
	if fetch == nil {
		return DatabaseCredentials{}, errors.New("secret store not available")
	}

	raw, err := fetch(ctx, name)
	if err != nil {
		return DatabaseCredentials{}, err
	}

	var secret databaseSecret
	if err := json.Unmarshal([]byte(raw), &secret); err != nil {
		return DatabaseCredentials{}, err
	}
	if secret.Host == "" {
		return DatabaseCredentials{}, errors.New("secret has no host")
	}
	if secret.Port == 0 {
		secret.Port = defaultSecretPort
	}

	return DatabaseCredentials{
		Host:     secret.Host,
		Port:     secret.Port,
		Database: secret.Database,
		Username: secret.Username,
		Password: secret.Password,
	}, nil
}
