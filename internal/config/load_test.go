package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvFile(t *testing.T, dir, name, content string) {
	t.Helper()
	configsDir := filepath.Join(dir, "configs")
	require.NoError(t, os.MkdirAll(configsDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(configsDir, name), []byte(content), 0644))
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	originalWD, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(originalWD) })
	require.NoError(t, os.Chdir(dir))
}

func TestLoadConfig_HappyPath(t *testing.T) {
	tempDir := t.TempDir()

	testAppName := "TestBackoffice"
	testPort := 9090
	testLogLevel := "debug"
	testKafkaBrokers := "kafka1:9092,kafka2:9092"

	envContent := fmt.Sprintf(
		"APP_NAME=%s\nSERVER_PORT=%d\nLOG_LEVEL=%s\nKAFKA_BROKERS=%s\nAUTH_JWT_SECRET=test-secret\n",
		testAppName, testPort, testLogLevel, testKafkaBrokers,
	)
	writeEnvFile(t, tempDir, "test_happy.env", envContent)
	chdir(t, tempDir)

	cfg, err := LoadConfig("test_happy")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, testAppName, cfg.Application.Name)
	assert.Equal(t, testPort, cfg.Server.Port)
	assert.Equal(t, testLogLevel, cfg.Logging.Level)
	assert.Equal(t, testKafkaBrokers, cfg.Kafka.Brokers)

	// Defaults fill in everything not set by the file
	assert.Equal(t, "development", cfg.Application.Env)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "booking_notifications", cfg.Kafka.NotificationTopic)
	assert.Equal(t, "booking_notifications_dlq", cfg.Kafka.DLQTopic)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoDB.URI)
	assert.Equal(t, 10, cfg.WorkerPool.Size)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, int64(5*1024*1024), cfg.Storage.MaxUploadSize)
	assert.Equal(t, 587, cfg.SMTP.Port)
}

func TestLoadConfig_MissingJWTSecret(t *testing.T) {
	tempDir := t.TempDir()
	writeEnvFile(t, tempDir, "test_nosecret.env", "APP_NAME=NoSecret\n")
	chdir(t, tempDir)

	cfg, err := LoadConfig("test_nosecret")
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "AUTH_JWT_SECRET is required")
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	testCases := []struct {
		name        string
		envContent  string
		expectedErr string
	}{
		{
			name:        "InvalidPort",
			envContent:  "AUTH_JWT_SECRET=s\nSERVER_PORT=99999\n",
			expectedErr: "SERVER_PORT must be between 1 and 65535",
		},
		{
			name:        "ZeroBatchSize",
			envContent:  "AUTH_JWT_SECRET=s\nOUTBOX_BATCH_SIZE=0\n",
			expectedErr: "OUTBOX_BATCH_SIZE must be greater than 0",
		},
		{
			name:        "ZeroWorkerPool",
			envContent:  "AUTH_JWT_SECRET=s\nWORKER_POOL_SIZE=0\n",
			expectedErr: "WORKER_POOL_SIZE must be greater than 0",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tempDir := t.TempDir()
			fileName := fmt.Sprintf("test_%s.env", tc.name)
			writeEnvFile(t, tempDir, fileName, tc.envContent)
			chdir(t, tempDir)

			cfg, err := LoadConfig(fmt.Sprintf("test_%s", tc.name))
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tc.expectedErr)
		})
	}
}
