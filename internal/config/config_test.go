package config_test

import (
	"testing"
	"time"

	"github.com/DanielPopoola/eligibility-gateway/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ELIGIBILITY_SUBMITTER__SENDER_ID", "CLINIC01")
	t.Setenv("ELIGIBILITY_SUBMITTER__RECEIVER_ID", "CLEARHOUSE")
	t.Setenv("ELIGIBILITY_SUBMITTER__PROVIDER_NAME", "Riverside Behavioral")
	t.Setenv("ELIGIBILITY_SUBMITTER__PROVIDER_NPI", "1234567893")
	t.Setenv("ELIGIBILITY_SUBMITTER__TRACE_ORIGINATOR", "9876543210")
	t.Setenv("ELIGIBILITY_CLEARINGHOUSES__PRIMARY__NAME", "availity")
	t.Setenv("ELIGIBILITY_CLEARINGHOUSES__PRIMARY__ENDPOINT", "https://primary.example.com/core")
	t.Setenv("ELIGIBILITY_CLEARINGHOUSES__PRIMARY__USERNAME", "user")
	t.Setenv("ELIGIBILITY_CLEARINGHOUSES__PRIMARY__PASSWORD", "pass")
	t.Setenv("ELIGIBILITY_CLEARINGHOUSES__PRIMARY__SENDER_ID", "CLINIC01")
	t.Setenv("ELIGIBILITY_CLEARINGHOUSES__PRIMARY__RECEIVER_ID", "AVAILITY")
}

func TestLoadConfig(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		setRequiredEnv(t)

		cfg, err := config.LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, 8*time.Second, cfg.Transport.AttemptTimeout)
		assert.Equal(t, "soap", cfg.Clearinghouses.Primary.Format)
		assert.Equal(t, "P", cfg.Submitter.UsageIndicator)
		assert.Equal(t, "FFS Behavioral Health", cfg.Rules.ProgramName)
		assert.Len(t, cfg.Clearinghouses.Endpoints(), 1)
	})

	t.Run("environment overrides and secondary endpoint", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("ELIGIBILITY_TRANSPORT__ATTEMPT_TIMEOUT", "3s")
		t.Setenv("ELIGIBILITY_CLEARINGHOUSES__SECONDARY__NAME", "change")
		t.Setenv("ELIGIBILITY_CLEARINGHOUSES__SECONDARY__ENDPOINT", "https://secondary.example.com/core")
		t.Setenv("ELIGIBILITY_CLEARINGHOUSES__SECONDARY__FORMAT", "mime")
		t.Setenv("ELIGIBILITY_CLEARINGHOUSES__SECONDARY__USERNAME", "user2")
		t.Setenv("ELIGIBILITY_CLEARINGHOUSES__SECONDARY__PASSWORD", "pass2")
		t.Setenv("ELIGIBILITY_CLEARINGHOUSES__SECONDARY__SENDER_ID", "CLINIC01")
		t.Setenv("ELIGIBILITY_CLEARINGHOUSES__SECONDARY__RECEIVER_ID", "CHANGE")

		cfg, err := config.LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, 3*time.Second, cfg.Transport.AttemptTimeout)
		endpoints := cfg.Clearinghouses.Endpoints()
		require.Len(t, endpoints, 2)
		assert.Equal(t, "availity", endpoints[0].Name)
		assert.Equal(t, "mime", endpoints[1].Format)
	})

	t.Run("rejects incomplete secondary", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("ELIGIBILITY_CLEARINGHOUSES__SECONDARY__ENDPOINT", "https://secondary.example.com/core")

		_, err := config.LoadConfig()
		assert.Error(t, err)
	})

	t.Run("rejects missing primary clearinghouse", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("ELIGIBILITY_CLEARINGHOUSES__PRIMARY__ENDPOINT", "")

		_, err := config.LoadConfig()
		assert.Error(t, err)
	})

	t.Run("database is only checked on demand", func(t *testing.T) {
		setRequiredEnv(t)

		cfg, err := config.LoadConfig()
		require.NoError(t, err)
		assert.Error(t, cfg.ValidateDatabase())

		t.Setenv("ELIGIBILITY_DATABASE__HOST", "localhost")
		t.Setenv("ELIGIBILITY_DATABASE__USER", "eligibility")
		t.Setenv("ELIGIBILITY_DATABASE__PASSWORD", "secret")
		t.Setenv("ELIGIBILITY_DATABASE__NAME", "eligibility")

		cfg, err = config.LoadConfig()
		require.NoError(t, err)
		assert.NoError(t, cfg.ValidateDatabase())
		assert.Equal(t, 5432, cfg.Database.Port)
	})
}
