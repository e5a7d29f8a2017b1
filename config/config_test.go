package config

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/portfolio-backend/errs"
)

func TestGetters(t *testing.T) {
	env := map[string]string{
		"NUM":   "42",
		"BAD":   "x",
		"FLAG":  "true",
		"EMPTY": "",
		"LIST":  " a, ,b ,",
	}

	assert.Equal(t, 42, GetInt(env, "NUM", 1))
	assert.Equal(t, 1, GetInt(env, "BAD", 1))
	assert.Equal(t, 1, GetInt(nil, "NUM", 1))
	assert.True(t, GetBool(env, "FLAG", false))
	assert.True(t, GetBool(env, "MISSING", true))
	assert.Equal(t, "fallback", GetString(env, "EMPTY", "fallback"))
	assert.Equal(t, []string{"a", "b"}, GetList(env, "LIST"))
	assert.Nil(t, GetList(env, "MISSING"))
}

func TestSplit(t *testing.T) {
	key, value := split("A=b=c")
	assert.Equal(t, "A", key)
	assert.Equal(t, "b=c", value)

	key, value = split("LONE")
	assert.Equal(t, "LONE", key)
	assert.Empty(t, value)
}

func TestFromMapDefaults(t *testing.T) {
	cfg := FromMap(map[string]string{})

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 180*time.Second, cfg.ReadTimeout)
	assert.Equal(t, devSecretKey, cfg.SecretKey)
	assert.Empty(t, cfg.AdminSecret)
	assert.Equal(t, int64(defaultMaxUploadBytes), cfg.MaxUploadBytes)
	assert.Equal(t, "sqlite://app.db", cfg.Database.URL)
	assert.Equal(t, "local", cfg.Storage.Backend)
	assert.Equal(t, "smtp.gmail.com", cfg.Mail.Server)
	assert.Equal(t, 465, cfg.Mail.Port)
	assert.True(t, cfg.Mail.UseSSL)
	assert.False(t, cfg.Mail.UseTLS)
}

func TestFromMapMailFallbacks(t *testing.T) {
	cfg := FromMap(map[string]string{
		"EMAIL_SERVER":       "me@example.com",
		"EMAIL_APP_PASSWORD": "app-pass",
	})

	assert.Equal(t, "me@example.com", cfg.Mail.Username)
	assert.Equal(t, "app-pass", cfg.Mail.Password)
	assert.Equal(t, "me@example.com", cfg.Mail.Recipient)
	assert.Equal(t, "me@example.com", cfg.Mail.Sender())

	cfg = FromMap(map[string]string{
		"MAIL_PROVIDER":     "resend",
		"MAIL_USERNAME":     "me@example.com",
		"RESEND_FROM_EMAIL": "Portfolio <hi@example.com>",
		"CONTACT_RECIPIENT": "inbox@example.com",
	})
	assert.Equal(t, "Portfolio <hi@example.com>", cfg.Mail.Sender())
	assert.Equal(t, "inbox@example.com", cfg.Mail.Recipient)
}

func TestDatabaseURL(t *testing.T) {
	assert.Equal(t, "postgres://u:p@db/app", databaseURL(map[string]string{
		"DATABASE_URL":     "postgres://u:p@db/app",
		"SUPABASE_DB_HOST": "ignored.supabase.co",
	}))

	dsn := databaseURL(map[string]string{
		"SUPABASE_DB_HOST":     "db.abc.supabase.co",
		"SUPABASE_DB_USER":     "postgres",
		"SUPABASE_DB_PASSWORD": "pw",
	})
	assert.Equal(t, "host=db.abc.supabase.co user=postgres password=pw dbname=postgres port=5432 sslmode=require", dsn)
}

type fakeParameters struct {
	value string
	err   error
	name  string
}

func (f *fakeParameters) GetParameter(_ context.Context, in *ssm.GetParameterInput, _ ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	f.name = aws.ToString(in.Name)
	if f.err != nil {
		return nil, f.err
	}
	return &ssm.GetParameterOutput{Parameter: &types.Parameter{Value: aws.String(f.value)}}, nil
}

func TestResolveAdminSecret(t *testing.T) {
	t.Run("no parameter configured", func(t *testing.T) {
		cfg := Config{AdminSecret: "from-env"}
		require.NoError(t, ResolveAdminSecret(context.Background(), &cfg, &fakeParameters{err: errors.New("must not be called")}))
		assert.Equal(t, "from-env", cfg.AdminSecret)
	})

	t.Run("parameter overrides env", func(t *testing.T) {
		cfg := Config{AdminSecret: "from-env", AdminSecretSSMParameter: "/portfolio/admin"}
		client := &fakeParameters{value: "from-ssm"}
		require.NoError(t, ResolveAdminSecret(context.Background(), &cfg, client))
		assert.Equal(t, "from-ssm", cfg.AdminSecret)
		assert.Equal(t, "/portfolio/admin", client.name)
	})

	t.Run("lookup failure", func(t *testing.T) {
		cfg := Config{AdminSecretSSMParameter: "/portfolio/admin"}
		err := ResolveAdminSecret(context.Background(), &cfg, &fakeParameters{err: errors.New("access denied")})
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrConfigMissing)
	})

	t.Run("empty value", func(t *testing.T) {
		cfg := Config{AdminSecretSSMParameter: "/portfolio/admin"}
		err := ResolveAdminSecret(context.Background(), &cfg, &fakeParameters{value: "  "})
		assert.ErrorIs(t, err, errs.ErrConfigInvalid)
	})
}
