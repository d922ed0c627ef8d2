package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()

	buf := &bytes.Buffer{}
	previous := logrus.StandardLogger().Out
	logrus.SetOutput(buf)
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableColors: true})
	logrus.SetLevel(logrus.DebugLevel)
	L = &logger{entry: logrus.NewEntry(logrus.StandardLogger())}

	t.Cleanup(func() { logrus.SetOutput(previous) })
	return buf
}

func TestForContext_CorrelationID(t *testing.T) {
	buf := captureOutput(t)

	ctx, id := WithCorrelationID(context.Background())
	assert.Equal(t, id, GetCorrelationID(ctx))

	ForContext(ctx).Info("mensagem")
	assert.Contains(t, buf.String(), "correlation_id="+id)
}

func TestWithFields_Development(t *testing.T) {
	buf := captureOutput(t)
	t.Setenv("APP_ENV", "development")

	L.WithFields(Fields{"source": "data.csv", "fingerprint": "abc", "dashboard_insights": 3}).Info("montado")

	out := buf.String()
	assert.Contains(t, out, "source=data.csv")
	assert.Contains(t, out, "dashboard_insights=3")
	assert.NotContains(t, out, "fingerprint")
}

func TestWithField_DevelopmentKeepsCoercedSpend(t *testing.T) {
	buf := captureOutput(t)
	t.Setenv("APP_ENV", "development")

	L.WithFields(Fields{"source": "data.csv", "records": 12}).
		WithField("coerced_ads_spend", 2).
		Warn("loading: valores de ads_spend não numéricos tratados como ausentes")

	assert.Contains(t, buf.String(), "coerced_ads_spend=2")
	assert.Contains(t, buf.String(), "records=12")
}

func TestWithFields_Production(t *testing.T) {
	buf := captureOutput(t)
	t.Setenv("APP_ENV", "production")

	L.WithField("fingerprint", "abc").Info("montado")
	assert.Contains(t, buf.String(), "fingerprint=abc")
}

func TestSetup_InvalidLevel(t *testing.T) {
	captureOutput(t)

	Setup("verbose")
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())

	Setup("debug")
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
}
