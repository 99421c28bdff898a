package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAcceptsEmpty(t *testing.T) {
	assert.NoError(t, Validate(Raw{}))
}

func TestValidateAggregatesProblems(t *testing.T) {
	zero := Duration(0)
	err := Validate(Raw{
		HTTP:    HTTPRaw{Addr: "8080", ReadTimeout: &zero},
		GRPC:    &GRPCRaw{Addr: "localhost"},
		Log:     LogRaw{Level: "loud"},
		Metrics: &MetricsRaw{Namespace: "order-calc"},
	})
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "config validation failed")
	assert.Contains(t, msg, "http.addr must be host:port")
	assert.Contains(t, msg, "http.read_timeout must be > 0")
	assert.Contains(t, msg, "grpc.addr must be host:port")
	assert.Contains(t, msg, "log.level must be one of")
	assert.Contains(t, msg, "metrics.namespace")
}

func TestValidateAddrWithoutPort(t *testing.T) {
	err := Validate(Raw{HTTP: HTTPRaw{Addr: "localhost:"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must include a port")
}
