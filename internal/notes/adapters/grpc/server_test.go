package grpc_test

import (
	"context"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"

	notesgrpc "notesapp/internal/notes/adapters/grpc"
	"notesapp/internal/notes/config"
	"notesapp/pkg/logger"
)

func testContext() context.Context {
	return logger.NewContext(context.Background(), logger.NewNop())
}

func TestServer_HealthLifecycle(t *testing.T) {
	ctx := testContext()

	server := notesgrpc.New(&config.GRPCConfig{Host: "127.0.0.1", Port: 0})
	require.NoError(t, server.Start(ctx))

	conn, err := grpc.NewClient(server.Addr(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	client := grpc_health_v1.NewHealthClient(conn)
	check := func() grpc_health_v1.HealthCheckResponse_ServingStatus {
		callCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		resp, err := client.Check(callCtx, &grpc_health_v1.HealthCheckRequest{Service: notesgrpc.ServiceName})
		require.NoError(t, err)
		return resp.GetStatus()
	}

	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, check())

	server.SetServing(false)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_NOT_SERVING, check())

	server.SetServing(true)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, check())

	stopCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	server.Stop(stopCtx)
}

func TestServer_StartFailsOnBusyAddress(t *testing.T) {
	ctx := testContext()

	first := notesgrpc.New(&config.GRPCConfig{Host: "127.0.0.1", Port: 0})
	require.NoError(t, first.Start(ctx))
	defer first.Stop(ctx)

	_, rawPort, err := net.SplitHostPort(first.Addr())
	require.NoError(t, err)
	port, err := strconv.Atoi(rawPort)
	require.NoError(t, err)

	second := notesgrpc.New(&config.GRPCConfig{Host: "127.0.0.1", Port: port})
	assert.Error(t, second.Start(ctx))
}
