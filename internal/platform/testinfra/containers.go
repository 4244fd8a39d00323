// Copyright (c) 2026 Mediatrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

//go:build integration

// Package testinfra starts throwaway PostgreSQL and Redis containers for
// integration tests. Tests are skipped when Docker is unavailable.
package testinfra

import (
	"context"
	"fmt"
	"os/exec"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	postgresImage = "postgres:16-alpine"
	redisImage    = "redis:7-alpine"
	startTimeout  = 90 * time.Second

	postgresPort = "5432/tcp"
	redisPort    = "6379/tcp"
)

// SkipIfNoDocker skips t when the Docker daemon is not reachable.
func SkipIfNoDocker(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if exec.CommandContext(ctx, "docker", "info").Run() != nil {
		t.Skip("Skipping test: Docker not available")
	}
}

// StartPostgres runs a PostgreSQL container for the lifetime of t and
// returns its connection URL.
func StartPostgres(t *testing.T) string {
	t.Helper()
	SkipIfNoDocker(t)

	ctx := context.Background()
	container := start(t, ctx, testcontainers.ContainerRequest{
		Image:        postgresImage,
		ExposedPorts: []string{postgresPort},
		Env: map[string]string{
			"POSTGRES_USER":     "mediatrack",
			"POSTGRES_PASSWORD": "mediatrack",
			"POSTGRES_DB":       "mediatrack",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort(postgresPort),
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		).WithStartupTimeoutDefault(startTimeout),
	})

	mapped, err := container.MappedPort(ctx, postgresPort)
	if err != nil {
		t.Fatalf("mapped port %s: %v", postgresPort, err)
	}
	return fmt.Sprintf("postgres://mediatrack:mediatrack@%s:%s/mediatrack?sslmode=disable", host(t, ctx, container), mapped.Port())
}

// StartRedis runs a Redis container for the lifetime of t and returns its URL.
func StartRedis(t *testing.T) string {
	t.Helper()
	SkipIfNoDocker(t)

	ctx := context.Background()
	container := start(t, ctx, testcontainers.ContainerRequest{
		Image:        redisImage,
		ExposedPorts: []string{redisPort},
		WaitingFor:   wait.ForListeningPort(redisPort).WithStartupTimeout(startTimeout),
	})

	mapped, err := container.MappedPort(ctx, redisPort)
	if err != nil {
		t.Fatalf("mapped port %s: %v", redisPort, err)
	}
	return fmt.Sprintf("redis://%s:%s/0", host(t, ctx, container), mapped.Port())
}

func start(t *testing.T, ctx context.Context, request testcontainers.ContainerRequest) testcontainers.Container {
	t.Helper()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: request,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("start %s: %v", request.Image, err)
	}

	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: failed to terminate %s: %v", request.Image, err)
		}
	})
	return container
}

func host(t *testing.T, ctx context.Context, container testcontainers.Container) string {
	t.Helper()

	address, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("container host: %v", err)
	}
	return address
}
