// This file is a helper for running tests with testcontainers.
// It starts the backing database and, optionally, a containerized build of the
// service itself for black-box runs.
// Expects environment variables to be loaded from .env files.
//

package helpers

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"
	"github.com/docker/go-connections/nat"
	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/network"
	"github.com/testcontainers/testcontainers-go/wait"
)

type TestContainers struct {
	Network          *testcontainers.DockerNetwork
	DBContainer      testcontainers.Container
	ServiceContainer testcontainers.Container
}

func (tc *TestContainers) Terminate(t *testing.T) {
	ctx := context.Background()
	if tc.ServiceContainer != nil {
		if err := tc.ServiceContainer.Terminate(ctx); err != nil {
			logMessage(t, "Failed to terminate service: %v", err)
		}
	}
	if tc.DBContainer != nil {
		if err := tc.DBContainer.Terminate(ctx); err != nil {
			logMessage(t, "Failed to terminate MariaDB: %v", err)
		}
	}
	if tc.Network != nil {
		if err := tc.Network.Remove(ctx); err != nil {
			logMessage(t, "Failed to remove network: %v", err)
		}
	}
}

func CreateAllTestContainers(t *testing.T) (*TestContainers, error) {
	ctx := context.Background()
	testContainers := &TestContainers{}

	// Create a network
	nw, err := network.New(ctx)
	if err != nil {
		exitWithError(t, err, "Failed to create network")
	}
	testContainers.Network = nw
	networkName := nw.Name

	// Create and start the Database container
	dbNetworkName := os.Getenv("DB_HOST")
	tcpDbPort, err := nat.NewPort("tcp", os.Getenv("DB_PORT"))
	if err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, "Failed to create DB port")
	}
	dbContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        os.Getenv("DB_IMAGE"),
			ExposedPorts: []string{string(tcpDbPort)},
			Env: map[string]string{
				"MYSQL_ROOT_PASSWORD": os.Getenv("DB_ROOT_PASSWORD"),
				"MYSQL_DATABASE":      os.Getenv("DB_DATABASE"),
				"MYSQL_USER":          os.Getenv("DB_USER"),
				"MYSQL_PASSWORD":      os.Getenv("DB_PASSWORD"),
			},
			WaitingFor: wait.ForListeningPort(tcpDbPort).WithStartupTimeout(60 * time.Second),
			Networks:   []string{networkName},
			NetworkAliases: map[string][]string{
				networkName: {dbNetworkName},
			},
		},
		Started: true,
	})
	if err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, "Failed to start Database")
	}
	testContainers.DBContainer = dbContainer

	// Wait for the database to really accept connections
	dbHost, _ := dbContainer.Host(ctx)
	dbPort, _ := dbContainer.MappedPort(ctx, tcpDbPort)
	if err := waitForMySql(dbHost, dbPort); err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, "MariaDB not ready")
	}

	imageName := "catalog-service-test:latest"

	// Check if image exists
	imageExists, err := imageExists(ctx, imageName)
	if err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, "Failed to check if image exists")
	}

	servicePortNumber := os.Getenv("PORT")
	tcpServicePort, err := nat.NewPort("tcp", servicePortNumber)
	if err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, "Failed to create service port")
	}

	// Create service container request (we add to it later)
	serviceContainerRequest := testcontainers.ContainerRequest{
		ExposedPorts: []string{string(tcpServicePort)},
		Env: map[string]string{
			"DB_TYPE":             "mysql",
			"DB_HOST":             dbNetworkName,
			"DB_PORT":             os.Getenv("DB_PORT"),
			"DB_DATABASE":         os.Getenv("DB_DATABASE"),
			"DB_USER":             os.Getenv("DB_USER"),
			"DB_PASSWORD":         os.Getenv("DB_PASSWORD"),
			"DB_CONNECTION_LIMIT": os.Getenv("DB_CONNECTION_LIMIT"),
			"DATA_BASE_URL":       os.Getenv("DATA_BASE_URL"),
			"PORT":                servicePortNumber,
		},
		WaitingFor: wait.ForHTTP("/metrics").WithPort(tcpServicePort).WithStartupTimeout(30 * time.Second),
		Networks:   []string{networkName},
	}

	if !imageExists {
		// Build the service image from the repo Dockerfile
		resourceReaperSessionID := uuid.New().String()
		buildArgs := map[string]*string{
			"RESOURCE_REAPER_SESSION_ID": &resourceReaperSessionID,
		}

		buildContext := os.Getenv("TESTCONTAINERS_BUILD_CONTEXT")
		if buildContext == "" {
			buildContext = "../.."
		}

		logMessage(t, "Image %s does not exist, building...", imageName)
		imageNameParts := strings.Split(imageName, ":")
		serviceContainerRequest.FromDockerfile = testcontainers.FromDockerfile{
			Context:       buildContext,
			Dockerfile:    "Dockerfile",
			Repo:          imageNameParts[0],
			Tag:           imageNameParts[1],
			KeepImage:     true, // Keep the image so we can reuse it
			BuildArgs:     buildArgs,
			PrintBuildLog: true,
		}
	} else {
		// Add Image to the service container request to reuse the existing image
		logMessage(t, "Image %s exists, reusing...", imageName)
		serviceContainerRequest.Image = imageName
	}

	// Create and start the service container
	serviceContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: serviceContainerRequest,
		Started:          true,
	})
	if err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, "Failed to start service")
	}
	testContainers.ServiceContainer = serviceContainer

	// Log the localhost and mapped ports for the service
	serviceHost, _ := serviceContainer.Host(ctx)
	servicePort, _ := serviceContainer.MappedPort(ctx, tcpServicePort)
	logMessage(t, "BASE_URL=%s:%s", serviceHost, servicePort.Port())

	logMessage(t, "Service testcontainer started successfully")
	return testContainers, nil
}

func waitForMySql(dbHost string, dbPort nat.Port) error {
	db, err := sql.Open("mysql", fmt.Sprintf("root:%s@tcp(%s:%s)/", os.Getenv("DB_ROOT_PASSWORD"), dbHost, dbPort.Port()))
	if err != nil {
		return err
	}
	defer db.Close()

	for i := 0; i < 30; i++ {
		err = db.Ping()
		if err == nil {
			return nil
		}
		time.Sleep(1 * time.Second)
	}
	return fmt.Errorf("MariaDB not ready after 30 seconds: %w", err)
}

func imageExists(ctx context.Context, imageName string) (bool, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return false, err
	}
	defer cli.Close()

	images, err := cli.ImageList(ctx, image.ListOptions{})
	if err != nil {
		return false, err
	}

	for _, image := range images {
		for _, tag := range image.RepoTags {
			if tag == imageName {
				return true, nil
			}
		}
	}

	return false, nil
}

func exitWithError(t *testing.T, err error, msg string) {
	if t != nil {
		t.Fatalf(msg+": %v", err)
	} else {
		fmt.Printf(msg+": %v\n", err)
		os.Exit(1)
	}
}

func logMessage(t *testing.T, format string, args ...any) {
	if t != nil {
		t.Logf(format, args...)
	} else {
		fmt.Printf(format+"\n", args...)
	}
}
