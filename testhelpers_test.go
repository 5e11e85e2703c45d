//go:build integration

package main_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	kafkamodule "github.com/testcontainers/testcontainers-go/modules/kafka"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tsaratour/service-booking/internal/application"
	"github.com/tsaratour/service-booking/internal/backoffice"
	"github.com/tsaratour/service-booking/internal/config"
	"github.com/tsaratour/service-booking/internal/domain/catalog"
	"github.com/tsaratour/service-booking/internal/domain/submission"
	reservationEvents "github.com/tsaratour/service-booking/internal/events"
	"github.com/tsaratour/service-booking/internal/platform/database"
	"github.com/tsaratour/service-booking/internal/platform/kafka"
	"github.com/tsaratour/service-booking/internal/repository"
)

// testInfra holds shared test infrastructure.
type testInfra struct {
	DB           *gorm.DB
	Redis        *redis.Client
	KafkaBrokers []string
	Cleanup      func()
}

// wizardStack holds wired-up wizard service components.
type wizardStack struct {
	Wizard          *application.WizardService
	Consumer        *reservationEvents.ReservationEventConsumer
	Backend         *httptest.Server
	CleanupProducer func()
}

// setupContainers starts PostgreSQL, Redis and Kafka testcontainers.
func setupContainers(t *testing.T) *testInfra {
	t.Helper()
	ctx := context.Background()
	logger := zap.NewNop()

	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "test",
				"POSTGRES_PASSWORD": "test",
				"POSTGRES_DB":       "test_wizard",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err, "failed to start PostgreSQL container")

	pgHost, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	pgPort, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dbCfg := config.DatabaseConfig{
		Host: pgHost, Port: pgPort.Port(), User: "test", Password: "test",
		DBName: "test_wizard", SSLMode: "disable",
	}

	// Poll until GORM can actually connect and ping.
	var db *gorm.DB
	require.Eventually(t, func() bool {
		var err error
		db, err = database.Connect(dbCfg, logger)
		return err == nil
	}, 30*time.Second, time.Second, "PostgreSQL not ready for connections")

	require.NoError(t, database.RunMigrations(dbCfg.DatabaseURL(), "migrations", logger))

	redisContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err, "failed to start Redis container")

	redisHost, err := redisContainer.Host(ctx)
	require.NoError(t, err)
	redisPort, err := redisContainer.MappedPort(ctx, "6379")
	require.NoError(t, err)
	rdb, err := database.ConnectRedis(ctx, config.RedisConfig{Addr: net.JoinHostPort(redisHost, redisPort.Port())}, logger)
	require.NoError(t, err)

	// Start Kafka container using confluent-local (supports KRaft natively).
	kafkaContainer, err := kafkamodule.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err, "failed to start Kafka container")

	kafkaBrokers, err := kafkaContainer.Brokers(ctx)
	require.NoError(t, err, "failed to get Kafka brokers")

	createTopics(t, kafkaBrokers, submission.TopicBookingEvents, reservationEvents.TopicReservationEvents)

	cleanup := func() {
		_ = rdb.Close()
		for name, c := range map[string]testcontainers.Container{
			"Kafka": kafkaContainer, "Redis": redisContainer, "PostgreSQL": pgContainer,
		} {
			if err := c.Terminate(ctx); err != nil {
				t.Logf("failed to terminate %s container: %v", name, err)
			}
		}
	}

	return &testInfra{
		DB:           db,
		Redis:        rdb,
		KafkaBrokers: kafkaBrokers,
		Cleanup:      cleanup,
	}
}

// backendHandler emulates the REST backend: one client, one vehicle, and one
// existing reservation 42 with a vehicle booking.
func backendHandler() http.Handler {
	write := func(w http.ResponseWriter, status int, data any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": data})
	}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /clients/1/", func(w http.ResponseWriter, r *http.Request) {
		write(w, http.StatusOK, map[string]any{
			"id": 1, "nom": "Rakoto", "prenom": "Hery", "nbpersonnes": 2,
			"date_arrivee": "2025-07-01", "date_depart": "2025-07-05",
		})
	})
	mux.HandleFunc("GET /voitures/9/", func(w http.ResponseWriter, r *http.Request) {
		write(w, http.StatusOK, map[string]any{"id": 9, "marque": "Toyota", "modele": "Hilux", "capacite": 4, "prix_jour": "100000"})
	})
	mux.HandleFunc("GET /reservations/42/", func(w http.ResponseWriter, r *http.Request) {
		write(w, http.StatusOK, map[string]any{
			"id": 42, "client": 1, "statut": "en_attente",
			"voitures": []any{map[string]any{
				"id": 7, "voiture": 9, "date_debut": "2025-07-01", "date_fin": "2025-07-03", "prix": "300000",
			}},
		})
	})
	mux.HandleFunc("POST /reservations/", func(w http.ResponseWriter, r *http.Request) {
		write(w, http.StatusCreated, map[string]any{"id": 31})
	})
	mux.HandleFunc("POST /reservation-voitures/", func(w http.ResponseWriter, r *http.Request) {
		write(w, http.StatusCreated, map[string]any{"id": 501})
	})
	return mux
}

// setupWizardStack wires up the wizard service against the containers and a stub backend.
func setupWizardStack(t *testing.T, infra *testInfra) *wizardStack {
	t.Helper()
	logger, _ := zap.NewDevelopment()

	backend := httptest.NewServer(backendHandler())
	client := backoffice.NewClient(config.BackofficeConfig{BaseURL: backend.URL, Timeout: 5 * time.Second}, logger)

	producer := kafka.NewProducer(infra.KafkaBrokers, logger)
	wizard := application.NewWizardService(
		client,
		client,
		catalog.NewStandardPricing(),
		repository.NewRedisEditBuffer(infra.Redis, time.Hour, logger),
		repository.NewGormSubmissionRepository(infra.DB),
		producer,
		logger,
	)

	groupID := fmt.Sprintf("test-wizard-%s", uuid.New().String()[:8])
	consumer := reservationEvents.NewReservationEventConsumer(infra.KafkaBrokers, groupID, wizard, logger)

	return &wizardStack{
		Wizard:   wizard,
		Consumer: consumer,
		Backend:  backend,
		CleanupProducer: func() {
			_ = producer.Close()
			backend.Close()
		},
	}
}

// publishTestEvent publishes a CloudEvent to Kafka.
func publishTestEvent(t *testing.T, brokers []string, topic, source, eventType string, data interface{}) {
	t.Helper()
	logger, _ := zap.NewDevelopment()
	producer := kafka.NewProducer(brokers, logger)
	defer func() { _ = producer.Close() }()

	ce, err := kafka.NewCloudEvent(source, eventType, data)
	require.NoError(t, err, "failed to create cloud event")

	err = producer.PublishEvent(context.Background(), topic, ce)
	require.NoError(t, err, "failed to publish event")
}

// waitForSubmissionStatus polls the draft_submissions table until the status matches.
func waitForSubmissionStatus(t *testing.T, db *gorm.DB, reference, expectedStatus string, timeout time.Duration) repository.SubmissionModel {
	t.Helper()
	var result repository.SubmissionModel
	require.Eventually(t, func() bool {
		var model repository.SubmissionModel
		if err := db.Where("reference = ?", reference).First(&model).Error; err != nil {
			return false
		}
		if model.Status == expectedStatus {
			result = model
			return true
		}
		return false
	}, timeout, 200*time.Millisecond, "submission %s did not reach %s", reference, expectedStatus)
	return result
}

// consumeOneEvent reads from a Kafka topic until it finds an event of the expected type.
func consumeOneEvent(t *testing.T, brokers []string, topic, expectedType string, timeout time.Duration) kafka.CloudEvent {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	groupID := fmt.Sprintf("test-assert-%s", uuid.New().String()[:8])
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     brokers,
		GroupID:     groupID,
		Topic:       topic,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafkago.FirstOffset,
	})
	defer func() { _ = reader.Close() }()

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				t.Fatalf("timed out waiting for event type %q on topic %q", expectedType, topic)
			}
			continue
		}
		ce, err := kafka.ParseCloudEvent(msg.Value)
		if err != nil {
			continue
		}
		if ce.Type == expectedType {
			return ce
		}
	}
}

// createTopics pre-creates Kafka topics so producers don't fail with "Unknown Topic".
func createTopics(t *testing.T, brokers []string, topics ...string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", brokers[0])
	require.NoError(t, err, "failed to dial Kafka for topic creation")
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err, "failed to get Kafka controller")

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, fmt.Sprintf("%d", controller.Port)))
	require.NoError(t, err, "failed to connect to Kafka controller")
	defer controllerConn.Close()

	topicConfigs := make([]kafkago.TopicConfig, len(topics))
	for i, topic := range topics {
		topicConfigs[i] = kafkago.TopicConfig{
			Topic:             topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		}
	}
	err = controllerConn.CreateTopics(topicConfigs...)
	require.NoError(t, err, "failed to create Kafka topics")

	// Give Kafka a moment to propagate topic metadata.
	time.Sleep(1 * time.Second)
}
