//go:build integration

package postgres

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/platform/logger"
	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/property/domain"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testPool     *pgxpool.Pool
	testListings *ListingRepository
	testMessages *MessageRepository
)

func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("Could not construct pool: %s", err)
	}
	if err := pool.Client.Ping(); err != nil {
		log.Fatalf("Could not connect to Docker: %s", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=portal",
			"POSTGRES_PASSWORD=password",
			"POSTGRES_DB=portal_test",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("Could not start Postgres resource: %s", err)
	}
	databaseURL := fmt.Sprintf("postgres://portal:password@%s/portal_test?sslmode=disable", resource.GetHostPort("5432/tcp"))

	if err := pool.Retry(func() error {
		var errRetry error
		testPool, errRetry = NewClient(context.Background(), Config{DatabaseURL: databaseURL, MaxConns: 4})
		return errRetry
	}); err != nil {
		log.Fatalf("Could not connect to Postgres: %s", err)
	}

	if err := EnsureSchema(context.Background(), testPool); err != nil {
		log.Fatalf("Could not apply schema: %s", err)
	}
	testLogger := logger.NewNop()
	testListings, _ = NewListingRepository(testPool, testLogger)
	testMessages, _ = NewMessageRepository(testPool, testLogger)

	code := m.Run()

	testPool.Close()
	if err := pool.Purge(resource); err != nil {
		log.Printf("Could not purge Postgres resource: %s", err)
	}
	os.Exit(code)
}

func truncate(t *testing.T) {
	t.Helper()
	_, err := testPool.Exec(context.Background(), `TRUNCATE property_listings, contact_messages`)
	require.NoError(t, err)
}

func newTestListing(title string, pt domain.PropertyType, status domain.ListingStatus) *domain.Listing {
	return domain.NewListing(domain.ListingFields{
		Title:        title,
		Description:  "Two storey building on the main road",
		Price:        "₹1.2 Cr",
		Area:         "3000 sq ft",
		Location:     "Tiruppur",
		PropertyType: pt,
		ContactName:  "Murugesan",
		ContactPhone: "+91 98765 43210",
		ContactEmail: "owner@example.com",
	}, []string{"http://blob/property-images/b.jpg"}, status)
}

func TestListingRepository_RoundTripAndFilter(t *testing.T) {
	truncate(t)
	ctx := context.Background()

	older := newTestListing("Older", domain.PropertyResidential, domain.StatusApproved)
	older.CreatedAt = older.CreatedAt.Add(-time.Hour)
	newer := newTestListing("Newer", domain.PropertyResidential, domain.StatusApproved)
	shop := newTestListing("Shop", domain.PropertyCommercial, domain.StatusApproved)
	pending := newTestListing("Pending", domain.PropertyResidential, domain.StatusPending)
	for _, l := range []*domain.Listing{older, newer, shop, pending} {
		require.NoError(t, testListings.Create(ctx, l))
		require.NotEmpty(t, l.ID)
	}

	got, err := testListings.GetByID(ctx, newer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Newer", got.Title)
	assert.Equal(t, newer.Images, got.Images)
	assert.WithinDuration(t, newer.CreatedAt, got.CreatedAt, time.Millisecond)

	approved := domain.StatusApproved
	residential := domain.PropertyResidential
	found, err := testListings.Find(ctx, domain.ListingFilter{Status: &approved, PropertyType: &residential})
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, newer.ID, found[0].ID)
	assert.Equal(t, older.ID, found[1].ID)

	_, err = testListings.GetByID(ctx, "42")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListingRepository_UpdateStatusAndDelete(t *testing.T) {
	truncate(t)
	ctx := context.Background()

	l := newTestListing("Plot", domain.PropertyResidential, domain.StatusPending)
	require.NoError(t, testListings.Create(ctx, l))

	l.Title = "Plot with well"
	l.Status = domain.StatusApproved
	l.UpdatedAt = time.Now().UTC()
	require.NoError(t, testListings.Update(ctx, l))

	got, err := testListings.GetByID(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, "Plot with well", got.Title)
	assert.Equal(t, domain.StatusPending, got.Status)

	require.NoError(t, testListings.UpdateStatus(ctx, l.ID, "", domain.StatusApproved, time.Now().UTC()))
	got, err = testListings.GetByID(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, got.Status)

	// conditional on a status the row no longer has
	err = testListings.UpdateStatus(ctx, l.ID, domain.StatusPending, domain.StatusRejected, time.Now().UTC())
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	require.NoError(t, testListings.UpdateStatus(ctx, l.ID, domain.StatusApproved, domain.StatusRejected, time.Now().UTC()))
	got, err = testListings.GetByID(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, got.Status)

	require.NoError(t, testListings.Delete(ctx, l.ID))
	assert.ErrorIs(t, testListings.Delete(ctx, l.ID), domain.ErrNotFound)
	assert.ErrorIs(t, testListings.UpdateStatus(ctx, l.ID, domain.StatusRejected, domain.StatusApproved, time.Now()), domain.ErrNotFound)
}

func TestMessageRepository_Lifecycle(t *testing.T) {
	truncate(t)
	ctx := context.Background()

	msg, err := domain.NewContactMessage("Asha", "asha@example.com", "9000000001", "Is the plot still available?")
	require.NoError(t, err)
	require.NoError(t, testMessages.Create(ctx, msg))

	msgs, err := testMessages.List(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "Asha", msgs[0].Name)

	require.NoError(t, testMessages.Delete(ctx, msg.ID))
	assert.ErrorIs(t, testMessages.Delete(ctx, msg.ID), domain.ErrNotFound)
}
