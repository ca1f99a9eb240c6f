//go:build integration || !unit

package mysql_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"flex_reviews/internal/domain"
	mysqlrepo "flex_reviews/internal/storage/mysql"
)

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("dockertest unavailable: %v", err)
	}
	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=flexreviews",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/flexreviews?parseTime=true&charset=utf8mb4,utf8&loc=UTC", hostPort)

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestDocuments_RoundTripAndReplace(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	if err := repo.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}

	// missing document
	var missing domain.ReviewSelectionsData
	if err := repo.Load(ctx, domain.DocSelections, &missing); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// write then read back
	in := domain.ReviewSelectionsData{
		Selections:  []domain.ReviewSelection{{ReviewID: 7, SelectedAt: "2024-01-05T12:00:00Z"}},
		LastUpdated: "2024-01-05T12:00:00Z",
	}
	if err := repo.Replace(ctx, domain.DocSelections, in); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	var out domain.ReviewSelectionsData
	if err := repo.Load(ctx, domain.DocSelections, &out); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(out.Selections) != 1 || out.Selections[0].ReviewID != 7 {
		t.Fatalf("unexpected document: %+v", out)
	}

	// replace swaps the whole body
	if err := repo.Replace(ctx, domain.DocSelections, domain.ReviewSelectionsData{
		Selections: []domain.ReviewSelection{{ReviewID: 8}}, LastUpdated: "2024-01-06T12:00:00Z",
	}); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if err := repo.Load(ctx, domain.DocSelections, &out); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(out.Selections) != 1 || out.Selections[0].ReviewID != 8 {
		t.Fatalf("expected full overwrite, got %+v", out)
	}
}
