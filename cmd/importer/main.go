// The importer merges static per-channel review exports into the canonical
// reviews document. Each file under DATA_DIR/batches is a batch in the usual
// export envelope ({"status":"...","result":[...]}); records are normalized
// through the alias mapper, deduplicated by id (later files win), and the
// merged batch replaces the reviews document in one write.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"flex_reviews/internal/adapters/observability"
	"flex_reviews/internal/app"
	"flex_reviews/internal/domain"
	"flex_reviews/internal/shared"
	filestore "flex_reviews/internal/storage/file"
	mysqlrepo "flex_reviews/internal/storage/mysql"
	"flex_reviews/internal/storage/redisdoc"
)

type rawBatch struct {
	Status string           `json:"status"`
	Result []map[string]any `json:"result"`
}

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	batchDir := filepath.Join(cfg.DataDir, "batches")
	ents, err := os.ReadDir(batchDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", batchDir).Msg("read batch dir failed")
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".json" {
			files = append(files, filepath.Join(batchDir, e.Name()))
		}
	}
	sort.Strings(files)
	if len(files) == 0 {
		log.Fatal().Str("dir", batchDir).Msg("no batch files to import")
	}

	log.Info().Int("files", len(files)).Int("workers", cfg.ImportWorkers).Msg("importer starting")

	sem := semaphore.NewWeighted(int64(cfg.ImportWorkers))
	var wg sync.WaitGroup
	var mu sync.Mutex
	byID := map[int64]domain.Review{}

	for _, f := range files {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			defer sem.Release(1)

			reviews, err := loadBatch(path)
			if err != nil {
				log.Warn().Str("file", path).Err(err).Msg("batch skipped")
				return
			}
			mu.Lock()
			for _, r := range reviews {
				byID[r.ID] = r
			}
			mu.Unlock()
			log.Info().Str("file", path).Int("reviews", len(reviews)).Msg("batch ok")
		}(f)
	}
	wg.Wait()

	merged := make([]domain.Review, 0, len(byID))
	for _, r := range byID {
		merged = append(merged, r)
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].ID < merged[j].ID })

	store := openStore(cfg)
	doc := domain.ReviewsDocument{Status: "success", Result: merged}
	if err := store.Replace(ctx, domain.DocReviews, doc); err != nil {
		log.Fatal().Err(err).Msg("write reviews document failed")
	}
	log.Info().Int("reviews", len(merged)).Str("backend", cfg.StoreBackend).Msg("import completed")
}

func loadBatch(path string) ([]domain.Review, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var batch rawBatch
	if err := json.Unmarshal(b, &batch); err != nil {
		return nil, err
	}
	out := make([]domain.Review, 0, len(batch.Result))
	for _, raw := range batch.Result {
		r, err := app.MapReview(raw)
		if err != nil {
			log.Warn().Str("file", path).Err(err).Msg("record skipped")
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func openStore(cfg shared.Config) domain.DocumentStore {
	switch cfg.StoreBackend {
	case "mysql":
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		if err := db.Ping(); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		repo := mysqlrepo.New(db)
		if err := repo.EnsureSchema(context.Background()); err != nil {
			log.Fatal().Err(err).Msg("ensure schema failed")
		}
		return repo
	case "redis":
		return redisdoc.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	default:
		return filestore.New(cfg.DataDir)
	}
}
