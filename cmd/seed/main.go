package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"time"

	"bookshelf/internal/app"
	"bookshelf/internal/book"
	"bookshelf/internal/comment"
	"bookshelf/internal/config"
	"bookshelf/internal/logger"

	"github.com/rs/zerolog/log"
)

var (
	genres = []string{"Fiction", "Science Fiction", "History", "Science", "Technology", "Romance", "Mystery", "Biography", "Philosophy", "Art"}
	words  = []string{
		"Adventure", "Mystery", "Journey", "Discovery", "Secrets", "Dreams", "Hope",
		"Love", "War", "Peace", "Science", "Nature", "Technology", "History", "Future",
		"Past", "Present", "Reality", "Imagination", "Wisdom", "Life", "Death",
		"Light", "Darkness", "World", "Universe", "Time", "Space", "Mind", "Soul",
	}
)

func main() {
	var (
		count    = flag.Int("count", 50, "Number of books to insert")
		comments = flag.Int("comments", 3, "Comments per book")
		owner    = flag.String("owner", "reader@example.com", "Owner email for the seeded books")
	)
	flag.Parse()

	config.LoadEnvFiles()
	cfg, err := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx := context.Background()
	repos, err := app.OpenRepositories(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot open store")
	}
	defer repos.Close(ctx)

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	books, notes, err := seed(ctx, repos, rnd, *owner, *count, *comments, time.Now().UTC())
	if err != nil {
		log.Fatal().Err(err).Int("inserted", books).Msg("seed failed")
	}
	log.Info().Int("books", books).Int("comments", notes).Str("store", cfg.StoreDriver).Msg("seed complete")
}

// seed inserts count books owned by owner with creation times spread back
// from now, each followed by perBook comments.
func seed(ctx context.Context, repos *app.Repositories, rnd *rand.Rand, owner string, count, perBook int, now time.Time) (int, int, error) {
	var notes int
	for i := 0; i < count; i++ {
		b := &book.Book{
			Title:      fmt.Sprintf("Book Title %d - %s", i+1, randomWord(rnd)),
			Author:     fmt.Sprintf("%s %s", randomWord(rnd), randomWord(rnd)),
			Genre:      genres[rnd.Intn(len(genres))],
			Rating:     float64(rnd.Intn(11)) / 2,
			Summary:    fmt.Sprintf("This is a book about %s.", randomWord(rnd)),
			CoverImage: fmt.Sprintf("https://covers.example.com/%d.jpg", i+1),
			UserEmail:  owner,
			CreatedAt:  now.Add(-time.Duration(count-i) * time.Minute),
		}
		id, err := repos.Books.Create(ctx, b)
		if err != nil {
			return i, notes, err
		}

		for j := 0; j < perBook; j++ {
			c := &comment.Comment{
				BookID:    id,
				Text:      fmt.Sprintf("A fine read about %s.", randomWord(rnd)),
				UserName:  randomWord(rnd),
				CreatedAt: b.CreatedAt.Add(time.Duration(j+1) * time.Second),
			}
			if _, err := repos.Comments.Create(ctx, c); err != nil {
				return i + 1, notes, err
			}
			notes++
		}

		if (i+1)%100 == 0 {
			log.Info().Msgf("Generated %d/%d books", i+1, count)
		}
	}
	return count, notes, nil
}

func randomWord(rnd *rand.Rand) string {
	return words[rnd.Intn(len(words))]
}
