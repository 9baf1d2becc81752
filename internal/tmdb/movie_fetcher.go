package tmdb

import (
	"fmt"
	"time"

	"github.com/gosimple/slug"

	"github.com/screenlog/screenlog-core/internal/movies"
)

type MovieFetcher struct {
	client *Client
}

func NewMovieFetcher(client *Client) *MovieFetcher {
	return &MovieFetcher{client: client}
}

func (f *MovieFetcher) FetchMovieByTMDbID(tmdbID int) (*movies.Movie, error) {
	details, err := f.client.GetMovieDetails(tmdbID)
	if err != nil {
		return nil, fmt.Errorf("get movie details: %w", err)
	}

	return f.convertToMovie(details)
}

func (f *MovieFetcher) SearchAndConvert(query string) (*movies.Movie, error) {
	results, err := f.client.SearchMovies(query)
	if err != nil {
		return nil, fmt.Errorf("search movies: %w", err)
	}

	if len(results.Results) == 0 {
		return nil, fmt.Errorf("no results found for: %s", query)
	}

	return f.FetchMovieByTMDbID(results.Results[0].ID)
}

func (f *MovieFetcher) convertToMovie(details *MovieDetails) (*movies.Movie, error) {
	if details.ReleaseDate == "" {
		return nil, fmt.Errorf("tmdb movie %d has no release date", details.ID)
	}
	releasedAt, err := time.Parse("2006-01-02", details.ReleaseDate)
	if err != nil {
		return nil, fmt.Errorf("parse release date: %w", err)
	}
	if details.Runtime <= 0 {
		return nil, fmt.Errorf("tmdb movie %d has no runtime", details.ID)
	}

	movie := &movies.Movie{
		Title:           details.Title,
		Slug:            slug.Make(details.Title),
		Description:     details.Overview,
		ReleasedAt:      releasedAt,
		DurationMinutes: details.Runtime,
		Language:        details.OriginalLanguage,
	}

	if len(details.Genres) > 0 {
		movie.Genre = details.Genres[0].Name
	} else {
		movie.Genre = "Unknown"
	}

	return movie, nil
}
