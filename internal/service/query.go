package service

import (
	"encoding/json"
	"strings"

	"gorm.io/gorm"
)

const (
	// DefaultPageSize is the listing page size when the client sends none.
	DefaultPageSize = 12
	// MaxPageSize caps the page size a client can request.
	MaxPageSize = 100
)

// ListRecipesQuery carries the search/tag/page/limit parameters of a recipe
// listing request.
type ListRecipesQuery struct {
	Search string
	Tag    string
	Page   int
	Limit  int
}

// Normalize clamps the pagination window. Out-of-range or unparsed values
// fall back to the defaults instead of failing the request.
func (q ListRecipesQuery) Normalize() ListRecipesQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = DefaultPageSize
	}
	if q.Limit > MaxPageSize {
		q.Limit = MaxPageSize
	}
	return q
}

// Offset returns the number of rows to skip for the current page.
func (q ListRecipesQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// TotalPages returns ceil(total/limit) for the normalized limit.
func (q ListRecipesQuery) TotalPages(total int64) int {
	return int((total + int64(q.Limit) - 1) / int64(q.Limit))
}

// apply adds the search and tag constraints to the query. Soft-deleted rows
// are already excluded by the model's DeletedAt scope. Search matches
// case-insensitively against title or description, or the tags array as an
// exact member; the tag filter is always an exact member match. Both
// constraints combine with AND when both are given. User input is escaped so
// LIKE wildcards in a term match literally.
func (q ListRecipesQuery) apply(db *gorm.DB) *gorm.DB {
	if q.Search != "" {
		like := "%" + escapeLike(strings.ToLower(q.Search)) + "%"
		member := tagPattern(q.Search)
		if db.Dialector.Name() == "postgres" {
			db = db.Where(`LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\' OR tags::text LIKE ? ESCAPE '\'`, like, like, member)
		} else {
			db = db.Where(`LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\' OR tags LIKE ? ESCAPE '\'`, like, like, member)
		}
	}
	if q.Tag != "" {
		member := tagPattern(q.Tag)
		if db.Dialector.Name() == "postgres" {
			db = db.Where(`tags::text LIKE ? ESCAPE '\'`, member)
		} else {
			db = db.Where(`tags LIKE ? ESCAPE '\'`, member)
		}
	}
	return db
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutralizes LIKE metacharacters in a user-supplied term.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// tagPattern matches a tag as a JSON-encoded array member, so "quick" finds
// ["quick"] but not ["superquick"].
func tagPattern(tag string) string {
	quoted, _ := json.Marshal(tag)
	return "%" + escapeLike(string(quoted)) + "%"
}
