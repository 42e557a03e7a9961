package listing_test

import (
	"testing"

	"go-hrm/internal/shared/listing"

	"github.com/stretchr/testify/assert"
)

func TestOrderClause(t *testing.T) {
	allowed := map[string]string{
		"name":       "name",
		"created_at": "created_at",
	}

	assert.Equal(t, "name asc", listing.OrderClause("", "", "name", "asc", allowed))
	assert.Equal(t, "created_at desc", listing.OrderClause("created_at", "desc", "name", "asc", allowed))

	// Unknown columns and directions fall back to the defaults; injection
	// attempts never reach SQL.
	assert.Equal(t, "name asc", listing.OrderClause("salary; DROP TABLE employees", "asc", "name", "asc", allowed))
	assert.Equal(t, "name asc", listing.OrderClause("name", "ascending", "name", "asc", allowed))
}

func TestLike(t *testing.T) {
	assert.Equal(t, "%budi%", listing.Like("budi"))
	assert.Equal(t, "%%", listing.Like(""))
}

func TestLike_EscapesWildcards(t *testing.T) {
	assert.Equal(t, `%100\%%`, listing.Like("100%"))
	assert.Equal(t, `%a\_b%`, listing.Like("a_b"))
	assert.Equal(t, `%c:\\temp%`, listing.Like(`c:\temp`))
}
