package listing

import "strings"

// OrderClause whitelists a caller-supplied sort column and direction against
// the entity's allowed set, falling back to the per-entity default. Sort
// input never reaches SQL unvalidated.
func OrderClause(sortBy, sortDir, defaultBy, defaultDir string, allowed map[string]string) string {
	col, ok := allowed[sortBy]
	if !ok {
		col = defaultBy
	}

	dir := defaultDir
	switch sortDir {
	case "asc", "desc":
		dir = sortDir
	}

	return col + " " + dir
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Like wraps a search term for a case-insensitive substring match. LIKE
// wildcards in the term are escaped so they match literally.
func Like(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
