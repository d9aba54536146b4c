// Package service implements the application use-cases on top of the
// in-memory store. Services validate payloads, build domain rows and pass
// the store's typed errors through to the transport layer untouched.
package service

// normalizePage clamps page and size to usable values.
func normalizePage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = 20
	}
	return page, size
}

// paginate returns the requested window of rows. Out-of-range pages yield
// an empty slice, never an error.
func paginate[T any](rows []T, page, size int) []T {
	start := (page - 1) * size
	if start >= len(rows) {
		return []T{}
	}
	end := start + size
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}
