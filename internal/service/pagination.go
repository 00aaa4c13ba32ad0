package service

const (
	defaultPerPage = 10
	maxPerPage     = 100
)

// pageWindow normalizes page inputs and returns the SQL limit and offset.
func pageWindow(page, perPage int) (p, pp, limit, offset int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return page, perPage, perPage, (page - 1) * perPage
}
