package listview

import "github.com/dbsmedya/golistview/internal/types"

// TotalPagesFor returns ceil(total / pageSize).
func TotalPagesFor(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// resetPagination recomputes totals after the filtered set changed and
// moves to the first page.
func (c *Controller) resetPagination() {
	c.currentPage = 1
	c.totalRecords = len(c.filteredRecords)
	c.totalPages = TotalPagesFor(c.totalRecords, c.pageSize)
	c.updatePaginatedRecords()
}

func (c *Controller) updatePaginatedRecords() {
	start := (c.currentPage - 1) * c.pageSize
	end := start + c.pageSize
	if start > len(c.filteredRecords) {
		start = len(c.filteredRecords)
	}
	if end > len(c.filteredRecords) {
		end = len(c.filteredRecords)
	}
	c.paginatedRecords = c.filteredRecords[start:end:end]
}

// PreviousPage moves back one page unless already on the first.
func (c *Controller) PreviousPage() {
	if c.currentPage > 1 {
		c.currentPage--
		c.updatePaginatedRecords()
	}
}

// NextPage moves forward one page unless already on the last.
func (c *Controller) NextPage() {
	if c.currentPage < c.totalPages {
		c.currentPage++
		c.updatePaginatedRecords()
	}
}

// PreviousDisabled reports whether there is no page before the current one.
func (c *Controller) PreviousDisabled() bool {
	return c.currentPage <= 1
}

// NextDisabled reports whether there is no page after the current one.
// An empty result counts as a single empty page.
func (c *Controller) NextDisabled() bool {
	return c.totalPages == 0 || c.currentPage >= c.totalPages
}

// CurrentPage is 1-indexed.
func (c *Controller) CurrentPage() int { return c.currentPage }

// TotalPages is zero when no record passes the filters.
func (c *Controller) TotalPages() int { return c.totalPages }

// TotalRecords is the number of records passing the filters.
func (c *Controller) TotalRecords() int { return c.totalRecords }

// PageSize is fixed for the lifetime of the controller.
func (c *Controller) PageSize() int { return c.pageSize }

// PaginatedRecords returns the visible page.
func (c *Controller) PaginatedRecords() []types.Record { return c.paginatedRecords }
