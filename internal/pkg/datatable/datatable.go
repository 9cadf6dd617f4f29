// Package datatable carries the paged administrative query contract. The
// admin UI binds to these exact field names, so the JSON shape is fixed:
// request {start, length, search, order:[{column, dir}]}, response {data,
// recordsTotal, recordsFiltered}.
package datatable

// SortDir is a sort direction in a request's order list.
type SortDir string

const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

// OrderSpec is one (column, direction) sort term.
type OrderSpec struct {
	Column string  `json:"column"`
	Dir    SortDir `json:"dir"`
}

// Request is a paged listing request.
type Request struct {
	Start  int64       `json:"start"`
	Length int64       `json:"length"`
	Search string      `json:"search"`
	Order  []OrderSpec `json:"order"`
}

// Normalize clamps paging values to sane bounds.
func (r *Request) Normalize() {
	if r.Start < 0 {
		r.Start = 0
	}
	if r.Length <= 0 {
		r.Length = 25
	}
	if r.Length > 100 {
		r.Length = 100
	}
}

// Response is a paged listing response. RecordsTotal is the unfiltered row
// count; RecordsFiltered counts rows after the free-text search.
type Response struct {
	Data            interface{} `json:"data"`
	RecordsTotal    int64       `json:"recordsTotal"`
	RecordsFiltered int64       `json:"recordsFiltered"`
}
