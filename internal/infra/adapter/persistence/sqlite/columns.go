package sqlite

import "magazine-db/internal/infra/adapter/persistence/rowmap"

// Column lists for joined queries, in rowmap order under the table alias.
var (
	authorColumnsAu  = rowmap.Prefixed("au", rowmap.AuthorColumns)
	magazineColumnsM = rowmap.Prefixed("m", rowmap.MagazineColumns)
)
