// AngelaMos | 2026
// entity.go

package content

import "time"

// Content is a gated piece of content. Immutable after creation as far as
// the access engine is concerned.
type Content struct {
	ID           string    `db:"id"            json:"id"`
	Title        string    `db:"title"         json:"title"`
	Body         string    `db:"body"          json:"body"`
	RequiredPlan string    `db:"required_plan" json:"required_plan"`
	CreatedAt    time.Time `db:"created_at"    json:"created_at"`
}
