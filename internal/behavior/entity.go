// AngelaMos | 2026
// entity.go

package behavior

import "time"

// Record is one logged interaction event: the training and inference
// signal for the engagement features.
type Record struct {
	ID                 string    `db:"id"                   json:"id"`
	UserID             string    `db:"user_id"              json:"user_id"`
	ContentID          string    `db:"content_id"           json:"content_id"`
	ViewTimeSeconds    float64   `db:"view_time_seconds"    json:"view_time_seconds"`
	ScrollDepthPercent float64   `db:"scroll_depth_percent" json:"scroll_depth_percent"`
	InteractionScore   float64   `db:"interaction_score"    json:"interaction_score"`
	CreatedAt          time.Time `db:"created_at"           json:"created_at"`
}
