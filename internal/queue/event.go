// Package queue defines message payloads exchanged over the message broker.
package queue

// Activity kinds published by the API.
const (
    ActivityRecipeCreated = "recipe.created"
    ActivityCommentAdded  = "comment.added"
)

// ActivityEvent is published when a user creates a recipe or comments on one.
// It carries enough information for downstream consumers to log or notify
// without querying the primary database.
type ActivityEvent struct {
    Kind       string `json:"kind"`
    RecipeID   uint64 `json:"recipe_id"`
    UserID     uint64 `json:"user_id"`
    Title      string `json:"title,omitempty"`
    Text       string `json:"text,omitempty"`
    OccurredAt string `json:"occurred_at"`
}
