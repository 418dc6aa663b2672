package graph

// User represents a user node in the graph
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt int64  `json:"created_at"`
}

// Post represents a post node in the graph
type Post struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt int64  `json:"created_at"`
}

// Comment represents a comment node in the graph
type Comment struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	CreatedAt int64  `json:"created_at"`
}

// Relationship represents a typed edge between two nodes
type Relationship struct {
	Type      string `json:"type"`
	FromID    string `json:"from_id"`
	ToID      string `json:"to_id"`
	CreatedAt int64  `json:"created_at"`
}

// UserUpdate holds the mutable User properties. Nil fields are left untouched.
// The id and created_at properties are never writable through updates.
type UserUpdate struct {
	Name  *string
	Email *string
}

// PostUpdate holds the mutable Post properties. Nil fields are left untouched.
type PostUpdate struct {
	Title   *string
	Content *string
}

// CommentUpdate holds the mutable Comment properties. Nil fields are left untouched.
type CommentUpdate struct {
	Content *string
}
