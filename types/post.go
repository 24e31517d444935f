package types

// Post is a single blog entry. CreatedAt is an RFC 3339 UTC timestamp
// assigned by the server at creation time.
type Post struct {
	ID        string `json:"id" db:"id"`
	Title     string `json:"title" db:"title"`
	Content   string `json:"content" db:"content"`
	CreatedAt string `json:"createdAt" db:"created_at"`
}
