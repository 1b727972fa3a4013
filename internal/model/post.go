package model

import "time"

type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Picture     string    `json:"picture"`
	Username    string    `json:"username"`
	Categories  string    `json:"categories"`
	CreatedDate time.Time `json:"createdDate"`
}

type Comment struct {
	ID       string    `json:"id"`
	PostID   string    `json:"postId"`
	Name     string    `json:"name"`
	Comments string    `json:"comments"`
	Date     time.Time `json:"date"`
}

type Image struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	Data        []byte    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}
