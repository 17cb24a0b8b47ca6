package services

import (
	"time"

	"github.com/cppla/socialapi/models"
	"github.com/cppla/socialapi/utils"
)

// UserSummary is the public projection of a user.
type UserSummary struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Profile is the caller's own account as returned by /users/me.
type Profile struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	BirthDate string `json:"birthDate"`
}

// CommentSummary is a comment as embedded in a post.
type CommentSummary struct {
	ID                uint      `json:"id"`
	Text              string    `json:"text"`
	CommenterUsername string    `json:"commenterUsername"`
	CommentDate       time.Time `json:"commentDate"`
}

// CommentView is a standalone comment.
type CommentView struct {
	ID                uint      `json:"id"`
	Text              string    `json:"text"`
	CommenterUsername string    `json:"commenterUsername"`
	PostID            uint      `json:"postId"`
	CommentDate       time.Time `json:"commentDate"`
}

// PostView is a post with a page of its comments and likers.
type PostView struct {
	PostID         uint             `json:"postId"`
	Text           string           `json:"text"`
	PostDate       time.Time        `json:"postDate"`
	AuthorUsername string           `json:"authorUsername"`
	Comments       []CommentSummary `json:"comments"`
	LikedBy        []string         `json:"likedBy"`
}

func toUserSummary(u models.User) UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username, FirstName: u.FirstName, LastName: u.LastName}
}

func toProfile(u models.User) Profile {
	return Profile{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		BirthDate: u.BirthDate.Format(utils.DateLayout),
	}
}

func toCommentSummary(c models.Comment) CommentSummary {
	return CommentSummary{ID: c.ID, Text: c.Text, CommenterUsername: c.User.Username, CommentDate: c.UpdatedAt}
}

func toCommentView(c models.Comment) CommentView {
	return CommentView{
		ID:                c.ID,
		Text:              c.Text,
		CommenterUsername: c.User.Username,
		PostID:            c.PostID,
		CommentDate:       c.UpdatedAt,
	}
}

func newPostView(p models.Post, comments []CommentSummary, likedBy []string) PostView {
	if comments == nil {
		comments = []CommentSummary{}
	}
	if likedBy == nil {
		likedBy = []string{}
	}
	return PostView{
		PostID:         p.ID,
		Text:           p.Text,
		PostDate:       p.UpdatedAt,
		AuthorUsername: p.User.Username,
		Comments:       comments,
		LikedBy:        likedBy,
	}
}
