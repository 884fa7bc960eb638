package response

import (
	"time"

	"cinema-ticket/internal/data/entity"
)

type ReviewResponse struct {
	ID        int64     `json:"id"`
	MovieID   int64     `json:"movieId"`
	UserID    int64     `json:"userId"`
	Username  string    `json:"username"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func ReviewToResponse(review *entity.Review) ReviewResponse {
	return ReviewResponse{
		ID:        review.ID,
		MovieID:   review.MovieID,
		UserID:    review.UserID,
		Username:  review.Username,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}
}
