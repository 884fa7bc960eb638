package entity

type Review struct {
	BaseSimple
	UserID   int64   `db:"user_id"`
	Username string  `db:"username"`
	MovieID  int64   `db:"movie_id"`
	Rating   int     `db:"rating"` // 1-5
	Comment  *string `db:"comment"`
}
