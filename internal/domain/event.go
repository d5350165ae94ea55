package domain

import "time"

// Event — метаданные мероприятия из каталога (не история конференции).
type Event struct {
	ID        string    `db:"id"`
	Title     string    `db:"title"`
	Organizer string    `db:"organizer"`
	CreatedAt time.Time `db:"created_at"`
}

// User — аутентифицированный пользователь из токена.
type User struct {
	ID          string
	DisplayName string
}
