package sqlite

// Repositories holds all SQLite repository implementations.
type Repositories struct {
	NotificationLog *NotificationLogRepository
	Setting         *SettingRepository
}

// NewRepositories creates all SQLite repositories with a shared database
// connection.
func NewRepositories(db *DB) *Repositories {
	return &Repositories{
		NotificationLog: NewNotificationLogRepository(db),
		Setting:         NewSettingRepository(db),
	}
}
