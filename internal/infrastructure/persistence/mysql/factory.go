package mysql

// Repositories holds all MySQL repository implementations.
type Repositories struct {
	NotificationLog *NotificationLogRepository
	Setting         *SettingRepository
}

// NewRepositories creates all MySQL repositories with a shared database
// connection.
func NewRepositories(db *DB) *Repositories {
	return &Repositories{
		NotificationLog: NewNotificationLogRepository(db),
		Setting:         NewSettingRepository(db),
	}
}
