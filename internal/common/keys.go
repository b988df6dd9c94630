package common

// Storage keys. Collections are JSON arrays; the session pointer, theme and
// language are raw strings.
const (
	KeyPrefix = "todo_"

	KeyUsers               = KeyPrefix + "users"
	KeySessions            = KeyPrefix + "sessions"
	KeyCurrentSession      = KeyPrefix + "current_session"
	KeyPendingVerification = KeyPrefix + "pending_verification"
	KeyPasswordReset       = KeyPrefix + "password_reset"
	KeyDraft               = KeyPrefix + "draft"

	KeyTheme    = "theme"
	KeyLanguage = "language"
)

func NotesKey(userID string) string {
	return KeyPrefix + "notes_" + userID
}

func AlarmsKey(userID string) string {
	return KeyPrefix + "alarms_" + userID
}
