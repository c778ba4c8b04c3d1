package store

// Key layout. Values are JSON documents or plain integer counters.
const (
	userPrefix      = "user:"
	linksPrefix     = "links:"
	remainingPrefix = "snap:"
	clicksPrefix    = "clicks:link:"

	// NotificationsChannel is the pub/sub channel notifications are published on.
	NotificationsChannel = "linkhub:notifications"
)

func userKey(email string) string       { return userPrefix + email }
func linksKey(email string) string      { return linksPrefix + email }
func remainingKey(linkID string) string { return remainingPrefix + linkID }
func clicksKey(linkID string) string    { return clicksPrefix + linkID }
