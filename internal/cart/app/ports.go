package app

// Notifier shows a short confirmation to the user.
type Notifier interface {
	Notify(title, message string)
}
