package app

type Notifier interface {
	Notify(title, message string)
}
