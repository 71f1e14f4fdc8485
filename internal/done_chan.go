package internal

// DoneChan is closed exactly once, when whatever it signals has
// finished. Receiving from a closed DoneChan never blocks.
type DoneChan chan struct{}

// DoneFunc starts a shutdown and returns a channel that closes once it
// completes. lcBase.tryStop uses this to turn a background task's own
// stop signal into something it can race against a timeout.
type DoneFunc func() DoneChan
