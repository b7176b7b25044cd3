// Package notification models the client e-mails the lifecycle enqueues:
// order acknowledgements, dispatch notices and collection notices.
package notification
